package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/wayfinder/internal/core/domain"
	"github.com/samirrijal/wayfinder/internal/core/ports"
)

// Stream and subjects for route events.
const (
	StreamRoutes         = "WAYFINDER_ROUTES"
	SubjectRouteComputed = "wayfinder.route.computed"
)

var _ ports.EventPublisher = (*Publisher)(nil)

// jetStream is the publishing subset of nats.JetStreamContext.
type jetStream interface {
	Publish(subj string, data []byte, opts ...nats.PubOpt) (*nats.PubAck, error)
}

// Publisher implements ports.EventPublisher using NATS JetStream.
type Publisher struct {
	conn *nats.Conn
	js   jetStream
}

// NewPublisher connects to NATS and enables JetStream.
func NewPublisher(url string) (*Publisher, error) {
	conn, err := connect(url)
	if err != nil {
		return nil, err
	}

	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}

	if err := ensureStream(js); err != nil {
		conn.Close()
		return nil, err
	}

	return &Publisher{conn: conn, js: js}, nil
}

func connect(url string) (*nats.Conn, error) {
	conn, err := nats.Connect(url,
		nats.Name("wayfinder"),
		nats.RetryOnFailedConnect(true),
		nats.MaxReconnects(-1),
		nats.ReconnectWait(2*time.Second),
	)
	if err != nil {
		return nil, fmt.Errorf("nats connect: %w", err)
	}
	return conn, nil
}

func ensureStream(js nats.JetStreamContext) error {
	cfg := nats.StreamConfig{
		Name:      StreamRoutes,
		Subjects:  []string{SubjectRouteComputed + ".>"},
		Retention: nats.LimitsPolicy,
		MaxAge:    7 * 24 * time.Hour,
		Storage:   nats.FileStorage,
	}
	if _, err := js.AddStream(&cfg); err != nil {
		// Stream may already exist — try update
		if _, err := js.UpdateStream(&cfg); err != nil {
			return fmt.Errorf("ensure stream %s: %w", cfg.Name, err)
		}
	}
	return nil
}

// RouteSubject returns the subject a route event for profile is published on.
func RouteSubject(profile domain.Profile) string {
	return SubjectRouteComputed + "." + string(profile)
}

// PublishRouteComputed publishes event on wayfinder.route.computed.<profile>.
func (p *Publisher) PublishRouteComputed(ctx context.Context, event *domain.RouteComputed) error {
	data, err := json.Marshal(event)
	if err != nil {
		return fmt.Errorf("marshal route event: %w", err)
	}
	if _, err := p.js.Publish(RouteSubject(event.Profile), data, nats.Context(ctx)); err != nil {
		return fmt.Errorf("publish route event: %w", err)
	}
	return nil
}

// IsConnected reports whether the underlying connection is up.
func (p *Publisher) IsConnected() bool {
	return p.conn != nil && p.conn.IsConnected()
}

// Close drains and closes the connection.
func (p *Publisher) Close() {
	if p.conn != nil {
		_ = p.conn.Drain()
	}
}

// Conn returns the underlying connection for plain subscriptions such as
// the WebSocket relay.
func (p *Publisher) Conn() *nats.Conn {
	return p.conn
}
