package natsadapter

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/wayfinder/internal/core/domain"
)

// Subscriber consumes route events from NATS JetStream.
type Subscriber struct {
	conn *nats.Conn
	js   nats.JetStreamContext
	subs []*nats.Subscription
}

// NewSubscriber connects to NATS for consuming route events.
func NewSubscriber(url string) (*Subscriber, error) {
	conn, err := connect(url)
	if err != nil {
		return nil, err
	}
	js, err := conn.JetStream()
	if err != nil {
		conn.Close()
		return nil, fmt.Errorf("jetstream: %w", err)
	}
	return &Subscriber{conn: conn, js: js}, nil
}

// SubscribeRouteComputed delivers route events to handler. A non-empty
// durable name resumes where the previous consumer stopped; handler errors
// cause redelivery, up to three attempts.
func (s *Subscriber) SubscribeRouteComputed(ctx context.Context, durable string, handler func(ctx context.Context, event *domain.RouteComputed) error) error {
	opts := []nats.SubOpt{
		nats.ManualAck(),
		nats.MaxDeliver(3),
	}
	if durable != "" {
		opts = append(opts, nats.Durable(durable))
	} else {
		opts = append(opts, nats.DeliverNew())
	}

	sub, err := s.js.Subscribe(SubjectRouteComputed+".>", func(msg *nats.Msg) {
		handleRouteMsg(ctx, msg, handler)
	}, opts...)
	if err != nil {
		return fmt.Errorf("subscribe route events: %w", err)
	}
	s.subs = append(s.subs, sub)
	return nil
}

// acker is the acknowledgement subset of *nats.Msg.
type acker interface {
	Ack(opts ...nats.AckOpt) error
	Nak(opts ...nats.AckOpt) error
	Term(opts ...nats.AckOpt) error
}

func handleRouteMsg(ctx context.Context, msg *nats.Msg, handler func(ctx context.Context, event *domain.RouteComputed) error) {
	dispatch(ctx, msg.Data, msg, handler)
}

func dispatch(ctx context.Context, data []byte, a acker, handler func(ctx context.Context, event *domain.RouteComputed) error) {
	var event domain.RouteComputed
	if err := json.Unmarshal(data, &event); err != nil {
		slog.Warn("dropping malformed route event", "error", err)
		_ = a.Term()
		return
	}
	if err := handler(ctx, &event); err != nil {
		_ = a.Nak()
		return
	}
	_ = a.Ack()
}

// Close unsubscribes and drains.
func (s *Subscriber) Close() {
	for _, sub := range s.subs {
		_ = sub.Unsubscribe()
	}
	_ = s.conn.Drain()
}
