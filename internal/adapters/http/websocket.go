package http

import (
	"encoding/json"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/gofiber/websocket/v2"
	"github.com/nats-io/nats.go"

	natsadapter "github.com/samirrijal/wayfinder/internal/adapters/nats"
	"github.com/samirrijal/wayfinder/internal/core/domain"
)

// wsMessage is sent from client to subscribe/unsubscribe to route feeds.
type wsMessage struct {
	Action  string `json:"action"`  // "subscribe" | "unsubscribe"
	Profile string `json:"profile"` // profile filter (optional, "" = all)
}

// feedSubject returns the NATS subject for a profile filter.
func feedSubject(profile string) (string, error) {
	if profile == "" {
		return natsadapter.SubjectRouteComputed + ".>", nil
	}
	p, err := domain.ParseProfile(profile)
	if err != nil {
		return "", err
	}
	return natsadapter.RouteSubject(p), nil
}

// feedSet tracks the subjects one client listens to. A client starts on the
// all-profiles feed; its first explicit subscribe replaces that feed so no
// event is delivered twice.
type feedSet struct {
	subscribe func(subject string) (unsubscribe func() error, err error)
	subs      map[string]func() error
	implicit  bool
}

func newFeedSet(subscribe func(subject string) (func() error, error)) *feedSet {
	return &feedSet{subscribe: subscribe, subs: make(map[string]func() error)}
}

// start subscribes to the all-profiles feed.
func (f *feedSet) start() error {
	subject, _ := feedSubject("")
	unsub, err := f.subscribe(subject)
	if err != nil {
		return err
	}
	f.subs[subject] = unsub
	f.implicit = true
	return nil
}

// apply handles one client message and returns the reply to send.
func (f *feedSet) apply(m wsMessage) map[string]string {
	subject, err := feedSubject(m.Profile)
	if err != nil {
		return map[string]string{"error": err.Error()}
	}

	switch m.Action {
	case "subscribe":
		if f.implicit {
			f.implicit = false
			all, _ := feedSubject("")
			if subject == all {
				return map[string]string{"status": "subscribed", "subject": subject}
			}
			f.drop(all)
		}
		if _, exists := f.subs[subject]; exists {
			return map[string]string{"status": "already subscribed", "subject": subject}
		}
		unsub, err := f.subscribe(subject)
		if err != nil {
			return map[string]string{"error": "subscribe failed: " + err.Error()}
		}
		f.subs[subject] = unsub
		return map[string]string{"status": "subscribed", "subject": subject}

	case "unsubscribe":
		f.implicit = false
		if !f.drop(subject) {
			return map[string]string{"error": "not subscribed to " + subject}
		}
		return map[string]string{"status": "unsubscribed", "subject": subject}

	default:
		return map[string]string{"error": "unknown action: " + m.Action}
	}
}

func (f *feedSet) drop(subject string) bool {
	unsub, exists := f.subs[subject]
	if !exists {
		return false
	}
	_ = unsub()
	delete(f.subs, subject)
	return true
}

func (f *feedSet) close() {
	for subject := range f.subs {
		f.drop(subject)
	}
}

// subjects lists the active subjects, for tests and logging.
func (f *feedSet) subjects() []string {
	out := make([]string, 0, len(f.subs))
	for s := range f.subs {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}

// RouteFeedHandler returns a handler that upgrades to WebSocket and relays
// route computed events to connected clients.
// Clients send JSON: {"action":"subscribe","profile":"cycling"}
// A client receives every profile until its first subscribe, which narrows
// the feed to the requested profile.
func RouteFeedHandler(nc *nats.Conn) func(*websocket.Conn) {
	return func(c *websocket.Conn) {
		defer c.Close()

		remoteAddr := c.RemoteAddr().String()
		slog.Info("ws client connected", "remote", remoteAddr)

		var mu sync.Mutex
		writeJSON := func(v interface{}) error {
			data, err := json.Marshal(v)
			if err != nil {
				return err
			}
			mu.Lock()
			defer mu.Unlock()
			return c.WriteMessage(websocket.TextMessage, data)
		}

		relay := func(msg *nats.Msg) {
			_ = writeJSON(json.RawMessage(msg.Data))
		}

		feeds := newFeedSet(func(subject string) (func() error, error) {
			sub, err := nc.Subscribe(subject, relay)
			if err != nil {
				return nil, err
			}
			return sub.Unsubscribe, nil
		})
		if err := feeds.start(); err != nil {
			slog.Error("ws default subscribe", "error", err)
			return
		}
		defer feeds.close()

		// Keep-alive ping
		done := make(chan struct{})
		defer close(done)
		go func() {
			ticker := time.NewTicker(30 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-ticker.C:
					mu.Lock()
					err := c.WriteMessage(websocket.PingMessage, nil)
					mu.Unlock()
					if err != nil {
						return
					}
				case <-done:
					return
				}
			}
		}()

		for {
			_, msg, err := c.ReadMessage()
			if err != nil {
				break
			}

			var m wsMessage
			if err := json.Unmarshal(msg, &m); err != nil {
				_ = writeJSON(map[string]string{"error": "invalid JSON"})
				continue
			}
			_ = writeJSON(feeds.apply(m))
		}

		slog.Info("ws client disconnected", "remote", remoteAddr, "subjects", feeds.subjects())
	}
}
