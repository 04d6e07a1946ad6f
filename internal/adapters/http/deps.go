package http

import (
	"context"
	"time"

	"github.com/nats-io/nats.go"

	"github.com/samirrijal/wayfinder/internal/core/ports"
	"github.com/samirrijal/wayfinder/internal/core/usecases"
)

// Pinger is implemented by backends that support a connectivity check.
type Pinger interface {
	Ping(ctx context.Context) error
}

// ConnChecker reports broker connectivity.
type ConnChecker interface {
	IsConnected() bool
}

// Dependencies holds all services needed by HTTP handlers.
type Dependencies struct {
	Directions *usecases.DirectionsService

	// Maps stores rendered map documents. When nil, map mode responses carry
	// the HTML inline.
	Maps   ports.MapStore
	MapTTL time.Duration

	// NATS is the event publisher connection, checked by /v1/ready.
	NATS ConnChecker

	// Events feeds /ws/routes. The WebSocket route is not registered when nil.
	Events *nats.Conn

	// DocsPath is the OpenAPI document served at /docs/openapi.yaml.
	DocsPath string
}

func (d *Dependencies) mapTTL() time.Duration {
	if d.MapTTL <= 0 {
		return time.Hour
	}
	return d.MapTTL
}
