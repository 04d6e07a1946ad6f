package ports

import (
	"context"
	"errors"
	"time"

	"github.com/samirrijal/wayfinder/internal/core/domain"
)

// EventPublisher publishes domain events to a message broker.
type EventPublisher interface {
	PublishRouteComputed(ctx context.Context, event *domain.RouteComputed) error
}

// MapStore keeps rendered map documents for later download.
type MapStore interface {
	Save(ctx context.Context, id string, document []byte, ttl time.Duration) error
	Load(ctx context.Context, id string) ([]byte, error)
}

// RateLimiter gates outbound calls to a provider.
type RateLimiter interface {
	// Wait blocks until a call may proceed or ctx is done.
	Wait(ctx context.Context) error
}

// Clock is the time source used for arrival estimates.
type Clock interface {
	Now() time.Time
}

// ClockFunc adapts a function to Clock.
type ClockFunc func() time.Time

func (f ClockFunc) Now() time.Time { return f() }

// SystemClock reads the wall clock.
var SystemClock Clock = ClockFunc(time.Now)

// ErrMapNotFound is returned by MapStore.Load for unknown or expired ids.
var ErrMapNotFound = errors.New("map not found")

// RouteHistory persists route events for later inspection.
type RouteHistory interface {
	Record(ctx context.Context, event *domain.RouteComputed) error
	Recent(ctx context.Context, limit int) ([]domain.RouteComputed, error)
}
