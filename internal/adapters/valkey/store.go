package valkey

import (
	"context"
	"fmt"
	"time"

	"github.com/valkey-io/valkey-go"

	"github.com/samirrijal/wayfinder/internal/core/ports"
)

const keyPrefix = "wayfinder:map:"

var _ ports.MapStore = (*MapStore)(nil)

// MapStore implements ports.MapStore using Valkey (Redis-compatible).
type MapStore struct {
	client valkey.Client
}

// New creates a new Valkey map store.
func New(addr string) (*MapStore, error) {
	client, err := valkey.NewClient(valkey.ClientOption{
		InitAddress: []string{addr},
	})
	if err != nil {
		return nil, fmt.Errorf("valkey connect: %w", err)
	}
	return &MapStore{client: client}, nil
}

// NewWithClient wraps an existing client.
func NewWithClient(client valkey.Client) *MapStore {
	return &MapStore{client: client}
}

// Save stores a rendered document under id for ttl.
func (s *MapStore) Save(ctx context.Context, id string, document []byte, ttl time.Duration) error {
	cmd := s.client.Do(ctx,
		s.client.B().Set().Key(keyPrefix+id).Value(valkey.BinaryString(document)).Ex(ttl).Build(),
	)
	if err := cmd.Error(); err != nil {
		return fmt.Errorf("valkey save map %s: %w", id, err)
	}
	return nil
}

// Load returns the document stored under id, or ports.ErrMapNotFound.
func (s *MapStore) Load(ctx context.Context, id string) ([]byte, error) {
	b, err := s.client.Do(ctx, s.client.B().Get().Key(keyPrefix+id).Build()).AsBytes()
	if valkey.IsValkeyNil(err) {
		return nil, ports.ErrMapNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("valkey load map %s: %w", id, err)
	}
	return b, nil
}

// Ping checks connectivity.
func (s *MapStore) Ping(ctx context.Context) error {
	return s.client.Do(ctx, s.client.B().Ping().Build()).Error()
}

// Close releases the client.
func (s *MapStore) Close() {
	s.client.Close()
}
