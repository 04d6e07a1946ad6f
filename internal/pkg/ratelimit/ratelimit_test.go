package ratelimit

import (
	"context"
	"errors"
	"testing"
	"time"
)

func TestGate_FirstCallImmediate(t *testing.T) {
	g := NewGate(time.Hour)

	start := time.Now()
	if err := g.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if elapsed := time.Since(start); elapsed > 50*time.Millisecond {
		t.Errorf("first call should not block, took %s", elapsed)
	}
}

func TestGate_SpacesCalls(t *testing.T) {
	g := NewGate(100 * time.Millisecond)
	ctx := context.Background()

	start := time.Now()
	for i := 0; i < 3; i++ {
		if err := g.Wait(ctx); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
	if elapsed := time.Since(start); elapsed < 180*time.Millisecond {
		t.Errorf("three calls should take at least two intervals, took %s", elapsed)
	}
}

func TestGate_ContextCancelled(t *testing.T) {
	g := NewGate(time.Hour)
	_ = g.Wait(context.Background())

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	if err := g.Wait(ctx); err == nil {
		t.Fatal("expected error when the next slot is beyond the deadline")
	}
}

func TestGate_ZeroIntervalDisabled(t *testing.T) {
	g := NewGate(0)
	for i := 0; i < 100; i++ {
		if err := g.Wait(context.Background()); err != nil {
			t.Fatalf("call %d: %v", i, err)
		}
	}
}

func TestUnlimited(t *testing.T) {
	l := Unlimited()
	if err := l.Wait(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	if err := l.Wait(ctx); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}
