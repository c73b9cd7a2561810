package dispatch

import (
	"context"
	"testing"
	"time"
)

func TestCallLimiter_BoundsInflightCalls(t *testing.T) {
	l := NewCallLimiter(1)

	if err := l.Acquire(context.Background()); err != nil {
		t.Fatal(err)
	}
	if got := l.InFlight(); got != 1 {
		t.Fatalf("InFlight = %d, want 1", got)
	}

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := l.Acquire(ctx); err == nil {
		t.Fatal("second acquire should block until the slot frees")
	}

	l.Release()
	if err := l.Acquire(context.Background()); err != nil {
		t.Fatalf("acquire after release: %v", err)
	}
	l.Release()
}

func TestCallLimiter_ZeroMeansUnlimited(t *testing.T) {
	l := NewCallLimiter(0)
	for n := 0; n < 100; n++ {
		if err := l.Acquire(context.Background()); err != nil {
			t.Fatal(err)
		}
	}
	if got := l.InFlight(); got != 100 {
		t.Fatalf("InFlight = %d, want 100", got)
	}
}
