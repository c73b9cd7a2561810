package dispatch

import (
	"context"
	"sync"
)

// CallLimiter bounds the number of delegated (single-path) calls in flight at
// once. Scoped requests bypass coalescing, so a burst of them becomes a burst
// of transport calls; the limiter applies backpressure instead of letting
// that burst through unchecked.
type CallLimiter struct {
	slots chan struct{}
	mu    sync.Mutex
	count int
}

// NewCallLimiter creates a limiter with a max number of in-flight calls.
// If max == 0, unlimited calls are allowed.
func NewCallLimiter(max int) *CallLimiter {
	l := &CallLimiter{}
	if max > 0 {
		l.slots = make(chan struct{}, max)
	}
	return l
}

// Acquire blocks until a slot is free or ctx is done.
func (l *CallLimiter) Acquire(ctx context.Context) error {
	if l.slots != nil {
		select {
		case l.slots <- struct{}{}:
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	l.mu.Lock()
	l.count++
	l.mu.Unlock()
	return nil
}

// Release frees a slot taken by Acquire.
func (l *CallLimiter) Release() {
	l.mu.Lock()
	l.count--
	l.mu.Unlock()
	if l.slots != nil {
		<-l.slots
	}
}

// InFlight returns the current number of calls holding a slot.
func (l *CallLimiter) InFlight() int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.count
}
