package testutil

import (
	"context"
	"fmt"
	"sync"

	"github.com/Sidd545-cr/zmail/wire"
)

// Step scripts one transport call: either a reply or an error, plus an
// optional Block channel the call waits on before settling. Blocking lets
// tests hold a call in flight while submitting more requests.
type Step struct {
	Reply *wire.Reply
	Err   error
	Block <-chan struct{}
}

// ScriptedTransport settles calls from a fixed script, in order, and records
// every envelope it was handed. Safe for concurrent use.
type ScriptedTransport struct {
	mu        sync.Mutex
	script    []Step
	next      int
	envelopes []*wire.Envelope
}

// NewScriptedTransport creates a transport that will settle calls with the
// given steps in order.
func NewScriptedTransport(steps ...Step) *ScriptedTransport {
	return &ScriptedTransport{script: steps}
}

// Append adds further steps to the script.
func (t *ScriptedTransport) Append(steps ...Step) {
	t.mu.Lock()
	defer t.mu.Unlock()
	t.script = append(t.script, steps...)
}

// Execute settles the call with the next scripted step. Running past the end
// of the script fails the call, which usually means the test coalesced
// differently than expected.
func (t *ScriptedTransport) Execute(ctx context.Context, env *wire.Envelope) (*wire.Reply, error) {
	t.mu.Lock()
	// Deep-copy the request list; the dispatcher may reuse backing storage.
	cp := *env
	cp.Requests = append([]wire.Request(nil), env.Requests...)
	t.envelopes = append(t.envelopes, &cp)

	if t.next >= len(t.script) {
		n := t.next
		t.mu.Unlock()
		return nil, fmt.Errorf("testutil: unscripted transport call #%d", n+1)
	}
	step := t.script[t.next]
	t.next++
	t.mu.Unlock()

	if step.Block != nil {
		select {
		case <-step.Block:
		case <-ctx.Done():
			return nil, ctx.Err()
		}
	}
	if step.Err != nil {
		return nil, step.Err
	}
	return step.Reply, nil
}

// Calls returns how many transport calls have been issued.
func (t *ScriptedTransport) Calls() int {
	t.mu.Lock()
	defer t.mu.Unlock()
	return len(t.envelopes)
}

// Envelope returns the i-th recorded envelope.
func (t *ScriptedTransport) Envelope(i int) *wire.Envelope {
	t.mu.Lock()
	defer t.mu.Unlock()
	return t.envelopes[i]
}

// Envelopes returns a copy of all recorded envelopes.
func (t *ScriptedTransport) Envelopes() []*wire.Envelope {
	t.mu.Lock()
	defer t.mu.Unlock()
	return append([]*wire.Envelope(nil), t.envelopes...)
}

// TransportFunc adapts a function to the transport interface, for tests that
// want to route on envelope content instead of call order.
type TransportFunc func(ctx context.Context, env *wire.Envelope) (*wire.Reply, error)

// Execute calls f.
func (f TransportFunc) Execute(ctx context.Context, env *wire.Envelope) (*wire.Reply, error) {
	return f(ctx, env)
}
