package dispatch

import (
	"context"
	"encoding/json"
	"errors"
	"sync"
	"time"

	"github.com/Sidd545-cr/zmail/logging"
	"github.com/Sidd545-cr/zmail/transport"
	"github.com/Sidd545-cr/zmail/wire"
)

// ErrClosed is returned by Do after Close has been called.
var ErrClosed = errors.New("dispatch: dispatcher closed")

// BeforeCallHook runs just before an envelope is handed to the transport.
// Use for instrumentation or request auditing; the envelope is frozen and
// must not be mutated.
type BeforeCallHook func(env *wire.Envelope)

// AfterCallHook runs after the transport settles, before outcomes are
// delivered to callers. reply is nil when err is non-nil.
type AfterCallHook func(env *wire.Envelope, reply *wire.Reply, err error)

// Options holds dependency + configuration overrides passed to New().
type Options struct {
	// BatchWindow is how long the coalescer keeps a batch open after its
	// first request arrives. It defines batching granularity: everything
	// submitted inside the window shares one transport call.
	BatchWindow time.Duration
	// MaxBatchSize closes a window early once this many requests have
	// accumulated. Set to 1 to disable coalescing entirely.
	MaxBatchSize int
	// QueueSize sets channel buffering between submitters and the
	// coalescer loop.
	QueueSize int
	// MaxDelegatedCalls limits concurrent single-path (account-scoped)
	// transport calls. 0 means unlimited.
	MaxDelegatedCalls int
	// OnNotification receives the out-of-band payload of each completed
	// call that carries one.
	OnNotification NotificationHandler
	// BeforeCall / AfterCall hook around every transport call (batched or
	// single).
	BeforeCall BeforeCallHook
	AfterCall  AfterCallHook
	// Logger defaults to NoOpLogger.
	Logger logging.Logger
}

// Dispatcher is the entry point for every logical request. It routes each
// request to the batch coalescer or the single-call executor, threads the
// shared session token through the resulting transport calls and relays
// notifications. Public methods are safe for concurrent use.
type Dispatcher struct {
	transport transport.Transport
	logger    logging.Logger
	relay     *notifyRelay
	before    BeforeCallHook
	after     AfterCallHook

	session sessionState
	limiter *CallLimiter

	batchWindow  time.Duration
	maxBatchSize int

	queue chan *pending
	done  chan struct{}

	gateMu     sync.Mutex
	gateClosed bool
	submitters sync.WaitGroup
	closeOnce  sync.Once
}

// New constructs a Dispatcher over the given transport and starts its
// coalescer loop. Callers must Close it when finished.
func New(t transport.Transport, optFns ...func(o *Options)) *Dispatcher {
	opts := Options{
		BatchWindow:  time.Millisecond,
		MaxBatchSize: 64,
		QueueSize:    128,
		Logger:       logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	if opts.BatchWindow <= 0 {
		opts.BatchWindow = time.Millisecond
	}
	if opts.MaxBatchSize <= 0 {
		opts.MaxBatchSize = 64
	}
	if opts.QueueSize <= 0 {
		opts.QueueSize = 128
	}

	d := &Dispatcher{
		transport:    t,
		logger:       opts.Logger,
		relay:        &notifyRelay{handler: opts.OnNotification, logger: opts.Logger},
		before:       opts.BeforeCall,
		after:        opts.AfterCall,
		limiter:      NewCallLimiter(opts.MaxDelegatedCalls),
		batchWindow:  opts.BatchWindow,
		maxBatchSize: opts.MaxBatchSize,
		queue:        make(chan *pending, opts.QueueSize),
		done:         make(chan struct{}),
	}

	go d.run()

	return d
}

// Do submits one logical request and blocks until its own outcome settles.
//
// Routing is decided here, per request: a request with an account scope goes
// to the single-call executor, everything else joins the current batch
// window. The returned bytes are the item's success body; the error is either
// a *wire.Fault (item-level) or a wrapped transport failure shared with every
// sibling in the same envelope.
//
// Cancelling ctx abandons interest in the outcome only. A batch the request
// already joined is frozen and still executes in full.
func (d *Dispatcher) Do(ctx context.Context, req wire.Request) (json.RawMessage, error) {
	if !d.enter() {
		return nil, ErrClosed
	}
	defer d.exit()

	if req.Scoped() {
		return d.executeSingle(ctx, req)
	}

	p := &pending{req: req, done: make(chan outcome, 1)}
	select {
	case d.queue <- p:
	case <-ctx.Done():
		return nil, ctx.Err()
	}

	select {
	case out := <-p.done:
		return out.body, out.err
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// Session returns the current session token. Diagnostics only; the token is
// written exclusively by completion handling inside the dispatcher.
func (d *Dispatcher) Session() string {
	return d.session.snapshot()
}

// SessionGeneration returns how many times the session token has been
// replaced since construction.
func (d *Dispatcher) SessionGeneration() uint64 {
	_, gen := d.session.current()
	return gen
}

// Close stops accepting new requests, waits for in-flight submissions to
// settle, flushes the final batch window and shuts the coalescer loop down.
// It is idempotent.
func (d *Dispatcher) Close() {
	d.closeOnce.Do(func() {
		d.gateMu.Lock()
		d.gateClosed = true
		d.gateMu.Unlock()

		d.submitters.Wait()
		close(d.queue)
		<-d.done
	})
}

// enter registers a submitter so Close can drain before tearing the queue
// down. It fails once the dispatcher is closing.
func (d *Dispatcher) enter() bool {
	d.gateMu.Lock()
	defer d.gateMu.Unlock()
	if d.gateClosed {
		return false
	}
	d.submitters.Add(1)
	return true
}

func (d *Dispatcher) exit() {
	d.submitters.Done()
}

// completeCall applies a reply's session update and relays its notification.
// Runs before any outcome from that call is delivered, so a caller reacting
// to its own completion already observes the refreshed session.
func (d *Dispatcher) completeCall(reply *wire.Reply) {
	if d.session.apply(reply.Session) {
		d.logger.Debug("session token refreshed")
	}
	d.relay.dispatch(reply.Notify)
}

func (d *Dispatcher) callBefore(env *wire.Envelope) {
	if d.before != nil {
		d.before(env)
	}
}

func (d *Dispatcher) callAfter(env *wire.Envelope, reply *wire.Reply, err error) {
	if d.after != nil {
		d.after(env, reply, err)
	}
}
