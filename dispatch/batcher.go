package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sidd545-cr/zmail/wire"
)

// outcome is the settled result for one submitted request.
type outcome struct {
	body json.RawMessage
	err  error
}

// pending pairs a submitted request with the channel its outcome is
// delivered on. done is buffered so delivery never blocks on a caller that
// abandoned its result.
type pending struct {
	req  wire.Request
	done chan outcome
}

// run is the coalescer loop. One goroutine owns batch assembly, the session
// snapshot/apply cycle for the batch path and outcome delivery, which is what
// serializes session reads across consecutive batches.
func (d *Dispatcher) run() {
	defer close(d.done)
	for {
		first, ok := <-d.queue
		if !ok {
			return
		}
		batch, more := d.collect(first)
		d.flush(batch)
		if !more {
			return
		}
	}
}

// collect assembles one batch. The window opens on the first request and
// closes when batchWindow elapses since that arrival or maxBatchSize is
// reached, whichever comes first. Arrival order is preserved; nothing is
// dropped or deduplicated, identical requests stay distinct items.
func (d *Dispatcher) collect(first *pending) ([]*pending, bool) {
	batch := []*pending{first}
	if d.maxBatchSize == 1 {
		return batch, true
	}

	timer := time.NewTimer(d.batchWindow)
	defer timer.Stop()

	for {
		select {
		case p, ok := <-d.queue:
			if !ok {
				return batch, false
			}
			batch = append(batch, p)
			if len(batch) >= d.maxBatchSize {
				return batch, true
			}
		case <-timer.C:
			return batch, true
		}
	}
}

// flush executes one frozen batch and demultiplexes the reply by position.
// The session update and notification are applied before any caller's
// outcome is delivered.
func (d *Dispatcher) flush(batch []*pending) {
	env := &wire.Envelope{
		Session:  d.session.snapshot(),
		Requests: make([]wire.Request, len(batch)),
	}
	for i, p := range batch {
		env.Requests[i] = p.req
	}

	start := time.Now()
	d.callBefore(env)
	reply, err := d.transport.Execute(context.Background(), env)
	d.callAfter(env, reply, err)

	if err != nil {
		// Transport-level failure: every caller in the envelope fails the
		// same way. No partial success is fabricated.
		err = fmt.Errorf("batch call failed: %w", err)
		for _, p := range batch {
			p.done <- outcome{err: err}
		}
		d.logger.Error("batch failed", "size", len(batch), "error", err)
		return
	}
	if len(reply.Responses) != len(batch) {
		err = fmt.Errorf("reply carried %d responses for %d requests", len(reply.Responses), len(batch))
		for _, p := range batch {
			p.done <- outcome{err: err}
		}
		d.logger.Error("malformed batch reply", "error", err)
		return
	}

	d.completeCall(reply)

	faults := 0
	for i, p := range batch {
		resp := reply.Responses[i]
		if resp.Fault != nil {
			faults++
			p.done <- outcome{err: resp.Fault}
			continue
		}
		p.done <- outcome{body: resp.Body}
	}

	d.logger.Debug("batch completed",
		"size", len(batch),
		"faults", faults,
		"duration", time.Since(start),
	)
}
