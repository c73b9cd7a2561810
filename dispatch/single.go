package dispatch

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/Sidd545-cr/zmail/wire"
)

// executeSingle runs one account-scoped request as its own transport call,
// in the caller's goroutine and under the caller's context. The envelope is
// tagged with the target account so the service executes the operation on
// that account's behalf. Session handling is identical to the batch path: a
// refreshed token from a delegated reply still replaces the one shared
// session value.
func (d *Dispatcher) executeSingle(ctx context.Context, req wire.Request) (json.RawMessage, error) {
	if err := d.limiter.Acquire(ctx); err != nil {
		return nil, err
	}
	defer d.limiter.Release()

	env := &wire.Envelope{
		Session:  d.session.snapshot(),
		Account:  req.AccountID,
		Requests: []wire.Request{req},
	}

	start := time.Now()
	d.callBefore(env)
	reply, err := d.transport.Execute(ctx, env)
	d.callAfter(env, reply, err)

	if err != nil {
		d.logger.Error("delegated call failed", "operation", req.Name, "account", req.AccountID, "error", err)
		return nil, fmt.Errorf("delegated call failed: %w", err)
	}
	if len(reply.Responses) != 1 {
		return nil, fmt.Errorf("reply carried %d responses for 1 request", len(reply.Responses))
	}

	d.completeCall(reply)

	d.logger.Debug("delegated call completed",
		"operation", req.Name,
		"account", req.AccountID,
		"duration", time.Since(start),
	)

	resp := reply.Responses[0]
	if resp.Fault != nil {
		return nil, resp.Fault
	}
	return resp.Body, nil
}
