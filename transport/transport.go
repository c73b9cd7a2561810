package transport

import (
	"context"

	"github.com/Sidd545-cr/zmail/wire"
)

// Transport executes exactly one envelope against the remote service.
//
// Contract:
//   - Execute either returns a structured *wire.Reply or an error; it never
//     returns both, and it never silently drops a call.
//   - A non-nil reply carries one response per request, in request order.
//     Violations of that shape are the caller's (dispatcher's) problem to
//     reject; the transport does not validate item counts.
//   - Execute honors ctx cancellation and deadlines.
type Transport interface {
	Execute(ctx context.Context, env *wire.Envelope) (*wire.Reply, error)
}
