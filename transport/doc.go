// Package transport owns the single I/O boundary of the client: executing one
// wire.Envelope against the remote service and returning its wire.Reply.
//
// The Transport interface is the seam tests and embedders plug into; HTTP is
// the concrete implementation shipped here. A transport either resolves with a
// structured reply or fails with a transport-level error — it never settles a
// call partially and it never retries on its own.
package transport
