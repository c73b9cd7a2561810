// Package wire defines the envelope types exchanged with a zmail-style
// mail/calendar service. It models:
//
//   - Request (one logical operation: name, namespace, opaque JSON body,
//     optional delegated account scope)
//   - Response (a tagged per-item outcome: success body or Fault)
//   - Envelope / Reply (the wire unit for one call: ordered requests plus the
//     session token in, ordered responses plus optional refreshed session and
//     out-of-band notification back)
//
// Responses correlate to requests strictly by position. The package owns the
// wire contract only; batching, session bookkeeping and transport live in the
// dispatch and transport packages.
package wire
