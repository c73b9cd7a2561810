// Package schema translates between the service's terse wire attribute names
// and the domain names the typed clients expose. Translation is a pure
// structural rename driven by Schema definitions: Normalize maps a wire
// object to its domain shape, Denormalize maps back. Both are total and
// side-effect-free over well-formed JSON; attributes without a mapping pass
// through untouched.
//
// The coalescing core never calls into this package. Typed operations
// denormalize their options before building a request and normalize the
// demultiplexed success payload afterwards.
package schema
