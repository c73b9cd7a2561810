// Package logging provides a minimal logging interface and adapters for zmail.
//
// The Logger interface defines the standard logging methods (Debug, Info,
// Warn, Error) that the dispatcher and transport use for observability. This
// package includes:
//
//   - Logger interface for dependency injection
//   - SlogAdapter wrapping Go's structured logging
//   - ClientLogger with contextual helpers (component, account, call metrics)
//   - NoOpLogger for silent operation (testing, minimal setups)
//
// Usage:
//
//	logger := logging.NewSlogAdapter(slog.Default())
//	client := zmail.New(endpoint, func(o *zmail.Options) { o.Logger = logger })
//
// The design intentionally keeps the interface minimal to avoid vendor lock-in
// while supporting structured logging where available.
package logging
