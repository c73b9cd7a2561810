// Package testutil contains helper fakes and builders used across tests to
// reduce boilerplate when scripting transport behavior and constructing wire
// replies. These helpers are intentionally minimal and avoid adding
// third-party dependencies. They are not intended for production usage.
package testutil
