// Package mail exposes the typed mail operations of the zmail client:
// folders, messages, search and message actions. Every operation accepts a
// strongly-typed options struct and funnels through the dispatcher, so calls
// issued close together coalesce into one envelope automatically. Options
// carrying an AccountID execute on that account's behalf over the
// single-call path instead.
package mail
