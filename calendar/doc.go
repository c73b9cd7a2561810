// Package calendar exposes the typed calendar operations of the zmail
// client: fetching, creating and searching appointments. Operations follow
// the same dispatch rules as package mail: unscoped calls coalesce, calls
// with an AccountID execute alone on that account's behalf.
package calendar
