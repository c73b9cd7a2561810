package testutil

import (
	"encoding/json"

	"github.com/Sidd545-cr/zmail/wire"
)

// ReplyBuilder provides a fluent helper for constructing wire replies in
// tests. Example:
//
//	reply := NewReplyBuilder().Session("s2").OK(`{"id":"1"}`).Fault("mail.NO_SUCH_ITEM").Build()
//
// Chain only the parts you need; responses settle positionally in the order
// they were added.
type ReplyBuilder struct {
	session   string
	notify    json.RawMessage
	responses []wire.Response
}

// NewReplyBuilder creates an empty builder.
func NewReplyBuilder() *ReplyBuilder { return &ReplyBuilder{} }

// Session sets the refreshed session token carried by the reply (chainable).
func (b *ReplyBuilder) Session(token string) *ReplyBuilder {
	b.session = token
	return b
}

// Notify attaches a raw notification payload (chainable).
func (b *ReplyBuilder) Notify(payload string) *ReplyBuilder {
	b.notify = json.RawMessage(payload)
	return b
}

// OK appends a success response with the given raw JSON body (chainable).
func (b *ReplyBuilder) OK(body string) *ReplyBuilder {
	b.responses = append(b.responses, wire.Response{Body: json.RawMessage(body)})
	return b
}

// Fault appends a failed response with the given fault code (chainable).
func (b *ReplyBuilder) Fault(code string) *ReplyBuilder {
	b.responses = append(b.responses, wire.Response{Fault: &wire.Fault{Code: code}})
	return b
}

// Build returns the assembled reply.
func (b *ReplyBuilder) Build() *wire.Reply {
	return &wire.Reply{Session: b.session, Notify: b.notify, Responses: b.responses}
}
