package wire

import "encoding/json"

// Protocol namespaces select the service a request body is addressed to.
const (
	NamespaceMail    = "urn:zmailMail"
	NamespaceAccount = "urn:zmailAccount"
	NamespaceSync    = "urn:zmailSync"
)

// SessionNone is the placeholder session token carried before the service has
// issued one. The service treats it as "no session".
const SessionNone = ""

// Request is one logical operation as submitted by a caller. It is immutable
// once submitted; the dispatcher never rewrites a request after accepting it.
type Request struct {
	// Name identifies the operation, e.g. "SearchRequest".
	Name string `json:"name"`
	// Namespace selects the protocol namespace the operation belongs to.
	Namespace string `json:"ns"`
	// Body is the operation payload. Opaque to the dispatcher.
	Body json.RawMessage `json:"body,omitempty"`
	// AccountID, when non-empty, asks the service to execute the operation on
	// behalf of that account rather than the session owner. Scoped requests
	// never share an envelope with other callers' requests.
	AccountID string `json:"-"`
}

// Scoped reports whether the request carries a delegated account scope.
func (r Request) Scoped() bool { return r.AccountID != "" }

// Response is the per-item outcome for one request, correlated by position.
// Exactly one of Body and Fault is meaningful: a nil Fault marks success.
type Response struct {
	Body  json.RawMessage `json:"body,omitempty"`
	Fault *Fault          `json:"fault,omitempty"`
}

// Err returns the item's failure, or nil on success.
func (r Response) Err() error {
	if r.Fault == nil {
		return nil
	}
	return r.Fault
}

// Notification is an opaque out-of-band payload a reply may carry. The
// dispatcher relays it without interpretation; shape is service-defined.
type Notification = json.RawMessage

// Envelope is the outgoing wire unit for one transport call: the ordered list
// of requests plus the session snapshot taken at dispatch time. Account is set
// only on single-request envelopes executed on behalf of another account.
type Envelope struct {
	Session  string    `json:"session,omitempty"`
	Account  string    `json:"account,omitempty"`
	Requests []Request `json:"requests"`
}

// Reply is the incoming wire unit: one response per request, in request
// order, plus an optional refreshed session token and an optional
// notification payload.
type Reply struct {
	Session   string       `json:"session,omitempty"`
	Notify    Notification `json:"notify,omitempty"`
	Responses []Response   `json:"responses"`
}
