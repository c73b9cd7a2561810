// Package zmail provides a high-level façade over the dispatch core and the
// typed operation surfaces (mail, calendar) for talking to a zmail-style
// mail/calendar service. Most applications interact with this package by:
//  1. Creating a Client via New() with the service endpoint (optionally
//     overriding transport, coalescing and logging defaults)
//  2. Authenticating once via Auth, which installs the session token the
//     dispatcher threads through every later call
//  3. Issuing typed operations through Client.Mail() and Client.Calendar();
//     calls submitted close together coalesce into one round trip
//
// The façade delegates batching, session propagation and notification relay
// to dispatch.Dispatcher while keeping setup and usage ergonomics concise.
// All defaults are safe for local development and testing; production
// deployments typically supply a tuned transport and a structured logger.
package zmail

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/tidwall/gjson"

	"github.com/Sidd545-cr/zmail/calendar"
	"github.com/Sidd545-cr/zmail/dispatch"
	"github.com/Sidd545-cr/zmail/logging"
	"github.com/Sidd545-cr/zmail/mail"
	"github.com/Sidd545-cr/zmail/transport"
	"github.com/Sidd545-cr/zmail/wire"
)

// Options configures the Client instance.
type Options struct {
	// Transport overrides the default HTTP transport built from the
	// endpoint passed to New. Useful for tests and custom gateways.
	Transport transport.Transport

	// BatchWindow is how long the dispatcher keeps a batch open after its
	// first request arrives. Everything submitted inside the window shares
	// one round trip.
	BatchWindow time.Duration

	// MaxBatchSize freezes a batch early once this many requests have
	// accumulated. Set to 1 to disable coalescing.
	MaxBatchSize int

	// MaxDelegatedCalls limits concurrent delegated (account-scoped)
	// calls. 0 means unlimited.
	MaxDelegatedCalls int

	// OnNotification receives the opaque out-of-band payload of each
	// completed call that carries one. Registered at construction; there
	// is no later setter.
	OnNotification dispatch.NotificationHandler

	// Logger (defaults to NoOp logger if nil)
	Logger logging.Logger
}

// Client is the high-level façade aggregating the dispatcher and the typed
// operation surfaces.
type Client struct {
	opts       Options
	dispatcher *dispatch.Dispatcher
	mail       *mail.Client
	calendar   *calendar.Client
}

// New creates a new Client for the given service endpoint with optional
// overrides.
func New(endpoint string, optFns ...func(o *Options)) *Client {
	opts := Options{
		BatchWindow:  time.Millisecond,
		MaxBatchSize: 64,
		Logger:       logging.NoOpLogger{},
	}

	for _, fn := range optFns {
		fn(&opts)
	}

	tr := opts.Transport
	if tr == nil {
		tr = transport.NewHTTP(endpoint, func(o *transport.HTTPOptions) {
			o.Logger = opts.Logger
		})
	}

	d := dispatch.New(tr, func(o *dispatch.Options) {
		o.BatchWindow = opts.BatchWindow
		o.MaxBatchSize = opts.MaxBatchSize
		o.MaxDelegatedCalls = opts.MaxDelegatedCalls
		o.OnNotification = opts.OnNotification
		o.Logger = opts.Logger
	})

	return &Client{
		opts:       opts,
		dispatcher: d,
		mail:       mail.NewClient(d),
		calendar:   calendar.NewClient(d),
	}
}

// Mail returns the typed mail operation surface.
func (c *Client) Mail() *mail.Client { return c.mail }

// Calendar returns the typed calendar operation surface.
func (c *Client) Calendar() *calendar.Client { return c.calendar }

// Dispatcher exposes the underlying dispatcher for embedders issuing raw
// requests alongside the typed surfaces.
func (c *Client) Dispatcher() *dispatch.Dispatcher { return c.dispatcher }

// Session returns the current session token. Diagnostics only.
func (c *Client) Session() string { return c.dispatcher.Session() }

// Close flushes the final batch window and shuts the dispatcher down.
func (c *Client) Close() { c.dispatcher.Close() }

// AuthOptions carry the credentials for Auth.
type AuthOptions struct {
	// Account is the account name to authenticate as.
	Account string
	// Password authenticates by password.
	Password string
	// PreauthKey authenticates by a preauth token instead of a password.
	PreauthKey string
}

// AuthResult is the outcome of a successful Auth call.
type AuthResult struct {
	// AuthToken is the credential for the authenticated account.
	AuthToken string
	// Lifetime is how long the token stays valid, in milliseconds.
	Lifetime int64
}

// Auth authenticates against the service. The reply's session token is
// installed on the dispatcher automatically, so later calls continue the
// session without further wiring.
func (c *Client) Auth(ctx context.Context, opts AuthOptions) (*AuthResult, error) {
	body := map[string]any{
		"account": map[string]any{"by": "name", "name": opts.Account},
	}
	switch {
	case opts.PreauthKey != "":
		body["preauth"] = opts.PreauthKey
	default:
		body["password"] = opts.Password
	}

	encoded, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode auth body: %w", err)
	}
	raw, err := c.dispatcher.Do(ctx, wire.Request{
		Name:      "AuthRequest",
		Namespace: wire.NamespaceAccount,
		Body:      encoded,
	})
	if err != nil {
		return nil, err
	}

	token := gjson.GetBytes(raw, "authToken").String()
	if token == "" {
		return nil, fmt.Errorf("auth reply carried no token")
	}
	return &AuthResult{
		AuthToken: token,
		Lifetime:  gjson.GetBytes(raw, "lifetime").Int(),
	}, nil
}

// NoOp issues a keepalive call. Its main use is polling the service for
// notifications between real operations.
func (c *Client) NoOp(ctx context.Context) error {
	_, err := c.dispatcher.Do(ctx, wire.Request{
		Name:      "NoOpRequest",
		Namespace: wire.NamespaceMail,
		Body:      json.RawMessage(`{}`),
	})
	return err
}
