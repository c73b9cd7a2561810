package transport

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/Sidd545-cr/zmail/internal/util"
	"github.com/Sidd545-cr/zmail/logging"
	"github.com/Sidd545-cr/zmail/wire"
)

// Compile-time assertion kept next to the implementation.
var _ Transport = (*HTTP)(nil)

// HTTPOptions configure the HTTP transport.
type HTTPOptions struct {
	// Client is the underlying HTTP client. Defaults to a client with
	// Timeout set from the Timeout option.
	Client *http.Client
	// Timeout bounds one round trip when no custom Client is supplied.
	Timeout time.Duration
	// UserAgent is sent on every call.
	UserAgent string
	// Header is merged into every outgoing request. Useful for gateway auth.
	Header http.Header
	// Logger receives per-call debug logging. Defaults to NoOpLogger.
	Logger logging.Logger
}

// HTTP posts JSON envelopes to a single service endpoint.
type HTTP struct {
	endpoint  string
	client    *http.Client
	userAgent string
	header    http.Header
	logger    logging.Logger
}

// NewHTTP creates an HTTP transport for the given service endpoint URL.
func NewHTTP(endpoint string, optFns ...func(o *HTTPOptions)) *HTTP {
	opts := HTTPOptions{
		Timeout:   30 * time.Second,
		UserAgent: "zmail-go",
		Logger:    logging.NoOpLogger{},
	}
	for _, fn := range optFns {
		fn(&opts)
	}
	client := opts.Client
	if client == nil {
		client = &http.Client{Timeout: opts.Timeout}
	}
	return &HTTP{
		endpoint:  endpoint,
		client:    client,
		userAgent: opts.UserAgent,
		header:    opts.Header,
		logger:    opts.Logger,
	}
}

// Execute posts the envelope and decodes the reply.
func (t *HTTP) Execute(ctx context.Context, env *wire.Envelope) (*wire.Reply, error) {
	payload, err := json.Marshal(env)
	if err != nil {
		return nil, fmt.Errorf("encode envelope: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, t.endpoint, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("build request: %w", err)
	}
	callID := util.NewID()
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", t.userAgent)
	req.Header.Set("X-Client-Call-Id", callID)
	for k, vs := range t.header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	start := time.Now()
	resp, err := t.client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("execute call: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read reply: %w", err)
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("service returned status %d: %s", resp.StatusCode, truncate(body, 200))
	}

	var reply wire.Reply
	if err := json.Unmarshal(body, &reply); err != nil {
		return nil, fmt.Errorf("decode reply: %w", err)
	}

	t.logger.Debug("envelope executed",
		"call_id", callID,
		"requests", len(env.Requests),
		"responses", len(reply.Responses),
		"duration", time.Since(start),
	)

	return &reply, nil
}

func truncate(b []byte, n int) string {
	if len(b) <= n {
		return string(b)
	}
	return string(b[:n]) + "..."
}
