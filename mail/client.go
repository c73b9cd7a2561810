package mail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sidd545-cr/zmail/dispatch"
	"github.com/Sidd545-cr/zmail/wire"
)

// Client issues typed mail operations through a shared dispatcher.
type Client struct {
	d *dispatch.Dispatcher
}

// NewClient creates a mail client on top of an existing dispatcher.
func NewClient(d *dispatch.Dispatcher) *Client {
	return &Client{d: d}
}

// do marshals the operation body, submits the request and returns the raw
// success payload.
func (c *Client) do(ctx context.Context, name string, body any, accountID string) (json.RawMessage, error) {
	raw, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("encode %s body: %w", name, err)
	}
	return c.d.Do(ctx, wire.Request{
		Name:      name,
		Namespace: wire.NamespaceMail,
		Body:      raw,
		AccountID: accountID,
	})
}
