package mail

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/tidwall/gjson"

	"github.com/Sidd545-cr/zmail/schema"
)

// GetMessageOptions select one message.
type GetMessageOptions struct {
	ID string
	// WantBody asks the service to inline body part content.
	WantBody  bool
	AccountID string
}

// GetMessage fetches one message by ID.
func (c *Client) GetMessage(ctx context.Context, opts GetMessageOptions) (*MessageInfo, error) {
	m := map[string]any{"id": opts.ID}
	if opts.WantBody {
		m["html"] = 1
	}

	raw, err := c.do(ctx, "GetMsgRequest", map[string]any{"m": m}, opts.AccountID)
	if err != nil {
		return nil, err
	}

	node := gjson.GetBytes(raw, "m")
	if !node.Exists() {
		return nil, fmt.Errorf("reply carried no message")
	}
	domain, err := schema.Message.Normalize(json.RawMessage(node.Raw))
	if err != nil {
		return nil, fmt.Errorf("normalize message: %w", err)
	}
	var msg MessageInfo
	if err := json.Unmarshal(domain, &msg); err != nil {
		return nil, fmt.Errorf("decode message: %w", err)
	}
	return &msg, nil
}

// SendMessageOptions describe the message to send. Addresses must include at
// least one "t" (to) participant; the service fills in the "f" (from)
// participant when absent.
type SendMessageOptions struct {
	Subject   string
	Addresses []EmailAddress
	// Text is the plain-text body.
	Text      string
	AccountID string
}

// SendMessage submits a message for delivery and returns the stored
// message's ID.
func (c *Client) SendMessage(ctx context.Context, opts SendMessageOptions) (string, error) {
	// Build the domain shape first, then denormalize into the service's
	// terse attribute names.
	domainMsg := MessageInfo{
		Subject:   opts.Subject,
		Addresses: opts.Addresses,
		Parts:     []MimePart{{ContentType: "text/plain", Content: opts.Text}},
	}
	domainRaw, err := json.Marshal(domainMsg)
	if err != nil {
		return "", fmt.Errorf("encode message: %w", err)
	}
	wireMsg, err := schema.Message.Denormalize(domainRaw)
	if err != nil {
		return "", fmt.Errorf("denormalize message: %w", err)
	}

	raw, err := c.do(ctx, "SendMsgRequest", map[string]any{"m": json.RawMessage(wireMsg)}, opts.AccountID)
	if err != nil {
		return "", err
	}

	id := gjson.GetBytes(raw, "m.id").String()
	if id == "" {
		return "", fmt.Errorf("reply carried no message id")
	}
	return id, nil
}

// ActionOptions select the messages a state-changing action applies to.
type ActionOptions struct {
	IDs       []string
	AccountID string
}

// MarkRead sets or clears the read state of the given messages.
func (c *Client) MarkRead(ctx context.Context, read bool, opts ActionOptions) error {
	op := "read"
	if !read {
		op = "!read"
	}
	return c.msgAction(ctx, op, opts)
}

// Flag sets or clears the flagged state of the given messages.
func (c *Client) Flag(ctx context.Context, flagged bool, opts ActionOptions) error {
	op := "flag"
	if !flagged {
		op = "!flag"
	}
	return c.msgAction(ctx, op, opts)
}

func (c *Client) msgAction(ctx context.Context, op string, opts ActionOptions) error {
	if len(opts.IDs) == 0 {
		return fmt.Errorf("msg action %q: no message ids", op)
	}
	body := map[string]any{
		"action": map[string]any{
			"id": strings.Join(opts.IDs, ","),
			"op": op,
		},
	}
	_, err := c.do(ctx, "MsgActionRequest", body, opts.AccountID)
	return err
}
