package calendar

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Sidd545-cr/zmail/dispatch"
	"github.com/Sidd545-cr/zmail/schema"
	"github.com/Sidd545-cr/zmail/wire"
)

// Organizer is the appointment organizer participant.
type Organizer struct {
	Address  string `json:"address,omitempty"`
	Personal string `json:"personal,omitempty"`
}

// Appointment is one calendar appointment. Start and End are epoch
// milliseconds.
type Appointment struct {
	ID        string     `json:"id,omitempty"`
	UID       string     `json:"uid,omitempty"`
	FolderID  string     `json:"folderId,omitempty"`
	Subject   string     `json:"subject,omitempty"`
	Location  string     `json:"location,omitempty"`
	Start     int64      `json:"start,omitempty"`
	End       int64      `json:"end,omitempty"`
	AllDay    bool       `json:"allDay,omitempty"`
	FreeBusy  string     `json:"freeBusy,omitempty"`
	Organizer *Organizer `json:"organizer,omitempty"`
}

// Client issues typed calendar operations through a shared dispatcher.
type Client struct {
	d *dispatch.Dispatcher
}

// NewClient creates a calendar client on top of an existing dispatcher.
func NewClient(d *dispatch.Dispatcher) *Client {
	return &Client{d: d}
}

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

// GetAppointmentOptions select one appointment.
type GetAppointmentOptions struct {
	ID        string
	AccountID string
}

// GetAppointment fetches one appointment by ID.
func (c *Client) GetAppointment(ctx context.Context, opts GetAppointmentOptions) (*Appointment, error) {
	raw, err := c.do(ctx, "GetAppointmentRequest", map[string]any{"id": opts.ID}, opts.AccountID)
	if err != nil {
		return nil, err
	}
	return decodeAppointment(raw, "appt")
}

// CreateAppointmentOptions describe the appointment to create.
type CreateAppointmentOptions struct {
	Subject  string
	Location string
	// Start and End are epoch milliseconds.
	Start     int64
	End       int64
	AllDay    bool
	FolderID  string
	AccountID string
}

// CreateAppointment creates an appointment and returns its materialized form.
func (c *Client) CreateAppointment(ctx context.Context, opts CreateAppointmentOptions) (*Appointment, error) {
	// Domain shape first, then the service's terse attribute names.
	domain := Appointment{
		Subject:  opts.Subject,
		Location: opts.Location,
		Start:    opts.Start,
		End:      opts.End,
		AllDay:   opts.AllDay,
		FolderID: opts.FolderID,
	}
	domainRaw, err := json.Marshal(domain)
	if err != nil {
		return nil, fmt.Errorf("encode appointment: %w", err)
	}
	wireAppt, err := schema.Appointment.Denormalize(domainRaw)
	if err != nil {
		return nil, fmt.Errorf("denormalize appointment: %w", err)
	}

	raw, err := c.do(ctx, "CreateAppointmentRequest", map[string]any{"appt": json.RawMessage(wireAppt)}, opts.AccountID)
	if err != nil {
		return nil, err
	}
	return decodeAppointment(raw, "appt")
}

// SearchAppointmentsOptions describe one calendar search page. Start and End
// bound the expansion range in epoch milliseconds.
type SearchAppointmentsOptions struct {
	Query     string
	Start     int64
	End       int64
	Limit     int
	AccountID string
}

// SearchAppointments searches appointments within a time range.
func (c *Client) SearchAppointments(ctx context.Context, opts SearchAppointmentsOptions) ([]Appointment, error) {
	body := map[string]any{
		"types": "appointment",
	}
	if opts.Query != "" {
		body["query"] = opts.Query
	}
	if opts.Start > 0 {
		body["calExpandInstStart"] = opts.Start
	}
	if opts.End > 0 {
		body["calExpandInstEnd"] = opts.End
	}
	if opts.Limit > 0 {
		body["limit"] = opts.Limit
	}

	raw, err := c.do(ctx, "SearchRequest", body, opts.AccountID)
	if err != nil {
		return nil, err
	}

	node := gjson.GetBytes(raw, "appt")
	if !node.Exists() {
		return nil, nil
	}
	domain, err := schema.Appointment.Normalize(json.RawMessage(node.Raw))
	if err != nil {
		return nil, fmt.Errorf("normalize appointments: %w", err)
	}
	var appts []Appointment
	if err := json.Unmarshal(domain, &appts); err != nil {
		return nil, fmt.Errorf("decode appointments: %w", err)
	}
	return appts, nil
}

func decodeAppointment(raw json.RawMessage, key string) (*Appointment, error) {
	node := gjson.GetBytes(raw, key)
	if !node.Exists() {
		return nil, fmt.Errorf("reply carried no appointment")
	}
	domain, err := schema.Appointment.Normalize(json.RawMessage(node.Raw))
	if err != nil {
		return nil, fmt.Errorf("normalize appointment: %w", err)
	}
	var a Appointment
	if err := json.Unmarshal(domain, &a); err != nil {
		return nil, fmt.Errorf("decode appointment: %w", err)
	}
	return &a, nil
}
