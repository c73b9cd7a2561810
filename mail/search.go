package mail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/Sidd545-cr/zmail/schema"
)

// SearchOptions describe one search page.
type SearchOptions struct {
	// Query is the service query string, e.g. "in:inbox is:unread".
	Query string
	// Limit caps the page size. 0 uses the service default.
	Limit int
	// Offset skips into the result set for paging.
	Offset    int
	AccountID string
}

// Search runs a message search and returns one page of hits.
func (c *Client) Search(ctx context.Context, opts SearchOptions) (*SearchResult, error) {
	body := map[string]any{
		"query": opts.Query,
		"types": "message",
	}
	if opts.Limit > 0 {
		body["limit"] = opts.Limit
	}
	if opts.Offset > 0 {
		body["offset"] = opts.Offset
	}

	raw, err := c.do(ctx, "SearchRequest", body, opts.AccountID)
	if err != nil {
		return nil, err
	}

	domain, err := schema.SearchResults.Normalize(raw)
	if err != nil {
		return nil, fmt.Errorf("normalize search results: %w", err)
	}
	var res SearchResult
	if err := json.Unmarshal(domain, &res); err != nil {
		return nil, fmt.Errorf("decode search results: %w", err)
	}
	return &res, nil
}
