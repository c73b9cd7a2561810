package mail

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/tidwall/gjson"

	"github.com/Sidd545-cr/zmail/schema"
)

// GetFolderOptions select the folder subtree to fetch. A zero FolderID
// returns the account's root folder tree.
type GetFolderOptions struct {
	// FolderID roots the returned subtree. Empty means the root folder.
	FolderID string
	// View filters subtree folders by default item type, e.g. "message"
	// or "appointment".
	View string
	// AccountID executes the fetch on another account's mailbox.
	AccountID string
}

// GetFolder fetches a folder subtree.
func (c *Client) GetFolder(ctx context.Context, opts GetFolderOptions) (*Folder, error) {
	body := map[string]any{}
	if opts.FolderID != "" {
		body["folder"] = map[string]any{"l": opts.FolderID}
	}
	if opts.View != "" {
		body["view"] = opts.View
	}

	raw, err := c.do(ctx, "GetFolderRequest", body, opts.AccountID)
	if err != nil {
		return nil, err
	}
	return decodeFolder(raw)
}

// CreateFolderOptions describe the folder to create.
type CreateFolderOptions struct {
	Name string
	// ParentID is the parent folder. Empty means the root folder.
	ParentID string
	// View sets the folder's default item type.
	View      string
	AccountID string
}

// CreateFolder creates a folder and returns its materialized form.
func (c *Client) CreateFolder(ctx context.Context, opts CreateFolderOptions) (*Folder, error) {
	folder := map[string]any{"name": opts.Name}
	if opts.ParentID != "" {
		folder["l"] = opts.ParentID
	}
	if opts.View != "" {
		folder["view"] = opts.View
	}

	raw, err := c.do(ctx, "CreateFolderRequest", map[string]any{"folder": folder}, opts.AccountID)
	if err != nil {
		return nil, err
	}
	return decodeFolder(raw)
}

func decodeFolder(raw json.RawMessage) (*Folder, error) {
	node := gjson.GetBytes(raw, "folder")
	if !node.Exists() {
		return nil, fmt.Errorf("reply carried no folder")
	}
	domain, err := schema.Folder.Normalize(json.RawMessage(node.Raw))
	if err != nil {
		return nil, fmt.Errorf("normalize folder: %w", err)
	}
	var f Folder
	if err := json.Unmarshal(domain, &f); err != nil {
		return nil, fmt.Errorf("decode folder: %w", err)
	}
	return &f, nil
}
