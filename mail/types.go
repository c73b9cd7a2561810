package mail

// EmailAddress is one participant on a message. Kind distinguishes the
// participant role: "f" from, "t" to, "c" cc, "b" bcc.
type EmailAddress struct {
	Address  string `json:"address"`
	Personal string `json:"personal,omitempty"`
	Kind     string `json:"kind,omitempty"`
}

// MimePart is one body part of a message; multipart bodies nest.
type MimePart struct {
	ContentType string     `json:"contentType,omitempty"`
	SizeBytes   int64      `json:"sizeBytes,omitempty"`
	Content     string     `json:"content,omitempty"`
	Parts       []MimePart `json:"parts,omitempty"`
}

// Folder is one mail folder including its child subtree.
type Folder struct {
	ID           string   `json:"id"`
	Name         string   `json:"name"`
	ParentID     string   `json:"parentId,omitempty"`
	View         string   `json:"view,omitempty"`
	Unread       int      `json:"unread,omitempty"`
	MessageCount int      `json:"messageCount,omitempty"`
	SizeBytes    int64    `json:"sizeBytes,omitempty"`
	Folders      []Folder `json:"folders,omitempty"`
}

// MessageInfo is a message as returned by get and search operations. Date is
// epoch milliseconds.
type MessageInfo struct {
	ID             string         `json:"id,omitempty"`
	ConversationID string         `json:"conversationId,omitempty"`
	FolderID       string         `json:"folderId,omitempty"`
	Subject        string         `json:"subject,omitempty"`
	Excerpt        string         `json:"excerpt,omitempty"`
	Date           int64          `json:"date,omitempty"`
	Flags          string         `json:"flags,omitempty"`
	SizeBytes      int64          `json:"sizeBytes,omitempty"`
	Addresses      []EmailAddress `json:"addresses,omitempty"`
	Parts          []MimePart     `json:"parts,omitempty"`
}

// SearchResult is one page of search hits.
type SearchResult struct {
	Messages []MessageInfo `json:"messages,omitempty"`
	More     bool          `json:"more,omitempty"`
	Offset   int           `json:"offset,omitempty"`
}
