package schema

// Predefined mappings for the entities the typed clients work with. Wire
// names follow the service's terse attribute vocabulary.

// EmailAddress maps a message participant.
var EmailAddress = &Schema{Fields: []Field{
	{Wire: "a", Domain: "address"},
	{Wire: "p", Domain: "personal"},
	{Wire: "t", Domain: "kind"},
}}

// MimePart maps one body part of a message. Multipart bodies nest through
// the same schema, so the definition is self-referential and built in an
// init-style constructor.
var MimePart = newMimePartSchema()

func newMimePartSchema() *Schema {
	s := &Schema{}
	s.Fields = []Field{
		{Wire: "ct", Domain: "contentType"},
		{Wire: "s", Domain: "sizeBytes"},
		{Wire: "mp", Domain: "parts", Schema: s},
	}
	return s
}

// Message maps a full message as returned by GetMsg.
var Message = &Schema{Fields: []Field{
	{Wire: "cid", Domain: "conversationId"},
	{Wire: "l", Domain: "folderId"},
	{Wire: "su", Domain: "subject"},
	{Wire: "fr", Domain: "excerpt"},
	{Wire: "d", Domain: "date"},
	{Wire: "s", Domain: "sizeBytes"},
	{Wire: "f", Domain: "flags"},
	{Wire: "e", Domain: "addresses", Schema: EmailAddress},
	{Wire: "mp", Domain: "parts", Schema: MimePart},
}}

// Folder maps one folder including its child subtree.
var Folder = newFolderSchema()

func newFolderSchema() *Schema {
	s := &Schema{}
	s.Fields = []Field{
		{Wire: "l", Domain: "parentId"},
		{Wire: "u", Domain: "unread"},
		{Wire: "n", Domain: "messageCount"},
		{Wire: "s", Domain: "sizeBytes"},
		{Wire: "folder", Domain: "folders", Schema: s},
	}
	return s
}

// SearchResults maps a search reply: message hits plus paging markers.
var SearchResults = &Schema{Fields: []Field{
	{Wire: "m", Domain: "messages", Schema: Message},
	{Wire: "more", Domain: "more"},
	{Wire: "offset", Domain: "offset"},
}}

// Appointment maps a calendar appointment.
var Appointment = &Schema{Fields: []Field{
	{Wire: "l", Domain: "folderId"},
	{Wire: "name", Domain: "subject"},
	{Wire: "loc", Domain: "location"},
	{Wire: "st", Domain: "start"},
	{Wire: "et", Domain: "end"},
	{Wire: "allDay", Domain: "allDay"},
	{Wire: "or", Domain: "organizer", Schema: EmailAddress},
	{Wire: "fb", Domain: "freeBusy"},
}}
