package mail

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/Sidd545-cr/zmail/dispatch"
	"github.com/Sidd545-cr/zmail/internal/testutil"
	"github.com/Sidd545-cr/zmail/wire"
)

func newTestClient(t *testing.T, tr *testutil.ScriptedTransport) *Client {
	t.Helper()
	d := dispatch.New(tr)
	t.Cleanup(d.Close)
	return NewClient(d)
}

func TestClient_GetFolderDecodesTree(t *testing.T) {
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().OK(`{
			"folder": {
				"id": "1", "name": "USER_ROOT",
				"folder": [
					{"id": "2", "name": "Inbox", "l": "1", "u": 3, "n": 42, "view": "message"}
				]
			}
		}`).Build(),
	})
	c := newTestClient(t, tr)

	folder, err := c.GetFolder(context.Background(), GetFolderOptions{View: "message"})
	require.NoError(t, err)

	assert.Equal(t, "USER_ROOT", folder.Name)
	require.Len(t, folder.Folders, 1)
	inbox := folder.Folders[0]
	assert.Equal(t, "Inbox", inbox.Name)
	assert.Equal(t, "1", inbox.ParentID)
	assert.Equal(t, 3, inbox.Unread)
	assert.Equal(t, 42, inbox.MessageCount)

	req := tr.Envelope(0).Requests[0]
	assert.Equal(t, "GetFolderRequest", req.Name)
	assert.Equal(t, wire.NamespaceMail, req.Namespace)
	assert.Equal(t, "message", gjson.GetBytes(req.Body, "view").String())
}

func TestClient_GetMessageNormalizesAddresses(t *testing.T) {
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().OK(`{
			"m": {
				"id": "257", "su": "lunch?", "fr": "are you free", "d": 1724930000000,
				"e": [{"a": "ann@example.com", "p": "Ann", "t": "f"}]
			}
		}`).Build(),
	})
	c := newTestClient(t, tr)

	msg, err := c.GetMessage(context.Background(), GetMessageOptions{ID: "257"})
	require.NoError(t, err)

	assert.Equal(t, "lunch?", msg.Subject)
	assert.Equal(t, "are you free", msg.Excerpt)
	assert.Equal(t, int64(1724930000000), msg.Date)
	require.Len(t, msg.Addresses, 1)
	assert.Equal(t, "ann@example.com", msg.Addresses[0].Address)
	assert.Equal(t, "f", msg.Addresses[0].Kind)
}

func TestClient_GetMessageFault(t *testing.T) {
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().Fault(wire.FaultNoSuchItem).Build(),
	})
	c := newTestClient(t, tr)

	_, err := c.GetMessage(context.Background(), GetMessageOptions{ID: "999"})
	assert.True(t, wire.IsFault(err, wire.FaultNoSuchItem))
}

func TestClient_SendMessageDenormalizesBody(t *testing.T) {
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().OK(`{"m":{"id":"301"}}`).Build(),
	})
	c := newTestClient(t, tr)

	id, err := c.SendMessage(context.Background(), SendMessageOptions{
		Subject:   "status",
		Addresses: []EmailAddress{{Address: "bob@example.com", Kind: "t"}},
		Text:      "shipping today",
	})
	require.NoError(t, err)
	assert.Equal(t, "301", id)

	// The outgoing body must carry wire attribute names, not domain names.
	body := tr.Envelope(0).Requests[0].Body
	assert.Equal(t, "status", gjson.GetBytes(body, "m.su").String())
	assert.Equal(t, "bob@example.com", gjson.GetBytes(body, "m.e.0.a").String())
	assert.Equal(t, "text/plain", gjson.GetBytes(body, "m.mp.0.ct").String())
	assert.False(t, gjson.GetBytes(body, "m.subject").Exists())
}

func TestClient_SearchDecodesPage(t *testing.T) {
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().OK(`{
			"more": true, "offset": 0,
			"m": [
				{"id": "10", "su": "first", "l": "2"},
				{"id": "11", "su": "second", "l": "2"}
			]
		}`).Build(),
	})
	c := newTestClient(t, tr)

	res, err := c.Search(context.Background(), SearchOptions{Query: "in:inbox", Limit: 2})
	require.NoError(t, err)

	assert.True(t, res.More)
	require.Len(t, res.Messages, 2)
	assert.Equal(t, "first", res.Messages[0].Subject)
	assert.Equal(t, "2", res.Messages[1].FolderID)

	body := tr.Envelope(0).Requests[0].Body
	assert.Equal(t, "in:inbox", gjson.GetBytes(body, "query").String())
	assert.Equal(t, int64(2), gjson.GetBytes(body, "limit").Int())
}

func TestClient_MarkReadBuildsAction(t *testing.T) {
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().OK(`{}`).Build(),
	})
	c := newTestClient(t, tr)

	require.NoError(t, c.MarkRead(context.Background(), false, ActionOptions{IDs: []string{"10", "11"}}))

	body := tr.Envelope(0).Requests[0].Body
	assert.Equal(t, "10,11", gjson.GetBytes(body, "action.id").String())
	assert.Equal(t, "!read", gjson.GetBytes(body, "action.op").String())
}

func TestClient_MarkReadRequiresIDs(t *testing.T) {
	c := newTestClient(t, testutil.NewScriptedTransport())
	err := c.MarkRead(context.Background(), true, ActionOptions{})
	require.Error(t, err)
}

func TestClient_DelegatedOptionsRouteSingly(t *testing.T) {
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().OK(`{"folder":{"id":"1","name":"USER_ROOT"}}`).Build(),
	})
	c := newTestClient(t, tr)

	_, err := c.GetFolder(context.Background(), GetFolderOptions{AccountID: "acct-b"})
	require.NoError(t, err)

	env := tr.Envelope(0)
	assert.Equal(t, "acct-b", env.Account)
	require.Len(t, env.Requests, 1)
}
