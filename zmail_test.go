package zmail

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"

	"github.com/Sidd545-cr/zmail/calendar"
	"github.com/Sidd545-cr/zmail/internal/testutil"
	"github.com/Sidd545-cr/zmail/mail"
	"github.com/Sidd545-cr/zmail/wire"
)

func newTestClient(t *testing.T, tr *testutil.ScriptedTransport, optFns ...func(o *Options)) *Client {
	t.Helper()
	fns := append([]func(o *Options){func(o *Options) { o.Transport = tr }}, optFns...)
	c := New("http://unused.invalid", fns...)
	t.Cleanup(c.Close)
	return c
}

func TestClient_AuthInstallsSession(t *testing.T) {
	tr := testutil.NewScriptedTransport(
		testutil.Step{Reply: testutil.NewReplyBuilder().
			Session("s-100").
			OK(`{"authToken":"tok-abc","lifetime":172800000}`).
			Build()},
		testutil.Step{Reply: testutil.NewReplyBuilder().OK(`{}`).Build()},
	)
	c := newTestClient(t, tr)

	res, err := c.Auth(context.Background(), AuthOptions{Account: "ann@example.com", Password: "hunter2"})
	require.NoError(t, err)
	assert.Equal(t, "tok-abc", res.AuthToken)
	assert.Equal(t, int64(172800000), res.Lifetime)
	assert.Equal(t, "s-100", c.Session())

	// The auth request itself goes out with the placeholder session.
	env := tr.Envelope(0)
	assert.Equal(t, wire.SessionNone, env.Session)
	req := env.Requests[0]
	assert.Equal(t, "AuthRequest", req.Name)
	assert.Equal(t, wire.NamespaceAccount, req.Namespace)
	assert.Equal(t, "ann@example.com", gjson.GetBytes(req.Body, "account.name").String())

	// The next call carries the installed session.
	require.NoError(t, c.NoOp(context.Background()))
	assert.Equal(t, "s-100", tr.Envelope(1).Session)
}

func TestClient_AuthPreauthOverridesPassword(t *testing.T) {
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().OK(`{"authToken":"tok"}`).Build(),
	})
	c := newTestClient(t, tr)

	_, err := c.Auth(context.Background(), AuthOptions{Account: "a@example.com", PreauthKey: "pre-1"})
	require.NoError(t, err)

	body := tr.Envelope(0).Requests[0].Body
	assert.Equal(t, "pre-1", gjson.GetBytes(body, "preauth").String())
	assert.False(t, gjson.GetBytes(body, "password").Exists())
}

func TestClient_AuthMissingToken(t *testing.T) {
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().OK(`{}`).Build(),
	})
	c := newTestClient(t, tr)

	_, err := c.Auth(context.Background(), AuthOptions{Account: "a@example.com"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no token")
}

func TestClient_MixedSurfacesShareOneBatch(t *testing.T) {
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().
			OK(`{"folder":{"id":"1","name":"USER_ROOT"}}`).
			OK(`{"appt":{"id":"501","name":"standup"}}`).
			Build(),
	})
	c := newTestClient(t, tr, func(o *Options) { o.BatchWindow = 300 * time.Millisecond })

	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		folder, err := c.Mail().GetFolder(context.Background(), mail.GetFolderOptions{})
		assert.NoError(t, err)
		assert.Equal(t, "USER_ROOT", folder.Name)
	}()
	time.Sleep(30 * time.Millisecond)

	wg.Add(1)
	go func() {
		defer wg.Done()
		appt, err := c.Calendar().GetAppointment(context.Background(), calendar.GetAppointmentOptions{ID: "501"})
		assert.NoError(t, err)
		assert.Equal(t, "standup", appt.Subject)
	}()
	wg.Wait()

	require.Equal(t, 1, tr.Calls(), "operations from different surfaces coalesce into one envelope")
	env := tr.Envelope(0)
	require.Len(t, env.Requests, 2)
	assert.Equal(t, "GetFolderRequest", env.Requests[0].Name)
	assert.Equal(t, "GetAppointmentRequest", env.Requests[1].Name)
}

func TestClient_NotificationHandlerWiredThrough(t *testing.T) {
	var payloads []string
	tr := testutil.NewScriptedTransport(testutil.Step{
		Reply: testutil.NewReplyBuilder().Notify(`{"deleted":["257"]}`).OK(`{}`).Build(),
	})
	c := newTestClient(t, tr, func(o *Options) {
		o.OnNotification = func(n wire.Notification) { payloads = append(payloads, string(n)) }
	})

	require.NoError(t, c.NoOp(context.Background()))
	require.Len(t, payloads, 1)
	assert.JSONEq(t, `{"deleted":["257"]}`, payloads[0])
}
