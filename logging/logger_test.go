package logging

import (
	"bytes"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/tidwall/gjson"
)

func newCaptureLogger(level LogLevel) (*ClientLogger, *bytes.Buffer) {
	var buf bytes.Buffer
	l := NewLogger(&LoggerConfig{Level: level, Format: "json", Output: &buf})
	return l, &buf
}

// lastLine returns the final JSON log entry written to buf.
func lastLine(t *testing.T, buf *bytes.Buffer) gjson.Result {
	t.Helper()
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.NotEmpty(t, lines)
	entry := gjson.Parse(lines[len(lines)-1])
	require.True(t, entry.IsObject(), "log output must be one JSON object per line")
	return entry
}

func TestClientLogger_ContextualFields(t *testing.T) {
	l, buf := newCaptureLogger(LogLevelDebug)

	l.WithComponent("dispatch").WithAccount("acct-7").Info("window frozen")

	entry := lastLine(t, buf)
	assert.Equal(t, "window frozen", entry.Get("msg").String())
	assert.Equal(t, "dispatch", entry.Get("component").String())
	assert.Equal(t, "acct-7", entry.Get("account_id").String())
}

func TestClientLogger_LevelGating(t *testing.T) {
	l, buf := newCaptureLogger(LogLevelWarn)

	l.Debug("hidden")
	l.Info("hidden")
	assert.Empty(t, buf.String(), "entries below the configured level must be dropped")

	l.Warn("visible")
	assert.Equal(t, "visible", lastLine(t, buf).Get("msg").String())
}

func TestClientLogger_LogCall(t *testing.T) {
	l, buf := newCaptureLogger(LogLevelInfo)

	l.LogCall("GetFolderRequest", 12*time.Millisecond, true, nil)
	entry := lastLine(t, buf)
	assert.Equal(t, "Call completed", entry.Get("msg").String())
	assert.Equal(t, "GetFolderRequest", entry.Get("operation").String())
	assert.True(t, entry.Get("success").Bool())
	assert.False(t, entry.Get("error").Exists())

	l.LogCall("SendMsgRequest", 3*time.Millisecond, false, errors.New("gateway timeout"))
	entry = lastLine(t, buf)
	assert.Equal(t, "Call failed", entry.Get("msg").String())
	assert.Equal(t, "ERROR", entry.Get("level").String())
	assert.Equal(t, "gateway timeout", entry.Get("error").String())
}

func TestClientLogger_LogBatch(t *testing.T) {
	l, buf := newCaptureLogger(LogLevelInfo)

	l.LogBatch(4, 1, 20*time.Millisecond, nil)
	entry := lastLine(t, buf)
	assert.Equal(t, "Batch completed", entry.Get("msg").String())
	assert.Equal(t, int64(4), entry.Get("batch_size").Int())
	assert.Equal(t, int64(1), entry.Get("fault_count").Int())

	l.LogBatch(2, 0, time.Millisecond, errors.New("connection reset"))
	entry = lastLine(t, buf)
	assert.Equal(t, "Batch failed", entry.Get("msg").String())
	assert.Equal(t, "connection reset", entry.Get("error").String())
}

func TestClientLogger_StartTimer(t *testing.T) {
	l, buf := newCaptureLogger(LogLevelInfo)

	stop := l.StartTimer("auth")
	stop()

	assert.Contains(t, lastLine(t, buf).Get("msg").String(), "Operation completed")
}
