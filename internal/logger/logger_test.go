package logger

import (
	"bytes"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMask(t *testing.T) {
	assert.Equal(t, "***", Mask(""))
	assert.Equal(t, "***", Mask("abc123"))
	assert.Equal(t, "ABCDEF***", Mask("ABCDEFGHIJKLMNOP"))
}

func TestStdoutHandler_Levels(t *testing.T) {
	var buf bytes.Buffer

	prod := slog.New(stdoutHandler(&buf, false))
	prod.Debug("hidden")
	assert.Empty(t, buf.String())
	prod.Info("shown", "user_id", "u1")
	assert.Contains(t, buf.String(), `"user_id":"u1"`)

	buf.Reset()
	dev := slog.New(stdoutHandler(&buf, true))
	dev.Debug("visible")
	assert.Contains(t, buf.String(), "msg=visible")
}
