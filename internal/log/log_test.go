package log

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerFiltersByLevel(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelInfo)
	l.now = func() time.Time { return time.Date(2023, 1, 2, 3, 4, 5, 6e6, time.UTC) }

	l.Debug("hidden %d", 1)
	l.Info("query %q", "SELECT 1")
	l.Warn("failed")

	assert.Equal(t,
		"[2023-01-02 03:04:05.006] [INFO] query \"SELECT 1\"\n"+
			"[2023-01-02 03:04:05.006] [WARN] failed\n",
		buf.String())

	assert.False(t, l.Enabled(LevelDebug))
	assert.True(t, l.Enabled(LevelError))
}

func TestLoggerOff(t *testing.T) {
	var buf bytes.Buffer
	l := New(&buf, LevelOff)
	l.Error("nothing")
	assert.Empty(t, buf.String())

	l = New(nil, LevelDebug)
	assert.NotPanics(t, func() { l.Error("no output") })
}

func TestDefaultLogger(t *testing.T) {
	var buf bytes.Buffer
	SetOutput(&buf)
	SetLevel(LevelDebug)
	defer func() {
		SetOutput(nil)
		SetLevel(LevelWarn)
	}()

	Debug("a")
	Error("b")
	assert.Contains(t, buf.String(), "[DEBUG] a")
	assert.Contains(t, buf.String(), "[ERROR] b")
	assert.Same(t, defaultLogger, Default())
}

func TestParseLevel(t *testing.T) {
	for name, want := range map[string]Level{"debug": LevelDebug, "INFO": LevelInfo, "Warn": LevelWarn, "error": LevelError, "off": LevelOff} {
		got, err := ParseLevel(name)
		require.NoError(t, err)
		assert.Equal(t, want, got)
	}
	_, err := ParseLevel("loud")
	assert.Error(t, err)
	assert.Equal(t, "WARN", LevelWarn.String())
	assert.Equal(t, "Level(9)", Level(9).String())
}
