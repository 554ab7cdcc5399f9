package logger

import (
	"bytes"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func decodeLines(t *testing.T, buf *bytes.Buffer) []map[string]any {
	t.Helper()
	var out []map[string]any
	for _, line := range strings.Split(strings.TrimSpace(buf.String()), "\n") {
		if line == "" {
			continue
		}
		m := map[string]any{}
		require.NoError(t, json.Unmarshal([]byte(line), &m))
		out = append(out, m)
	}
	return out
}

func TestNewWithWriter_JSON(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "debug", Format: FormatJSON}, &buf, "test-lib")

	l.WithComponent("blocking").Debug("subscribed", Fields(FieldOperation, "first", FieldSubscriptionID, "abc"))

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "debug", lines[0]["level"])
	assert.Equal(t, "subscribed", lines[0]["message"])
	assert.Equal(t, "test-lib", lines[0][FieldLibrary])
	assert.Equal(t, "blocking", lines[0][FieldComponent])
	assert.Equal(t, "first", lines[0][FieldOperation])
	assert.Equal(t, "abc", lines[0][FieldSubscriptionID])
}

func TestNewWithWriter_LevelFiltersPerLogger(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "warn", Format: FormatJSON}, &buf, "")

	l.Debug("hidden")
	l.Info("hidden")
	l.Warn("shown")
	l.Error("shown too")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 2)
	assert.False(t, l.Enabled(zerolog.DebugLevel))
	assert.True(t, l.Enabled(zerolog.ErrorLevel))
}

func TestNewWithWriter_InvalidLevelFallsBackToInfo(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "loud", Format: FormatJSON}, &buf, "")
	l.Debug("hidden")
	l.Info("shown")
	assert.Len(t, decodeLines(t, &buf), 1)
}

func TestWithFieldsAndError(t *testing.T) {
	var buf bytes.Buffer
	l := NewWithWriter(&Config{Level: "info", Format: FormatJSON}, &buf, "")

	l.WithFields(map[string]interface{}{"policy": "latest"}).WithError(errors.New("boom")).Info("done")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 1)
	assert.Equal(t, "latest", lines[0]["policy"])
	assert.Equal(t, "boom", lines[0]["error"])
}

func TestNop(t *testing.T) {
	l := Nop()
	l.Error("nothing happens")
	assert.False(t, l.Enabled(zerolog.ErrorLevel))
}

func TestGlobalLogger(t *testing.T) {
	prev := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(prev) })

	var buf bytes.Buffer
	SetGlobalLogger(NewWithWriter(&Config{Level: "debug", Format: FormatJSON}, &buf, "global"))

	Debug("d")
	Info("i")
	Warn("w")
	Error("e")
	WithComponent("x").Info("c")

	lines := decodeLines(t, &buf)
	require.Len(t, lines, 5)
	assert.Equal(t, "x", lines[4][FieldComponent])
}

func TestInit(t *testing.T) {
	prev := GetGlobalLogger()
	t.Cleanup(func() { SetGlobalLogger(prev) })

	cfg := Config{Output: "discard"}
	Init(&cfg)
	assert.Equal(t, "info", cfg.Level)
	assert.NotSame(t, prev, GetGlobalLogger())
}

func TestRegistry(t *testing.T) {
	var buf bytes.Buffer
	custom := NewWithWriter(&Config{Level: "debug", Format: FormatJSON}, &buf, "")
	Register("bridge-test", custom)
	t.Cleanup(func() { Unregister("bridge-test") })

	assert.Same(t, custom, Get("bridge-test"))

	Unregister("bridge-test")
	assert.NotSame(t, custom, Get("bridge-test"))
}

func TestConfigApplyDefaults(t *testing.T) {
	cfg := Config{}
	cfg.ApplyDefaults()

	assert.Equal(t, "info", cfg.Level)
	assert.Equal(t, FormatConsole, cfg.Format)
	assert.Equal(t, "stderr", cfg.Output)
	assert.True(t, cfg.Timestamp)
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr bool
	}{
		{"valid", Config{Level: "info", Format: "json"}, false},
		{"valid console", Config{Level: "debug", Format: "console"}, false},
		{"invalid level", Config{Level: "bad", Format: "json"}, true},
		{"invalid format", Config{Level: "info", Format: "xml"}, true},
	}
	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.cfg.Validate()
			assert.Equal(t, tc.wantErr, err != nil, "Validate() error = %v", err)
		})
	}
}

func TestFieldsHelpers(t *testing.T) {
	f := Fields("a", 1, "b")
	assert.Equal(t, map[string]interface{}{"a": 1}, f)

	ef := ErrorFields("first", errors.New("x"))
	assert.Equal(t, "first", ef[FieldOperation])
	assert.Equal(t, "x", ef[FieldError])
}
