package logging

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	tests := []struct {
		in   string
		want slog.Level
	}{
		{"debug", slog.LevelDebug},
		{"INFO", slog.LevelInfo},
		{"Warn", slog.LevelWarn},
		{"error", slog.LevelError},
		{"verbose", slog.LevelInfo},
		{"", slog.LevelInfo},
	}
	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, ParseLevel(tt.in))
		})
	}
}

func TestIsValidLevel(t *testing.T) {
	assert.True(t, IsValidLevel("debug"))
	assert.True(t, IsValidLevel("ERROR"))
	assert.False(t, IsValidLevel("trace"))
}

func TestLoggerJSONCarriesInstance(t *testing.T) {
	var buf bytes.Buffer
	log := NewLogger(&buf, LevelInfo, FormatJSON).WithInstance("abc").WithComponent("session")

	log.Info("midi port opened", "port", 2)
	log.Debug("dropped at info level")

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "midi port opened", rec["msg"])
	assert.Equal(t, "abc", rec["instance_id"])
	assert.Equal(t, "session", rec["component"])
	assert.EqualValues(t, 2, rec["port"])
}

func TestDebugEnabled(t *testing.T) {
	assert.False(t, Nop().DebugEnabled())
	var buf bytes.Buffer
	assert.True(t, NewLogger(&buf, LevelDebug, FormatText).DebugEnabled())
}
