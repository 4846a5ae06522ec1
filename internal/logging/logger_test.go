package logging

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func captureLogs(t *testing.T, level zerolog.Level) *bytes.Buffer {
	t.Helper()

	original := Logger
	t.Cleanup(func() {
		SetGlobalLogger(original)
	})

	buf := &bytes.Buffer{}
	SetGlobalLogger(zerolog.New(buf).Level(level))
	return buf
}

func TestNopByDefault(t *testing.T) {
	require.Equal(t, zerolog.Disabled, Logger.GetLevel())
	require.Same(t, &Logger, zerolog.DefaultContextLogger)
}

func TestSetGlobalLogger(t *testing.T) {
	buf := captureLogs(t, zerolog.DebugLevel)

	Debug().Int("keys", 3).Msg("cleared")
	Trace().Msg("dropped")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "cleared", entry["message"])
	require.Equal(t, "debug", entry["level"])
	require.InDelta(t, 3, entry["keys"], 0)
}

func TestComponent(t *testing.T) {
	buf := captureLogs(t, zerolog.DebugLevel)

	Component(zerolog.DebugLevel, "hash").Int("capacity", 16).Msg("resized")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	require.Equal(t, "hash", entry["component"])
	require.Equal(t, "debug", entry["level"])
}
