package mapz

import (
	"bytes"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/require"
)

func TestDictionaryOptionsDefaults(t *testing.T) {
	options := NewDictionaryOptionsWithOptionsAndDefaults()
	require.Equal(t, uint32(8), options.InitialKeyCapacity)
	require.Equal(t, uint32(1), options.InitialValueCapacity)
	require.Empty(t, options.MetricsName)

	options = NewDictionaryOptionsWithOptionsAndDefaults(WithInitialKeyCapacity(1000), WithMetricsName("users"))
	require.Equal(t, uint32(1000), options.InitialKeyCapacity)
	require.Equal(t, uint32(1), options.InitialValueCapacity)
	require.Equal(t, "users", options.MetricsName)

	copied := NewDictionaryOptionsWithOptions(options.ToOption())
	require.Equal(t, options, copied)
}

func TestDictionaryOptionsLogging(t *testing.T) {
	options := NewDictionaryOptionsWithOptionsAndDefaults(WithInitialKeyCapacity(12000))

	var buf bytes.Buffer
	logger := zerolog.New(&buf)
	logger.Info().Object("options", options).Msg("test")
	require.Contains(t, buf.String(), `"initialKeyCapacity":"12,000"`)
	require.Contains(t, buf.String(), `"initialValueCapacity":"1"`)

	require.Contains(t, options.DebugMap(), "InitialKeyCapacity")
}
