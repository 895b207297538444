package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
)

func TestLoggerIsNopBeforeInitialize(t *testing.T) {
	require.NotNil(t, Logger)

	// Must not panic even though nothing was initialized
	Logger.Debugw("no-op message", FieldUnits, "m")
}

func TestInitializeConsole(t *testing.T) {
	err := Initialize(false)
	require.NoError(t, err)
	assert.False(t, JSONOutput)
	require.NotNil(t, Logger)

	Logger.Infow("console message", FieldFromUnits, "km", FieldToUnits, "m")
}

func TestInitializeJSON(t *testing.T) {
	err := Initialize(true)
	require.NoError(t, err)
	assert.True(t, JSONOutput)
	require.NotNil(t, Logger)

	Logger.Infow("json message", FieldFactor, 1000.0)
}

func TestVerbosityToLevel(t *testing.T) {
	tests := []struct {
		verbosity int
		want      zapcore.Level
	}{
		{-1, zapcore.WarnLevel},
		{0, zapcore.WarnLevel},
		{1, zapcore.InfoLevel},
		{2, zapcore.DebugLevel},
		{5, zapcore.DebugLevel},
	}

	for _, tt := range tests {
		if got := VerbosityToLevel(tt.verbosity); got != tt.want {
			t.Errorf("VerbosityToLevel(%d) = %v, want %v", tt.verbosity, got, tt.want)
		}
	}
}
