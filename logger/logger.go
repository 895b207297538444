// Package logger provides the global structured logger for xarray-units.
//
// The logger is a no-op until Initialize is called, so importing the
// library never produces output on its own. Binaries (and tests that
// want log output) opt in:
//
//	if err := logger.Initialize(false); err != nil { ... }
//	logger.Logger.Debugw("converted units", "from", "km", "to", "m")
package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var (
	// Logger is the global logger instance. No-op until Initialize is called.
	Logger *zap.SugaredLogger

	// JSONOutput tracks whether JSON output is enabled
	JSONOutput bool
)

func init() {
	// Safe no-op logger at package load time so library code can log
	// unconditionally without nil checks
	Logger = zap.NewNop().Sugar()
}

// Initialize sets up the global logger based on the JSON output preference.
func Initialize(jsonOutput bool) error {
	return InitializeAt(jsonOutput, zapcore.InfoLevel)
}

// InitializeAt sets up the global logger with an explicit minimum level.
func InitializeAt(jsonOutput bool, level zapcore.Level) error {
	JSONOutput = jsonOutput

	var config zap.Config
	if jsonOutput {
		// JSON structured output for machine consumption
		config = zap.NewProductionConfig()
	} else {
		// Human-readable console output
		config = zap.NewDevelopmentConfig()
	}
	config.Level = zap.NewAtomicLevelAt(level)

	zapLogger, err := config.Build()
	if err != nil {
		return err
	}

	Logger = zapLogger.Sugar()
	return nil
}

// VerbosityToLevel maps CLI verbosity flag counts (-v, -vv) to zap levels.
//
//	0 (none) -> WarnLevel  (errors and warnings only)
//	1 (-v)   -> InfoLevel  (+ informational messages)
//	2+ (-vv) -> DebugLevel (+ debug messages)
func VerbosityToLevel(verbosity int) zapcore.Level {
	switch {
	case verbosity <= 0:
		return zapcore.WarnLevel
	case verbosity == 1:
		return zapcore.InfoLevel
	default:
		return zapcore.DebugLevel
	}
}

// Standard field names for consistent structured logging.
const (
	FieldUnits     = "units"
	FieldFromUnits = "from_units"
	FieldToUnits   = "to_units"
	FieldFactor    = "factor"
	FieldOperation = "operation"
	FieldCoord     = "coord"
	FieldError     = "error"
)
