// Package logging configures the process-wide zap logger.
package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger is the global logger instance
var Logger *zap.Logger

// New builds a logger: human-readable at debug level when debug is set, JSON at
// info level otherwise. Both write to stderr so reports piped from stdout stay clean.
func New(debug bool, appName, appVersion string) (*zap.Logger, error) {
	var cfg zap.Config

	if debug {
		cfg = zap.NewDevelopmentConfig()
	} else {
		cfg = zap.NewProductionConfig()
		cfg.DisableStacktrace = true
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	}
	cfg.OutputPaths = []string{"stderr"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	// Add default fields
	cfg.InitialFields = map[string]interface{}{
		"appName":    appName,
		"appVersion": appVersion,
	}

	return cfg.Build()
}

// Setup builds the logger and installs it as Logger and as zap's global logger.
// On failure Logger falls back to a no-op logger.
func Setup(debug bool, appName, appVersion string) error {
	logger, err := New(debug, appName, appVersion)
	if err != nil {
		Logger = zap.NewNop()
		return err
	}

	Logger = logger
	zap.ReplaceGlobals(Logger)
	return nil
}
