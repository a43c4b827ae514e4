// Package logging builds the zap logger. The terminal belongs to the UI, so
// logs only ever go to a file; with no file configured the logger is a no-op.
package logging

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/jask/panesync/internal/config"
	"github.com/jask/panesync/internal/state"
)

// New returns a JSON file logger for cfg, or zap.NewNop when cfg.Path is empty.
func New(cfg config.LogConfig) (*zap.Logger, error) {
	if cfg.Path == "" {
		return zap.NewNop(), nil
	}
	level, err := zapcore.ParseLevel(cfg.Level)
	if err != nil {
		return nil, fmt.Errorf("log level %q: %w", cfg.Level, err)
	}
	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0o755); err != nil {
		return nil, fmt.Errorf("mkdir log dir: %w", err)
	}

	zc := zap.NewProductionConfig()
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{cfg.Path}
	zc.ErrorOutputPaths = []string{cfg.Path}
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	logger, err := zc.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return logger, nil
}

// DispatchLogger returns a store listener that logs every change at debug.
func DispatchLogger(logger *zap.Logger) state.Listener {
	return func(c state.Change) {
		if ce := logger.Check(zapcore.DebugLevel, "dispatch"); ce != nil {
			ce.Write(
				zap.String("action", string(c.Action.Type)),
				zap.String("slice", c.Action.Slice()),
				zap.String("payload", c.Action.Payload()),
			)
		}
	}
}
