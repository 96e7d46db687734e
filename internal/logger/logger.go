// Package logger builds the application's zap logger.
package logger

import (
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Config selects the level, encoding and destination of the log.
type Config struct {
	Level    string
	Encoding string
	// Path is the log file. The terminal belongs to the UI, so an empty
	// Path discards output instead of writing to stdout.
	Path string
}

// New builds a zap.Logger using the provided configuration. The returned
// close func releases the log file.
func New(cfg Config) (*zap.Logger, func() error, error) {
	if cfg.Path == "" {
		return zap.NewNop(), func() error { return nil }, nil
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.TimeKey = "timestamp"
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	level := zapcore.InfoLevel
	if err := level.Set(cfg.Level); err != nil {
		level = zapcore.InfoLevel
	}

	var encoder zapcore.Encoder
	switch cfg.Encoding {
	case "console":
		encoder = zapcore.NewConsoleEncoder(encoderCfg)
	default:
		encoder = zapcore.NewJSONEncoder(encoderCfg)
	}

	if err := os.MkdirAll(filepath.Dir(cfg.Path), 0700); err != nil {
		return nil, nil, fmt.Errorf("failed to create log directory: %w", err)
	}
	f, err := os.OpenFile(cfg.Path, os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0600)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to open log file: %w", err)
	}

	core := zapcore.NewCore(encoder, zapcore.AddSync(zapcore.Lock(f)), level)
	log := zap.New(core, zap.AddCaller())

	closeFn := func() error {
		_ = log.Sync()
		return f.Close()
	}
	return log, closeFn, nil
}
