package config

import (
	"fmt"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func (c LoggingConfig) level() (zapcore.Level, error) {
	if c.Level == "" {
		return zapcore.InfoLevel, nil
	}
	level, err := zapcore.ParseLevel(c.Level)
	if err != nil {
		return level, fmt.Errorf("logging.level: %w", err)
	}
	return level, nil
}

// Logger builds the logger described by c. It writes to stderr.
func (c LoggingConfig) Logger() (*zap.Logger, error) {
	level, err := c.level()
	if err != nil {
		return nil, err
	}

	var zc zap.Config
	switch c.Format {
	case "", "console":
		zc = zap.NewDevelopmentConfig()
		zc.DisableStacktrace = true
	case "json":
		zc = zap.NewProductionConfig()
	default:
		return nil, fmt.Errorf("logging.format: unknown format %q", c.Format)
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.OutputPaths = []string{"stderr"}
	zc.ErrorOutputPaths = []string{"stderr"}
	return zc.Build()
}
