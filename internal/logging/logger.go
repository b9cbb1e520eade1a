// Package logging builds the zap logger used across the client.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"gopkg.in/natefinch/lumberjack.v2"

	"github.com/woxQAQ/lsp-bridge/internal/config"
)

// NewLogger creates a logger for cfg. Debug level uses the development
// encoder; every other level logs JSON. When cfg.Log.File is set, output goes
// to a rotating file instead of stderr.
func NewLogger(cfg *config.ClientConfig) (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(cfg.LogLevel)
	if err != nil {
		return nil, err
	}

	if cfg.Log.File == "" {
		var zcfg zap.Config
		if level == zapcore.DebugLevel {
			zcfg = zap.NewDevelopmentConfig()
		} else {
			zcfg = zap.NewProductionConfig()
		}
		zcfg.Level = zap.NewAtomicLevelAt(level)
		return zcfg.Build()
	}

	writer := &lumberjack.Logger{
		Filename:   cfg.Log.File,
		MaxSize:    cfg.Log.MaxSize,
		MaxBackups: cfg.Log.MaxBackups,
		MaxAge:     cfg.Log.MaxAge,
		Compress:   cfg.Log.Compress,
	}

	encoderCfg := zap.NewProductionEncoderConfig()
	encoderCfg.EncodeTime = zapcore.ISO8601TimeEncoder

	core := zapcore.NewTee(
		zapcore.NewCore(zapcore.NewJSONEncoder(encoderCfg), zapcore.AddSync(writer), level),
		// Errors still reach stderr.
		zapcore.NewCore(zapcore.NewConsoleEncoder(encoderCfg), zapcore.Lock(os.Stderr), zapcore.ErrorLevel),
	)

	return zap.New(core, zap.AddCaller()), nil
}
