package config

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the application logger. Development environments always
// get a debug-level console logger.
func NewLogger(cfg *Config) (*zap.Logger, error) {
	lc := cfg.Logger
	var zc zap.Config
	if cfg.IsDevelopment() {
		zc = zap.NewDevelopmentConfig()
		lc.Encoding = "console"
		lc.Level = "debug"
	} else {
		zc = zap.NewProductionConfig()
	}

	level, err := zapcore.ParseLevel(lc.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}
	zc.Level = zap.NewAtomicLevelAt(level)
	zc.Encoding = lc.Encoding
	zc.DisableCaller = lc.DisableCaller
	zc.DisableStacktrace = lc.DisableStacktrace
	zc.EncoderConfig.TimeKey = "ts"
	zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	return zc.Build(zap.Fields(zap.String("app", cfg.Server.AppName)))
}
