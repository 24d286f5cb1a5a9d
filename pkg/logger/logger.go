package logger

import (
	"supplier-directory/pkg/config"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var log *zap.Logger

// InitLogger builds the service logger from config and installs it as the
// zap global. Production gets JSON output with ISO8601 timestamps; every
// other environment gets the colored development encoder.
func InitLogger(cfg *config.Config) {
	level, err := zapcore.ParseLevel(cfg.Log.Level)
	if err != nil {
		level = zapcore.InfoLevel
	}

	var zc zap.Config
	if cfg.Server.Env == "production" {
		zc = zap.NewProductionConfig()
		zc.EncoderConfig.TimeKey = "timestamp"
		zc.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	} else {
		zc = zap.NewDevelopmentConfig()
		zc.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	zc.Level = zap.NewAtomicLevelAt(level)

	log, err = zc.Build(zap.Fields(cfg.LogConfig()...))
	if err != nil {
		// No logger to report through yet
		panic("failed to initialize logger: " + err.Error())
	}
	zap.ReplaceGlobals(log)
}

// GetLogger returns the service logger
func GetLogger() *zap.Logger {
	return log
}
