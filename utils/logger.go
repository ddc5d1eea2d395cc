package utils

import (
	"log"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"bookit/config"
)

// Logger is the process wide logger. Services get it through their constructors.
var Logger *zap.Logger

// InitializeLogger builds JSON logs in production and colored console logs
// elsewhere. LOG_LEVEL, when valid, overrides the level.
func InitializeLogger() {
	cfg := zap.NewDevelopmentConfig()
	cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	if config.IsProduction() {
		cfg = zap.NewProductionConfig()
	}

	if lvl, err := zapcore.ParseLevel(config.AppConfig.LogLevel); err == nil && config.AppConfig.LogLevel != "" {
		cfg.Level = zap.NewAtomicLevelAt(lvl)
	}
	cfg.InitialFields = map[string]interface{}{"service": "bookit"}

	built, err := cfg.Build()
	if err != nil {
		log.Fatalf("Failed to initialize logger: %v", err)
	}
	Logger = built
	zap.ReplaceGlobals(Logger)
}

// GetLogger returns the global logger, building it on first use.
func GetLogger() *zap.Logger {
	if Logger == nil {
		InitializeLogger()
	}
	return Logger
}
