package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the structured logger, SLog the sugared variant for printf-style calls.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger builds the process-wide loggers. APP_ENV=production switches to
// the JSON production encoder; anything else gets the console development encoder.
func InitLogger() {
	var cfg zap.Config
	if os.Getenv("APP_ENV") == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.DisableStacktrace = true

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		panic("failed to initialize logger: " + err.Error())
	}
	Log = logger
	SLog = logger.Sugar()
}

// SyncLogger flushes buffered log entries. Call via defer from main.
func SyncLogger() {
	if Log != nil {
		_ = Log.Sync()
	}
}
