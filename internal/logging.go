package internal

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var appLogger *zap.SugaredLogger

// InitLogging builds the process-wide logger. The level defaults to info and
// can be overridden with the LOG_LEVEL environment variable (debug, info,
// warn, error). Calling it twice is a no-op.
func InitLogging() {
	if appLogger != nil {
		return
	}

	encoderConfig := zapcore.EncoderConfig{
		TimeKey:        "ts",
		LevelKey:       "level",
		MessageKey:     "msg",
		EncodeLevel:    zapcore.CapitalLevelEncoder,
		EncodeTime:     zapcore.TimeEncoderOfLayout("2006-01-02 15:04:05.000"),
		EncodeDuration: zapcore.StringDurationEncoder,
	}

	level := zapcore.InfoLevel
	if lvl := os.Getenv("LOG_LEVEL"); lvl != "" {
		if parsed, err := zapcore.ParseLevel(lvl); err == nil {
			level = parsed
		}
	}

	core := zapcore.NewCore(
		zapcore.NewConsoleEncoder(encoderConfig),
		zapcore.AddSync(os.Stdout),
		level,
	)
	appLogger = zap.New(core).Sugar()
}

// Logger returns the shared logger, initializing it on first use.
func Logger() *zap.SugaredLogger {
	if appLogger == nil {
		InitLogging()
	}
	return appLogger
}

// SyncLogging flushes buffered log entries. Call it on shutdown.
func SyncLogging() {
	if appLogger != nil {
		_ = appLogger.Sync()
	}
}
