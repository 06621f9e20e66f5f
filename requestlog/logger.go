package requestlog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger appends one JSON object per outbound backend request to a file.
// It consumes already-built request descriptions and never influences the
// request itself. A nil *Logger is a valid no-op sink.
type Logger struct {
	log *zap.Logger
}

// Open creates a logger appending to the given path. An empty path disables
// audit logging and returns a nil logger.
func Open(path string) (*Logger, error) {
	if path == "" {
		return nil, nil
	}
	f, err := os.OpenFile(path, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0o644)
	if err != nil {
		return nil, err
	}
	encoderConfig := zapcore.EncoderConfig{
		TimeKey:    "timestamp",
		MessageKey: zapcore.OmitKey,
		LevelKey:   zapcore.OmitKey,
		EncodeTime: zapcore.ISO8601TimeEncoder,
	}
	core := zapcore.NewCore(
		zapcore.NewJSONEncoder(encoderConfig),
		zapcore.AddSync(f),
		zapcore.InfoLevel,
	)
	return &Logger{log: zap.New(core)}, nil
}

// ObserveRequest records one outbound request. Safe for concurrent use.
func (l *Logger) ObserveRequest(endpoint, url string) {
	if l == nil {
		return
	}
	l.log.Info("", zap.String("endpoint", endpoint), zap.String("url", url))
}

// Close flushes buffered entries.
func (l *Logger) Close() {
	if l == nil {
		return
	}
	_ = l.log.Sync()
}
