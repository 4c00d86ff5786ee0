package cl

import (
	"sync"

	"go.uber.org/zap"

	clruntime "github.com/wippyai/cl-runtime"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the object model's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the object model's logger.
// This must be called before any registry operations.
func SetLogger(l *zap.Logger) {
	logger = l
}

func logObject(msg string, h clruntime.Handle, op string) {
	Logger().Debug(msg, zap.Uint64("handle", uint64(h)), zap.String("op", op))
}
