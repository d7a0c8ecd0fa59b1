package transcoder

import (
	"sync"

	"go.uber.org/zap"

	"github.com/wippyai/textcodec/transcoder/internal/tables"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the transcoder package's logger instance.
// It uses a no-op logger by default.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger configures the transcoder package's logger, including the table
// derivation layer. This must be called before any conversion operations.
func SetLogger(l *zap.Logger) {
	logger = l
	tables.SetLogger(l)
}
