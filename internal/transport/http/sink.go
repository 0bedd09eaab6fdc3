package http

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Sink receives trace log entries. Injecting it keeps the transport free of
// process-wide logging state and lets tests record what would be logged.
type Sink interface {
	// Log emits a single trace entry at the given severity.
	Log(level zapcore.Level, message string)
}

// ZapSink is a Sink backed by a Zap sugared logger.
type ZapSink struct {
	// logger is the destination for trace entries.
	logger *zap.SugaredLogger
}

// NewZapSink creates a Sink that forwards trace entries to the given logger.
func NewZapSink(logger *zap.SugaredLogger) *ZapSink {
	return &ZapSink{logger: logger}
}

// Log emits a single trace entry at the given severity.
func (s *ZapSink) Log(level zapcore.Level, message string) {
	s.logger.Log(level, message)
}

// NopSink is a Sink that discards all entries.
type NopSink struct{}

// Log discards the entry.
func (NopSink) Log(zapcore.Level, string) {}
