package sink

import (
	"context"
	"log/slog"
)

// Log writes audit lines to a slog logger.
type Log struct {
	logger *slog.Logger
}

// NewLog returns a Log sink. A nil logger means slog.Default().
func NewLog(logger *slog.Logger) *Log {
	if logger == nil {
		logger = slog.Default()
	}
	return &Log{logger: logger}
}

func (l *Log) Write(ctx context.Context, entry Entry) error {
	l.logger.InfoContext(ctx, "[AuditSink] "+entry.Line, "kind", entry.Kind, "event_id", entry.EventID)
	return nil
}

func (l *Log) Close() error { return nil }
