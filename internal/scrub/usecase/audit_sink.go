package usecase

import (
	"context"
	"log/slog"

	scrubDomain "github.com/allisson/piiguard/internal/scrub/domain"
)

// logAuditSink writes audit events as structured log records.
type logAuditSink struct {
	logger *slog.Logger
}

// NewLogAuditSink returns an AuditSink that logs each event at info level.
func NewLogAuditSink(logger *slog.Logger) scrubDomain.AuditSink {
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &logAuditSink{logger: logger}
}

// Record logs the event.
func (s *logAuditSink) Record(ctx context.Context, event scrubDomain.AuditEvent) error {
	categories := make(map[string]any, len(event.ByCategory))
	for category, count := range event.ByCategory {
		categories[category.String()] = count
	}

	s.logger.LogAttrs(ctx, slog.LevelInfo, "audit",
		slog.String("request_id", event.RequestID.String()),
		slog.String("operation", event.Operation),
		slog.String("context", event.Context.String()),
		slog.String("strategy", event.Strategy.String()),
		slog.Int("total", event.Total),
		slog.Any("by_category", categories),
		slog.Bool("truncated", event.Truncated),
		slog.Bool("fallback", event.Fallback),
		slog.Int("restored", event.Restored),
		slog.Int("denied", event.Denied),
		slog.Int("failed", event.Failed),
		slog.Time("occurred_at", event.OccurredAt),
	)
	return nil
}
