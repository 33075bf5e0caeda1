package tracking

import (
	"context"
	"log/slog"
)

// Reporter receives progress updates from the pipeline.
type Reporter interface {
	OnChange(ctx context.Context, status Status) error
}

// NopReporter discards all updates.
type NopReporter struct{}

// NewNopReporter creates a NopReporter.
func NewNopReporter() NopReporter { return NopReporter{} }

// OnChange discards the update.
func (NopReporter) OnChange(context.Context, Status) error { return nil }

// LoggingReporter implements Reporter by logging status changes.
type LoggingReporter struct {
	logger *slog.Logger
}

// NewLoggingReporter creates a new LoggingReporter.
func NewLoggingReporter(logger *slog.Logger) *LoggingReporter {
	return &LoggingReporter{logger: logger}
}

// OnChange logs the progress update.
func (r *LoggingReporter) OnChange(_ context.Context, status Status) error {
	attrs := []any{
		slog.Int("current", status.Current()),
		slog.Int("total", status.Total()),
	}
	if status.Label() != "" {
		attrs = append(attrs, slog.String("item", status.Label()))
	}
	if status.Finished() {
		attrs = append(attrs, slog.Bool("finished", true))
	}

	r.logger.Info(status.Step().String(), attrs...)
	return nil
}
