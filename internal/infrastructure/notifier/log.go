package notifier

import (
	"context"
	"log/slog"

	"deal_hunter/internal/domain/entity"
)

// LogSink is the dry-run channel: it renders the message into the log and
// delivers nowhere. Used when no real channel is configured.
type LogSink struct{}

func (LogSink) Name() string {
	return "log"
}

func (LogSink) SendDeal(ctx context.Context, deal entity.Deal) error {
	logger(ctx).Info("would send deal",
		slog.String("id", deal.ID),
		slog.String("source", string(deal.Source)),
		slog.String("message", FormatDeal(deal)),
	)

	return nil
}
