package delivery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"deal_hunter/internal/domain/entity"
	"deal_hunter/internal/infrastructure/notifier"
	"deal_hunter/pkg/logx"
)

// Handler fans a delivery task out to every configured sink. One sink
// failing does not stop the others and never fails the task: the deal is
// already committed as sent and must not be re-broadcast.
type Handler struct {
	sinks []notifier.Sink
}

func NewHandler(sinks ...notifier.Sink) *Handler {
	return &Handler{sinks: sinks}
}

func (h *Handler) HandleDeliverDeal(ctx context.Context, task *asynq.Task) error {
	var deal entity.Deal
	if err := json.Unmarshal(task.Payload(), &deal); err != nil {
		return fmt.Errorf("json.Unmarshal: %v: %w", err, asynq.SkipRetry)
	}

	for _, sink := range h.sinks {
		if err := sink.SendDeal(ctx, deal); err != nil {
			logger(ctx).Error("sink delivery failed",
				slog.String("sink", sink.Name()),
				slog.String("deal-id", deal.ID),
				logx.Error(err),
			)
			continue
		}

		logger(ctx).Info("deal delivered",
			slog.String("sink", sink.Name()),
			slog.String("deal-id", deal.ID),
		)
	}

	return nil
}
