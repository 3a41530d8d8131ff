package delivery

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/hibiken/asynq"

	"deal_hunter/internal/domain/entity"
	"deal_hunter/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Enqueuer hands approved deals over to the delivery queue.
type Enqueuer struct {
	client *asynq.Client
}

func NewEnqueuer(redisOpt asynq.RedisClientOpt) *Enqueuer {
	return &Enqueuer{
		client: asynq.NewClient(redisOpt),
	}
}

func (e *Enqueuer) Enqueue(ctx context.Context, deal entity.Deal) error {
	task, err := NewDeliverDealTask(deal)
	if err != nil {
		return fmt.Errorf("delivery.NewDeliverDealTask: %w", err)
	}

	info, err := e.client.EnqueueContext(ctx, task)
	if err != nil {
		return fmt.Errorf("client.EnqueueContext: %w", err)
	}

	logger(ctx).Info("deal enqueued for delivery",
		slog.String("deal-id", deal.ID),
		slog.String("task-id", info.ID),
	)

	return nil
}

func (e *Enqueuer) Close() error {
	return e.client.Close() //nolint:wrapcheck
}
