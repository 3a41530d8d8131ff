package delivery

import (
	"fmt"

	"github.com/hibiken/asynq"
	jsoniter "github.com/json-iterator/go"

	"deal_hunter/internal/domain/entity"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary //nolint:gochecknoglobals // skip

const (
	TypeDeliverDeal = "deal:deliver"

	// QueueDelivery is the only queue; delivery has no priority tiers.
	QueueDelivery = "delivery"
)

// NewDeliverDealTask builds a delivery task for an approved deal. MaxRetry
// is zero on purpose: the deal is committed as sent before delivery, so a
// retry would risk a duplicate broadcast.
func NewDeliverDealTask(deal entity.Deal) (*asynq.Task, error) {
	payload, err := json.Marshal(deal)
	if err != nil {
		return nil, fmt.Errorf("json.Marshal: %w", err)
	}

	return asynq.NewTask(
		TypeDeliverDeal,
		payload,
		asynq.Queue(QueueDelivery),
		asynq.MaxRetry(0),
	), nil
}
