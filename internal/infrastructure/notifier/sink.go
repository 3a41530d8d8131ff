package notifier

import (
	"context"

	"deal_hunter/internal/domain/entity"
	"deal_hunter/pkg/contextx"
)

var logger = contextx.LoggerFromContextOrDefault //nolint:gochecknoglobals

// Sink delivers an approved deal to one channel. Delivery is best effort:
// a failed send is logged and never retried, the deal stays committed as
// sent either way.
type Sink interface {
	Name() string
	SendDeal(ctx context.Context, deal entity.Deal) error
}
