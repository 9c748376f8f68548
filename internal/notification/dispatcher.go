package notification

import (
	"context"
	"log/slog"

	"github.com/zullfi95/paulpay/internal/domain/model"
)

// Dispatcher receives payment lifecycle events. Delivery is fire-and-forget;
// the orchestrator never consumes a return value.
type Dispatcher interface {
	PaymentSuccess(ctx context.Context, order *model.Order)
	NewOrder(ctx context.Context, order *model.Order)
}

// LogDispatcher emits structured events. The real mail/CRM fan-out lives in
// the surrounding platform, which tails these events.
type LogDispatcher struct {
	logger *slog.Logger
}

// NewLogDispatcher constructs LogDispatcher.
func NewLogDispatcher(logger *slog.Logger) *LogDispatcher {
	return &LogDispatcher{logger: logger}
}

// PaymentSuccess reports that an order's payment was charged.
func (d *LogDispatcher) PaymentSuccess(ctx context.Context, order *model.Order) {
	d.logger.InfoContext(ctx, "payment succeeded",
		slog.Int64("order_id", order.ID),
		slog.String("amount", order.FinalAmount),
		slog.String("currency", order.Currency),
	)
}

// NewOrder reports that a paid order is ready for fulfilment.
func (d *LogDispatcher) NewOrder(ctx context.Context, order *model.Order) {
	d.logger.InfoContext(ctx, "new paid order",
		slog.Int64("order_id", order.ID),
		slog.String("customer", order.CustomerRef),
	)
}
