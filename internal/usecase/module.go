package usecase

import (
	"go.uber.org/fx"

	"github.com/zullfi95/paulpay/internal/config"
	"github.com/zullfi95/paulpay/internal/domain/repository"
	"github.com/zullfi95/paulpay/internal/metrics"
)

// Module provides core business use cases to the fx container.
var Module = fx.Provide(
	newOrderUseCase,
	newPaymentUseCase,
)

type orderParams struct {
	fx.In

	Orders repository.OrderRepository
	Config *config.Config
}

func newOrderUseCase(p orderParams) *OrderUseCase {
	return NewOrderUseCase(p.Orders, p.Config.Currency)
}

type paymentParams struct {
	fx.In

	Orders   repository.OrderRepository
	Gateway  PaymentGateway
	Notifier Notifier
	Metrics  *metrics.Metrics
	Config   *config.Config
}

func newPaymentUseCase(p paymentParams) *PaymentUseCase {
	return NewPaymentUseCase(p.Orders, p.Gateway, p.Notifier, p.Metrics, p.Config.MaxPaymentAttempts, p.Config.ReturnURL)
}
