package handlers

import (
	"context"

	"github.com/zullfi95/paulpay/internal/domain/model"
	"github.com/zullfi95/paulpay/internal/usecase"
)

// OrderFacade encapsulates order intake operations exposed via HTTP.
type OrderFacade interface {
	RegisterOrder(ctx context.Context, amount, currency, customerRef, description string) (*model.Order, error)
	Order(ctx context.Context, id int64) (*model.Order, error)
}

// PaymentOpsFacade covers the payment lifecycle operations.
type PaymentOpsFacade interface {
	CreatePayment(ctx context.Context, orderID int64) (*usecase.CreatePaymentResult, error)
	ReconcilePayment(ctx context.Context, orderID int64) (*model.Order, error)
	PaymentInfo(ctx context.Context, orderID int64) (*model.PaymentInfo, error)
	TestGatewayConnection(ctx context.Context) (*model.GatewayPing, error)
	GatewayTestCards() []model.TestCard
}

// ServiceFacade aggregates the full set of operations used across handlers.
type ServiceFacade interface {
	OrderFacade
	PaymentOpsFacade
}

// HealthChecker probes the storage backing the service.
type HealthChecker interface {
	HealthCheck(ctx context.Context) error
}
