package app

import (
	"context"

	"github.com/zullfi95/paulpay/internal/domain/model"
	"github.com/zullfi95/paulpay/internal/usecase"
)

// GatewayConsole exposes the diagnostic gateway operations that bypass the
// orchestrator: liveness probe and the sandbox card table.
type GatewayConsole interface {
	TestConnection(ctx context.Context) (*model.GatewayPing, error)
	TestCards() []model.TestCard
}

// PaymentFacade aggregates the application's use cases behind one surface
// consumed by HTTP handlers and the reconcile worker.
type PaymentFacade struct {
	orders   *usecase.OrderUseCase
	payments *usecase.PaymentUseCase
	console  GatewayConsole
}

// NewPaymentFacade constructs PaymentFacade.
func NewPaymentFacade(orders *usecase.OrderUseCase, payments *usecase.PaymentUseCase, console GatewayConsole) *PaymentFacade {
	return &PaymentFacade{orders: orders, payments: payments, console: console}
}

func (f *PaymentFacade) RegisterOrder(ctx context.Context, amount, currency, customerRef, description string) (*model.Order, error) {
	return f.orders.Register(ctx, amount, currency, customerRef, description)
}

func (f *PaymentFacade) Order(ctx context.Context, id int64) (*model.Order, error) {
	return f.orders.Get(ctx, id)
}

func (f *PaymentFacade) CreatePayment(ctx context.Context, orderID int64) (*usecase.CreatePaymentResult, error) {
	return f.payments.CreatePayment(ctx, orderID)
}

func (f *PaymentFacade) ReconcilePayment(ctx context.Context, orderID int64) (*model.Order, error) {
	return f.payments.Reconcile(ctx, orderID)
}

func (f *PaymentFacade) PaymentInfo(ctx context.Context, orderID int64) (*model.PaymentInfo, error) {
	return f.payments.PaymentInfo(ctx, orderID)
}

func (f *PaymentFacade) OrdersForReconcile(ctx context.Context, limit int) ([]model.Order, error) {
	return f.orders.SelectBatchForReconcile(ctx, limit)
}

func (f *PaymentFacade) TestGatewayConnection(ctx context.Context) (*model.GatewayPing, error) {
	return f.console.TestConnection(ctx)
}

func (f *PaymentFacade) GatewayTestCards() []model.TestCard {
	return f.console.TestCards()
}
