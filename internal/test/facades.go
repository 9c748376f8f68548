package test

import (
	"context"
	"sync"
	"sync/atomic"
	"time"

	domainErrors "github.com/zullfi95/paulpay/internal/domain/errors"
	"github.com/zullfi95/paulpay/internal/domain/model"
	"github.com/zullfi95/paulpay/internal/usecase"
)

// OrderFacadeStub provides controllable behaviour for order endpoints.
type OrderFacadeStub struct {
	RegisterFn func(context.Context, string, string, string, string) (*model.Order, error)
	OrderFn    func(context.Context, int64) (*model.Order, error)
}

// RegisterOrder delegates to the override or returns a default submitted order.
func (s OrderFacadeStub) RegisterOrder(ctx context.Context, amount, currency, customerRef, description string) (*model.Order, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, amount, currency, customerRef, description)
	}
	return &model.Order{ID: 1, Status: model.OrderStatusSubmitted, FinalAmount: amount, Currency: currency, PaymentStatus: model.PaymentStatusPending}, nil
}

// Order returns a configured order or not found.
func (s OrderFacadeStub) Order(ctx context.Context, id int64) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, id)
	}
	return nil, domainErrors.ErrNotFound
}

// PaymentOpsFacadeStub simulates payment operations for handler tests.
type PaymentOpsFacadeStub struct {
	CreatePaymentFn func(context.Context, int64) (*usecase.CreatePaymentResult, error)
	ReconcileFn     func(context.Context, int64) (*model.Order, error)
	PaymentInfoFn   func(context.Context, int64) (*model.PaymentInfo, error)
	PingFn          func(context.Context) (*model.GatewayPing, error)
	CardsFn         func() []model.TestCard
}

// CreatePayment delegates to the override or returns fixed identifiers.
func (s PaymentOpsFacadeStub) CreatePayment(ctx context.Context, orderID int64) (*usecase.CreatePaymentResult, error) {
	if s.CreatePaymentFn != nil {
		return s.CreatePaymentFn(ctx, orderID)
	}
	return &usecase.CreatePaymentResult{GatewayOrderID: "123456789", PaymentURL: "https://payment.example.com/hpp/123456789", Attempts: 1}, nil
}

// ReconcilePayment delegates to the override or returns a paid order.
func (s PaymentOpsFacadeStub) ReconcilePayment(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, orderID)
	}
	return &model.Order{ID: orderID, Status: model.OrderStatusPaid, PaymentStatus: model.PaymentStatusCharged}, nil
}

// PaymentInfo delegates to the override or returns a pending snapshot.
func (s PaymentOpsFacadeStub) PaymentInfo(ctx context.Context, orderID int64) (*model.PaymentInfo, error) {
	if s.PaymentInfoFn != nil {
		return s.PaymentInfoFn(ctx, orderID)
	}
	url := "https://payment.example.com/hpp/123456789"
	return &model.PaymentInfo{
		OrderID:       orderID,
		OrderStatus:   model.OrderStatusPendingPayment,
		PaymentStatus: model.PaymentStatusPending,
		Amount:        "100.00",
		Attempts:      1,
		CanRetry:      true,
		PaymentURL:    &url,
		CreatedAt:     time.Unix(0, 0),
		UpdatedAt:     time.Unix(0, 0),
	}, nil
}

// TestGatewayConnection delegates to the override or reports healthy.
func (s PaymentOpsFacadeStub) TestGatewayConnection(ctx context.Context) (*model.GatewayPing, error) {
	if s.PingFn != nil {
		return s.PingFn(ctx)
	}
	return &model.GatewayPing{Message: "pong", Date: "2026-01-01T00:00:00Z"}, nil
}

// GatewayTestCards delegates to the override or returns the sandbox table.
func (s PaymentOpsFacadeStub) GatewayTestCards() []model.TestCard {
	if s.CardsFn != nil {
		return s.CardsFn()
	}
	return []model.TestCard{{Scenario: "success", Number: "4111111111111111", Expiry: "12/29", CVV: "123"}}
}

// ServiceFacadeStub aggregates the handler facade stubs.
type ServiceFacadeStub struct {
	OrderFacadeStub
	PaymentOpsFacadeStub
}

// HealthCheckerStub reports a configurable health state.
type HealthCheckerStub struct {
	Err error
}

// HealthCheck returns the configured error.
func (s HealthCheckerStub) HealthCheck(ctx context.Context) error {
	return s.Err
}

// ReconcileCall stores information about ReconcilePayment invocations.
type ReconcileCall struct {
	OrderID int64
}

// WorkerFacadeStub mimics worker interactions with the payment facade.
type WorkerFacadeStub struct {
	Orders      [][]model.Order
	OrdersFn    func(context.Context, int) ([]model.Order, error)
	ReconcileFn func(context.Context, int64) (*model.Order, error)
	Reconciles  []ReconcileCall

	mu              sync.Mutex
	ordersCallCount int32
}

// Lock exposes internal mutex for external synchronization.
func (s *WorkerFacadeStub) Lock() { s.mu.Lock() }

// Unlock releases previously acquired lock.
func (s *WorkerFacadeStub) Unlock() { s.mu.Unlock() }

// OrdersForReconcile returns batches from the configured queue.
func (s *WorkerFacadeStub) OrdersForReconcile(ctx context.Context, limit int) ([]model.Order, error) {
	if s.OrdersFn != nil {
		return s.OrdersFn(ctx, limit)
	}
	call := atomic.AddInt32(&s.ordersCallCount, 1)
	if int(call) <= len(s.Orders) {
		return s.Orders[call-1], nil
	}
	time.Sleep(10 * time.Millisecond)
	return nil, nil
}

// ReconcilePayment records reconcile requests.
func (s *WorkerFacadeStub) ReconcilePayment(ctx context.Context, orderID int64) (*model.Order, error) {
	if s.ReconcileFn != nil {
		return s.ReconcileFn(ctx, orderID)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Reconciles = append(s.Reconciles, ReconcileCall{OrderID: orderID})
	return &model.Order{ID: orderID, Status: model.OrderStatusPaid, PaymentStatus: model.PaymentStatusCharged}, nil
}
