package test

import (
	"context"
	"sync"

	"github.com/zullfi95/paulpay/internal/domain/model"
)

// GatewayStub simulates the payment gateway for tests.
type GatewayStub struct {
	CreateOrderFn  func(context.Context, model.PaymentOrderRequest) (*model.PaymentCreation, error)
	GetOrderInfoFn func(context.Context, string) (*model.GatewayOrder, error)

	mu             sync.Mutex
	CreateRequests []model.PaymentOrderRequest
	InfoRequests   []string
}

// CreateOrder records the request and returns configured or default data.
func (s *GatewayStub) CreateOrder(ctx context.Context, req model.PaymentOrderRequest) (*model.PaymentCreation, error) {
	s.mu.Lock()
	s.CreateRequests = append(s.CreateRequests, req)
	s.mu.Unlock()
	if s.CreateOrderFn != nil {
		return s.CreateOrderFn(ctx, req)
	}
	return &model.PaymentCreation{GatewayOrderID: "123456789", PaymentURL: "https://payment.example.com/hpp/123456789"}, nil
}

// GetOrderInfo records the request and returns configured or charged state.
func (s *GatewayStub) GetOrderInfo(ctx context.Context, gatewayOrderID string) (*model.GatewayOrder, error) {
	s.mu.Lock()
	s.InfoRequests = append(s.InfoRequests, gatewayOrderID)
	s.mu.Unlock()
	if s.GetOrderInfoFn != nil {
		return s.GetOrderInfoFn(ctx, gatewayOrderID)
	}
	return &model.GatewayOrder{ID: gatewayOrderID, Status: model.GatewayStatusCharged, Amount: "100.00", AmountCharged: "100.00"}, nil
}

// CreateCalls returns how many create requests the stub has seen.
func (s *GatewayStub) CreateCalls() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.CreateRequests)
}

// GatewayConsoleStub simulates diagnostic gateway operations.
type GatewayConsoleStub struct {
	PingFn  func(context.Context) (*model.GatewayPing, error)
	CardsFn func() []model.TestCard
}

// TestConnection returns configured ping or a default healthy answer.
func (s GatewayConsoleStub) TestConnection(ctx context.Context) (*model.GatewayPing, error) {
	if s.PingFn != nil {
		return s.PingFn(ctx)
	}
	return &model.GatewayPing{Message: "pong", Date: "2026-01-01T00:00:00Z"}, nil
}

// TestCards returns configured cards or one success scenario.
func (s GatewayConsoleStub) TestCards() []model.TestCard {
	if s.CardsFn != nil {
		return s.CardsFn()
	}
	return []model.TestCard{{Scenario: "success", Number: "4111111111111111", Expiry: "12/29", CVV: "123"}}
}
