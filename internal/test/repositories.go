package test

import (
	"context"
	"sync"
	"time"

	domainErrors "github.com/zullfi95/paulpay/internal/domain/errors"
	"github.com/zullfi95/paulpay/internal/domain/model"
)

// OrderRepositoryStub is an in-memory order repository with per-method
// overrides for tests.
type OrderRepositoryStub struct {
	CreateFn            func(context.Context, *model.Order) (*model.Order, error)
	GetByIDFn           func(context.Context, int64) (*model.Order, error)
	ClaimFn             func(context.Context, int64, int) (int, error)
	AttachFn            func(context.Context, int64, string, string) error
	SetPaymentStatusFn  func(context.Context, int64, model.PaymentStatus) error
	MarkPaidFn          func(context.Context, int64, string) (bool, error)
	SelectForReconcileF func(context.Context, int) ([]model.Order, error)

	mu     sync.Mutex
	nextID int64
	byID   map[int64]*model.Order
}

// NewOrderRepositoryStub constructs the stub with initialized storage.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{nextID: 1, byID: make(map[int64]*model.Order)}
}

// Seed stores an order under its ID, assigning one when missing.
func (s *OrderRepositoryStub) Seed(order *model.Order) *model.Order {
	s.mu.Lock()
	defer s.mu.Unlock()
	if order.ID == 0 {
		order.ID = s.nextID
		s.nextID++
	} else if order.ID >= s.nextID {
		s.nextID = order.ID + 1
	}
	if order.CreatedAt.IsZero() {
		order.CreatedAt = time.Unix(0, 0)
	}
	order.UpdatedAt = order.CreatedAt
	s.byID[order.ID] = order
	return order
}

// Create stores a new order.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	copied := *order
	return s.Seed(&copied), nil
}

// GetByID returns a copy of the stored order.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id int64) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.byID[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	copied := *order
	return &copied, nil
}

// ClaimPaymentAttempt mirrors the conditional increment of the real repository.
func (s *OrderRepositoryStub) ClaimPaymentAttempt(ctx context.Context, orderID int64, maxAttempts int) (int, error) {
	if s.ClaimFn != nil {
		return s.ClaimFn(ctx, orderID, maxAttempts)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.byID[orderID]
	if !ok {
		return 0, domainErrors.ErrNotFound
	}
	switch {
	case order.HasPayment():
		return 0, domainErrors.ErrAlreadyExists
	case !order.Status.Payable():
		return 0, domainErrors.ErrOrderNotPayable
	case order.PaymentAttempts >= maxAttempts:
		return 0, domainErrors.ErrAttemptsExceeded
	}
	order.PaymentAttempts++
	return order.PaymentAttempts, nil
}

// AttachPayment records gateway identifiers at most once.
func (s *OrderRepositoryStub) AttachPayment(ctx context.Context, orderID int64, gatewayOrderID, paymentURL string) error {
	if s.AttachFn != nil {
		return s.AttachFn(ctx, orderID, gatewayOrderID, paymentURL)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.byID[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	if order.HasPayment() {
		return domainErrors.ErrAlreadyExists
	}
	order.AlgoritmaOrderID = &gatewayOrderID
	order.PaymentURL = &paymentURL
	order.Status = model.OrderStatusPendingPayment
	return nil
}

// SetPaymentStatus updates the payment status only.
func (s *OrderRepositoryStub) SetPaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error {
	if s.SetPaymentStatusFn != nil {
		return s.SetPaymentStatusFn(ctx, orderID, status)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.byID[orderID]
	if !ok {
		return domainErrors.ErrNotFound
	}
	order.PaymentStatus = status
	return nil
}

// MarkPaid transitions to paid once, reporting whether it did.
func (s *OrderRepositoryStub) MarkPaid(ctx context.Context, orderID int64, amountCharged string) (bool, error) {
	if s.MarkPaidFn != nil {
		return s.MarkPaidFn(ctx, orderID, amountCharged)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	order, ok := s.byID[orderID]
	if !ok {
		return false, domainErrors.ErrNotFound
	}
	if order.Status == model.OrderStatusPaid {
		return false, nil
	}
	order.Status = model.OrderStatusPaid
	order.PaymentStatus = model.PaymentStatusCharged
	order.AmountCharged = &amountCharged
	return true, nil
}

// SelectBatchForReconcile returns orders pending reconciliation.
func (s *OrderRepositoryStub) SelectBatchForReconcile(ctx context.Context, limit int) ([]model.Order, error) {
	if s.SelectForReconcileF != nil {
		return s.SelectForReconcileF(ctx, limit)
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	var result []model.Order
	for _, order := range s.byID {
		if len(result) >= limit {
			break
		}
		if order.Status == model.OrderStatusPendingPayment && order.HasPayment() {
			result = append(result, *order)
		}
	}
	return result, nil
}
