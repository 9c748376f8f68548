package usecase

import (
	"context"
	"strings"

	domainErrors "github.com/zullfi95/paulpay/internal/domain/errors"
	"github.com/zullfi95/paulpay/internal/domain/model"
	"github.com/zullfi95/paulpay/internal/domain/repository"
)

// OrderUseCase handles intake and lookup of payment aggregates. The full
// storefront order lifecycle lives in the surrounding platform; orders arrive
// here already submitted.
type OrderUseCase struct {
	orders          repository.OrderRepository
	defaultCurrency string
}

// NewOrderUseCase constructs OrderUseCase.
func NewOrderUseCase(orders repository.OrderRepository, defaultCurrency string) *OrderUseCase {
	return &OrderUseCase{orders: orders, defaultCurrency: defaultCurrency}
}

// Register validates and stores a new order in submitted state.
func (u *OrderUseCase) Register(ctx context.Context, amount, currency, customerRef, description string) (*model.Order, error) {
	if !ValidateAmount(amount) {
		return nil, domainErrors.ErrInvalidAmount
	}

	currency = strings.ToUpper(strings.TrimSpace(currency))
	if currency == "" {
		currency = u.defaultCurrency
	}
	if !ValidateCurrency(currency) {
		return nil, domainErrors.ErrInvalidCurrency
	}

	order := &model.Order{
		Status:        model.OrderStatusSubmitted,
		FinalAmount:   amount,
		Currency:      currency,
		CustomerRef:   strings.TrimSpace(customerRef),
		Description:   strings.TrimSpace(description),
		PaymentStatus: model.PaymentStatusPending,
	}
	return u.orders.Create(ctx, order)
}

// Get returns an order by identifier.
func (u *OrderUseCase) Get(ctx context.Context, id int64) (*model.Order, error) {
	return u.orders.GetByID(ctx, id)
}

// SelectBatchForReconcile returns orders awaiting gateway reconciliation.
func (u *OrderUseCase) SelectBatchForReconcile(ctx context.Context, limit int) ([]model.Order, error) {
	return u.orders.SelectBatchForReconcile(ctx, limit)
}
