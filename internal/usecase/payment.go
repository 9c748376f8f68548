package usecase

import (
	"context"
	"errors"
	"strconv"

	domainErrors "github.com/zullfi95/paulpay/internal/domain/errors"
	"github.com/zullfi95/paulpay/internal/domain/model"
	"github.com/zullfi95/paulpay/internal/domain/repository"
	"github.com/zullfi95/paulpay/internal/metrics"
)

// PaymentGateway is the subset of gateway operations the orchestrator drives.
type PaymentGateway interface {
	CreateOrder(ctx context.Context, req model.PaymentOrderRequest) (*model.PaymentCreation, error)
	GetOrderInfo(ctx context.Context, gatewayOrderID string) (*model.GatewayOrder, error)
}

// Notifier receives fire-and-forget events on payment success.
type Notifier interface {
	PaymentSuccess(ctx context.Context, order *model.Order)
	NewOrder(ctx context.Context, order *model.Order)
}

// CreatePaymentResult is returned to callers after a payment has been created
// (or found to exist already).
type CreatePaymentResult struct {
	GatewayOrderID string
	PaymentURL     string
	Attempts       int
}

// PaymentUseCase orchestrates the payment lifecycle of an order against the
// gateway: creation with guards and an attempt ceiling, and reconciliation of
// gateway state onto the aggregate.
type PaymentUseCase struct {
	orders      repository.OrderRepository
	gateway     PaymentGateway
	notifier    Notifier
	metrics     *metrics.Metrics
	maxAttempts int
	returnURL   string
}

// NewPaymentUseCase constructs PaymentUseCase.
func NewPaymentUseCase(
	orders repository.OrderRepository,
	gateway PaymentGateway,
	notifier Notifier,
	m *metrics.Metrics,
	maxAttempts int,
	returnURL string,
) *PaymentUseCase {
	if maxAttempts <= 0 {
		maxAttempts = 3
	}
	return &PaymentUseCase{
		orders:      orders,
		gateway:     gateway,
		notifier:    notifier,
		metrics:     m,
		maxAttempts: maxAttempts,
		returnURL:   returnURL,
	}
}

// CreatePayment creates a gateway order for a payable order. The attempt
// counter is committed before the gateway call, so a failed gateway round trip
// still consumes an attempt. Creation is idempotent: once a gateway order id
// is attached, subsequent calls return the stored identifiers without touching
// the gateway or the counter.
func (u *PaymentUseCase) CreatePayment(ctx context.Context, orderID int64) (*CreatePaymentResult, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	if order.HasPayment() {
		return &CreatePaymentResult{
			GatewayOrderID: *order.AlgoritmaOrderID,
			PaymentURL:     derefOrEmpty(order.PaymentURL),
			Attempts:       order.PaymentAttempts,
		}, nil
	}

	if !order.Status.Payable() {
		u.metrics.ObservePaymentCreation(metrics.CreationResultRejected)
		return nil, domainErrors.ErrOrderNotPayable
	}
	if order.PaymentAttempts >= u.maxAttempts {
		u.metrics.ObservePaymentCreation(metrics.CreationResultRejected)
		return nil, domainErrors.ErrAttemptsExceeded
	}

	attempts, err := u.orders.ClaimPaymentAttempt(ctx, order.ID, u.maxAttempts)
	if err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			// Lost the race to a concurrent create: the gateway order exists now.
			return u.CreatePayment(ctx, orderID)
		}
		u.metrics.ObservePaymentCreation(metrics.CreationResultRejected)
		return nil, err
	}

	created, err := u.gateway.CreateOrder(ctx, model.PaymentOrderRequest{
		Amount:          order.FinalAmount,
		Currency:        order.Currency,
		MerchantOrderID: strconv.FormatInt(order.ID, 10),
		Description:     order.Description,
		CustomerRef:     order.CustomerRef,
		ReturnURL:       u.returnURL,
	})
	if err != nil {
		u.metrics.ObservePaymentCreation(metrics.CreationResultGateway)
		return nil, err
	}

	if err := u.orders.AttachPayment(ctx, order.ID, created.GatewayOrderID, created.PaymentURL); err != nil {
		if errors.Is(err, domainErrors.ErrAlreadyExists) {
			return u.CreatePayment(ctx, orderID)
		}
		return nil, err
	}

	u.metrics.ObservePaymentCreation(metrics.CreationResultSuccess)
	return &CreatePaymentResult{
		GatewayOrderID: created.GatewayOrderID,
		PaymentURL:     created.PaymentURL,
		Attempts:       attempts,
	}, nil
}

// Reconcile fetches the gateway's current view of the order's payment and
// applies it to the aggregate. A charged payment marks the order paid and
// fires notifications exactly once; a failed payment only flips the payment
// status, leaving the order for a retry decision elsewhere.
func (u *PaymentUseCase) Reconcile(ctx context.Context, orderID int64) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.HasPayment() {
		return nil, domainErrors.ErrNoAssociatedPayment
	}

	info, err := u.gateway.GetOrderInfo(ctx, *order.AlgoritmaOrderID)
	if err != nil {
		return nil, err
	}

	mapped := model.PaymentStatusFromGateway(info.Status, info.Operations)
	u.metrics.ObserveReconcileTransition(string(mapped))

	switch mapped {
	case model.PaymentStatusCharged:
		transitioned, err := u.orders.MarkPaid(ctx, order.ID, info.AmountCharged)
		if err != nil {
			return nil, err
		}
		if transitioned {
			paid, err := u.orders.GetByID(ctx, order.ID)
			if err != nil {
				return nil, err
			}
			u.notifier.PaymentSuccess(ctx, paid)
			u.notifier.NewOrder(ctx, paid)
			return paid, nil
		}
	case model.PaymentStatusFailed:
		if err := u.orders.SetPaymentStatus(ctx, order.ID, model.PaymentStatusFailed); err != nil {
			return nil, err
		}
	default:
		if err := u.orders.SetPaymentStatus(ctx, order.ID, mapped); err != nil {
			return nil, err
		}
	}

	return u.orders.GetByID(ctx, order.ID)
}

// PaymentInfo projects the current payment state of an order.
func (u *PaymentUseCase) PaymentInfo(ctx context.Context, orderID int64) (*model.PaymentInfo, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !order.HasPayment() {
		return nil, domainErrors.ErrNoAssociatedPayment
	}

	return &model.PaymentInfo{
		OrderID:       order.ID,
		OrderStatus:   order.Status,
		PaymentStatus: order.PaymentStatus,
		Amount:        order.FinalAmount,
		AmountCharged: order.AmountCharged,
		Attempts:      order.PaymentAttempts,
		CanRetry:      order.PaymentAttempts < u.maxAttempts && order.Status.Payable(),
		PaymentURL:    order.PaymentURL,
		CreatedAt:     order.CreatedAt,
		UpdatedAt:     order.UpdatedAt,
	}, nil
}

func derefOrEmpty(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
