package repository

import (
	"context"

	"github.com/zullfi95/paulpay/internal/domain/model"
)

// OrderRepository describes persistence operations on the payment aggregate.
//
// ClaimPaymentAttempt, AttachPayment and MarkPaid are conditional updates: they
// succeed only when the aggregate is still in the state the operation assumes,
// so concurrent callers racing on the same order cannot double-create a gateway
// payment or double-fire success notifications.
type OrderRepository interface {
	Create(ctx context.Context, order *model.Order) (*model.Order, error)
	GetByID(ctx context.Context, id int64) (*model.Order, error)

	// ClaimPaymentAttempt atomically increments the attempt counter when the
	// order is payable, below maxAttempts, and has no gateway order yet.
	// Returns the new attempt count, or a domain error naming the failed guard.
	ClaimPaymentAttempt(ctx context.Context, orderID int64, maxAttempts int) (int, error)

	// AttachPayment records gateway identifiers obtained from a successful
	// create call and moves the order to pending_payment. Fails with
	// ErrAlreadyExists when a gateway order id is already attached.
	AttachPayment(ctx context.Context, orderID int64, gatewayOrderID, paymentURL string) error

	// SetPaymentStatus persists an intermediate or failed payment status
	// without touching the order status.
	SetPaymentStatus(ctx context.Context, orderID int64, status model.PaymentStatus) error

	// MarkPaid transitions the order to paid/charged. Returns false when the
	// order was already paid, making repeat reconciles no-ops.
	MarkPaid(ctx context.Context, orderID int64, amountCharged string) (bool, error)

	// SelectBatchForReconcile returns orders awaiting reconciliation with the
	// gateway, least recently touched first.
	SelectBatchForReconcile(ctx context.Context, limit int) ([]model.Order, error)
}
