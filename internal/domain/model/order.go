package model

import "time"

// OrderStatus describes the order lifecycle as seen by the ordering platform.
type OrderStatus string

const (
	OrderStatusDraft          OrderStatus = "draft"
	OrderStatusSubmitted      OrderStatus = "submitted"
	OrderStatusPendingPayment OrderStatus = "pending_payment"
	OrderStatusProcessing     OrderStatus = "processing"
	OrderStatusPaid           OrderStatus = "paid"
	OrderStatusCompleted      OrderStatus = "completed"
	OrderStatusCancelled      OrderStatus = "cancelled"
)

// Payable reports whether a payment may be initiated or retried for this status.
func (s OrderStatus) Payable() bool {
	return s == OrderStatusSubmitted || s == OrderStatusPendingPayment
}

// Order is the payment aggregate. The surrounding platform owns the rest of the
// order; this service mutates only payment related fields.
type Order struct {
	ID               int64
	Status           OrderStatus
	FinalAmount      string
	Currency         string
	CustomerRef      string
	Description      string
	PaymentStatus    PaymentStatus
	PaymentAttempts  int
	AlgoritmaOrderID *string
	PaymentURL       *string
	AmountCharged    *string
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// HasPayment reports whether a gateway order has been created for this order.
func (o *Order) HasPayment() bool {
	return o.AlgoritmaOrderID != nil && *o.AlgoritmaOrderID != ""
}
