package model

import "time"

// PaymentStatus describes the payment lifecycle, distinct from the order status.
type PaymentStatus string

const (
	PaymentStatusPending    PaymentStatus = "pending"
	PaymentStatusAuthorized PaymentStatus = "authorized"
	PaymentStatusCharged    PaymentStatus = "charged"
	PaymentStatusFailed     PaymentStatus = "failed"
)

// Gateway-reported order statuses.
const (
	GatewayStatusNew        = "new"
	GatewayStatusAuthorized = "authorized"
	GatewayStatusCharged    = "charged"
	GatewayStatusDeclined   = "declined"
)

// PaymentStatusFromGateway maps a gateway status string plus its operation
// history onto the internal payment status. Unrecognized statuses map to
// pending. When the top-level status is still ambiguous but the operation log
// already contains a failed operation, the payment is classified as failed:
// the gateway's top-level status may lag behind its operation log.
func PaymentStatusFromGateway(status string, operations []GatewayOperation) PaymentStatus {
	var mapped PaymentStatus
	switch status {
	case GatewayStatusNew:
		mapped = PaymentStatusPending
	case GatewayStatusAuthorized:
		mapped = PaymentStatusAuthorized
	case GatewayStatusCharged:
		mapped = PaymentStatusCharged
	case GatewayStatusDeclined:
		mapped = PaymentStatusFailed
	default:
		mapped = PaymentStatusPending
	}

	if mapped == PaymentStatusPending {
		for _, op := range operations {
			if op.Status == OperationStatusFailure {
				return PaymentStatusFailed
			}
		}
	}

	return mapped
}

// PaymentInfo is a read-only projection of the payment state of an order.
type PaymentInfo struct {
	OrderID       int64
	OrderStatus   OrderStatus
	PaymentStatus PaymentStatus
	Amount        string
	AmountCharged *string
	Attempts      int
	CanRetry      bool
	PaymentURL    *string
	CreatedAt     time.Time
	UpdatedAt     time.Time
}
