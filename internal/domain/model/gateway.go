package model

// Statuses of individual gateway operations within an order's history.
const (
	OperationStatusSuccess = "success"
	OperationStatusFailure = "failure"
)

// GatewayOperation is a single entry of the gateway's operation log for an order.
type GatewayOperation struct {
	Type    string
	Status  string
	Amount  string
	Created string
}

// GatewayOrder is the gateway's current view of a payment order.
type GatewayOrder struct {
	ID            string
	Status        string
	Amount        string
	AmountCharged string
	Operations    []GatewayOperation
}

// PaymentOrderRequest carries everything the gateway needs to create an order.
type PaymentOrderRequest struct {
	Amount          string
	Currency        string
	MerchantOrderID string
	Description     string
	CustomerRef     string
	ReturnURL       string
}

// PaymentCreation is the result of a successful gateway order creation.
type PaymentCreation struct {
	GatewayOrderID string
	PaymentURL     string
}

// GatewayPing is the gateway's answer to a liveness probe.
type GatewayPing struct {
	Message string
	Date    string
}

// TestCard describes a sandbox card bound to a named outcome scenario.
type TestCard struct {
	Scenario string
	Number   string
	Expiry   string
	CVV      string
}
