package dto

import "time"

// Envelope is the uniform response shape of payment endpoints.
type Envelope struct {
	Success bool   `json:"success"`
	Message string `json:"message,omitempty"`
	Data    any    `json:"data,omitempty"`
}

// PaymentCreatedData is the payload of a successful payment creation.
type PaymentCreatedData struct {
	PaymentURL string `json:"payment_url"`
	OrderID    string `json:"order_id"`
	Attempts   int    `json:"attempts"`
}

// PaymentInfoResponse is the read-only payment snapshot of an order.
type PaymentInfoResponse struct {
	OrderID       int64     `json:"order_id"`
	OrderStatus   string    `json:"order_status"`
	PaymentStatus string    `json:"payment_status"`
	Amount        string    `json:"amount"`
	AmountCharged *string   `json:"amount_charged,omitempty"`
	Attempts      int       `json:"attempts"`
	CanRetry      bool      `json:"can_retry"`
	PaymentURL    *string   `json:"payment_url,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// PingResponse reports gateway liveness.
type PingResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Date    string `json:"date,omitempty"`
}

// TestCardResponse describes one sandbox card scenario.
type TestCardResponse struct {
	Scenario string `json:"scenario"`
	Number   string `json:"number"`
	Expiry   string `json:"expiry"`
	CVV      string `json:"cvv"`
}
