package dto

import "time"

// CreateOrderRequest registers a new order for payment processing.
type CreateOrderRequest struct {
	Amount      string `json:"amount" binding:"required"`
	Currency    string `json:"currency"`
	CustomerRef string `json:"customer_ref"`
	Description string `json:"description"`
}

// OrderResponse is the public view of an order.
type OrderResponse struct {
	ID            int64     `json:"id"`
	Status        string    `json:"status"`
	FinalAmount   string    `json:"final_amount"`
	Currency      string    `json:"currency"`
	CustomerRef   string    `json:"customer_ref,omitempty"`
	Description   string    `json:"description,omitempty"`
	PaymentStatus string    `json:"payment_status"`
	CreatedAt     time.Time `json:"created_at"`
}
