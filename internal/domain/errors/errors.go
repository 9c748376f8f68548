package errors

import "errors"

var (
	ErrNotFound            = errors.New("not found")
	ErrAlreadyExists       = errors.New("already exists")
	ErrOrderNotPayable     = errors.New("order is not payable")
	ErrAttemptsExceeded    = errors.New("payment attempts exceeded")
	ErrNoAssociatedPayment = errors.New("order has no associated payment")
	ErrInvalidAmount       = errors.New("invalid amount")
	ErrInvalidCurrency     = errors.New("invalid currency")
)
