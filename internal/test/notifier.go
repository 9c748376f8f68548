package test

import (
	"context"
	"sync"

	"github.com/zullfi95/paulpay/internal/domain/model"
)

// NotifierRecorder records dispatched notifications for assertions.
type NotifierRecorder struct {
	mu               sync.Mutex
	PaymentSuccesses []int64
	NewOrders        []int64
}

// PaymentSuccess records the order the event was fired for.
func (r *NotifierRecorder) PaymentSuccess(ctx context.Context, order *model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.PaymentSuccesses = append(r.PaymentSuccesses, order.ID)
}

// NewOrder records the order the event was fired for.
func (r *NotifierRecorder) NewOrder(ctx context.Context, order *model.Order) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.NewOrders = append(r.NewOrders, order.ID)
}

// SuccessCount returns how many payment success events were dispatched.
func (r *NotifierRecorder) SuccessCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.PaymentSuccesses)
}

// NewOrderCount returns how many new order events were dispatched.
func (r *NotifierRecorder) NewOrderCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.NewOrders)
}
