package notification

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/zullfi95/paulpay/internal/domain/model"
)

func TestLogDispatcherEvents(t *testing.T) {
	var buf bytes.Buffer
	dispatcher := NewLogDispatcher(slog.New(slog.NewJSONHandler(&buf, nil)))
	order := &model.Order{ID: 42, FinalAmount: "100.00", Currency: "AZN", CustomerRef: "John Doe"}

	dispatcher.PaymentSuccess(context.Background(), order)
	dispatcher.NewOrder(context.Background(), order)

	decoder := json.NewDecoder(&buf)

	var success map[string]any
	if err := decoder.Decode(&success); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if success["msg"] != "payment succeeded" || success["order_id"] != float64(42) || success["amount"] != "100.00" {
		t.Fatalf("unexpected event %v", success)
	}

	var fulfilment map[string]any
	if err := decoder.Decode(&fulfilment); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if fulfilment["msg"] != "new paid order" || fulfilment["customer"] != "John Doe" {
		t.Fatalf("unexpected event %v", fulfilment)
	}
}
