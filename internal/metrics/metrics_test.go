package metrics

import (
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestObservations(t *testing.T) {
	reg := prometheus.NewRegistry()
	m := New(reg)

	m.ObservePaymentCreation(CreationResultSuccess)
	m.ObservePaymentCreation(CreationResultSuccess)
	m.ObservePaymentCreation(CreationResultRejected)
	m.ObserveReconcileTransition("charged")
	m.ObserveGatewayRequest("create_order", "ok", 120*time.Millisecond)

	if got := testutil.ToFloat64(m.paymentCreations.WithLabelValues(CreationResultSuccess)); got != 2 {
		t.Fatalf("expected 2 successful creations, got %v", got)
	}
	if got := testutil.ToFloat64(m.paymentCreations.WithLabelValues(CreationResultRejected)); got != 1 {
		t.Fatalf("expected 1 rejected creation, got %v", got)
	}
	if got := testutil.ToFloat64(m.reconcileTransitions.WithLabelValues("charged")); got != 1 {
		t.Fatalf("expected 1 charged transition, got %v", got)
	}

	families, err := reg.Gather()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	var foundHistogram bool
	for _, family := range families {
		if family.GetName() == "paulpay_gateway_request_duration_seconds" {
			foundHistogram = true
		}
	}
	if !foundHistogram {
		t.Fatal("expected gateway request histogram to be registered")
	}
}

func TestNewRegistersCollectorsOnce(t *testing.T) {
	reg := prometheus.NewRegistry()
	New(reg)

	defer func() {
		if recover() == nil {
			t.Fatal("expected duplicate registration to panic")
		}
	}()
	New(reg)
}
