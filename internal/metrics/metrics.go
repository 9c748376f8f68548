package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Creation outcomes recorded by ObservePaymentCreation.
const (
	CreationResultSuccess  = "success"
	CreationResultRejected = "rejected"
	CreationResultGateway  = "gateway_error"
)

// Metrics aggregates the prometheus collectors of the payment service.
type Metrics struct {
	paymentCreations     *prometheus.CounterVec
	reconcileTransitions *prometheus.CounterVec
	gatewayRequests      *prometheus.HistogramVec
}

// New registers payment collectors on the given registerer.
func New(reg prometheus.Registerer) *Metrics {
	m := &Metrics{
		paymentCreations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paulpay",
			Name:      "payment_creations_total",
			Help:      "Payment creation outcomes.",
		}, []string{"result"}),
		reconcileTransitions: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: "paulpay",
			Name:      "reconcile_transitions_total",
			Help:      "Payment statuses applied during reconciliation.",
		}, []string{"status"}),
		gatewayRequests: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: "paulpay",
			Name:      "gateway_request_duration_seconds",
			Help:      "Duration of outbound gateway calls.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"operation", "outcome"}),
	}
	reg.MustRegister(m.paymentCreations, m.reconcileTransitions, m.gatewayRequests)
	return m
}

// ObservePaymentCreation counts a createPayment outcome.
func (m *Metrics) ObservePaymentCreation(result string) {
	m.paymentCreations.WithLabelValues(result).Inc()
}

// ObserveReconcileTransition counts a payment status applied by reconcile.
func (m *Metrics) ObserveReconcileTransition(status string) {
	m.reconcileTransitions.WithLabelValues(status).Inc()
}

// ObserveGatewayRequest records duration of a single gateway round trip.
func (m *Metrics) ObserveGatewayRequest(operation, outcome string, elapsed time.Duration) {
	m.gatewayRequests.WithLabelValues(operation, outcome).Observe(elapsed.Seconds())
}
