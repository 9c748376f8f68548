package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/fx"
)

// Module wires the prometheus registry and payment collectors.
var Module = fx.Provide(
	prometheus.NewRegistry,
	func(reg *prometheus.Registry) *Metrics { return New(reg) },
)
