package algoritma

import (
	"log/slog"

	"go.uber.org/fx"

	"github.com/zullfi95/paulpay/internal/config"
	"github.com/zullfi95/paulpay/internal/metrics"
)

// Module exposes the gateway client implementation to the fx graph.
var Module = fx.Provide(newClient)

type clientParams struct {
	fx.In

	Config  *config.Config
	Logger  *slog.Logger
	Metrics *metrics.Metrics
}

func newClient(p clientParams) (*Client, error) {
	return NewClient(Config{
		BaseURL:     p.Config.AlgoritmaAddress,
		APIKey:      p.Config.AlgoritmaAPIKey,
		APISecret:   p.Config.AlgoritmaAPISecret,
		Environment: Environment(p.Config.AlgoritmaEnvironment),
		Timeout:     p.Config.GatewayTimeout,
	}, p.Logger, p.Metrics)
}
