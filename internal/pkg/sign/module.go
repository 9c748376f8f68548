package sign

import (
	"go.uber.org/fx"

	"github.com/zullfi95/paulpay/internal/config"
)

// Module provides webhook signature verifier to fx graphs.
var Module = fx.Provide(func(cfg *config.Config) *Verifier {
	return NewVerifier(cfg.WebhookSecret)
})
