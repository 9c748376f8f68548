package di

import (
	"go.uber.org/fx"

	"github.com/zullfi95/paulpay/internal/adapter/algoritma"
	"github.com/zullfi95/paulpay/internal/app"
	"github.com/zullfi95/paulpay/internal/config"
	"github.com/zullfi95/paulpay/internal/logger"
	"github.com/zullfi95/paulpay/internal/metrics"
	"github.com/zullfi95/paulpay/internal/notification"
	"github.com/zullfi95/paulpay/internal/pkg/sign"
	"github.com/zullfi95/paulpay/internal/server/http/handlers"
	"github.com/zullfi95/paulpay/internal/server/http/router"
	"github.com/zullfi95/paulpay/internal/storage/postgres"
	"github.com/zullfi95/paulpay/internal/usecase"
)

func Module(opts ...fx.Option) fx.Option {
	modules := []fx.Option{
		config.Module,
		logger.Module,
		metrics.Module,
		sign.Module,
		postgres.Module,
		algoritma.Module,
		notification.Module,
		usecase.Module,
		fx.Provide(
			func(client *algoritma.Client) usecase.PaymentGateway { return client },
			func(client *algoritma.Client) app.GatewayConsole { return client },
			func(dispatcher notification.Dispatcher) usecase.Notifier { return dispatcher },
			func(facade *app.PaymentFacade) handlers.ServiceFacade { return facade },
			func(storage *postgres.Storage) handlers.HealthChecker { return storage },
		),
		router.Module,
		app.Module,
	}
	modules = append(modules, opts...)
	return fx.Options(modules...)
}
