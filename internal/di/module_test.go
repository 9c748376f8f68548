package di

import (
	"context"
	"io"
	"log/slog"
	"testing"
	"time"

	"go.uber.org/fx"

	"github.com/zullfi95/paulpay/internal/app"
	"github.com/zullfi95/paulpay/internal/config"
	"github.com/zullfi95/paulpay/internal/domain/repository"
	"github.com/zullfi95/paulpay/internal/storage/postgres"
	"github.com/zullfi95/paulpay/internal/test"
	"github.com/zullfi95/paulpay/internal/usecase"
)

func TestModuleComposesGraphWithReplacements(t *testing.T) {
	cfg := &config.Config{
		RunAddress:           ":0",
		DatabaseURI:          "postgres://stub",
		AlgoritmaAddress:     "http://localhost",
		AlgoritmaAPIKey:      "key",
		AlgoritmaEnvironment: "sandbox",
		WebhookSecret:        "secret",
		Currency:             "AZN",
		MaxPaymentAttempts:   3,
		ReconcileInterval:    time.Millisecond,
		WorkerPoolSize:       1,
		ShutdownTimeout:      time.Millisecond,
		MaxOrdersBatch:       1,
	}
	logger := slog.New(slog.NewJSONHandler(io.Discard, nil))
	orderRepo := test.NewOrderRepositoryStub()
	gateway := &test.GatewayStub{}
	console := test.GatewayConsoleStub{}

	var facade *app.PaymentFacade
	fxApp := fx.New(
		fx.NopLogger,
		fx.Supply(context.Background()),
		Module(
			fx.Replace(cfg),
			fx.Replace(logger),
			fx.Replace(&postgres.Storage{}),
			fx.Replace(repository.OrderRepository(orderRepo)),
			fx.Replace(usecase.PaymentGateway(gateway)),
			fx.Replace(app.GatewayConsole(console)),
		),
		fx.Populate(&facade),
	)

	if err := fxApp.Err(); err != nil {
		t.Fatalf("fx app returned error: %v", err)
	}
	t.Cleanup(func() { _ = fxApp.Stop(context.Background()) })
	if facade == nil {
		t.Fatal("expected payment facade instance")
	}
}
