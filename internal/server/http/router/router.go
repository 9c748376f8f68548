package router

import (
	"log/slog"

	"github.com/gin-contrib/gzip"
	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/zullfi95/paulpay/internal/pkg/sign"
	"github.com/zullfi95/paulpay/internal/server/http/handlers"
	"github.com/zullfi95/paulpay/internal/server/http/middleware"
)

// Setup configures gin router with handlers and middleware.
func Setup(facade handlers.ServiceFacade, checker handlers.HealthChecker, verifier *sign.Verifier, registry *prometheus.Registry, logger *slog.Logger) *gin.Engine {
	gin.SetMode(gin.ReleaseMode)
	engine := gin.New()

	engine.Use(gin.Recovery())
	engine.Use(middleware.RequestID())
	engine.Use(middleware.RequestLogger(logger))
	engine.Use(middleware.DecompressRequest())
	engine.Use(gzip.Gzip(gzip.DefaultCompression))

	orderHandler := handlers.NewOrderHandler(facade)
	paymentHandler := handlers.NewPaymentHandler(facade)
	healthHandler := handlers.NewHealthHandler(checker)

	api := engine.Group("/api")
	api.GET("/health", healthHandler.Check)
	api.POST("/orders", orderHandler.Create)
	api.GET("/orders/:id", orderHandler.Get)

	payment := api.Group("/payment")
	payment.POST("/orders/:id/create", paymentHandler.Create)
	payment.GET("/orders/:id/info", paymentHandler.Info)
	payment.GET("/test-connection", paymentHandler.TestConnection)
	payment.GET("/test-cards", paymentHandler.TestCards)

	callbacks := payment.Group("")
	callbacks.Use(middleware.WebhookSignature(verifier))
	callbacks.POST("/orders/:id/success", paymentHandler.Callback)
	callbacks.POST("/orders/:id/failure", paymentHandler.Callback)

	engine.GET("/metrics", gin.WrapH(promhttp.HandlerFor(registry, promhttp.HandlerOpts{})))

	return engine
}
