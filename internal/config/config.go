package config

import (
	"flag"
	"fmt"
	"io"
	"os"
	"strconv"
	"time"
)

// Config holds application level configuration loaded from environment and flags.
type Config struct {
	RunAddress           string
	DatabaseURI          string
	AlgoritmaAddress     string
	AlgoritmaAPIKey      string
	AlgoritmaAPISecret   string
	AlgoritmaEnvironment string
	WebhookSecret        string
	ReturnURL            string
	Currency             string
	MaxPaymentAttempts   int
	GatewayTimeout       time.Duration
	ReconcileInterval    time.Duration
	WorkerPoolSize       int
	ShutdownTimeout      time.Duration
	MaxOrdersBatch       int
}

const (
	defaultRunAddress        = ":8080"
	defaultEnvironment       = "sandbox"
	defaultWebhookSecret     = "change-me-in-production"
	defaultCurrency          = "AZN"
	defaultMaxAttempts       = 3
	defaultGatewayTimeout    = 10 * time.Second
	defaultReconcileInterval = 5 * time.Second
	defaultWorkerPoolSize    = 4
	defaultShutdownTimeout   = 10 * time.Second
	defaultMaxOrdersBatch    = 32
)

// Load parses configuration from flags and environment variables.
func Load() (*Config, error) {
	return load(os.Args[1:], os.LookupEnv)
}

type envLookup func(string) (string, bool)

func load(args []string, lookup envLookup) (*Config, error) {
	cfg := &Config{
		RunAddress:           getString(lookup, "RUN_ADDRESS", defaultRunAddress),
		DatabaseURI:          getString(lookup, "DATABASE_URI", ""),
		AlgoritmaAddress:     getString(lookup, "ALGORITMA_ADDRESS", ""),
		AlgoritmaAPIKey:      getString(lookup, "ALGORITMA_API_KEY", ""),
		AlgoritmaAPISecret:   getString(lookup, "ALGORITMA_API_SECRET", ""),
		AlgoritmaEnvironment: getString(lookup, "ALGORITMA_ENVIRONMENT", defaultEnvironment),
		WebhookSecret:        getString(lookup, "WEBHOOK_SECRET", defaultWebhookSecret),
		ReturnURL:            getString(lookup, "PAYMENT_RETURN_URL", ""),
		Currency:             getString(lookup, "CURRENCY", defaultCurrency),
		MaxPaymentAttempts:   getInt(lookup, "MAX_PAYMENT_ATTEMPTS", defaultMaxAttempts),
		GatewayTimeout:       getDuration(lookup, "GATEWAY_TIMEOUT", defaultGatewayTimeout),
		ReconcileInterval:    getDuration(lookup, "RECONCILE_INTERVAL", defaultReconcileInterval),
		WorkerPoolSize:       getInt(lookup, "WORKER_POOL_SIZE", defaultWorkerPoolSize),
		ShutdownTimeout:      getDuration(lookup, "SHUTDOWN_TIMEOUT", defaultShutdownTimeout),
		MaxOrdersBatch:       getInt(lookup, "POLL_BATCH_SIZE", defaultMaxOrdersBatch),
	}

	fs := flag.NewFlagSet("paulpay", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	var (
		gatewayTimeoutStr    = cfg.GatewayTimeout.String()
		reconcileIntervalStr = cfg.ReconcileInterval.String()
		shutdownTimeoutStr   = cfg.ShutdownTimeout.String()
	)

	fs.StringVar(&cfg.RunAddress, "a", cfg.RunAddress, "HTTP server listen address")
	fs.StringVar(&cfg.DatabaseURI, "d", cfg.DatabaseURI, "PostgreSQL DSN")
	fs.StringVar(&cfg.AlgoritmaAddress, "r", cfg.AlgoritmaAddress, "Algoritma gateway base URL")
	fs.StringVar(&cfg.AlgoritmaAPIKey, "api-key", cfg.AlgoritmaAPIKey, "Algoritma API key")
	fs.StringVar(&cfg.AlgoritmaAPISecret, "api-secret", cfg.AlgoritmaAPISecret, "Algoritma API secret")
	fs.StringVar(&cfg.AlgoritmaEnvironment, "environment", cfg.AlgoritmaEnvironment, "Gateway environment (sandbox or live)")
	fs.StringVar(&cfg.WebhookSecret, "webhook-secret", cfg.WebhookSecret, "Secret for verifying gateway callbacks")
	fs.StringVar(&cfg.ReturnURL, "return-url", cfg.ReturnURL, "Customer return URL after payment")
	fs.StringVar(&cfg.Currency, "currency", cfg.Currency, "Default order currency")
	fs.IntVar(&cfg.MaxPaymentAttempts, "max-attempts", cfg.MaxPaymentAttempts, "Payment attempt ceiling per order")
	fs.IntVar(&cfg.WorkerPoolSize, "worker-pool", cfg.WorkerPoolSize, "Number of concurrent reconcile workers")
	fs.StringVar(&gatewayTimeoutStr, "gateway-timeout", gatewayTimeoutStr, "Timeout for outbound gateway calls")
	fs.StringVar(&reconcileIntervalStr, "reconcile-interval", reconcileIntervalStr, "Interval between reconcile sweeps")
	fs.StringVar(&shutdownTimeoutStr, "shutdown-timeout", shutdownTimeoutStr, "Graceful shutdown timeout")
	fs.IntVar(&cfg.MaxOrdersBatch, "poll-batch", cfg.MaxOrdersBatch, "Maximum orders per reconcile batch")

	if err := fs.Parse(args); err != nil {
		return nil, fmt.Errorf("parse flags: %w", err)
	}

	var err error

	if cfg.GatewayTimeout, err = time.ParseDuration(gatewayTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid gateway timeout: %w", err)
	}

	if cfg.ReconcileInterval, err = time.ParseDuration(reconcileIntervalStr); err != nil {
		return nil, fmt.Errorf("invalid reconcile interval: %w", err)
	}

	if cfg.ShutdownTimeout, err = time.ParseDuration(shutdownTimeoutStr); err != nil {
		return nil, fmt.Errorf("invalid shutdown timeout: %w", err)
	}

	if secretFile, ok := lookup("WEBHOOK_SECRET_FILE"); ok && secretFile != "" {
		content, err := os.ReadFile(secretFile)
		if err != nil {
			return nil, fmt.Errorf("read webhook secret file: %w", err)
		}
		cfg.WebhookSecret = string(content)
	}

	if cfg.MaxPaymentAttempts <= 0 {
		cfg.MaxPaymentAttempts = defaultMaxAttempts
	}

	if cfg.WorkerPoolSize <= 0 {
		cfg.WorkerPoolSize = defaultWorkerPoolSize
	}

	if cfg.MaxOrdersBatch <= 0 {
		cfg.MaxOrdersBatch = defaultMaxOrdersBatch
	}

	if cfg.GatewayTimeout <= 0 {
		cfg.GatewayTimeout = defaultGatewayTimeout
	}

	if cfg.ReconcileInterval <= 0 {
		cfg.ReconcileInterval = defaultReconcileInterval
	}

	if cfg.ShutdownTimeout <= 0 {
		cfg.ShutdownTimeout = defaultShutdownTimeout
	}

	if cfg.AlgoritmaEnvironment != "sandbox" && cfg.AlgoritmaEnvironment != "live" {
		return nil, fmt.Errorf("environment must be sandbox or live, got %q", cfg.AlgoritmaEnvironment)
	}

	if cfg.DatabaseURI == "" {
		return nil, fmt.Errorf("database URI must be provided")
	}

	if cfg.AlgoritmaAddress == "" {
		return nil, fmt.Errorf("algoritma gateway address must be provided")
	}

	if cfg.AlgoritmaAPIKey == "" {
		return nil, fmt.Errorf("algoritma API key must be provided")
	}

	return cfg, nil
}

func getString(lookup envLookup, key, def string) string {
	if v, ok := lookup(key); ok && v != "" {
		return v
	}
	return def
}

func getInt(lookup envLookup, key string, def int) int {
	if v, ok := lookup(key); ok && v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

func getDuration(lookup envLookup, key string, def time.Duration) time.Duration {
	if v, ok := lookup(key); ok && v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return def
}
