package algoritma

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"path"
	"time"

	"github.com/google/uuid"

	"github.com/zullfi95/paulpay/internal/domain/model"
	"github.com/zullfi95/paulpay/internal/metrics"
)

// ErrServiceUnavailable covers any transport or gateway failure during order
// creation. ErrConnectionFailed covers failures while querying order state or
// pinging the gateway. Callers branch on these and never see raw transport
// errors.
var (
	ErrServiceUnavailable = errors.New("service unavailable")
	ErrConnectionFailed   = errors.New("connection failed")
)

// Environment selects the gateway deployment the client talks to.
type Environment string

const (
	EnvironmentSandbox Environment = "sandbox"
	EnvironmentLive    Environment = "live"
)

const defaultTimeout = 10 * time.Second

// Config carries everything the client needs; no ambient configuration lookups.
type Config struct {
	BaseURL     string
	APIKey      string
	APISecret   string
	Environment Environment
	Timeout     time.Duration
}

// Client talks to the Algoritma payment gateway over HTTP.
type Client struct {
	baseURL    *url.URL
	apiKey     string
	apiSecret  string
	env        Environment
	httpClient *http.Client
	logger     *slog.Logger
	metrics    *metrics.Metrics
}

type createOrderPayload struct {
	Amount          string `json:"amount"`
	Currency        string `json:"currency"`
	MerchantOrderID string `json:"merchant_order_id"`
	Description     string `json:"description,omitempty"`
	Client          string `json:"client,omitempty"`
	ReturnURL       string `json:"return_url,omitempty"`
}

type orderEnvelope struct {
	Orders []orderPayload `json:"orders"`
}

type orderPayload struct {
	ID            string             `json:"id"`
	Status        string             `json:"status"`
	Amount        string             `json:"amount"`
	AmountCharged string             `json:"amount_charged"`
	HPPURL        string             `json:"hpp_url"`
	Operations    []operationPayload `json:"operations"`
}

type operationPayload struct {
	Type    string `json:"type"`
	Status  string `json:"status"`
	Amount  string `json:"amount"`
	Created string `json:"created"`
}

type pingPayload struct {
	Message string `json:"message"`
	Date    string `json:"date"`
}

// NewClient creates a gateway client with a bounded per-request timeout.
func NewClient(cfg Config, logger *slog.Logger, m *metrics.Metrics) (*Client, error) {
	parsed, err := url.Parse(cfg.BaseURL)
	if err != nil {
		return nil, fmt.Errorf("parse gateway url: %w", err)
	}
	if !parsed.IsAbs() {
		return nil, fmt.Errorf("gateway url must be absolute")
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = defaultTimeout
	}
	env := cfg.Environment
	if env == "" {
		env = EnvironmentSandbox
	}
	return &Client{
		baseURL:   parsed,
		apiKey:    cfg.APIKey,
		apiSecret: cfg.APISecret,
		env:       env,
		logger:    logger,
		metrics:   m,
		httpClient: &http.Client{
			Timeout: timeout,
		},
	}, nil
}

// CreateOrder registers a new payment order with the gateway. The payment URL
// is taken from the Location header when present, falling back to the hosted
// payment page URL in the response body.
func (c *Client) CreateOrder(ctx context.Context, req model.PaymentOrderRequest) (*model.PaymentCreation, error) {
	start := time.Now()
	result, err := c.createOrder(ctx, req)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.ObserveGatewayRequest("create_order", outcome, time.Since(start))
	return result, err
}

func (c *Client) createOrder(ctx context.Context, req model.PaymentOrderRequest) (*model.PaymentCreation, error) {
	payload, err := json.Marshal(createOrderPayload{
		Amount:          req.Amount,
		Currency:        req.Currency,
		MerchantOrderID: req.MerchantOrderID,
		Description:     req.Description,
		Client:          req.CustomerRef,
		ReturnURL:       req.ReturnURL,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: encode request", ErrServiceUnavailable)
	}

	httpReq, err := c.newRequest(ctx, http.MethodPost, "/orders/create", bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrServiceUnavailable, err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("gateway create order failed", slog.String("error", err.Error()))
		return nil, fmt.Errorf("%w: %s", ErrServiceUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway rejected order creation",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("%w: status %s", ErrServiceUnavailable, resp.Status)
	}

	var envelope orderEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response", ErrServiceUnavailable)
	}
	if len(envelope.Orders) == 0 || envelope.Orders[0].ID == "" {
		return nil, fmt.Errorf("%w: response without order id", ErrServiceUnavailable)
	}

	order := envelope.Orders[0]
	paymentURL := resp.Header.Get("Location")
	if paymentURL == "" {
		paymentURL = order.HPPURL
	}
	if paymentURL == "" {
		return nil, fmt.Errorf("%w: response without payment url", ErrServiceUnavailable)
	}

	return &model.PaymentCreation{GatewayOrderID: order.ID, PaymentURL: paymentURL}, nil
}

// GetOrderInfo fetches the gateway's current view of an order, including its
// operation history.
func (c *Client) GetOrderInfo(ctx context.Context, gatewayOrderID string) (*model.GatewayOrder, error) {
	start := time.Now()
	result, err := c.getOrderInfo(ctx, gatewayOrderID)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.ObserveGatewayRequest("get_order_info", outcome, time.Since(start))
	return result, err
}

func (c *Client) getOrderInfo(ctx context.Context, gatewayOrderID string) (*model.GatewayOrder, error) {
	httpReq, err := c.newRequest(ctx, http.MethodGet, path.Join("/orders", gatewayOrderID), nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConnectionFailed, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.logger.Error("gateway order info failed",
			slog.String("gateway_order_id", gatewayOrderID),
			slog.String("error", err.Error()),
		)
		return nil, fmt.Errorf("%w: %s", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(resp.Body)
		c.logger.Error("gateway order info rejected",
			slog.Int("status", resp.StatusCode),
			slog.String("body", string(body)),
		)
		return nil, fmt.Errorf("%w: status %s", ErrConnectionFailed, resp.Status)
	}

	var envelope orderEnvelope
	if err := json.NewDecoder(resp.Body).Decode(&envelope); err != nil {
		return nil, fmt.Errorf("%w: decode response", ErrConnectionFailed)
	}
	if len(envelope.Orders) == 0 {
		return nil, fmt.Errorf("%w: order not found in response", ErrConnectionFailed)
	}

	order := envelope.Orders[0]
	result := &model.GatewayOrder{
		ID:            order.ID,
		Status:        order.Status,
		Amount:        order.Amount,
		AmountCharged: order.AmountCharged,
	}
	for _, op := range order.Operations {
		result.Operations = append(result.Operations, model.GatewayOperation{
			Type:    op.Type,
			Status:  op.Status,
			Amount:  op.Amount,
			Created: op.Created,
		})
	}
	return result, nil
}

// TestConnection probes the gateway ping endpoint.
func (c *Client) TestConnection(ctx context.Context) (*model.GatewayPing, error) {
	start := time.Now()
	result, err := c.testConnection(ctx)
	outcome := "ok"
	if err != nil {
		outcome = "error"
	}
	c.metrics.ObserveGatewayRequest("ping", outcome, time.Since(start))
	return result, err
}

func (c *Client) testConnection(ctx context.Context) (*model.GatewayPing, error) {
	httpReq, err := c.newRequest(ctx, http.MethodGet, "/ping", nil)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConnectionFailed, err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrConnectionFailed, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: status %s", ErrConnectionFailed, resp.Status)
	}

	var ping pingPayload
	if err := json.NewDecoder(resp.Body).Decode(&ping); err != nil {
		return nil, fmt.Errorf("%w: decode response", ErrConnectionFailed)
	}
	return &model.GatewayPing{Message: ping.Message, Date: ping.Date}, nil
}

// TestCards returns the sandbox card table. Nil outside the sandbox environment.
func (c *Client) TestCards() []model.TestCard {
	if c.env != EnvironmentSandbox {
		return nil
	}
	return []model.TestCard{
		{Scenario: "success", Number: "4111111111111111", Expiry: "12/29", CVV: "123"},
		{Scenario: "declined", Number: "4276838748917319", Expiry: "12/29", CVV: "123"},
		{Scenario: "fraud", Number: "4000000000000002", Expiry: "12/29", CVV: "123"},
		{Scenario: "error", Number: "4000000000000119", Expiry: "12/29", CVV: "123"},
		{Scenario: "not_enrolled", Number: "4245757666349685", Expiry: "12/29", CVV: "123"},
	}
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	target := *c.baseURL
	target.Path = path.Join(target.Path, endpoint)

	req, err := http.NewRequestWithContext(ctx, method, target.String(), body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-API-Key", c.apiKey)
	req.Header.Set("X-API-Secret", c.apiSecret)
	req.Header.Set("X-Request-ID", uuid.NewString())
	if c.env == EnvironmentSandbox {
		req.Header.Set("X-Environment", string(EnvironmentSandbox))
	}
	return req, nil
}
