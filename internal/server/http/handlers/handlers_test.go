package handlers

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"

	"github.com/zullfi95/paulpay/internal/adapter/algoritma"
	domainErrors "github.com/zullfi95/paulpay/internal/domain/errors"
	"github.com/zullfi95/paulpay/internal/domain/model"
	"github.com/zullfi95/paulpay/internal/test"
	"github.com/zullfi95/paulpay/internal/usecase"
)

func performRequest(router *gin.Engine, method, target, body string) *httptest.ResponseRecorder {
	var reader *bytes.Reader
	if body != "" {
		reader = bytes.NewReader([]byte(body))
	} else {
		reader = bytes.NewReader(nil)
	}
	req := httptest.NewRequest(method, target, reader)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func orderRouter(facade OrderFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewOrderHandler(facade)
	router.POST("/api/orders", h.Create)
	router.GET("/api/orders/:id", h.Get)
	return router
}

func paymentRouter(facade PaymentOpsFacade) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	h := NewPaymentHandler(facade)
	router.POST("/api/payment/orders/:id/create", h.Create)
	router.POST("/api/payment/orders/:id/success", h.Callback)
	router.POST("/api/payment/orders/:id/failure", h.Callback)
	router.GET("/api/payment/orders/:id/info", h.Info)
	router.GET("/api/payment/test-connection", h.TestConnection)
	router.GET("/api/payment/test-cards", h.TestCards)
	return router
}

func TestOrderCreate(t *testing.T) {
	router := orderRouter(test.OrderFacadeStub{})

	rec := performRequest(router, http.MethodPost, "/api/orders", `{"amount":"100.00","currency":"AZN"}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp["final_amount"] != "100.00" || resp["status"] != "submitted" {
		t.Fatalf("unexpected response %v", resp)
	}
}

func TestOrderCreateValidation(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		err     error
		message string
	}{
		{name: "malformed json", body: `{`, message: "Invalid request body"},
		{name: "missing amount", body: `{}`, message: "Invalid request body"},
		{name: "invalid amount", body: `{"amount":"abc"}`, err: domainErrors.ErrInvalidAmount, message: "Invalid amount"},
		{name: "invalid currency", body: `{"amount":"1.00","currency":"X"}`, err: domainErrors.ErrInvalidCurrency, message: "Invalid currency"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := orderRouter(test.OrderFacadeStub{
				RegisterFn: func(context.Context, string, string, string, string) (*model.Order, error) {
					return nil, tt.err
				},
			})
			rec := performRequest(router, http.MethodPost, "/api/orders", tt.body)
			if rec.Code != http.StatusBadRequest {
				t.Fatalf("expected 400, got %d", rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.message) {
				t.Fatalf("expected message %q in %s", tt.message, rec.Body.String())
			}
		})
	}
}

func TestOrderGet(t *testing.T) {
	router := orderRouter(test.OrderFacadeStub{
		OrderFn: func(_ context.Context, id int64) (*model.Order, error) {
			if id != 42 {
				return nil, domainErrors.ErrNotFound
			}
			return &model.Order{ID: 42, Status: model.OrderStatusPendingPayment, FinalAmount: "100.00", Currency: "AZN", PaymentStatus: model.PaymentStatusPending}, nil
		},
	})

	rec := performRequest(router, http.MethodGet, "/api/orders/42", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	for _, target := range []string{"/api/orders/999", "/api/orders/abc", "/api/orders/-1"} {
		if rec := performRequest(router, http.MethodGet, target, ""); rec.Code != http.StatusNotFound {
			t.Fatalf("expected 404 for %s, got %d", target, rec.Code)
		}
	}
}

func TestPaymentCreate(t *testing.T) {
	router := paymentRouter(test.PaymentOpsFacadeStub{})

	rec := performRequest(router, http.MethodPost, "/api/payment/orders/1/create", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", rec.Code, rec.Body.String())
	}

	var resp struct {
		Success bool `json:"success"`
		Data    struct {
			PaymentURL string `json:"payment_url"`
			OrderID    string `json:"order_id"`
			Attempts   int    `json:"attempts"`
		} `json:"data"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !resp.Success || resp.Data.OrderID != "123456789" || resp.Data.Attempts != 1 {
		t.Fatalf("unexpected response %+v", resp)
	}
	if !strings.Contains(resp.Data.PaymentURL, "payment.example.com") {
		t.Fatalf("unexpected payment url %q", resp.Data.PaymentURL)
	}
}

func TestPaymentCreateErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "not found", err: domainErrors.ErrNotFound, status: http.StatusNotFound, message: "Order not found"},
		{name: "not payable", err: domainErrors.ErrOrderNotPayable, status: http.StatusBadRequest, message: "Order is not payable"},
		{name: "attempts exceeded", err: domainErrors.ErrAttemptsExceeded, status: http.StatusBadRequest, message: "Payment attempts exceeded"},
		{name: "gateway down", err: algoritma.ErrServiceUnavailable, status: http.StatusBadGateway, message: "Service unavailable"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := paymentRouter(test.PaymentOpsFacadeStub{
				CreatePaymentFn: func(context.Context, int64) (*usecase.CreatePaymentResult, error) {
					return nil, tt.err
				},
			})
			rec := performRequest(router, http.MethodPost, "/api/payment/orders/1/create", "")
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.message) {
				t.Fatalf("expected message %q in %s", tt.message, rec.Body.String())
			}
		})
	}
}

func TestPaymentCallbackTriggersReconcile(t *testing.T) {
	var reconciled []int64
	router := paymentRouter(test.PaymentOpsFacadeStub{
		ReconcileFn: func(_ context.Context, id int64) (*model.Order, error) {
			reconciled = append(reconciled, id)
			return &model.Order{ID: id, Status: model.OrderStatusPaid}, nil
		},
	})

	for _, target := range []string{"/api/payment/orders/7/success", "/api/payment/orders/7/failure"} {
		rec := performRequest(router, http.MethodPost, target, "")
		if rec.Code != http.StatusOK {
			t.Fatalf("expected 200 for %s, got %d", target, rec.Code)
		}
	}
	if len(reconciled) != 2 || reconciled[0] != 7 || reconciled[1] != 7 {
		t.Fatalf("unexpected reconcile calls %v", reconciled)
	}
}

func TestPaymentCallbackErrors(t *testing.T) {
	tests := []struct {
		name    string
		err     error
		status  int
		message string
	}{
		{name: "no payment", err: domainErrors.ErrNoAssociatedPayment, status: http.StatusNotFound, message: "Order has no associated payment"},
		{name: "gateway unreachable", err: algoritma.ErrConnectionFailed, status: http.StatusBadGateway, message: "Connection failed"},
		{name: "not found", err: domainErrors.ErrNotFound, status: http.StatusNotFound, message: "Order not found"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			router := paymentRouter(test.PaymentOpsFacadeStub{
				ReconcileFn: func(context.Context, int64) (*model.Order, error) {
					return nil, tt.err
				},
			})
			rec := performRequest(router, http.MethodPost, "/api/payment/orders/1/success", "")
			if rec.Code != tt.status {
				t.Fatalf("expected %d, got %d", tt.status, rec.Code)
			}
			if !strings.Contains(rec.Body.String(), tt.message) {
				t.Fatalf("expected message %q in %s", tt.message, rec.Body.String())
			}
		})
	}
}

func TestPaymentInfo(t *testing.T) {
	router := paymentRouter(test.PaymentOpsFacadeStub{})

	rec := performRequest(router, http.MethodGet, "/api/payment/orders/1/info", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	var resp struct {
		OrderID  int64  `json:"order_id"`
		Amount   string `json:"amount"`
		CanRetry bool   `json:"can_retry"`
	}
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if resp.OrderID != 1 || resp.Amount != "100.00" || !resp.CanRetry {
		t.Fatalf("unexpected response %+v", resp)
	}
}

func TestPaymentInfoWithoutPayment(t *testing.T) {
	router := paymentRouter(test.PaymentOpsFacadeStub{
		PaymentInfoFn: func(context.Context, int64) (*model.PaymentInfo, error) {
			return nil, domainErrors.ErrNoAssociatedPayment
		},
	})

	rec := performRequest(router, http.MethodGet, "/api/payment/orders/1/info", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Order has no associated payment") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestGatewayTestConnection(t *testing.T) {
	router := paymentRouter(test.PaymentOpsFacadeStub{})
	rec := performRequest(router, http.MethodGet, "/api/payment/test-connection", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	down := paymentRouter(test.PaymentOpsFacadeStub{
		PingFn: func(context.Context) (*model.GatewayPing, error) {
			return nil, errors.New("dial tcp: refused")
		},
	})
	rec = performRequest(down, http.MethodGet, "/api/payment/test-connection", "")
	if rec.Code != http.StatusBadGateway {
		t.Fatalf("expected 502, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "Connection failed") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}
}

func TestGatewayTestCards(t *testing.T) {
	router := paymentRouter(test.PaymentOpsFacadeStub{})
	rec := performRequest(router, http.MethodGet, "/api/payment/test-cards", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
	if !strings.Contains(rec.Body.String(), "4111111111111111") {
		t.Fatalf("unexpected body %s", rec.Body.String())
	}

	live := paymentRouter(test.PaymentOpsFacadeStub{
		CardsFn: func() []model.TestCard { return nil },
	})
	rec = performRequest(live, http.MethodGet, "/api/payment/test-cards", "")
	if rec.Code != http.StatusNotFound {
		t.Fatalf("expected 404 outside sandbox, got %d", rec.Code)
	}
}

func TestHealthCheck(t *testing.T) {
	gin.SetMode(gin.TestMode)

	healthy := gin.New()
	healthy.GET("/api/health", NewHealthHandler(test.HealthCheckerStub{}).Check)
	if rec := performRequest(healthy, http.MethodGet, "/api/health", ""); rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}

	broken := gin.New()
	broken.GET("/api/health", NewHealthHandler(test.HealthCheckerStub{Err: errors.New("db down")}).Check)
	if rec := performRequest(broken, http.MethodGet, "/api/health", ""); rec.Code != http.StatusServiceUnavailable {
		t.Fatalf("expected 503, got %d", rec.Code)
	}
}
