package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/zullfi95/paulpay/internal/adapter/algoritma"
	domainErrors "github.com/zullfi95/paulpay/internal/domain/errors"
	"github.com/zullfi95/paulpay/internal/server/http/dto"
)

// PaymentHandler manages the payment lifecycle endpoints.
type PaymentHandler struct {
	facade PaymentOpsFacade
}

// NewPaymentHandler constructs PaymentHandler.
func NewPaymentHandler(facade PaymentOpsFacade) *PaymentHandler {
	return &PaymentHandler{facade: facade}
}

// Create handles POST /api/payment/orders/:id/create.
func (h *PaymentHandler) Create(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, dto.Envelope{Success: false, Message: "Order not found"})
		return
	}

	result, err := h.facade.CreatePayment(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.Envelope{Success: false, Message: "Order not found"})
		case errors.Is(err, domainErrors.ErrOrderNotPayable):
			c.JSON(http.StatusBadRequest, dto.Envelope{Success: false, Message: "Order is not payable"})
		case errors.Is(err, domainErrors.ErrAttemptsExceeded):
			c.JSON(http.StatusBadRequest, dto.Envelope{Success: false, Message: "Payment attempts exceeded"})
		case errors.Is(err, algoritma.ErrServiceUnavailable):
			c.JSON(http.StatusBadGateway, dto.Envelope{Success: false, Message: "Service unavailable"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{
		Success: true,
		Message: "Payment order created",
		Data: dto.PaymentCreatedData{
			PaymentURL: result.PaymentURL,
			OrderID:    result.GatewayOrderID,
			Attempts:   result.Attempts,
		},
	})
}

// Callback handles POST /api/payment/orders/:id/success and /failure. Both
// only trigger a reconcile: the gateway's view is authoritative, the callback
// is a hint.
func (h *PaymentHandler) Callback(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, dto.Envelope{Success: false, Message: "Order not found"})
		return
	}

	if _, err := h.facade.ReconcilePayment(c.Request.Context(), id); err != nil {
		h.reconcileError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.Envelope{Success: true, Message: "Payment status updated"})
}

// Info handles GET /api/payment/orders/:id/info.
func (h *PaymentHandler) Info(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		c.JSON(http.StatusNotFound, dto.Envelope{Success: false, Message: "Order not found"})
		return
	}

	info, err := h.facade.PaymentInfo(c.Request.Context(), id)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrNoAssociatedPayment):
			c.JSON(http.StatusNotFound, dto.Envelope{Success: false, Message: "Order has no associated payment"})
		case errors.Is(err, domainErrors.ErrNotFound):
			c.JSON(http.StatusNotFound, dto.Envelope{Success: false, Message: "Order not found"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusOK, dto.PaymentInfoResponse{
		OrderID:       info.OrderID,
		OrderStatus:   string(info.OrderStatus),
		PaymentStatus: string(info.PaymentStatus),
		Amount:        info.Amount,
		AmountCharged: info.AmountCharged,
		Attempts:      info.Attempts,
		CanRetry:      info.CanRetry,
		PaymentURL:    info.PaymentURL,
		CreatedAt:     info.CreatedAt,
		UpdatedAt:     info.UpdatedAt,
	})
}

// TestConnection handles GET /api/payment/test-connection.
func (h *PaymentHandler) TestConnection(c *gin.Context) {
	ping, err := h.facade.TestGatewayConnection(c.Request.Context())
	if err != nil {
		c.JSON(http.StatusBadGateway, dto.PingResponse{Success: false, Message: "Connection failed"})
		return
	}

	c.JSON(http.StatusOK, dto.PingResponse{Success: true, Message: ping.Message, Date: ping.Date})
}

// TestCards handles GET /api/payment/test-cards. Disabled outside sandbox.
func (h *PaymentHandler) TestCards(c *gin.Context) {
	cards := h.facade.GatewayTestCards()
	if len(cards) == 0 {
		c.Status(http.StatusNotFound)
		return
	}

	response := make([]dto.TestCardResponse, 0, len(cards))
	for _, card := range cards {
		response = append(response, dto.TestCardResponse{
			Scenario: card.Scenario,
			Number:   card.Number,
			Expiry:   card.Expiry,
			CVV:      card.CVV,
		})
	}
	c.JSON(http.StatusOK, response)
}

func (h *PaymentHandler) reconcileError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, domainErrors.ErrNotFound):
		c.JSON(http.StatusNotFound, dto.Envelope{Success: false, Message: "Order not found"})
	case errors.Is(err, domainErrors.ErrNoAssociatedPayment):
		c.JSON(http.StatusNotFound, dto.Envelope{Success: false, Message: "Order has no associated payment"})
	case errors.Is(err, algoritma.ErrConnectionFailed):
		c.JSON(http.StatusBadGateway, dto.Envelope{Success: false, Message: "Connection failed"})
	default:
		c.Status(http.StatusInternalServerError)
	}
}
