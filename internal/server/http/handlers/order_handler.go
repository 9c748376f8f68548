package handlers

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	domainErrors "github.com/zullfi95/paulpay/internal/domain/errors"
	"github.com/zullfi95/paulpay/internal/domain/model"
	"github.com/zullfi95/paulpay/internal/server/http/dto"
)

// OrderHandler manages order intake endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.Envelope{Success: false, Message: "Invalid request body"})
		return
	}

	order, err := h.facade.RegisterOrder(c.Request.Context(), req.Amount, req.Currency, req.CustomerRef, req.Description)
	if err != nil {
		switch {
		case errors.Is(err, domainErrors.ErrInvalidAmount):
			c.JSON(http.StatusBadRequest, dto.Envelope{Success: false, Message: "Invalid amount"})
		case errors.Is(err, domainErrors.ErrInvalidCurrency):
			c.JSON(http.StatusBadRequest, dto.Envelope{Success: false, Message: "Invalid currency"})
		default:
			c.Status(http.StatusInternalServerError)
		}
		return
	}

	c.JSON(http.StatusCreated, toOrderResponse(order))
}

// Get handles GET /api/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := orderIDParam(c)
	if !ok {
		c.Status(http.StatusNotFound)
		return
	}

	order, err := h.facade.Order(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, domainErrors.ErrNotFound) {
			c.Status(http.StatusNotFound)
			return
		}
		c.Status(http.StatusInternalServerError)
		return
	}

	c.JSON(http.StatusOK, toOrderResponse(order))
}

func toOrderResponse(order *model.Order) dto.OrderResponse {
	return dto.OrderResponse{
		ID:            order.ID,
		Status:        string(order.Status),
		FinalAmount:   order.FinalAmount,
		Currency:      order.Currency,
		CustomerRef:   order.CustomerRef,
		Description:   order.Description,
		PaymentStatus: string(order.PaymentStatus),
		CreatedAt:     order.CreatedAt,
	}
}
