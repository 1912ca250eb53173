package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/estampaviva/estampa-api/internal/service"
	"github.com/estampaviva/estampa-api/internal/utils"
)

// CheckoutHandler handles checkout and order lookup endpoints.
type CheckoutHandler struct {
	checkoutService *service.CheckoutService
}

// NewCheckoutHandler constructs a CheckoutHandler.
func NewCheckoutHandler(checkoutService *service.CheckoutService) *CheckoutHandler {
	return &CheckoutHandler{checkoutService: checkoutService}
}

// Checkout handles POST /v1/checkout
func (h *CheckoutHandler) Checkout(c *gin.Context) {
	sessionID := c.GetHeader("X-Session-Id")
	if sessionID == "" {
		utils.Error(c, 400, "MISSING_SESSION", "X-Session-Id header is required")
		return
	}

	var req service.CheckoutRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.checkoutService.Checkout(c.Request.Context(), sessionID, &req)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrEmptyCart):
			utils.Error(c, 400, "EMPTY_CART", "The cart is empty")
		case errors.Is(err, utils.ErrPaymentFailed):
			utils.Error(c, 502, "PAYMENT_FAILED", err.Error())
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Checkout failed")
		}
		return
	}
	utils.Success(c, 201, "Checkout completed", result)
}

// GetOrder handles GET /v1/orders/:reference
func (h *CheckoutHandler) GetOrder(c *gin.Context) {
	order, err := h.checkoutService.GetOrder(c.Param("reference"))
	if err != nil {
		utils.Error(c, 404, "ORDER_NOT_FOUND", "Order not found")
		return
	}
	utils.Success(c, 200, "Order retrieved", order)
}
