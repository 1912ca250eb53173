package handler

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/internal/pricing"
	"github.com/estampaviva/estampa-api/internal/service"
	"github.com/estampaviva/estampa-api/internal/utils"
)

// sessionHeader identifies the shopper's cart session. The first cart call
// without one gets a fresh session id back in the same header.
const sessionHeader = "X-Session-Id"

// CartHandler handles cart HTTP endpoints.
type CartHandler struct {
	cartService *service.CartService
}

// NewCartHandler constructs a CartHandler.
func NewCartHandler(cartService *service.CartService) *CartHandler {
	return &CartHandler{cartService: cartService}
}

// session returns the request's session id, minting one when absent. The id
// is always echoed on the response so clients can persist it.
func (h *CartHandler) session(c *gin.Context) string {
	id := c.GetHeader(sessionHeader)
	if id == "" {
		id = uuid.New().String()
	}
	c.Header(sessionHeader, id)
	return id
}

type cartResponse struct {
	Cart   *models.Cart       `json:"cart"`
	Totals pricing.CartTotals `json:"totals"`
}

// GetCart handles GET /v1/cart
func (h *CartHandler) GetCart(c *gin.Context) {
	cart, totals, err := h.cartService.GetCart(c.Request.Context(), h.session(c))
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to load cart")
		return
	}
	utils.Success(c, 200, "Cart retrieved", cartResponse{Cart: cart, Totals: totals})
}

// AddItemRequest adds a product to the cart.
type AddItemRequest struct {
	ProductID     string                        `json:"productId" binding:"required"`
	SelectedSize  string                        `json:"selectedSize"`
	Quantity      int                           `json:"quantity"`
	Customization *service.CustomizationRequest `json:"customization"`
}

// AddItem handles POST /v1/cart/items
func (h *CartHandler) AddItem(c *gin.Context) {
	var req AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}
	if req.Quantity == 0 {
		req.Quantity = 1
	}

	sessionID := h.session(c)
	cart, err := h.cartService.AddItem(c.Request.Context(), sessionID, req.ProductID, req.SelectedSize, req.Quantity, req.Customization)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrProductNotFound):
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		case errors.Is(err, models.ErrInvalidQuantity):
			utils.Error(c, 400, "INVALID_QUANTITY", err.Error())
		case errors.Is(err, models.ErrCurrencyMismatch):
			utils.Error(c, 400, "CURRENCY_MISMATCH", err.Error())
		case errors.Is(err, models.ErrProductNotAvailable):
			utils.Error(c, 400, "OUT_OF_STOCK", err.Error())
		default:
			utils.Error(c, 400, "INVALID_REQUEST", err.Error())
		}
		return
	}
	utils.Success(c, 200, "Item added", cartResponse{Cart: cart, Totals: pricing.CalculateCartTotals(cart)})
}

// RemoveItemRequest identifies a line by its full composite key. Size and
// customization are part of the identity: two lines can share a product and
// differ only in those.
type RemoveItemRequest struct {
	ProductID     string                `json:"productId" binding:"required"`
	SelectedSize  string                `json:"selectedSize"`
	Customization *models.Customization `json:"customization"`
}

// RemoveItem handles DELETE /v1/cart/items
func (h *CartHandler) RemoveItem(c *gin.Context) {
	var req RemoveItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	cart, err := h.cartService.RemoveItem(c.Request.Context(), h.session(c), req.ProductID, req.SelectedSize, req.Customization)
	if err != nil {
		if errors.Is(err, models.ErrCartItemNotFound) {
			utils.Error(c, 404, "CART_ITEM_NOT_FOUND", "Cart item not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to remove item")
		return
	}
	utils.Success(c, 200, "Item removed", cartResponse{Cart: cart, Totals: pricing.CalculateCartTotals(cart)})
}

// ClearCart handles DELETE /v1/cart
func (h *CartHandler) ClearCart(c *gin.Context) {
	if err := h.cartService.ClearCart(c.Request.Context(), h.session(c)); err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to clear cart")
		return
	}
	utils.Success(c, 200, "Cart cleared", nil)
}
