package handler

import (
	"encoding/json"
	"io"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog/log"

	"github.com/estampaviva/estampa-api/internal/service"
	"github.com/estampaviva/estampa-api/pkg/mercadopago"
)

// WebhookHandler handles incoming payment notifications from Mercado Pago.
type WebhookHandler struct {
	notifications *service.PaymentNotificationService
}

// NewWebhookHandler constructs a WebhookHandler.
func NewWebhookHandler(notifications *service.PaymentNotificationService) *WebhookHandler {
	return &WebhookHandler{notifications: notifications}
}

// HandleMercadoPagoWebhook handles POST /webhook/mercadopago
func (h *WebhookHandler) HandleMercadoPagoWebhook(c *gin.Context) {
	body, err := io.ReadAll(c.Request.Body)
	if err != nil {
		c.JSON(400, gin.H{"error": "Invalid body"})
		return
	}

	var notification mercadopago.WebhookNotification
	if err := json.Unmarshal(body, &notification); err != nil {
		c.JSON(400, gin.H{"error": "Invalid JSON"})
		return
	}

	if err := h.notifications.ProcessNotification(c.Request.Context(), &notification); err != nil {
		log.Error().Err(err).Msg("Failed to process Mercado Pago notification")
		c.JSON(500, gin.H{"error": "Processing failed"})
		return
	}

	c.JSON(200, gin.H{"received": true})
}
