package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/rs/zerolog/log"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/internal/pricing"
	"github.com/estampaviva/estampa-api/internal/utils"
	"github.com/estampaviva/estampa-api/pkg/mercadopago"
)

// PaymentGateway is the gateway surface the checkout flow depends on.
type PaymentGateway interface {
	CreatePayment(ctx context.Context, req *mercadopago.PaymentRequest) (*mercadopago.Payment, error)
}

// OrderStore is the order persistence surface used by checkout.
type OrderStore interface {
	Create(order *models.Order) error
	SetPayment(ref string, paymentID int64, status models.OrderStatus, statusDetail string) error
	GetByExternalReference(ref string) (*models.Order, error)
}

// CheckoutService turns a session cart into an order and a gateway charge.
type CheckoutService struct {
	orders  OrderStore
	gateway PaymentGateway
	carts   *CartService
}

// NewCheckoutService constructs a CheckoutService.
func NewCheckoutService(orders OrderStore, gateway PaymentGateway, carts *CartService) *CheckoutService {
	return &CheckoutService{orders: orders, gateway: gateway, carts: carts}
}

// CheckoutRequest carries the tokenized card and payer data for a charge.
type CheckoutRequest struct {
	CardToken       string `json:"cardToken" binding:"required"`
	PayerEmail      string `json:"payerEmail" binding:"required,email"`
	PaymentMethodID string `json:"paymentMethodId"`
	Installments    int    `json:"installments"`
}

// CheckoutResult is returned to the storefront after charge creation.
type CheckoutResult struct {
	Order   *models.Order `json:"order"`
	Status  string        `json:"status"`
	Detail  string        `json:"statusDetail,omitempty"`
	Message string        `json:"message,omitempty"`
}

// Checkout snapshots the cart into an order, charges the gateway with the
// computed subtotal and a freshly minted external reference, and clears the
// cart once the charge is accepted or left in process. The order keeps the
// cart snapshot, so later pricing edits never change what was charged.
func (s *CheckoutService) Checkout(ctx context.Context, sessionID string, req *CheckoutRequest) (*CheckoutResult, error) {
	cart, totals, err := s.carts.GetCart(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if len(cart.Items) == 0 {
		return nil, utils.ErrEmptyCart
	}

	order := &models.Order{
		ExternalReference: uuid.New().String(),
		Status:            models.OrderStatusPending,
		Subtotal:          totals.Subtotal,
		Currency:          totals.Currency,
		PayerEmail:        req.PayerEmail,
		Items:             models.OrderItems(cart.Items),
	}
	if err := s.orders.Create(order); err != nil {
		return nil, fmt.Errorf("failed to create order: %w", err)
	}

	payment, err := s.gateway.CreatePayment(ctx, &mercadopago.PaymentRequest{
		TransactionAmount: float64(totals.Subtotal),
		Token:             req.CardToken,
		Description:       fmt.Sprintf("Pedido %s", order.ExternalReference),
		Installments:      req.Installments,
		PaymentMethodID:   req.PaymentMethodID,
		Payer:             mercadopago.Payer{Email: req.PayerEmail},
		ExternalReference: order.ExternalReference,
	})
	if err != nil {
		log.Error().Err(err).Str("external_reference", order.ExternalReference).Msg("payment creation failed")
		_ = s.orders.SetPayment(order.ExternalReference, 0, models.OrderStatusRejected, "gateway_error")
		return nil, fmt.Errorf("%w: %v", utils.ErrPaymentFailed, err)
	}

	status := models.OrderStatus(payment.Status)
	if err := s.orders.SetPayment(order.ExternalReference, payment.ID, status, payment.StatusDetail); err != nil {
		return nil, err
	}
	order.PaymentID = &payment.ID
	order.Status = status
	order.StatusDetail = payment.StatusDetail

	if status == models.OrderStatusApproved || status == models.OrderStatusInProcess {
		if err := s.carts.ClearCart(ctx, sessionID); err != nil {
			// Cart cleanup is best-effort; the order already owns the snapshot.
			log.Warn().Err(err).Str("session_id", sessionID).Msg("failed to clear cart after checkout")
		}
	}

	log.Info().
		Str("external_reference", order.ExternalReference).
		Int64("payment_id", payment.ID).
		Str("status", payment.Status).
		Int("subtotal", totals.Subtotal).
		Msg("checkout completed")

	return &CheckoutResult{Order: order, Status: payment.Status, Detail: payment.StatusDetail}, nil
}

// GetOrder returns an order by its external reference.
func (s *CheckoutService) GetOrder(ref string) (*models.Order, error) {
	order, err := s.orders.GetByExternalReference(ref)
	if err != nil {
		return nil, utils.ErrOrderNotFound
	}
	return order, nil
}

// Totals re-exposes the pure calculator for callers that only need numbers.
func (s *CheckoutService) Totals(cart *models.Cart) pricing.CartTotals {
	return pricing.CalculateCartTotals(cart)
}
