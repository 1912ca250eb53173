package service

import (
	"context"
	"strconv"

	"github.com/rs/zerolog/log"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/pkg/mercadopago"
)

// PaymentFetcher fetches payments from the gateway by id.
type PaymentFetcher interface {
	GetPayment(ctx context.Context, paymentID string) (*mercadopago.Payment, error)
}

// OrderStatusStore is the order surface needed to apply status transitions.
type OrderStatusStore interface {
	GetByExternalReference(ref string) (*models.Order, error)
	UpdateStatus(ref string, status models.OrderStatus, statusDetail string) error
}

// PaymentNotificationService applies gateway payment updates to orders. The
// same transition may arrive several times (webhook redelivery, manual
// reconciliation); updates key on the external reference and re-applying an
// unchanged status is a no-op.
type PaymentNotificationService struct {
	orders  OrderStatusStore
	gateway PaymentFetcher
}

// NewPaymentNotificationService constructs a PaymentNotificationService.
func NewPaymentNotificationService(orders OrderStatusStore, gateway PaymentFetcher) *PaymentNotificationService {
	return &PaymentNotificationService{orders: orders, gateway: gateway}
}

// ProcessNotification handles a webhook notification: it fetches the payment
// by id and folds its status into the matching order. Notifications for
// unknown orders are logged and dropped, not failed, so the gateway stops
// redelivering them.
func (s *PaymentNotificationService) ProcessNotification(ctx context.Context, n *mercadopago.WebhookNotification) error {
	if n.Type != "payment" || n.Data.ID == "" {
		log.Debug().Str("type", n.Type).Msg("ignoring non-payment notification")
		return nil
	}

	payment, err := s.gateway.GetPayment(ctx, n.Data.ID)
	if err != nil {
		return err
	}
	if payment.ExternalReference == "" {
		log.Warn().Int64("payment_id", payment.ID).Msg("payment has no external reference")
		return nil
	}

	return s.apply(payment)
}

// ReconcilePayment re-queries a payment by id and applies its status. Used
// by the reconciliation worker for orders stuck without a terminal status.
func (s *PaymentNotificationService) ReconcilePayment(ctx context.Context, order *models.Order) error {
	if order.PaymentID == nil {
		return nil
	}
	payment, err := s.gateway.GetPayment(ctx, strconv.FormatInt(*order.PaymentID, 10))
	if err != nil {
		return err
	}
	if payment.ExternalReference == "" {
		payment.ExternalReference = order.ExternalReference
	}
	return s.apply(payment)
}

func (s *PaymentNotificationService) apply(payment *mercadopago.Payment) error {
	order, err := s.orders.GetByExternalReference(payment.ExternalReference)
	if err != nil {
		log.Warn().
			Str("external_reference", payment.ExternalReference).
			Int64("payment_id", payment.ID).
			Msg("payment notification for unknown order")
		return nil
	}

	status := models.OrderStatus(payment.Status)
	if order.Status == status {
		return nil
	}
	if err := s.orders.UpdateStatus(order.ExternalReference, status, payment.StatusDetail); err != nil {
		return err
	}

	log.Info().
		Str("external_reference", order.ExternalReference).
		Str("from", string(order.Status)).
		Str("to", payment.Status).
		Msg("order status updated from payment")
	return nil
}
