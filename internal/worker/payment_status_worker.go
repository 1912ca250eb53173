package worker

import (
	"context"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/internal/repository"
	"github.com/estampaviva/estampa-api/internal/service"
)

// batchSize bounds how many stale orders one reconciliation pass touches.
const batchSize = 50

// PaymentStatusWorker periodically re-queries the gateway for orders stuck
// without a terminal status. Webhooks normally settle orders; this loop
// covers lost deliveries.
type PaymentStatusWorker struct {
	orders        *repository.OrderRepository
	notifications *service.PaymentNotificationService
	interval      time.Duration
	staleAfter    time.Duration
	maxAge        time.Duration
}

// NewPaymentStatusWorker constructs a PaymentStatusWorker.
func NewPaymentStatusWorker(orders *repository.OrderRepository, notifications *service.PaymentNotificationService, interval, staleAfter, maxAge time.Duration) *PaymentStatusWorker {
	return &PaymentStatusWorker{
		orders:        orders,
		notifications: notifications,
		interval:      interval,
		staleAfter:    staleAfter,
		maxAge:        maxAge,
	}
}

// Start begins the reconciliation loop and listens for context cancellation.
func (w *PaymentStatusWorker) Start(ctx context.Context) {
	log.Info().Dur("interval", w.interval).Msg("Starting payment status worker")

	ticker := time.NewTicker(w.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ticker.C:
			w.run(ctx)
		case <-ctx.Done():
			log.Info().Msg("Payment status worker stopped")
			return
		}
	}
}

func (w *PaymentStatusWorker) run(ctx context.Context) {
	orders, err := w.orders.GetStaleInProcess(w.staleAfter, w.maxAge, batchSize)
	if err != nil {
		log.Error().Err(err).Msg("Failed to list stale orders")
		return
	}

	for _, order := range orders {
		order := order
		if err := w.notifications.ReconcilePayment(ctx, &order); err != nil {
			log.Error().Err(err).
				Str("external_reference", order.ExternalReference).
				Msg("Failed to reconcile payment status")
		}
		if order.Status == models.OrderStatusPending {
			log.Debug().Str("external_reference", order.ExternalReference).Msg("order still pending after reconcile")
		}
	}
}
