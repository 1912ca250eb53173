package service

import (
	"context"
	"testing"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/pkg/mercadopago"
)

func TestProcessNotificationAppliesStatus(t *testing.T) {
	orders := newMemoryOrderStore()
	orders.orders["ref-1"] = &models.Order{
		ExternalReference: "ref-1",
		Status:            models.OrderStatusInProcess,
	}
	gateway := &fakeGateway{payments: map[string]*mercadopago.Payment{
		"99": {ID: 99, Status: mercadopago.StatusApproved, ExternalReference: "ref-1"},
	}}
	svc := NewPaymentNotificationService(orders, gateway)

	notification := &mercadopago.WebhookNotification{Type: "payment"}
	notification.Data.ID = "99"

	if err := svc.ProcessNotification(context.Background(), notification); err != nil {
		t.Fatal(err)
	}
	if orders.orders["ref-1"].Status != models.OrderStatusApproved {
		t.Errorf("status %q, want approved", orders.orders["ref-1"].Status)
	}
}

func TestProcessNotificationRedeliveryIsANoOp(t *testing.T) {
	orders := newMemoryOrderStore()
	orders.orders["ref-1"] = &models.Order{
		ExternalReference: "ref-1",
		Status:            models.OrderStatusInProcess,
	}
	gateway := &fakeGateway{payments: map[string]*mercadopago.Payment{
		"99": {ID: 99, Status: mercadopago.StatusApproved, ExternalReference: "ref-1"},
	}}
	svc := NewPaymentNotificationService(orders, gateway)

	notification := &mercadopago.WebhookNotification{Type: "payment"}
	notification.Data.ID = "99"

	for i := 0; i < 3; i++ {
		if err := svc.ProcessNotification(context.Background(), notification); err != nil {
			t.Fatal(err)
		}
	}
	if orders.updates != 1 {
		t.Errorf("redelivered notification applied %d updates, want 1", orders.updates)
	}
}

func TestProcessNotificationIgnoresNonPayment(t *testing.T) {
	orders := newMemoryOrderStore()
	svc := NewPaymentNotificationService(orders, &fakeGateway{})

	if err := svc.ProcessNotification(context.Background(), &mercadopago.WebhookNotification{Type: "plan"}); err != nil {
		t.Fatal(err)
	}
	if orders.updates != 0 {
		t.Error("non-payment notification must not touch orders")
	}
}

func TestProcessNotificationUnknownOrderIsDropped(t *testing.T) {
	orders := newMemoryOrderStore()
	gateway := &fakeGateway{payments: map[string]*mercadopago.Payment{
		"99": {ID: 99, Status: mercadopago.StatusApproved, ExternalReference: "no-such-order"},
	}}
	svc := NewPaymentNotificationService(orders, gateway)

	notification := &mercadopago.WebhookNotification{Type: "payment"}
	notification.Data.ID = "99"

	// Returning an error would make the gateway redeliver forever.
	if err := svc.ProcessNotification(context.Background(), notification); err != nil {
		t.Errorf("unknown order must be dropped, got %v", err)
	}
}

func TestReconcilePayment(t *testing.T) {
	paymentID := int64(42)
	orders := newMemoryOrderStore()
	orders.orders["ref-2"] = &models.Order{
		ExternalReference: "ref-2",
		Status:            models.OrderStatusInProcess,
		PaymentID:         &paymentID,
	}
	gateway := &fakeGateway{payments: map[string]*mercadopago.Payment{
		"42": {ID: 42, Status: mercadopago.StatusRejected, ExternalReference: "ref-2"},
	}}
	svc := NewPaymentNotificationService(orders, gateway)

	if err := svc.ReconcilePayment(context.Background(), orders.orders["ref-2"]); err != nil {
		t.Fatal(err)
	}
	if orders.orders["ref-2"].Status != models.OrderStatusRejected {
		t.Errorf("status %q, want rejected", orders.orders["ref-2"].Status)
	}

	// An order that never got a payment id has nothing to reconcile.
	if err := svc.ReconcilePayment(context.Background(), &models.Order{ExternalReference: "ref-3"}); err != nil {
		t.Errorf("payment-less order: got %v", err)
	}
}
