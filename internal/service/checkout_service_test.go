package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/internal/utils"
	"github.com/estampaviva/estampa-api/pkg/mercadopago"
)

type memoryOrderStore struct {
	orders  map[string]*models.Order
	updates int
}

func newMemoryOrderStore() *memoryOrderStore {
	return &memoryOrderStore{orders: map[string]*models.Order{}}
}

func (m *memoryOrderStore) Create(order *models.Order) error {
	m.orders[order.ExternalReference] = order
	return nil
}

func (m *memoryOrderStore) SetPayment(ref string, paymentID int64, status models.OrderStatus, statusDetail string) error {
	order, ok := m.orders[ref]
	if !ok {
		return sql.ErrNoRows
	}
	order.PaymentID = &paymentID
	order.Status = status
	order.StatusDetail = statusDetail
	return nil
}

func (m *memoryOrderStore) GetByExternalReference(ref string) (*models.Order, error) {
	if order, ok := m.orders[ref]; ok {
		return order, nil
	}
	return nil, sql.ErrNoRows
}

func (m *memoryOrderStore) UpdateStatus(ref string, status models.OrderStatus, statusDetail string) error {
	order, ok := m.orders[ref]
	if !ok {
		return sql.ErrNoRows
	}
	m.updates++
	order.Status = status
	order.StatusDetail = statusDetail
	return nil
}

type fakeGateway struct {
	lastRequest *mercadopago.PaymentRequest
	payment     *mercadopago.Payment
	err         error
	payments    map[string]*mercadopago.Payment
}

func (f *fakeGateway) CreatePayment(_ context.Context, req *mercadopago.PaymentRequest) (*mercadopago.Payment, error) {
	f.lastRequest = req
	if f.err != nil {
		return nil, f.err
	}
	p := *f.payment
	p.ExternalReference = req.ExternalReference
	return &p, nil
}

func (f *fakeGateway) GetPayment(_ context.Context, id string) (*mercadopago.Payment, error) {
	if p, ok := f.payments[id]; ok {
		return p, nil
	}
	return nil, errors.New("PAYMENT_NOT_FOUND")
}

func TestCheckoutChargesComputedSubtotal(t *testing.T) {
	cartSvc, cartStore := testCartService()
	ctx := context.Background()

	if _, err := cartSvc.AddItem(ctx, "s1", "remera-basica", "M", 2, &CustomizationRequest{
		Placement: models.PlacementFront,
		Size:      models.SizeHasta20x30,
	}); err != nil {
		t.Fatal(err)
	}

	orders := newMemoryOrderStore()
	gateway := &fakeGateway{payment: &mercadopago.Payment{
		ID:     4242,
		Status: mercadopago.StatusApproved,
	}}
	svc := NewCheckoutService(orders, gateway, cartSvc)

	result, err := svc.Checkout(ctx, "s1", &CheckoutRequest{
		CardToken:  "tok_123",
		PayerEmail: "cliente@example.com",
	})
	if err != nil {
		t.Fatal(err)
	}

	// 2 × (8000 + 500)
	if gateway.lastRequest.TransactionAmount != 17000 {
		t.Errorf("charged %v, want 17000", gateway.lastRequest.TransactionAmount)
	}
	if gateway.lastRequest.ExternalReference == "" {
		t.Error("charge must carry the order's external reference")
	}
	if result.Status != mercadopago.StatusApproved {
		t.Errorf("status %q, want approved", result.Status)
	}
	if result.Order.PaymentID == nil || *result.Order.PaymentID != 4242 {
		t.Error("order not linked to the gateway payment")
	}
	if len(result.Order.Items) != 1 {
		t.Errorf("order snapshot has %d lines, want 1", len(result.Order.Items))
	}
	if _, ok := cartStore.carts["s1"]; ok {
		t.Error("cart must be cleared after an approved charge")
	}
}

func TestCheckoutEmptyCart(t *testing.T) {
	cartSvc, _ := testCartService()
	svc := NewCheckoutService(newMemoryOrderStore(), &fakeGateway{}, cartSvc)

	_, err := svc.Checkout(context.Background(), "s1", &CheckoutRequest{CardToken: "tok", PayerEmail: "a@b.com"})
	if !errors.Is(err, utils.ErrEmptyCart) {
		t.Errorf("expected ErrEmptyCart, got %v", err)
	}
}

func TestCheckoutGatewayFailureMarksOrderRejected(t *testing.T) {
	cartSvc, cartStore := testCartService()
	ctx := context.Background()

	if _, err := cartSvc.AddItem(ctx, "s1", "gorra-lisa", "Único", 1, nil); err != nil {
		t.Fatal(err)
	}

	orders := newMemoryOrderStore()
	gateway := &fakeGateway{err: errors.New("cc_rejected_high_risk")}
	svc := NewCheckoutService(orders, gateway, cartSvc)

	_, err := svc.Checkout(ctx, "s1", &CheckoutRequest{CardToken: "tok", PayerEmail: "a@b.com"})
	if !errors.Is(err, utils.ErrPaymentFailed) {
		t.Fatalf("expected ErrPaymentFailed, got %v", err)
	}

	if len(orders.orders) != 1 {
		t.Fatalf("expected the pending order to be persisted, got %d", len(orders.orders))
	}
	for _, order := range orders.orders {
		if order.Status != models.OrderStatusRejected {
			t.Errorf("order status %q, want rejected", order.Status)
		}
	}
	if _, ok := cartStore.carts["s1"]; !ok {
		t.Error("cart must survive a failed charge")
	}
}

func TestCheckoutInProcessClearsCart(t *testing.T) {
	cartSvc, cartStore := testCartService()
	ctx := context.Background()

	if _, err := cartSvc.AddItem(ctx, "s1", "gorra-lisa", "Único", 1, nil); err != nil {
		t.Fatal(err)
	}

	gateway := &fakeGateway{payment: &mercadopago.Payment{ID: 7, Status: mercadopago.StatusInProcess}}
	svc := NewCheckoutService(newMemoryOrderStore(), gateway, cartSvc)

	if _, err := svc.Checkout(ctx, "s1", &CheckoutRequest{CardToken: "tok", PayerEmail: "a@b.com"}); err != nil {
		t.Fatal(err)
	}
	if _, ok := cartStore.carts["s1"]; ok {
		t.Error("cart must be cleared when the charge is left in process")
	}
}

func TestGetOrder(t *testing.T) {
	orders := newMemoryOrderStore()
	orders.orders["ref-1"] = &models.Order{ExternalReference: "ref-1", Status: models.OrderStatusApproved}
	svc := NewCheckoutService(orders, &fakeGateway{}, nil)

	order, err := svc.GetOrder("ref-1")
	if err != nil {
		t.Fatal(err)
	}
	if order.ExternalReference != "ref-1" {
		t.Errorf("got %q", order.ExternalReference)
	}

	if _, err := svc.GetOrder("missing"); !errors.Is(err, utils.ErrOrderNotFound) {
		t.Errorf("expected ErrOrderNotFound, got %v", err)
	}
}
