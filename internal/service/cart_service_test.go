package service

import (
	"context"
	"database/sql"
	"errors"
	"testing"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/internal/pricing"
	"github.com/estampaviva/estampa-api/internal/utils"
)

type memoryCartStorage struct {
	carts map[string]*models.Cart
}

func newMemoryCartStorage() *memoryCartStorage {
	return &memoryCartStorage{carts: map[string]*models.Cart{}}
}

func (m *memoryCartStorage) Get(_ context.Context, sessionID string) (*models.Cart, error) {
	if c, ok := m.carts[sessionID]; ok {
		return c, nil
	}
	return &models.Cart{SessionID: sessionID}, nil
}

func (m *memoryCartStorage) Save(_ context.Context, cart *models.Cart) error {
	m.carts[cart.SessionID] = cart
	return nil
}

func (m *memoryCartStorage) Delete(_ context.Context, sessionID string) error {
	delete(m.carts, sessionID)
	return nil
}

type fakeCatalog struct {
	products map[string]*models.Product
}

func (f *fakeCatalog) GetByID(id string) (*models.Product, error) {
	if p, ok := f.products[id]; ok {
		return p, nil
	}
	return nil, sql.ErrNoRows
}

type fallbackOptionSource struct{}

func (fallbackOptionSource) CurrentStampOptions() []models.StampOption {
	return pricing.FallbackStampOptions()
}

func testCartService() (*CartService, *memoryCartStorage) {
	store := newMemoryCartStorage()
	catalog := &fakeCatalog{products: map[string]*models.Product{
		"remera-basica": {
			ID:             "remera-basica",
			Name:           "Remera Básica",
			Price:          8000,
			Currency:       models.CurrencyARS,
			AvailableSizes: models.SizeList{"S", "M", "L"},
			InStock:        true,
			Customizable: &models.Customizable{
				Colors: []models.ColorOption{{Name: "Negro", Hex: "#000000"}},
			},
		},
		"gorra-lisa": {
			ID:             "gorra-lisa",
			Name:           "Gorra Lisa",
			Price:          5000,
			Currency:       models.CurrencyARS,
			AvailableSizes: models.SizeList{"Único"},
			InStock:        true,
		},
	}}
	return NewCartService(store, catalog, fallbackOptionSource{}), store
}

func TestAddItemResolvesExtraCostServerSide(t *testing.T) {
	svc, _ := testCartService()
	ctx := context.Background()

	cart, err := svc.AddItem(ctx, "s1", "remera-basica", "M", 1, &CustomizationRequest{
		Placement: models.PlacementFrontBack,
		Size:      models.SizeHasta30x40,
		ColorName: "Negro",
		ColorHex:  "#000000",
	})
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(cart.Items))
	}
	item := cart.Items[0]
	if item.Customization == nil {
		t.Fatal("expected a customization snapshot")
	}
	if item.Customization.ExtraCost != 2000 {
		t.Errorf("extra cost %d, want 2000 from the pricing table", item.Customization.ExtraCost)
	}
	if item.Customization.ColorName != "Negro" {
		t.Errorf("color %q, want Negro", item.Customization.ColorName)
	}

	totals := pricing.CalculateCartTotals(cart)
	if totals.Subtotal != 10000 {
		t.Errorf("subtotal %d, want 10000", totals.Subtotal)
	}
}

func TestAddItemUnknownStampSelectionMeansNoCustomization(t *testing.T) {
	svc, _ := testCartService()

	cart, err := svc.AddItem(context.Background(), "s1", "remera-basica", "M", 1, &CustomizationRequest{
		Placement: models.Placement("sleeve"),
		Size:      models.SizeHasta15,
	})
	if err != nil {
		t.Fatal(err)
	}
	if cart.Items[0].Customization != nil {
		t.Error("unresolvable selection must fall back to no customization")
	}
}

func TestAddItemValidation(t *testing.T) {
	svc, _ := testCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "no-such-product", "M", 1, nil); !errors.Is(err, utils.ErrProductNotFound) {
		t.Errorf("unknown product: got %v", err)
	}
	if _, err := svc.AddItem(ctx, "s1", "remera-basica", "XXXL", 1, nil); err == nil {
		t.Error("unavailable size must be rejected")
	}
	if _, err := svc.AddItem(ctx, "s1", "remera-basica", "M", 1, &CustomizationRequest{
		Placement: models.PlacementFront,
		Size:      models.SizeHasta15,
		ColorName: "Fucsia",
	}); err == nil {
		t.Error("unavailable color must be rejected")
	}
	if _, err := svc.AddItem(ctx, "s1", "gorra-lisa", "Único", 1, &CustomizationRequest{
		Placement: models.PlacementFront,
		Size:      models.SizeHasta15,
	}); err == nil {
		t.Error("customizing a non-customizable product must be rejected")
	}
}

func TestAddItemMergesAcrossRequests(t *testing.T) {
	svc, store := testCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "gorra-lisa", "Único", 1, nil); err != nil {
		t.Fatal(err)
	}
	cart, err := svc.AddItem(ctx, "s1", "gorra-lisa", "Único", 2, nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Quantity != 3 {
		t.Fatalf("expected one merged line with quantity 3, got %+v", cart.Items)
	}

	saved := store.carts["s1"]
	if saved == nil || saved.ItemCount() != 3 {
		t.Error("merged cart was not persisted")
	}
}

func TestRemoveItemByFullCompositeKey(t *testing.T) {
	svc, _ := testCartService()
	ctx := context.Background()

	custom := &CustomizationRequest{Placement: models.PlacementFront, Size: models.SizeHasta20x30}
	if _, err := svc.AddItem(ctx, "s1", "remera-basica", "M", 1, custom); err != nil {
		t.Fatal(err)
	}
	if _, err := svc.AddItem(ctx, "s1", "remera-basica", "M", 1, nil); err != nil {
		t.Fatal(err)
	}

	// Removing the plain line must leave the customized one untouched.
	cart, err := svc.RemoveItem(ctx, "s1", "remera-basica", "M", nil)
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 1 || cart.Items[0].Customization == nil {
		t.Fatalf("wrong line removed: %+v", cart.Items)
	}

	if _, err := svc.RemoveItem(ctx, "s1", "remera-basica", "M", nil); !errors.Is(err, models.ErrCartItemNotFound) {
		t.Errorf("removing an absent line: got %v", err)
	}
}

func TestClearCart(t *testing.T) {
	svc, store := testCartService()
	ctx := context.Background()

	if _, err := svc.AddItem(ctx, "s1", "gorra-lisa", "Único", 2, nil); err != nil {
		t.Fatal(err)
	}
	if err := svc.ClearCart(ctx, "s1"); err != nil {
		t.Fatal(err)
	}
	if _, ok := store.carts["s1"]; ok {
		t.Error("cleared cart still persisted")
	}

	cart, totals, err := svc.GetCart(ctx, "s1")
	if err != nil {
		t.Fatal(err)
	}
	if len(cart.Items) != 0 || totals.Subtotal != 0 {
		t.Errorf("expected empty cart after clear, got %+v / %+v", cart.Items, totals)
	}
}
