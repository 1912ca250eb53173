package service

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/internal/pricing"
	"github.com/estampaviva/estampa-api/internal/utils"
)

// CartStorage persists per-session carts.
type CartStorage interface {
	Get(ctx context.Context, sessionID string) (*models.Cart, error)
	Save(ctx context.Context, cart *models.Cart) error
	Delete(ctx context.Context, sessionID string) error
}

// ProductGetter is the catalog surface the cart service needs.
type ProductGetter interface {
	GetByID(id string) (*models.Product, error)
}

// StampOptionSource supplies the stamp options currently in effect.
type StampOptionSource interface {
	CurrentStampOptions() []models.StampOption
}

// CartService orchestrates per-session carts: it loads the cart from the
// store, applies aggregate operations, and writes it back. All pricing data
// on a line is snapshotted at add time; later catalog or pricing edits never
// change lines already in a cart.
type CartService struct {
	carts    CartStorage
	products ProductGetter
	options  StampOptionSource
}

// NewCartService constructs a CartService.
func NewCartService(carts CartStorage, products ProductGetter, options StampOptionSource) *CartService {
	return &CartService{carts: carts, products: products, options: options}
}

// CustomizationRequest is the client's stamp selection. The extra cost is
// resolved server-side from the pricing tables, never trusted from the
// client.
type CustomizationRequest struct {
	Placement models.Placement `json:"placement"`
	Size      models.SizeBand  `json:"size"`
	ColorName string           `json:"colorName"`
	ColorHex  string           `json:"colorHex"`
}

// AddItem adds a product to the session cart, merging into an existing line
// when the composite identity (product, size, customization) matches.
func (s *CartService) AddItem(ctx context.Context, sessionID, productID, selectedSize string, quantity int, custom *CustomizationRequest) (*models.Cart, error) {
	product, err := s.products.GetByID(productID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}

	if selectedSize != "" && !contains(product.AvailableSizes, selectedSize) {
		return nil, fmt.Errorf("size %q not available for product %s", selectedSize, productID)
	}

	snapshot, err := s.buildCustomization(product, custom)
	if err != nil {
		return nil, err
	}

	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := cart.AddItem(product, selectedSize, quantity, snapshot); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// buildCustomization resolves the stamp selection into a priced snapshot. A
// nil request means no customization. An unknown placement/size pair also
// resolves to no customization rather than an error, matching the resolver's
// contract.
func (s *CartService) buildCustomization(product *models.Product, custom *CustomizationRequest) (*models.Customization, error) {
	if custom == nil {
		return nil, nil
	}
	if product.Customizable == nil {
		return nil, fmt.Errorf("product %s is not customizable", product.ID)
	}
	if custom.ColorName != "" && !hasColor(product.Customizable.Colors, custom.ColorName) {
		return nil, fmt.Errorf("color %q not available for product %s", custom.ColorName, product.ID)
	}

	opt, ok := pricing.Resolve(s.options.CurrentStampOptions(), custom.Placement, custom.Size)
	if !ok {
		return nil, nil
	}
	return &models.Customization{
		PrintSizeID:    opt.ID,
		PrintPlacement: opt.Placement,
		ColorName:      custom.ColorName,
		ColorHex:       custom.ColorHex,
		ExtraCost:      opt.ExtraCost,
	}, nil
}

// RemoveItem removes the line identified by the full composite key.
func (s *CartService) RemoveItem(ctx context.Context, sessionID, productID, selectedSize string, customization *models.Customization) (*models.Cart, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, err
	}
	if err := cart.RemoveItem(productID, selectedSize, customization); err != nil {
		return nil, err
	}
	if err := s.carts.Save(ctx, cart); err != nil {
		return nil, err
	}
	return cart, nil
}

// ClearCart empties the session cart.
func (s *CartService) ClearCart(ctx context.Context, sessionID string) error {
	return s.carts.Delete(ctx, sessionID)
}

// GetCart returns the session cart with computed totals.
func (s *CartService) GetCart(ctx context.Context, sessionID string) (*models.Cart, pricing.CartTotals, error) {
	cart, err := s.carts.Get(ctx, sessionID)
	if err != nil {
		return nil, pricing.CartTotals{}, err
	}
	return cart, pricing.CalculateCartTotals(cart), nil
}

func contains(list []string, v string) bool {
	for _, s := range list {
		if s == v {
			return true
		}
	}
	return false
}

func hasColor(colors []models.ColorOption, name string) bool {
	for _, c := range colors {
		if c.Name == name {
			return true
		}
	}
	return false
}
