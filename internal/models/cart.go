package models

import (
	"errors"
	"time"
)

// Cart validation errors.
var (
	ErrInvalidQuantity     = errors.New("quantity must be at least 1")
	ErrCurrencyMismatch    = errors.New("cart already holds items in a different currency")
	ErrCartItemNotFound    = errors.New("cart item not found")
	ErrProductNotAvailable = errors.New("product is out of stock")
)

// Customization is the stamp configuration snapshotted into a cart line at
// add time. Later edits to the pricing tables never change it.
type Customization struct {
	PrintSizeID    string    `json:"printSizeId"`
	PrintPlacement Placement `json:"printPlacement,omitempty"`
	ColorName      string    `json:"colorName,omitempty"`
	ColorHex       string    `json:"colorHex,omitempty"`
	ExtraCost      int       `json:"extraCost"`
}

// Equal compares two customization snapshots field by field. Two nil
// customizations are equal; nil never equals non-nil.
func (c *Customization) Equal(other *Customization) bool {
	if c == nil || other == nil {
		return c == other
	}
	return c.PrintSizeID == other.PrintSizeID &&
		c.PrintPlacement == other.PrintPlacement &&
		c.ColorName == other.ColorName &&
		c.ColorHex == other.ColorHex &&
		c.ExtraCost == other.ExtraCost
}

// CartItem is one cart line. Price and currency are a snapshot of the product
// at the moment it was added, decoupled from later catalog edits.
//
// Line identity is the composite key (ProductID, SelectedSize, Customization);
// Customization is compared by deep equality.
type CartItem struct {
	ProductID     string         `json:"productId"`
	Name          string         `json:"name"`
	Price         int            `json:"price"`
	Currency      Currency       `json:"currency"`
	Quantity      int            `json:"quantity"`
	ImageURL      string         `json:"imageUrl,omitempty"`
	SelectedSize  string         `json:"selectedSize,omitempty"`
	Customization *Customization `json:"customization,omitempty"`
}

// Matches reports whether the line is identified by the given composite key.
func (i *CartItem) Matches(productID, selectedSize string, customization *Customization) bool {
	return i.ProductID == productID &&
		i.SelectedSize == selectedSize &&
		i.Customization.Equal(customization)
}

// Cart is a per-session collection of line items. It is a plain value: all
// mutation happens through its methods and persistence is handled by the
// owning store.
type Cart struct {
	SessionID string     `json:"sessionId"`
	Items     []CartItem `json:"items"`
	UpdatedAt time.Time  `json:"updatedAt"`
}

// AddItem merges the addition into an existing line sharing the same
// composite key, or appends a new line with a price snapshot taken from the
// product. Adding an item whose currency differs from the cart's is rejected
// so totals stay meaningful.
func (c *Cart) AddItem(product *Product, selectedSize string, quantity int, customization *Customization) error {
	if quantity < 1 {
		return ErrInvalidQuantity
	}
	if !product.InStock {
		return ErrProductNotAvailable
	}
	for _, it := range c.Items {
		if it.Currency != product.Currency {
			return ErrCurrencyMismatch
		}
	}

	for idx := range c.Items {
		if c.Items[idx].Matches(product.ID, selectedSize, customization) {
			c.Items[idx].Quantity += quantity
			c.UpdatedAt = time.Now()
			return nil
		}
	}

	c.Items = append(c.Items, CartItem{
		ProductID:     product.ID,
		Name:          product.Name,
		Price:         product.Price,
		Currency:      product.Currency,
		Quantity:      quantity,
		ImageURL:      product.ImageURL,
		SelectedSize:  selectedSize,
		Customization: customization,
	})
	c.UpdatedAt = time.Now()
	return nil
}

// RemoveItem removes the line identified by the full composite key. Removal
// by product id alone would be ambiguous when two lines share a product but
// differ by size or customization, so the full key is required.
func (c *Cart) RemoveItem(productID, selectedSize string, customization *Customization) error {
	for idx := range c.Items {
		if c.Items[idx].Matches(productID, selectedSize, customization) {
			c.Items = append(c.Items[:idx], c.Items[idx+1:]...)
			c.UpdatedAt = time.Now()
			return nil
		}
	}
	return ErrCartItemNotFound
}

// Clear empties the cart.
func (c *Cart) Clear() {
	c.Items = nil
	c.UpdatedAt = time.Now()
}

// ItemCount returns the total quantity across all lines.
func (c *Cart) ItemCount() int {
	n := 0
	for _, it := range c.Items {
		n += it.Quantity
	}
	return n
}

// Currency returns the currency shared by the cart's items, or empty for an
// empty cart.
func (c *Cart) Currency() Currency {
	if len(c.Items) == 0 {
		return ""
	}
	return c.Items[0].Currency
}
