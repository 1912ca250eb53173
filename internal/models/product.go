package models

import (
	"database/sql/driver"
	"encoding/json"
	"errors"
	"time"
)

// ColorOption is a selectable garment color for customizable products.
type ColorOption struct {
	Name string `json:"name"`
	Hex  string `json:"hex"`
}

// Customizable describes the customization offered by a product: the garment
// colors available for stamping. Products without this block are sold as-is.
// Invariant: when present, Colors must be non-empty.
type Customizable struct {
	Colors []ColorOption `json:"colors"`
}

// Product represents a sellable garment in the catalog.
// Price is an integer amount in the store's base currency unit.
type Product struct {
	ID             string        `db:"id" json:"id"`
	Name           string        `db:"name" json:"name"`
	Categoria      string        `db:"categoria" json:"categoria"`
	Description    string        `db:"description" json:"description"`
	Price          int           `db:"price" json:"price"`
	Currency       Currency      `db:"currency" json:"currency"`
	AvailableSizes SizeList      `db:"available_sizes" json:"availableSizes"`
	ImageURL       string        `db:"image_url" json:"imageUrl"`
	InStock        bool          `db:"in_stock" json:"inStock"`
	Customizable   *Customizable `db:"customizable" json:"customizable,omitempty"`
	CreatedAt      time.Time     `db:"created_at" json:"-"`
	UpdatedAt      time.Time     `db:"updated_at" json:"updatedAt"`
}

// GarmentSizes is the ordered set of size tokens a product may offer.
var GarmentSizes = []string{"XS", "S", "M", "L", "XL", "XXL", "Único"}

// ValidGarmentSize reports whether s is a known size token.
func ValidGarmentSize(s string) bool {
	for _, v := range GarmentSizes {
		if v == s {
			return true
		}
	}
	return false
}

// SizeList stores ordered garment sizes as a JSONB column.
type SizeList []string

// Scan implements sql.Scanner.
func (s *SizeList) Scan(src interface{}) error {
	return scanJSON(src, s)
}

// Value implements driver.Valuer.
func (s SizeList) Value() (driver.Value, error) {
	return json.Marshal(s)
}

// Scan implements sql.Scanner.
func (c *Customizable) Scan(src interface{}) error {
	return scanJSON(src, c)
}

// Value implements driver.Valuer.
func (c *Customizable) Value() (driver.Value, error) {
	if c == nil {
		return nil, nil
	}
	return json.Marshal(c)
}

func scanJSON(src, dst interface{}) error {
	if src == nil {
		return nil
	}
	switch v := src.(type) {
	case []byte:
		return json.Unmarshal(v, dst)
	case string:
		return json.Unmarshal([]byte(v), dst)
	}
	return errors.New("unsupported column type for JSON scan")
}
