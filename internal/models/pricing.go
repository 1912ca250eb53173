package models

import "time"

// Placement enumerates where a stamp can be applied on a garment.
type Placement string

const (
	PlacementFront     Placement = "front"
	PlacementBack      Placement = "back"
	PlacementFrontBack Placement = "front_back"
)

// Valid reports whether p is a known placement.
func (p Placement) Valid() bool {
	switch p {
	case PlacementFront, PlacementBack, PlacementFrontBack:
		return true
	}
	return false
}

// SizeBand enumerates the four fixed print-size tiers used to price stamps.
type SizeBand string

const (
	SizeHasta15    SizeBand = "hasta_15cm"
	SizeHasta20x30 SizeBand = "hasta_20x30cm"
	SizeHasta30x40 SizeBand = "hasta_30x40cm"
	SizeHasta40x50 SizeBand = "hasta_40x50cm"
)

// SizeBands lists the bands in ascending order.
var SizeBands = []SizeBand{SizeHasta15, SizeHasta20x30, SizeHasta30x40, SizeHasta40x50}

// Valid reports whether s is a known size band.
func (s SizeBand) Valid() bool {
	switch s {
	case SizeHasta15, SizeHasta20x30, SizeHasta30x40, SizeHasta40x50:
		return true
	}
	return false
}

// StampOption is the unified stamp/print pricing row: a placement and size
// band resolve to a display label and an extra cost over the base price.
type StampOption struct {
	ID        string    `db:"id" json:"id"`
	Placement Placement `db:"placement" json:"placement"`
	Size      SizeBand  `db:"size_id" json:"size"`
	Label     string    `db:"label" json:"label"`
	ExtraCost int       `db:"extra_cost" json:"extraCost"`
	IsActive  bool      `db:"is_active" json:"isActive"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}

// PrintSize is the admin-managed base print-size price table. It is
// independent of, but referenced by, StampOption.Size.
type PrintSize struct {
	ID        string    `db:"id" json:"id"`
	SizeKey   SizeBand  `db:"size_key" json:"sizeKey"`
	Label     string    `db:"label" json:"label"`
	Price     int       `db:"price" json:"price"`
	CreatedAt time.Time `db:"created_at" json:"-"`
	UpdatedAt time.Time `db:"updated_at" json:"-"`
}
