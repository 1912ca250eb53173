package pricing

import "github.com/estampaviva/estampa-api/internal/models"

// The hardcoded pricing tables below are the single definition site for
// degraded-mode data and for the idempotent seed. Every consumer references
// these, never a private copy, so the served table is always exact.

// basePrintPrices is the price ladder for a single placement.
var basePrintPrices = map[models.SizeBand]int{
	models.SizeHasta15:    0,
	models.SizeHasta20x30: 500,
	models.SizeHasta30x40: 1000,
	models.SizeHasta40x50: 1500,
}

// frontBackPrices doubles the single-placement ladder at the priced tiers;
// the 15cm tier stays free.
var frontBackPrices = map[models.SizeBand]int{
	models.SizeHasta15:    0,
	models.SizeHasta20x30: 1000,
	models.SizeHasta30x40: 2000,
	models.SizeHasta40x50: 2500,
}

var placementLabels = map[models.Placement]string{
	models.PlacementFront:     "Frente",
	models.PlacementBack:      "Espalda",
	models.PlacementFrontBack: "Frente y Espalda",
}

var sizeLabels = map[models.SizeBand]string{
	models.SizeHasta15:    "Hasta 15cm",
	models.SizeHasta20x30: "Hasta 20x30cm",
	models.SizeHasta30x40: "Hasta 30x40cm",
	models.SizeHasta40x50: "Hasta 40x50cm",
}

// FallbackStampOptions returns the full hardcoded stamp-option table:
// 12 entries, 3 placements by 4 size bands. The slice is freshly allocated
// on every call so callers can never mutate the canonical data.
func FallbackStampOptions() []models.StampOption {
	placements := []models.Placement{models.PlacementFront, models.PlacementBack, models.PlacementFrontBack}
	options := make([]models.StampOption, 0, len(placements)*len(models.SizeBands))
	for _, p := range placements {
		prices := basePrintPrices
		if p == models.PlacementFrontBack {
			prices = frontBackPrices
		}
		for _, s := range models.SizeBands {
			options = append(options, models.StampOption{
				ID:        string(p) + ":" + string(s),
				Placement: p,
				Size:      s,
				Label:     placementLabels[p] + " - " + sizeLabels[s],
				ExtraCost: prices[s],
				IsActive:  true,
			})
		}
	}
	return options
}

// FallbackPrintSizes returns the hardcoded base print-size table, one row per
// size band priced with the single-placement ladder.
func FallbackPrintSizes() []models.PrintSize {
	sizes := make([]models.PrintSize, 0, len(models.SizeBands))
	for _, s := range models.SizeBands {
		sizes = append(sizes, models.PrintSize{
			ID:      string(s),
			SizeKey: s,
			Label:   sizeLabels[s],
			Price:   basePrintPrices[s],
		})
	}
	return sizes
}

// SizeLabel returns the display label for a size band.
func SizeLabel(s models.SizeBand) string {
	return sizeLabels[s]
}

// PlacementLabel returns the display label for a placement.
func PlacementLabel(p models.Placement) string {
	return placementLabels[p]
}
