package pricing

import (
	"testing"

	"github.com/estampaviva/estampa-api/internal/models"
)

// The fallback matrix is depended on by degraded-mode operation: 3 placements
// by 4 size bands, with the front_back ladder doubled at the priced tiers.
var wantMatrix = map[models.Placement]map[models.SizeBand]int{
	models.PlacementFront: {
		models.SizeHasta15:    0,
		models.SizeHasta20x30: 500,
		models.SizeHasta30x40: 1000,
		models.SizeHasta40x50: 1500,
	},
	models.PlacementBack: {
		models.SizeHasta15:    0,
		models.SizeHasta20x30: 500,
		models.SizeHasta30x40: 1000,
		models.SizeHasta40x50: 1500,
	},
	models.PlacementFrontBack: {
		models.SizeHasta15:    0,
		models.SizeHasta20x30: 1000,
		models.SizeHasta30x40: 2000,
		models.SizeHasta40x50: 2500,
	},
}

func TestFallbackStampOptionsExactness(t *testing.T) {
	options := FallbackStampOptions()
	if len(options) != 12 {
		t.Fatalf("expected 12 fallback options, got %d", len(options))
	}

	seen := map[string]bool{}
	for _, opt := range options {
		want, ok := wantMatrix[opt.Placement][opt.Size]
		if !ok {
			t.Errorf("unexpected option %s/%s", opt.Placement, opt.Size)
			continue
		}
		if opt.ExtraCost != want {
			t.Errorf("%s/%s: extra cost %d, want %d", opt.Placement, opt.Size, opt.ExtraCost, want)
		}
		if !opt.IsActive {
			t.Errorf("%s/%s: fallback options must be active", opt.Placement, opt.Size)
		}
		if opt.Label == "" || opt.ID == "" {
			t.Errorf("%s/%s: missing label or id", opt.Placement, opt.Size)
		}
		key := string(opt.Placement) + "/" + string(opt.Size)
		if seen[key] {
			t.Errorf("duplicate option %s", key)
		}
		seen[key] = true
	}
}

func TestFallbackStampOptionsIsolatedCopies(t *testing.T) {
	first := FallbackStampOptions()
	first[0].ExtraCost = 99999

	second := FallbackStampOptions()
	if second[0].ExtraCost == 99999 {
		t.Error("mutating a returned slice leaked into the canonical table")
	}
}

func TestFallbackPrintSizes(t *testing.T) {
	sizes := FallbackPrintSizes()
	if len(sizes) != 4 {
		t.Fatalf("expected 4 print sizes, got %d", len(sizes))
	}
	wantPrices := []int{0, 500, 1000, 1500}
	for i, s := range sizes {
		if s.SizeKey != models.SizeBands[i] {
			t.Errorf("size %d: key %s, want %s", i, s.SizeKey, models.SizeBands[i])
		}
		if s.Price != wantPrices[i] {
			t.Errorf("size %s: price %d, want %d", s.SizeKey, s.Price, wantPrices[i])
		}
	}
}
