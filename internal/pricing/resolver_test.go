package pricing

import (
	"testing"

	"github.com/estampaviva/estampa-api/internal/models"
)

func TestResolve(t *testing.T) {
	options := FallbackStampOptions()

	opt, ok := Resolve(options, models.PlacementFrontBack, models.SizeHasta30x40)
	if !ok {
		t.Fatal("expected a match")
	}
	if opt.ExtraCost != 2000 {
		t.Errorf("extra cost %d, want 2000", opt.ExtraCost)
	}
}

func TestResolveNoMatchIsNotAnError(t *testing.T) {
	_, ok := Resolve(nil, models.PlacementFront, models.SizeHasta15)
	if ok {
		t.Error("empty option set must resolve to no customization")
	}
	if got := ExtraCost(nil, models.PlacementFront, models.SizeHasta15); got != 0 {
		t.Errorf("ExtraCost = %d, want 0 on no match", got)
	}
}

func TestResolveSkipsInactive(t *testing.T) {
	options := []models.StampOption{
		{ID: "x", Placement: models.PlacementFront, Size: models.SizeHasta15, ExtraCost: 100, IsActive: false},
	}
	if _, ok := Resolve(options, models.PlacementFront, models.SizeHasta15); ok {
		t.Error("inactive options must not resolve")
	}
}
