package pricing

import "github.com/estampaviva/estampa-api/internal/models"

// Resolve finds the stamp option matching the placement and size band within
// the given option set. Absence of a match is the valid "no customization"
// state: the caller treats extra cost as zero. Resolve never errors.
func Resolve(options []models.StampOption, placement models.Placement, size models.SizeBand) (models.StampOption, bool) {
	for _, opt := range options {
		if opt.Placement == placement && opt.Size == size && opt.IsActive {
			return opt, true
		}
	}
	return models.StampOption{}, false
}

// ExtraCost returns the extra cost for the placement and size band, or zero
// when no matching option exists.
func ExtraCost(options []models.StampOption, placement models.Placement, size models.SizeBand) int {
	opt, ok := Resolve(options, placement, size)
	if !ok {
		return 0
	}
	return opt.ExtraCost
}
