package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/rs/zerolog/log"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/internal/pricing"
	"github.com/estampaviva/estampa-api/internal/repository"
	"github.com/estampaviva/estampa-api/internal/utils"
)

// NeedsSetupMessage is shown to admins when the pricing tables are missing.
const NeedsSetupMessage = "Las tablas de precios no están configuradas. Ejecutá la configuración inicial para editarlas; mientras tanto se usan los precios predeterminados."

// Price update targets.
const (
	PriceTargetPrintSize   = "print_size"
	PriceTargetStampOption = "stamp_option"
)

// PricingStore is the repository surface the pricing service depends on.
type PricingStore interface {
	GetPrintSizes() ([]models.PrintSize, error)
	GetStampOptions() ([]models.StampOption, error)
	GetStampOptionByID(id string) (*models.StampOption, error)
	UpdatePrintSizePrice(id string, price int) error
	UpdateStampOptionPrice(id string, price int) error
	UpsertPrintSize(size *models.PrintSize) error
	UpsertStampOption(opt *models.StampOption) error
}

// PricingService serves the stamp/print pricing tables, falling back to the
// hardcoded defaults when the backing tables are not provisioned.
type PricingService struct {
	repo     PricingStore
	priceMax int
}

// NewPricingService constructs a PricingService. priceMax bounds admin price
// updates to [0, priceMax].
func NewPricingService(repo PricingStore, priceMax int) *PricingService {
	return &PricingService{repo: repo, priceMax: priceMax}
}

// PricingTables is the full pricing dataset served to storefront and admin.
// NeedsSetup is true when the hardcoded fallback is being served because the
// backing tables do not exist yet.
type PricingTables struct {
	PrintSizes   []models.PrintSize   `json:"printSizes"`
	StampOptions []models.StampOption `json:"stampOptions"`
	NeedsSetup   bool                 `json:"needsSetup,omitempty"`
	Message      string               `json:"message,omitempty"`
}

// GetTables returns the current pricing tables. A missing backing table is a
// degraded-mode condition, not an error: the fallback dataset is served with
// NeedsSetup set.
func (s *PricingService) GetTables() (*PricingTables, error) {
	sizes, err := s.repo.GetPrintSizes()
	if err != nil {
		if errors.Is(err, repository.ErrTableMissing) {
			return s.fallbackTables(), nil
		}
		return nil, err
	}

	options, err := s.repo.GetStampOptions()
	if err != nil {
		if errors.Is(err, repository.ErrTableMissing) {
			return s.fallbackTables(), nil
		}
		return nil, err
	}

	// Empty tables mean setup never ran; treat like a missing table so the
	// storefront keeps pricing customizations.
	if len(sizes) == 0 && len(options) == 0 {
		return s.fallbackTables(), nil
	}

	return &PricingTables{PrintSizes: sizes, StampOptions: options}, nil
}

func (s *PricingService) fallbackTables() *PricingTables {
	return &PricingTables{
		PrintSizes:   pricing.FallbackPrintSizes(),
		StampOptions: pricing.FallbackStampOptions(),
		NeedsSetup:   true,
		Message:      NeedsSetupMessage,
	}
}

// CurrentStampOptions returns the stamp options in effect (table or
// fallback). It never fails into the caller's path: on hard errors it logs
// and serves the fallback so carts keep working.
func (s *PricingService) CurrentStampOptions() []models.StampOption {
	tables, err := s.GetTables()
	if err != nil {
		log.Error().Err(err).Msg("pricing tables unavailable, serving fallback options")
		return pricing.FallbackStampOptions()
	}
	return tables.StampOptions
}

// UpdateResult reports the outcome of a price update. In degraded mode the
// update is accepted as a no-op with a warning instead of failing hard.
type UpdateResult struct {
	Applied bool   `json:"applied"`
	Warning string `json:"warning,omitempty"`
}

// UpdatePrice updates one row's price in the given table. The price must be
// within [0, priceMax]; out-of-bounds values are rejected before any
// mutation.
func (s *PricingService) UpdatePrice(target, id string, price int) (*UpdateResult, error) {
	if price < 0 || price > s.priceMax {
		return nil, fmt.Errorf("%w: price must be between 0 and %d", utils.ErrPriceOutOfBounds, s.priceMax)
	}

	var err error
	switch target {
	case PriceTargetPrintSize:
		err = s.repo.UpdatePrintSizePrice(id, price)
	case PriceTargetStampOption:
		err = s.repo.UpdateStampOptionPrice(id, price)
	default:
		return nil, fmt.Errorf("%w: unknown target %q", utils.ErrInvalidPriceTarget, target)
	}

	if err != nil {
		if errors.Is(err, repository.ErrTableMissing) {
			log.Warn().Str("target", target).Str("id", id).Msg("price update ignored: pricing tables not provisioned")
			return &UpdateResult{Applied: false, Warning: NeedsSetupMessage}, nil
		}
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("%w: %s %q", utils.ErrPriceRowNotFound, target, id)
		}
		return nil, err
	}

	if target == PriceTargetStampOption {
		s.warnInconsistentLadder(id, price)
	}

	return &UpdateResult{Applied: true}, nil
}

// warnInconsistentLadder logs when a front_back price drops below the single
// placement prices for the same band. The business expects front_back to
// cost at least as much as either side alone, but admins stay free to set
// whatever ladder they want.
func (s *PricingService) warnInconsistentLadder(id string, price int) {
	opt, err := s.repo.GetStampOptionByID(id)
	if err != nil || opt == nil {
		return
	}
	options, err := s.repo.GetStampOptions()
	if err != nil {
		return
	}
	if opt.Placement == models.PlacementFrontBack {
		front := pricing.ExtraCost(options, models.PlacementFront, opt.Size)
		back := pricing.ExtraCost(options, models.PlacementBack, opt.Size)
		if price < front || price < back {
			log.Warn().
				Str("size", string(opt.Size)).
				Int("front_back", price).
				Int("front", front).
				Int("back", back).
				Msg("front_back price set below single placement price")
		}
	}
}

// SetupSystem seeds the pricing tables from the canonical fallback dataset.
// Rows are upserted by natural key (size_key, (placement, size_id)), so the
// operation is idempotent: running it twice leaves the same row counts and
// never clobbers admin-edited prices.
func (s *PricingService) SetupSystem() error {
	for _, size := range pricing.FallbackPrintSizes() {
		size := size
		if err := s.repo.UpsertPrintSize(&size); err != nil {
			return fmt.Errorf("failed to seed print size %s: %w", size.SizeKey, err)
		}
	}
	for _, opt := range pricing.FallbackStampOptions() {
		opt := opt
		if err := s.repo.UpsertStampOption(&opt); err != nil {
			return fmt.Errorf("failed to seed stamp option %s/%s: %w", opt.Placement, opt.Size, err)
		}
	}
	log.Info().Msg("pricing tables seeded")
	return nil
}
