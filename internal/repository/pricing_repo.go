package repository

import (
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/estampaviva/estampa-api/internal/models"
)

// ErrTableMissing signals that a pricing table has not been provisioned yet.
// Callers treat it as a degraded-mode condition, not a failure.
var ErrTableMissing = errors.New("pricing tables not provisioned")

// pqUndefinedTable is the PostgreSQL error code for undefined_table.
const pqUndefinedTable = "42P01"

// PricingRepository handles data access for the print_sizes and
// stamp_options pricing tables.
type PricingRepository struct {
	db *sqlx.DB
}

// NewPricingRepository creates a new PricingRepository.
func NewPricingRepository(db *sqlx.DB) *PricingRepository {
	return &PricingRepository{db: db}
}

// translateErr maps undefined_table errors onto ErrTableMissing.
func translateErr(err error) error {
	var pqErr *pq.Error
	if errors.As(err, &pqErr) && string(pqErr.Code) == pqUndefinedTable {
		return ErrTableMissing
	}
	return err
}

// GetPrintSizes returns all print-size rows ordered by ascending band.
func (r *PricingRepository) GetPrintSizes() ([]models.PrintSize, error) {
	const q = `
        SELECT * FROM print_sizes
        ORDER BY array_position(ARRAY['hasta_15cm','hasta_20x30cm','hasta_30x40cm','hasta_40x50cm'], size_key::text)`

	var sizes []models.PrintSize
	if err := r.db.Select(&sizes, q); err != nil {
		return nil, translateErr(err)
	}
	return sizes, nil
}

// GetStampOptions returns all stamp-option rows.
func (r *PricingRepository) GetStampOptions() ([]models.StampOption, error) {
	const q = `
        SELECT * FROM stamp_options
        ORDER BY placement, array_position(ARRAY['hasta_15cm','hasta_20x30cm','hasta_30x40cm','hasta_40x50cm'], size_id::text)`

	var options []models.StampOption
	if err := r.db.Select(&options, q); err != nil {
		return nil, translateErr(err)
	}
	return options, nil
}

// GetStampOptionByID returns a single stamp option.
func (r *PricingRepository) GetStampOptionByID(id string) (*models.StampOption, error) {
	const q = `SELECT * FROM stamp_options WHERE id = $1 LIMIT 1`
	var opt models.StampOption
	if err := r.db.Get(&opt, q, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, translateErr(err)
	}
	return &opt, nil
}

// UpdatePrintSizePrice updates a single print-size price.
func (r *PricingRepository) UpdatePrintSizePrice(id string, price int) error {
	const q = `UPDATE print_sizes SET price = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.Exec(q, id, price)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpdateStampOptionPrice updates a single stamp-option extra cost.
func (r *PricingRepository) UpdateStampOptionPrice(id string, price int) error {
	const q = `UPDATE stamp_options SET extra_cost = $2, updated_at = NOW() WHERE id = $1`
	res, err := r.db.Exec(q, id, price)
	if err != nil {
		return translateErr(err)
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// UpsertPrintSize inserts or updates a print size by its natural key
// (size_key). Repeated seeding never creates duplicate rows.
func (r *PricingRepository) UpsertPrintSize(size *models.PrintSize) error {
	const q = `
        INSERT INTO print_sizes (id, size_key, label, price)
        VALUES ($1, $2, $3, $4)
        ON CONFLICT (size_key) DO UPDATE SET
            label = EXCLUDED.label,
            updated_at = NOW()`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return translateErr(err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(size.ID, size.SizeKey, size.Label, size.Price)
	return translateErr(err)
}

// UpsertStampOption inserts or updates a stamp option by its natural key
// (placement, size_id). Seed prices are left untouched on conflict so admin
// edits survive re-running setup.
func (r *PricingRepository) UpsertStampOption(opt *models.StampOption) error {
	const q = `
        INSERT INTO stamp_options (id, placement, size_id, label, extra_cost, is_active)
        VALUES ($1, $2, $3, $4, $5, $6)
        ON CONFLICT (placement, size_id) DO UPDATE SET
            label = EXCLUDED.label,
            is_active = EXCLUDED.is_active,
            updated_at = NOW()`

	stmt, err := r.db.Preparex(q)
	if err != nil {
		return translateErr(err)
	}
	defer stmt.Close()

	_, err = stmt.Exec(opt.ID, opt.Placement, opt.Size, opt.Label, opt.ExtraCost, opt.IsActive)
	return translateErr(err)
}

// Counts returns the number of rows in each pricing table.
func (r *PricingRepository) Counts() (printSizes, stampOptions int, err error) {
	if err = r.db.Get(&printSizes, `SELECT COUNT(1) FROM print_sizes`); err != nil {
		return 0, 0, translateErr(err)
	}
	if err = r.db.Get(&stampOptions, `SELECT COUNT(1) FROM stamp_options`); err != nil {
		return 0, 0, translateErr(err)
	}
	return printSizes, stampOptions, nil
}
