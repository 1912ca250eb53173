package repository

import (
	"database/sql"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/estampaviva/estampa-api/internal/models"
)

// ProductRepository handles data access for catalog products.
type ProductRepository struct {
	db *sqlx.DB
}

// NewProductRepository creates a new ProductRepository.
func NewProductRepository(db *sqlx.DB) *ProductRepository {
	return &ProductRepository{db: db}
}

// ProductFilter holds filters for product listings.
type ProductFilter struct {
	Categoria string
	Search    string
	InStock   *bool
	Page      int
	Limit     int
}

// ProductPage contains paginated product results.
type ProductPage struct {
	Products   []models.Product
	TotalItems int
	TotalPages int
	Page       int
	Limit      int
}

// GetAll returns products with filters and pagination. Empty filters are
// ignored. Page begins at 1.
func (r *ProductRepository) GetAll(filter *ProductFilter) (*ProductPage, error) {
	if filter.Page <= 0 {
		filter.Page = 1
	}
	if filter.Limit <= 0 {
		filter.Limit = 50
	}
	if filter.Limit > 100 {
		filter.Limit = 100
	}
	offset := (filter.Page - 1) * filter.Limit

	baseWhere := `WHERE 1=1`
	args := []interface{}{}
	argIdx := 1

	if filter.Categoria != "" {
		baseWhere += fmt.Sprintf(" AND categoria = $%d", argIdx)
		args = append(args, filter.Categoria)
		argIdx++
	}
	if filter.Search != "" {
		baseWhere += fmt.Sprintf(" AND (name ILIKE $%d OR description ILIKE $%d)", argIdx, argIdx)
		args = append(args, "%"+filter.Search+"%")
		argIdx++
	}
	if filter.InStock != nil {
		baseWhere += fmt.Sprintf(" AND in_stock = $%d", argIdx)
		args = append(args, *filter.InStock)
		argIdx++
	}

	countQuery := `SELECT COUNT(1) FROM products ` + baseWhere
	var total int
	if err := r.db.Get(&total, countQuery, args...); err != nil {
		return nil, err
	}

	listQuery := fmt.Sprintf(`SELECT * FROM products %s ORDER BY categoria, name LIMIT $%d OFFSET $%d`,
		baseWhere, argIdx, argIdx+1)
	args = append(args, filter.Limit, offset)

	var products []models.Product
	if err := r.db.Select(&products, listQuery, args...); err != nil {
		return nil, err
	}

	return &ProductPage{
		Products:   products,
		TotalItems: total,
		TotalPages: (total + filter.Limit - 1) / filter.Limit,
		Page:       filter.Page,
		Limit:      filter.Limit,
	}, nil
}

// GetByID returns a single product by id.
func (r *ProductRepository) GetByID(id string) (*models.Product, error) {
	const q = `SELECT * FROM products WHERE id = $1 LIMIT 1`
	stmt, err := r.db.Preparex(q)
	if err != nil {
		return nil, err
	}
	defer stmt.Close()

	var p models.Product
	if err := stmt.Get(&p, id); err != nil {
		if err == sql.ErrNoRows {
			return nil, sql.ErrNoRows
		}
		return nil, err
	}
	return &p, nil
}

// Create creates a new product.
func (r *ProductRepository) Create(product *models.Product) error {
	const q = `
        INSERT INTO products (id, name, categoria, description, price, currency, available_sizes, image_url, in_stock, customizable)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
        RETURNING created_at, updated_at`

	return r.db.QueryRowx(q,
		product.ID,
		product.Name,
		product.Categoria,
		product.Description,
		product.Price,
		product.Currency,
		product.AvailableSizes,
		product.ImageURL,
		product.InStock,
		product.Customizable,
	).Scan(&product.CreatedAt, &product.UpdatedAt)
}

// Update updates an existing product.
func (r *ProductRepository) Update(product *models.Product) error {
	const q = `
        UPDATE products
        SET name = $2, categoria = $3, description = $4, price = $5, currency = $6,
            available_sizes = $7, image_url = $8, in_stock = $9, customizable = $10,
            updated_at = NOW()
        WHERE id = $1
        RETURNING updated_at`

	return r.db.QueryRowx(q,
		product.ID,
		product.Name,
		product.Categoria,
		product.Description,
		product.Price,
		product.Currency,
		product.AvailableSizes,
		product.ImageURL,
		product.InStock,
		product.Customizable,
	).Scan(&product.UpdatedAt)
}

// Delete deletes a product by id.
func (r *ProductRepository) Delete(id string) error {
	res, err := r.db.Exec(`DELETE FROM products WHERE id = $1`, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		return sql.ErrNoRows
	}
	return nil
}

// GetDistinctCategorias returns all distinct product categories.
func (r *ProductRepository) GetDistinctCategorias() ([]string, error) {
	const q = `SELECT DISTINCT categoria FROM products WHERE categoria != '' ORDER BY categoria`
	var categorias []string
	if err := r.db.Select(&categorias, q); err != nil {
		return nil, err
	}
	return categorias, nil
}
