package service

import (
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/internal/repository"
	"github.com/estampaviva/estampa-api/internal/utils"
)

// CatalogService handles product catalog reads and admin CRUD.
type CatalogService struct {
	products *repository.ProductRepository
}

// NewCatalogService constructs a CatalogService.
func NewCatalogService(products *repository.ProductRepository) *CatalogService {
	return &CatalogService{products: products}
}

// CreateProductRequest represents the request to create a product.
type CreateProductRequest struct {
	Name           string               `json:"name" binding:"required"`
	Categoria      string               `json:"categoria" binding:"required"`
	Description    string               `json:"description"`
	Price          int                  `json:"price"`
	Currency       models.Currency      `json:"currency" binding:"required"`
	AvailableSizes []string             `json:"availableSizes" binding:"required"`
	ImageURL       string               `json:"imageUrl"`
	InStock        bool                 `json:"inStock"`
	Customizable   *models.Customizable `json:"customizable"`
}

// UpdateProductRequest represents the request to update a product. Nil
// pointer fields leave the current value untouched.
type UpdateProductRequest struct {
	Name           string               `json:"name"`
	Categoria      string               `json:"categoria"`
	Description    *string              `json:"description"`
	Price          *int                 `json:"price"`
	Currency       models.Currency      `json:"currency"`
	AvailableSizes []string             `json:"availableSizes"`
	ImageURL       *string              `json:"imageUrl"`
	InStock        *bool                `json:"inStock"`
	Customizable   *models.Customizable `json:"customizable"`
}

func validateProduct(price int, currency models.Currency, sizes []string, customizable *models.Customizable) error {
	if price < 0 {
		return errors.New("price must be >= 0")
	}
	if !currency.Valid() {
		return fmt.Errorf("invalid currency %q", currency)
	}
	if len(sizes) == 0 {
		return errors.New("availableSizes is required")
	}
	for _, s := range sizes {
		if !models.ValidGarmentSize(s) {
			return fmt.Errorf("invalid size %q", s)
		}
	}
	if customizable != nil && len(customizable.Colors) == 0 {
		return errors.New("customizable products require at least one color")
	}
	return nil
}

// ListProducts returns a filtered, paginated product page.
func (s *CatalogService) ListProducts(filter *repository.ProductFilter) (*repository.ProductPage, error) {
	return s.products.GetAll(filter)
}

// GetProduct retrieves a product by id.
func (s *CatalogService) GetProduct(id string) (*models.Product, error) {
	product, err := s.products.GetByID(id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, utils.ErrProductNotFound
		}
		return nil, err
	}
	return product, nil
}

// CreateProduct validates and creates a product with a generated id.
func (s *CatalogService) CreateProduct(req *CreateProductRequest) (*models.Product, error) {
	if err := validateProduct(req.Price, req.Currency, req.AvailableSizes, req.Customizable); err != nil {
		return nil, err
	}

	product := &models.Product{
		ID:             uuid.New().String(),
		Name:           req.Name,
		Categoria:      req.Categoria,
		Description:    req.Description,
		Price:          req.Price,
		Currency:       req.Currency,
		AvailableSizes: req.AvailableSizes,
		ImageURL:       req.ImageURL,
		InStock:        req.InStock,
		Customizable:   req.Customizable,
	}
	if err := s.products.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// UpdateProduct validates and applies a partial product update.
func (s *CatalogService) UpdateProduct(id string, req *UpdateProductRequest) (*models.Product, error) {
	product, err := s.GetProduct(id)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		product.Name = req.Name
	}
	if req.Categoria != "" {
		product.Categoria = req.Categoria
	}
	if req.Description != nil {
		product.Description = *req.Description
	}
	if req.Price != nil {
		product.Price = *req.Price
	}
	if req.Currency != "" {
		product.Currency = req.Currency
	}
	if len(req.AvailableSizes) > 0 {
		product.AvailableSizes = req.AvailableSizes
	}
	if req.ImageURL != nil {
		product.ImageURL = *req.ImageURL
	}
	if req.InStock != nil {
		product.InStock = *req.InStock
	}
	if req.Customizable != nil {
		product.Customizable = req.Customizable
	}

	if err := validateProduct(product.Price, product.Currency, product.AvailableSizes, product.Customizable); err != nil {
		return nil, err
	}
	if err := s.products.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// DeleteProduct deletes a product by id.
func (s *CatalogService) DeleteProduct(id string) error {
	if err := s.products.Delete(id); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return utils.ErrProductNotFound
		}
		return err
	}
	return nil
}

// GetCategorias returns the distinct categories in the catalog.
func (s *CatalogService) GetCategorias() ([]string, error) {
	return s.products.GetDistinctCategorias()
}

// GetByID satisfies ProductGetter for the cart service.
func (s *CatalogService) GetByID(id string) (*models.Product, error) {
	return s.products.GetByID(id)
}
