package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/estampaviva/estampa-api/internal/repository"
	"github.com/estampaviva/estampa-api/internal/service"
	"github.com/estampaviva/estampa-api/internal/utils"
)

// ProductHandler handles catalog HTTP endpoints.
type ProductHandler struct {
	catalogService *service.CatalogService
}

// NewProductHandler constructs a ProductHandler.
func NewProductHandler(catalogService *service.CatalogService) *ProductHandler {
	return &ProductHandler{catalogService: catalogService}
}

// ListProducts handles GET /v1/products
func (h *ProductHandler) ListProducts(c *gin.Context) {
	filter := &repository.ProductFilter{
		Categoria: c.Query("categoria"),
		Search:    c.Query("search"),
		Page:      1,
		Limit:     50,
	}
	if page := c.Query("page"); page != "" {
		if p, err := strconv.Atoi(page); err == nil {
			filter.Page = p
		}
	}
	if limit := c.Query("limit"); limit != "" {
		if l, err := strconv.Atoi(limit); err == nil {
			filter.Limit = l
		}
	}
	if inStock := c.Query("inStock"); inStock != "" {
		v := inStock == "true"
		filter.InStock = &v
	}

	page, err := h.catalogService.ListProducts(filter)
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve products")
		return
	}
	utils.SuccessWithPagination(c, 200, "Products retrieved", page.Products, page.Page, page.Limit, page.TotalItems)
}

// GetProduct handles GET /v1/products/:id
func (h *ProductHandler) GetProduct(c *gin.Context) {
	product, err := h.catalogService.GetProduct(c.Param("id"))
	if err != nil {
		utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
		return
	}
	utils.Success(c, 200, "Product retrieved", product)
}

// GetCategorias handles GET /v1/products/categorias
func (h *ProductHandler) GetCategorias(c *gin.Context) {
	categorias, err := h.catalogService.GetCategorias()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve categories")
		return
	}
	utils.Success(c, 200, "Categories retrieved", categorias)
}

// CreateProduct handles POST /v1/admin/products
func (h *ProductHandler) CreateProduct(c *gin.Context) {
	var req service.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.catalogService.CreateProduct(&req)
	if err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", err.Error())
		return
	}
	utils.Success(c, 201, "Product created successfully", product)
}

// UpdateProduct handles PUT /v1/admin/products/:id
func (h *ProductHandler) UpdateProduct(c *gin.Context) {
	var req service.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	product, err := h.catalogService.UpdateProduct(c.Param("id"), &req)
	if err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 400, "INVALID_REQUEST", err.Error())
		return
	}
	utils.Success(c, 200, "Product updated successfully", product)
}

// DeleteProduct handles DELETE /v1/admin/products/:id
func (h *ProductHandler) DeleteProduct(c *gin.Context) {
	if err := h.catalogService.DeleteProduct(c.Param("id")); err != nil {
		if errors.Is(err, utils.ErrProductNotFound) {
			utils.Error(c, 404, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to delete product")
		return
	}
	utils.Success(c, 200, "Product deleted successfully", nil)
}
