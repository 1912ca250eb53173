package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"github.com/estampaviva/estampa-api/internal/models"
	"github.com/estampaviva/estampa-api/internal/service"
	"github.com/estampaviva/estampa-api/internal/utils"
)

// PricingHandler serves the pricing tables and the admin pricing editor.
type PricingHandler struct {
	pricingService *service.PricingService
}

// NewPricingHandler constructs a PricingHandler.
func NewPricingHandler(pricingService *service.PricingService) *PricingHandler {
	return &PricingHandler{pricingService: pricingService}
}

// stampOptionDTO is the legacy wire shape for stamp options. The snake_case
// field names (size_id, extra_cost) exist only at this boundary; everything
// behind it uses the unified model.
type stampOptionDTO struct {
	ID        string           `json:"id"`
	Placement models.Placement `json:"placement"`
	SizeID    models.SizeBand  `json:"size_id"`
	Label     string           `json:"label"`
	ExtraCost int              `json:"extra_cost"`
	IsActive  bool             `json:"is_active"`
}

// printSizeDTO is the legacy wire shape for print sizes.
type printSizeDTO struct {
	ID      string          `json:"id"`
	SizeKey models.SizeBand `json:"size_key"`
	Label   string          `json:"label"`
	Price   int             `json:"price"`
}

type pricingTablesDTO struct {
	PrintSizes   []printSizeDTO   `json:"printSizes"`
	StampOptions []stampOptionDTO `json:"stampOptions"`
	NeedsSetup   bool             `json:"needsSetup,omitempty"`
	Message      string           `json:"message,omitempty"`
}

func toPricingDTO(t *service.PricingTables) pricingTablesDTO {
	dto := pricingTablesDTO{
		PrintSizes:   make([]printSizeDTO, 0, len(t.PrintSizes)),
		StampOptions: make([]stampOptionDTO, 0, len(t.StampOptions)),
		NeedsSetup:   t.NeedsSetup,
		Message:      t.Message,
	}
	for _, s := range t.PrintSizes {
		dto.PrintSizes = append(dto.PrintSizes, printSizeDTO{
			ID: s.ID, SizeKey: s.SizeKey, Label: s.Label, Price: s.Price,
		})
	}
	for _, o := range t.StampOptions {
		dto.StampOptions = append(dto.StampOptions, stampOptionDTO{
			ID: o.ID, Placement: o.Placement, SizeID: o.Size,
			Label: o.Label, ExtraCost: o.ExtraCost, IsActive: o.IsActive,
		})
	}
	return dto
}

// GetPricing handles GET /v1/pricing
func (h *PricingHandler) GetPricing(c *gin.Context) {
	tables, err := h.pricingService.GetTables()
	if err != nil {
		utils.Error(c, 500, "INTERNAL_ERROR", "Failed to retrieve pricing tables")
		return
	}
	utils.Success(c, 200, "Pricing retrieved", toPricingDTO(tables))
}

// UpdatePriceRequest is the admin single-field price update.
type UpdatePriceRequest struct {
	Type  string `json:"type" binding:"required"`
	ID    string `json:"id" binding:"required"`
	Price *int   `json:"price" binding:"required"`
}

// UpdatePrice handles PUT /v1/admin/pricing
func (h *PricingHandler) UpdatePrice(c *gin.Context) {
	var req UpdatePriceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.pricingService.UpdatePrice(req.Type, req.ID, *req.Price)
	if err != nil {
		switch {
		case errors.Is(err, utils.ErrPriceOutOfBounds):
			utils.Error(c, 400, "PRICE_OUT_OF_BOUNDS", err.Error())
		case errors.Is(err, utils.ErrInvalidPriceTarget):
			utils.Error(c, 400, "INVALID_TYPE", err.Error())
		case errors.Is(err, utils.ErrPriceRowNotFound):
			utils.Error(c, 404, "NOT_FOUND", err.Error())
		default:
			utils.Error(c, 500, "INTERNAL_ERROR", "Failed to update price")
		}
		return
	}

	if !result.Applied {
		utils.Success(c, 200, result.Warning, result)
		return
	}
	utils.Success(c, 200, "Price updated", result)
}

// SetupSystem handles POST /v1/admin/pricing/setup
func (h *PricingHandler) SetupSystem(c *gin.Context) {
	if err := h.pricingService.SetupSystem(); err != nil {
		utils.Error(c, 500, "SETUP_FAILED", "Failed to seed pricing tables: "+err.Error())
		return
	}
	utils.Success(c, 200, "Pricing tables seeded", nil)
}
