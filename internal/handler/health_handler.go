package handler

import (
	"github.com/gin-gonic/gin"
	"github.com/jmoiron/sqlx"

	"github.com/estampaviva/estampa-api/internal/utils"
)

// HealthHandler reports service health.
type HealthHandler struct {
	db *sqlx.DB
}

// NewHealthHandler constructs a HealthHandler.
func NewHealthHandler(db *sqlx.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// GetHealth handles GET /v1/health
func (h *HealthHandler) GetHealth(c *gin.Context) {
	dbStatus := "up"
	if err := h.db.Ping(); err != nil {
		dbStatus = "down"
	}
	utils.Success(c, 200, "OK", gin.H{"database": dbStatus})
}
