package handler

import (
	"github.com/gin-gonic/gin"

	"github.com/estampaviva/estampa-api/internal/service"
	"github.com/estampaviva/estampa-api/internal/utils"
)

// AuthHandler handles admin authentication endpoints.
type AuthHandler struct {
	authService *service.AdminAuthService
}

// NewAuthHandler constructs an AuthHandler.
func NewAuthHandler(authService *service.AdminAuthService) *AuthHandler {
	return &AuthHandler{authService: authService}
}

// LoginRequest carries admin credentials.
type LoginRequest struct {
	Email    string `json:"email" binding:"required,email"`
	Password string `json:"password" binding:"required"`
}

// Login handles POST /v1/admin/auth/login
func (h *AuthHandler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		utils.Error(c, 400, "INVALID_REQUEST", "Invalid request body")
		return
	}

	result, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		utils.Error(c, 401, "INVALID_CREDENTIALS", "Invalid email or password")
		return
	}
	utils.Success(c, 200, "Login successful", result)
}
