package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/estampaviva/estampa-api/internal/utils"
)

// JWTMiddleware guards admin routes with bearer-token authentication.
type JWTMiddleware struct{}

// NewJWTMiddleware constructs a JWTMiddleware.
func NewJWTMiddleware() *JWTMiddleware {
	return &JWTMiddleware{}
}

// Handle returns a Gin middleware that validates the admin JWT.
func (m *JWTMiddleware) Handle() gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader("Authorization")
		if authHeader == "" {
			utils.Error(c, 401, "UNAUTHORIZED", "Missing authorization header")
			c.Abort()
			return
		}

		parts := strings.SplitN(authHeader, " ", 2)
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.Error(c, 401, "UNAUTHORIZED", "Invalid authorization header")
			c.Abort()
			return
		}

		claims, err := utils.ValidateJWT(parts[1])
		if err != nil {
			utils.Error(c, 401, "INVALID_TOKEN", "Invalid or expired token")
			c.Abort()
			return
		}

		c.Set("user_id", claims.UserID)
		c.Set("email", claims.Email)
		c.Next()
	}
}
