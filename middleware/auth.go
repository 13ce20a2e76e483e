package middleware

import (
	"net/http"
	"strings"

	"burger-shop/models"
	"burger-shop/utils"

	"github.com/gin-gonic/gin"
)

func abortWith(c *gin.Context, status int, message string, err error) {
	resp := models.ErrorResponse{Success: false, Message: message}
	if err != nil {
		resp.Error = err.Error()
	}
	c.AbortWithStatusJSON(status, resp)
}

// AuthMiddleware validates the bearer token and stores the caller's identity on the context.
func AuthMiddleware(secret string) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			abortWith(c, http.StatusUnauthorized, "Authorization header required", nil)
			return
		}

		token, ok := strings.CutPrefix(header, "Bearer ")
		if !ok || token == "" || strings.Contains(token, " ") {
			abortWith(c, http.StatusUnauthorized, "Invalid authorization header format", nil)
			return
		}

		claims, err := utils.ValidateToken(secret, token)
		if err != nil {
			abortWith(c, http.StatusUnauthorized, "Invalid or expired token", err)
			return
		}

		c.Set(utils.ContextUserID, claims.UserID)
		c.Set(utils.ContextUserEmail, claims.Email)
		c.Set(utils.ContextUserRole, claims.Role)
		c.Next()
	}
}

// AdminMiddleware must run after AuthMiddleware.
func AdminMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		switch c.GetString(utils.ContextUserRole) {
		case models.RoleAdmin:
			c.Next()
		case "":
			abortWith(c, http.StatusForbidden, "User role not found", nil)
		default:
			abortWith(c, http.StatusForbidden, "Access denied. Admin role required", nil)
		}
	}
}
