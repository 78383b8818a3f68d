package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"

	"github.com/moaz779/Task-Workflow-Manager/utils"
)

// AuthMiddleware verifies the bearer token and puts the caller's user id into
// the request context. Any failure ends the request with 401 before a handler
// touches the store.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {

		authHeader := c.GetHeader("Authorization")

		// Check header exists
		if authHeader == "" {
			utils.AbortError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Authorization header required")
			return
		}

		// Check Bearer format
		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			utils.AbortError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid authorization format")
			return
		}

		tokenString := parts[1]

		// Parse token
		token, err := jwt.Parse(
			tokenString,
			func(token *jwt.Token) (interface{}, error) {
				return utils.JwtSecret(), nil
			},
		)

		if err != nil || !token.Valid {
			utils.AbortError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token")
			return
		}

		// Extract claims safely
		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			utils.AbortError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token claims")
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			utils.AbortError(c, http.StatusUnauthorized, utils.CodeUnauthorized, "Invalid token claims")
			return
		}

		c.Set("user_id", userID)
		c.Next()
	}
}
