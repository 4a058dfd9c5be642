package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/ojas8taori/trash-taste-ai/pkg/utils"
)

// DefaultUserID is the implicit "current user" when no token is
// presented. The demo SPA runs without a login flow.
const DefaultUserID = 1

// OptionalAuthMiddleware validates a bearer token when present and sets
// "userId" in the context. Without a (valid) token the demo user is
// assumed; no request is ever rejected here.
func OptionalAuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Set("userId", DefaultUserID)

		authHeader := c.GetHeader("Authorization")
		if authHeader != "" {
			parts := strings.Split(authHeader, " ")
			if len(parts) == 2 && parts[0] == "Bearer" {
				if claims, err := utils.ValidateToken(parts[1]); err == nil {
					c.Set("userId", claims.UserID)
				}
			}
		}

		c.Next()
	}
}

// CurrentUserID returns the resolved user for this request.
func CurrentUserID(c *gin.Context) int {
	if v, ok := c.Get("userId"); ok {
		if id, ok := v.(int); ok {
			return id
		}
	}
	return DefaultUserID
}
