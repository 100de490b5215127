package middleware

import (
	"context"

	"github.com/gin-gonic/gin"
)

// userIDKey is the key used to store the authenticated party's ID.
// Using a custom type prevents collisions.
const userIDKey = contextKey("userID")

// GetUserIDFromContext retrieves the authenticated party ID from the Gin
// context. It returns the ID and a boolean indicating if it was found.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userIDVal, exists := c.Get(string(userIDKey))
	if !exists {
		// check in the request context as well
		if v := c.Request.Context().Value(userIDKey); v != nil {
			if userID, ok := v.(string); ok {
				return userID, true
			}
		}
		return "", false
	}

	userID, ok := userIDVal.(string)
	if !ok {
		return "", false
	}
	return userID, true
}

// withUserID stores the authenticated party ID in both the gin context and
// the request context.
func withUserID(c *gin.Context, userID string) {
	c.Set(string(userIDKey), userID)
	ctx := context.WithValue(c.Request.Context(), userIDKey, userID)
	c.Request = c.Request.WithContext(ctx)
}
