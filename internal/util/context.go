package util

import (
	"github.com/gin-gonic/gin"
)

// GetUserIDFromContext extracts the user ID set by the auth middleware.
// If the request is not authenticated it responds with 401 and returns false.
func GetUserIDFromContext(c *gin.Context) (string, bool) {
	userID, exists := c.Get("user_id")
	if !exists {
		RespondUnauthorized(c)
		return "", false
	}
	userIDStr, ok := userID.(string)
	if !ok || userIDStr == "" {
		RespondUnauthorized(c, "invalid user ID in context")
		return "", false
	}
	return userIDStr, true
}

// OptionalUserID returns the authenticated user ID, or "" for anonymous requests
func OptionalUserID(c *gin.Context) string {
	if userID, ok := c.Get("user_id"); ok {
		if s, ok := userID.(string); ok {
			return s
		}
	}
	return ""
}

// IsAdmin reports whether the auth middleware marked the caller as an admin
func IsAdmin(c *gin.Context) bool {
	return c.GetBool("is_admin")
}
