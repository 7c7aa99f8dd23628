package auth

import (
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/errors"
	"github.com/o6b7/travelbond/internal/logger"
	"go.uber.org/zap"
)

// Middleware rejects requests without a valid bearer token and stores
// user_id, is_admin and user in the gin context
func (s *Service) Middleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		token := bearerToken(c)
		if token == "" {
			abort(c, errors.Unauthorized("no token provided"))
			return
		}

		user, err := s.ValidateToken(c.Request.Context(), token)
		if err != nil {
			logger.Log.Debug("Token rejected", zap.Error(err))
			abort(c, errors.Unauthorized("invalid token"))
			return
		}

		c.Set("user_id", user.ID)
		c.Set("is_admin", user.IsAdmin)
		c.Set("user", user)
		c.Next()
	}
}

// OptionalMiddleware identifies the caller when a valid token is sent and
// lets anonymous requests through otherwise
func (s *Service) OptionalMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		if token := bearerToken(c); token != "" {
			if user, err := s.ValidateToken(c.Request.Context(), token); err == nil {
				c.Set("user_id", user.ID)
				c.Set("is_admin", user.IsAdmin)
				c.Set("user", user)
			}
		}
		c.Next()
	}
}

// RequireAdmin must run after Middleware
func RequireAdmin() gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.GetString("user_id") == "" {
			abort(c, errors.Unauthorized("user not authenticated"))
			return
		}
		if !c.GetBool("is_admin") {
			abort(c, errors.Forbidden("admin access required"))
			return
		}
		c.Next()
	}
}

func bearerToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if header == "" {
		return ""
	}
	if len(header) > 7 && strings.EqualFold(header[:7], "Bearer ") {
		return strings.TrimSpace(header[7:])
	}
	return ""
}

func abort(c *gin.Context, apiErr *errors.APIError) {
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
