package util

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/errors"
	"github.com/o6b7/travelbond/internal/logger"
	"go.uber.org/zap"
)

// RespondWithAPIError sends a structured API error response
func RespondWithAPIError(c *gin.Context, apiErr *errors.APIError) {
	fields := []zap.Field{
		zap.String("code", string(apiErr.Code)),
		zap.String("message", apiErr.Message),
		zap.String("field", apiErr.Field),
		zap.String("path", c.Request.URL.Path),
	}
	if requestID, ok := c.Get("request_id"); ok {
		if id, ok := requestID.(string); ok {
			fields = append(fields, logger.WithRequestID(id))
		}
	}

	if apiErr.Status >= http.StatusInternalServerError {
		logger.Log.Error("API error", append(fields, logger.WithStatus(apiErr.Status))...)
	} else if apiErr.Status >= http.StatusBadRequest {
		logger.Log.Warn("API error", fields...)
	}

	c.JSON(apiErr.Status, apiErr)
}

// RespondUnauthorized sends a 401 Unauthorized response
func RespondUnauthorized(c *gin.Context, message ...string) {
	msg := "user not authenticated"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	RespondWithAPIError(c, errors.Unauthorized(msg))
}

// RespondNotFound sends a 404 Not Found response
func RespondNotFound(c *gin.Context, resource string) {
	RespondWithAPIError(c, errors.NotFound(resource))
}

// RespondBadRequest sends a 400 Bad Request response
func RespondBadRequest(c *gin.Context, message string) {
	RespondWithAPIError(c, errors.BadRequest(message))
}

// RespondForbidden sends a 403 Forbidden response
func RespondForbidden(c *gin.Context, message ...string) {
	msg := "forbidden"
	if len(message) > 0 && message[0] != "" {
		msg = message[0]
	}
	RespondWithAPIError(c, errors.Forbidden(msg))
}

// RespondInternalError sends a 500 response and logs the underlying cause
func RespondInternalError(c *gin.Context, message string, err error) {
	if err != nil {
		logger.Log.Error(message, zap.Error(err), zap.String("path", c.Request.URL.Path))
	}
	RespondWithAPIError(c, errors.InternalError(message))
}

// RespondConflict sends a 409 Conflict response
func RespondConflict(c *gin.Context, message string) {
	RespondWithAPIError(c, errors.Conflict(message))
}

// RespondValidationError sends a 422 Unprocessable Entity response
func RespondValidationError(c *gin.Context, field, message string) {
	RespondWithAPIError(c, errors.ValidationError(field, message))
}
