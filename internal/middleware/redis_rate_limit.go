package middleware

import (
	"context"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/cache"
	apierrors "github.com/o6b7/travelbond/internal/errors"
	"github.com/o6b7/travelbond/internal/logger"
	"github.com/o6b7/travelbond/internal/metrics"
	"go.uber.org/zap"
)

// RateCounter is the subset of the Redis client the rate limiter needs
type RateCounter interface {
	GetInt(ctx context.Context, key string) (int64, error)
	IncrBy(ctx context.Context, key string, increment int64) (int64, error)
	Expire(ctx context.Context, key string, ttl time.Duration) error
	TTL(ctx context.Context, key string) (time.Duration, error)
}

// RedisRateLimitMiddleware limits each client IP to maxRequests per window using the
// process-wide Redis client. Without Redis every request is let through.
func RedisRateLimitMiddleware(maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rc := cache.GetRedisClient()
		if rc == nil {
			c.Next()
			return
		}
		rateLimit(c, rc, maxRequests, window)
	}
}

// RateLimitMiddleware is RedisRateLimitMiddleware over an explicit counter
func RateLimitMiddleware(counter RateCounter, maxRequests int, window time.Duration) gin.HandlerFunc {
	return func(c *gin.Context) {
		rateLimit(c, counter, maxRequests, window)
	}
}

func rateLimit(c *gin.Context, counter RateCounter, maxRequests int, window time.Duration) {
	clientIP := c.ClientIP()
	key := fmt.Sprintf("rate_limit:%s", clientIP)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 2*time.Second)
	defer cancel()

	val, err := counter.GetInt(ctx, key)
	if err != nil && !errors.Is(err, cache.ErrCacheMiss) {
		// Fail closed: a broken limiter must not open the API
		logger.Log.Error("Rate limit check failed", logger.WithIP(clientIP), zap.Error(err))
		abortWithAPIError(c, apierrors.ServiceUnavailable("rate limiter"))
		return
	}

	if val >= int64(maxRequests) {
		logger.Log.Warn("Rate limit exceeded",
			logger.WithIP(clientIP),
			zap.Int("max_requests", maxRequests),
			zap.Int64("current_requests", val),
		)
		metrics.Get().RateLimitExceededTotal.WithLabelValues(c.FullPath(), c.Request.Method).Inc()

		retry := window
		if ttl, err := counter.TTL(ctx, key); err == nil && ttl > 0 {
			retry = ttl
		}
		seconds := int64(math.Ceil(retry.Seconds()))
		c.Header("Retry-After", strconv.FormatInt(seconds, 10))
		abortWithAPIError(c, apierrors.RateLimited("").WithDetails(fmt.Sprintf("retry after %d seconds", seconds)))
		return
	}

	newVal, err := counter.IncrBy(ctx, key, 1)
	if err != nil {
		logger.Log.Error("Rate limit increment failed", logger.WithIP(clientIP), zap.Error(err))
		abortWithAPIError(c, apierrors.ServiceUnavailable("rate limiter"))
		return
	}

	// First request of the window starts the clock
	if newVal == 1 {
		if err := counter.Expire(ctx, key, window); err != nil {
			logger.Log.Warn("Failed to set rate limit expiration", logger.WithIP(clientIP), zap.Error(err))
		}
	}

	c.Next()
}

func abortWithAPIError(c *gin.Context, apiErr *apierrors.APIError) {
	c.AbortWithStatusJSON(apiErr.Status, apiErr)
}
