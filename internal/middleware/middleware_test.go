package middleware

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/o6b7/travelbond/internal/cache"
	apierrors "github.com/o6b7/travelbond/internal/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryCounter struct {
	mu      sync.Mutex
	values  map[string]int64
	expires map[string]time.Duration
	ttls    map[string]time.Duration
	failGet bool
}

func newMemoryCounter() *memoryCounter {
	return &memoryCounter{
		values:  map[string]int64{},
		expires: map[string]time.Duration{},
		ttls:    map[string]time.Duration{},
	}
}

func (m *memoryCounter) GetInt(_ context.Context, key string) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.failGet {
		return 0, errors.New("connection reset")
	}
	v, ok := m.values[key]
	if !ok {
		return 0, cache.ErrCacheMiss
	}
	return v, nil
}

func (m *memoryCounter) IncrBy(_ context.Context, key string, increment int64) (int64, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.values[key] += increment
	return m.values[key], nil
}

func (m *memoryCounter) Expire(_ context.Context, key string, ttl time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.expires[key] = ttl
	return nil
}

// TTL reports an overridden remaining lifetime, or -1 like Redis for a key without one
func (m *memoryCounter) TTL(_ context.Context, key string) (time.Duration, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if ttl, ok := m.ttls[key]; ok {
		return ttl, nil
	}
	return -1, nil
}

func newRouter(handlers ...gin.HandlerFunc) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(handlers...)
	r.GET("/test", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok", "request_id": c.GetString("request_id")})
	})
	return r
}

func get(r http.Handler, header map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, "/test", nil)
	for k, v := range header {
		req.Header.Set(k, v)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware(t *testing.T) {
	counter := newMemoryCounter()
	r := newRouter(RateLimitMiddleware(counter, 3, time.Minute))

	for i := 0; i < 3; i++ {
		assert.Equal(t, http.StatusOK, get(r, nil).Code, "request %d", i+1)
	}

	w := get(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "60", w.Header().Get("Retry-After"))
	assert.Contains(t, w.Body.String(), "RATE_LIMITED")

	require.Len(t, counter.expires, 1)
	for _, ttl := range counter.expires {
		assert.Equal(t, time.Minute, ttl)
	}
}

func TestRateLimitMiddleware_RetryAfterUsesRemainingWindow(t *testing.T) {
	counter := newMemoryCounter()
	r := newRouter(RateLimitMiddleware(counter, 1, time.Minute))

	require.Equal(t, http.StatusOK, get(r, nil).Code)
	for key := range counter.values {
		counter.ttls[key] = 12500 * time.Millisecond
	}

	w := get(r, nil)
	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "13", w.Header().Get("Retry-After"))

	var body apierrors.APIError
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &body))
	assert.Equal(t, apierrors.ErrRateLimited, body.Code)
	assert.Equal(t, "rate limit exceeded", body.Message)
	assert.Equal(t, "retry after 13 seconds", body.Details)
}

func TestRateLimitMiddleware_CounterFailure(t *testing.T) {
	counter := newMemoryCounter()
	counter.failGet = true
	r := newRouter(RateLimitMiddleware(counter, 3, time.Minute))

	w := get(r, nil)
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestRedisRateLimitMiddleware_NoRedis(t *testing.T) {
	r := newRouter(RedisRateLimitMiddleware(1, time.Minute))

	assert.Equal(t, http.StatusOK, get(r, nil).Code)
	assert.Equal(t, http.StatusOK, get(r, nil).Code)
}

func TestRequestIDMiddleware(t *testing.T) {
	r := newRouter(RequestIDMiddleware())

	w := get(r, nil)
	generated := w.Header().Get(RequestIDHeader)
	assert.NotEmpty(t, generated)
	assert.Contains(t, w.Body.String(), generated)

	w = get(r, map[string]string{RequestIDHeader: "abc-123"})
	assert.Equal(t, "abc-123", w.Header().Get(RequestIDHeader))
}

func TestMetricsAndLoggerMiddleware(t *testing.T) {
	r := newRouter(RequestIDMiddleware(), GinLoggerMiddleware(), MetricsMiddleware(), TracingMiddleware("travelbond-test"))

	w := get(r, nil)
	assert.Equal(t, http.StatusOK, w.Code)
}
