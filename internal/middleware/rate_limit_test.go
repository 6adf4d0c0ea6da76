package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"os"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unreachableRedis returns a client whose every call errors, nothing
// listens on port 1.
func unreachableRedis() *redis.Client {
	return redis.NewClient(&redis.Options{Addr: "127.0.0.1:1", MaxRetries: -1})
}

func rateLimitTestRouter(limiter *RateLimiter, userID uuid.UUID) *gin.Engine {
	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/write", func(c *gin.Context) {
		c.Set("user_id", userID)
	}, limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})
	return router
}

func TestRateLimitMiddlewareMissingUser(t *testing.T) {
	limiter := NewWriteRateLimiter(unreachableRedis())

	gin.SetMode(gin.TestMode)
	router := gin.New()
	router.POST("/write", limiter.RateLimitMiddleware(), func(c *gin.Context) {
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))

	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestRateLimitMiddlewareFailsOpen(t *testing.T) {
	limiter := NewWriteRateLimiter(unreachableRedis())
	router := rateLimitTestRouter(limiter, uuid.New())

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))

	// a limiter backend failure must not fail the request
	assert.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "rate limit check failed", w.Header().Get("X-RateLimit-Error"))
	assert.Empty(t, w.Header().Get("X-RateLimit-Limit"))
}

func TestIsAllowedBackendDown(t *testing.T) {
	limiter := NewWriteRateLimiter(unreachableRedis())

	_, _, _, err := limiter.IsAllowed(context.Background(), "some-user")
	assert.Error(t, err)
}

// TestRateLimitMiddlewareOverLimit exercises the fixed window against real
// Redis. Skipped unless TEST_REDIS_URL is set, so the default test run
// needs no Redis server.
func TestRateLimitMiddlewareOverLimit(t *testing.T) {
	redisURL := os.Getenv("TEST_REDIS_URL")
	if redisURL == "" {
		t.Skip("set TEST_REDIS_URL to run rate limiter tests against Redis")
	}

	opts, err := redis.ParseURL(redisURL)
	require.NoError(t, err)

	limiter := NewRateLimiter(redis.NewClient(opts), RateLimitConfig{
		Window:    time.Minute,
		Limit:     2,
		KeyPrefix: "rate_limit:test:" + uuid.New().String(),
	})
	router := rateLimitTestRouter(limiter, uuid.New())

	for i := 0; i < 2; i++ {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))
		require.Equal(t, http.StatusOK, w.Code)
	}

	w := httptest.NewRecorder()
	router.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))

	assert.Equal(t, http.StatusTooManyRequests, w.Code)
	assert.Equal(t, "2", w.Header().Get("X-RateLimit-Limit"))
	assert.Equal(t, "0", w.Header().Get("X-RateLimit-Remaining"))
	assert.Contains(t, w.Body.String(), "rate limit exceeded")

	// a different user has their own window
	other := rateLimitTestRouter(limiter, uuid.New())
	w = httptest.NewRecorder()
	other.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/write", nil))
	assert.Equal(t, http.StatusOK, w.Code)
}
