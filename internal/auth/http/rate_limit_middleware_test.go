package http

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strconv"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/goleak"
)

func TestMain(m *testing.M) {
	goleak.VerifyTestMain(m)
}

func newRateLimitedRouter(ctx context.Context, rps float64, burst int) *gin.Engine {
	gin.SetMode(gin.TestMode)
	logger := slog.New(slog.NewTextHandler(io.Discard, nil))

	router := gin.New()
	router.Use(RateLimitMiddleware(ctx, rps, burst, logger))
	router.GET("/ping", func(c *gin.Context) {
		c.String(http.StatusOK, "pong")
	})
	return router
}

func ping(router *gin.Engine, remoteAddr string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/ping", nil)
	req.RemoteAddr = remoteAddr
	router.ServeHTTP(w, req)
	return w
}

func TestRateLimitMiddleware_BlocksAfterBurst(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := newRateLimitedRouter(ctx, 0.5, 2)

	for i := 0; i < 2; i++ {
		assert.Equal(t, http.StatusOK, ping(router, "10.0.0.1:1234").Code)
	}

	w := ping(router, "10.0.0.1:1234")
	require.Equal(t, http.StatusTooManyRequests, w.Code)
	retryAfter, err := strconv.Atoi(w.Header().Get("Retry-After"))
	require.NoError(t, err)
	assert.GreaterOrEqual(t, retryAfter, 1)
	assert.Contains(t, w.Body.String(), "rate_limit_exceeded")
}

func TestRateLimitMiddleware_IndependentPerIP(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	router := newRateLimitedRouter(ctx, 0.5, 1)

	assert.Equal(t, http.StatusOK, ping(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusTooManyRequests, ping(router, "10.0.0.1:1234").Code)
	assert.Equal(t, http.StatusOK, ping(router, "10.0.0.2:1234").Code)
}

func TestRateLimiterStore_Sweep(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}
	now := time.Now()

	store.getLimiter("old", now.Add(-2*time.Hour))
	store.getLimiter("fresh", now)
	store.sweep(now.Add(-time.Hour))

	_, oldFound := store.limiters.Load("old")
	_, freshFound := store.limiters.Load("fresh")
	assert.False(t, oldFound)
	assert.True(t, freshFound)
}

func TestRateLimiterStore_ReusesLimiter(t *testing.T) {
	store := &rateLimiterStore{rps: 1, burst: 1}
	first := store.getLimiter("ip", time.Now())
	second := store.getLimiter("ip", time.Now())
	assert.Same(t, first, second)
}
