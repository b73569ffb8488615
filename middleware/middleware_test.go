package middleware

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zaptest/observer"
)

func init() {
	gin.SetMode(gin.TestMode)
}

func newLimitedRouter(t *testing.T, store *RateLimiterStore, trusted []string) *gin.Engine {
	t.Helper()
	r := gin.New()
	require.NoError(t, r.SetTrustedProxies(trusted))
	r.Use(RateLimitMiddleware(store))
	r.GET("/", func(c *gin.Context) { c.Status(http.StatusOK) })
	return r
}

func hitFrom(r *gin.Engine, remoteAddr, forwardedFor string) int {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.RemoteAddr = remoteAddr
	if forwardedFor != "" {
		req.Header.Set("X-Forwarded-For", forwardedFor)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w.Code
}

func TestRateLimitMiddleware(t *testing.T) {
	r := newLimitedRouter(t, NewRateLimiterStore(2), nil)

	assert.Equal(t, http.StatusOK, hitFrom(r, "1.1.1.1:1000", ""))
	assert.Equal(t, http.StatusOK, hitFrom(r, "1.1.1.1:1001", ""))
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "1.1.1.1:1002", ""))
	assert.Equal(t, http.StatusOK, hitFrom(r, "2.2.2.2:1000", ""), "limits are per IP")
}

func TestRateLimitIgnoresForwardedForFromUntrustedPeer(t *testing.T) {
	store := NewRateLimiterStore(2)
	r := newLimitedRouter(t, store, nil)

	allowed := 0
	for i := 0; i < 100; i++ {
		forged := fmt.Sprintf("198.51.100.%d", i)
		if hitFrom(r, "203.0.113.5:4000", forged) == http.StatusOK {
			allowed++
		}
	}
	assert.Equal(t, 2, allowed)
	assert.Equal(t, 1, store.Len(), "forged headers must not create buckets")
}

func TestRateLimitHonoursTrustedProxy(t *testing.T) {
	store := NewRateLimiterStore(1)
	r := newLimitedRouter(t, store, []string{"10.0.0.0/8"})

	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.2:80", "198.51.100.1"))
	assert.Equal(t, http.StatusTooManyRequests, hitFrom(r, "10.0.0.3:80", "198.51.100.1"))
	assert.Equal(t, http.StatusOK, hitFrom(r, "10.0.0.2:80", "198.51.100.2"))
	assert.Equal(t, 2, store.Len())
}

func TestRateLimiterSweepEvictsIdleBuckets(t *testing.T) {
	now := time.Date(2024, 5, 1, 12, 0, 0, 0, time.UTC)
	store := NewRateLimiterStore(2)
	store.now = func() time.Time { return now }

	store.getLimiter("192.0.2.1")
	now = now.Add(5 * time.Minute)
	store.getLimiter("192.0.2.2")
	require.Equal(t, 2, store.Len())

	now = now.Add(6 * time.Minute)
	assert.Equal(t, 1, store.Sweep(10*time.Minute))
	assert.Equal(t, 1, store.Len())

	now = now.Add(5 * time.Minute)
	assert.Equal(t, 1, store.Sweep(10*time.Minute))
	assert.Equal(t, 0, store.Len())
}

func TestRateLimiterJanitorStopsWithContext(t *testing.T) {
	store := NewRateLimiterStore(2)
	store.getLimiter("192.0.2.1")

	ctx, cancel := context.WithCancel(context.Background())
	store.StartJanitor(ctx, 10*time.Millisecond, 0, zap.NewNop())
	assert.Eventually(t, func() bool { return store.Len() == 0 }, time.Second, 5*time.Millisecond)
	cancel()
}

func TestRateLimitDisabled(t *testing.T) {
	r := newLimitedRouter(t, NewRateLimiterStore(0), nil)

	for i := 0; i < 50; i++ {
		require.Equal(t, http.StatusOK, hitFrom(r, "192.0.2.7:5555", ""))
	}
}

func TestRequestLoggerSetsContextLogger(t *testing.T) {
	core, logs := observer.New(zap.InfoLevel)
	r := gin.New()
	r.Use(RequestLogger(zap.New(core)))
	r.GET("/ping", func(c *gin.Context) {
		l, ok := c.Get(ContextLoggerKey)
		require.True(t, ok)
		l.(*zap.Logger).Info("inside")
		c.Status(http.StatusTeapot)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping", nil))
	require.Equal(t, http.StatusTeapot, w.Code)

	entries := logs.All()
	require.Len(t, entries, 2)
	assert.Equal(t, "inside", entries[0].Message)
	assert.Equal(t, "/ping", entries[0].ContextMap()["path"])
	assert.Equal(t, "192.0.2.1", entries[0].ContextMap()["ip"])
	assert.Equal(t, "Request completed", entries[1].Message)
	assert.EqualValues(t, http.StatusTeapot, entries[1].ContextMap()["status"])
}

func TestBodyLimit(t *testing.T) {
	r := gin.New()
	r.Use(BodyLimit(16))
	r.POST("/", func(c *gin.Context) {
		_, err := io.ReadAll(c.Request.Body)
		if err != nil {
			c.Status(http.StatusRequestEntityTooLarge)
			return
		}
		c.Status(http.StatusOK)
	})

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader("small")))
	assert.Equal(t, http.StatusOK, w.Code)

	w = httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodPost, "/", strings.NewReader(strings.Repeat("x", 64))))
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)

	// Unknown length is caught while reading.
	req := httptest.NewRequest(http.MethodPost, "/", io.NopCloser(strings.NewReader(strings.Repeat("x", 64))))
	req.ContentLength = -1
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	assert.Equal(t, http.StatusRequestEntityTooLarge, w.Code)
}
