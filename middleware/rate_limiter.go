package middleware

import (
	"context"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"golang.org/x/time/rate"
)

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiterStore holds one token bucket per client IP.
type RateLimiterStore struct {
	limiters map[string]*limiterEntry
	mu       sync.Mutex
	every    rate.Limit
	burst    int
	now      func() time.Time
}

// NewRateLimiterStore allows perMinute requests per IP, all of which may
// arrive in a single burst. perMinute <= 0 disables limiting.
func NewRateLimiterStore(perMinute int) *RateLimiterStore {
	s := &RateLimiterStore{
		limiters: make(map[string]*limiterEntry),
		now:      time.Now,
	}
	if perMinute > 0 {
		s.every = rate.Every(time.Minute / time.Duration(perMinute))
		s.burst = perMinute
	}
	return s
}

// getLimiter returns the rate limiter for a given IP, creating one if it doesn't exist.
func (s *RateLimiterStore) getLimiter(ip string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	entry, exists := s.limiters[ip]
	if !exists {
		entry = &limiterEntry{limiter: rate.NewLimiter(s.every, s.burst)}
		s.limiters[ip] = entry
	}
	entry.lastSeen = s.now()
	return entry.limiter
}

// Len reports how many client IPs currently have a bucket.
func (s *RateLimiterStore) Len() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// Sweep drops buckets not used for longer than idle and returns how many
// were removed. A bucket idle for a full minute has refilled, so forgetting
// it does not loosen the limit.
func (s *RateLimiterStore) Sweep(idle time.Duration) int {
	s.mu.Lock()
	defer s.mu.Unlock()

	cutoff := s.now().Add(-idle)
	removed := 0
	for ip, entry := range s.limiters {
		if entry.lastSeen.Before(cutoff) {
			delete(s.limiters, ip)
			removed++
		}
	}
	return removed
}

// StartJanitor sweeps idle buckets every interval until ctx is cancelled.
func (s *RateLimiterStore) StartJanitor(ctx context.Context, interval, idle time.Duration, logger *zap.Logger) {
	if interval <= 0 {
		return
	}
	if logger == nil {
		logger = zap.L()
	}
	go func() {
		ticker := time.NewTicker(interval)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				if n := s.Sweep(idle); n > 0 {
					logger.Debug("Evicted idle rate limiters", zap.Int("count", n))
				}
			}
		}
	}()
}

// RateLimitMiddleware limits requests per client IP as resolved by gin, so
// forwarding headers only count when the peer is a trusted proxy.
func RateLimitMiddleware(store *RateLimiterStore) gin.HandlerFunc {
	return func(c *gin.Context) {
		if store == nil || store.burst == 0 {
			c.Next()
			return
		}
		ip := c.ClientIP()
		if !store.getLimiter(ip).Allow() {
			requestLogger(c).Warn("Rate limit exceeded", zap.String("ip", ip))
			c.AbortWithStatusJSON(http.StatusTooManyRequests, gin.H{
				"success": false,
				"error":   "Rate limit exceeded. Try again later.",
			})
			return
		}
		c.Next()
	}
}
