package http

import (
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"
	"golang.org/x/time/rate"

	apperrors "github.com/allisson/vetdesk/internal/errors"
	"github.com/allisson/vetdesk/internal/httputil"
)

const (
	limiterSweepInterval = 5 * time.Minute
	limiterIdleTTL       = time.Hour
)

// limiterStore holds one token bucket per key. Idle buckets are swept while serving
// requests, at most once per sweep interval.
type limiterStore struct {
	mu        sync.Mutex
	limiters  map[string]*limiterEntry
	rps       float64
	burst     int
	lastSweep time.Time
	now       func() time.Time
}

type limiterEntry struct {
	limiter    *rate.Limiter
	lastAccess time.Time
}

func newLimiterStore(rps float64, burst int) *limiterStore {
	return &limiterStore{
		limiters: make(map[string]*limiterEntry),
		rps:      rps,
		burst:    burst,
		now:      time.Now,
	}
}

func (s *limiterStore) get(key string) *rate.Limiter {
	s.mu.Lock()
	defer s.mu.Unlock()

	now := s.now()
	if now.Sub(s.lastSweep) >= limiterSweepInterval {
		for k, entry := range s.limiters {
			if now.Sub(entry.lastAccess) > limiterIdleTTL {
				delete(s.limiters, k)
			}
		}
		s.lastSweep = now
	}

	entry, ok := s.limiters[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(rate.Limit(s.rps), s.burst)}
		s.limiters[key] = entry
	}
	entry.lastAccess = now
	return entry.limiter
}

func (s *limiterStore) size() int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return len(s.limiters)
}

// RateLimitMiddleware enforces per-moderator rate limiting on authenticated requests.
// Must run after AuthenticationMiddleware. Rejected requests get 429 with Retry-After.
func RateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)

	return func(c *gin.Context) {
		moderator, ok := GetModerator(c.Request.Context())
		if !ok {
			logger.Error("rate limit middleware: no authenticated moderator in context")
			httputil.HandleErrorGin(c, apperrors.ErrUnauthorized, logger)
			c.Abort()
			return
		}

		if !allow(c, store.get(moderator.ID.String())) {
			logger.Debug("rate limit exceeded", slog.String("moderator_id", moderator.ID.String()))
			return
		}

		c.Next()
	}
}

// PublicRateLimitMiddleware enforces per-IP rate limiting on unauthenticated endpoints
// (token issuance and supervision request submission).
func PublicRateLimitMiddleware(rps float64, burst int, logger *slog.Logger) gin.HandlerFunc {
	store := newLimiterStore(rps, burst)

	return func(c *gin.Context) {
		clientIP := c.ClientIP()

		if !allow(c, store.get(clientIP)) {
			logger.Debug("public rate limit exceeded",
				slog.String("client_ip", clientIP),
				slog.String("path", c.Request.URL.Path))
			return
		}

		c.Next()
	}
}

// allow consumes one token or writes the 429 response and aborts.
func allow(c *gin.Context, limiter *rate.Limiter) bool {
	if limiter.Allow() {
		return true
	}

	reservation := limiter.Reserve()
	retryAfter := int(reservation.Delay().Seconds()) + 1
	reservation.Cancel()

	c.Header("Retry-After", fmt.Sprintf("%d", retryAfter))
	c.JSON(http.StatusTooManyRequests, gin.H{
		"error":   "rate_limit_exceeded",
		"message": "Too many requests. Please retry after the specified delay.",
	})
	c.Abort()
	return false
}
