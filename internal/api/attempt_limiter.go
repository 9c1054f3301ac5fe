package api

import (
	"strings"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

const (
	loginAttemptBurst  = 5
	loginAttemptRate   = rate.Limit(1.0 / 60.0)
	limiterIdleTimeout = time.Hour
)

// attemptLimiter throttles failed attempts per key with a token bucket: each
// failure spends a token and tokens refill at the configured rate.
type attemptLimiter struct {
	mu       sync.Mutex
	limit    rate.Limit
	burst    int
	attempts map[string]*limiterEntry
}

type limiterEntry struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

func newAttemptLimiter(limit rate.Limit, burst int) *attemptLimiter {
	return &attemptLimiter{
		limit:    limit,
		burst:    burst,
		attempts: make(map[string]*limiterEntry),
	}
}

func (limiter *attemptLimiter) tooManyRecent(key string, now time.Time) bool {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	entry, ok := limiter.attempts[key]
	if !ok {
		return false
	}
	return entry.limiter.TokensAt(now) < 1
}

func (limiter *attemptLimiter) addFailure(key string, now time.Time) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()

	limiter.pruneLocked(now)
	entry, ok := limiter.attempts[key]
	if !ok {
		entry = &limiterEntry{limiter: rate.NewLimiter(limiter.limit, limiter.burst)}
		limiter.attempts[key] = entry
	}
	entry.limiter.AllowN(now, 1)
	entry.lastSeen = now
}

func (limiter *attemptLimiter) reset(key string) {
	limiter.mu.Lock()
	defer limiter.mu.Unlock()
	delete(limiter.attempts, key)
}

func (limiter *attemptLimiter) pruneLocked(now time.Time) {
	threshold := now.Add(-limiterIdleTimeout)
	for key, entry := range limiter.attempts {
		if entry.lastSeen.Before(threshold) {
			delete(limiter.attempts, key)
		}
	}
}

func requestLimiterKey(c *fiber.Ctx) string {
	key := strings.TrimSpace(c.IP())
	if key == "" {
		return "unknown"
	}
	return key
}
