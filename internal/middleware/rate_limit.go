package middleware

import (
	"context"
	"sync"
	"time"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// visitor pairs a client's limiter with its last request time for eviction.
type visitor struct {
	limiter  *rate.Limiter
	lastSeen time.Time
}

// RateLimiter allows maxRequests per window for each client IP. Idle entries are
// evicted until ctx is done.
func RateLimiter(ctx context.Context, maxRequests int, window time.Duration) fiber.Handler {
	if maxRequests <= 0 || window <= 0 {
		return func(c *fiber.Ctx) error { return c.Next() }
	}

	store := make(map[string]*visitor)
	var mu sync.Mutex

	go func() {
		expiry := window * 3
		if expiry < time.Minute {
			expiry = time.Minute
		}
		ticker := time.NewTicker(time.Minute)
		defer ticker.Stop()
		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				mu.Lock()
				for ip, v := range store {
					if time.Since(v.lastSeen) > expiry {
						delete(store, ip)
					}
				}
				mu.Unlock()
			}
		}
	}()

	r := rate.Every(window / time.Duration(maxRequests))

	return func(c *fiber.Ctx) error {
		key := c.IP()

		mu.Lock()
		v, exists := store[key]
		if !exists {
			v = &visitor{limiter: rate.NewLimiter(r, maxRequests)}
			store[key] = v
		}
		v.lastSeen = time.Now()
		mu.Unlock()

		if !v.limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(ErrorResponse{
				Code:    "RATE_LIMITED",
				Message: "Too many requests",
				Status:  fiber.StatusTooManyRequests,
			})
		}
		return c.Next()
	}
}
