package middleware

import (
	"sync"

	"github.com/gofiber/fiber/v2"
	"golang.org/x/time/rate"
)

// PublicRateLimit throttles unauthenticated endpoints (the contact form) per
// client IP. Limiters are kept in-process; the map is bounded by the small
// set of IPs hitting the public site between restarts.
func PublicRateLimit(r rate.Limit, burst int) fiber.Handler {
	var mu sync.Mutex
	limiters := make(map[string]*rate.Limiter)

	return func(c *fiber.Ctx) error {
		ip := c.IP()

		mu.Lock()
		limiter, ok := limiters[ip]
		if !ok {
			limiter = rate.NewLimiter(r, burst)
			limiters[ip] = limiter
		}
		mu.Unlock()

		if !limiter.Allow() {
			return c.Status(fiber.StatusTooManyRequests).JSON(fiber.Map{
				"message": "Too many requests",
				"error":   "Please try again later",
			})
		}
		return c.Next()
	}
}
