package middleware

import (
	"time"

	"careerlink/internal/pkg/response"

	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/limiter"
)

// LoginRateLimiter allows perMinute attempts per client IP in any one minute
// window. A non-positive limit disables it.
func LoginRateLimiter(perMinute int) fiber.Handler {
	if perMinute <= 0 {
		return func(c fiber.Ctx) error { return c.Next() }
	}
	return limiter.New(limiter.Config{
		Max:               perMinute,
		Expiration:        time.Minute,
		LimiterMiddleware: limiter.SlidingWindow{},
		KeyGenerator: func(c fiber.Ctx) string {
			return c.IP()
		},
		LimitReached: func(c fiber.Ctx) error {
			return NewAppError(fiber.StatusTooManyRequests, response.MessageTooManyRequests, nil, nil)
		},
	})
}
