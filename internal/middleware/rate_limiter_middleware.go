package middleware

import (
	"time"

	"github.com/fadilmartias/fairfound-coach/internal/util"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/limiter"
)

// RateLimiter limits requests per client IP over a sliding window.
func RateLimiter(max int, expiration time.Duration) fiber.Handler {
	return newLimiter(max, expiration, func(c *fiber.Ctx) string {
		return c.IP()
	})
}

// ResourceRateLimiter limits requests per client IP and :id route parameter,
// so one session or mentee saturating an AI route leaves the others usable.
func ResourceRateLimiter(max int, expiration time.Duration) fiber.Handler {
	return newLimiter(max, expiration, func(c *fiber.Ctx) string {
		return c.IP() + "|" + c.Route().Path + "|" + c.Params("id")
	})
}

func newLimiter(max int, expiration time.Duration, key func(*fiber.Ctx) string) fiber.Handler {
	if max == 0 {
		max = 50
	}
	if expiration == 0 {
		expiration = time.Minute
	}
	return limiter.New(limiter.Config{
		Max:          max,
		Expiration:   expiration,
		KeyGenerator: key,
		LimitReached: func(c *fiber.Ctx) error {
			return util.ErrorResponse(c, util.ErrorResponseFormat{
				Code:      fiber.StatusTooManyRequests,
				ErrorCode: util.CodeRateLimited,
				Message:   "Too many requests, slow down",
			})
		},
		LimiterMiddleware: limiter.SlidingWindow{},
	})
}
