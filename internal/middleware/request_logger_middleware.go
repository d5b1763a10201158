package middleware

import (
	"time"

	"github.com/fadilmartias/fairfound-coach/internal/logger"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

const RequestIDHeader = "X-Request-ID"

// RequestLogger tags every request with an id and logs its outcome.
func RequestLogger(log logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		id := c.Get(RequestIDHeader)
		if id == "" {
			id = uuid.NewString()
		}
		c.Set(RequestIDHeader, id)
		c.Locals("request_id", id)

		err := c.Next()

		fields := logger.Fields{
			"request_id": id,
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     c.Response().StatusCode(),
			"latency_ms": time.Since(start).Milliseconds(),
		}
		switch {
		case err != nil:
			log.WithError(err).Error("request failed", fields)
		case c.Response().StatusCode() >= fiber.StatusInternalServerError:
			log.Warn("request completed with server error", fields)
		default:
			log.Debug("request completed", fields)
		}
		return err
	}
}
