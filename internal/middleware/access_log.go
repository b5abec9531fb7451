package middleware

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/localnerve/starwars-api/internal/types"
	"github.com/sirupsen/logrus"
)

// AccessLog logs one structured entry per request.
// Server errors are logged at error level, client errors at warn level.
func AccessLog(log *logrus.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		chainErr := c.Next()

		status := c.Response().StatusCode()
		if chainErr != nil {
			// The error handler runs after this middleware returns
			status = fiber.StatusInternalServerError
			var apiErr *types.APIError
			var fiberErr *fiber.Error
			if errors.As(chainErr, &apiErr) {
				status = apiErr.StatusCode
			} else if errors.As(chainErr, &fiberErr) {
				status = fiberErr.Code
			}
		}

		entry := log.WithFields(logrus.Fields{
			"request_id": c.Locals(requestid.ConfigDefault.ContextKey),
			"method":     c.Method(),
			"path":       c.Path(),
			"status":     status,
			"latency_ms": time.Since(start).Milliseconds(),
			"ip":         c.IP(),
		})
		if chainErr != nil {
			entry = entry.WithError(chainErr)
		}

		switch {
		case status >= fiber.StatusInternalServerError:
			entry.Error("request failed")
		case status >= fiber.StatusBadRequest:
			entry.Warn("request rejected")
		default:
			entry.Info("request handled")
		}

		return chainErr
	}
}
