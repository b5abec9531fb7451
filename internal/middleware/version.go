package middleware

import (
	"github.com/gofiber/fiber/v2"
)

// VersionLocal is the context key holding the API version requested by the client
const VersionLocal = "apiVersion"

// VersionMiddleware reads the X-Api-Version header, stores it in context and echoes
// the version answered with on the response
func VersionMiddleware(current string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		version := c.Get("X-Api-Version", current)

		// Support version aliases
		switch version {
		case "1", "1.0":
			version = "1.0.0"
		}

		c.Locals(VersionLocal, version)
		c.Set("X-Api-Version", current)

		return c.Next()
	}
}
