// Package rayid provides request tracing middleware for Fiber.
package rayid

import (
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// HeaderName is the response header carrying the generated RayID.
const HeaderName = "X-Ray-Id"

// LocalsKey is the fiber locals key under which the RayID is stored.
const LocalsKey = "ray_id"

// New creates a middleware that assigns a unique RayID to every request.
// If the client supplied one, it is reused so traces can span services.
func New() fiber.Handler {
	return func(c *fiber.Ctx) error {
		rid := c.Get(HeaderName)
		if rid == "" {
			rid = uuid.NewString()
		}

		c.Locals(LocalsKey, rid)
		c.Set(HeaderName, rid)

		return c.Next()
	}
}
