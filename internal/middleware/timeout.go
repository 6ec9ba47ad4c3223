package middleware

import (
	"context"
	"time"

	"github.com/gofiber/fiber/v2"
)

// RequestTimeout is a Fiber middleware that bounds how long a single request
// may spend in store and disk calls. The deadline travels through the user
// context into GORM and the blob store; a stalled backend fails the request
// instead of blocking it indefinitely.
func RequestTimeout(timeout time.Duration) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), timeout)
		defer cancel()

		c.SetUserContext(ctx)
		return c.Next()
	}
}
