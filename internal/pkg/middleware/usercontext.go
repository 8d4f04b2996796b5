package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/payu-starter/internal/pkg/session"
	"github.com/ManuelReschke/payu-starter/internal/pkg/usercontext"
)

// UserContextMiddleware resolves the admin flag from the session once per request
func UserContextMiddleware(c *fiber.Ctx) error {
	c.Locals(usercontext.KeyUserContext, usercontext.UserContext{
		IsAdmin: session.IsAdmin(c),
	})
	return c.Next()
}
