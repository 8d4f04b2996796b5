package middleware

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/payu-starter/internal/pkg/usercontext"
)

// RequireAdmin ensures a logged-in admin; redirects to the login page otherwise.
func RequireAdmin(c *fiber.Ctx) error {
	if !usercontext.IsAdmin(c) {
		return c.Redirect("/admin/login", fiber.StatusSeeOther)
	}
	return c.Next()
}

// RequireAPIAdmin ensures a logged-in admin for API routes and returns JSON 401 instead of redirect.
func RequireAPIAdmin(c *fiber.Ctx) error {
	if !usercontext.IsAdmin(c) {
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error":   "unauthorized",
			"message": "admin login required",
		})
	}
	return c.Next()
}
