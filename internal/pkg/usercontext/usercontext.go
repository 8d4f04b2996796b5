package usercontext

import "github.com/gofiber/fiber/v2"

// Locals key the middleware stores the context under
const KeyUserContext = "USER_CONTEXT"

// UserContext represents the caller of a request
type UserContext struct {
	IsAdmin bool `json:"is_admin"`
}

// GetUserContext retrieves the user context from fiber context
// Returns an anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx, ok := c.Locals(KeyUserContext).(UserContext); ok {
		return ctx
	}
	return UserContext{}
}

// IsAdmin checks if the current caller is a logged-in admin
func IsAdmin(c *fiber.Ctx) bool {
	return GetUserContext(c).IsAdmin
}
