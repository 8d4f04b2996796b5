package router

import (
	"strings"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/csrf"
	"github.com/gofiber/fiber/v2/middleware/limiter"

	"github.com/ManuelReschke/payu-starter/app/controllers"
	"github.com/ManuelReschke/payu-starter/internal/pkg/constants"
	"github.com/ManuelReschke/payu-starter/internal/pkg/env"
)

func (h HttpRouter) registerCSRFProtectedRoutes(app *fiber.App) {
	csrfConf := csrf.Config{
		KeyLookup:      "form:_csrf",
		ContextKey:     "csrf",
		CookieName:     "csrf_",
		CookieSameSite: "Lax",
		Expiration:     1 * time.Hour,
		CookieSecure:   !env.IsDev(),
		Next: func(c *fiber.Ctx) bool {
			return strings.HasPrefix(c.Path(), "/api/") || c.Path() == constants.NotifyRoute
		},
	}

	// Throttles password guessing and order spam
	postLimiter := limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Minute,
		Next: func(c *fiber.Ctx) bool {
			return c.Method() != fiber.MethodPost
		},
	})

	group := app.Group("", csrf.New(csrfConf))
	group.Get(constants.PublicRoute, controllers.HandleHome)
	group.Get(constants.PayRoute, controllers.HandlePayForm)
	group.Post(constants.PayRoute, postLimiter, controllers.HandlePay)

	group.Get(constants.AdminLoginRoute, controllers.HandleAdminLoginPage)
	group.Post(constants.AdminLoginRoute, postLimiter, controllers.HandleAdminLogin)

	h.registerAdminRoutes(group)
}
