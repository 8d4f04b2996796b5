package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/payu-starter/app/controllers"
	"github.com/ManuelReschke/payu-starter/internal/pkg/constants"
)

func (h HttpRouter) registerPublicRoutes(app *fiber.App) {
	// PayU posts notifications server-to-server, so no CSRF token here
	app.Post(constants.NotifyRoute, controllers.HandlePayUNotify)

	app.Get(constants.ReturnRoute, controllers.HandleReturn)
	app.Get(constants.AdminLogoutRoute, controllers.HandleAdminLogout)
	app.Get(constants.HealthRoute, controllers.HandleHealth)
}
