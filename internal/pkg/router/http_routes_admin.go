package router

import (
	"github.com/gofiber/fiber/v2"

	"github.com/ManuelReschke/payu-starter/app/controllers"
	"github.com/ManuelReschke/payu-starter/internal/pkg/constants"
	"github.com/ManuelReschke/payu-starter/internal/pkg/middleware"
)

func (h HttpRouter) registerAdminRoutes(router fiber.Router) {
	router.Get(constants.AdminRoute, middleware.RequireAdmin, controllers.HandleAdminSettings)
	router.Post(constants.AdminRoute, middleware.RequireAdmin, controllers.HandleAdminSettingsUpdate)
	router.Get(constants.AdminTxRoute, middleware.RequireAdmin, controllers.HandleAdminTransactions)
	router.Get(constants.AdminNotifyRoute, middleware.RequireAdmin, controllers.HandleAdminNotifications)
	router.Post(constants.AdminArchiveRoute, middleware.RequireAdmin, controllers.HandleAdminArchive)
}
