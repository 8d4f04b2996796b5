package controllers

import "github.com/gofiber/fiber/v2"

// Adapter functions for the router

func HandleHome(c *fiber.Ctx) error {
	return paymentController.HandleHome(c)
}

func HandlePayForm(c *fiber.Ctx) error {
	return paymentController.HandlePayForm(c)
}

func HandlePay(c *fiber.Ctx) error {
	return paymentController.HandlePay(c)
}

func HandleReturn(c *fiber.Ctx) error {
	return paymentController.HandleReturn(c)
}

func HandlePayUNotify(c *fiber.Ctx) error {
	return notifyController.HandleNotify(c)
}

func HandleAdminLoginPage(c *fiber.Ctx) error {
	return authController.HandleLoginPage(c)
}

func HandleAdminLogin(c *fiber.Ctx) error {
	return authController.HandleLogin(c)
}

func HandleAdminLogout(c *fiber.Ctx) error {
	return authController.HandleLogout(c)
}

// HandleAdminSettings - Adapter for settings page
func HandleAdminSettings(c *fiber.Ctx) error {
	return adminController.HandleSettings(c)
}

// HandleAdminSettingsUpdate - Adapter for settings update
func HandleAdminSettingsUpdate(c *fiber.Ctx) error {
	return adminController.HandleSettingsUpdate(c)
}

func HandleAdminTransactions(c *fiber.Ctx) error {
	return adminController.HandleTransactions(c)
}

func HandleAdminNotifications(c *fiber.Ctx) error {
	return adminController.HandleNotifications(c)
}

func HandleAdminArchive(c *fiber.Ctx) error {
	return adminController.HandleArchive(c)
}

func HandleAPITransactions(c *fiber.Ctx) error {
	return apiController.HandleListTransactions(c)
}

func HandleHealth(c *fiber.Ctx) error {
	return healthController.HandleHealth(c)
}
