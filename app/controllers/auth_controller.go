package controllers

import (
	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/ManuelReschke/payu-starter/app/models"
	"github.com/ManuelReschke/payu-starter/app/repository"
	"github.com/ManuelReschke/payu-starter/internal/pkg/constants"
	"github.com/ManuelReschke/payu-starter/internal/pkg/session"
	"github.com/ManuelReschke/payu-starter/internal/pkg/usercontext"
)

// AuthController handles the admin login.
type AuthController struct {
	repos *repository.Repositories
}

func NewAuthController(repos *repository.Repositories) *AuthController {
	return &AuthController{repos: repos}
}

func (ac *AuthController) HandleLoginPage(c *fiber.Ctx) error {
	if usercontext.IsAdmin(c) {
		return c.Redirect(constants.AdminRoute, fiber.StatusSeeOther)
	}
	stored, err := ac.repos.Setting.GetValue(models.SettingAdminPassword)
	if err != nil {
		log.WithError(err).Error("failed to load admin password")
		return renderError(c, fiber.StatusInternalServerError, "Failed to load settings")
	}
	return render(c, "admin/login", "Admin Login", fiber.Map{"FirstLogin": stored == ""})
}

// HandleLogin checks the password against the stored bcrypt hash. While no
// password is stored the submitted one becomes the admin password.
func (ac *AuthController) HandleLogin(c *fiber.Ctx) error {
	password := c.FormValue("password")

	stored, err := ac.repos.Setting.GetValue(models.SettingAdminPassword)
	if err != nil {
		log.WithError(err).Error("failed to load admin password")
		return renderError(c, fiber.StatusInternalServerError, "Failed to load settings")
	}

	if stored == "" && password != "" {
		hash, err := models.HashPassword(password)
		if err != nil {
			log.WithError(err).Error("failed to hash admin password")
			return renderError(c, fiber.StatusInternalServerError, "Failed to set admin password")
		}
		if err := ac.repos.Setting.SetValue(models.SettingAdminPassword, hash); err != nil {
			log.WithError(err).Error("failed to store admin password")
			return renderError(c, fiber.StatusInternalServerError, "Failed to set admin password")
		}
		log.Info("admin password initialized on first login")
		stored = hash
	}

	if stored == "" || !models.CheckPasswordHash(password, stored) {
		log.WithField("ip", c.IP()).Warn("admin login failed")
		c.Status(fiber.StatusUnauthorized)
		return render(c, "admin/login", "Admin Login", fiber.Map{"Failed": true})
	}

	if err := session.LoginAdmin(c); err != nil {
		log.WithError(err).Error("failed to store admin session")
		return renderError(c, fiber.StatusInternalServerError, "Failed to start session")
	}
	return c.Redirect(constants.AdminRoute, fiber.StatusSeeOther)
}

func (ac *AuthController) HandleLogout(c *fiber.Ctx) error {
	if err := session.Destroy(c); err != nil {
		log.WithError(err).Warn("failed to destroy admin session")
	}
	return c.Redirect(constants.AdminLoginRoute, fiber.StatusSeeOther)
}
