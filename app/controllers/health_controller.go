package controllers

import (
	"sort"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
)

// HealthCheck reports whether one dependency is reachable.
type HealthCheck func() error

type HealthController struct {
	checks map[string]HealthCheck
}

func NewHealthController(checks map[string]HealthCheck) *HealthController {
	return &HealthController{checks: checks}
}

// HandleHealth runs every check and answers 503 if any of them fails.
func (hc *HealthController) HandleHealth(c *fiber.Ctx) error {
	names := make([]string, 0, len(hc.checks))
	for name := range hc.checks {
		names = append(names, name)
	}
	sort.Strings(names)

	status := fiber.StatusOK
	results := fiber.Map{}
	for _, name := range names {
		if err := hc.checks[name](); err != nil {
			log.WithError(err).WithField("check", name).Warn("health check failed")
			results[name] = "error"
			status = fiber.StatusServiceUnavailable
			continue
		}
		results[name] = "ok"
	}

	overall := "ok"
	if status != fiber.StatusOK {
		overall = "degraded"
	}
	return c.Status(status).JSON(fiber.Map{
		"status": overall,
		"checks": results,
	})
}
