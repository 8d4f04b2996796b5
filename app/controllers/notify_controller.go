package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/ManuelReschke/payu-starter/internal/pkg/payment"
	"github.com/ManuelReschke/payu-starter/internal/pkg/payu"
)

// NotifyController receives PayU order notifications.
type NotifyController struct {
	notifications *payment.Notifications
}

func NewNotifyController(notifications *payment.Notifications) *NotifyController {
	return &NotifyController{notifications: notifications}
}

// HandleNotify answers 200 "OK" so PayU stops redelivering, unless the body
// is unusable or the signature is wrong.
func (nc *NotifyController) HandleNotify(c *fiber.Ctx) error {
	_, err := nc.notifications.Handle(c.UserContext(), c.Body(), c.Get(payu.SignatureHeader))
	switch {
	case err == nil:
		return c.Status(fiber.StatusOK).SendString("OK")
	case errors.Is(err, payment.ErrInvalidNotification):
		return c.Status(fiber.StatusBadRequest).SendString("Bad Request")
	case errors.Is(err, payment.ErrInvalidSignature):
		return c.Status(fiber.StatusUnauthorized).SendString("Invalid signature")
	default:
		log.WithError(err).Error("failed to handle payu notification")
		return c.Status(fiber.StatusInternalServerError).SendString("Internal Server Error")
	}
}
