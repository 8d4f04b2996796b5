package controllers

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/ManuelReschke/payu-starter/app/repository"
	"github.com/ManuelReschke/payu-starter/internal/pkg/constants"
	"github.com/ManuelReschke/payu-starter/internal/pkg/payment"
	"github.com/ManuelReschke/payu-starter/internal/pkg/security"
)

// PaymentController serves the public payment pages.
type PaymentController struct {
	workflow *payment.Workflow
	provider *payment.ClientProvider
	repos    *repository.Repositories
	secret   string
}

func NewPaymentController(workflow *payment.Workflow, provider *payment.ClientProvider, repos *repository.Repositories, secret string) *PaymentController {
	return &PaymentController{
		workflow: workflow,
		provider: provider,
		repos:    repos,
		secret:   secret,
	}
}

func (pc *PaymentController) HandleHome(c *fiber.Ctx) error {
	return render(c, "home", "", nil)
}

// HandlePayForm shows the payment form, or the setup page while PayU is unconfigured.
func (pc *PaymentController) HandlePayForm(c *fiber.Ctx) error {
	if pc.provider.Current() == nil {
		return render(c, "setup_required", "Setup Required", nil)
	}
	return render(c, "pay", "Create Payment", nil)
}

// HandlePay creates the order and sends the buyer to PayU with a 303.
func (pc *PaymentController) HandlePay(c *fiber.Ctx) error {
	redirect, err := pc.workflow.CreatePayment(c.UserContext(), payment.PaymentInput{
		Amount:      c.FormValue(constants.PaymentFormAmount),
		Description: c.FormValue(constants.PaymentFormDescKey),
		CustomerIP:  ClientIP(c),
	})
	if err != nil {
		return renderError(c, payment.HTTPStatus(err), paymentErrorMessage(err))
	}

	token, err := security.GenerateOrderToken(redirect.OrderID, redirect.ExtOrderID, constants.OrderCookieMaxAge*time.Second, pc.secret)
	if err != nil {
		// The payment already exists at PayU, so the buyer still gets redirected.
		log.WithError(err).WithField("order_id", redirect.OrderID).Warn("failed to sign order cookie")
	} else {
		c.Cookie(&fiber.Cookie{
			Name:     constants.OrderCookieName,
			Value:    token,
			MaxAge:   constants.OrderCookieMaxAge,
			HTTPOnly: true,
			SameSite: fiber.CookieSameSiteLaxMode,
		})
	}
	return c.Redirect(redirect.RedirectURI, fiber.StatusSeeOther)
}

// HandleReturn is the continue URL PayU sends the buyer back to.
func (pc *PaymentController) HandleReturn(c *fiber.Ctx) error {
	data := fiber.Map{"OrderID": "", "OrderStatus": ""}

	if raw := c.Cookies(constants.OrderCookieName); raw != "" {
		claims, err := security.VerifyOrderToken(raw, pc.secret)
		if err != nil {
			log.WithError(err).Debug("ignoring invalid order cookie")
		} else {
			data["OrderID"] = claims.OrderID
			latest, err := pc.repos.Notification.LatestByOrderID(claims.OrderID)
			if err != nil {
				log.WithError(err).WithField("order_id", claims.OrderID).Error("failed to load order notification")
			} else if latest != nil {
				data["OrderStatus"] = latest.OrderStatus
			}
		}
	}
	return render(c, "return", "Payment finished", data)
}

func paymentErrorMessage(err error) string {
	switch {
	case errors.Is(err, payment.ErrInvalidAmount):
		return "Invalid amount"
	case errors.Is(err, payment.ErrGatewayUnavailable):
		return "PayU credentials not set. Please configure in /admin."
	case errors.Is(err, payment.ErrGatewayCallFailed),
		errors.Is(err, payment.ErrGatewayRejected),
		errors.Is(err, payment.ErrMalformedGatewayResponse):
		return "PayU error: " + err.Error()
	default:
		return "The payment could not be recorded. Please try again later."
	}
}
