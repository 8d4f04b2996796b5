package controllers

import (
	"github.com/ManuelReschke/payu-starter/app/repository"
	"github.com/ManuelReschke/payu-starter/internal/pkg/payment"
	"github.com/ManuelReschke/payu-starter/internal/pkg/s3backup"
)

// Dependencies wires the controllers to the services they use.
type Dependencies struct {
	Repos         *repository.Repositories
	Provider      *payment.ClientProvider
	Workflow      *payment.Workflow
	Notifications *payment.Notifications
	Archiver      *s3backup.Archiver // nil when the S3 archive is disabled
	HealthChecks  map[string]HealthCheck
	Secret        string
}

var (
	paymentController *PaymentController
	notifyController  *NotifyController
	authController    *AuthController
	adminController   *AdminController
	apiController     *APIController
	healthController  *HealthController
)

// Initialize builds the global controller instances used by the handler adapters.
func Initialize(deps Dependencies) {
	paymentController = NewPaymentController(deps.Workflow, deps.Provider, deps.Repos, deps.Secret)
	notifyController = NewNotifyController(deps.Notifications)
	authController = NewAuthController(deps.Repos)
	adminController = NewAdminController(deps.Repos, deps.Provider, deps.Archiver)
	apiController = NewAPIController(deps.Repos)
	healthController = NewHealthController(deps.HealthChecks)
}
