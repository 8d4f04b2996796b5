package controllers

import (
	"errors"
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"
	"github.com/sujit-baniya/flash"

	"github.com/ManuelReschke/payu-starter/app/models"
	"github.com/ManuelReschke/payu-starter/app/repository"
	"github.com/ManuelReschke/payu-starter/internal/pkg/constants"
	"github.com/ManuelReschke/payu-starter/internal/pkg/payment"
	"github.com/ManuelReschke/payu-starter/internal/pkg/s3backup"
)

const (
	transactionsPageSize  = 50
	notificationsPageSize = 100
)

// AdminController handles the admin console using repository pattern
type AdminController struct {
	repos    *repository.Repositories
	provider *payment.ClientProvider
	archiver *s3backup.Archiver
}

// NewAdminController creates a new admin controller with repository dependencies
func NewAdminController(repos *repository.Repositories, provider *payment.ClientProvider, archiver *s3backup.Archiver) *AdminController {
	return &AdminController{
		repos:    repos,
		provider: provider,
		archiver: archiver,
	}
}

// transactionRow is a ledger entry prepared for display.
type transactionRow struct {
	ID                 uint
	OrderID            string
	Amount             string
	Description        string
	Status             string
	NotificationStatus string
	CreatedAt          string
}

// HandleSettings renders the gateway settings form
func (ac *AdminController) HandleSettings(c *fiber.Ctx) error {
	settings, err := ac.repos.Setting.GetPayUSettings()
	if err != nil {
		return ac.handleError(c, "Failed to get settings", err)
	}

	return render(c, "admin/settings", "Admin Settings", fiber.Map{
		"Settings":   settings,
		"Configured": ac.provider.Current() != nil,
	})
}

// HandleSettingsUpdate saves the settings and reloads the gateway client
func (ac *AdminController) HandleSettingsUpdate(c *fiber.Ctx) error {
	settings := models.PayUSettings{
		PosID:        c.FormValue("pos_id"),
		ClientSecret: c.FormValue("client_secret"),
		SecondKey:    c.FormValue("second_key"),
		AppBaseURL:   c.FormValue("app_base_url"),
	}

	fm := fiber.Map{
		"type": "error",
	}
	if err := ac.provider.Save(settings); err != nil {
		if errors.Is(err, payment.ErrInvalidSettings) {
			fm["message"] = "Invalid settings: APP_BASE_URL must be a valid URL"
			return flash.WithError(c, fm).Redirect(constants.AdminRoute)
		}
		return ac.handleError(c, "Failed to save settings", err)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": "Settings saved",
	}
	return flash.WithSuccess(c, fm).Redirect(constants.AdminRoute)
}

// HandleTransactions renders the ledger, newest first
func (ac *AdminController) HandleTransactions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	offset := (page - 1) * transactionsPageSize

	txs, err := ac.repos.Transaction.List(offset, transactionsPageSize)
	if err != nil {
		return ac.handleError(c, "Failed to get transactions", err)
	}
	total, err := ac.repos.Transaction.Count()
	if err != nil {
		return ac.handleError(c, "Failed to count transactions", err)
	}
	counts, err := ac.repos.Transaction.CountByOutcome()
	if err != nil {
		return ac.handleError(c, "Failed to count transactions", err)
	}

	orderIDs := make([]string, 0, len(txs))
	for _, tx := range txs {
		if id := tx.OrderIDString(); id != "" {
			orderIDs = append(orderIDs, id)
		}
	}
	statuses, err := ac.repos.Notification.LatestStatusByOrderIDs(orderIDs)
	if err != nil {
		// The ledger is still useful without notification statuses.
		log.WithError(err).Warn("failed to load notification statuses")
		statuses = map[string]string{}
	}

	rows := make([]transactionRow, 0, len(txs))
	for _, tx := range txs {
		rows = append(rows, transactionRow{
			ID:                 tx.ID,
			OrderID:            tx.OrderIDString(),
			Amount:             tx.FormattedAmount(),
			Description:        tx.Description,
			Status:             tx.Status,
			NotificationStatus: statuses[tx.OrderIDString()],
			CreatedAt:          tx.CreatedAt.Format("2006-01-02 15:04:05"),
		})
	}

	data := fiber.Map{
		"Rows":           rows,
		"Total":          total,
		"Counts":         counts,
		"ArchiveEnabled": ac.archiver != nil,
		"PrevPage":       0,
		"NextPage":       0,
	}
	if page > 1 {
		data["PrevPage"] = page - 1
	}
	if int64(offset+len(txs)) < total {
		data["NextPage"] = page + 1
	}
	return render(c, "admin/transactions", "Transactions", data)
}

// HandleNotifications renders the most recent notifications, rejected ones included
func (ac *AdminController) HandleNotifications(c *fiber.Ctx) error {
	notifications, err := ac.repos.Notification.ListRecent(notificationsPageSize)
	if err != nil {
		return ac.handleError(c, "Failed to get notifications", err)
	}
	return render(c, "admin/notifications", "Notifications", fiber.Map{
		"Notifications": notifications,
	})
}

// HandleArchive exports the ledger as CSV to the configured bucket
func (ac *AdminController) HandleArchive(c *fiber.Ctx) error {
	fm := fiber.Map{
		"type": "error",
	}
	if ac.archiver == nil {
		fm["message"] = "S3 archive is not enabled"
		return flash.WithError(c, fm).Redirect(constants.AdminTxRoute)
	}

	result, err := ac.archiver.Archive(c.UserContext())
	if err != nil {
		log.WithError(err).Error("ledger archive failed")
		fm["message"] = "Ledger archive failed"
		return flash.WithError(c, fm).Redirect(constants.AdminTxRoute)
	}

	fm = fiber.Map{
		"type":    "success",
		"message": fmt.Sprintf("Ledger archived to s3://%s/%s (%s bytes)", result.BucketName, result.ObjectKey, strconv.FormatInt(result.Size, 10)),
	}
	return flash.WithSuccess(c, fm).Redirect(constants.AdminTxRoute)
}

// handleError logs the error and redirects back to the settings page with a flash message
func (ac *AdminController) handleError(c *fiber.Ctx, message string, err error) error {
	log.WithError(err).WithField("path", c.Path()).Error(message)

	fm := fiber.Map{
		"type":    "error",
		"message": message,
	}
	// Avoid a redirect loop when the settings page itself fails
	if c.Path() == constants.AdminRoute && c.Method() == fiber.MethodGet {
		return renderError(c, fiber.StatusInternalServerError, message)
	}
	return flash.WithError(c, fm).Redirect(constants.AdminRoute)
}
