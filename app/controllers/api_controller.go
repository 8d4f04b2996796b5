package controllers

import (
	"time"

	"github.com/gofiber/fiber/v2"
	log "github.com/sirupsen/logrus"

	"github.com/ManuelReschke/payu-starter/app/models"
	"github.com/ManuelReschke/payu-starter/app/repository"
)

const (
	apiDefaultLimit = 50
	apiMaxLimit     = 200
)

// APIController serves the JSON API for admins.
type APIController struct {
	repos *repository.Repositories
}

func NewAPIController(repos *repository.Repositories) *APIController {
	return &APIController{repos: repos}
}

type apiTransaction struct {
	ID          uint                  `json:"id"`
	OrderID     *string               `json:"order_id"`
	ExtOrderID  string                `json:"ext_order_id"`
	Amount      int64                 `json:"amount"`
	AmountText  string                `json:"amount_formatted"`
	Currency    string                `json:"currency"`
	Description string                `json:"description"`
	Outcome     models.PaymentOutcome `json:"outcome"`
	Status      string                `json:"status"`
	CreatedAt   string                `json:"created_at"`
}

// HandleListTransactions returns one page of the ledger, newest first.
func (ac *APIController) HandleListTransactions(c *fiber.Ctx) error {
	page := c.QueryInt("page", 1)
	if page < 1 {
		page = 1
	}
	limit := c.QueryInt("limit", apiDefaultLimit)
	if limit < 1 {
		limit = apiDefaultLimit
	} else if limit > apiMaxLimit {
		limit = apiMaxLimit
	}

	txs, err := ac.repos.Transaction.List((page-1)*limit, limit)
	if err != nil {
		log.WithError(err).Error("api: failed to list transactions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to list transactions"})
	}
	total, err := ac.repos.Transaction.Count()
	if err != nil {
		log.WithError(err).Error("api: failed to count transactions")
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "internal_server_error", "message": "Failed to count transactions"})
	}

	items := make([]apiTransaction, 0, len(txs))
	for _, tx := range txs {
		items = append(items, apiTransaction{
			ID:          tx.ID,
			OrderID:     tx.OrderID,
			ExtOrderID:  tx.ExtOrderID,
			Amount:      tx.Amount,
			AmountText:  tx.FormattedAmount(),
			Currency:    tx.Currency,
			Description: tx.Description,
			Outcome:     tx.Outcome,
			Status:      tx.Status,
			CreatedAt:   tx.CreatedAt.UTC().Format(time.RFC3339),
		})
	}

	return c.JSON(fiber.Map{
		"data": items,
		"meta": fiber.Map{
			"page":  page,
			"limit": limit,
			"total": total,
		},
	})
}
