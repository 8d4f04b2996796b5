package repository

import (
	"errors"

	"github.com/ManuelReschke/payu-starter/app/models"
	"gorm.io/gorm"
)

type transactionRepository struct {
	db *gorm.DB
}

// NewTransactionRepository creates a ledger repository backed by GORM.
func NewTransactionRepository(db *gorm.DB) TransactionRepository {
	return &transactionRepository{db: db}
}

// Append inserts a new ledger entry. Existing rows are never touched.
func (r *transactionRepository) Append(tx *models.PaymentTransaction) error {
	if tx == nil {
		return errors.New("transaction is required")
	}
	if tx.ID != 0 {
		return errors.New("ledger entries are append-only")
	}
	if tx.Currency == "" {
		tx.Currency = "PLN"
	}
	return r.db.Create(tx).Error
}

// ListAll returns every entry, newest first. The id breaks ties between rows
// created within the same timestamp resolution.
func (r *transactionRepository) ListAll() ([]models.PaymentTransaction, error) {
	var txs []models.PaymentTransaction
	err := r.db.Order("created_at DESC").Order("id DESC").Find(&txs).Error
	return txs, err
}

// List returns a page of entries, newest first.
func (r *transactionRepository) List(offset, limit int) ([]models.PaymentTransaction, error) {
	var txs []models.PaymentTransaction
	err := r.db.Order("created_at DESC").Order("id DESC").Offset(offset).Limit(limit).Find(&txs).Error
	return txs, err
}

func (r *transactionRepository) Count() (int64, error) {
	var count int64
	err := r.db.Model(&models.PaymentTransaction{}).Count(&count).Error
	return count, err
}

// CountByOutcome returns the number of entries per outcome kind.
func (r *transactionRepository) CountByOutcome() (map[models.PaymentOutcome]int64, error) {
	var rows []struct {
		Outcome models.PaymentOutcome
		Total   int64
	}
	err := r.db.Model(&models.PaymentTransaction{}).
		Select("outcome, COUNT(*) AS total").
		Group("outcome").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}
	out := make(map[models.PaymentOutcome]int64, len(rows))
	for _, row := range rows {
		out[row.Outcome] = row.Total
	}
	return out, nil
}
