package repository

import (
	"errors"

	"github.com/ManuelReschke/payu-starter/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type notificationRepository struct {
	db *gorm.DB
}

// NewNotificationRepository creates a notification repository backed by GORM.
func NewNotificationRepository(db *gorm.DB) NotificationRepository {
	return &notificationRepository{db: db}
}

// CreateIfNotExists inserts the notification unless one with the same payload
// hash exists. It reports whether a row was created. An accepted redelivery
// of a body stored as rejected marks the stored row accepted.
func (r *notificationRepository) CreateIfNotExists(n *models.PaymentNotification) (bool, error) {
	var created bool
	err := r.db.Transaction(func(tx *gorm.DB) error {
		res := tx.Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "payload_hash"}},
			DoNothing: true,
		}).Create(n)
		if res.Error != nil {
			return res.Error
		}
		created = res.RowsAffected > 0
		if created || !n.Accepted {
			return nil
		}
		return tx.Model(&models.PaymentNotification{}).
			Where("payload_hash = ? AND accepted = ?", n.PayloadHash, false).
			Updates(map[string]any{
				"accepted":        true,
				"signature_valid": n.SignatureValid,
				"signature":       n.Signature,
			}).Error
	})
	if err != nil {
		return false, err
	}
	return created, nil
}

func (r *notificationRepository) ListRecent(limit int) ([]models.PaymentNotification, error) {
	var out []models.PaymentNotification
	err := r.db.Order("created_at DESC").Order("id DESC").Limit(limit).Find(&out).Error
	return out, err
}

// LatestByOrderID returns the most recent accepted notification for an
// order, or nil when there is none.
func (r *notificationRepository) LatestByOrderID(orderID string) (*models.PaymentNotification, error) {
	var n models.PaymentNotification
	err := r.db.Where("order_id = ? AND accepted = ?", orderID, true).
		Order("created_at DESC").Order("id DESC").
		First(&n).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return &n, nil
}

// LatestStatusByOrderIDs maps order ids to the status of their most recent
// accepted notification.
func (r *notificationRepository) LatestStatusByOrderIDs(orderIDs []string) (map[string]string, error) {
	out := make(map[string]string, len(orderIDs))
	if len(orderIDs) == 0 {
		return out, nil
	}
	var rows []models.PaymentNotification
	err := r.db.Where("order_id IN ? AND accepted = ?", orderIDs, true).
		Order("created_at ASC").Order("id ASC").
		Find(&rows).Error
	if err != nil {
		return nil, err
	}
	for _, row := range rows {
		out[row.OrderID] = row.OrderStatus
	}
	return out, nil
}
