package repository

import (
	"github.com/ManuelReschke/payu-starter/app/models"
	"gorm.io/gorm"
)

// SettingRepository is the key/value settings store. Missing keys read as "".
type SettingRepository interface {
	GetValue(key string) (string, error)
	SetValue(key, value string) error
	GetPayUSettings() (models.PayUSettings, error)
	SavePayUSettings(settings models.PayUSettings) error
}

// TransactionRepository is the append-only payment ledger.
type TransactionRepository interface {
	Append(tx *models.PaymentTransaction) error
	ListAll() ([]models.PaymentTransaction, error)
	List(offset, limit int) ([]models.PaymentTransaction, error)
	Count() (int64, error)
	CountByOutcome() (map[models.PaymentOutcome]int64, error)
}

// NotificationRepository stores inbound gateway notifications.
type NotificationRepository interface {
	CreateIfNotExists(n *models.PaymentNotification) (bool, error)
	ListRecent(limit int) ([]models.PaymentNotification, error)
	LatestByOrderID(orderID string) (*models.PaymentNotification, error)
	LatestStatusByOrderIDs(orderIDs []string) (map[string]string, error)
}

// Repositories holds all repository instances
type Repositories struct {
	Setting      SettingRepository
	Transaction  TransactionRepository
	Notification NotificationRepository
}

// NewRepositories creates a new instance of all repositories
func NewRepositories(db *gorm.DB) *Repositories {
	return &Repositories{
		Setting:      NewSettingRepository(db),
		Transaction:  NewTransactionRepository(db),
		Notification: NewNotificationRepository(db),
	}
}
