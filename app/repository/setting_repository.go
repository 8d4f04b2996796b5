package repository

import (
	"errors"
	"fmt"

	"github.com/ManuelReschke/payu-starter/app/models"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

// settingRepository implements the SettingRepository interface
type settingRepository struct {
	db *gorm.DB
}

// NewSettingRepository creates a new setting repository instance
func NewSettingRepository(db *gorm.DB) SettingRepository {
	return &settingRepository{db: db}
}

// GetValue retrieves a specific setting value by key
func (r *settingRepository) GetValue(key string) (string, error) {
	var setting models.Setting
	// Correct column is `setting_key` (see gorm tag in models.Setting)
	err := r.db.Where("setting_key = ?", key).First(&setting).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", nil // Return empty string for non-existent settings
		}
		return "", err
	}
	return setting.Value, nil
}

// SetValue sets a specific setting value by key
func (r *settingRepository) SetValue(key, value string) error {
	return setValue(r.db, key, value)
}

func setValue(db *gorm.DB, key, value string) error {
	setting := models.Setting{Key: key, Value: value}
	return db.Clauses(clause.OnConflict{
		Columns:   []clause.Column{{Name: "setting_key"}},
		DoUpdates: clause.AssignmentColumns([]string{"value", "updated_at"}),
	}).Create(&setting).Error
}

// GetPayUSettings loads the gateway configuration.
func (r *settingRepository) GetPayUSettings() (models.PayUSettings, error) {
	var out models.PayUSettings
	fields := []struct {
		key string
		dst *string
	}{
		{models.SettingPayUPosID, &out.PosID},
		{models.SettingPayUClientSecret, &out.ClientSecret},
		{models.SettingPayUSecondKey, &out.SecondKey},
		{models.SettingAppBaseURL, &out.AppBaseURL},
	}
	for _, f := range fields {
		v, err := r.GetValue(f.key)
		if err != nil {
			return out, fmt.Errorf("failed to load setting %s: %w", f.key, err)
		}
		*f.dst = v
	}
	out.Normalize()
	return out, nil
}

// SavePayUSettings validates and persists the gateway configuration in one transaction.
func (r *settingRepository) SavePayUSettings(settings models.PayUSettings) error {
	settings.Normalize()
	if err := settings.Validate(); err != nil {
		return fmt.Errorf("validation failed: %w", err)
	}

	values := map[string]string{
		models.SettingPayUPosID:        settings.PosID,
		models.SettingPayUClientSecret: settings.ClientSecret,
		models.SettingPayUSecondKey:    settings.SecondKey,
		models.SettingAppBaseURL:       settings.AppBaseURL,
	}
	return r.db.Transaction(func(tx *gorm.DB) error {
		for key, value := range values {
			if err := setValue(tx, key, value); err != nil {
				return fmt.Errorf("failed to save setting %s: %w", key, err)
			}
		}
		return nil
	})
}
