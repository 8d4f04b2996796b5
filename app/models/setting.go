package models

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
)

// Setting keys used by the application.
const (
	SettingPayUPosID        = "PAYU_POS_ID"
	SettingPayUClientSecret = "PAYU_CLIENT_SECRET"
	SettingPayUSecondKey    = "PAYU_SECOND_KEY"
	SettingAppBaseURL       = "APP_BASE_URL"
	SettingAdminPassword    = "ADMIN_PASSWORD"
)

// DefaultAppBaseURL is used when APP_BASE_URL has not been configured.
const DefaultAppBaseURL = "http://localhost:8000"

// Setting represents a system setting
type Setting struct {
	ID        uint      `gorm:"primaryKey" json:"id"`
	Key       string    `gorm:"column:setting_key;size:191;not null;uniqueIndex" json:"key" validate:"required,min=1,max=191"`
	Value     string    `gorm:"type:text" json:"value"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

// PayUSettings is the operator-editable gateway configuration.
type PayUSettings struct {
	PosID        string `json:"pos_id" validate:"omitempty,max=64"`
	ClientSecret string `json:"client_secret" validate:"omitempty,max=255"`
	SecondKey    string `json:"second_key" validate:"omitempty,max=255"`
	AppBaseURL   string `json:"app_base_url" validate:"omitempty,url"`
}

var validate = validator.New()

// Normalize trims user input and applies defaults.
func (s *PayUSettings) Normalize() {
	s.PosID = strings.TrimSpace(s.PosID)
	s.ClientSecret = strings.TrimSpace(s.ClientSecret)
	s.SecondKey = strings.TrimSpace(s.SecondKey)
	s.AppBaseURL = strings.TrimRight(strings.TrimSpace(s.AppBaseURL), "/")
	if s.AppBaseURL == "" {
		s.AppBaseURL = DefaultAppBaseURL
	}
}

// Validate validates the settings
func (s *PayUSettings) Validate() error {
	return validate.Struct(s)
}

// Configured reports whether both gateway credentials are present.
func (s PayUSettings) Configured() bool {
	return s.PosID != "" && s.ClientSecret != ""
}
