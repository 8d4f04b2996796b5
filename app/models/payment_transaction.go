package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentOutcome classifies a recorded payment attempt.
type PaymentOutcome string

const (
	OutcomeSuccess        PaymentOutcome = "success"
	OutcomeRejected       PaymentOutcome = "rejected"
	OutcomeTransportError PaymentOutcome = "transport_error"
	OutcomeMalformed      PaymentOutcome = "malformed"
)

// StatusSuccess is the status text of a successful attempt.
const StatusSuccess = "SUCCESS"

// PaymentTransaction is one ledger entry. Rows are only ever inserted.
type PaymentTransaction struct {
	ID          uint           `gorm:"primaryKey" json:"id"`
	OrderID     *string        `gorm:"type:varchar(64);index" json:"order_id"`
	ExtOrderID  string         `gorm:"type:varchar(64);index" json:"ext_order_id"`
	Amount      int64          `gorm:"not null" json:"amount"`
	Currency    string         `gorm:"type:varchar(3);not null;default:'PLN'" json:"currency"`
	Description string         `gorm:"type:varchar(255)" json:"description"`
	Outcome     PaymentOutcome `gorm:"type:varchar(20);not null;index" json:"outcome"`
	Status      string         `gorm:"type:text" json:"status"`
	CreatedAt   time.Time      `gorm:"autoCreateTime;index" json:"created_at"`
}

// OrderIDString returns the gateway order id or an empty string.
func (t PaymentTransaction) OrderIDString() string {
	if t.OrderID == nil {
		return ""
	}
	return *t.OrderID
}

// FormattedAmount renders minor units as a major-unit amount, e.g. "12.34 PLN".
func (t PaymentTransaction) FormattedAmount() string {
	return FormatMinorUnits(t.Amount, t.Currency)
}

// FormatMinorUnits renders an amount in minor units with two decimals.
func FormatMinorUnits(amount int64, currency string) string {
	s := decimal.New(amount, -2).StringFixed(2)
	if currency == "" {
		return s
	}
	return s + " " + currency
}
