package models

import "time"

// PaymentNotification stores an inbound gateway notification. Rows are
// deduplicated by payload hash since the gateway redelivers until it gets 200.
// SignatureValid is only true for verified signatures; Accepted is also true
// for unverified notifications when no second key is configured.
type PaymentNotification struct {
	ID             uint      `gorm:"primaryKey" json:"id"`
	OrderID        string    `gorm:"type:varchar(64);not null;index" json:"order_id"`
	ExtOrderID     string    `gorm:"type:varchar(64);index" json:"ext_order_id"`
	OrderStatus    string    `gorm:"type:varchar(32);not null" json:"order_status"`
	PayloadHash    string    `gorm:"type:varchar(64);not null;uniqueIndex" json:"payload_hash"`
	Payload        string    `gorm:"type:text;not null" json:"payload"`
	Signature      string    `gorm:"type:varchar(255)" json:"signature"`
	SignatureValid bool      `gorm:"default:false" json:"signature_valid"`
	Accepted       bool      `gorm:"default:false;index" json:"accepted"`
	CreatedAt      time.Time `gorm:"autoCreateTime;index" json:"created_at"`
}
