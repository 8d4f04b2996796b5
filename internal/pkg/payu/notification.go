package payu

import (
	"encoding/json"
	"errors"
	"fmt"
	"strings"
)

// ErrEmptyNotification is returned for a notification without an order id.
var ErrEmptyNotification = errors.New("payu notification has no order id")

// NotificationOrder is the order block of a PayU notification.
type NotificationOrder struct {
	OrderID     string `json:"orderId"`
	ExtOrderID  string `json:"extOrderId"`
	Status      string `json:"status"`
	TotalAmount string `json:"totalAmount"`
	Currency    string `json:"currencyCode"`
}

// Notification is the JSON body PayU posts to the notify URL.
type Notification struct {
	Order NotificationOrder `json:"order"`
}

// ParseNotification decodes a notification body.
func ParseNotification(body []byte) (*Notification, error) {
	var n Notification
	if err := json.Unmarshal(body, &n); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableResponse, err)
	}
	n.Order.OrderID = strings.TrimSpace(n.Order.OrderID)
	if n.Order.OrderID == "" {
		return nil, ErrEmptyNotification
	}
	return &n, nil
}
