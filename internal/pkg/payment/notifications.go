package payment

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"

	log "github.com/sirupsen/logrus"

	"github.com/ManuelReschke/payu-starter/app/models"
	"github.com/ManuelReschke/payu-starter/internal/pkg/metrics"
	"github.com/ManuelReschke/payu-starter/internal/pkg/payu"
)

// NotificationStore persists inbound notifications.
type NotificationStore interface {
	CreateIfNotExists(n *models.PaymentNotification) (bool, error)
}

// CredentialSource exposes the current gateway settings.
type CredentialSource interface {
	Credentials() models.PayUSettings
}

// Notifications records order status notifications posted by PayU. The
// ledger is never touched.
type Notifications struct {
	store NotificationStore
	creds CredentialSource
}

func NewNotifications(store NotificationStore, creds CredentialSource) *Notifications {
	return &Notifications{store: store, creds: creds}
}

// Handle parses, verifies and stores one notification body. Redeliveries of
// an identical body are accepted without a second row. With a second key
// configured a bad signature is stored but reported as ErrInvalidSignature.
func (h *Notifications) Handle(ctx context.Context, body []byte, signatureHeader string) (*models.PaymentNotification, error) {
	n, err := payu.ParseNotification(body)
	if err != nil {
		metrics.NotificationsTotal.WithLabelValues("invalid").Inc()
		return nil, fmt.Errorf("%w: %v", ErrInvalidNotification, err)
	}

	secondKey := h.creds.Credentials().SecondKey
	valid := secondKey != "" && payu.VerifyNotificationSignature(body, signatureHeader, secondKey)

	sum := sha256.Sum256(body)
	record := &models.PaymentNotification{
		OrderID:        n.Order.OrderID,
		ExtOrderID:     n.Order.ExtOrderID,
		OrderStatus:    n.Order.Status,
		PayloadHash:    hex.EncodeToString(sum[:]),
		Payload:        string(body),
		Signature:      signatureHeader,
		SignatureValid: valid,
		Accepted:       valid || secondKey == "",
	}

	created, err := h.store.CreateIfNotExists(record)
	if err != nil {
		return nil, fmt.Errorf("failed to store notification: %w", err)
	}

	entry := log.WithFields(log.Fields{
		"order_id":        record.OrderID,
		"order_status":    record.OrderStatus,
		"signature_valid": valid,
		"duplicate":       !created,
	})
	if !record.Accepted {
		metrics.NotificationsTotal.WithLabelValues("bad_signature").Inc()
		entry.Warn("payu notification with invalid signature")
		return record, ErrInvalidSignature
	}
	if !created {
		metrics.NotificationsTotal.WithLabelValues("duplicate").Inc()
	} else {
		metrics.NotificationsTotal.WithLabelValues("accepted").Inc()
	}
	entry.Info("payu notification received")
	return record, nil
}
