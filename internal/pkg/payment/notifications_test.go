package payment

import (
	"context"
	"crypto/md5"
	"encoding/hex"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/payu-starter/app/models"
)

type memoryNotifications struct {
	byHash map[string]models.PaymentNotification
}

func (m *memoryNotifications) CreateIfNotExists(n *models.PaymentNotification) (bool, error) {
	if m.byHash == nil {
		m.byHash = map[string]models.PaymentNotification{}
	}
	if stored, ok := m.byHash[n.PayloadHash]; ok {
		if n.Accepted && !stored.Accepted {
			stored.Accepted = true
			stored.SignatureValid = n.SignatureValid
			m.byHash[n.PayloadHash] = stored
		}
		return false, nil
	}
	n.ID = uint(len(m.byHash) + 1)
	m.byHash[n.PayloadHash] = *n
	return true, nil
}

type staticCreds struct{ s models.PayUSettings }

func (c staticCreds) Credentials() models.PayUSettings { return c.s }

const notificationBody = `{"order":{"orderId":"ORD1","extOrderId":"ext-1","status":"COMPLETED","totalAmount":"1000","currencyCode":"PLN"}}`

func signMD5(body, key string) string {
	sum := md5.Sum([]byte(body + key))
	return "sender=checkout;signature=" + hex.EncodeToString(sum[:]) + ";algorithm=MD5;content=DOCUMENT"
}

func TestNotifications_AcceptsWithoutSecondKey(t *testing.T) {
	store := &memoryNotifications{}
	h := NewNotifications(store, staticCreds{})

	n, err := h.Handle(context.Background(), []byte(notificationBody), "")
	require.NoError(t, err)
	assert.Equal(t, "ORD1", n.OrderID)
	assert.Equal(t, "ext-1", n.ExtOrderID)
	assert.Equal(t, "COMPLETED", n.OrderStatus)
	assert.False(t, n.SignatureValid)
	assert.True(t, n.Accepted)
	assert.Len(t, n.PayloadHash, 64)
}

func TestNotifications_VerifiesSignature(t *testing.T) {
	store := &memoryNotifications{}
	h := NewNotifications(store, staticCreds{s: models.PayUSettings{SecondKey: "k2"}})

	n, err := h.Handle(context.Background(), []byte(notificationBody), signMD5(notificationBody, "k2"))
	require.NoError(t, err)
	assert.True(t, n.SignatureValid)
	assert.True(t, n.Accepted)
}

func TestNotifications_RejectsBadSignature(t *testing.T) {
	store := &memoryNotifications{}
	h := NewNotifications(store, staticCreds{s: models.PayUSettings{SecondKey: "k2"}})

	n, err := h.Handle(context.Background(), []byte(notificationBody), signMD5(notificationBody, "wrong"))
	assert.ErrorIs(t, err, ErrInvalidSignature)
	require.NotNil(t, n)
	assert.False(t, n.Accepted)
	assert.Len(t, store.byHash, 1)
}

func TestNotifications_RedeliveryAfterKeyFix(t *testing.T) {
	store := &memoryNotifications{}
	creds := &staticCreds{s: models.PayUSettings{SecondKey: "old"}}
	h := NewNotifications(store, creds)
	header := signMD5(notificationBody, "k2")

	_, err := h.Handle(context.Background(), []byte(notificationBody), header)
	assert.ErrorIs(t, err, ErrInvalidSignature)

	creds.s.SecondKey = "k2"
	n, err := h.Handle(context.Background(), []byte(notificationBody), header)
	require.NoError(t, err)
	assert.True(t, n.Accepted)

	require.Len(t, store.byHash, 1)
	for _, stored := range store.byHash {
		assert.True(t, stored.Accepted)
		assert.True(t, stored.SignatureValid)
	}
}

func TestNotifications_Duplicate(t *testing.T) {
	store := &memoryNotifications{}
	h := NewNotifications(store, staticCreds{})

	_, err := h.Handle(context.Background(), []byte(notificationBody), "")
	require.NoError(t, err)
	_, err = h.Handle(context.Background(), []byte(notificationBody), "")
	require.NoError(t, err)
	assert.Len(t, store.byHash, 1)
}

func TestNotifications_InvalidPayload(t *testing.T) {
	store := &memoryNotifications{}
	h := NewNotifications(store, staticCreds{})

	_, err := h.Handle(context.Background(), []byte("{"), "")
	assert.ErrorIs(t, err, ErrInvalidNotification)
	_, err = h.Handle(context.Background(), []byte(`{"order":{}}`), "")
	assert.ErrorIs(t, err, ErrInvalidNotification)
	assert.Empty(t, store.byHash)
}
