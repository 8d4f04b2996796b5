package s3backup

import (
	"bytes"
	"context"
	"encoding/csv"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ManuelReschke/payu-starter/app/models"
)

type memoryUploader struct {
	key         string
	data        []byte
	contentType string
}

func (m *memoryUploader) Upload(_ context.Context, key string, data []byte, contentType string) (*UploadResult, error) {
	m.key, m.data, m.contentType = key, data, contentType
	return &UploadResult{BucketName: "b", ObjectKey: key, Size: int64(len(data)), ContentType: contentType}, nil
}

type staticLedger struct {
	txs []models.PaymentTransaction
	err error
}

func (s staticLedger) ListAll() ([]models.PaymentTransaction, error) { return s.txs, s.err }

func TestGetObjectKey(t *testing.T) {
	cfg := &Config{Prefix: "ledger"}
	at := time.Date(2026, 3, 7, 9, 5, 1, 0, time.UTC)
	assert.Equal(t, "ledger/2026/03/transactions-20260307T090501Z.csv", cfg.GetObjectKey(at))
}

func TestArchiver_Archive(t *testing.T) {
	orderID := "ORD1"
	created := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	ledger := staticLedger{txs: []models.PaymentTransaction{
		{ID: 2, OrderID: &orderID, ExtOrderID: "e2", Amount: 1234, Currency: "PLN", Description: "Book, paperback", Outcome: models.OutcomeSuccess, Status: "SUCCESS", CreatedAt: created},
		{ID: 1, ExtOrderID: "e1", Amount: 5, Currency: "PLN", Outcome: models.OutcomeTransportError, Status: "ERROR: timeout", CreatedAt: created},
	}}
	up := &memoryUploader{}
	a := NewArchiver(up, ledger, &Config{Prefix: "ledger"})
	a.now = func() time.Time { return created }

	res, err := a.Archive(context.Background())
	require.NoError(t, err)
	assert.Equal(t, "ledger/2026/01/transactions-20260102T030405Z.csv", res.ObjectKey)
	assert.Equal(t, "text/csv", up.contentType)

	rows, err := csv.NewReader(bytes.NewReader(up.data)).ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 3)
	assert.Equal(t, "id", rows[0][0])
	assert.Equal(t, []string{"2", "2026-01-02T03:04:05Z", "ORD1", "e2", "12.34", "PLN", "Book, paperback", "success", "SUCCESS"}, rows[1])
	assert.Equal(t, "", rows[2][2])
	assert.Equal(t, "0.05", rows[2][4])
}

func TestArchiver_LedgerError(t *testing.T) {
	a := NewArchiver(&memoryUploader{}, staticLedger{err: errors.New("db down")}, &Config{Prefix: "ledger"})
	_, err := a.Archive(context.Background())
	assert.Error(t, err)
}

func TestLoadConfig_RequiresFieldsWhenEnabled(t *testing.T) {
	t.Setenv("S3_ARCHIVE_ENABLED", "true")
	t.Setenv("S3_ACCESS_KEY_ID", "")
	_, err := LoadConfig()
	assert.Error(t, err)

	t.Setenv("S3_ACCESS_KEY_ID", "id")
	t.Setenv("S3_SECRET_ACCESS_KEY", "secret")
	t.Setenv("S3_BUCKET_NAME", "bucket")
	cfg, err := LoadConfig()
	require.NoError(t, err)
	assert.True(t, cfg.IsEnabled())
	assert.Equal(t, "ledger", cfg.Prefix)
}
