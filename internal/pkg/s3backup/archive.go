package s3backup

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/ManuelReschke/payu-starter/app/models"
)

const csvContentType = "text/csv"

// Uploader stores one object.
type Uploader interface {
	Upload(ctx context.Context, objectKey string, data []byte, contentType string) (*UploadResult, error)
}

// LedgerSource lists every ledger entry.
type LedgerSource interface {
	ListAll() ([]models.PaymentTransaction, error)
}

// Archiver exports the transaction ledger as CSV into the bucket.
type Archiver struct {
	uploader Uploader
	ledger   LedgerSource
	config   *Config
	now      func() time.Time
}

func NewArchiver(uploader Uploader, ledger LedgerSource, cfg *Config) *Archiver {
	return &Archiver{uploader: uploader, ledger: ledger, config: cfg, now: time.Now}
}

// Archive writes the full ledger to a new timestamped object.
func (a *Archiver) Archive(ctx context.Context) (*UploadResult, error) {
	txs, err := a.ledger.ListAll()
	if err != nil {
		return nil, fmt.Errorf("failed to load ledger: %w", err)
	}

	var buf bytes.Buffer
	if err := WriteLedgerCSV(&buf, txs); err != nil {
		return nil, err
	}
	return a.uploader.Upload(ctx, a.config.GetObjectKey(a.now()), buf.Bytes(), csvContentType)
}

// WriteLedgerCSV writes one header row and one row per transaction.
func WriteLedgerCSV(w io.Writer, txs []models.PaymentTransaction) error {
	cw := csv.NewWriter(w)
	header := []string{"id", "created_at", "order_id", "ext_order_id", "amount", "currency", "description", "outcome", "status"}
	if err := cw.Write(header); err != nil {
		return err
	}
	for _, tx := range txs {
		row := []string{
			strconv.FormatUint(uint64(tx.ID), 10),
			tx.CreatedAt.UTC().Format(time.RFC3339),
			tx.OrderIDString(),
			tx.ExtOrderID,
			models.FormatMinorUnits(tx.Amount, ""),
			tx.Currency,
			tx.Description,
			string(tx.Outcome),
			tx.Status,
		}
		if err := cw.Write(row); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}
