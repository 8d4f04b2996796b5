package payment

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	log "github.com/sirupsen/logrus"

	"github.com/ManuelReschke/payu-starter/app/models"
	"github.com/ManuelReschke/payu-starter/internal/pkg/metrics"
	"github.com/ManuelReschke/payu-starter/internal/pkg/payu"
)

const defaultDescription = "Order"

// GatewaySource yields the gateway to use for a payment, nil when unconfigured.
type GatewaySource interface {
	Current() Gateway
}

// Ledger records payment attempts.
type Ledger interface {
	Append(tx *models.PaymentTransaction) error
}

// PaymentInput is the raw form input of a payment.
type PaymentInput struct {
	Amount      string
	Description string
	CustomerIP  string
}

// Redirect is where the buyer has to be sent to pay.
type Redirect struct {
	OrderID     string
	ExtOrderID  string
	RedirectURI string
}

// Workflow turns a payment request into a gateway order and records the
// attempt. Every attempt that reaches the gateway is written to the ledger
// exactly once.
type Workflow struct {
	gateways GatewaySource
	ledger   Ledger
	newID    func() string
}

func NewWorkflow(gateways GatewaySource, ledger Ledger) *Workflow {
	return &Workflow{
		gateways: gateways,
		ledger:   ledger,
		newID:    uuid.NewString,
	}
}

// CreatePayment validates the input, creates the order and returns the
// redirect target on success.
func (w *Workflow) CreatePayment(ctx context.Context, in PaymentInput) (*Redirect, error) {
	gw := w.gateways.Current()
	if gw == nil {
		return nil, ErrGatewayUnavailable
	}

	amount, err := ParseAmount(in.Amount)
	if err != nil {
		return nil, err
	}

	description := strings.TrimSpace(in.Description)
	if description == "" {
		description = defaultDescription
	}

	entry := &models.PaymentTransaction{
		ExtOrderID:  w.newID(),
		Amount:      amount,
		Currency:    "PLN",
		Description: in.Description,
	}
	metrics.PaymentAmount.Observe(float64(amount) / 100)

	resp, err := gw.CreateOrder(ctx, payu.OrderRequest{
		TotalAmount: amount,
		Description: description,
		ProductName: description,
		Currency:    entry.Currency,
		CustomerIP:  in.CustomerIP,
		ExtOrderID:  entry.ExtOrderID,
	})
	if err != nil {
		entry.Outcome = models.OutcomeTransportError
		entry.Status = "ERROR: " + err.Error()
		return nil, w.record(entry, fmt.Errorf("%w: %v", ErrGatewayCallFailed, err))
	}

	if resp.OrderID != "" {
		orderID := resp.OrderID
		entry.OrderID = &orderID
	}

	code := resp.Status.StatusCode
	switch {
	case code == "":
		entry.Outcome = models.OutcomeMalformed
		entry.Status = "Missing statusCode"
		return nil, w.record(entry, fmt.Errorf("%w: missing statusCode", ErrMalformedGatewayResponse))
	case code != payu.StatusSuccess:
		entry.Outcome = models.OutcomeRejected
		entry.Status = "PayU status: " + code
		return nil, w.record(entry, fmt.Errorf("%w: %s", ErrGatewayRejected, code))
	case resp.RedirectURI == "":
		entry.Outcome = models.OutcomeMalformed
		entry.Status = "Missing redirectUri"
		return nil, w.record(entry, fmt.Errorf("%w: missing redirectUri", ErrMalformedGatewayResponse))
	case resp.OrderID == "":
		entry.Outcome = models.OutcomeMalformed
		entry.Status = "Missing orderId"
		return nil, w.record(entry, fmt.Errorf("%w: missing orderId", ErrMalformedGatewayResponse))
	}

	entry.Outcome = models.OutcomeSuccess
	entry.Status = models.StatusSuccess
	if err := w.record(entry, nil); err != nil {
		return nil, err
	}
	return &Redirect{
		OrderID:     resp.OrderID,
		ExtOrderID:  entry.ExtOrderID,
		RedirectURI: resp.RedirectURI,
	}, nil
}

// record appends the entry and returns result, or the ledger error if the
// write failed.
func (w *Workflow) record(entry *models.PaymentTransaction, result error) error {
	metrics.PaymentsTotal.WithLabelValues(string(entry.Outcome)).Inc()

	fields := log.Fields{
		"ext_order_id": entry.ExtOrderID,
		"order_id":     entry.OrderIDString(),
		"amount":       entry.Amount,
		"outcome":      entry.Outcome,
	}
	if err := w.ledger.Append(entry); err != nil {
		log.WithFields(fields).WithError(err).Error("failed to record payment transaction")
		return fmt.Errorf("failed to record payment transaction: %w", err)
	}
	if result != nil {
		log.WithFields(fields).WithError(result).Warn("payment attempt failed")
		return result
	}
	log.WithFields(fields).Info("payment order created")
	return nil
}
