package payu

import (
	"errors"
	"fmt"
)

// StatusSuccess is the status code PayU returns for an accepted order.
const StatusSuccess = "SUCCESS"

// ErrNotConfigured is returned when the POS id or client secret is missing.
var ErrNotConfigured = errors.New("payu credentials are not configured")

// ErrUndecodableResponse is returned when a PayU response body is not valid JSON.
var ErrUndecodableResponse = errors.New("payu response is not valid JSON")

// HTTPError is returned for any non-success HTTP status from PayU.
type HTTPError struct {
	Operation  string
	StatusCode int
	Body       string
}

func (e *HTTPError) Error() string {
	return fmt.Sprintf("payu %s failed: status=%d body=%s", e.Operation, e.StatusCode, e.Body)
}

// OrderRequest describes one order to create. NotifyURL and ContinueURL are
// derived from the client's base URL.
type OrderRequest struct {
	TotalAmount int64
	Description string
	ProductName string
	Currency    string
	CustomerIP  string
	ExtOrderID  string
}

// Product is a single order line item. Prices are minor units encoded as strings.
type Product struct {
	Name      string `json:"name"`
	UnitPrice string `json:"unitPrice"`
	Quantity  string `json:"quantity"`
}

// OrderPayload is the JSON body sent to the orders endpoint.
type OrderPayload struct {
	NotifyURL     string    `json:"notifyUrl"`
	ContinueURL   string    `json:"continueUrl"`
	CustomerIP    string    `json:"customerIp"`
	MerchantPosID string    `json:"merchantPosId"`
	Description   string    `json:"description"`
	CurrencyCode  string    `json:"currencyCode"`
	TotalAmount   string    `json:"totalAmount"`
	ExtOrderID    string    `json:"extOrderId,omitempty"`
	Products      []Product `json:"products"`
}

// Status is the status block of a PayU response.
type Status struct {
	StatusCode string `json:"statusCode"`
	StatusDesc string `json:"statusDesc,omitempty"`
}

// OrderResponse is the parsed body of an order-creation response.
type OrderResponse struct {
	OrderID     string `json:"orderId"`
	ExtOrderID  string `json:"extOrderId"`
	RedirectURI string `json:"redirectUri"`
	Status      Status `json:"status"`
}

type tokenResponse struct {
	AccessToken string `json:"access_token"`
	TokenType   string `json:"token_type"`
	ExpiresIn   *int64 `json:"expires_in"`
	GrantType   string `json:"grant_type"`
}
