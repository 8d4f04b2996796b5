package payment

import (
	"errors"
	"net/http"
)

var (
	ErrInvalidAmount            = errors.New("invalid amount")
	ErrGatewayUnavailable       = errors.New("payu is not configured")
	ErrGatewayCallFailed        = errors.New("payu call failed")
	ErrGatewayRejected          = errors.New("payu rejected the order")
	ErrMalformedGatewayResponse = errors.New("malformed payu response")
	ErrInvalidNotification      = errors.New("invalid notification payload")
	ErrInvalidSignature         = errors.New("invalid notification signature")
	ErrInvalidSettings          = errors.New("invalid settings")
)

// HTTPStatus maps a workflow error to the status code shown to the caller.
func HTTPStatus(err error) int {
	switch {
	case err == nil:
		return http.StatusOK
	case errors.Is(err, ErrInvalidAmount),
		errors.Is(err, ErrInvalidNotification),
		errors.Is(err, ErrInvalidSettings):
		return http.StatusBadRequest
	case errors.Is(err, ErrInvalidSignature):
		return http.StatusUnauthorized
	case errors.Is(err, ErrGatewayUnavailable):
		return http.StatusServiceUnavailable
	case errors.Is(err, ErrGatewayCallFailed),
		errors.Is(err, ErrGatewayRejected),
		errors.Is(err, ErrMalformedGatewayResponse):
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}
