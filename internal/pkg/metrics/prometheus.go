package metrics

import (
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// RequestsTotal tracks total HTTP requests
	RequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total number of HTTP requests",
		},
		[]string{"method", "endpoint", "status"},
	)

	// RequestDuration tracks HTTP request duration
	RequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "endpoint"},
	)

	// GatewayRequestDuration tracks calls to the PayU API
	GatewayRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "payu_request_duration_seconds",
			Help:    "PayU API request duration in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"operation", "result"},
	)

	// TokenRefreshes counts fetched OAuth access tokens
	TokenRefreshes = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "payu_token_refreshes_total",
			Help: "Total number of PayU access tokens fetched",
		},
	)

	// PaymentsTotal tracks payment attempts by outcome
	PaymentsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payments_total",
			Help: "Total number of payment attempts",
		},
		[]string{"outcome"},
	)

	// PaymentAmount tracks requested payment amounts
	PaymentAmount = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "payment_amount_pln",
			Help:    "Requested payment amounts in PLN",
			Buckets: []float64{1, 10, 50, 100, 500, 1000, 5000},
		},
	)

	// NotificationsTotal tracks received PayU notifications
	NotificationsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "payu_notifications_total",
			Help: "Total number of PayU notifications received",
		},
		[]string{"result"},
	)
)

// ObserveGatewayCall records the duration of one PayU API call.
func ObserveGatewayCall(operation string, start time.Time, ok bool) {
	result := "ok"
	if !ok {
		result = "error"
	}
	GatewayRequestDuration.WithLabelValues(operation, result).Observe(time.Since(start).Seconds())
}

// PrometheusMiddleware creates a Fiber middleware for automatic metrics collection
func PrometheusMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()

		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if fe, ok := err.(*fiber.Error); ok {
				status = fe.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		endpoint := c.Route().Path

		RequestsTotal.WithLabelValues(c.Method(), endpoint, strconv.Itoa(status)).Inc()
		RequestDuration.WithLabelValues(c.Method(), endpoint).Observe(time.Since(start).Seconds())
		return err
	}
}
