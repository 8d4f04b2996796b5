package payu

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/go-resty/resty/v2"

	"github.com/ManuelReschke/payu-starter/internal/pkg/env"
	"github.com/ManuelReschke/payu-starter/internal/pkg/metrics"
)

const (
	defaultOAuthURL  = "https://secure.snd.payu.com/pl/standard/user/oauth/authorize"
	defaultOrdersURL = "https://secure.snd.payu.com/api/v2_1/orders"

	defaultTokenTTL     = 300 * time.Second
	tokenExpiryMargin   = 30 * time.Second
	defaultAuthTimeout  = 15 * time.Second
	defaultOrderTimeout = 20 * time.Second

	defaultCurrency   = "PLN"
	defaultCustomerIP = "127.0.0.1"
	defaultProduct    = "Order"
)

// Endpoints are the PayU API URLs the client talks to.
type Endpoints struct {
	OAuthURL  string
	OrdersURL string
}

// EndpointsFromEnv returns the sandbox endpoints unless overridden.
func EndpointsFromEnv() Endpoints {
	return Endpoints{
		OAuthURL:  strings.TrimSpace(env.GetEnv("PAYU_OAUTH_URL", defaultOAuthURL)),
		OrdersURL: strings.TrimSpace(env.GetEnv("PAYU_ORDERS_URL", defaultOrdersURL)),
	}
}

// Config holds everything needed to build a Client.
type Config struct {
	PosID        string
	ClientSecret string
	BaseURL      string
	Endpoints    Endpoints

	// Optional overrides, mostly for tests.
	HTTPClient   *http.Client
	AuthTimeout  time.Duration
	OrderTimeout time.Duration
	Now          func() time.Time
}

// Client authenticates against PayU with the client-credentials grant and
// creates orders. The access token is cached and shared by all callers.
type Client struct {
	posID        string
	clientSecret string
	baseURL      string
	endpoints    Endpoints
	authTimeout  time.Duration
	orderTimeout time.Duration
	now          func() time.Time
	http         *resty.Client

	mu        sync.Mutex
	token     string
	expiresAt time.Time
}

// NewClient builds a client. Both POS id and client secret are required.
func NewClient(cfg Config) (*Client, error) {
	posID := strings.TrimSpace(cfg.PosID)
	secret := strings.TrimSpace(cfg.ClientSecret)
	if posID == "" || secret == "" {
		return nil, ErrNotConfigured
	}

	endpoints := cfg.Endpoints
	if endpoints.OAuthURL == "" {
		endpoints.OAuthURL = defaultOAuthURL
	}
	if endpoints.OrdersURL == "" {
		endpoints.OrdersURL = defaultOrdersURL
	}

	var rc *resty.Client
	if cfg.HTTPClient != nil {
		rc = resty.NewWithClient(cfg.HTTPClient)
	} else {
		rc = resty.New()
	}
	// Order creation answers with 302 and a JSON body; following the redirect
	// would fetch the hosted payment page instead.
	rc.SetRedirectPolicy(resty.RedirectPolicyFunc(func(*http.Request, []*http.Request) error {
		return http.ErrUseLastResponse
	}))
	rc.SetHeader("Accept", "application/json")

	c := &Client{
		posID:        posID,
		clientSecret: secret,
		baseURL:      strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/"),
		endpoints:    endpoints,
		authTimeout:  cfg.AuthTimeout,
		orderTimeout: cfg.OrderTimeout,
		now:          cfg.Now,
		http:         rc,
	}
	if c.authTimeout <= 0 {
		c.authTimeout = defaultAuthTimeout
	}
	if c.orderTimeout <= 0 {
		c.orderTimeout = defaultOrderTimeout
	}
	if c.now == nil {
		c.now = time.Now
	}
	return c, nil
}

// PosID returns the merchant POS id the client was built with.
func (c *Client) PosID() string {
	return c.posID
}

// NotifyURL is where PayU posts order notifications.
func (c *Client) NotifyURL() string {
	return c.baseURL + "/payu/notify"
}

// ContinueURL is where PayU sends the buyer after payment.
func (c *Client) ContinueURL() string {
	return c.baseURL + "/return"
}

// AccessToken returns the cached token while it is valid for at least another
// 30 seconds, otherwise it requests a new one.
func (c *Client) AccessToken(ctx context.Context) (string, error) {
	now := c.now()
	c.mu.Lock()
	if c.token != "" && now.Before(c.expiresAt.Add(-tokenExpiryMargin)) {
		token := c.token
		c.mu.Unlock()
		return token, nil
	}
	c.mu.Unlock()

	token, ttl, err := c.requestToken(ctx)
	if err != nil {
		return "", err
	}

	c.mu.Lock()
	c.token = token
	c.expiresAt = now.Add(ttl)
	c.mu.Unlock()
	return token, nil
}

func (c *Client) requestToken(ctx context.Context) (string, time.Duration, error) {
	ctx, cancel := context.WithTimeout(ctx, c.authTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetBasicAuth(c.posID, c.clientSecret).
		SetFormData(map[string]string{"grant_type": "client_credentials"}).
		Post(c.endpoints.OAuthURL)
	metrics.ObserveGatewayCall("oauth", start, err == nil && resp.IsSuccess())
	if err != nil {
		return "", 0, fmt.Errorf("payu oauth request failed: %w", err)
	}
	if !resp.IsSuccess() {
		return "", 0, &HTTPError{Operation: "oauth", StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	var out tokenResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return "", 0, fmt.Errorf("%w: %v", ErrUndecodableResponse, err)
	}
	if strings.TrimSpace(out.AccessToken) == "" {
		return "", 0, errors.New("payu oauth returned empty access_token")
	}
	// Only a missing expires_in falls back to the default; zero or negative
	// values leave the token expired right away.
	ttl := defaultTokenTTL
	if out.ExpiresIn != nil {
		ttl = time.Duration(*out.ExpiresIn) * time.Second
	}
	metrics.TokenRefreshes.Inc()
	return out.AccessToken, ttl, nil
}

// BuildOrderPayload fills in defaults and the derived callback URLs.
func (c *Client) BuildOrderPayload(req OrderRequest) OrderPayload {
	currency := strings.TrimSpace(req.Currency)
	if currency == "" {
		currency = defaultCurrency
	}
	customerIP := strings.TrimSpace(req.CustomerIP)
	if customerIP == "" {
		customerIP = defaultCustomerIP
	}
	productName := req.ProductName
	if productName == "" {
		productName = defaultProduct
	}
	total := strconv.FormatInt(req.TotalAmount, 10)

	return OrderPayload{
		NotifyURL:     c.NotifyURL(),
		ContinueURL:   c.ContinueURL(),
		CustomerIP:    customerIP,
		MerchantPosID: c.posID,
		Description:   req.Description,
		CurrencyCode:  currency,
		TotalAmount:   total,
		ExtOrderID:    req.ExtOrderID,
		Products: []Product{
			{Name: productName, UnitPrice: total, Quantity: "1"},
		},
	}
}

// CreateOrder submits an order and returns the parsed response. Interpreting
// the status code and redirect URI is left to the caller.
func (c *Client) CreateOrder(ctx context.Context, req OrderRequest) (*OrderResponse, error) {
	token, err := c.AccessToken(ctx)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithTimeout(ctx, c.orderTimeout)
	defer cancel()

	start := time.Now()
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(token).
		SetHeader("Content-Type", "application/json").
		SetBody(c.BuildOrderPayload(req)).
		Post(c.endpoints.OrdersURL)
	ok := err == nil && (resp.IsSuccess() || resp.StatusCode() == http.StatusFound)
	metrics.ObserveGatewayCall("create_order", start, ok)
	if err != nil {
		return nil, fmt.Errorf("payu order request failed: %w", err)
	}
	if !ok {
		return nil, &HTTPError{Operation: "create order", StatusCode: resp.StatusCode(), Body: string(resp.Body())}
	}

	var out OrderResponse
	if err := json.Unmarshal(resp.Body(), &out); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUndecodableResponse, err)
	}
	return &out, nil
}
