package payu

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakePayU struct {
	server      *httptest.Server
	oauthCalls  atomic.Int32
	orderCalls  atomic.Int32
	expiresIn   int64
	sendZero    bool
	oauthStatus int
	orderStatus int
	orderBody   string
	lastOrder   OrderPayload
	lastAuth    string
}

func newFakePayU(t *testing.T) *fakePayU {
	t.Helper()
	f := &fakePayU{
		expiresIn:   3600,
		oauthStatus: http.StatusOK,
		orderStatus: http.StatusFound,
		orderBody:   `{"status":{"statusCode":"SUCCESS"},"redirectUri":"https://pay.example/r/1","orderId":"ORD1"}`,
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/oauth", func(w http.ResponseWriter, r *http.Request) {
		f.oauthCalls.Add(1)
		user, pass, ok := r.BasicAuth()
		if !ok || user != "145227" || pass != "secret" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		_ = r.ParseForm()
		if r.PostForm.Get("grant_type") != "client_credentials" {
			w.WriteHeader(http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(f.oauthStatus)
		body := map[string]any{"access_token": "tok-" + string(rune('0'+f.oauthCalls.Load())), "token_type": "bearer"}
		if f.expiresIn > 0 || f.sendZero {
			body["expires_in"] = f.expiresIn
		}
		_ = json.NewEncoder(w).Encode(body)
	})
	mux.HandleFunc("/orders", func(w http.ResponseWriter, r *http.Request) {
		f.orderCalls.Add(1)
		f.lastAuth = r.Header.Get("Authorization")
		raw, _ := io.ReadAll(r.Body)
		_ = json.Unmarshal(raw, &f.lastOrder)
		w.Header().Set("Content-Type", "application/json")
		w.Header().Set("Location", "/should-not-follow")
		w.WriteHeader(f.orderStatus)
		_, _ = io.WriteString(w, f.orderBody)
	})
	mux.HandleFunc("/should-not-follow", func(w http.ResponseWriter, r *http.Request) {
		t.Errorf("redirect was followed")
	})

	f.server = httptest.NewServer(mux)
	t.Cleanup(f.server.Close)
	return f
}

func (f *fakePayU) client(t *testing.T, now func() time.Time) *Client {
	t.Helper()
	c, err := NewClient(Config{
		PosID:        "145227",
		ClientSecret: "secret",
		BaseURL:      "http://shop.local/",
		Endpoints: Endpoints{
			OAuthURL:  f.server.URL + "/oauth",
			OrdersURL: f.server.URL + "/orders",
		},
		Now: now,
	})
	require.NoError(t, err)
	return c
}

func TestNewClient_RequiresCredentials(t *testing.T) {
	_, err := NewClient(Config{PosID: "", ClientSecret: "x"})
	assert.ErrorIs(t, err, ErrNotConfigured)

	_, err = NewClient(Config{PosID: "1", ClientSecret: "  "})
	assert.ErrorIs(t, err, ErrNotConfigured)
}

func TestClient_CallbackURLs(t *testing.T) {
	c, err := NewClient(Config{PosID: "1", ClientSecret: "s", BaseURL: "https://shop.example/"})
	require.NoError(t, err)
	assert.Equal(t, "https://shop.example/payu/notify", c.NotifyURL())
	assert.Equal(t, "https://shop.example/return", c.ContinueURL())
}

func TestAccessToken_CachedUntilMargin(t *testing.T) {
	f := newFakePayU(t)
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := f.client(t, func() time.Time { return now })

	tok1, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	tok2, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	assert.Equal(t, tok1, tok2)
	assert.EqualValues(t, 1, f.oauthCalls.Load())

	// 29 seconds of validity left is not enough.
	now = now.Add(3600*time.Second - 29*time.Second)
	tok3, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	assert.NotEqual(t, tok1, tok3)
	assert.EqualValues(t, 2, f.oauthCalls.Load())
}

func TestAccessToken_ZeroExpiresInIsNotCached(t *testing.T) {
	f := newFakePayU(t)
	f.expiresIn = 0
	f.sendZero = true
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := f.client(t, func() time.Time { return now })

	_, err := c.AccessToken(context.Background())
	require.NoError(t, err)
	_, err = c.AccessToken(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.oauthCalls.Load())
}

func TestAccessToken_DefaultsExpiryTo300Seconds(t *testing.T) {
	f := newFakePayU(t)
	f.expiresIn = 0
	now := time.Date(2026, 1, 1, 12, 0, 0, 0, time.UTC)
	c := f.client(t, func() time.Time { return now })

	_, err := c.AccessToken(context.Background())
	require.NoError(t, err)

	now = now.Add(269 * time.Second)
	_, err = c.AccessToken(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, f.oauthCalls.Load())

	now = now.Add(2 * time.Second)
	_, err = c.AccessToken(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 2, f.oauthCalls.Load())
}

func TestAccessToken_HTTPError(t *testing.T) {
	f := newFakePayU(t)
	f.oauthStatus = http.StatusInternalServerError
	c := f.client(t, nil)

	_, err := c.AccessToken(context.Background())
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusInternalServerError, httpErr.StatusCode)
	assert.Equal(t, "oauth", httpErr.Operation)
}

func TestCreateOrder_Accepts302WithoutFollowing(t *testing.T) {
	f := newFakePayU(t)
	c := f.client(t, nil)

	resp, err := c.CreateOrder(context.Background(), OrderRequest{
		TotalAmount: 1050,
		Description: "Coffee",
		ProductName: "Coffee",
		CustomerIP:  "10.0.0.7",
		ExtOrderID:  "ext-1",
	})
	require.NoError(t, err)
	assert.Equal(t, StatusSuccess, resp.Status.StatusCode)
	assert.Equal(t, "https://pay.example/r/1", resp.RedirectURI)
	assert.Equal(t, "ORD1", resp.OrderID)

	assert.Equal(t, "Bearer tok-1", f.lastAuth)
	assert.Equal(t, "1050", f.lastOrder.TotalAmount)
	assert.Equal(t, "PLN", f.lastOrder.CurrencyCode)
	assert.Equal(t, "145227", f.lastOrder.MerchantPosID)
	assert.Equal(t, "10.0.0.7", f.lastOrder.CustomerIP)
	assert.Equal(t, "http://shop.local/payu/notify", f.lastOrder.NotifyURL)
	assert.Equal(t, "http://shop.local/return", f.lastOrder.ContinueURL)
	assert.Equal(t, "ext-1", f.lastOrder.ExtOrderID)
	require.Len(t, f.lastOrder.Products, 1)
	assert.Equal(t, Product{Name: "Coffee", UnitPrice: "1050", Quantity: "1"}, f.lastOrder.Products[0])
}

func TestCreateOrder_ReusesToken(t *testing.T) {
	f := newFakePayU(t)
	c := f.client(t, nil)

	for i := 0; i < 3; i++ {
		_, err := c.CreateOrder(context.Background(), OrderRequest{TotalAmount: 100})
		require.NoError(t, err)
	}
	assert.EqualValues(t, 1, f.oauthCalls.Load())
	assert.EqualValues(t, 3, f.orderCalls.Load())
}

func TestCreateOrder_HTTPError(t *testing.T) {
	f := newFakePayU(t)
	f.orderStatus = http.StatusBadRequest
	f.orderBody = `{"status":{"statusCode":"ERROR_VALUE_MISSING"}}`
	c := f.client(t, nil)

	_, err := c.CreateOrder(context.Background(), OrderRequest{TotalAmount: 100})
	var httpErr *HTTPError
	require.True(t, errors.As(err, &httpErr))
	assert.Equal(t, http.StatusBadRequest, httpErr.StatusCode)
	assert.Contains(t, httpErr.Body, "ERROR_VALUE_MISSING")
}

func TestCreateOrder_UndecodableBody(t *testing.T) {
	f := newFakePayU(t)
	f.orderStatus = http.StatusOK
	f.orderBody = "<html>nope</html>"
	c := f.client(t, nil)

	_, err := c.CreateOrder(context.Background(), OrderRequest{TotalAmount: 100})
	assert.ErrorIs(t, err, ErrUndecodableResponse)
}

func TestCreateOrder_TransportError(t *testing.T) {
	f := newFakePayU(t)
	c := f.client(t, nil)
	f.server.Close()

	_, err := c.CreateOrder(context.Background(), OrderRequest{TotalAmount: 100})
	require.Error(t, err)
	var httpErr *HTTPError
	assert.False(t, errors.As(err, &httpErr))
}

func TestBuildOrderPayload_Defaults(t *testing.T) {
	c, err := NewClient(Config{PosID: "1", ClientSecret: "s", BaseURL: "http://localhost:8000"})
	require.NoError(t, err)

	p := c.BuildOrderPayload(OrderRequest{TotalAmount: 5})
	assert.Equal(t, "PLN", p.CurrencyCode)
	assert.Equal(t, "127.0.0.1", p.CustomerIP)
	assert.Equal(t, "Order", p.Products[0].Name)
	assert.Equal(t, "5", p.TotalAmount)
}
