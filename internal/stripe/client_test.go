package stripe

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellium/checkout-service/internal/domain/catalog"
	"github.com/sellium/checkout-service/internal/domain/checkout"
)

func testRequest() checkout.Request {
	return checkout.Request{
		Mode:     checkout.ModePayment,
		Currency: catalog.USD,
		LineItems: []checkout.LineItem{
			{Currency: catalog.USD, Name: "Keyboard", UnitAmount: 12900, Quantity: 1},
		},
		URLs: checkout.CallbackURLs{
			Success: "https://shop.example/success",
			Cancel:  "https://shop.example/item/1",
		},
	}
}

func testKeys() Keys {
	return Keys{
		catalog.USD: {Secret: "sk_test_usd", Publishable: "pk_test_usd"},
	}
}

func TestCreateSession(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		assert.Equal(t, "/v1/checkout/sessions", r.URL.Path)
		assert.Equal(t, "Bearer sk_test_usd", r.Header.Get("Authorization"))

		require.NoError(t, r.ParseForm())
		assert.Equal(t, "payment", r.PostForm.Get("mode"))
		assert.Equal(t, "Keyboard", r.PostForm.Get("line_items[0][price_data][product_data][name]"))
		assert.Equal(t, "12900", r.PostForm.Get("line_items[0][price_data][unit_amount]"))

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id": "cs_test_123", "object": "checkout.session"}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testKeys(), 5*time.Second)

	id, err := c.CreateSession(context.Background(), testRequest())
	require.NoError(t, err)
	assert.Equal(t, "cs_test_123", id)
}

func TestCreateSession_MissingCredentials(t *testing.T) {
	var calls int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testKeys(), 5*time.Second)

	req := testRequest()
	req.Currency = catalog.EUR

	_, err := c.CreateSession(context.Background(), req)

	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
	assert.Equal(t, catalog.EUR, cfgErr.Currency)
	assert.Zero(t, calls, "no network call may happen without credentials")
}

func TestCreateSession_UpstreamRejection(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusPaymentRequired)
		_, _ = w.Write([]byte(`{"error": {"message": "Your card was declined."}}`))
	}))
	defer srv.Close()

	c := NewClient(srv.URL, testKeys(), 5*time.Second)

	_, err := c.CreateSession(context.Background(), testRequest())

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Equal(t, http.StatusPaymentRequired, upErr.Status)
	assert.Contains(t, upErr.Message, "declined")
}

func TestCreateSession_Unreachable(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
	srv.Close() // immediately, so the address refuses connections

	c := NewClient(srv.URL, testKeys(), time.Second)

	_, err := c.CreateSession(context.Background(), testRequest())

	var upErr *UpstreamError
	require.ErrorAs(t, err, &upErr)
	assert.Zero(t, upErr.Status)
}

func TestPublishableKey(t *testing.T) {
	c := NewClient("https://api.example", testKeys(), time.Second)

	key, err := c.PublishableKey(catalog.USD)
	require.NoError(t, err)
	assert.Equal(t, "pk_test_usd", key)

	_, err = c.PublishableKey(catalog.EUR)
	var cfgErr *ConfigurationError
	require.ErrorAs(t, err, &cfgErr)
}

func TestLoadKeysFromEnv(t *testing.T) {
	t.Setenv("SECRET_KEY_USD", "sk_usd")
	t.Setenv("PUBLIC_KEY_USD", "pk_usd")
	t.Setenv("SECRET_KEY_EUR", "")
	t.Setenv("PUBLIC_KEY_EUR", "")

	keys := LoadKeysFromEnv()

	require.Contains(t, keys, catalog.USD)
	assert.Equal(t, KeyPair{Secret: "sk_usd", Publishable: "pk_usd"}, keys[catalog.USD])
	assert.NotContains(t, keys, catalog.EUR)
}
