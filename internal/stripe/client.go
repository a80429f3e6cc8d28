// Package stripe is a thin adapter to a Stripe-shaped payment processor:
// it submits built checkout requests and returns opaque session ids.
// Credentials are keyed by currency.
package stripe

import (
	"context"
	"fmt"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/trace"

	"github.com/sellium/checkout-service/internal/domain/catalog"
	"github.com/sellium/checkout-service/internal/domain/checkout"
)

const sessionsPath = "/v1/checkout/sessions"

// ConfigurationError indicates no credential is configured for the requested
// currency. It is raised before any network call.
type ConfigurationError struct {
	Currency catalog.Currency
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("no gateway credentials configured for currency %q", e.Currency)
}

// UpstreamError indicates the payment processor rejected the request or was
// unreachable.
type UpstreamError struct {
	Status  int
	Message string
	cause   error
}

func (e *UpstreamError) Error() string {
	if e.cause != nil {
		return fmt.Sprintf("payment gateway unreachable: %v", e.cause)
	}
	return fmt.Sprintf("payment gateway rejected request: status %d: %s", e.Status, e.Message)
}

func (e *UpstreamError) Unwrap() error { return e.cause }

// Client submits checkout session requests to the payment processor.
// One attempt per call, no retries; the HTTP timeout is explicit.
type Client struct {
	http   *resty.Client
	keys   Keys
	tracer trace.Tracer
}

// NewClient creates a gateway client for the given API base URL and
// credential set.
func NewClient(baseURL string, keys Keys, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(baseURL).
			SetTimeout(timeout).
			SetRetryCount(0),
		keys:   keys,
		tracer: otel.Tracer("stripe"),
	}
}

// sessionResponse is the subset of the provider's session object we consume.
type sessionResponse struct {
	ID string `json:"id"`
}

// apiError is the provider's error envelope.
type apiError struct {
	Error struct {
		Message string `json:"message"`
	} `json:"error"`
}

// CreateSession submits the built request using the secret key for the
// session currency and returns the opaque session id.
func (c *Client) CreateSession(ctx context.Context, req checkout.Request) (string, error) {
	pair, ok := c.keys[req.Currency]
	if !ok || pair.Secret == "" {
		return "", &ConfigurationError{Currency: req.Currency}
	}

	ctx, span := c.tracer.Start(ctx, "stripe.CreateSession",
		trace.WithAttributes(
			attribute.String("currency", string(req.Currency)),
			attribute.Int("line_items", len(req.LineItems)),
		))
	defer span.End()

	var (
		session sessionResponse
		apiErr  apiError
	)
	resp, err := c.http.R().
		SetContext(ctx).
		SetAuthToken(pair.Secret).
		SetFormDataFromValues(encodeForm(req)).
		SetResult(&session).
		SetError(&apiErr).
		Post(sessionsPath)
	if err != nil {
		return "", &UpstreamError{cause: err}
	}
	if resp.IsError() {
		return "", &UpstreamError{
			Status:  resp.StatusCode(),
			Message: apiErr.Error.Message,
		}
	}

	return session.ID, nil
}

// PublishableKey returns the buyer-facing key for the given currency.
func (c *Client) PublishableKey(cur catalog.Currency) (string, error) {
	pair, ok := c.keys[cur]
	if !ok || pair.Publishable == "" {
		return "", &ConfigurationError{Currency: cur}
	}
	return pair.Publishable, nil
}
