// Package handler maps the HTTP surface onto the order service, the checkout
// builder, and the payment gateway adapter.
package handler

import (
	"context"
	"net/http"

	"github.com/sellium/checkout-service/internal/domain/catalog"
	"github.com/sellium/checkout-service/internal/domain/checkout"
	"github.com/sellium/checkout-service/internal/domain/order"
)

// Gateway is the payment processor surface the handler depends on.
type Gateway interface {
	CreateSession(ctx context.Context, req checkout.Request) (string, error)
	PublishableKey(cur catalog.Currency) (string, error)
}

// OrderService is the order aggregate surface the handler depends on.
type OrderService interface {
	Create(ctx context.Context, req order.CreateRequest) (*order.Order, error)
	Get(ctx context.Context, id int64) (*order.Order, error)
}

// Config holds non-dependency configuration for the Handler.
type Config struct {
	// PublicBaseURL is the externally visible base for success/cancel
	// callback URLs. When empty, URLs are derived from the request host.
	PublicBaseURL string
}

// Handler serves the item and order endpoints.
type Handler struct {
	items     catalog.ItemRepository
	discounts catalog.DiscountRepository
	taxes     catalog.TaxRepository
	orders    OrderService
	gateway   Gateway

	publicBaseURL string
}

// New constructs a Handler with the required dependencies.
func New(
	cfg Config,
	items catalog.ItemRepository,
	discounts catalog.DiscountRepository,
	taxes catalog.TaxRepository,
	orders OrderService,
	gateway Gateway,
) *Handler {
	return &Handler{
		items:         items,
		discounts:     discounts,
		taxes:         taxes,
		orders:        orders,
		gateway:       gateway,
		publicBaseURL: cfg.PublicBaseURL,
	}
}

// Register attaches all routes to the mux. Admin routes are wrapped with the
// given authentication middleware.
func (h *Handler) Register(mux *http.ServeMux, admin func(http.Handler) http.Handler) {
	mux.HandleFunc("GET /items", h.ListItems)
	mux.HandleFunc("GET /item/{id}", h.GetItem)
	mux.HandleFunc("POST /buy/{id}", h.BuyItem)
	mux.HandleFunc("POST /order/create", h.CreateOrder)
	mux.HandleFunc("GET /order/{id}", h.OrderCheckout)

	mux.Handle("POST /admin/item", admin(http.HandlerFunc(h.CreateItem)))
	mux.Handle("POST /admin/discount", admin(http.HandlerFunc(h.CreateDiscount)))
	mux.Handle("POST /admin/tax", admin(http.HandlerFunc(h.CreateTax)))
	mux.Handle("DELETE /admin/discount/{id}", admin(http.HandlerFunc(h.DeleteDiscount)))
	mux.Handle("DELETE /admin/tax/{id}", admin(http.HandlerFunc(h.DeleteTax)))
}
