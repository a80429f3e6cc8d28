// Package catalog holds the purchasable records: items, discounts, and tax
// rates. Discounts and taxes are opaque wrappers around provider-side rules;
// their amounts and logic live with the payment processor.
package catalog

import (
	"context"

	"github.com/go-faster/errors"
	"github.com/shopspring/decimal"
)

// Sentinel errors returned by repositories when a referenced record is absent.
var (
	ErrItemNotFound     = errors.New("item not found")
	ErrDiscountNotFound = errors.New("discount not found")
	ErrTaxNotFound      = errors.New("tax not found")
)

// Item is a purchasable catalog entry. Price is in minor currency units
// (cents); all pricing arithmetic stays integral.
type Item struct {
	ID          int64
	Name        string
	Description string
	Price       int64
	Currency    Currency
}

// DisplayPrice renders the minor-unit price as a human-readable decimal
// string, e.g. 1050 -> "10.50".
func (i Item) DisplayPrice() string {
	return decimal.New(i.Price, -2).StringFixed(2)
}

// Discount wraps a provider-defined coupon. The discount amount or percentage
// is owned by the payment processor; ProviderRef is the coupon token.
type Discount struct {
	ID          int64
	ProviderRef string
	Name        string
}

// Tax wraps a provider-defined tax rate, same pattern as Discount.
type Tax struct {
	ID          int64
	ProviderRef string
	Name        string
}

// ItemRepository defines persistence operations for catalog items.
type ItemRepository interface {
	List(ctx context.Context) ([]Item, error)
	GetByID(ctx context.Context, id int64) (*Item, error)
	GetByIDs(ctx context.Context, ids []int64) ([]Item, error)
	Create(ctx context.Context, item *Item) error
}

// DiscountRepository defines persistence operations for discounts.
type DiscountRepository interface {
	GetByID(ctx context.Context, id int64) (*Discount, error)
	Create(ctx context.Context, d *Discount) error
	Delete(ctx context.Context, id int64) error
}

// TaxRepository defines persistence operations for tax rates.
type TaxRepository interface {
	GetByID(ctx context.Context, id int64) (*Tax, error)
	Create(ctx context.Context, t *Tax) error
	Delete(ctx context.Context, id int64) error
}
