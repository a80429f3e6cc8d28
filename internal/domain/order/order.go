// Package order implements the order aggregate: a set of catalog items with
// an optional discount and tax reference, and the derived totals used to
// build a checkout session.
package order

import (
	"context"
	"time"

	"github.com/sellium/checkout-service/internal/domain/catalog"
)

// Order groups item associations with optional discount and tax references.
// Items keep their first-seen association order; duplicate item ids in a
// creation request collapse to a single association.
type Order struct {
	ID        int64
	Items     []catalog.Item
	Discount  *catalog.Discount
	Tax       *catalog.Tax
	CreatedAt time.Time
}

// TotalAmount sums the prices of all associated items in minor units.
// Each association counts once; the model has no quantity field.
func (o *Order) TotalAmount() int64 {
	var total int64
	for _, it := range o.Items {
		total += it.Price
	}
	return total
}

// Currency returns the currency of the first associated item, or the default
// currency for an empty order. All items in an order are expected to share
// one currency; see Service for the enforcement knob.
func (o *Order) Currency() catalog.Currency {
	if len(o.Items) == 0 {
		return catalog.DefaultCurrency
	}
	return o.Items[0].Currency
}

// Repository defines persistence operations for orders.
type Repository interface {
	// Create persists the order and its item associations atomically and
	// assigns the generated ID.
	Create(ctx context.Context, o *Order) error
	// GetByID loads an order with its items (in association order) and its
	// discount/tax references, if still present.
	GetByID(ctx context.Context, id int64) (*Order, error)
}
