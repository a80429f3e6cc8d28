// Package checkout builds provider-agnostic checkout session requests from
// orders and single items. It is a pure data transformation: no network
// calls, no persisted state.
package checkout

import (
	"github.com/sellium/checkout-service/internal/domain/catalog"
	"github.com/sellium/checkout-service/internal/domain/order"
)

// ModePayment is the session mode for one-time payments.
const ModePayment = "payment"

// LineItem is one priced entry in a checkout session request. Quantity is
// always 1: order associations are a set, so the model cannot express
// multiple units of the same item.
type LineItem struct {
	Currency   catalog.Currency
	Name       string
	UnitAmount int64
	Quantity   int
}

// DiscountRef attaches a provider-side coupon to the session.
type DiscountRef struct {
	Coupon string
}

// CallbackURLs are the buyer-facing redirect targets for a session.
type CallbackURLs struct {
	Success string
	Cancel  string
}

// Request is a gateway-agnostic checkout session request, ready for
// submission by a payment gateway adapter.
type Request struct {
	Mode      string
	Currency  catalog.Currency
	LineItems []LineItem
	URLs      CallbackURLs

	// Optional directives, set only when the order carries the reference.
	Discount     *DiscountRef
	AutomaticTax bool
}

// ForOrder builds a session request covering every item of the order.
// Per-line currency comes from each item independently; the session-level
// currency is the order's derived currency.
func ForOrder(o *order.Order, urls CallbackURLs) Request {
	lines := make([]LineItem, len(o.Items))
	for i, it := range o.Items {
		lines[i] = lineItem(it)
	}

	req := Request{
		Mode:      ModePayment,
		Currency:  o.Currency(),
		LineItems: lines,
		URLs:      urls,
	}

	if o.Discount != nil {
		req.Discount = &DiscountRef{Coupon: o.Discount.ProviderRef}
	}
	if o.Tax != nil {
		// The tax reference stays on the order; the session only asks the
		// provider for automatic tax calculation. Pinning o.Tax.ProviderRef
		// per line item is the alternative if exact rates must be applied.
		req.AutomaticTax = true
	}

	return req
}

// ForItem builds a one-line session request for the single-item buy-now
// flow, bypassing the order aggregate.
func ForItem(it catalog.Item, urls CallbackURLs) Request {
	return Request{
		Mode:      ModePayment,
		Currency:  it.Currency,
		LineItems: []LineItem{lineItem(it)},
		URLs:      urls,
	}
}

func lineItem(it catalog.Item) LineItem {
	return LineItem{
		Currency:   it.Currency,
		Name:       it.Name,
		UnitAmount: it.Price,
		Quantity:   1,
	}
}
