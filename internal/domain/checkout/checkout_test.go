package checkout

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/sellium/checkout-service/internal/domain/catalog"
	"github.com/sellium/checkout-service/internal/domain/order"
)

var testURLs = CallbackURLs{
	Success: "https://shop.example/success",
	Cancel:  "https://shop.example/order/1",
}

func TestForOrder_LineItems(t *testing.T) {
	o := &order.Order{
		ID: 1,
		Items: []catalog.Item{
			{ID: 1, Name: "Keyboard", Price: 12900, Currency: catalog.USD},
			{ID: 2, Name: "Mouse", Price: 4900, Currency: catalog.USD},
		},
	}

	req := ForOrder(o, testURLs)

	assert.Equal(t, ModePayment, req.Mode)
	assert.Equal(t, catalog.USD, req.Currency)
	assert.Equal(t, testURLs, req.URLs)
	require.Len(t, req.LineItems, 2)

	assert.Equal(t, LineItem{
		Currency:   catalog.USD,
		Name:       "Keyboard",
		UnitAmount: 12900,
		Quantity:   1,
	}, req.LineItems[0])
	assert.Equal(t, 1, req.LineItems[1].Quantity, "quantity is always 1")

	assert.Nil(t, req.Discount)
	assert.False(t, req.AutomaticTax)
}

func TestForOrder_EmptyOrder(t *testing.T) {
	req := ForOrder(&order.Order{ID: 1}, testURLs)

	assert.Empty(t, req.LineItems)
	assert.Equal(t, catalog.USD, req.Currency)
}

func TestForOrder_Discount(t *testing.T) {
	o := &order.Order{
		ID:       1,
		Items:    []catalog.Item{{ID: 1, Name: "Keyboard", Price: 100, Currency: catalog.USD}},
		Discount: &catalog.Discount{ID: 5, ProviderRef: "coupon_xyz"},
	}

	req := ForOrder(o, testURLs)

	require.NotNil(t, req.Discount)
	assert.Equal(t, "coupon_xyz", req.Discount.Coupon)
}

func TestForOrder_Tax(t *testing.T) {
	o := &order.Order{
		ID:    1,
		Items: []catalog.Item{{ID: 1, Name: "Keyboard", Price: 100, Currency: catalog.USD}},
		Tax:   &catalog.Tax{ID: 6, ProviderRef: "txr_abc"},
	}

	req := ForOrder(o, testURLs)

	assert.True(t, req.AutomaticTax)
	// The provider tax reference is not forwarded; only automatic
	// calculation is requested.
	for _, line := range req.LineItems {
		assert.NotContains(t, line.Name, "txr_abc")
	}
	assert.Nil(t, req.Discount)
}

func TestForOrder_MixedCurrenciesPassThrough(t *testing.T) {
	o := &order.Order{
		ID: 1,
		Items: []catalog.Item{
			{ID: 1, Name: "A", Price: 100, Currency: catalog.EUR},
			{ID: 2, Name: "B", Price: 200, Currency: catalog.USD},
		},
	}

	req := ForOrder(o, testURLs)

	assert.Equal(t, catalog.EUR, req.Currency, "session currency follows the first item")
	assert.Equal(t, catalog.EUR, req.LineItems[0].Currency)
	assert.Equal(t, catalog.USD, req.LineItems[1].Currency, "per-line currency is not coerced")
}

func TestForOrder_Idempotent(t *testing.T) {
	o := &order.Order{
		ID: 1,
		Items: []catalog.Item{
			{ID: 1, Name: "Keyboard", Price: 12900, Currency: catalog.USD},
		},
		Discount: &catalog.Discount{ID: 5, ProviderRef: "coupon_xyz"},
		Tax:      &catalog.Tax{ID: 6, ProviderRef: "txr_abc"},
	}

	first := ForOrder(o, testURLs)
	second := ForOrder(o, testURLs)

	assert.Equal(t, first, second)
}

func TestForItem(t *testing.T) {
	it := catalog.Item{ID: 3, Name: "Dock", Price: 8900, Currency: catalog.EUR}

	req := ForItem(it, testURLs)

	assert.Equal(t, ModePayment, req.Mode)
	assert.Equal(t, catalog.EUR, req.Currency)
	require.Len(t, req.LineItems, 1)
	assert.Equal(t, LineItem{
		Currency:   catalog.EUR,
		Name:       "Dock",
		UnitAmount: 8900,
		Quantity:   1,
	}, req.LineItems[0])
	assert.Nil(t, req.Discount)
	assert.False(t, req.AutomaticTax)
}
