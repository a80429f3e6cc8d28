package stripe

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sellium/checkout-service/internal/domain/catalog"
	"github.com/sellium/checkout-service/internal/domain/checkout"
)

func TestEncodeForm(t *testing.T) {
	req := checkout.Request{
		Mode:     checkout.ModePayment,
		Currency: catalog.USD,
		LineItems: []checkout.LineItem{
			{Currency: catalog.USD, Name: "Keyboard", UnitAmount: 12900, Quantity: 1},
			{Currency: catalog.USD, Name: "Mouse", UnitAmount: 4900, Quantity: 1},
		},
		URLs: checkout.CallbackURLs{
			Success: "https://shop.example/success",
			Cancel:  "https://shop.example/order/1",
		},
	}

	v := encodeForm(req)

	assert.Equal(t, "payment", v.Get("mode"))
	assert.Equal(t, "https://shop.example/success", v.Get("success_url"))
	assert.Equal(t, "https://shop.example/order/1", v.Get("cancel_url"))

	assert.Equal(t, "usd", v.Get("line_items[0][price_data][currency]"))
	assert.Equal(t, "Keyboard", v.Get("line_items[0][price_data][product_data][name]"))
	assert.Equal(t, "12900", v.Get("line_items[0][price_data][unit_amount]"))
	assert.Equal(t, "1", v.Get("line_items[0][quantity]"))
	assert.Equal(t, "Mouse", v.Get("line_items[1][price_data][product_data][name]"))

	assert.Empty(t, v.Get("discounts[0][coupon]"))
	assert.Empty(t, v.Get("automatic_tax[enabled]"))
}

func TestEncodeForm_Directives(t *testing.T) {
	req := checkout.Request{
		Mode:         checkout.ModePayment,
		Currency:     catalog.USD,
		Discount:     &checkout.DiscountRef{Coupon: "coupon_xyz"},
		AutomaticTax: true,
	}

	v := encodeForm(req)

	assert.Equal(t, "coupon_xyz", v.Get("discounts[0][coupon]"))
	assert.Equal(t, "true", v.Get("automatic_tax[enabled]"))
}
