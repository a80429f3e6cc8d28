package stripe

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/sellium/checkout-service/internal/domain/checkout"
)

// encodeForm flattens a checkout request into the provider's form-encoded
// parameter shape: nested fields use bracketed paths, e.g.
// line_items[0][price_data][currency]=usd.
func encodeForm(req checkout.Request) url.Values {
	v := url.Values{}
	v.Set("mode", req.Mode)
	v.Set("success_url", req.URLs.Success)
	v.Set("cancel_url", req.URLs.Cancel)

	for i, line := range req.LineItems {
		prefix := fmt.Sprintf("line_items[%d]", i)
		v.Set(prefix+"[price_data][currency]", string(line.Currency))
		v.Set(prefix+"[price_data][product_data][name]", line.Name)
		v.Set(prefix+"[price_data][unit_amount]", strconv.FormatInt(line.UnitAmount, 10))
		v.Set(prefix+"[quantity]", strconv.Itoa(line.Quantity))
	}

	if req.Discount != nil {
		v.Set("discounts[0][coupon]", req.Discount.Coupon)
	}
	if req.AutomaticTax {
		v.Set("automatic_tax[enabled]", "true")
	}

	return v
}
