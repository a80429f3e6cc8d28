package catalog

import "github.com/go-faster/errors"

// Currency is an ISO 4217 code in lowercase. The catalog supports a closed
// set of currencies; orders default to USD when they have no items.
type Currency string

const (
	USD Currency = "usd"
	EUR Currency = "eur"
)

// DefaultCurrency is used for orders with no associated items.
const DefaultCurrency = USD

// Currencies lists every supported currency.
var Currencies = []Currency{USD, EUR}

// ErrUnsupportedCurrency is returned by ParseCurrency for codes outside the
// supported set.
var ErrUnsupportedCurrency = errors.New("unsupported currency")

// ParseCurrency validates a raw currency code against the supported set.
func ParseCurrency(raw string) (Currency, error) {
	for _, c := range Currencies {
		if Currency(raw) == c {
			return c, nil
		}
	}
	return "", errors.Wrapf(ErrUnsupportedCurrency, "%q", raw)
}
