package stripe

import (
	"fmt"
	"os"
	"strings"

	"github.com/sellium/checkout-service/internal/domain/catalog"
)

// KeyPair is one per-currency credential pair: the secret key authenticates
// API calls, the publishable key goes into buyer-facing pages.
type KeyPair struct {
	Secret      string
	Publishable string
}

// Keys maps each supported currency to its credential pair. It is built once
// at process start and passed by reference; credentials do not change at
// runtime.
type Keys map[catalog.Currency]KeyPair

// LoadKeysFromEnv reads per-currency credentials using the
// {PUBLIC|SECRET}_KEY_{CURRENCY} naming convention, e.g. SECRET_KEY_USD.
// Currencies with neither key set are omitted from the map.
func LoadKeysFromEnv() Keys {
	keys := make(Keys, len(catalog.Currencies))
	for _, cur := range catalog.Currencies {
		suffix := strings.ToUpper(string(cur))
		pair := KeyPair{
			Secret:      os.Getenv(fmt.Sprintf("SECRET_KEY_%s", suffix)),
			Publishable: os.Getenv(fmt.Sprintf("PUBLIC_KEY_%s", suffix)),
		}
		if pair.Secret == "" && pair.Publishable == "" {
			continue
		}
		keys[cur] = pair
	}
	return keys
}
