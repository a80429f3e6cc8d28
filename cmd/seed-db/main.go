// Command seed-db loads catalog fixtures (items, discounts, taxes) from a
// JSON file and registers an admin API key.
package main

import (
	"context"
	"crypto/hmac"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"flag"
	"log/slog"
	"os"
	"os/signal"

	"github.com/go-faster/errors"
	"github.com/google/uuid"

	"github.com/sellium/checkout-service/internal/domain/auth"
	"github.com/sellium/checkout-service/internal/domain/catalog"
	"github.com/sellium/checkout-service/internal/repository"
)

type seedFile struct {
	Items []struct {
		Name        string `json:"name"`
		Description string `json:"description"`
		Price       int64  `json:"price"`
		Currency    string `json:"currency"`
	} `json:"items"`
	Discounts []struct {
		ProviderRef string `json:"provider_ref"`
		Name        string `json:"name"`
	} `json:"discounts"`
	Taxes []struct {
		ProviderRef string `json:"provider_ref"`
		Name        string `json:"name"`
	} `json:"taxes"`
}

func main() {
	var (
		databaseURL  string
		seedPath     string
		apiKey       string
		apiKeyPepper string
	)

	flag.StringVar(&databaseURL, "database-url", "", "PostgreSQL connection URL (or DATABASE_URL env)")
	flag.StringVar(&seedPath, "seed-file", "db/seed/catalog.json", "path to catalog JSON file")
	flag.StringVar(&apiKey, "api-key", "", "admin API key to seed (or CHECKOUT_SEED_API_KEY env)")
	flag.StringVar(&apiKeyPepper, "api-key-pepper", "", "HMAC pepper for API key hashing (or CHECKOUT_API_KEY_PEPPER env)")
	flag.Parse()

	if databaseURL == "" {
		databaseURL = os.Getenv("DATABASE_URL")
	}
	if databaseURL == "" {
		slog.Error("database URL is required: set --database-url or DATABASE_URL")
		os.Exit(1)
	}
	if apiKey == "" {
		apiKey = os.Getenv("CHECKOUT_SEED_API_KEY")
	}
	if apiKeyPepper == "" {
		apiKeyPepper = os.Getenv("CHECKOUT_API_KEY_PEPPER")
	}

	ctx, cancel := signal.NotifyContext(context.Background(), os.Interrupt)
	defer cancel()

	if err := run(ctx, databaseURL, seedPath, apiKey, apiKeyPepper); err != nil {
		slog.Error("seed failed", slog.String("error", err.Error()))
		os.Exit(1)
	}

	slog.Info("seed completed successfully")
}

func run(ctx context.Context, databaseURL, seedPath, apiKey, pepper string) error {
	slog.Info("connecting to database")

	pool, err := repository.NewPool(ctx, databaseURL)
	if err != nil {
		return errors.Wrap(err, "connect to database")
	}
	defer pool.Close()

	if err := repository.RunMigrations(ctx, pool); err != nil {
		return errors.Wrap(err, "run migrations")
	}

	raw, err := os.ReadFile(seedPath)
	if err != nil {
		return errors.Wrapf(err, "read seed file %s", seedPath)
	}
	var seed seedFile
	if err := json.Unmarshal(raw, &seed); err != nil {
		return errors.Wrap(err, "parse seed file")
	}

	items := repository.NewItemRepository(pool)
	for _, s := range seed.Items {
		cur, err := catalog.ParseCurrency(s.Currency)
		if err != nil {
			return errors.Wrapf(err, "item %q", s.Name)
		}
		it := &catalog.Item{
			Name:        s.Name,
			Description: s.Description,
			Price:       s.Price,
			Currency:    cur,
		}
		if err := items.Create(ctx, it); err != nil {
			return err
		}
		slog.Info("seeded item", slog.Int64("id", it.ID), slog.String("name", it.Name))
	}

	discounts := repository.NewDiscountRepository(pool)
	for _, s := range seed.Discounts {
		d := &catalog.Discount{ProviderRef: s.ProviderRef, Name: s.Name}
		if err := discounts.Create(ctx, d); err != nil {
			return err
		}
		slog.Info("seeded discount", slog.Int64("id", d.ID), slog.String("name", d.Name))
	}

	taxes := repository.NewTaxRepository(pool)
	for _, s := range seed.Taxes {
		t := &catalog.Tax{ProviderRef: s.ProviderRef, Name: s.Name}
		if err := taxes.Create(ctx, t); err != nil {
			return err
		}
		slog.Info("seeded tax", slog.Int64("id", t.ID), slog.String("name", t.Name))
	}

	if apiKey != "" {
		mac := hmac.New(sha256.New, []byte(pepper))
		mac.Write([]byte(apiKey))
		hash := hex.EncodeToString(mac.Sum(nil))

		apikeys := repository.NewAPIKeyRepository(pool)
		if err := apikeys.Create(ctx, &auth.APIKeyInfo{
			ID:      uuid.New().String(),
			KeyHash: hash,
			Name:    "seed-admin",
			Scopes:  []string{"admin"},
		}); err != nil {
			return errors.Wrap(err, "seed api key")
		}
		slog.Info("seeded admin api key")
	}

	return nil
}
