package order

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"golang.org/x/sync/errgroup"

	"github.com/sellium/checkout-service/internal/domain/catalog"
)

// ErrNotFound is returned by Get when the order id does not exist.
var ErrNotFound = errors.New("order not found")

// ItemNotFoundError indicates a requested item id does not exist.
type ItemNotFoundError struct {
	ItemID int64
}

func (e *ItemNotFoundError) Error() string {
	return fmt.Sprintf("item %d not found", e.ItemID)
}

// DiscountNotFoundError indicates the referenced discount does not exist.
type DiscountNotFoundError struct {
	DiscountID int64
}

func (e *DiscountNotFoundError) Error() string {
	return fmt.Sprintf("discount %d not found", e.DiscountID)
}

// TaxNotFoundError indicates the referenced tax rate does not exist.
type TaxNotFoundError struct {
	TaxID int64
}

func (e *TaxNotFoundError) Error() string {
	return fmt.Sprintf("tax %d not found", e.TaxID)
}

// MixedCurrencyError indicates an order creation request referencing items
// in more than one currency while single-currency enforcement is on.
type MixedCurrencyError struct {
	Currencies []catalog.Currency
}

func (e *MixedCurrencyError) Error() string {
	return fmt.Sprintf("order items span multiple currencies: %v", e.Currencies)
}

// CreateRequest holds the input for creating an order. DiscountID and TaxID
// are optional references to provider-backed rules.
type CreateRequest struct {
	ItemIDs    []int64
	DiscountID *int64
	TaxID      *int64
}

// Config holds the tunable behaviour of the order service.
type Config struct {
	// EnforceSingleCurrency rejects creation requests whose items span more
	// than one currency. Downstream checkout assumes one currency per order,
	// so this is on by default.
	EnforceSingleCurrency bool
}

// Service encapsulates order creation and retrieval.
type Service struct {
	items     catalog.ItemRepository
	discounts catalog.DiscountRepository
	taxes     catalog.TaxRepository
	orders    Repository
	cfg       Config
}

// NewService creates an order Service with the required repositories.
func NewService(
	items catalog.ItemRepository,
	discounts catalog.DiscountRepository,
	taxes catalog.TaxRepository,
	orders Repository,
	cfg Config,
) *Service {
	return &Service{
		items:     items,
		discounts: discounts,
		taxes:     taxes,
		orders:    orders,
		cfg:       cfg,
	}
}

// Create resolves every referenced record, validates currency consistency,
// and persists the order with its item associations in one transaction.
// Nothing is written when any reference is absent. An empty item list is
// valid and yields an order with a zero total.
func (s *Service) Create(ctx context.Context, req CreateRequest) (*Order, error) {
	ids := dedupe(req.ItemIDs)

	o := &Order{}

	// Resolve items, discount, and tax concurrently; all reads must succeed
	// before anything is persisted.
	g, gctx := errgroup.WithContext(ctx)

	g.Go(func() error {
		items, err := s.resolveItems(gctx, ids)
		if err != nil {
			return err
		}
		o.Items = items
		return nil
	})

	if req.DiscountID != nil {
		id := *req.DiscountID
		g.Go(func() error {
			d, err := s.discounts.GetByID(gctx, id)
			if err != nil {
				if errors.Is(err, catalog.ErrDiscountNotFound) {
					return &DiscountNotFoundError{DiscountID: id}
				}
				return errors.Wrapf(err, "get discount %d", id)
			}
			o.Discount = d
			return nil
		})
	}

	if req.TaxID != nil {
		id := *req.TaxID
		g.Go(func() error {
			t, err := s.taxes.GetByID(gctx, id)
			if err != nil {
				if errors.Is(err, catalog.ErrTaxNotFound) {
					return &TaxNotFoundError{TaxID: id}
				}
				return errors.Wrapf(err, "get tax %d", id)
			}
			o.Tax = t
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	if s.cfg.EnforceSingleCurrency {
		if curs := currenciesOf(o.Items); len(curs) > 1 {
			return nil, &MixedCurrencyError{Currencies: curs}
		}
	}

	if err := s.orders.Create(ctx, o); err != nil {
		return nil, errors.Wrap(err, "create order")
	}

	return o, nil
}

// Get loads an order by id.
func (s *Service) Get(ctx context.Context, id int64) (*Order, error) {
	o, err := s.orders.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrNotFound
		}
		return nil, errors.Wrapf(err, "get order %d", id)
	}
	return o, nil
}

// resolveItems batch-fetches the requested items and verifies every id was
// found, preserving the request order.
func (s *Service) resolveItems(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	if len(ids) == 0 {
		return nil, nil
	}

	fetched, err := s.items.GetByIDs(ctx, ids)
	if err != nil {
		return nil, errors.Wrap(err, "get items")
	}

	byID := make(map[int64]catalog.Item, len(fetched))
	for _, it := range fetched {
		byID[it.ID] = it
	}

	items := make([]catalog.Item, 0, len(ids))
	for _, id := range ids {
		it, ok := byID[id]
		if !ok {
			return nil, &ItemNotFoundError{ItemID: id}
		}
		items = append(items, it)
	}
	return items, nil
}

// dedupe collapses duplicate ids, keeping first-seen order.
func dedupe(ids []int64) []int64 {
	seen := make(map[int64]struct{}, len(ids))
	out := make([]int64, 0, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			continue
		}
		seen[id] = struct{}{}
		out = append(out, id)
	}
	return out
}

// currenciesOf returns the distinct currencies across items, in first-seen order.
func currenciesOf(items []catalog.Item) []catalog.Currency {
	seen := make(map[catalog.Currency]struct{}, 2)
	var out []catalog.Currency
	for _, it := range items {
		if _, ok := seen[it.Currency]; ok {
			continue
		}
		seen[it.Currency] = struct{}{}
		out = append(out, it.Currency)
	}
	return out
}
