package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellium/checkout-service/internal/domain/catalog"
)

const (
	listItemsSQL = `SELECT id, name, description, price, currency
		FROM items ORDER BY id`

	getItemByIDSQL = `SELECT id, name, description, price, currency
		FROM items WHERE id = $1`

	getItemsByIDsSQL = `SELECT id, name, description, price, currency
		FROM items WHERE id = ANY($1)`

	createItemSQL = `INSERT INTO items (name, description, price, currency)
		VALUES ($1, $2, $3, $4) RETURNING id`
)

var _ catalog.ItemRepository = (*ItemRepository)(nil)

// ItemRepository implements catalog.ItemRepository backed by PostgreSQL.
type ItemRepository struct {
	pool *pgxpool.Pool
}

// NewItemRepository returns an ItemRepository that uses the given pool.
func NewItemRepository(pool *pgxpool.Pool) *ItemRepository {
	return &ItemRepository{pool: pool}
}

// List returns all catalog items ordered by ID.
func (r *ItemRepository) List(ctx context.Context) ([]catalog.Item, error) {
	rows, err := r.pool.Query(ctx, listItemsSQL)
	if err != nil {
		return nil, fmt.Errorf("listing items: %w", err)
	}
	return pgx.CollectRows(rows, scanItem)
}

// GetByID returns a single item by its identifier.
func (r *ItemRepository) GetByID(ctx context.Context, id int64) (*catalog.Item, error) {
	rows, err := r.pool.Query(ctx, getItemByIDSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}

	it, err := pgx.CollectExactlyOneRow(rows, scanItem)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrItemNotFound
		}
		return nil, fmt.Errorf("getting item %d: %w", id, err)
	}
	return &it, nil
}

// GetByIDs returns items matching any of the given IDs.
func (r *ItemRepository) GetByIDs(ctx context.Context, ids []int64) ([]catalog.Item, error) {
	rows, err := r.pool.Query(ctx, getItemsByIDsSQL, ids)
	if err != nil {
		return nil, fmt.Errorf("getting items by ids: %w", err)
	}
	return pgx.CollectRows(rows, scanItem)
}

// Create persists a new catalog item and assigns its generated ID.
func (r *ItemRepository) Create(ctx context.Context, it *catalog.Item) error {
	err := r.pool.QueryRow(ctx, createItemSQL,
		it.Name, it.Description, it.Price, string(it.Currency),
	).Scan(&it.ID)
	if err != nil {
		return fmt.Errorf("creating item %q: %w", it.Name, err)
	}
	return nil
}

func scanItem(row pgx.CollectableRow) (catalog.Item, error) {
	var (
		it  catalog.Item
		cur string
	)
	err := row.Scan(&it.ID, &it.Name, &it.Description, &it.Price, &cur)
	it.Currency = catalog.Currency(cur)
	return it, err
}
