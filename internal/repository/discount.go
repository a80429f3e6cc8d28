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
	getDiscountByIDSQL = `SELECT id, provider_ref, name FROM discounts WHERE id = $1`
	createDiscountSQL  = `INSERT INTO discounts (provider_ref, name) VALUES ($1, $2) RETURNING id`
	deleteDiscountSQL  = `DELETE FROM discounts WHERE id = $1`
)

var _ catalog.DiscountRepository = (*DiscountRepository)(nil)

// DiscountRepository implements catalog.DiscountRepository backed by PostgreSQL.
type DiscountRepository struct {
	pool *pgxpool.Pool
}

// NewDiscountRepository returns a DiscountRepository that uses the given pool.
func NewDiscountRepository(pool *pgxpool.Pool) *DiscountRepository {
	return &DiscountRepository{pool: pool}
}

// GetByID returns a discount by its identifier.
func (r *DiscountRepository) GetByID(ctx context.Context, id int64) (*catalog.Discount, error) {
	var d catalog.Discount
	err := r.pool.QueryRow(ctx, getDiscountByIDSQL, id).Scan(&d.ID, &d.ProviderRef, &d.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrDiscountNotFound
		}
		return nil, fmt.Errorf("getting discount %d: %w", id, err)
	}
	return &d, nil
}

// Create persists a new discount and assigns its generated ID.
func (r *DiscountRepository) Create(ctx context.Context, d *catalog.Discount) error {
	err := r.pool.QueryRow(ctx, createDiscountSQL, d.ProviderRef, d.Name).Scan(&d.ID)
	if err != nil {
		return fmt.Errorf("creating discount %q: %w", d.ProviderRef, err)
	}
	return nil
}

// Delete removes a discount. Orders referencing it keep working: the schema
// nulls their reference.
func (r *DiscountRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteDiscountSQL, id)
	if err != nil {
		return fmt.Errorf("deleting discount %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrDiscountNotFound
	}
	return nil
}
