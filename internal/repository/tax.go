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
	getTaxByIDSQL = `SELECT id, provider_ref, name FROM taxes WHERE id = $1`
	createTaxSQL  = `INSERT INTO taxes (provider_ref, name) VALUES ($1, $2) RETURNING id`
	deleteTaxSQL  = `DELETE FROM taxes WHERE id = $1`
)

var _ catalog.TaxRepository = (*TaxRepository)(nil)

// TaxRepository implements catalog.TaxRepository backed by PostgreSQL.
type TaxRepository struct {
	pool *pgxpool.Pool
}

// NewTaxRepository returns a TaxRepository that uses the given pool.
func NewTaxRepository(pool *pgxpool.Pool) *TaxRepository {
	return &TaxRepository{pool: pool}
}

// GetByID returns a tax rate by its identifier.
func (r *TaxRepository) GetByID(ctx context.Context, id int64) (*catalog.Tax, error) {
	var t catalog.Tax
	err := r.pool.QueryRow(ctx, getTaxByIDSQL, id).Scan(&t.ID, &t.ProviderRef, &t.Name)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, catalog.ErrTaxNotFound
		}
		return nil, fmt.Errorf("getting tax %d: %w", id, err)
	}
	return &t, nil
}

// Create persists a new tax rate and assigns its generated ID.
func (r *TaxRepository) Create(ctx context.Context, t *catalog.Tax) error {
	err := r.pool.QueryRow(ctx, createTaxSQL, t.ProviderRef, t.Name).Scan(&t.ID)
	if err != nil {
		return fmt.Errorf("creating tax %q: %w", t.ProviderRef, err)
	}
	return nil
}

// Delete removes a tax rate; referencing orders get their reference nulled.
func (r *TaxRepository) Delete(ctx context.Context, id int64) error {
	tag, err := r.pool.Exec(ctx, deleteTaxSQL, id)
	if err != nil {
		return fmt.Errorf("deleting tax %d: %w", id, err)
	}
	if tag.RowsAffected() == 0 {
		return catalog.ErrTaxNotFound
	}
	return nil
}
