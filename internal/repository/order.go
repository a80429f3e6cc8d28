package repository

import (
	"context"
	"fmt"

	"github.com/go-faster/errors"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/sellium/checkout-service/internal/domain/catalog"
	"github.com/sellium/checkout-service/internal/domain/order"
)

const (
	createOrderSQL = `INSERT INTO orders (discount_id, tax_id)
		VALUES ($1, $2) RETURNING id, created_at`

	createOrderItemSQL = `INSERT INTO order_items (order_id, item_id, position)
		VALUES ($1, $2, $3)`

	getOrderSQL = `SELECT o.id, o.created_at,
			d.id, d.provider_ref, d.name,
			t.id, t.provider_ref, t.name
		FROM orders o
		LEFT JOIN discounts d ON d.id = o.discount_id
		LEFT JOIN taxes t ON t.id = o.tax_id
		WHERE o.id = $1`

	getOrderItemsSQL = `SELECT i.id, i.name, i.description, i.price, i.currency
		FROM order_items oi
		JOIN items i ON i.id = oi.item_id
		WHERE oi.order_id = $1
		ORDER BY oi.position`
)

var _ order.Repository = (*OrderRepository)(nil)

// OrderRepository implements order.Repository backed by PostgreSQL.
type OrderRepository struct {
	pool *pgxpool.Pool
}

// NewOrderRepository returns an OrderRepository that uses the given pool.
func NewOrderRepository(pool *pgxpool.Pool) *OrderRepository {
	return &OrderRepository{pool: pool}
}

// Create persists the order row and its item associations in a single
// transaction and assigns the generated ID and creation timestamp.
func (r *OrderRepository) Create(ctx context.Context, o *order.Order) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx) //nolint:errcheck // no-op after commit

	var discountID, taxID *int64
	if o.Discount != nil {
		discountID = &o.Discount.ID
	}
	if o.Tax != nil {
		taxID = &o.Tax.ID
	}

	if err := tx.QueryRow(ctx, createOrderSQL, discountID, taxID).
		Scan(&o.ID, &o.CreatedAt); err != nil {
		return fmt.Errorf("creating order: %w", err)
	}

	for pos, it := range o.Items {
		if _, err := tx.Exec(ctx, createOrderItemSQL, o.ID, it.ID, pos); err != nil {
			return fmt.Errorf("associating item %d with order %d: %w", it.ID, o.ID, err)
		}
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing order %d: %w", o.ID, err)
	}
	return nil
}

// GetByID loads an order with its items in association order. A discount or
// tax that was deleted since creation simply comes back absent.
func (r *OrderRepository) GetByID(ctx context.Context, id int64) (*order.Order, error) {
	o := &order.Order{}

	var (
		dID, tID     *int64
		dRef, dName  *string
		tRef, tName  *string
	)
	err := r.pool.QueryRow(ctx, getOrderSQL, id).Scan(
		&o.ID, &o.CreatedAt,
		&dID, &dRef, &dName,
		&tID, &tRef, &tName,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, order.ErrNotFound
		}
		return nil, fmt.Errorf("getting order %d: %w", id, err)
	}

	if dID != nil {
		o.Discount = &catalog.Discount{ID: *dID, ProviderRef: *dRef, Name: *dName}
	}
	if tID != nil {
		o.Tax = &catalog.Tax{ID: *tID, ProviderRef: *tRef, Name: *tName}
	}

	rows, err := r.pool.Query(ctx, getOrderItemsSQL, id)
	if err != nil {
		return nil, fmt.Errorf("getting items of order %d: %w", id, err)
	}
	items, err := pgx.CollectRows(rows, scanItem)
	if err != nil {
		return nil, fmt.Errorf("scanning items of order %d: %w", id, err)
	}
	o.Items = items

	return o, nil
}
