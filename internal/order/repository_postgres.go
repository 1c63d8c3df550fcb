package order

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository relies on the orders_changed trigger for change signals.
type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const orderColumns = `id, customer_name, total, items, status, daily_order_number, restaurant_id, created_at`

func scanOrder(row pgx.Row) (*Order, error) {
	var (
		o     Order
		items []byte
	)
	if err := row.Scan(
		&o.ID,
		&o.CustomerName,
		&o.Total,
		&items,
		&o.Status,
		&o.DailyOrderNumber,
		&o.RestaurantID,
		&o.CreatedAt,
	); err != nil {
		return nil, err
	}

	if err := json.Unmarshal(items, &o.Items); err != nil {
		return nil, fmt.Errorf("decode order items: %w", err)
	}
	return &o, nil
}

// --------------------------------------------------
// Place order (daily number under an advisory lock)
// --------------------------------------------------
func (r *PostgresRepository) Place(ctx context.Context, o *Order) error {
	items, err := json.Marshal(o.Items)
	if err != nil {
		return fmt.Errorf("encode order items: %w", err)
	}

	tx, err := r.db.Begin(ctx)
	if err != nil {
		return err
	}
	defer tx.Rollback(ctx)

	if _, err := tx.Exec(ctx, `SELECT pg_advisory_xact_lock($1)`, o.RestaurantID); err != nil {
		return err
	}

	var number int
	err = tx.QueryRow(ctx, `
		SELECT COALESCE(MAX(daily_order_number), 0) + 1
		FROM orders
		WHERE restaurant_id = $1
		  AND created_at >= date_trunc('day', now())
	`, o.RestaurantID).Scan(&number)
	if err != nil {
		return err
	}

	err = tx.QueryRow(ctx, `
		INSERT INTO orders (customer_name, total, items, status, daily_order_number, restaurant_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id, created_at
	`,
		o.CustomerName,
		o.Total,
		items,
		StatusPending,
		number,
		o.RestaurantID,
	).Scan(&o.ID, &o.CreatedAt)
	if err != nil {
		return err
	}

	o.Status = StatusPending
	o.DailyOrderNumber = number
	return tx.Commit(ctx)
}

// --------------------------------------------------
// List orders of one restaurant (newest first)
// --------------------------------------------------
func (r *PostgresRepository) ListByRestaurant(ctx context.Context, restaurantID int64) ([]Order, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+orderColumns+`
		FROM orders
		WHERE restaurant_id = $1
		ORDER BY id DESC
	`, restaurantID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := []Order{}
	for rows.Next() {
		o, err := scanOrder(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, *o)
	}
	return out, rows.Err()
}

func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Order, error) {
	row := r.db.QueryRow(ctx, `SELECT `+orderColumns+` FROM orders WHERE id = $1`, id)

	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrNotFound
	}
	return o, err
}

// --------------------------------------------------
// Guarded status update
// --------------------------------------------------
func (r *PostgresRepository) UpdateStatus(ctx context.Context, id int64, from, to Status) (*Order, error) {
	row := r.db.QueryRow(ctx, `
		UPDATE orders
		SET status = $3
		WHERE id = $1 AND status = $2
		RETURNING `+orderColumns,
		id, from, to,
	)

	o, err := scanOrder(row)
	if errors.Is(err, pgx.ErrNoRows) {
		if _, getErr := r.Get(ctx, id); getErr != nil {
			return nil, getErr
		}
		return nil, ErrStatusConflict
	}
	return o, err
}
