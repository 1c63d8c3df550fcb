package menu

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

const itemColumns = `
	id,
	name,
	price,
	description,
	category_id,
	in_stock,
	takeaway_available,
	parcel_charge,
	restaurant_id
`

func scanItem(row pgx.Row) (*MenuItem, error) {
	var item MenuItem
	err := row.Scan(
		&item.ID,
		&item.Name,
		&item.Price,
		&item.Description,
		&item.CategoryID,
		&item.InStock,
		&item.TakeawayAvailable,
		&item.ParcelCharge,
		&item.RestaurantID,
	)
	if err != nil {
		return nil, err
	}
	return &item, nil
}

// --------------------------------------------------
// CATEGORIES
// --------------------------------------------------

func (r *PostgresRepository) ListCategories(ctx context.Context, restaurantID int64) ([]Category, error) {
	rows, err := r.db.Query(ctx, `
		SELECT id, name, restaurant_id
		FROM categories
		WHERE restaurant_id = $1
		ORDER BY id
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list categories: %w", err)
	}
	defer rows.Close()

	categories := []Category{}
	for rows.Next() {
		var c Category
		if err := rows.Scan(&c.ID, &c.Name, &c.RestaurantID); err != nil {
			return nil, err
		}
		categories = append(categories, c)
	}

	return categories, rows.Err()
}

func (r *PostgresRepository) GetCategory(ctx context.Context, id int64) (*Category, error) {
	var c Category
	err := r.db.QueryRow(ctx, `
		SELECT id, name, restaurant_id
		FROM categories
		WHERE id = $1
	`, id).Scan(&c.ID, &c.Name, &c.RestaurantID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrCategoryNotFound
		}
		return nil, fmt.Errorf("get category %d: %w", id, err)
	}
	return &c, nil
}

func (r *PostgresRepository) CreateCategory(ctx context.Context, c *Category) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO categories (name, restaurant_id)
		VALUES ($1, $2)
		RETURNING id
	`, c.Name, c.RestaurantID).Scan(&c.ID)
}

func (r *PostgresRepository) UpdateCategory(ctx context.Context, c *Category) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE categories
		SET name = $1
		WHERE id = $2
	`, c.Name, c.ID)
	if err != nil {
		return fmt.Errorf("update category %d: %w", c.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteCategory(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM categories WHERE id = $1`, id)
	if err != nil {
		// menu_items.category_id is ON DELETE RESTRICT
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23503" {
			return ErrCategoryInUse
		}
		return fmt.Errorf("delete category %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrCategoryNotFound
	}
	return nil
}

// --------------------------------------------------
// MENU ITEMS
// --------------------------------------------------

func (r *PostgresRepository) ListItems(ctx context.Context, restaurantID int64) ([]MenuItem, error) {
	rows, err := r.db.Query(ctx, `
		SELECT `+itemColumns+`
		FROM menu_items
		WHERE restaurant_id = $1
		ORDER BY id
	`, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("list menu items: %w", err)
	}
	defer rows.Close()

	items := []MenuItem{}
	for rows.Next() {
		item, err := scanItem(rows)
		if err != nil {
			return nil, err
		}
		items = append(items, *item)
	}

	return items, rows.Err()
}

func (r *PostgresRepository) GetItem(ctx context.Context, id int64) (*MenuItem, error) {
	item, err := scanItem(r.db.QueryRow(ctx, `
		SELECT `+itemColumns+`
		FROM menu_items
		WHERE id = $1
	`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrItemNotFound
		}
		return nil, fmt.Errorf("get menu item %d: %w", id, err)
	}
	return item, nil
}

func (r *PostgresRepository) CreateItem(ctx context.Context, item *MenuItem) error {
	return r.db.QueryRow(ctx, `
		INSERT INTO menu_items (
			name,
			price,
			description,
			category_id,
			in_stock,
			takeaway_available,
			parcel_charge,
			restaurant_id
		)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id
	`,
		item.Name,
		item.Price,
		item.Description,
		item.CategoryID,
		item.InStock,
		item.TakeawayAvailable,
		item.ParcelCharge,
		item.RestaurantID,
	).Scan(&item.ID)
}

func (r *PostgresRepository) UpdateItem(ctx context.Context, item *MenuItem) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET name = $1,
		    price = $2,
		    description = $3,
		    category_id = $4,
		    in_stock = $5,
		    takeaway_available = $6,
		    parcel_charge = $7
		WHERE id = $8
	`,
		item.Name,
		item.Price,
		item.Description,
		item.CategoryID,
		item.InStock,
		item.TakeawayAvailable,
		item.ParcelCharge,
		item.ID,
	)
	if err != nil {
		return fmt.Errorf("update menu item %d: %w", item.ID, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) DeleteItem(ctx context.Context, id int64) error {
	cmd, err := r.db.Exec(ctx, `DELETE FROM menu_items WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete menu item %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}

func (r *PostgresRepository) SetInStock(ctx context.Context, id int64, inStock bool) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE menu_items
		SET in_stock = $1
		WHERE id = $2
	`, inStock, id)
	if err != nil {
		return fmt.Errorf("set stock %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrItemNotFound
	}
	return nil
}
