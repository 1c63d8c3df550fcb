package db

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/rs/zerolog"
)

func ConnectPostgres(ctx context.Context, dsn string, log zerolog.Logger) (*pgxpool.Pool, error) {
	if dsn == "" {
		return nil, fmt.Errorf("DATABASE_URL not set")
	}

	config, err := pgxpool.ParseConfig(dsn)
	if err != nil {
		return nil, err
	}

	config.MaxConns = 10
	config.MinConns = 2
	config.MaxConnLifetime = time.Hour

	db, err := pgxpool.NewWithConfig(ctx, config)
	if err != nil {
		return nil, err
	}

	if err := db.Ping(ctx); err != nil {
		db.Close()
		return nil, fmt.Errorf("postgres connection failed: %w", err)
	}

	log.Info().Str("host", config.ConnConfig.Host).Msg("connected to postgres")

	// Initialize schema
	if err := initSchema(ctx, db); err != nil {
		db.Close()
		return nil, fmt.Errorf("initialize schema: %w", err)
	}

	log.Info().Msg("schema initialized")
	return db, nil
}

// schema is applied in order on every start; each statement is idempotent.
var schema = []struct {
	name string
	sql  string
}{
	// -------------------------------
	// USERS
	// -------------------------------
	{"users", `
		CREATE TABLE IF NOT EXISTS users (
			id UUID PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			email VARCHAR(255) UNIQUE NOT NULL,
			password VARCHAR(255) NOT NULL,
			role VARCHAR(50) NOT NULL DEFAULT 'ADMIN',
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`},

	// -------------------------------
	// RESTAURANTS
	// -------------------------------
	{"restaurants", `
		CREATE TABLE IF NOT EXISTS restaurants (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			logo_url TEXT NULL,
			display_preference VARCHAR(20) NULL,
			universal_parcel_charge NUMERIC(10,2) NOT NULL DEFAULT 0
				CHECK (universal_parcel_charge >= 0),
			created_at TIMESTAMPTZ DEFAULT CURRENT_TIMESTAMP
		)
	`},
	{"restaurant_users", `
		CREATE TABLE IF NOT EXISTS restaurant_users (
			user_id UUID PRIMARY KEY REFERENCES users(id) ON DELETE CASCADE,
			restaurant_id BIGINT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE
		)
	`},

	// -------------------------------
	// MENU
	// -------------------------------
	{"categories", `
		CREATE TABLE IF NOT EXISTS categories (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			restaurant_id BIGINT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE
		)
	`},
	{"menu_items", `
		CREATE TABLE IF NOT EXISTS menu_items (
			id BIGSERIAL PRIMARY KEY,
			name VARCHAR(255) NOT NULL,
			price NUMERIC(10,2) NOT NULL CHECK (price >= 0),
			description TEXT NULL,
			category_id BIGINT NOT NULL REFERENCES categories(id) ON DELETE RESTRICT,
			in_stock BOOLEAN NOT NULL DEFAULT TRUE,
			takeaway_available BOOLEAN NOT NULL DEFAULT TRUE,
			parcel_charge NUMERIC(10,2) NULL CHECK (parcel_charge >= 0),
			restaurant_id BIGINT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE
		)
	`},

	// -------------------------------
	// ORDERS
	// -------------------------------
	{"orders", `
		CREATE TABLE IF NOT EXISTS orders (
			id BIGSERIAL PRIMARY KEY,
			customer_name VARCHAR(255) NOT NULL,
			total NUMERIC(10,2) NOT NULL,
			items JSONB NOT NULL,
			status VARCHAR(20) NOT NULL DEFAULT 'Pending',
			daily_order_number INT NOT NULL,
			restaurant_id BIGINT NOT NULL REFERENCES restaurants(id) ON DELETE CASCADE,
			created_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`},
	{"orders_restaurant_idx", `
		CREATE INDEX IF NOT EXISTS orders_restaurant_created_idx
		ON orders (restaurant_id, created_at)
	`},

	// -------------------------------
	// CHANGE SIGNALS (LISTEN orders_changed)
	// -------------------------------
	{"notify_function", `
		CREATE OR REPLACE FUNCTION notify_orders_changed() RETURNS trigger AS $$
		BEGIN
			PERFORM pg_notify('orders_changed', NEW.restaurant_id::text);
			RETURN NEW;
		END;
		$$ LANGUAGE plpgsql
	`},
	{"notify_trigger", `
		CREATE OR REPLACE TRIGGER orders_changed
		AFTER INSERT OR UPDATE ON orders
		FOR EACH ROW EXECUTE FUNCTION notify_orders_changed()
	`},
}

// initSchema creates or updates the database schema
func initSchema(ctx context.Context, db *pgxpool.Pool) error {
	for _, stmt := range schema {
		if _, err := db.Exec(ctx, stmt.sql); err != nil {
			return fmt.Errorf("%s: %w", stmt.name, err)
		}
	}
	return nil
}
