package db

import (
	"context"
	"os"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

// TestConnectPostgres tests the Postgres connection with DATABASE_URL
func TestConnectPostgres(t *testing.T) {
	t.Run("missing DATABASE_URL returns an error", func(t *testing.T) {
		if _, err := ConnectPostgres(context.Background(), "", zerolog.Nop()); err == nil {
			t.Fatal("expected an error for an empty dsn")
		}
	})

	t.Run("malformed DATABASE_URL returns an error", func(t *testing.T) {
		if _, err := ConnectPostgres(context.Background(), "postgres://%zz", zerolog.Nop()); err == nil {
			t.Fatal("expected a parse error")
		}
	})

	t.Run("valid DATABASE_URL should connect", func(t *testing.T) {
		// Skip if DATABASE_URL is not set
		dsn := os.Getenv("DATABASE_URL")
		if dsn == "" {
			t.Skip("DATABASE_URL not set, skipping integration test")
		}

		pool, err := ConnectPostgres(context.Background(), dsn, zerolog.Nop())
		if err != nil {
			t.Fatalf("connect: %v", err)
		}
		defer pool.Close()

		// schema bootstrap is idempotent
		if err := initSchema(context.Background(), pool); err != nil {
			t.Fatalf("second initSchema: %v", err)
		}
	})
}

func TestSchemaOrder(t *testing.T) {
	seen := map[string]bool{}
	for _, stmt := range schema {
		for _, ref := range []string{"users(id)", "restaurants(id)", "categories(id)"} {
			if strings.Contains(stmt.sql, "REFERENCES "+ref) {
				table := strings.TrimSuffix(ref, "(id)")
				if !seen[table] {
					t.Errorf("%s references %s before it is created", stmt.name, table)
				}
			}
		}
		seen[stmt.name] = true
	}
}
