package restaurant

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type PostgresRepository struct {
	db *pgxpool.Pool
}

func NewPostgresRepository(db *pgxpool.Pool) *PostgresRepository {
	return &PostgresRepository{db: db}
}

// --------------------------------------------------
// Create a restaurant (seeding / onboarding)
// --------------------------------------------------
func (r *PostgresRepository) Create(ctx context.Context, res *Restaurant) error {
	query := `
		INSERT INTO restaurants (
			name,
			logo_url,
			display_preference,
			universal_parcel_charge
		)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at
	`

	return r.db.QueryRow(
		ctx,
		query,
		res.Name,
		res.LogoURL,
		res.DisplayPreference,
		res.UniversalParcelCharge,
	).Scan(&res.ID, &res.CreatedAt)
}

// --------------------------------------------------
// Get restaurant by id
// --------------------------------------------------
func (r *PostgresRepository) Get(ctx context.Context, id int64) (*Restaurant, error) {
	var res Restaurant

	err := r.db.QueryRow(ctx, `
		SELECT
			id,
			name,
			logo_url,
			display_preference,
			universal_parcel_charge,
			created_at
		FROM restaurants
		WHERE id = $1
	`, id).Scan(
		&res.ID,
		&res.Name,
		&res.LogoURL,
		&res.DisplayPreference,
		&res.UniversalParcelCharge,
		&res.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrNotFound
		}
		return nil, fmt.Errorf("get restaurant %d: %w", id, err)
	}

	return &res, nil
}

// --------------------------------------------------
// Settings: name + universal parcel charge
// --------------------------------------------------
func (r *PostgresRepository) UpdateDetails(ctx context.Context, id int64, s Settings) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET name = $1,
		    universal_parcel_charge = $2
		WHERE id = $3
	`, s.Name, s.UniversalParcelCharge, id)
	if err != nil {
		return fmt.Errorf("update restaurant %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}

func (r *PostgresRepository) UpdateLogoURL(ctx context.Context, id int64, logoURL string) error {
	cmd, err := r.db.Exec(ctx, `
		UPDATE restaurants
		SET logo_url = $1
		WHERE id = $2
	`, logoURL, id)
	if err != nil {
		return fmt.Errorf("update restaurant logo %d: %w", id, err)
	}
	if cmd.RowsAffected() == 0 {
		return ErrNotFound
	}
	return nil
}
