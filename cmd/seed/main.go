package main

import (
	"context"
	"errors"
	"flag"
	"os"
	"time"

	"menuapp/internal/auth"
	"menuapp/internal/config"
	"menuapp/internal/db"
	"menuapp/internal/logger"
	"menuapp/internal/menu"
	"menuapp/internal/restaurant"
	"menuapp/internal/seed"

	"github.com/rs/zerolog"
)

func main() {
	force := flag.Bool("force", false, "seed even if restaurant 1 already exists")
	flag.Parse()

	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}
	log := logger.New(cfg.LogLevel, cfg.IsProduction()).With().Str("cmd", "seed").Logger()

	if cfg.DatabaseURL == "" {
		log.Fatal().Msg("DATABASE_URL is not set")
	}

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		log.Fatal().Err(err).Msg("database connection failed")
	}
	defer pgDB.Close()

	restaurants := restaurant.NewPostgresRepository(pgDB)
	menus := menu.NewPostgresRepository(pgDB)

	if !*force {
		_, err := restaurants.Get(ctx, 1)
		switch {
		case err == nil:
			log.Info().Msg("database already seeded, use -force to seed again")
			return
		case !errors.Is(err, restaurant.ErrNotFound):
			log.Fatal().Err(err).Msg("check existing data")
		}
	}

	first, err := seed.Demo(ctx, restaurants, menus)
	if err != nil {
		log.Fatal().Err(err).Msg("seed demo data")
	}
	log.Info().Int64("restaurant_id", first).Msg("demo restaurants created")

	email, password := cfg.AdminEmail, cfg.AdminPassword
	if email == "" || password == "" {
		email, password = seed.DemoAdminEmail, seed.DemoAdminPassword
	}

	users := auth.NewService(
		auth.NewPostgresUserRepository(pgDB),
		auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL),
		auth.NewMemoryDenylist(),
		log,
	)
	if _, err := users.EnsureAdmin(ctx, email, password, first); err != nil {
		log.Fatal().Err(err).Msg("seed admin")
	}
	log.Info().Str("email", email).Int64("restaurant_id", first).Msg("admin ready")
}
