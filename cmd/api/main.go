package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"menuapp/internal/auth"
	"menuapp/internal/cart"
	"menuapp/internal/config"
	"menuapp/internal/db"
	"menuapp/internal/events"
	"menuapp/internal/logger"
	"menuapp/internal/menu"
	"menuapp/internal/order"
	"menuapp/internal/restaurant"
	"menuapp/internal/router"
	"menuapp/internal/seed"
	"menuapp/internal/storage"

	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

// backend is the storage wiring that differs between the two builds.
type backend struct {
	restaurants restaurant.Repository
	menus       menu.Repository
	orders      order.Repository
	notifier    order.Notifier
	users       auth.UserRepository
	denylist    auth.Denylist
	carts       cart.Store
	// seed runs once the services exist
	seed    func(ctx context.Context, users *auth.Service) error
	closers []func()
}

func main() {
	// ───────────────────────── ENV ─────────────────────────
	cfg, err := config.Load()
	if err != nil {
		boot := zerolog.New(os.Stderr)
		boot.Fatal().Err(err).Msg("load config")
	}

	log := logger.New(cfg.LogLevel, cfg.IsProduction())
	if cfg.IsProduction() {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	// ───────────────────────── BACKEND ─────────────────────────
	var b *backend
	switch cfg.Backend {
	case config.BackendPostgres:
		b, err = postgresBackend(ctx, cfg, log)
	default:
		b = memoryBackend(cfg)
	}
	if err != nil {
		log.Fatal().Err(err).Str("backend", cfg.Backend).Msg("backend init failed")
	}
	defer func() {
		for _, c := range b.closers {
			c()
		}
	}()

	// ───────────────────────── STORAGE ─────────────────────────
	var (
		logos   restaurant.Storage
		objects router.ObjectReader
	)
	if cfg.StorageConfigured() {
		r2Client, err := storage.NewR2Client(ctx, storage.R2Config{
			Endpoint:      cfg.R2Endpoint,
			AccessKey:     cfg.R2AccessKey,
			SecretKey:     cfg.R2SecretKey,
			Bucket:        cfg.R2Bucket,
			PublicBaseURL: cfg.R2PublicBaseURL,
		})
		if err != nil {
			log.Fatal().Err(err).Msg("R2 init failed")
		}
		logos = r2Client
	} else if cfg.Backend == config.BackendMemory {
		mem := storage.NewMemoryStorage("http://localhost:" + cfg.Port + "/static")
		logos, objects = mem, mem
	} else {
		log.Warn().Msg("R2 not configured, logo uploads disabled")
	}

	// ───────────────────────── EVENTS ─────────────────────────
	var publisher events.Publisher = events.Nop{}
	if len(cfg.KafkaBrokers) > 0 {
		kp := events.NewKafkaPublisher(events.NewKafkaWriter(cfg.KafkaOrdersTopic, cfg.KafkaBrokers...), log)
		defer kp.Close()
		publisher = kp
		log.Info().Strs("brokers", cfg.KafkaBrokers).Str("topic", cfg.KafkaOrdersTopic).Msg("order events enabled")
	}

	// ───────────────────────── SERVICES (ORDER MATTERS) ─────────────────────────
	authService := auth.NewService(b.users, auth.NewTokenManager(cfg.JWTSecret, cfg.JWTTTL), b.denylist, log)
	restaurantService := restaurant.NewService(b.restaurants, logos, log)
	menuService := menu.NewService(b.menus, restaurantService, log)
	cartService := cart.NewService(b.carts, menuService, restaurantService, log)
	orderService := order.NewService(b.orders, cartService, publisher, log)
	feed := order.NewFeed(b.orders, b.notifier, log)

	if err := b.seed(ctx, authService); err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}

	// ───────────────────────── HTTP ─────────────────────────
	handler := router.NewRouter(router.Deps{
		Log:         log,
		CORSOrigins: cfg.CORSOrigins,
		Auth:        authService,
		Restaurants: restaurantService,
		Menu:        menuService,
		Carts:       cartService,
		Orders:      orderService,
		Feed:        feed,
		Objects:     objects,
	})

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           handler,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.Info().Str("addr", srv.Addr).Str("backend", cfg.Backend).Msg("API running")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatal().Err(err).Msg("server failed")
		}
	}()

	<-ctx.Done()
	log.Info().Msg("shutting down")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
	}
}

func memoryBackend(cfg *config.Config) *backend {
	notifier := order.NewMemoryNotifier()
	restaurants := restaurant.NewInMemoryRepository()
	menus := menu.NewInMemoryRepository()

	return &backend{
		restaurants: restaurants,
		menus:       menus,
		orders:      order.NewInMemoryRepository(notifier),
		notifier:    notifier,
		users:       auth.NewInMemoryUserRepository(),
		denylist:    auth.NewMemoryDenylist(),
		carts:       cart.NewMemoryStore(cfg.CartTTL),
		seed: func(ctx context.Context, users *auth.Service) error {
			return seed.Memory(ctx, restaurants, menus, users)
		},
	}
}

func postgresBackend(ctx context.Context, cfg *config.Config, log zerolog.Logger) (*backend, error) {
	// ───────────────────────── DB ─────────────────────────
	pgDB, err := db.ConnectPostgres(ctx, cfg.DatabaseURL, log)
	if err != nil {
		return nil, err
	}

	// ───────────────────────── REDIS ─────────────────────────
	rdb := redis.NewClient(&redis.Options{
		Addr:     cfg.RedisAddr,
		Password: cfg.RedisPassword,
	})
	if err := rdb.Ping(ctx).Err(); err != nil {
		pgDB.Close()
		return nil, err
	}
	log.Info().Str("addr", cfg.RedisAddr).Msg("connected to redis")

	notifier := order.NewPGNotifier(pgDB, log)
	go notifier.Run(ctx)

	return &backend{
		restaurants: restaurant.NewPostgresRepository(pgDB),
		menus:       menu.NewPostgresRepository(pgDB),
		orders:      order.NewPostgresRepository(pgDB),
		notifier:    notifier,
		users:       auth.NewPostgresUserRepository(pgDB),
		denylist:    auth.NewRedisDenylist(rdb),
		carts:       cart.NewRedisStore(rdb, cfg.CartTTL),
		seed: func(ctx context.Context, users *auth.Service) error {
			if cfg.AdminEmail == "" || cfg.AdminPassword == "" {
				return nil
			}
			_, err := users.EnsureAdmin(ctx, cfg.AdminEmail, cfg.AdminPassword, cfg.AdminRestaurantID)
			return err
		},
		closers: []func(){
			func() { _ = rdb.Close() },
			pgDB.Close,
		},
	}, nil
}
