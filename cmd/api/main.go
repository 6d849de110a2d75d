package main

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/01moynul/foodie-cart/internal/auth"
	"github.com/01moynul/foodie-cart/internal/cart"
	"github.com/01moynul/foodie-cart/internal/config"
	"github.com/01moynul/foodie-cart/internal/database"
	"github.com/01moynul/foodie-cart/internal/handlers"
	"github.com/01moynul/foodie-cart/internal/logger"
	"github.com/01moynul/foodie-cart/internal/orders"
	"github.com/01moynul/foodie-cart/internal/routes"
	"github.com/01moynul/foodie-cart/internal/storage"
	"github.com/gin-gonic/gin"
)

func main() {
	// 0. --- Load Environment Variables (.env) ---
	dotenv := config.LoadDotEnv()

	cfg, err := config.Load()
	if err != nil {
		slog.Error("invalid configuration", slog.Any("err", err))
		os.Exit(1)
	}

	log := logger.New(logger.Options{Service: "cart-api", Env: cfg.AppEnv, Level: cfg.LogLevel, AddSource: true})
	if !dotenv {
		log.Warn("could not find or load .env file, relying on system environment variables")
	}
	if cfg.AppEnv != "dev" {
		gin.SetMode(gin.ReleaseMode)
	}

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	// 1. --- Storage ---
	store, closeStore, err := openStore(ctx, cfg, log)
	if err != nil {
		log.Error("storage setup failed", slog.String("driver", cfg.StorageDriver), slog.Any("err", err))
		os.Exit(1)
	}
	defer closeStore()

	// 2. --- Token decoding ---
	decoder := auth.NewDecoder(cfg.JWTSecret)
	if !decoder.Verifies() {
		log.Warn("JWT_SECRET not set, token signatures are not verified")
	}

	// --- Application Setup ---
	containerOpts := func(prefix string) []cart.Option {
		opts := []cart.Option{cart.WithLogger(log), cart.WithKeyPrefix(prefix)}
		if cfg.ReadThrough {
			opts = append(opts, cart.WithReadThrough())
		}
		return opts
	}
	app := &handlers.Handlers{
		Cart:      cart.New(store, containerOpts(cfg.CartKeyPrefix)...),
		Favorites: cart.NewFavorites(store, containerOpts(cfg.FavoritesKeyPrefix)...),
		Orders:    orders.NewClient(cfg.OrderAPIBaseURL, cfg.OrderAPITimeout),
		TaxRate:   cfg.TaxRate,
		Log:       log,
	}

	// --- Router Setup ---
	router := routes.SetupRouter(app, routes.Options{
		CORSOrigin: cfg.CORSOrigin,
		Decoder:    decoder,
		Log:        log,
	})

	srv := &http.Server{
		Addr:              cfg.HTTPAddr,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	// --- Start Server ---
	errCh := make(chan error, 1)
	go func() {
		log.Info("http starting", slog.String("addr", cfg.HTTPAddr), slog.String("storage", cfg.StorageDriver))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case <-ctx.Done():
		log.Info("shutdown requested")
	case err := <-errCh:
		if err != nil {
			log.Error("http serve error", slog.Any("err", err))
		}
	}

	stopCtx, cancel := context.WithTimeout(context.Background(), cfg.ShutdownTimeout)
	defer cancel()
	if err := srv.Shutdown(stopCtx); err != nil {
		log.Warn("graceful stop timeout, forcing stop", slog.Any("err", err))
		_ = srv.Close()
	}
	log.Info("bye")
}

// openStore connects the configured storage driver and returns a func that
// releases it.
func openStore(ctx context.Context, cfg config.Config, log *slog.Logger) (storage.Store, func(), error) {
	switch cfg.StorageDriver {
	case config.DriverMySQL:
		db, err := database.OpenDBWithDSN(ctx, cfg.DBDSN, database.DefaultPool, log)
		if err != nil {
			return nil, nil, err
		}
		s := storage.NewMySQL(db, "")
		if err := s.Migrate(ctx); err != nil {
			db.Close()
			return nil, nil, err
		}
		return s, func() { db.Close() }, nil

	case config.DriverRedis:
		s, err := storage.OpenRedis(ctx, cfg.RedisURL, storage.RedisOptions{Prefix: cfg.RedisPrefix, TTL: cfg.RedisTTL})
		if err != nil {
			return nil, nil, err
		}
		return s, func() { s.Close() }, nil

	default:
		log.Warn("using in-memory storage, carts are lost on restart")
		return storage.NewMemory(), func() {}, nil
	}
}
