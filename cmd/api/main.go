package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/pageza/recipe-suggestions/backend/config"
	"github.com/pageza/recipe-suggestions/backend/internal/database"
	"github.com/pageza/recipe-suggestions/backend/internal/logging"
	"github.com/pageza/recipe-suggestions/backend/internal/middleware"
	"github.com/pageza/recipe-suggestions/backend/internal/router"
	"github.com/pageza/recipe-suggestions/backend/internal/server"
	"github.com/pageza/recipe-suggestions/backend/internal/service"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := run(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func run(ctx context.Context) error {
	// Load configuration
	cfg, err := config.LoadConfig()
	if err != nil {
		return err
	}

	logger, err := logging.New(logging.Options{
		Level:       cfg.LogLevel,
		Format:      cfg.LogFormat,
		Development: cfg.Environment == config.Development,
	})
	if err != nil {
		return err
	}
	defer func() { _ = logger.Sync() }()

	// The database must be reachable before the server accepts anything
	db, err := database.Open(ctx, cfg.DatabaseURL, logger)
	if err != nil {
		logger.Error("failed to connect to database", zap.Error(err))
		return err
	}
	defer db.Close()

	if err := database.Migrate(db, logger); err != nil {
		return err
	}

	store, closeStore := rateLimitStore(ctx, cfg, logger)
	defer closeStore()

	handler, err := router.SetupRouter(router.Deps{
		Config:        cfg,
		Logger:        logger,
		DB:            db,
		RateStore:     store,
		AuthService:   service.NewAuthService(db.DB, cfg.JWTSecret, cfg.JWTTTL),
		RecipeService: service.NewRecipeService(db.DB, service.NewEmbeddingService()),
	})
	if err != nil {
		return err
	}

	srv := server.New(cfg, handler, logger)

	g, gctx := errgroup.WithContext(ctx)
	g.Go(srv.Start)
	g.Go(func() error {
		<-gctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout(cfg))
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})

	return g.Wait()
}

// rateLimitStore prefers Redis and falls back to process memory
func rateLimitStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (middleware.Store, func()) {
	if cfg.RedisURL == "" {
		logger.Info("REDIS_URL not set, rate limit counters are kept in memory")
		return middleware.NewMemoryStore(), func() {}
	}

	client, err := database.NewRedisClient(ctx, cfg.RedisURL, logger)
	if err != nil {
		logger.Warn("failed to connect to Redis, rate limit counters are kept in memory", zap.Error(err))
		return middleware.NewMemoryStore(), func() {}
	}
	return middleware.NewRedisStore(client), func() { _ = client.Close() }
}

func shutdownTimeout(cfg *config.Config) time.Duration {
	if cfg.ShutdownTimeout > 0 {
		return cfg.ShutdownTimeout
	}
	return 10 * time.Second
}
