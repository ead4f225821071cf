package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/getsentry/sentry-go"
	"github.com/go-redis/redis/v8"
	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/coach"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/handlers"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/logging"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/routes"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/services"
)

const localCacheBytes = 32 * 1024 * 1024

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the HTTP server",
	Args:  cobra.NoArgs,
	RunE:  runServe,
}

func runServe(cmd *cobra.Command, args []string) error {
	if cfg.JWTSecret == "" {
		return errors.New("JWT_SECRET environment variable is required")
	}

	db, err := openDB()
	if err != nil {
		return err
	}
	defer closeDB(db)

	// ERROR+ records are also persisted, in batches
	dbLogHandler := logging.NewDBHandler(db, 0, 0)
	slog.SetDefault(slog.New(logging.NewMultiHandler(baseHandler, dbLogHandler)))
	defer dbLogHandler.Stop()

	cleanupDone := make(chan struct{})
	logging.StartCleanup(db, cfg.LogRetentionDays, cleanupDone)
	defer close(cleanupDone)

	// Sentry error tracking
	if cfg.SentryDSN != "" {
		if err := sentry.Init(sentry.ClientOptions{
			Dsn:              cfg.SentryDSN,
			EnableTracing:    true,
			TracesSampleRate: 0.2,
			Environment:      cfg.Environment,
		}); err != nil {
			slog.Error("sentry init failed", "error", err)
		} else {
			defer sentry.Flush(2 * time.Second)
		}
	}

	ctx := cmd.Context()

	cache, redisClient, err := openCache(ctx)
	if err != nil {
		return err
	}
	if redisClient != nil {
		defer redisClient.Close()
	}

	publisher := openPublisher()
	defer publisher.Close()

	if cfg.WorkoutSeedPath != "" {
		if err := seedCatalog(ctx, db, cfg.WorkoutSeedPath); err != nil {
			return err
		}
	}

	completer := coach.NewProviderChain(cfg)
	if len(completer.Providers()) == 0 {
		slog.Warn("no AI provider configured, coach will answer with the fallback reply")
	} else {
		slog.Info("coach providers configured", "providers", completer.Providers())
	}

	// Services
	prefs := services.NewPreferenceService(db)
	workouts := services.NewWorkoutService(db, cache, cfg.CatalogCacheTTL, prefs)
	progress := services.NewProgressService(db, workouts, publisher, nil)

	// Handlers
	configHandler := handlers.NewRemoteConfigHandler(db)
	slog.Info("seeding remote config defaults")
	if err := configHandler.SeedDefaults(); err != nil {
		slog.Error("remote config seeding failed", "error", err)
	}

	app := routes.NewApp(cfg)
	routes.Setup(app, cfg, db, routes.Handlers{
		Auth:       handlers.NewAuthHandler(services.NewAuthService(db, cfg)),
		Health:     handlers.NewHealthHandler(db, cache),
		Config:     configHandler,
		Workout:    handlers.NewWorkoutHandler(workouts),
		Preference: handlers.NewPreferenceHandler(prefs),
		Progress:   handlers.NewProgressHandler(progress),
		Coach:      handlers.NewCoachHandler(services.NewCoachService(prefs, workouts, completer)),
		Dashboard:  handlers.NewDashboardHandler(services.NewDashboardService(prefs, workouts, progress)),
	})

	// Graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	listenErr := make(chan error, 1)
	go func() {
		slog.Info("server starting", "port", cfg.Port, "env", cfg.Environment)
		listenErr <- app.Listen(":" + cfg.Port)
	}()

	select {
	case err := <-listenErr:
		return fmt.Errorf("server failed to start: %w", err)
	case <-quit:
	}

	slog.Info("shutting down server...")
	if err := app.ShutdownWithTimeout(10 * time.Second); err != nil {
		slog.Error("server shutdown error", "error", err)
	}
	slog.Info("server stopped")
	return nil
}

// openCache prefers Redis when REDIS_URL is set so that every replica shares
// one catalog cache.
func openCache(ctx context.Context) (catalog.Cache, *redis.Client, error) {
	if cfg.RedisURL == "" {
		slog.Info("catalog cache: in-process", "bytes", localCacheBytes)
		return catalog.NewLocalCache(localCacheBytes), nil, nil
	}
	client, err := catalog.DialRedis(ctx, cfg.RedisURL)
	if err != nil {
		return nil, nil, err
	}
	slog.Info("catalog cache: redis")
	return catalog.NewRedisCache(client), client, nil
}

func openPublisher() events.Publisher {
	if len(cfg.KafkaBrokers) == 0 {
		slog.Info("completion events disabled, KAFKA_BROKERS is empty")
		return events.NopPublisher{}
	}
	slog.Info("completion events enabled", "brokers", cfg.KafkaBrokers, "topic", cfg.KafkaCompletionsTopic)
	return events.NewKafkaPublisher(cfg.KafkaBrokers, cfg.KafkaCompletionsTopic)
}

func seedCatalog(ctx context.Context, db *gorm.DB, path string) error {
	workouts, err := catalog.LoadSeedFile(path)
	if err != nil {
		return err
	}
	inserted, err := catalog.Seed(ctx, db, workouts)
	if err != nil {
		return fmt.Errorf("seeding catalog from %s: %w", path, err)
	}
	slog.Info("workout catalog seeded", "path", path, "entries", len(workouts), "inserted", inserted)
	return nil
}
