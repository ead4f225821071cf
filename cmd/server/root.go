package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/logging"
)

var (
	cfg         *config.Config
	baseHandler slog.Handler
)

var rootCmd = &cobra.Command{
	Use:   "neurofit",
	Short: "NeuroFit API server",
	Long: `NeuroFit serves the fitness API: workout catalog, onboarding
preferences, progress tracking and the AI coach.

Running without a subcommand starts the HTTP server.

  neurofit                         # same as 'neurofit serve'
  neurofit migrate                 # create or update tables, then exit
  neurofit seed workouts.yaml      # load catalog entries from YAML

Configuration is read from the environment (DB_*, JWT_SECRET, REDIS_URL,
KAFKA_BROKERS, OPENAI_API_KEY, ...).`,
	SilenceUsage: true,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		baseHandler = logging.Setup(cfg.LogFile)
		return nil
	},
	RunE: runServe,
}

func init() {
	rootCmd.AddCommand(serveCmd, migrateCmd, seedCmd)
}

// openDB connects and migrates.
func openDB() (*gorm.DB, error) {
	if cfg.DBPassword == "" && cfg.Environment == "production" {
		return nil, fmt.Errorf("DB_PASSWORD environment variable is required")
	}
	db, err := database.Connect(cfg)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(db); err != nil {
		closeDB(db)
		return nil, fmt.Errorf("migration failed: %w", err)
	}
	return db, nil
}

func closeDB(db *gorm.DB) {
	sqlDB, err := db.DB()
	if err != nil {
		return
	}
	if err := sqlDB.Close(); err != nil {
		slog.Error("database close error", "error", err)
	}
}
