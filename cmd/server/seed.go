package main

import (
	"errors"

	"github.com/spf13/cobra"
)

var seedCmd = &cobra.Command{
	Use:   "seed [file]",
	Short: "Load workouts from a YAML file into the catalog",
	Long: `Load workouts from a YAML file into the catalog.

Entries whose title already exists are skipped, so the command can be run
repeatedly. Without an argument WORKOUT_SEED_PATH is used.`,
	Args: cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		path := cfg.WorkoutSeedPath
		if len(args) == 1 {
			path = args[0]
		}
		if path == "" {
			return errors.New("no seed file given and WORKOUT_SEED_PATH is empty")
		}

		db, err := openDB()
		if err != nil {
			return err
		}
		defer closeDB(db)

		return seedCatalog(cmd.Context(), db, path)
	},
}
