package catalog

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
)

type seedFile struct {
	Workouts []models.Workout `yaml:"workouts"`
}

// LoadSeedFile reads a YAML catalog of the form `workouts: [...]`.
func LoadSeedFile(path string) ([]models.Workout, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read seed file: %w", err)
	}
	return ParseSeed(raw)
}

func ParseSeed(raw []byte) ([]models.Workout, error) {
	var f seedFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return nil, fmt.Errorf("parse seed file: %w", err)
	}
	for i, w := range f.Workouts {
		if strings.TrimSpace(w.Title) == "" {
			return nil, fmt.Errorf("seed workout %d: title is required", i)
		}
		if w.Duration <= 0 {
			return nil, fmt.Errorf("seed workout %q: duration must be positive", w.Title)
		}
	}
	return f.Workouts, nil
}

// Seed inserts workouts whose title is not in the catalog yet and returns how
// many were added.
func Seed(ctx context.Context, db *gorm.DB, workouts []models.Workout) (int, error) {
	added := 0
	err := db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		for i := range workouts {
			w := workouts[i]
			var existing models.Workout
			err := tx.Where("title = ?", w.Title).First(&existing).Error
			if err == nil {
				continue
			}
			if !errors.Is(err, gorm.ErrRecordNotFound) {
				return fmt.Errorf("lookup %q: %w", w.Title, err)
			}
			if err := tx.Create(&w).Error; err != nil {
				return fmt.Errorf("insert %q: %w", w.Title, err)
			}
			added++
		}
		return nil
	})
	if err != nil {
		return 0, err
	}
	slog.Info("workout catalog seeded", "added", added, "total", len(workouts))
	return added, nil
}
