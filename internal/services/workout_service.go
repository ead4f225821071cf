package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/fitness"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/observability"
)

const catalogCacheKey = "neurofit:catalog:workouts"

var (
	ErrWorkoutNotFound = errors.New("workout not found")
	ErrInvalidWorkout  = errors.New("invalid workout")
)

// ListOptions narrows a user's view of the catalog.
type ListOptions struct {
	Search  string
	Tag     string
	ShowAll bool // skip the preference filter
}

type WorkoutService struct {
	db    *gorm.DB
	cache catalog.Cache
	ttl   time.Duration
	prefs *PreferenceService
}

func NewWorkoutService(db *gorm.DB, cache catalog.Cache, ttl time.Duration, prefs *PreferenceService) *WorkoutService {
	return &WorkoutService{db: db, cache: cache, ttl: ttl, prefs: prefs}
}

// List returns the whole catalog, newest first.
func (s *WorkoutService) List(ctx context.Context) ([]models.Workout, error) {
	cached, err := s.cache.Get(ctx, catalogCacheKey)
	switch {
	case err == nil:
		var workouts []models.Workout
		if jsonErr := json.Unmarshal(cached, &workouts); jsonErr == nil {
			observability.RecordCatalogCache("hit")
			return workouts, nil
		}
		slog.Warn("discarding unreadable catalog cache entry")
		observability.RecordCatalogCache("error")
	case errors.Is(err, catalog.ErrMiss):
		observability.RecordCatalogCache("miss")
	default:
		slog.Warn("catalog cache unavailable", "error", err)
		observability.RecordCatalogCache("error")
	}

	var workouts []models.Workout
	if err := s.db.WithContext(ctx).Order("created_at DESC").Find(&workouts).Error; err != nil {
		return nil, fmt.Errorf("failed to list workouts: %w", err)
	}

	if raw, err := json.Marshal(workouts); err == nil {
		if err := s.cache.Set(ctx, catalogCacheKey, raw, s.ttl); err != nil {
			slog.Warn("failed to cache workout catalog", "error", err)
		}
	}
	return workouts, nil
}

func (s *WorkoutService) Get(ctx context.Context, id uuid.UUID) (*models.Workout, error) {
	var workout models.Workout
	err := s.db.WithContext(ctx).First(&workout, "id = ?", id).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, ErrWorkoutNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load workout: %w", err)
	}
	return &workout, nil
}

// ByTags returns workouts carrying every tag in tags.
func (s *WorkoutService) ByTags(ctx context.Context, tags []string) ([]models.Workout, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	result := make([]models.Workout, 0, len(all))
	for _, w := range all {
		if fitness.HasAllTags(w, tags) {
			result = append(result, w)
		}
	}
	return result, nil
}

func (s *WorkoutService) Tags(ctx context.Context) ([]string, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}
	return fitness.CollectTags(all), nil
}

func (s *WorkoutService) Create(ctx context.Context, req *dto.CreateWorkoutRequest) (*models.Workout, error) {
	workout, err := workoutFromRequest(req)
	if err != nil {
		return nil, err
	}
	if err := s.db.WithContext(ctx).Create(workout).Error; err != nil {
		return nil, fmt.Errorf("failed to create workout: %w", err)
	}
	if err := s.cache.Delete(ctx, catalogCacheKey); err != nil {
		slog.Warn("failed to invalidate workout catalog cache", "error", err)
	}
	return workout, nil
}

// ListForUser applies the user's preferences, then the search term, then the
// tag. A preference lookup failure is logged and the catalog is shown
// unfiltered.
func (s *WorkoutService) ListForUser(ctx context.Context, userID uuid.UUID, opts ListOptions) (*dto.WorkoutListResponse, error) {
	all, err := s.List(ctx)
	if err != nil {
		return nil, err
	}

	view := all
	filtered := false
	if !opts.ShowAll {
		prefs, err := s.prefs.Get(ctx, userID)
		if err != nil {
			slog.Warn("preferences unavailable, showing unfiltered catalog", "user_id", userID.String(), "error", err)
		}
		if prefs != nil {
			view = fitness.FilterWorkouts(all, prefs)
			filtered = true
		}
	}
	view = fitness.SearchWorkouts(view, opts.Search)
	view = fitness.FilterByTag(view, opts.Tag)

	return &dto.WorkoutListResponse{
		Workouts: view,
		Total:    len(all),
		Filtered: filtered,
	}, nil
}

func workoutFromRequest(req *dto.CreateWorkoutRequest) (*models.Workout, error) {
	title := strings.TrimSpace(req.Title)
	if title == "" {
		return nil, fmt.Errorf("%w: title is required", ErrInvalidWorkout)
	}
	if req.Duration <= 0 {
		return nil, fmt.Errorf("%w: duration must be positive", ErrInvalidWorkout)
	}

	sensory, err := optionalEnum(ErrInvalidWorkout, "sensory_level", req.SensoryLevel, fitness.ParseSensoryLevel)
	if err != nil {
		return nil, err
	}
	equipment, err := optionalEnum(ErrInvalidWorkout, "equipment", req.Equipment, fitness.ParseEquipment)
	if err != nil {
		return nil, err
	}

	tags := make([]string, 0, len(req.Tags))
	for _, t := range req.Tags {
		if t = strings.TrimSpace(t); t != "" {
			tags = append(tags, t)
		}
	}

	return &models.Workout{
		Title:        title,
		Description:  strings.TrimSpace(req.Description),
		Tags:         tags,
		Duration:     req.Duration,
		SensoryLevel: sensory,
		Equipment:    equipment,
	}, nil
}
