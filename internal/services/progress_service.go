package services

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/fitness"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/observability"
)

const (
	defaultHistoryLimit = 20
	maxHistoryLimit     = 100
	recentCompletions   = 5
	publishTimeout      = 5 * time.Second
)

type ProgressService struct {
	db        *gorm.DB
	workouts  *WorkoutService
	publisher events.Publisher
	clock     Clock
}

func NewProgressService(db *gorm.DB, workouts *WorkoutService, publisher events.Publisher, clock Clock) *ProgressService {
	if publisher == nil {
		publisher = events.NopPublisher{}
	}
	if clock == nil {
		clock = systemClock
	}
	return &ProgressService{db: db, workouts: workouts, publisher: publisher, clock: clock}
}

// LogCompletion appends a completion stamped with the server clock. The
// broker event is best effort.
func (s *ProgressService) LogCompletion(ctx context.Context, userID, workoutID uuid.UUID) (*models.Completion, error) {
	workout, err := s.workouts.Get(ctx, workoutID)
	if err != nil {
		return nil, err
	}

	completion := models.Completion{
		UserID:      userID,
		WorkoutID:   workout.ID,
		CompletedAt: s.clock(),
	}
	if err := s.db.WithContext(ctx).Create(&completion).Error; err != nil {
		return nil, fmt.Errorf("failed to log completion: %w", err)
	}
	completion.Workout = workout
	observability.RecordCompletion()

	pubCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), publishTimeout)
	defer cancel()
	err = s.publisher.PublishCompletion(pubCtx, events.CompletionLogged{
		CompletionID: completion.ID,
		UserID:       userID,
		WorkoutID:    workout.ID,
		CompletedAt:  completion.CompletedAt,
	})
	observability.RecordEventPublish(err)
	if err != nil {
		slog.Warn("completion event not published", "user_id", userID.String(), "error", err)
	}

	return &completion, nil
}

// History returns the user's completions newest first with their workouts.
func (s *ProgressService) History(ctx context.Context, userID uuid.UUID, limit int) ([]models.Completion, error) {
	if limit <= 0 {
		limit = defaultHistoryLimit
	}
	if limit > maxHistoryLimit {
		limit = maxHistoryLimit
	}

	var completions []models.Completion
	err := s.db.WithContext(ctx).
		Scopes(identity.ForUser(userID)).
		Preload("Workout").
		Order("completed_at DESC").
		Limit(limit).
		Find(&completions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completion history: %w", err)
	}
	return completions, nil
}

// Summary aggregates the user's whole log with calendar days in loc.
func (s *ProgressService) Summary(ctx context.Context, userID uuid.UUID, loc *time.Location) (*dto.ProgressResponse, error) {
	if loc == nil {
		loc = time.UTC
	}

	var completions []models.Completion
	err := s.db.WithContext(ctx).
		Scopes(identity.ForUser(userID)).
		Select("id", "completed_at").
		Find(&completions).Error
	if err != nil {
		return nil, fmt.Errorf("failed to load completions: %w", err)
	}

	recent, err := s.History(ctx, userID, recentCompletions)
	if err != nil {
		return nil, err
	}

	return &dto.ProgressResponse{
		ProgressSummary: fitness.Summarize(completions, s.clock().In(loc)),
		Recent:          recent,
	}, nil
}
