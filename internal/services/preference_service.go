package services

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/fitness"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
)

const maxNameLength = 100

var ErrInvalidPreference = errors.New("invalid preference")

type PreferenceService struct {
	db *gorm.DB
}

func NewPreferenceService(db *gorm.DB) *PreferenceService {
	return &PreferenceService{db: db}
}

// Get returns the user's profile, or nil when onboarding has not happened yet.
func (s *PreferenceService) Get(ctx context.Context, userID uuid.UUID) (*models.Profile, error) {
	var profile models.Profile
	err := s.db.WithContext(ctx).Scopes(identity.ForUser(userID)).First(&profile).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return &profile, nil
}

// Upsert validates the questionnaire answers and replaces the stored profile.
// Empty enum values and a zero workout time mean "not specified".
func (s *PreferenceService) Upsert(ctx context.Context, userID uuid.UUID, req *dto.PreferencesRequest) (*models.Profile, error) {
	profile, err := profileFromRequest(userID, req)
	if err != nil {
		return nil, err
	}

	err = s.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "user_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"name", "sensory_level", "energy_level", "environment", "fitness_goal",
			"workout_time", "equipment", "special_considerations", "updated_at",
		}),
	}).Create(profile).Error
	if err != nil {
		return nil, fmt.Errorf("failed to save preferences: %w", err)
	}

	return s.Get(ctx, userID)
}

func profileFromRequest(userID uuid.UUID, req *dto.PreferencesRequest) (*models.Profile, error) {
	name := strings.TrimSpace(req.Name)
	if len(name) > maxNameLength {
		return nil, fmt.Errorf("%w: name must be at most %d characters", ErrInvalidPreference, maxNameLength)
	}

	sensory, err := optionalEnum(ErrInvalidPreference, "sensory_level", req.SensoryLevel, fitness.ParseSensoryLevel)
	if err != nil {
		return nil, err
	}
	energy, err := optionalEnum(ErrInvalidPreference, "energy_level", req.EnergyLevel, fitness.ParseEnergyLevel)
	if err != nil {
		return nil, err
	}
	env, err := optionalEnum(ErrInvalidPreference, "environment", req.Environment, fitness.ParseEnvironment)
	if err != nil {
		return nil, err
	}
	goal, err := optionalEnum(ErrInvalidPreference, "fitness_goal", req.FitnessGoal, fitness.ParseFitnessGoal)
	if err != nil {
		return nil, err
	}
	equipment, err := optionalEnum(ErrInvalidPreference, "equipment", req.Equipment, fitness.ParseEquipment)
	if err != nil {
		return nil, err
	}
	if req.WorkoutTime != 0 && !fitness.ValidDuration(req.WorkoutTime) {
		return nil, fmt.Errorf("%w: workout_time must be one of %v", ErrInvalidPreference, fitness.PreferredDurations)
	}

	return &models.Profile{
		UserID:                userID,
		Name:                  name,
		SensoryLevel:          sensory,
		EnergyLevel:           energy,
		Environment:           env,
		FitnessGoal:           goal,
		WorkoutTime:           req.WorkoutTime,
		Equipment:             equipment,
		SpecialConsiderations: strings.TrimSpace(req.SpecialConsiderations),
	}, nil
}

func optionalEnum[T ~string](sentinel error, field, raw string, parse func(string) (T, bool)) (string, error) {
	if strings.TrimSpace(raw) == "" {
		return "", nil
	}
	v, ok := parse(raw)
	if !ok {
		return "", fmt.Errorf("%w: unknown %s %q", sentinel, field, raw)
	}
	return string(v), nil
}
