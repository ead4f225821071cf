package services

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
)

func TestPreferenceServiceGetAbsent(t *testing.T) {
	f := newFixture(t)
	prefs, err := f.prefs.Get(context.Background(), uuid.New())
	require.NoError(t, err)
	assert.Nil(t, prefs)
}

func TestPreferenceServiceUpsertTwice(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()
	userID := uuid.New()

	first, err := f.prefs.Upsert(ctx, userID, &dto.PreferencesRequest{
		Name: "Sam", SensoryLevel: "LOW", Equipment: "none", WorkoutTime: 15,
	})
	require.NoError(t, err)
	assert.Equal(t, "low", first.SensoryLevel)
	assert.Equal(t, 15, first.WorkoutTime)

	second, err := f.prefs.Upsert(ctx, userID, &dto.PreferencesRequest{
		Name: "Sam", SensoryLevel: "high", EnergyLevel: "medium", Environment: "Outdoor", FitnessGoal: "stress",
	})
	require.NoError(t, err)
	assert.Equal(t, first.ID, second.ID)
	assert.Equal(t, "high", second.SensoryLevel)
	assert.Equal(t, "outdoor", second.Environment)
	assert.Equal(t, "", second.Equipment)
	assert.Equal(t, 0, second.WorkoutTime)

	var count int64
	require.NoError(t, f.db.Model(&models.Profile{}).Where("user_id = ?", userID).Count(&count).Error)
	assert.Equal(t, int64(1), count)
}

func TestPreferenceServiceRejectsInvalid(t *testing.T) {
	f := newFixture(t)
	ctx := context.Background()

	tests := []struct {
		name string
		req  dto.PreferencesRequest
	}{
		{"sensory", dto.PreferencesRequest{SensoryLevel: "extreme"}},
		{"energy", dto.PreferencesRequest{EnergyLevel: "none"}},
		{"environment", dto.PreferencesRequest{Environment: "moon"}},
		{"goal", dto.PreferencesRequest{FitnessGoal: "bulk"}},
		{"equipment", dto.PreferencesRequest{Equipment: "barbell"}},
		{"duration", dto.PreferencesRequest{WorkoutTime: 25}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.prefs.Upsert(ctx, uuid.New(), &tt.req)
			assert.ErrorIs(t, err, ErrInvalidPreference)
		})
	}
}
