package fitness

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
)

func TestSearchWorkouts(t *testing.T) {
	catalog := []models.Workout{
		{Title: "Quiet Yoga", Description: "slow flow"},
		{Title: "Park Walk", Description: "gentle YOGA breathing at the end"},
		{Title: "Boxing", Description: "loud and fast"},
	}

	assert.Equal(t, []string{"Quiet Yoga", "Park Walk"}, titles(SearchWorkouts(catalog, "yoga")))
	assert.Equal(t, []string{"Boxing"}, titles(SearchWorkouts(catalog, "  LOUD ")))
	assert.Equal(t, catalog, SearchWorkouts(catalog, ""))
	assert.Empty(t, SearchWorkouts(catalog, "swimming"))
}

func TestFilterByTag(t *testing.T) {
	catalog := []models.Workout{
		workout("a", "", "", "Calm", "stretch"),
		workout("b", "", "", "cardio"),
		workout("c", "", "", "calm"),
	}

	assert.Equal(t, []string{"a", "c"}, titles(FilterByTag(catalog, "CALM")))
	assert.Equal(t, catalog, FilterByTag(catalog, " "))
	assert.Empty(t, FilterByTag(catalog, "calming"))
}

func TestHasAllTags(t *testing.T) {
	w := workout("a", "", "", "calm", "Stretch")
	assert.True(t, HasAllTags(w, []string{"stretch", "CALM"}))
	assert.True(t, HasAllTags(w, nil))
	assert.False(t, HasAllTags(w, []string{"calm", "cardio"}))
}

func TestCollectTags(t *testing.T) {
	catalog := []models.Workout{
		workout("a", "", "", "calm", "stretch"),
		workout("b", "", "", "cardio", "calm"),
		workout("c", "", ""),
	}
	assert.Equal(t, []string{"calm", "stretch", "cardio"}, CollectTags(catalog))
	assert.Empty(t, CollectTags(nil))
}

func TestFormatDuration(t *testing.T) {
	assert.Equal(t, "0 min", FormatDuration(0))
	assert.Equal(t, "45 min", FormatDuration(45))
	assert.Equal(t, "1h", FormatDuration(60))
	assert.Equal(t, "1h 30m", FormatDuration(90))
	assert.Equal(t, "2h", FormatDuration(120))
}

func TestParseEnums(t *testing.T) {
	level, ok := ParseSensoryLevel(" Medium ")
	assert.True(t, ok)
	assert.Equal(t, SensoryMedium, level)

	_, ok = ParseSensoryLevel("extreme")
	assert.False(t, ok)

	env, ok := ParseEnvironment("GYM")
	assert.True(t, ok)
	assert.Equal(t, EnvironmentGym, env)

	_, ok = ParseFitnessGoal("bulk")
	assert.False(t, ok)

	assert.True(t, ValidDuration(45))
	assert.False(t, ValidDuration(25))
}
