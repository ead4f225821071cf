package catalog

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/testutil"
)

const sampleSeed = `
workouts:
  - title: Gentle Morning Stretch
    description: Slow stretches with no music.
    tags: [calm, stretch]
    duration: 10
    sensory_level: low
    equipment: none
  - title: Kettlebell Circuit
    tags: [strength]
    duration: 30
    sensory_level: high
    equipment: basic
`

func TestParseSeed(t *testing.T) {
	workouts, err := ParseSeed([]byte(sampleSeed))
	require.NoError(t, err)
	require.Len(t, workouts, 2)
	assert.Equal(t, "Gentle Morning Stretch", workouts[0].Title)
	assert.Equal(t, []string{"calm", "stretch"}, []string(workouts[0].Tags))
	assert.Equal(t, 30, workouts[1].Duration)
	assert.Equal(t, "basic", workouts[1].Equipment)
}

func TestParseSeedRejectsInvalid(t *testing.T) {
	_, err := ParseSeed([]byte("workouts:\n  - title: ''\n    duration: 10\n"))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("workouts:\n  - title: x\n    duration: 0\n"))
	assert.Error(t, err)

	_, err = ParseSeed([]byte("workouts: [:"))
	assert.Error(t, err)
}

func TestLoadSeedFileAndSeed(t *testing.T) {
	path := filepath.Join(t.TempDir(), "workouts.yaml")
	require.NoError(t, os.WriteFile(path, []byte(sampleSeed), 0o600))

	workouts, err := LoadSeedFile(path)
	require.NoError(t, err)

	db := testutil.NewDB(t)
	ctx := context.Background()

	added, err := Seed(ctx, db, workouts)
	require.NoError(t, err)
	assert.Equal(t, 2, added)

	// second run only inserts unseen titles
	added, err = Seed(ctx, db, append(workouts, models.Workout{Title: "Park Walk", Duration: 20}))
	require.NoError(t, err)
	assert.Equal(t, 1, added)

	var count int64
	require.NoError(t, db.Model(&models.Workout{}).Count(&count).Error)
	assert.Equal(t, int64(3), count)

	_, err = LoadSeedFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
