package services

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/coach"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/events"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/testutil"
)

type recordingPublisher struct {
	mu     sync.Mutex
	events []events.CompletionLogged
	err    error
}

func (p *recordingPublisher) PublishCompletion(_ context.Context, e events.CompletionLogged) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.err != nil {
		return p.err
	}
	p.events = append(p.events, e)
	return nil
}

func (p *recordingPublisher) Close() error { return nil }

type fakeCompleter struct {
	reply    string
	err      error
	system   string
	messages []coach.Message
}

func (f *fakeCompleter) Complete(_ context.Context, system string, messages []coach.Message) (string, error) {
	f.system = system
	f.messages = messages
	return f.reply, f.err
}

type fixture struct {
	db        *gorm.DB
	now       time.Time
	publisher *recordingPublisher
	completer *fakeCompleter
	prefs     *PreferenceService
	workouts  *WorkoutService
	progress  *ProgressService
	coach     *CoachService
	dashboard *DashboardService
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	f := &fixture{
		db:        testutil.NewDB(t),
		now:       time.Date(2025, time.March, 12, 15, 0, 0, 0, time.UTC),
		publisher: &recordingPublisher{},
		completer: &fakeCompleter{reply: "Take a slow walk."},
	}
	f.prefs = NewPreferenceService(f.db)
	f.workouts = NewWorkoutService(f.db, catalog.NewLocalCache(1024*1024), time.Minute, f.prefs)
	f.progress = NewProgressService(f.db, f.workouts, f.publisher, func() time.Time { return f.now })
	f.coach = NewCoachService(f.prefs, f.workouts, f.completer)
	f.dashboard = NewDashboardService(f.prefs, f.workouts, f.progress)
	return f
}

// seedCatalog inserts workouts oldest first so List returns them reversed.
func (f *fixture) seedCatalog(t *testing.T, workouts ...models.Workout) []models.Workout {
	t.Helper()
	base := time.Date(2025, time.January, 1, 0, 0, 0, 0, time.UTC)
	for i := range workouts {
		workouts[i].CreatedAt = base.Add(time.Duration(i) * time.Hour)
		if workouts[i].Duration == 0 {
			workouts[i].Duration = 20
		}
		require.NoError(t, f.db.Create(&workouts[i]).Error)
	}
	return workouts
}

func (f *fixture) setPrefs(t *testing.T, userID uuid.UUID, sensory, equipment string) {
	t.Helper()
	require.NoError(t, f.db.Create(&models.Profile{UserID: userID, SensoryLevel: sensory, Equipment: equipment}).Error)
}

func titlesOf(ws []models.Workout) []string {
	out := make([]string, len(ws))
	for i, w := range ws {
		out[i] = w.Title
	}
	return out
}
