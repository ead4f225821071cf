package services

import (
	"context"
	"log/slog"
	"time"

	"github.com/google/uuid"
	"golang.org/x/sync/errgroup"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
)

// DashboardService assembles the home screen. Every section degrades on its
// own so the response is always produced.
type DashboardService struct {
	prefs    *PreferenceService
	workouts *WorkoutService
	progress *ProgressService
}

func NewDashboardService(prefs *PreferenceService, workouts *WorkoutService, progress *ProgressService) *DashboardService {
	return &DashboardService{prefs: prefs, workouts: workouts, progress: progress}
}

func (s *DashboardService) Load(ctx context.Context, userID uuid.UUID, loc *time.Location) *dto.DashboardResponse {
	resp := &dto.DashboardResponse{
		Workouts: []models.Workout{},
		Recent:   []models.Completion{},
	}
	log := slog.With("user_id", userID.String())

	var g errgroup.Group
	g.Go(func() error {
		prefs, err := s.prefs.Get(ctx, userID)
		if err != nil {
			log.Warn("dashboard: preferences unavailable", "error", err)
			return nil
		}
		resp.Preferences = prefs
		return nil
	})
	g.Go(func() error {
		view, err := s.workouts.ListForUser(ctx, userID, ListOptions{})
		if err != nil {
			log.Warn("dashboard: workouts unavailable", "error", err)
			return nil
		}
		resp.Workouts = view.Workouts
		return nil
	})
	g.Go(func() error {
		progress, err := s.progress.Summary(ctx, userID, loc)
		if err != nil {
			log.Warn("dashboard: progress unavailable", "error", err)
			return nil
		}
		resp.Progress = &progress.ProgressSummary
		resp.Recent = progress.Recent
		return nil
	})
	_ = g.Wait()

	resp.NeedsOnboarding = resp.Preferences == nil
	return resp
}
