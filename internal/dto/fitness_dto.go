package dto

import (
	"github.com/google/uuid"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/fitness"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
)

type CreateWorkoutRequest struct {
	Title        string   `json:"title"`
	Description  string   `json:"description"`
	Tags         []string `json:"tags"`
	Duration     int      `json:"duration"`
	SensoryLevel string   `json:"sensory_level"`
	Equipment    string   `json:"equipment"`
}

type WorkoutListResponse struct {
	Workouts []models.Workout `json:"workouts"`
	// Total is the catalog size before any filtering.
	Total    int  `json:"total"`
	Filtered bool `json:"filtered"`
}

type TagsResponse struct {
	Tags []string `json:"tags"`
}

type PreferencesRequest struct {
	Name                  string `json:"name"`
	SensoryLevel          string `json:"sensory_level"`
	EnergyLevel           string `json:"energy_level"`
	Environment           string `json:"environment"`
	FitnessGoal           string `json:"fitness_goal"`
	WorkoutTime           int    `json:"workout_time"`
	Equipment             string `json:"equipment"`
	SpecialConsiderations string `json:"special_considerations"`
}

type LogCompletionRequest struct {
	WorkoutID uuid.UUID `json:"workout_id"`
}

type ProgressResponse struct {
	fitness.ProgressSummary
	Recent []models.Completion `json:"recent"`
}

type HistoryResponse struct {
	Completions []models.Completion `json:"completions"`
}

type ChatTurn struct {
	Role    string `json:"role"`
	Content string `json:"content"`
}

type ChatRequest struct {
	Message string     `json:"message"`
	History []ChatTurn `json:"history"`
}

type ChatResponse struct {
	Reply  string `json:"reply"`
	Intent string `json:"intent"`
}

type DashboardResponse struct {
	Preferences     *models.Profile          `json:"preferences"`
	NeedsOnboarding bool                     `json:"needs_onboarding"`
	Workouts        []models.Workout         `json:"workouts"`
	Progress        *fitness.ProgressSummary `json:"progress"`
	Recent          []models.Completion      `json:"recent"`
}
