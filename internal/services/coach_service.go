package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/google/uuid"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/coach"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/observability"
)

const maxMessageLength = 2000

var ErrInvalidMessage = errors.New("invalid chat message")

type CoachService struct {
	prefs     *PreferenceService
	workouts  *WorkoutService
	completer coach.Completer
}

func NewCoachService(prefs *PreferenceService, workouts *WorkoutService, completer coach.Completer) *CoachService {
	return &CoachService{prefs: prefs, workouts: workouts, completer: completer}
}

// Reply answers one chat message. Provider failures never surface as errors;
// the user gets a canned apology instead.
func (s *CoachService) Reply(ctx context.Context, userID uuid.UUID, req *dto.ChatRequest) (*dto.ChatResponse, error) {
	message := strings.TrimSpace(req.Message)
	if message == "" {
		return nil, fmt.Errorf("%w: message is required", ErrInvalidMessage)
	}
	if len(message) > maxMessageLength {
		return nil, fmt.Errorf("%w: message must be at most %d characters", ErrInvalidMessage, maxMessageLength)
	}

	intent := coach.DetectIntent(message)

	prefs, err := s.prefs.Get(ctx, userID)
	if err != nil {
		slog.Warn("coach: preferences unavailable", "user_id", userID.String(), "error", err)
		prefs = nil
	}

	var workouts []models.Workout
	if view, err := s.workouts.ListForUser(ctx, userID, ListOptions{}); err != nil {
		slog.Warn("coach: workouts unavailable", "user_id", userID.String(), "error", err)
	} else {
		workouts = view.Workouts
	}

	system := coach.BuildSystemPrompt(intent, prefs, workouts, message)
	messages := append(coach.RecentHistory(toCoachMessages(req.History), coach.MaxHistory),
		coach.Message{Role: "user", Content: message})

	reply, outcome := s.complete(ctx, system, messages)
	observability.RecordCoachReply(string(intent), outcome)

	return &dto.ChatResponse{Reply: reply, Intent: string(intent)}, nil
}

func (s *CoachService) complete(ctx context.Context, system string, messages []coach.Message) (string, string) {
	reply, err := s.completer.Complete(ctx, system, messages)
	if err != nil {
		slog.Error("coach reply failed", "error", err)
		return coach.ErrorReply, "fallback"
	}
	if strings.TrimSpace(reply) == "" {
		return coach.EmptyReply, "empty"
	}
	return reply, "ok"
}

func toCoachMessages(turns []dto.ChatTurn) []coach.Message {
	out := make([]coach.Message, len(turns))
	for i, t := range turns {
		out[i] = coach.Message{Role: t.Role, Content: t.Content}
	}
	return out
}
