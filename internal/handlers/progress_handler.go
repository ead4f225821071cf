package handlers

import (
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type ProgressHandler struct {
	progressService *services.ProgressService
}

func NewProgressHandler(progressService *services.ProgressService) *ProgressHandler {
	return &ProgressHandler{progressService: progressService}
}

func (h *ProgressHandler) Log(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.LogCompletionRequest
	if err := c.BodyParser(&req); err != nil || req.WorkoutID == uuid.Nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "workout_id is required",
		})
	}

	completion, err := h.progressService.LogCompletion(c.UserContext(), userID, req.WorkoutID)
	if err != nil {
		if errors.Is(err, services.ErrWorkoutNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Workout not found",
			})
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(completion)
}

// Summary reports totals and the streak. ?tz= is an IANA zone name that sets
// where calendar days begin; it defaults to UTC.
func (h *ProgressHandler) Summary(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	loc, err := locationFromQuery(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid tz parameter",
		})
	}

	summary, err := h.progressService.Summary(c.UserContext(), userID, loc)
	if err != nil {
		return err
	}
	return c.JSON(summary)
}

func (h *ProgressHandler) History(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	completions, err := h.progressService.History(c.UserContext(), userID, c.QueryInt("limit", 0))
	if err != nil {
		return err
	}
	return c.JSON(dto.HistoryResponse{Completions: completions})
}

func locationFromQuery(c *fiber.Ctx) (*time.Location, error) {
	tz := c.Query("tz")
	if tz == "" {
		return time.UTC, nil
	}
	return time.LoadLocation(tz)
}
