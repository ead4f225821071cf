package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type WorkoutHandler struct {
	workoutService *services.WorkoutService
}

func NewWorkoutHandler(workoutService *services.WorkoutService) *WorkoutHandler {
	return &WorkoutHandler{workoutService: workoutService}
}

// List returns the caller's view of the catalog. ?all=true skips the
// preference filter; ?search= and ?tag= narrow it further.
func (h *WorkoutHandler) List(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	resp, err := h.workoutService.ListForUser(c.UserContext(), userID, services.ListOptions{
		Search:  c.Query("search"),
		Tag:     c.Query("tag"),
		ShowAll: c.QueryBool("all", false),
	})
	if err != nil {
		return err
	}
	return c.JSON(resp)
}

func (h *WorkoutHandler) Tags(c *fiber.Ctx) error {
	tags, err := h.workoutService.Tags(c.UserContext())
	if err != nil {
		return err
	}
	return c.JSON(dto.TagsResponse{Tags: tags})
}

func (h *WorkoutHandler) Get(c *fiber.Ctx) error {
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid workout id",
		})
	}

	workout, err := h.workoutService.Get(c.UserContext(), id)
	if err != nil {
		if errors.Is(err, services.ErrWorkoutNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
				Error: true, Message: "Workout not found",
			})
		}
		return err
	}
	return c.JSON(workout)
}

// Create adds a catalog entry (admin only).
func (h *WorkoutHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateWorkoutRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	workout, err := h.workoutService.Create(c.UserContext(), &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidWorkout) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return err
	}
	return c.Status(fiber.StatusCreated).JSON(workout)
}
