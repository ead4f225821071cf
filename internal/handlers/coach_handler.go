package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type CoachHandler struct {
	coachService *services.CoachService
}

func NewCoachHandler(coachService *services.CoachService) *CoachHandler {
	return &CoachHandler{coachService: coachService}
}

func (h *CoachHandler) Chat(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.ChatRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	resp, err := h.coachService.Reply(c.UserContext(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidMessage) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return err
	}
	return c.JSON(resp)
}
