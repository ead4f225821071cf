package handlers

import (
	"errors"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type PreferenceHandler struct {
	preferenceService *services.PreferenceService
}

func NewPreferenceHandler(preferenceService *services.PreferenceService) *PreferenceHandler {
	return &PreferenceHandler{preferenceService: preferenceService}
}

func (h *PreferenceHandler) Get(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	prefs, err := h.preferenceService.Get(c.UserContext(), userID)
	if err != nil {
		return err
	}
	if prefs == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error: true, Message: "Preferences not set",
		})
	}
	return c.JSON(prefs)
}

func (h *PreferenceHandler) Put(c *fiber.Ctx) error {
	userID, err := identity.GetUserID(c)
	if err != nil {
		return unauthorized(c)
	}

	var req dto.PreferencesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error: true, Message: "Invalid request body",
		})
	}

	prefs, err := h.preferenceService.Upsert(c.UserContext(), userID, &req)
	if err != nil {
		if errors.Is(err, services.ErrInvalidPreference) {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
				Error: true, Message: err.Error(),
			})
		}
		return err
	}
	return c.JSON(prefs)
}
