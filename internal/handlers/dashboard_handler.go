package handlers

import (
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/identity"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/services"
	"github.com/gofiber/fiber/v2"
)

type DashboardHandler struct {
	dashboardService *services.DashboardService
}

func NewDashboardHandler(dashboardService *services.DashboardService) *DashboardHandler {
	return &DashboardHandler{dashboardService: dashboardService}
}

func (h *DashboardHandler) Get(c *fiber.Ctx) error {
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

	return c.JSON(h.dashboardService.Load(c.UserContext(), userID, loc))
}
