package handlers

import (
	"errors"
	"time"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/catalog"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db    *gorm.DB
	cache catalog.Cache
}

func NewHealthHandler(db *gorm.DB, cache catalog.Cache) *HealthHandler {
	return &HealthHandler{db: db, cache: cache}
}

// Check always answers 200; degraded dependencies are reported in the body.
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy: " + err.Error()
	}

	cacheStatus := "ok"
	if _, err := h.cache.Get(c.UserContext(), "neurofit:health"); err != nil && !errors.Is(err, catalog.ErrMiss) {
		cacheStatus = "unhealthy: " + err.Error()
	}

	status := "ok"
	if dbStatus != "ok" || cacheStatus != "ok" {
		status = "degraded"
	}

	return c.JSON(dto.HealthResponse{
		Status:    status,
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
		Cache:     cacheStatus,
	})
}
