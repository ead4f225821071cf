package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"strconv"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/coach"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/fitness"
	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/models"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type RemoteConfigHandler struct {
	db *gorm.DB
}

func NewRemoteConfigHandler(db *gorm.DB) *RemoteConfigHandler {
	return &RemoteConfigHandler{db: db}
}

// GetConfig returns every client setting with its value decoded by type.
func (h *RemoteConfigHandler) GetConfig(c *fiber.Ctx) error {
	result, err := h.Values()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Failed to fetch configuration",
		})
	}
	return c.JSON(result)
}

// SetConfigKey sets or updates a config key (admin only)
func (h *RemoteConfigHandler) SetConfigKey(c *fiber.Ctx) error {
	key := c.Params("key", "")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Key parameter is required",
		})
	}

	var payload struct {
		Value string `json:"value"`
		Type  string `json:"type"` // string, bool, int, json
	}
	if err := c.BodyParser(&payload); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Invalid request body",
		})
	}

	if payload.Value == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Value is required",
		})
	}
	if payload.Type == "" {
		payload.Type = "string"
	}
	if _, err := decodeValue(payload.Type, payload.Value); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: err.Error(),
		})
	}

	var config models.RemoteConfig
	err := h.db.Where("key = ?", key).First(&config).Error
	switch {
	case errors.Is(err, gorm.ErrRecordNotFound):
		config = models.RemoteConfig{Key: key, Value: payload.Value, Type: payload.Type}
		if err := h.db.Create(&config).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Failed to create config",
			})
		}
	case err != nil:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Failed to query config",
		})
	default:
		config.Value = payload.Value
		config.Type = payload.Type
		if err := h.db.Save(&config).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
				Error:   true,
				Message: "Failed to update config",
			})
		}
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Config updated successfully",
		"config": fiber.Map{
			"key":   config.Key,
			"value": config.Value,
			"type":  config.Type,
		},
	})
}

// DeleteConfigKey deletes a config key (admin only)
func (h *RemoteConfigHandler) DeleteConfigKey(c *fiber.Ctx) error {
	key := c.Params("key", "")
	if key == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Key parameter is required",
		})
	}

	result := h.db.Where("key = ?", key).Delete(&models.RemoteConfig{})
	if result.Error != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Failed to delete config",
		})
	}

	if result.RowsAffected == 0 {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{
			Error:   true,
			Message: "Config not found",
		})
	}

	return c.JSON(fiber.Map{
		"error":   false,
		"message": "Config deleted successfully",
	})
}

// SeedDefaults inserts the default client settings that do not exist yet.
func (h *RemoteConfigHandler) SeedDefaults() error {
	durations, err := json.Marshal(fitness.PreferredDurations)
	if err != nil {
		return err
	}

	defaults := []models.RemoteConfig{
		{Key: "app_name", Value: "NeuroFit", Type: "string"},
		{Key: "coach_greeting", Value: coach.Greeting, Type: "string"},
		{Key: "progress_refresh_seconds", Value: "30", Type: "int"},
		{Key: "maintenance_mode", Value: "false", Type: "bool"},
		{Key: "announcement_title", Value: "", Type: "string"},
		{Key: "announcement_message", Value: "", Type: "string"},
		{Key: "preferred_durations", Value: string(durations), Type: "json"},
	}

	for i := range defaults {
		var existing models.RemoteConfig
		err := h.db.Where("key = ?", defaults[i].Key).First(&existing).Error
		if errors.Is(err, gorm.ErrRecordNotFound) {
			if err := h.db.Create(&defaults[i]).Error; err != nil {
				return err
			}
		} else if err != nil {
			return err
		}
	}
	return nil
}

// Values returns the decoded settings keyed by name.
func (h *RemoteConfigHandler) Values() (map[string]interface{}, error) {
	var configs []models.RemoteConfig
	if err := h.db.Find(&configs).Error; err != nil {
		return nil, err
	}

	result := make(map[string]interface{}, len(configs))
	for _, cfg := range configs {
		value, err := decodeValue(cfg.Type, cfg.Value)
		if err != nil {
			value = cfg.Value
		}
		result[cfg.Key] = value
	}
	return result, nil
}

func decodeValue(typ, raw string) (interface{}, error) {
	switch typ {
	case "string":
		return raw, nil
	case "bool":
		return strconv.ParseBool(raw)
	case "int":
		return strconv.Atoi(raw)
	case "json":
		var v interface{}
		if err := json.Unmarshal([]byte(raw), &v); err != nil {
			return nil, fmt.Errorf("value is not valid JSON: %w", err)
		}
		return v, nil
	}
	return nil, fmt.Errorf("unknown config type %q", typ)
}
