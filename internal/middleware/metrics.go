package middleware

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/neurofit-backend/internal/observability"
	"github.com/gofiber/fiber/v2"
)

// Metrics records request latency labeled by the matched route template.
func Metrics() fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()

		status := c.Response().StatusCode()
		if err != nil {
			if e, ok := err.(*fiber.Error); ok {
				status = e.Code
			} else {
				status = fiber.StatusInternalServerError
			}
		}
		route := "unmatched"
		if r := c.Route(); r != nil && r.Path != "" && r.Path != "/" {
			route = r.Path
		}
		observability.ObserveHTTPRequest(c.Method(), route, status, time.Since(start))
		return err
	}
}
