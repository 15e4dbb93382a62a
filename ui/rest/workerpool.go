package rest

import (
	"github.com/postdeck/pkg/taskworker"
	"github.com/gofiber/fiber/v2"
)

var submitPool *taskworker.Pool

// SetSubmitPool wires the background submission pool into the stats endpoint.
func SetSubmitPool(pool *taskworker.Pool) {
	submitPool = pool
}

// GetSubmitPoolStats returns real-time submission worker pool statistics.
func GetSubmitPoolStats(c *fiber.Ctx) error {
	if submitPool == nil {
		return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
			"error": "Submission worker pool not initialized",
		})
	}
	return c.JSON(submitPool.GetStats())
}
