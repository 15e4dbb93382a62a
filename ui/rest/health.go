package rest

import (
	"github.com/postdeck/domains/health"
	"github.com/postdeck/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Health struct {
	Service health.IHealthUsecase
}

func InitRestHealth(app fiber.Router, service health.IHealthUsecase) Health {
	handler := Health{Service: service}

	group := app.Group("/health")
	group.Get("/status", handler.GetStatus)
	group.Post("/check", handler.CheckBackend)

	return handler
}

func (h *Health) GetStatus(c *fiber.Ctx) error {
	record, err := h.Service.GetStatus(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Health status retrieved",
		Results: record,
	})
}

func (h *Health) CheckBackend(c *fiber.Ctx) error {
	record, err := h.Service.CheckBackend(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Backend check completed",
		Results: record,
	})
}
