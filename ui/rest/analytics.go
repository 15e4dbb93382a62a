package rest

import (
	domainAnalytics "github.com/postdeck/domains/analytics"
	"github.com/postdeck/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Analytics struct {
	Service domainAnalytics.IAnalyticsUsecase
}

func InitRestAnalytics(app fiber.Router, service domainAnalytics.IAnalyticsUsecase) Analytics {
	handler := Analytics{Service: service}

	group := app.Group("/analytics")
	group.Get("/stats", handler.Stats)
	group.Post("/insight", handler.Insight)

	return handler
}

func (h *Analytics) Stats(c *fiber.Ctx) error {
	stats, err := h.Service.Stats(c.UserContext())
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Stats retrieved",
		Results: stats,
	})
}

func (h *Analytics) Insight(c *fiber.Ctx) error {
	var request struct {
		Credential string `json:"credential"`
	}
	utils.PanicIfNeeded(c.BodyParser(&request))

	insight, err := h.Service.Insight(c.UserContext(), request.Credential)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Insight generated",
		Results: insight,
	})
}
