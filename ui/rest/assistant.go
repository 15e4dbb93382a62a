package rest

import (
	domainAssistant "github.com/postdeck/domains/assistant"
	"github.com/postdeck/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Assistant struct {
	Service domainAssistant.IAssistantUsecase
}

func InitRestAssistant(app fiber.Router, service domainAssistant.IAssistantUsecase) Assistant {
	handler := Assistant{Service: service}

	group := app.Group("/ai")
	group.Post("/suggest-hashtags", handler.SuggestHashtags)
	group.Post("/polish-content", handler.PolishContent)
	group.Post("/analyze-image", handler.AnalyzeImage)
	group.Post("/dynamic-insight", handler.DynamicInsight)

	return handler
}

func (h *Assistant) SuggestHashtags(c *fiber.Ctx) error {
	var request domainAssistant.HashtagRequest
	utils.PanicIfNeeded(c.BodyParser(&request))

	result, err := h.Service.SuggestHashtags(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Hashtags suggested",
		Results: result,
	})
}

func (h *Assistant) PolishContent(c *fiber.Ctx) error {
	var request domainAssistant.PolishRequest
	utils.PanicIfNeeded(c.BodyParser(&request))

	result, err := h.Service.PolishContent(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Content polished",
		Results: result,
	})
}

func (h *Assistant) AnalyzeImage(c *fiber.Ctx) error {
	var request domainAssistant.ImageRequest
	utils.PanicIfNeeded(c.BodyParser(&request))

	result, err := h.Service.AnalyzeImage(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Image analyzed",
		Results: result,
	})
}

func (h *Assistant) DynamicInsight(c *fiber.Ctx) error {
	var request domainAssistant.InsightRequest
	utils.PanicIfNeeded(c.BodyParser(&request))

	result, err := h.Service.DynamicInsight(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Insight generated",
		Results: result,
	})
}
