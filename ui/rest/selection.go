package rest

import (
	domainSelection "github.com/postdeck/domains/selection"
	"github.com/postdeck/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Selection struct {
	Service domainSelection.ISelectionUsecase
}

func InitRestSelection(app fiber.Router, service domainSelection.ISelectionUsecase) Selection {
	handler := Selection{Service: service}

	group := app.Group("/selection")
	group.Get("/", handler.State)
	group.Post("/date/:date", handler.SelectDate)
	group.Post("/post/:id", handler.SelectPost)
	group.Post("/close", handler.Close)

	return handler
}

func (h *Selection) State(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Selection state retrieved",
		Results: h.Service.State(c.UserContext()),
	})
}

func (h *Selection) SelectDate(c *fiber.Ctx) error {
	state, err := h.Service.SelectDate(c.UserContext(), c.Params("date"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Date selected",
		Results: state,
	})
}

func (h *Selection) SelectPost(c *fiber.Ctx) error {
	state, err := h.Service.SelectPost(c.UserContext(), c.Params("id"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Post selected",
		Results: state,
	})
}

func (h *Selection) Close(c *fiber.Ctx) error {
	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Detail view closed",
		Results: h.Service.Close(c.UserContext()),
	})
}
