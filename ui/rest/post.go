package rest

import (
	domainPost "github.com/postdeck/domains/post"
	"github.com/postdeck/pkg/utils"
	"github.com/gofiber/fiber/v2"
)

type Post struct {
	Service domainPost.IPostUsecase
}

func InitRestPost(app fiber.Router, service domainPost.IPostUsecase) Post {
	handler := Post{Service: service}

	group := app.Group("/posts")
	group.Post("/", handler.Create)
	group.Get("/", handler.List)
	group.Get("/date/:date", handler.ListForDate)
	group.Post("/sync", handler.Sync)

	return handler
}

// Create accepts the multipart submission form. The response carries the
// optimistic post; the backend copy arrives through the next sync.
func (h *Post) Create(c *fiber.Ctx) error {
	var request domainPost.CreatePostRequest
	if err := c.BodyParser(&request); err != nil {
		return c.Status(400).JSON(utils.ResponseData{
			Status:  400,
			Code:    "VALIDATION_ERROR",
			Message: err.Error(),
		})
	}
	if file, err := c.FormFile("image_file"); err == nil {
		request.ImageFile = file
	}

	created, err := h.Service.Submit(c.UserContext(), request)
	utils.PanicIfNeeded(err)

	return c.Status(201).JSON(utils.ResponseData{
		Status:  201,
		Code:    "SUCCESS",
		Message: "Post queued for publishing",
		Results: created,
	})
}

func (h *Post) List(c *fiber.Ctx) error {
	posts := h.Service.List(c.UserContext())

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Posts retrieved",
		Results: map[string]any{
			"posts":           posts,
			"last_sync_error": h.Service.LastSyncError(c.UserContext()),
		},
	})
}

func (h *Post) ListForDate(c *fiber.Ctx) error {
	posts, err := h.Service.ListForDate(c.UserContext(), c.Params("date"))
	utils.PanicIfNeeded(err)

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Posts for date retrieved",
		Results: posts,
	})
}

func (h *Post) Sync(c *fiber.Ctx) error {
	h.Service.TriggerSync(c.UserContext())

	return c.JSON(utils.ResponseData{
		Status:  200,
		Code:    "SUCCESS",
		Message: "Sync triggered",
	})
}
