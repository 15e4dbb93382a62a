package rest

import (
	"github.com/postdeck/config"
	coreconfig "github.com/postdeck/core/config"
	"github.com/gofiber/fiber/v2"
)

type App struct{}

func InitRestApp(app fiber.Router) App {
	handler := App{}
	app.Get("/app/version", handler.GetVersion)
	app.Get("/app/settings", handler.GetSettings)

	return handler
}

func (handler *App) GetVersion(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"version": config.AppVersion,
	})
}

func (handler *App) GetSettings(c *fiber.Ctx) error {
	return c.JSON(coreconfig.GetAllSettings())
}
