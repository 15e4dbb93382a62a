package cmd

import (
	"os"
	"os/signal"
	"strings"
	"syscall"
	"time"

	coreconfig "github.com/postdeck/core/config"
	"github.com/postdeck/ui/rest"
	"github.com/postdeck/ui/rest/middleware"
	"github.com/postdeck/ui/websocket"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/basicauth"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/helmet"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

var restCmd = &cobra.Command{
	Use:   "rest",
	Short: "Serve the post scheduler API over http",
	Run:   restServer,
}

func init() {
	restCmd.Flags().String("basic-auth", "", "Basic auth for API (format: user:pass,user2:pass2)")
	rootCmd.AddCommand(restCmd)
}

func restServer(cmd *cobra.Command, _ []string) {
	if baFlag, _ := cmd.Flags().GetString("basic-auth"); baFlag != "" {
		coreconfig.Global.App.BasicAuth = strings.Split(baFlag, ",")
	}

	fiberConfig := fiber.Config{
		EnableTrustedProxyCheck: true,
		BodyLimit:               int(coreconfig.Global.AI.MaxImageBytes) + 1<<20,
		Network:                 "tcp",
		AppName:                 "PostDeck",
		DisableStartupMessage:   false,
		ServerHeader:            "Hidden",
	}

	if len(coreconfig.Global.App.TrustedProxies) > 0 {
		fiberConfig.TrustedProxies = coreconfig.Global.App.TrustedProxies
		fiberConfig.ProxyHeader = fiber.HeaderXForwardedHost
	}

	app := fiber.New(fiberConfig)

	app.Use(requestid.New())

	origins := strings.Join(coreconfig.Global.App.CorsAllowedOrigins, ", ")
	if !strings.Contains(origins, coreconfig.Global.App.BaseUrl) {
		origins += ", " + coreconfig.Global.App.BaseUrl
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: origins,
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, X-Request-ID",
	}))
	app.Use(middleware.Recovery())

	app.Use(helmet.New(helmet.Config{
		XSSProtection:      "1; mode=block",
		ContentTypeNosniff: "nosniff",
		XFrameOptions:      "SAMEORIGIN",
		ReferrerPolicy:     "strict-origin-when-cross-origin",
	}))
	app.Use(limiter.New(limiter.Config{
		Max:        1000,
		Expiration: 1 * time.Minute,
		KeyGenerator: func(c *fiber.Ctx) string {
			return c.IP()
		},
	}))

	if coreconfig.Global.App.Debug {
		app.Use(logger.New())
	}

	// System statics (uploaded images and thumbnails)
	app.Static(coreconfig.Global.App.BasePath+"/statics", "./"+coreconfig.Global.Paths.Statics)

	apiGroup := app.Group(coreconfig.Global.App.BasePath + "/api")

	// Basic auth is optional for a local daemon; when configured it guards the
	// whole API group.
	if len(coreconfig.Global.App.BasicAuth) > 0 {
		account := make(map[string]string)
		for _, basicAuth := range coreconfig.Global.App.BasicAuth {
			ba := strings.Split(basicAuth, ":")
			if len(ba) != 2 {
				logrus.Fatalln("Basic auth is not valid, please use the following format <user>:<secret>")
			}
			account[ba[0]] = ba[1]
		}
		apiGroup.Use(basicauth.New(basicauth.Config{
			Users: account,
			Next: func(c *fiber.Ctx) bool {
				// Allow CORS preflight without credentials.
				return c.Method() == fiber.MethodOptions
			},
		}))
	}

	// Graceful shutdown handler
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	go func() {
		<-sigChan
		logrus.Info("[REST] Termination signal received, shutting down gracefully...")
		if err := app.Shutdown(); err != nil {
			logrus.Errorf("[REST] Error during Fiber shutdown: %v", err)
		}
		StopApp()
	}()

	rest.InitRestApp(apiGroup)
	rest.InitRestPost(apiGroup, postUsecase)
	rest.InitRestAssistant(apiGroup, assistantUsecase)
	rest.InitRestAnalytics(apiGroup, analyticsUsecase)
	rest.InitRestSelection(apiGroup, selectionUsecase)
	rest.InitRestHealth(apiGroup, healthUsecase)
	apiGroup.Get("/submit-pool/stats", rest.GetSubmitPoolStats)

	// Websocket
	websocket.RegisterRoutes(apiGroup)
	go websocket.RunHub()

	// 404 handler for the API group
	apiGroup.All("/*", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "API Endpoint not found",
			"path":  c.Path(),
		})
	})

	if err := app.Listen(":" + coreconfig.Global.App.Port); err != nil {
		logrus.Fatalln("Failed to start: ", err.Error())
	}
}
