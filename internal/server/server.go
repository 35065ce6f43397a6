package server

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/lgbarn/pgn-turns-go/internal/config"
)

// Options configures the HTTP application.
type Options struct {
	// AllowOrigins is the CORS origin list; empty allows any origin.
	AllowOrigins string
	// BodyLimit caps request bodies in bytes.
	BodyLimit int
}

// New builds the application and its routes.
func New(cfg *config.Config, opts Options) *fiber.App {
	if opts.AllowOrigins == "" {
		opts.AllowOrigins = "*"
	}
	if opts.BodyLimit <= 0 {
		opts.BodyLimit = 16 * 1024 * 1024
	}

	app := fiber.New(fiber.Config{
		AppName:               "pgn-turns",
		BodyLimit:             opts.BodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: opts.AllowOrigins,
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET, POST, OPTIONS",
	}))
	if cfg.Verbosity >= 2 && cfg.LogFile != nil {
		app.Use(logger.New(logger.Config{Output: cfg.LogFile}))
	}

	gameController := NewGameController(NewService(cfg))

	api := app.Group("/api")
	api.Get("/health", gameController.Health)
	api.Post("/parse", gameController.Parse)
	api.Post("/diagram", gameController.Diagram)

	return app
}
