package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
)

type Options struct {
	AppName string
}

func NewServer(opts Options, modules ...Module) *fiber.App {
	app := fiber.New(fiber.Config{AppName: opts.AppName})

	app.Use(recover.New())
	app.Use(requestid.New())
	app.Use(logger.New())

	api := app.Group("/api")
	v1 := api.Group("/v1")

	for _, m := range modules {
		m.Register(v1)
	}

	app.Get("/healthz", func(c *fiber.Ctx) error { return c.JSON(fiber.Map{"status": "ok"}) })
	return app
}
