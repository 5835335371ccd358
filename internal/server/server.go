// Package server assembles the fiber application: middleware, error
// handling and routes.
package server

import (
	"context"
	"errors"
	"log"
	"strings"

	"inventory-backend/internal/config"
	"inventory-backend/internal/inventory"
	"inventory-backend/internal/metrics"
	"inventory-backend/internal/store"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/gofiber/fiber/v2/middleware/requestid"
	"github.com/google/uuid"
)

type Options struct {
	// AccessLog turns on the per-request log line. Tests leave it off.
	AccessLog bool
}

func New(cfg *config.Config, s store.ProductStore, opts Options) *fiber.App {
	app := fiber.New(fiber.Config{
		AppName:      "inventory-backend",
		ErrorHandler: ErrorHandler,
	})

	app.Use(recover.New())
	app.Use(requestid.New(requestid.Config{Generator: uuid.NewString}))
	if opts.AccessLog {
		app.Use(logger.New(logger.Config{
			Format: "${time} ${locals:requestid} ${status} ${method} ${path} ${latency}\n",
		}))
	}
	app.Use(metrics.Middleware())

	corsOrigins := strings.Split(cfg.CORSOrigins, ",")
	for i := range corsOrigins {
		corsOrigins[i] = strings.TrimSpace(corsOrigins[i])
	}
	app.Use(cors.New(cors.Config{
		AllowOrigins: strings.Join(corsOrigins, ","),
		AllowHeaders: "Origin, Content-Type, Accept",
		AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
	}))

	app.Get("/healthz", HealthHandler(s, cfg))
	app.Get("/metrics", metrics.Handler())

	inventory.RegisterRoutes(app, s, cfg.StoreTimeout)

	return app
}

// ErrorHandler answers fiber errors with their own status and message and
// hides everything else behind a logged 500.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var e *fiber.Error
	if errors.As(err, &e) {
		return c.Status(e.Code).JSON(fiber.Map{
			"message": e.Message,
		})
	}
	log.Printf("Beklenmeyen hata [%v] %s %s: %v", c.Locals(requestid.ConfigDefault.ContextKey), c.Method(), c.Path(), err)
	return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
		"message": "Server error",
	})
}

// GET /healthz
func HealthHandler(s store.ProductStore, cfg *config.Config) fiber.Handler {
	return func(c *fiber.Ctx) error {
		ctx, cancel := context.WithTimeout(c.UserContext(), cfg.StoreTimeout)
		defer cancel()
		if err := s.Ping(ctx); err != nil {
			log.Printf("[WARN] depo ping başarısız: %v", err)
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{
				"status": "unavailable",
			})
		}
		return c.JSON(fiber.Map{"status": "ok"})
	}
}
