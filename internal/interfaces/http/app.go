package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// AppConfig ajustes del servidor Fiber.
type AppConfig struct {
	Name        string
	CORSOrigins string
	BodyLimit   int
}

// NewApp crea la app Fiber con el manejo de errores y los middlewares comunes.
// Las rutas se registran aparte con Router.
func NewApp(cfg AppConfig, log *logger.Logger) *fiber.App {
	if cfg.BodyLimit <= 0 {
		cfg.BodyLimit = 1 << 20
	}
	app := fiber.New(fiber.Config{
		AppName:               cfg.Name,
		ErrorHandler:          ErrorHandler(log),
		ReadTimeout:           10 * time.Second,
		WriteTimeout:          10 * time.Second,
		IdleTimeout:           120 * time.Second,
		BodyLimit:             cfg.BodyLimit,
		DisableStartupMessage: true,
	})

	app.Use(recover.New())
	if cfg.CORSOrigins != "" {
		app.Use(cors.New(cors.Config{
			AllowOrigins: cfg.CORSOrigins,
			AllowHeaders: "Origin, Content-Type, Accept, Authorization",
			AllowMethods: "GET,POST,PUT,DELETE,OPTIONS",
		}))
	}
	app.Use(MetricsMiddleware())
	app.Use(RequestLogger(log))
	return app
}
