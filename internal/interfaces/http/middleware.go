package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/metrics"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// statusOf status final de la respuesta; si el handler devolvió error, el que asignará ErrorHandler.
func statusOf(c *fiber.Ctx, err error) int {
	if err != nil {
		status, _ := mapError(err)
		return status
	}
	return c.Response().StatusCode()
}

// MetricsMiddleware mide peticiones por método, ruta registrada y status.
func MetricsMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		done := metrics.RequestStarted()
		err := c.Next()
		done(c.Method(), c.Route().Path, statusOf(c, err))
		return err
	}
}

// RequestLogger registra un resumen por petición.
func RequestLogger(log *logger.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Debug().
			Str("method", c.Method()).
			Str("path", c.Path()).
			Int("status", statusOf(c, err)).
			Dur("latency", time.Since(start)).
			Str("ip", c.IP()).
			Msg("petición atendida")
		return err
	}
}
