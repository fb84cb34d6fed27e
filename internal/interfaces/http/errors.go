package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/pkg/logger"
)

// errInvalidBody cuerpo JSON ilegible.
var errInvalidBody = domain.Invalid("Invalid request body")

// mapError traduce un error a status HTTP + cuerpo {code, message}. Único punto de mapeo.
func mapError(err error) (int, dto.ErrorResponse) {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return fe.Code, dto.ErrorResponse{Code: codeForStatus(fe.Code), Message: fe.Message}
	}

	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		status = fiber.StatusBadRequest
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status = fiber.StatusNotFound
	case errors.Is(err, domain.ErrDuplicate):
		return fiber.StatusConflict, dto.ErrorResponse{Code: "DUPLICATE", Message: messageOf(err, "Duplicate resource")}
	case errors.Is(err, domain.ErrConflict):
		status = fiber.StatusConflict
	case errors.Is(err, domain.ErrUnauthorized):
		status = fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrForbidden):
		status = fiber.StatusForbidden
	default:
		return status, dto.ErrorResponse{Code: "INTERNAL", Message: "internal server error"}
	}
	return status, dto.ErrorResponse{Code: codeForStatus(status), Message: messageOf(err, defaultMessage(status))}
}

// messageOf usa el mensaje de *domain.Error; los sentinelas sueltos reciben un texto genérico.
func messageOf(err error, fallback string) string {
	var de *domain.Error
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}

func codeForStatus(status int) string {
	switch status {
	case fiber.StatusBadRequest:
		return "VALIDATION"
	case fiber.StatusUnauthorized:
		return "UNAUTHORIZED"
	case fiber.StatusForbidden:
		return "FORBIDDEN"
	case fiber.StatusNotFound:
		return "NOT_FOUND"
	case fiber.StatusMethodNotAllowed:
		return "METHOD_NOT_ALLOWED"
	case fiber.StatusConflict:
		return "CONFLICT"
	case fiber.StatusRequestEntityTooLarge:
		return "PAYLOAD_TOO_LARGE"
	case fiber.StatusTooManyRequests:
		return "RATE_LIMITED"
	}
	if status >= 500 {
		return "INTERNAL"
	}
	return "ERROR"
}

func defaultMessage(status int) string {
	switch status {
	case fiber.StatusNotFound:
		return "Not found"
	case fiber.StatusConflict:
		return "Conflict"
	case fiber.StatusUnauthorized:
		return "Unauthorized"
	case fiber.StatusForbidden:
		return "Forbidden"
	}
	return "Invalid input"
}

// ErrorHandler fiber.Config.ErrorHandler: mapea el error y registra los 5xx con detalle
// (el cliente solo ve "internal server error").
func ErrorHandler(log *logger.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		status, body := mapError(err)
		if status >= fiber.StatusInternalServerError {
			log.Error().
				Err(err).
				Str("method", c.Method()).
				Str("path", c.Path()).
				Msg("error interno atendiendo petición")
		}
		return c.Status(status).JSON(body)
	}
}
