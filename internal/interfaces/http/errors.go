package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/agro-inventario/internal/application/dto"
	"github.com/jhoicas/agro-inventario/internal/domain"
	"github.com/jhoicas/agro-inventario/pkg/logger"
)

// statusClientClosedRequest el cliente cerró la conexión antes de la respuesta (convención de nginx).
const statusClientClosedRequest = 499

// writeError traduce errores de dominio a {code, message, details} con su status HTTP.
func writeError(c *fiber.Ctx, log *logger.Logger, err error) error {
	var ve *domain.ValidationError
	switch {
	case errors.As(err, &ve):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
			Code:    dto.CodeValidation,
			Message: ve.Error(),
			Details: map[string]string{ve.Field: ve.Reason},
		})
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: dto.CodeValidation, Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: dto.CodeNotFound, Message: domain.ErrNotFound.Error()})
	case errors.Is(err, domain.ErrInsufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: dto.CodeInsufficientBalance, Message: err.Error()})
	case errors.Is(err, domain.ErrConflict):
		c.Set(fiber.HeaderRetryAfter, "1")
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: dto.CodeConflict, Message: domain.ErrConflict.Error()})
	case errors.Is(err, context.Canceled):
		log.Debug().Err(err).Str("path", c.Path()).Msg("solicitud cancelada por el cliente")
		return c.Status(statusClientClosedRequest).JSON(dto.ErrorResponse{Code: dto.CodeCanceled, Message: "solicitud cancelada"})
	case errors.Is(err, domain.ErrStorage), errors.Is(err, context.DeadlineExceeded):
		log.Error().Err(err).Str("path", c.Path()).Msg("falla de almacenamiento")
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: dto.CodeStorage, Message: domain.ErrStorage.Error()})
	}
	log.Error().Err(err).Str("path", c.Path()).Msg("error interno")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: dto.CodeInternal, Message: "error interno"})
}

// badBody respuesta para un cuerpo JSON que no se pudo leer.
func badBody(c *fiber.Ctx, err error) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    dto.CodeValidation,
		Message: "cuerpo inválido: " + err.Error(),
	})
}

// validationFailed respuesta para errores del validador de DTOs.
func validationFailed(c *fiber.Ctx, details map[string]string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{
		Code:    dto.CodeValidation,
		Message: "datos inválidos",
		Details: details,
	})
}
