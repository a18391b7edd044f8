package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/retail-curves/internal/application/dto"
	"github.com/jhoicas/retail-curves/internal/domain"
	domnavidad "github.com/jhoicas/retail-curves/internal/domain/navidad"
)

// respondError traduce errores de dominio a {code, message}. El mensaje conserva la causa.
func respondError(c *fiber.Ctx, err error) error {
	status, code := fiber.StatusInternalServerError, "INTERNAL"
	switch {
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		status, code = fiber.StatusNotFound, "NOT_FOUND"
	case errors.Is(err, domain.ErrInvalidInput):
		status, code = fiber.StatusBadRequest, "VALIDATION"
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		status, code = fiber.StatusConflict, "EMAIL_EXISTS"
	case errors.Is(err, domain.ErrDuplicate), errors.Is(err, domain.ErrConflict):
		status, code = fiber.StatusConflict, "CONFLICT"
	case errors.Is(err, domain.ErrUnauthorized):
		status, code = fiber.StatusUnauthorized, "UNAUTHORIZED"
	case errors.Is(err, domain.ErrForbidden):
		status, code = fiber.StatusForbidden, "FORBIDDEN"
	case errors.Is(err, domnavidad.ErrHeadersNotFound):
		status, code = fiber.StatusUnprocessableEntity, "HEADERS_NOT_FOUND"
	case errors.Is(err, domnavidad.ErrSheetNotFound):
		status, code = fiber.StatusUnprocessableEntity, "SHEET_NOT_FOUND"
	case errors.Is(err, domnavidad.ErrUnsupportedFormat):
		status, code = fiber.StatusUnsupportedMediaType, "UNSUPPORTED_FORMAT"
	case errors.Is(err, domnavidad.ErrFileNotFound):
		status, code = fiber.StatusBadRequest, "FILE_NOT_FOUND"
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}
