package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/domain"
)

// respondError traduce errores de dominio a códigos HTTP y un cuerpo uniforme.
// Validación -> 400, no encontrado -> 404, conflicto de estado/stock -> 409, resto -> 500.
func respondError(c *fiber.Ctx, err error) error {
	var insufficientStock *domain.InsufficientStockError
	var insufficientLoad *domain.InsufficientLoadStockError

	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos"})
	case errors.Is(err, domain.ErrProductNotFound),
		errors.Is(err, domain.ErrLoadNotFound),
		errors.Is(err, domain.ErrItemNotInLoad),
		errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicateLoad):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE_LOAD", Message: err.Error()})
	case errors.Is(err, domain.ErrLoadNotOpen):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOAD_NOT_OPEN", Message: err.Error()})
	case errors.Is(err, domain.ErrLoadClosed):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "LOAD_CLOSED", Message: err.Error()})
	case errors.Is(err, domain.ErrStockBelowZero):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "STOCK_BELOW_ZERO", Message: err.Error()})
	case errors.Is(err, domain.ErrDuplicate):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "DUPLICATE", Message: err.Error()})
	case errors.As(err, &insufficientStock):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: err.Error()})
	case errors.As(err, &insufficientLoad):
		return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_LOAD_STOCK", Message: err.Error()})
	default:
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
}
