package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/conta-negocios/internal/application/batch"
	"github.com/jcastano/conta-negocios/internal/application/dto"
)

// BatchHandler maneja los lotes de inversión.
type BatchHandler struct {
	uc *batch.UseCase
}

// NewBatchHandler construye el handler.
func NewBatchHandler(uc *batch.UseCase) *BatchHandler {
	return &BatchHandler{uc: uc}
}

// Create godoc
// @Summary      Crear lote de inversión
// @Description  Crea el lote y, si trae inversión inicial, la asienta como movimiento INVESTMENT en el libro contable.
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateBatchRequest  true  "Nombre e inversión inicial"
// @Success      201   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/batches [post]
func (h *BatchHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.Create(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewBatchResponse(b))
}

// List godoc
// @Summary      Listar lotes
// @Tags         batches
// @Produce      json
// @Success      200  {array}  dto.BatchResponse
// @Router       /api/batches [get]
func (h *BatchHandler) List(c *fiber.Ctx) error {
	batches, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.BatchResponse, 0, len(batches))
	for _, b := range batches {
		resp = append(resp, dto.NewBatchResponse(b))
	}
	return c.JSON(resp)
}

// Update godoc
// @Summary      Actualizar lote
// @Tags         batches
// @Accept       json
// @Produce      json
// @Param        id    path  string                  true  "ID del lote"
// @Param        body  body  dto.UpdateBatchRequest  true  "Campos a actualizar"
// @Success      200   {object}  dto.BatchResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [put]
func (h *BatchHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateBatchRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	b, err := h.uc.Update(c.Context(), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewBatchResponse(b))
}

// Delete godoc
// @Summary      Eliminar lote
// @Tags         batches
// @Param        id  path  string  true  "ID del lote"
// @Success      204  "Sin contenido"
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id} [delete]
func (h *BatchHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Rentabilidad del lote
// @Description  Inversión, ingresos reales, unidades vendidas, stock restante y utilidad del lote.
// @Tags         batches
// @Produce      json
// @Param        id  path  string  true  "ID del lote"
// @Success      200  {object}  dto.BatchSummaryResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/batches/{id}/summary [get]
func (h *BatchHandler) Summary(c *fiber.Ctx) error {
	summary, err := h.uc.Summary(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(summary)
}
