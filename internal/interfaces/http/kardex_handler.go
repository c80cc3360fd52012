package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/application/inventory"
)

// KardexHandler expone el historial de movimientos de inventario.
type KardexHandler struct {
	uc *inventory.KardexUseCase
}

// NewKardexHandler construye el handler.
func NewKardexHandler(uc *inventory.KardexUseCase) *KardexHandler {
	return &KardexHandler{uc: uc}
}

// History godoc
// @Summary      Historial de movimientos (kárdex)
// @Description  Entradas, salidas y ajustes con saldo posterior. Sin fechas, usa del primer día del mes hasta hoy.
// @Tags         kardex
// @Produce      json
// @Param        from        query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to          query  string  false  "Hasta (YYYY-MM-DD)"
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        limit       query  int     false  "Límite (default 50)"
// @Param        offset      query  int     false  "Desplazamiento"
// @Success      200  {array}  dto.KardexEntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/kardex/history [get]
func (h *KardexHandler) History(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fecha 'from' inválida, formato YYYY-MM-DD"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fecha 'to' inválida, formato YYYY-MM-DD"})
	}

	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	fromPtr, toPtr := ptrIfSet(from), ptrIfSet(to)

	entries, err := h.uc.History(c.Context(), fromPtr, toPtr, c.Query("product_id"), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(entries)
}

// ptrIfSet devuelve nil para tiempo cero, para que el caso de uso aplique sus defaults.
func ptrIfSet(t time.Time) *time.Time {
	if t.IsZero() {
		return nil
	}
	return &t
}
