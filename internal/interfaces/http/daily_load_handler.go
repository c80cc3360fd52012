package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/conta-negocios/internal/application/dailyload"
	"github.com/jcastano/conta-negocios/internal/application/dto"
)

// DailyLoadHandler maneja las peticiones HTTP del motor de carga del día.
type DailyLoadHandler struct {
	uc *dailyload.UseCase
}

// NewDailyLoadHandler construye el handler.
func NewDailyLoadHandler(uc *dailyload.UseCase) *DailyLoadHandler {
	return &DailyLoadHandler{uc: uc}
}

// Create godoc
// @Summary      Crear la carga del día
// @Description  Saca stock de bodega para la venta del día. Una sola carga por fecha; el precio de venta vigente queda congelado en cada ítem.
// @Tags         daily-loads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLoadRequest  true  "date (opcional, YYYY-MM-DD) e items"
// @Success      201   {object}  dto.LoadResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/daily-loads [post]
func (h *DailyLoadHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLoadRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	load, err := h.uc.CreateLoad(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewLoadResponse(load))
}

// GetByDate godoc
// @Summary      Carga de una fecha
// @Description  Devuelve la carga de la fecha indicada (por defecto hoy) o null si no hay.
// @Tags         daily-loads
// @Produce      json
// @Param        date  query  string  false  "Fecha YYYY-MM-DD (vacío = hoy)"
// @Success      200  {object}  dto.LoadResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/daily-loads/today [get]
func (h *DailyLoadHandler) GetByDate(c *fiber.Ctx) error {
	load, err := h.uc.GetByDate(c.Context(), c.Query("date"))
	if err != nil {
		return respondError(c, err)
	}
	if load == nil {
		return c.JSON(nil)
	}
	return c.JSON(dto.NewLoadResponse(load))
}

// List godoc
// @Summary      Historial de cargas
// @Tags         daily-loads
// @Produce      json
// @Success      200  {array}  dto.LoadResponse
// @Router       /api/daily-loads [get]
func (h *DailyLoadHandler) List(c *fiber.Ctx) error {
	loads, err := h.uc.List(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.LoadResponse, 0, len(loads))
	for _, l := range loads {
		resp = append(resp, dto.NewLoadResponse(l))
	}
	return c.JSON(resp)
}

// RegisterSale godoc
// @Summary      Registrar venta desde la carga
// @Description  Vende unidades de la carga abierta al precio congelado y asienta la venta en el libro contable.
// @Tags         daily-loads
// @Accept       json
// @Produce      json
// @Param        body  body  dto.RegisterLoadSaleRequest  true  "load_id e items"
// @Success      200   {object}  dto.RegisterSaleResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/daily-loads/sell [post]
func (h *DailyLoadHandler) RegisterSale(c *fiber.Ctx) error {
	var in dto.RegisterLoadSaleRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	load, saleTotal, err := h.uc.RegisterSale(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.RegisterSaleResponse{Load: dto.NewLoadResponse(load), SaleTotal: saleTotal})
}

// Close godoc
// @Summary      Cerrar la carga del día
// @Description  Devuelve lo no vendido a bodega y marca la carga CLOSED (terminal).
// @Tags         daily-loads
// @Produce      json
// @Param        id  path  string  true  "ID de la carga"
// @Success      200  {object}  dto.LoadResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/daily-loads/{id}/close [put]
func (h *DailyLoadHandler) Close(c *fiber.Ctx) error {
	load, err := h.uc.CloseLoad(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.NewLoadResponse(load))
}
