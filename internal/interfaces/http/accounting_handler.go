package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/conta-negocios/internal/application/accounting"
	"github.com/jcastano/conta-negocios/internal/application/dto"
)

// AccountingHandler maneja gastos, balance diario, cortes de caja y reportes.
type AccountingHandler struct {
	uc *accounting.UseCase
}

// NewAccountingHandler construye el handler.
func NewAccountingHandler(uc *accounting.UseCase) *AccountingHandler {
	return &AccountingHandler{uc: uc}
}

// CreateExpense godoc
// @Summary      Registrar gasto
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateExpenseRequest  true  "Monto y descripción"
// @Success      201   {object}  dto.ExpenseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounting/expenses [post]
func (h *AccountingHandler) CreateExpense(c *fiber.Ctx) error {
	var in dto.CreateExpenseRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	mov, err := h.uc.CreateExpense(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ExpenseResponse{
		ID:          mov.ID,
		Amount:      mov.Amount,
		Date:        mov.Date,
		Description: mov.Description,
	})
}

// DailyBalance godoc
// @Summary      Balance del día
// @Description  Ventas menos salidas de efectivo de hoy: el efectivo esperado en caja.
// @Tags         accounting
// @Produce      json
// @Success      200  {object}  dto.DailyBalanceResponse
// @Router       /api/accounting/daily-balance [get]
func (h *AccountingHandler) DailyBalance(c *fiber.Ctx) error {
	balance, err := h.uc.DailyBalance(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(balance)
}

// CashCut godoc
// @Summary      Realizar corte de caja
// @Tags         accounting
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CashCutRequest  true  "Efectivo esperado y contado"
// @Success      201   {object}  dto.CashCutResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/accounting/cash-cut [post]
func (h *AccountingHandler) CashCut(c *fiber.Ctx) error {
	var in dto.CashCutRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	cut, err := h.uc.PerformCashCut(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.NewCashCutResponse(cut))
}

// ListCashCuts godoc
// @Summary      Historial de cortes de caja
// @Tags         accounting
// @Produce      json
// @Param        limit   query  int  false  "Límite (default 50)"
// @Param        offset  query  int  false  "Desplazamiento"
// @Success      200  {array}  dto.CashCutResponse
// @Router       /api/accounting/cash-cuts [get]
func (h *AccountingHandler) ListCashCuts(c *fiber.Ctx) error {
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	page.DefaultPage()

	cuts, err := h.uc.ListCashCuts(c.Context(), page.Limit, page.Offset)
	if err != nil {
		return respondError(c, err)
	}
	resp := make([]dto.CashCutResponse, 0, len(cuts))
	for _, cut := range cuts {
		resp = append(resp, dto.NewCashCutResponse(cut))
	}
	return c.JSON(resp)
}

// ProfitReport godoc
// @Summary      Reporte de utilidad
// @Description  Ventas, costo de lo vendido y gastos de un periodo. Sin fechas, usa del primer día del mes hasta hoy.
// @Tags         accounting
// @Produce      json
// @Param        from  query  string  false  "Desde (YYYY-MM-DD)"
// @Param        to    query  string  false  "Hasta (YYYY-MM-DD)"
// @Success      200  {object}  dto.ProfitReportResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/accounting/profit-report [get]
func (h *AccountingHandler) ProfitReport(c *fiber.Ctx) error {
	from, err := parseDateQuery(c.Query("from"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fecha 'from' inválida, formato YYYY-MM-DD"})
	}
	to, err := parseDateQuery(c.Query("to"))
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "fecha 'to' inválida, formato YYYY-MM-DD"})
	}

	report, err := h.uc.ProfitReport(c.Context(), from, to)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(report)
}

// parseDateQuery devuelve tiempo cero si el parámetro viene vacío.
func parseDateQuery(raw string) (time.Time, error) {
	if raw == "" {
		return time.Time{}, nil
	}
	return time.Parse("2006-01-02", raw)
}
