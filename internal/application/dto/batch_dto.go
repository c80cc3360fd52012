package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

// CreateBatchRequest body para POST /api/batches.
// TotalInvestment > 0 genera un movimiento INVESTMENT asociado al lote.
type CreateBatchRequest struct {
	Name            string          `json:"name"`
	Description     string          `json:"description,omitempty"`
	TotalInvestment decimal.Decimal `json:"total_investment"`
	FromCash        bool            `json:"from_cash"`
}

// UpdateBatchRequest body para PUT /api/batches/:id.
type UpdateBatchRequest struct {
	Name        *string `json:"name,omitempty"`
	Description *string `json:"description,omitempty"`
	Status      *string `json:"status,omitempty"`
}

// BatchResponse un lote sin agregados de rentabilidad.
type BatchResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Description string    `json:"description,omitempty"`
	Status      string    `json:"status"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// NewBatchResponse convierte la entidad al DTO de respuesta.
func NewBatchResponse(b *entity.ProductBatch) BatchResponse {
	return BatchResponse{
		ID:          b.ID,
		Name:        b.Name,
		Description: b.Description,
		Status:      b.Status,
		CreatedAt:   b.CreatedAt,
		UpdatedAt:   b.UpdatedAt,
	}
}

// BatchSummaryResponse rentabilidad agregada de un lote.
type BatchSummaryResponse struct {
	ID               string          `json:"id"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Status           string          `json:"status"`
	TotalInvestment  decimal.Decimal `json:"total_investment"`
	TotalRevenue     decimal.Decimal `json:"total_revenue"`
	TotalUnitsSold   int             `json:"total_units_sold"`
	UnitsInStock     int             `json:"units_in_stock"`
	PotentialRevenue decimal.Decimal `json:"potential_revenue"` // si se vendiera todo el stock restante
	Profit           decimal.Decimal `json:"profit"`
}

// ProfitReportResponse reporte de utilidad de un periodo.
type ProfitReportResponse struct {
	PeriodStart   time.Time       `json:"period_start"`
	PeriodEnd     time.Time       `json:"period_end"`
	TotalSales    decimal.Decimal `json:"total_sales"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	GrossProfit   decimal.Decimal `json:"gross_profit"`
	TotalExpenses decimal.Decimal `json:"total_expenses"`
	NetProfit     decimal.Decimal `json:"net_profit"`
}
