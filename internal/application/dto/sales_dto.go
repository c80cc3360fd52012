package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

// CreateSaleRequest body para POST /api/sales (venta directa desde bodega principal).
type CreateSaleRequest struct {
	Items []SaleLineRequest `json:"items"`
}

// SaleItemResponse detalle de una línea de venta.
type SaleItemResponse struct {
	ProductID       string          `json:"product_id"`
	ProductName     string          `json:"product_name,omitempty"`
	Quantity        int             `json:"quantity"`
	UnitPriceAtSale decimal.Decimal `json:"unit_price_at_sale"`
	Total           decimal.Decimal `json:"total"`
}

// SaleResponse una venta del libro contable con su detalle.
type SaleResponse struct {
	ID          string             `json:"id"`
	Amount      decimal.Decimal    `json:"amount"`
	Date        time.Time          `json:"date"`
	Description string             `json:"description,omitempty"`
	Items       []SaleItemResponse `json:"items"`
}

// NewSaleResponse convierte un Movement tipo SALE al DTO de respuesta.
func NewSaleResponse(m *entity.Movement) SaleResponse {
	resp := SaleResponse{
		ID:          m.ID,
		Amount:      m.Amount,
		Date:        m.Date,
		Description: m.Description,
		Items:       make([]SaleItemResponse, 0, len(m.Items)),
	}
	for _, it := range m.Items {
		item := SaleItemResponse{
			ProductID:       it.ProductID,
			Quantity:        it.Quantity,
			UnitPriceAtSale: it.UnitPriceAtSale,
			Total:           it.Total,
		}
		if it.Product != nil {
			item.ProductName = it.Product.Name
		}
		resp.Items = append(resp.Items, item)
	}
	return resp
}
