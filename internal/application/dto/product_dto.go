package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

// CreateProductRequest body para POST /api/products.
type CreateProductRequest struct {
	Name          string          `json:"name"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	CurrentStock  int             `json:"current_stock"`
	MinStockAlert int             `json:"min_stock_alert"`
	BatchID       string          `json:"batch_id,omitempty"`
}

// UpdateProductRequest body para PUT /api/products/:id. Campos nil = sin cambio.
type UpdateProductRequest struct {
	Name          *string          `json:"name,omitempty"`
	CostPrice     *decimal.Decimal `json:"cost_price,omitempty"`
	SellingPrice  *decimal.Decimal `json:"selling_price,omitempty"`
	MinStockAlert *int             `json:"min_stock_alert,omitempty"`
}

// AdjustStockRequest body para PUT /api/products/:id/stock.
// Delta positivo suma, negativo resta; el resultado nunca puede quedar negativo.
type AdjustStockRequest struct {
	Delta  int    `json:"delta"`
	Reason string `json:"reason"`
}

// ProductResponse representación JSON de un producto.
type ProductResponse struct {
	ID            string          `json:"id"`
	Name          string          `json:"name"`
	CostPrice     decimal.Decimal `json:"cost_price"`
	SellingPrice  decimal.Decimal `json:"selling_price"`
	CurrentStock  int             `json:"current_stock"`
	MinStockAlert int             `json:"min_stock_alert"`
	BatchID       string          `json:"batch_id,omitempty"`
	LowStock      bool            `json:"low_stock"`
	CreatedAt     time.Time       `json:"created_at"`
	UpdatedAt     time.Time       `json:"updated_at"`
}

// NewProductResponse convierte la entidad al DTO de respuesta.
func NewProductResponse(p *entity.Product) ProductResponse {
	return ProductResponse{
		ID:            p.ID,
		Name:          p.Name,
		CostPrice:     p.CostPrice,
		SellingPrice:  p.SellingPrice,
		CurrentStock:  p.CurrentStock,
		MinStockAlert: p.MinStockAlert,
		BatchID:       p.BatchID,
		LowStock:      p.LowStock(),
		CreatedAt:     p.CreatedAt,
		UpdatedAt:     p.UpdatedAt,
	}
}
