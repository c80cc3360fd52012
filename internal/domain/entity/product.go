package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo con su stock en bodega principal.
// CurrentStock solo se muta vía movimientos (carga del día, ventas, ajustes) y
// nunca queda negativo después de una operación.
type Product struct {
	ID            string
	Name          string
	CostPrice     decimal.Decimal // costo unitario de compra/producción
	SellingPrice  decimal.Decimal // precio de venta vigente
	CurrentStock  int
	MinStockAlert int    // umbral de alerta de stock bajo
	BatchID       string // opcional: lote de inversión al que pertenece
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// LowStock indica si el producto está en o por debajo de su umbral de alerta.
func (p *Product) LowStock() bool {
	return p.CurrentStock <= p.MinStockAlert
}
