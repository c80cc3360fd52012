package repository

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

// MovementRepository define el puerto de persistencia del libro contable general
// (ventas, gastos, inversiones, retiros) y del detalle de ventas.
type MovementRepository interface {
	Create(movement *entity.Movement) error
	CreateSaleItem(item *entity.SaleItem) error
	GetByID(id string) (*entity.Movement, error)
	ListByType(movType string, limit, offset int) ([]*entity.Movement, error)
	ListSaleItems(movementID string) ([]*entity.SaleItem, error)

	// SumByTypes suma los montos de los tipos dados dentro del periodo.
	SumByTypes(types []string, from, to time.Time) (decimal.Decimal, error)
	// ListSaleItemsInPeriod devuelve los ítems de venta del periodo con su producto,
	// para reportes de utilidad (precio de venta congelado vs. costo actual).
	ListSaleItemsInPeriod(from, to time.Time) ([]*entity.SaleItem, error)
	// ListSaleItemsByProduct devuelve todas las líneas de venta de un producto.
	ListSaleItemsByProduct(productID string) ([]*entity.SaleItem, error)
	// SumInvestmentsByBatch suma los movimientos INVESTMENT asociados a un lote.
	SumInvestmentsByBatch(batchID string) (decimal.Decimal, error)
}
