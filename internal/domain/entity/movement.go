package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Tipos de movimiento contable (dinero que entra o sale de la caja).
const (
	MovementSale       = "SALE"
	MovementExpense    = "EXPENSE"
	MovementInvestment = "INVESTMENT"
	MovementLoss       = "LOSS"
	MovementWithdrawal = "WITHDRAWAL"
)

// Movement es un registro inmutable del libro contable general. Una venta lleva
// además sus SaleItems; gastos, inversiones y retiros son solo el monto.
type Movement struct {
	ID          string
	Type        string
	Amount      decimal.Decimal
	Date        time.Time
	Description string
	BatchID     string // opcional: lote de inversión asociado
	FromCash    bool   // la inversión salió de la caja del negocio
	Items       []*SaleItem
	CreatedAt   time.Time
}

// SaleItem es el detalle de una venta: cantidad y precio congelado al momento de vender.
type SaleItem struct {
	ID              string
	MovementID      string
	ProductID       string
	Quantity        int
	UnitPriceAtSale decimal.Decimal
	Total           decimal.Decimal
	Product         *Product // detalle para presentación; puede ser nil
}
