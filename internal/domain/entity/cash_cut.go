package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CashCut es el corte de caja: comparación del efectivo esperado contra el contado
// al cierre del día. Difference = ActualAmount - ExpectedAmount.
type CashCut struct {
	ID             string
	Date           time.Time
	ExpectedAmount decimal.Decimal
	ActualAmount   decimal.Decimal
	Difference     decimal.Decimal
	Notes          string
	CreatedAt      time.Time
}
