package dto

import (
	"time"

	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

// CreateExpenseRequest body para POST /api/accounting/expenses.
type CreateExpenseRequest struct {
	Amount      decimal.Decimal `json:"amount"`
	Description string          `json:"description"`
}

// DailyBalanceResponse balance del día para el corte de caja.
type DailyBalanceResponse struct {
	Sales        decimal.Decimal `json:"sales"`
	Expenses     decimal.Decimal `json:"expenses"`
	ExpectedCash decimal.Decimal `json:"expected_cash"`
}

// CashCutRequest body para POST /api/accounting/cash-cut.
type CashCutRequest struct {
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	ActualAmount   decimal.Decimal `json:"actual_amount"`
	Notes          string          `json:"notes,omitempty"`
}

// CashCutResponse corte de caja registrado.
type CashCutResponse struct {
	ID             string          `json:"id"`
	Date           time.Time       `json:"date"`
	ExpectedAmount decimal.Decimal `json:"expected_amount"`
	ActualAmount   decimal.Decimal `json:"actual_amount"`
	Difference     decimal.Decimal `json:"difference"`
	Notes          string          `json:"notes,omitempty"`
}

// NewCashCutResponse convierte la entidad al DTO de respuesta.
func NewCashCutResponse(cc *entity.CashCut) CashCutResponse {
	return CashCutResponse{
		ID:             cc.ID,
		Date:           cc.Date,
		ExpectedAmount: cc.ExpectedAmount,
		ActualAmount:   cc.ActualAmount,
		Difference:     cc.Difference,
		Notes:          cc.Notes,
	}
}

// ExpenseResponse un gasto registrado en el libro contable.
type ExpenseResponse struct {
	ID          string          `json:"id"`
	Amount      decimal.Decimal `json:"amount"`
	Date        time.Time       `json:"date"`
	Description string          `json:"description,omitempty"`
}
