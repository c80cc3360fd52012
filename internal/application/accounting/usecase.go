package accounting

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// UseCase contabilidad simple del negocio: gastos, balance del día y corte de caja.
// Son inserciones y agregaciones directas, sin orquestación transaccional.
type UseCase struct {
	ledgerRepo  repository.MovementRepository
	cashCutRepo repository.CashCutRepository
}

// NewUseCase construye el caso de uso contable.
func NewUseCase(ledgerRepo repository.MovementRepository, cashCutRepo repository.CashCutRepository) *UseCase {
	return &UseCase{ledgerRepo: ledgerRepo, cashCutRepo: cashCutRepo}
}

// CreateExpense registra un gasto en el libro contable.
func (uc *UseCase) CreateExpense(ctx context.Context, in dto.CreateExpenseRequest) (*entity.Movement, error) {
	if !in.Amount.IsPositive() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	expense := &entity.Movement{
		ID:          uuid.New().String(),
		Type:        entity.MovementExpense,
		Amount:      in.Amount,
		Date:        now,
		Description: in.Description,
		CreatedAt:   now,
	}
	if err := uc.ledgerRepo.Create(expense); err != nil {
		return nil, err
	}
	return expense, nil
}

// DailyBalance calcula el balance de hoy para el corte de caja:
// efectivo esperado = ventas del día − (gastos + retiros) del día.
func (uc *UseCase) DailyBalance(ctx context.Context) (dto.DailyBalanceResponse, error) {
	now := time.Now()
	dayStart := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, now.Location())
	dayEnd := dayStart.Add(24*time.Hour - time.Nanosecond)

	sales, err := uc.ledgerRepo.SumByTypes([]string{entity.MovementSale}, dayStart, dayEnd)
	if err != nil {
		return dto.DailyBalanceResponse{}, err
	}
	expenses, err := uc.ledgerRepo.SumByTypes([]string{entity.MovementExpense, entity.MovementWithdrawal}, dayStart, dayEnd)
	if err != nil {
		return dto.DailyBalanceResponse{}, err
	}

	return dto.DailyBalanceResponse{
		Sales:        sales,
		Expenses:     expenses,
		ExpectedCash: sales.Sub(expenses),
	}, nil
}

// PerformCashCut registra el corte de caja del día: esperado vs. contado.
// Difference = contado − esperado (negativo = faltante).
func (uc *UseCase) PerformCashCut(ctx context.Context, in dto.CashCutRequest) (*entity.CashCut, error) {
	if in.ExpectedAmount.IsNegative() || in.ActualAmount.IsNegative() {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	cut := &entity.CashCut{
		ID:             uuid.New().String(),
		Date:           now,
		ExpectedAmount: in.ExpectedAmount,
		ActualAmount:   in.ActualAmount,
		Difference:     in.ActualAmount.Sub(in.ExpectedAmount),
		Notes:          in.Notes,
		CreatedAt:      now,
	}
	if err := uc.cashCutRepo.Create(cut); err != nil {
		return nil, err
	}
	return cut, nil
}

// ListCashCuts historial de cortes, los más recientes primero.
func (uc *UseCase) ListCashCuts(ctx context.Context, limit, offset int) ([]*entity.CashCut, error) {
	return uc.cashCutRepo.List(limit, offset)
}

// ProfitReport utilidad de un periodo: ventas al precio congelado de cada línea,
// costo con el cost_price actual del producto, menos gastos operativos.
func (uc *UseCase) ProfitReport(ctx context.Context, from, to time.Time) (dto.ProfitReportResponse, error) {
	if from.IsZero() {
		now := time.Now()
		from = time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
	}
	if to.IsZero() {
		to = time.Now()
	}
	to = time.Date(to.Year(), to.Month(), to.Day(), 23, 59, 59, 0, to.Location())

	items, err := uc.ledgerRepo.ListSaleItemsInPeriod(from, to)
	if err != nil {
		return dto.ProfitReportResponse{}, err
	}

	totalSales := decimal.Zero
	totalCost := decimal.Zero
	for _, it := range items {
		qty := decimal.NewFromInt(int64(it.Quantity))
		totalSales = totalSales.Add(it.UnitPriceAtSale.Mul(qty))
		if it.Product != nil {
			totalCost = totalCost.Add(it.Product.CostPrice.Mul(qty))
		}
	}
	grossProfit := totalSales.Sub(totalCost)

	expenses, err := uc.ledgerRepo.SumByTypes([]string{entity.MovementExpense}, from, to)
	if err != nil {
		return dto.ProfitReportResponse{}, err
	}

	return dto.ProfitReportResponse{
		PeriodStart:   from,
		PeriodEnd:     to,
		TotalSales:    totalSales,
		TotalCost:     totalCost,
		GrossProfit:   grossProfit,
		TotalExpenses: expenses,
		NetProfit:     grossProfit.Sub(expenses),
	}, nil
}
