package batch

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// UseCase lotes de inversión: agrupaciones de productos con base de costo común,
// seguidas por su rentabilidad agregada (colaborador del núcleo, solo agregación).
type UseCase struct {
	txRunner    TxRunner
	batchRepo   repository.ProductBatchRepository
	productRepo repository.ProductRepository
	ledgerRepo  repository.MovementRepository
}

// NewUseCase construye el caso de uso de lotes.
func NewUseCase(
	txRunner TxRunner,
	batchRepo repository.ProductBatchRepository,
	productRepo repository.ProductRepository,
	ledgerRepo repository.MovementRepository,
) *UseCase {
	return &UseCase{txRunner: txRunner, batchRepo: batchRepo, productRepo: productRepo, ledgerRepo: ledgerRepo}
}

// Create da de alta un lote y, si hay inversión inicial, el movimiento INVESTMENT
// asociado, en una sola transacción.
func (uc *UseCase) Create(ctx context.Context, in dto.CreateBatchRequest) (*entity.ProductBatch, error) {
	if in.Name == "" || in.TotalInvestment.IsNegative() {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	batch := &entity.ProductBatch{
		ID:          uuid.New().String(),
		Name:        in.Name,
		Description: in.Description,
		Status:      entity.BatchStatusActive,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	err := uc.txRunner.RunBatch(ctx, func(
		batchRepo repository.ProductBatchRepository,
		ledgerRepo repository.MovementRepository,
	) error {
		if err := batchRepo.Create(batch); err != nil {
			return err
		}
		if in.TotalInvestment.IsPositive() {
			return ledgerRepo.Create(&entity.Movement{
				ID:          uuid.New().String(),
				Type:        entity.MovementInvestment,
				Amount:      in.TotalInvestment,
				Date:        now,
				Description: fmt.Sprintf("Inversión inicial Lote: %s", in.Name),
				BatchID:     batch.ID,
				FromCash:    in.FromCash,
				CreatedAt:   now,
			})
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return batch, nil
}

// List lista los lotes.
func (uc *UseCase) List(ctx context.Context) ([]*entity.ProductBatch, error) {
	return uc.batchRepo.List()
}

// Update modifica nombre, descripción o estado del lote.
func (uc *UseCase) Update(ctx context.Context, id string, in dto.UpdateBatchRequest) (*entity.ProductBatch, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		batch.Name = *in.Name
	}
	if in.Description != nil {
		batch.Description = *in.Description
	}
	if in.Status != nil {
		if *in.Status != entity.BatchStatusActive && *in.Status != entity.BatchStatusFinished {
			return nil, domain.ErrInvalidInput
		}
		batch.Status = *in.Status
	}
	batch.UpdatedAt = time.Now()
	if err := uc.batchRepo.Update(batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// Delete elimina un lote.
func (uc *UseCase) Delete(ctx context.Context, id string) error {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return err
	}
	if batch == nil {
		return domain.ErrNotFound
	}
	return uc.batchRepo.Delete(id)
}

// Summary calcula la rentabilidad agregada del lote: ingresos reales de sus
// productos, inversión acumulada y utilidad, más el ingreso potencial si se
// vendiera todo el stock restante.
func (uc *UseCase) Summary(ctx context.Context, id string) (dto.BatchSummaryResponse, error) {
	batch, err := uc.batchRepo.GetByID(id)
	if err != nil {
		return dto.BatchSummaryResponse{}, err
	}
	if batch == nil {
		return dto.BatchSummaryResponse{}, domain.ErrNotFound
	}

	products, err := uc.productRepo.ListByBatch(id)
	if err != nil {
		return dto.BatchSummaryResponse{}, err
	}

	totalRevenue := decimal.Zero
	potentialRevenue := decimal.Zero
	totalUnitsSold := 0
	unitsInStock := 0
	for _, p := range products {
		items, err := uc.ledgerRepo.ListSaleItemsByProduct(p.ID)
		if err != nil {
			return dto.BatchSummaryResponse{}, err
		}
		sold := 0
		revenue := decimal.Zero
		for _, it := range items {
			sold += it.Quantity
			revenue = revenue.Add(it.Total)
		}
		totalRevenue = totalRevenue.Add(revenue)
		totalUnitsSold += sold
		unitsInStock += p.CurrentStock
		// Potencial: todo lo vendido más todo el stock, al precio vigente.
		possibleUnits := decimal.NewFromInt(int64(sold + p.CurrentStock))
		potentialRevenue = potentialRevenue.Add(possibleUnits.Mul(p.SellingPrice))
	}

	investment, err := uc.ledgerRepo.SumInvestmentsByBatch(id)
	if err != nil {
		return dto.BatchSummaryResponse{}, err
	}

	return dto.BatchSummaryResponse{
		ID:               batch.ID,
		Name:             batch.Name,
		Description:      batch.Description,
		Status:           batch.Status,
		TotalInvestment:  investment,
		TotalRevenue:     totalRevenue,
		TotalUnitsSold:   totalUnitsSold,
		UnitsInStock:     unitsInStock,
		PotentialRevenue: potentialRevenue,
		Profit:           totalRevenue.Sub(investment),
	}, nil
}
