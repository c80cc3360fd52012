package usecase

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// ProductUseCase CRUD de productos y ajustes manuales de stock.
// Toda mutación de CurrentStock deja rastro en el kardex.
type ProductUseCase struct {
	repo     repository.ProductRepository
	txRunner StockTxRunner
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, txRunner StockTxRunner) *ProductUseCase {
	return &ProductUseCase{repo: repo, txRunner: txRunner}
}

// Create da de alta un producto. El stock inicial se registra tal cual, sin movimiento
// de kardex (el saldo inicial es el punto de partida de la reproducción).
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*entity.Product, error) {
	if in.Name == "" || in.CostPrice.IsNegative() || in.SellingPrice.IsNegative() || in.CurrentStock < 0 {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now()
	product := &entity.Product{
		ID:            uuid.New().String(),
		Name:          in.Name,
		CostPrice:     in.CostPrice,
		SellingPrice:  in.SellingPrice,
		CurrentStock:  in.CurrentStock,
		MinStockAlert: in.MinStockAlert,
		BatchID:       in.BatchID,
		CreatedAt:     now,
		UpdatedAt:     now,
	}
	if product.MinStockAlert <= 0 {
		product.MinStockAlert = 5
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	return product, nil
}

// GetByID obtiene un producto.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	return product, nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, limit, offset int) ([]*entity.Product, error) {
	return uc.repo.List(limit, offset)
}

// Update modifica nombre, precios y umbral de alerta. No toca CurrentStock:
// el stock solo se mueve vía AdjustStock, ventas o cargas.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*entity.Product, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrProductNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.CostPrice != nil {
		if in.CostPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.CostPrice = *in.CostPrice
	}
	if in.SellingPrice != nil {
		if in.SellingPrice.IsNegative() {
			return nil, domain.ErrInvalidInput
		}
		product.SellingPrice = *in.SellingPrice
	}
	if in.MinStockAlert != nil {
		product.MinStockAlert = *in.MinStockAlert
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	return product, nil
}

// AdjustStock aplica una corrección manual de stock (delta con signo) dentro de una
// transacción, bloqueando la fila del producto, y asienta el ajuste en el kardex
// con el saldo resultante. Rechaza ajustes que dejarían el stock en negativo.
func (uc *ProductUseCase) AdjustStock(ctx context.Context, id string, in dto.AdjustStockRequest) (*entity.Product, error) {
	if in.Delta == 0 {
		return nil, domain.ErrInvalidInput
	}
	reason := in.Reason
	if reason == "" {
		reason = "Corrección Manual"
	}

	now := time.Now()
	var adjusted *entity.Product

	err := uc.txRunner.RunStock(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error {
		product, err := productRepo.GetForUpdate(id)
		if err != nil {
			return err
		}
		if product == nil {
			return fmt.Errorf("%w: %s", domain.ErrProductNotFound, id)
		}

		newStock := product.CurrentStock + in.Delta
		if newStock < 0 {
			return domain.ErrStockBelowZero
		}
		if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
			return err
		}

		quantity := in.Delta
		if quantity < 0 {
			quantity = -quantity
		}
		if err := movRepo.Create(&entity.InventoryMovement{
			ProductID:    product.ID,
			Type:         entity.InventoryMovementADJUSTMENT,
			Quantity:     quantity,
			Reason:       reason,
			BalanceAfter: newStock,
			CreatedAt:    now,
		}); err != nil {
			return err
		}

		product.CurrentStock = newStock
		product.UpdatedAt = now
		adjusted = product
		return nil
	})
	if err != nil {
		return nil, err
	}
	return adjusted, nil
}

// Delete elimina un producto del catálogo.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return err
	}
	if product == nil {
		return domain.ErrProductNotFound
	}
	return uc.repo.Delete(id)
}
