package sales

import (
	"context"
	"fmt"
	"time"

	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// UseCase maneja la venta directa desde bodega principal (sin pasar por la carga
// del día): verifica stock, lo descuenta, asienta el kardex y registra la venta
// en el libro contable. Todo dentro de una transacción.
type UseCase struct {
	txRunner   TxRunner
	recorder   *Recorder
	ledgerRepo repository.MovementRepository
}

// NewUseCase construye el caso de uso de ventas.
func NewUseCase(txRunner TxRunner, recorder *Recorder, ledgerRepo repository.MovementRepository) *UseCase {
	return &UseCase{txRunner: txRunner, recorder: recorder, ledgerRepo: ledgerRepo}
}

// CreateSale registra una venta directa. Para cada ítem bloquea la fila del producto,
// exige stock suficiente, descuenta y asienta un movimiento OUT con referencia a la
// venta. Cualquier falla revierte todo.
func (uc *UseCase) CreateSale(ctx context.Context, in dto.CreateSaleRequest) (*entity.Movement, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	var sale *entity.Movement

	err := uc.txRunner.RunSale(ctx, func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		ledgerRepo repository.MovementRepository,
	) error {
		// Bloquear y validar todos los productos antes de asentar nada.
		type pending struct {
			product  *entity.Product
			quantity int
		}
		lines := make([]Line, 0, len(in.Items))
		deductions := make([]pending, 0, len(in.Items))
		for _, it := range in.Items {
			product, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, it.ProductID)
			}
			if product.CurrentStock < it.Quantity {
				return &domain.InsufficientStockError{ProductName: product.Name, Available: product.CurrentStock}
			}
			lines = append(lines, Line{
				ProductID:   product.ID,
				ProductName: product.Name,
				Quantity:    it.Quantity,
				UnitPrice:   product.SellingPrice,
			})
			deductions = append(deductions, pending{product: product, quantity: it.Quantity})
		}

		posted, err := uc.recorder.PostSaleInTx(ledgerRepo, lines, "Venta de productos", now)
		if err != nil {
			return err
		}

		for _, d := range deductions {
			newStock := d.product.CurrentStock - d.quantity
			if err := productRepo.UpdateStock(d.product.ID, newStock); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.InventoryMovement{
				ProductID:    d.product.ID,
				Type:         entity.InventoryMovementOUT,
				Quantity:     d.quantity,
				Reason:       fmt.Sprintf("Venta #%s", posted.ID),
				BalanceAfter: newStock,
				ReferenceID:  posted.ID,
				CreatedAt:    now,
			}); err != nil {
				return err
			}
		}

		sale = posted
		return nil
	})
	if err != nil {
		return nil, err
	}
	return sale, nil
}

// GetSales lista las ventas del libro contable con su detalle, las más recientes primero.
func (uc *UseCase) GetSales(ctx context.Context, limit, offset int) ([]*entity.Movement, error) {
	movs, err := uc.ledgerRepo.ListByType(entity.MovementSale, limit, offset)
	if err != nil {
		return nil, err
	}
	for _, m := range movs {
		items, err := uc.ledgerRepo.ListSaleItems(m.ID)
		if err != nil {
			return nil, err
		}
		m.Items = items
	}
	return movs, nil
}

// GetSale obtiene una venta por id con su detalle.
func (uc *UseCase) GetSale(ctx context.Context, id string) (*entity.Movement, error) {
	mov, err := uc.ledgerRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if mov == nil || mov.Type != entity.MovementSale {
		return nil, domain.ErrNotFound
	}
	items, err := uc.ledgerRepo.ListSaleItems(mov.ID)
	if err != nil {
		return nil, err
	}
	mov.Items = items
	return mov, nil
}
