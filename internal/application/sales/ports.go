package sales

import (
	"context"

	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Garantiza atomicidad de la venta directa (stock + kardex + libro).
type TxRunner interface {
	RunSale(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		ledgerRepo repository.MovementRepository,
	) error) error
}
