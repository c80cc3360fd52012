package usecase

import (
	"context"

	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// StockTxRunner ejecuta una función dentro de una transacción de BD con los
// repositorios de producto y kardex atados a esa tx. Los ajustes manuales de stock
// pasan por aquí para que el kardex quede completo y reproducible.
type StockTxRunner interface {
	RunStock(ctx context.Context, fn func(
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
	) error) error
}
