package dailyload

import (
	"context"

	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Cada operación del motor de cargas (crear, vender, cerrar) corre
// completa dentro de una sola transacción: o se asienta todo o no se asienta nada.
type TxRunner interface {
	RunLoad(ctx context.Context, fn func(
		loadRepo repository.DailyLoadRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		ledgerRepo repository.MovementRepository,
	) error) error
}
