package batch

import (
	"context"

	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD con los repositorios
// de lote y libro contable atados a esa tx (alta de lote + inversión inicial).
type TxRunner interface {
	RunBatch(ctx context.Context, fn func(
		batchRepo repository.ProductBatchRepository,
		ledgerRepo repository.MovementRepository,
	) error) error
}
