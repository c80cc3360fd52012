package inventory

import (
	"context"
	"time"

	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// KardexUseCase consulta del historial de movimientos de inventario.
type KardexUseCase struct {
	movRepo     repository.InventoryMovementRepository
	productRepo repository.ProductRepository
}

// NewKardexUseCase construye el caso de uso de kardex.
func NewKardexUseCase(movRepo repository.InventoryMovementRepository, productRepo repository.ProductRepository) *KardexUseCase {
	return &KardexUseCase{movRepo: movRepo, productRepo: productRepo}
}

// History devuelve los movimientos del periodo (por defecto el mes en curso),
// opcionalmente filtrados por producto, los más recientes primero.
func (uc *KardexUseCase) History(ctx context.Context, from, to *time.Time, productID string, limit, offset int) ([]dto.KardexEntryResponse, error) {
	if from == nil {
		now := time.Now()
		monthStart := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, now.Location())
		from = &monthStart
	}
	if to == nil {
		now := time.Now()
		dayEnd := time.Date(now.Year(), now.Month(), now.Day(), 23, 59, 59, 0, now.Location())
		to = &dayEnd
	}

	movements, err := uc.movRepo.List(from, to, productID, limit, offset)
	if err != nil {
		return nil, err
	}

	// Resolver nombres de producto una sola vez por id.
	names := make(map[string]string)
	history := make([]dto.KardexEntryResponse, 0, len(movements))
	for _, m := range movements {
		name, ok := names[m.ProductID]
		if !ok {
			product, err := uc.productRepo.GetByID(m.ProductID)
			if err != nil {
				return nil, err
			}
			name = "Producto Eliminado"
			if product != nil {
				name = product.Name
			}
			names[m.ProductID] = name
		}
		history = append(history, dto.KardexEntryResponse{
			ID:           m.ID,
			Date:         m.CreatedAt,
			Product:      name,
			Type:         m.Type,
			Quantity:     m.Quantity,
			Reason:       m.Reason,
			BalanceAfter: m.BalanceAfter,
		})
	}
	return history, nil
}
