package repository

import (
	"time"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

// InventoryMovementRepository define el puerto de persistencia para el kardex.
// Solo inserta y lista: los registros nunca se actualizan ni se borran.
type InventoryMovementRepository interface {
	Create(movement *entity.InventoryMovement) error
	// List devuelve el historial en orden cronológico inverso. productID vacío = todos.
	List(from, to *time.Time, productID string, limit, offset int) ([]*entity.InventoryMovement, error)
	ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error)
}
