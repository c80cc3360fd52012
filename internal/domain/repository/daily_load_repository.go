package repository

import (
	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

// DailyLoadRepository define el puerto de persistencia para la carga del día y sus ítems.
// GetItemForUpdate bloquea la fila del ítem (SELECT FOR UPDATE) para que la secuencia
// leer-verificar-incrementar de una venta no pueda sobrevender bajo concurrencia.
type DailyLoadRepository interface {
	Create(load *entity.DailyLoad) error
	GetByID(id string) (*entity.DailyLoad, error)
	GetByDate(date string) (*entity.DailyLoad, error)
	List() ([]*entity.DailyLoad, error)

	CreateItem(item *entity.DailyLoadItem) error
	// ListItems devuelve los ítems de una carga con el producto cargado para presentación.
	ListItems(loadID string) ([]*entity.DailyLoadItem, error)
	GetItemForUpdate(loadID, productID string) (*entity.DailyLoadItem, error)
	UpdateItemSold(itemID string, quantitySold int) error
	UpdateItemReturned(itemID string, quantityReturned int) error

	UpdateTotalSold(loadID string, totalSold decimal.Decimal) error
	UpdateStatus(loadID, status string) error
}
