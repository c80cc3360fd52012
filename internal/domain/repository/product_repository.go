package repository

import "github.com/jcastano/conta-negocios/internal/domain/entity"

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetForUpdate bloquea la fila (SELECT FOR UPDATE); usarlo dentro de transacciones
// cuando se va a mutar CurrentStock.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetForUpdate(id string) (*entity.Product, error)
	List(limit, offset int) ([]*entity.Product, error)
	ListByBatch(batchID string) ([]*entity.Product, error)
	Update(product *entity.Product) error
	UpdateStock(productID string, stock int) error
	Delete(id string) error
}
