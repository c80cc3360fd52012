package repository

import "github.com/jcastano/conta-negocios/internal/domain/entity"

// ProductBatchRepository define el puerto de persistencia para lotes de inversión.
type ProductBatchRepository interface {
	Create(batch *entity.ProductBatch) error
	GetByID(id string) (*entity.ProductBatch, error)
	List() ([]*entity.ProductBatch, error)
	Update(batch *entity.ProductBatch) error
	Delete(id string) error
}
