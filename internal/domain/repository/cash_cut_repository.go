package repository

import "github.com/jcastano/conta-negocios/internal/domain/entity"

// CashCutRepository define el puerto de persistencia para cortes de caja.
type CashCutRepository interface {
	Create(cut *entity.CashCut) error
	List(limit, offset int) ([]*entity.CashCut, error)
}
