package postgres

import (
	"context"
	"fmt"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

var _ repository.CashCutRepository = (*CashCutRepo)(nil)

// CashCutRepo implementación del puerto CashCutRepository sobre PostgreSQL (usable con pool o tx).
type CashCutRepo struct {
	q Querier
}

// NewCashCutRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCashCutRepository(q Querier) *CashCutRepo {
	return &CashCutRepo{q: q}
}

// Create persiste un corte de caja.
func (r *CashCutRepo) Create(cut *entity.CashCut) error {
	query := `
		INSERT INTO cash_cuts (id, date, expected_amount, actual_amount, difference, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, NULLIF($6, ''), $7)`
	_, err := r.q.Exec(context.Background(), query,
		cut.ID, cut.Date, cut.ExpectedAmount, cut.ActualAmount, cut.Difference, cut.Notes, cut.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert cash cut: %w", err)
	}
	return nil
}

// List devuelve los cortes, los más recientes primero.
func (r *CashCutRepo) List(limit, offset int) ([]*entity.CashCut, error) {
	query := `
		SELECT id, date, expected_amount, actual_amount, difference, COALESCE(notes, ''), created_at
		FROM cash_cuts ORDER BY date DESC LIMIT $1 OFFSET $2`
	rows, err := r.q.Query(context.Background(), query, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list cash cuts: %w", err)
	}
	defer rows.Close()

	var list []*entity.CashCut
	for rows.Next() {
		var c entity.CashCut
		if err := rows.Scan(&c.ID, &c.Date, &c.ExpectedAmount, &c.ActualAmount, &c.Difference, &c.Notes, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cash cut: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}
