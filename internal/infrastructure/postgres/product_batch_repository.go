package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

var _ repository.ProductBatchRepository = (*ProductBatchRepo)(nil)

// ProductBatchRepo implementación del puerto ProductBatchRepository sobre PostgreSQL (usable con pool o tx).
type ProductBatchRepo struct {
	q Querier
}

// NewProductBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewProductBatchRepository(q Querier) *ProductBatchRepo {
	return &ProductBatchRepo{q: q}
}

// Create persiste un lote.
func (r *ProductBatchRepo) Create(batch *entity.ProductBatch) error {
	query := `
		INSERT INTO product_batches (id, name, description, status, created_at, updated_at)
		VALUES ($1, $2, NULLIF($3, ''), $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Name, batch.Description, batch.Status, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert batch: %w", err)
	}
	return nil
}

// GetByID obtiene un lote por ID. Devuelve nil si no existe.
func (r *ProductBatchRepo) GetByID(id string) (*entity.ProductBatch, error) {
	query := `SELECT id, name, COALESCE(description, ''), status, created_at, updated_at FROM product_batches WHERE id = $1`
	var b entity.ProductBatch
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&b.ID, &b.Name, &b.Description, &b.Status, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get batch: %w", err)
	}
	return &b, nil
}

// List devuelve los lotes, los más recientes primero.
func (r *ProductBatchRepo) List() ([]*entity.ProductBatch, error) {
	query := `SELECT id, name, COALESCE(description, ''), status, created_at, updated_at FROM product_batches ORDER BY created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	defer rows.Close()

	var list []*entity.ProductBatch
	for rows.Next() {
		var b entity.ProductBatch
		if err := rows.Scan(&b.ID, &b.Name, &b.Description, &b.Status, &b.CreatedAt, &b.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}

// Update actualiza nombre, descripción y estado del lote.
func (r *ProductBatchRepo) Update(batch *entity.ProductBatch) error {
	query := `
		UPDATE product_batches SET name = $2, description = NULLIF($3, ''), status = $4, updated_at = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		batch.ID, batch.Name, batch.Description, batch.Status, batch.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update batch: %w", err)
	}
	return nil
}

// Delete elimina un lote por ID.
func (r *ProductBatchRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM product_batches WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete batch: %w", err)
	}
	return nil
}
