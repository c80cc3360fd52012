package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

const movementColumns = `id, type, amount, date, COALESCE(description, ''), COALESCE(batch_id, ''), from_cash, created_at`

// MovementRepo implementación del puerto del libro contable sobre PostgreSQL (usable con pool o tx).
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

// Create persiste un movimiento contable.
func (r *MovementRepo) Create(movement *entity.Movement) error {
	query := `
		INSERT INTO movements (id, type, amount, date, description, batch_id, from_cash, created_at)
		VALUES ($1, $2, $3, $4, NULLIF($5, ''), NULLIF($6, ''), $7, $8)`
	_, err := r.q.Exec(context.Background(), query,
		movement.ID, movement.Type, movement.Amount, movement.Date,
		movement.Description, movement.BatchID, movement.FromCash, movement.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert movement: %w", err)
	}
	return nil
}

// CreateSaleItem persiste una línea de venta.
func (r *MovementRepo) CreateSaleItem(item *entity.SaleItem) error {
	query := `
		INSERT INTO sale_items (id, movement_id, product_id, quantity, unit_price_at_sale, total)
		VALUES ($1, $2, $3, $4, $5, $6)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.MovementID, item.ProductID, item.Quantity, item.UnitPriceAtSale, item.Total,
	)
	if err != nil {
		return fmt.Errorf("insert sale item: %w", err)
	}
	return nil
}

// GetByID obtiene un movimiento por ID, sin detalle. Devuelve nil si no existe.
func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE id = $1`
	var m entity.Movement
	err := r.q.QueryRow(context.Background(), query, id).Scan(
		&m.ID, &m.Type, &m.Amount, &m.Date, &m.Description, &m.BatchID, &m.FromCash, &m.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get movement: %w", err)
	}
	return &m, nil
}

// ListByType lista movimientos de un tipo, los más recientes primero.
func (r *MovementRepo) ListByType(movType string, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE type = $1 ORDER BY date DESC LIMIT $2 OFFSET $3`
	rows, err := r.q.Query(context.Background(), query, movType, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()

	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(&m.ID, &m.Type, &m.Amount, &m.Date, &m.Description, &m.BatchID, &m.FromCash, &m.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// ListSaleItems devuelve las líneas de una venta con su producto.
func (r *MovementRepo) ListSaleItems(movementID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT s.id, s.movement_id, s.product_id, s.quantity, s.unit_price_at_sale, s.total,
		       p.id, p.name, p.cost_price, p.selling_price, p.current_stock, p.min_stock_alert, COALESCE(p.batch_id, ''), p.created_at, p.updated_at
		FROM sale_items s
		JOIN products p ON p.id = s.product_id
		WHERE s.movement_id = $1`
	rows, err := r.q.Query(context.Background(), query, movementID)
	if err != nil {
		return nil, fmt.Errorf("list sale items: %w", err)
	}
	defer rows.Close()
	return scanSaleItemsWithProduct(rows)
}

// SumByTypes suma los montos de los tipos dados dentro del periodo.
func (r *MovementRepo) SumByTypes(types []string, from, to time.Time) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM movements
		WHERE type = ANY($1) AND date BETWEEN $2 AND $3`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, types, from, to).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum movements: %w", err)
	}
	return sum, nil
}

// ListSaleItemsInPeriod devuelve las líneas de venta del periodo con su producto.
func (r *MovementRepo) ListSaleItemsInPeriod(from, to time.Time) ([]*entity.SaleItem, error) {
	query := `
		SELECT s.id, s.movement_id, s.product_id, s.quantity, s.unit_price_at_sale, s.total,
		       p.id, p.name, p.cost_price, p.selling_price, p.current_stock, p.min_stock_alert, COALESCE(p.batch_id, ''), p.created_at, p.updated_at
		FROM sale_items s
		JOIN movements m ON m.id = s.movement_id
		JOIN products p ON p.id = s.product_id
		WHERE m.type = 'SALE' AND m.date BETWEEN $1 AND $2`
	rows, err := r.q.Query(context.Background(), query, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sale items in period: %w", err)
	}
	defer rows.Close()
	return scanSaleItemsWithProduct(rows)
}

// ListSaleItemsByProduct devuelve todas las líneas de venta de un producto.
func (r *MovementRepo) ListSaleItemsByProduct(productID string) ([]*entity.SaleItem, error) {
	query := `
		SELECT id, movement_id, product_id, quantity, unit_price_at_sale, total
		FROM sale_items
		WHERE product_id = $1`
	rows, err := r.q.Query(context.Background(), query, productID)
	if err != nil {
		return nil, fmt.Errorf("list sale items by product: %w", err)
	}
	defer rows.Close()

	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		if err := rows.Scan(&it.ID, &it.MovementID, &it.ProductID, &it.Quantity, &it.UnitPriceAtSale, &it.Total); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		list = append(list, &it)
	}
	return list, rows.Err()
}

// SumInvestmentsByBatch suma los movimientos INVESTMENT asociados a un lote.
func (r *MovementRepo) SumInvestmentsByBatch(batchID string) (decimal.Decimal, error) {
	query := `
		SELECT COALESCE(SUM(amount), 0)
		FROM movements
		WHERE type = 'INVESTMENT' AND batch_id = $1`
	var sum decimal.Decimal
	if err := r.q.QueryRow(context.Background(), query, batchID).Scan(&sum); err != nil {
		return decimal.Zero, fmt.Errorf("sum investments: %w", err)
	}
	return sum, nil
}

func scanSaleItemsWithProduct(rows pgx.Rows) ([]*entity.SaleItem, error) {
	var list []*entity.SaleItem
	for rows.Next() {
		var it entity.SaleItem
		var p entity.Product
		if err := rows.Scan(
			&it.ID, &it.MovementID, &it.ProductID, &it.Quantity, &it.UnitPriceAtSale, &it.Total,
			&p.ID, &p.Name, &p.CostPrice, &p.SellingPrice, &p.CurrentStock, &p.MinStockAlert, &p.BatchID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale item: %w", err)
		}
		it.Product = &p
		list = append(list, &it)
	}
	return list, rows.Err()
}
