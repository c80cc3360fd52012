package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

var _ repository.DailyLoadRepository = (*DailyLoadRepo)(nil)

// DailyLoadRepo implementación del puerto DailyLoadRepository sobre PostgreSQL (usable con pool o tx).
type DailyLoadRepo struct {
	q Querier
}

// NewDailyLoadRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDailyLoadRepository(q Querier) *DailyLoadRepo {
	return &DailyLoadRepo{q: q}
}

// Create persiste una carga. El constraint UNIQUE de date serializa creaciones
// concurrentes de la misma fecha: el perdedor recibe ErrDuplicateLoad.
func (r *DailyLoadRepo) Create(load *entity.DailyLoad) error {
	query := `
		INSERT INTO daily_loads (id, date, status, notes, total_sold, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		load.ID, load.Date, load.Status, load.Notes, load.TotalSold, load.CreatedAt, load.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLoad
		}
		return fmt.Errorf("insert daily load: %w", err)
	}
	return nil
}

// GetByID obtiene una carga por ID, sin ítems. Devuelve nil si no existe.
func (r *DailyLoadRepo) GetByID(id string) (*entity.DailyLoad, error) {
	return r.get(`SELECT id, date, status, notes, total_sold, created_at, updated_at FROM daily_loads WHERE id = $1`, id)
}

// GetByDate obtiene la carga de una fecha (YYYY-MM-DD), sin ítems. Devuelve nil si no existe.
func (r *DailyLoadRepo) GetByDate(date string) (*entity.DailyLoad, error) {
	return r.get(`SELECT id, date, status, notes, total_sold, created_at, updated_at FROM daily_loads WHERE date = $1`, date)
}

func (r *DailyLoadRepo) get(query, arg string) (*entity.DailyLoad, error) {
	var l entity.DailyLoad
	var date time.Time
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &date, &l.Status, &l.Notes, &l.TotalSold, &l.CreatedAt, &l.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily load: %w", err)
	}
	l.Date = date.Format("2006-01-02")
	return &l, nil
}

// List devuelve el historial de cargas, sin ítems, las más recientes primero.
func (r *DailyLoadRepo) List() ([]*entity.DailyLoad, error) {
	query := `SELECT id, date, status, notes, total_sold, created_at, updated_at FROM daily_loads ORDER BY date DESC, created_at DESC`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list daily loads: %w", err)
	}
	defer rows.Close()

	var list []*entity.DailyLoad
	for rows.Next() {
		var l entity.DailyLoad
		var date time.Time
		if err := rows.Scan(&l.ID, &date, &l.Status, &l.Notes, &l.TotalSold, &l.CreatedAt, &l.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan daily load: %w", err)
		}
		l.Date = date.Format("2006-01-02")
		list = append(list, &l)
	}
	return list, rows.Err()
}

// CreateItem persiste un ítem de la carga.
func (r *DailyLoadRepo) CreateItem(item *entity.DailyLoadItem) error {
	query := `
		INSERT INTO daily_load_items (id, daily_load_id, product_id, quantity_taken, quantity_sold, quantity_returned, unit_price)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.DailyLoadID, item.ProductID,
		item.QuantityTaken, item.QuantitySold, item.QuantityReturned, item.UnitPrice,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert daily load item: %w", err)
	}
	return nil
}

// ListItems devuelve los ítems de una carga con su producto para presentación.
func (r *DailyLoadRepo) ListItems(loadID string) ([]*entity.DailyLoadItem, error) {
	query := `
		SELECT i.id, i.daily_load_id, i.product_id, i.quantity_taken, i.quantity_sold, i.quantity_returned, i.unit_price,
		       p.id, p.name, p.cost_price, p.selling_price, p.current_stock, p.min_stock_alert, COALESCE(p.batch_id, ''), p.created_at, p.updated_at
		FROM daily_load_items i
		JOIN products p ON p.id = i.product_id
		WHERE i.daily_load_id = $1
		ORDER BY p.name`
	rows, err := r.q.Query(context.Background(), query, loadID)
	if err != nil {
		return nil, fmt.Errorf("list daily load items: %w", err)
	}
	defer rows.Close()

	var list []*entity.DailyLoadItem
	for rows.Next() {
		var it entity.DailyLoadItem
		var p entity.Product
		if err := rows.Scan(
			&it.ID, &it.DailyLoadID, &it.ProductID, &it.QuantityTaken, &it.QuantitySold, &it.QuantityReturned, &it.UnitPrice,
			&p.ID, &p.Name, &p.CostPrice, &p.SellingPrice, &p.CurrentStock, &p.MinStockAlert, &p.BatchID, &p.CreatedAt, &p.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan daily load item: %w", err)
		}
		it.Product = &p
		list = append(list, &it)
	}
	return list, rows.Err()
}

// GetItemForUpdate bloquea la fila del ítem (SELECT FOR UPDATE) y carga el producto.
// Devuelve nil si el producto no está en la carga.
func (r *DailyLoadRepo) GetItemForUpdate(loadID, productID string) (*entity.DailyLoadItem, error) {
	query := `
		SELECT id, daily_load_id, product_id, quantity_taken, quantity_sold, quantity_returned, unit_price
		FROM daily_load_items
		WHERE daily_load_id = $1 AND product_id = $2
		FOR UPDATE`
	var it entity.DailyLoadItem
	err := r.q.QueryRow(context.Background(), query, loadID, productID).Scan(
		&it.ID, &it.DailyLoadID, &it.ProductID, &it.QuantityTaken, &it.QuantitySold, &it.QuantityReturned, &it.UnitPrice,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get daily load item: %w", err)
	}

	product := NewProductRepository(r.q)
	it.Product, err = product.GetByID(it.ProductID)
	if err != nil {
		return nil, err
	}
	return &it, nil
}

// UpdateItemSold fija el acumulado vendido del ítem.
func (r *DailyLoadRepo) UpdateItemSold(itemID string, quantitySold int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE daily_load_items SET quantity_sold = $2 WHERE id = $1`,
		itemID, quantitySold,
	)
	if err != nil {
		return fmt.Errorf("update item sold: %w", err)
	}
	return nil
}

// UpdateItemReturned fija lo devuelto del ítem (una sola vez, al cierre).
func (r *DailyLoadRepo) UpdateItemReturned(itemID string, quantityReturned int) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE daily_load_items SET quantity_returned = $2 WHERE id = $1`,
		itemID, quantityReturned,
	)
	if err != nil {
		return fmt.Errorf("update item returned: %w", err)
	}
	return nil
}

// UpdateTotalSold fija el acumulado vendido de la carga.
func (r *DailyLoadRepo) UpdateTotalSold(loadID string, totalSold decimal.Decimal) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE daily_loads SET total_sold = $2, updated_at = now() WHERE id = $1`,
		loadID, totalSold,
	)
	if err != nil {
		return fmt.Errorf("update load total sold: %w", err)
	}
	return nil
}

// UpdateStatus fija el estado de la carga.
func (r *DailyLoadRepo) UpdateStatus(loadID, status string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE daily_loads SET status = $2, updated_at = now() WHERE id = $1`,
		loadID, status,
	)
	if err != nil {
		return fmt.Errorf("update load status: %w", err)
	}
	return nil
}
