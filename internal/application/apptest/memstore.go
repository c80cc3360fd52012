// Package apptest provee repositorios en memoria y un TxRunner con semántica
// todo-o-nada para probar los casos de uso sin PostgreSQL.
package apptest

import (
	"context"
	"sort"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/application/batch"
	"github.com/jcastano/conta-negocios/internal/application/dailyload"
	"github.com/jcastano/conta-negocios/internal/application/sales"
	"github.com/jcastano/conta-negocios/internal/application/usecase"
	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// Store es el estado compartido de los repositorios en memoria. Los slices guardan
// copias por valor; los repos devuelven siempre copias frescas, igual que un scan.
type Store struct {
	Products  []entity.Product
	Loads     []entity.DailyLoad
	LoadItems []entity.DailyLoadItem
	InvMovs   []entity.InventoryMovement
	Movements []entity.Movement
	SaleItems []entity.SaleItem
	CashCuts  []entity.CashCut
	Batches   []entity.ProductBatch
}

// NewStore crea un store vacío.
func NewStore() *Store {
	return &Store{}
}

func (s *Store) snapshot() Store {
	return Store{
		Products:  append([]entity.Product(nil), s.Products...),
		Loads:     append([]entity.DailyLoad(nil), s.Loads...),
		LoadItems: append([]entity.DailyLoadItem(nil), s.LoadItems...),
		InvMovs:   append([]entity.InventoryMovement(nil), s.InvMovs...),
		Movements: append([]entity.Movement(nil), s.Movements...),
		SaleItems: append([]entity.SaleItem(nil), s.SaleItems...),
		CashCuts:  append([]entity.CashCut(nil), s.CashCuts...),
		Batches:   append([]entity.ProductBatch(nil), s.Batches...),
	}
}

func (s *Store) restore(snap Store) {
	*s = snap
}

// ProductByID devuelve una copia del producto, o nil si no existe.
func (s *Store) ProductByID(id string) *entity.Product {
	for i := range s.Products {
		if s.Products[i].ID == id {
			p := s.Products[i]
			return &p
		}
	}
	return nil
}

// SeedProduct agrega un producto al store y devuelve su ID.
func (s *Store) SeedProduct(name string, sellingPrice, costPrice decimal.Decimal, stock int) string {
	id := uuid.New().String()
	now := time.Now()
	s.Products = append(s.Products, entity.Product{
		ID:            id,
		Name:          name,
		CostPrice:     costPrice,
		SellingPrice:  sellingPrice,
		CurrentStock:  stock,
		MinStockAlert: 5,
		CreatedAt:     now,
		UpdatedAt:     now,
	})
	return id
}

// TxRunner ejecuta las funciones transaccionales contra el store. Si la función
// devuelve error, el store vuelve al estado previo (todo o nada).
type TxRunner struct {
	S *Store
}

var (
	_ dailyload.TxRunner    = (*TxRunner)(nil)
	_ sales.TxRunner        = (*TxRunner)(nil)
	_ usecase.StockTxRunner = (*TxRunner)(nil)
	_ batch.TxRunner        = (*TxRunner)(nil)
)

// NewTxRunner construye el runner sobre el store dado.
func NewTxRunner(s *Store) *TxRunner {
	return &TxRunner{S: s}
}

func (r *TxRunner) run(fn func() error) error {
	snap := r.S.snapshot()
	if err := fn(); err != nil {
		r.S.restore(snap)
		return err
	}
	return nil
}

func (r *TxRunner) RunLoad(ctx context.Context, fn func(
	loadRepo repository.DailyLoadRepository,
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	ledgerRepo repository.MovementRepository,
) error) error {
	return r.run(func() error {
		return fn(NewDailyLoadRepo(r.S), NewProductRepo(r.S), NewInventoryMovementRepo(r.S), NewMovementRepo(r.S))
	})
}

func (r *TxRunner) RunSale(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
	ledgerRepo repository.MovementRepository,
) error) error {
	return r.run(func() error {
		return fn(NewProductRepo(r.S), NewInventoryMovementRepo(r.S), NewMovementRepo(r.S))
	})
}

func (r *TxRunner) RunStock(ctx context.Context, fn func(
	productRepo repository.ProductRepository,
	movRepo repository.InventoryMovementRepository,
) error) error {
	return r.run(func() error {
		return fn(NewProductRepo(r.S), NewInventoryMovementRepo(r.S))
	})
}

func (r *TxRunner) RunBatch(ctx context.Context, fn func(
	batchRepo repository.ProductBatchRepository,
	ledgerRepo repository.MovementRepository,
) error) error {
	return r.run(func() error {
		return fn(NewProductBatchRepo(r.S), NewMovementRepo(r.S))
	})
}

// ── ProductRepo ──────────────────────────────────────────────────────────────

type ProductRepo struct{ s *Store }

var _ repository.ProductRepository = (*ProductRepo)(nil)

func NewProductRepo(s *Store) *ProductRepo { return &ProductRepo{s: s} }

func (r *ProductRepo) Create(product *entity.Product) error {
	for i := range r.s.Products {
		if r.s.Products[i].ID == product.ID {
			return domain.ErrDuplicate
		}
	}
	p := *product
	p.CreatedAt = time.Now()
	r.s.Products = append(r.s.Products, p)
	return nil
}

func (r *ProductRepo) GetByID(id string) (*entity.Product, error) {
	return r.s.ProductByID(id), nil
}

func (r *ProductRepo) GetForUpdate(id string) (*entity.Product, error) {
	return r.s.ProductByID(id), nil
}

func (r *ProductRepo) List(limit, offset int) ([]*entity.Product, error) {
	out := make([]*entity.Product, 0, len(r.s.Products))
	for i := range r.s.Products {
		p := r.s.Products[i]
		out = append(out, &p)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *ProductRepo) ListByBatch(batchID string) ([]*entity.Product, error) {
	var out []*entity.Product
	for i := range r.s.Products {
		if r.s.Products[i].BatchID == batchID {
			p := r.s.Products[i]
			out = append(out, &p)
		}
	}
	return out, nil
}

func (r *ProductRepo) Update(product *entity.Product) error {
	for i := range r.s.Products {
		if r.s.Products[i].ID == product.ID {
			stock := r.s.Products[i].CurrentStock
			r.s.Products[i] = *product
			r.s.Products[i].CurrentStock = stock
			return nil
		}
	}
	return nil
}

func (r *ProductRepo) UpdateStock(productID string, stock int) error {
	for i := range r.s.Products {
		if r.s.Products[i].ID == productID {
			r.s.Products[i].CurrentStock = stock
			r.s.Products[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (r *ProductRepo) Delete(id string) error {
	for i := range r.s.Products {
		if r.s.Products[i].ID == id {
			r.s.Products = append(r.s.Products[:i], r.s.Products[i+1:]...)
			return nil
		}
	}
	return nil
}

// ── DailyLoadRepo ────────────────────────────────────────────────────────────

type DailyLoadRepo struct{ s *Store }

var _ repository.DailyLoadRepository = (*DailyLoadRepo)(nil)

func NewDailyLoadRepo(s *Store) *DailyLoadRepo { return &DailyLoadRepo{s: s} }

func (r *DailyLoadRepo) Create(load *entity.DailyLoad) error {
	for i := range r.s.Loads {
		if r.s.Loads[i].Date == load.Date {
			return domain.ErrDuplicateLoad
		}
	}
	l := *load
	l.Items = nil
	r.s.Loads = append(r.s.Loads, l)
	return nil
}

func (r *DailyLoadRepo) GetByID(id string) (*entity.DailyLoad, error) {
	for i := range r.s.Loads {
		if r.s.Loads[i].ID == id {
			l := r.s.Loads[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (r *DailyLoadRepo) GetByDate(date string) (*entity.DailyLoad, error) {
	for i := range r.s.Loads {
		if r.s.Loads[i].Date == date {
			l := r.s.Loads[i]
			return &l, nil
		}
	}
	return nil, nil
}

func (r *DailyLoadRepo) List() ([]*entity.DailyLoad, error) {
	out := make([]*entity.DailyLoad, 0, len(r.s.Loads))
	for i := range r.s.Loads {
		l := r.s.Loads[i]
		out = append(out, &l)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out, nil
}

func (r *DailyLoadRepo) CreateItem(item *entity.DailyLoadItem) error {
	for i := range r.s.LoadItems {
		if r.s.LoadItems[i].DailyLoadID == item.DailyLoadID && r.s.LoadItems[i].ProductID == item.ProductID {
			return domain.ErrDuplicate
		}
	}
	it := *item
	it.Product = nil
	r.s.LoadItems = append(r.s.LoadItems, it)
	return nil
}

func (r *DailyLoadRepo) ListItems(loadID string) ([]*entity.DailyLoadItem, error) {
	var out []*entity.DailyLoadItem
	for i := range r.s.LoadItems {
		if r.s.LoadItems[i].DailyLoadID == loadID {
			it := r.s.LoadItems[i]
			it.Product = r.s.ProductByID(it.ProductID)
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r *DailyLoadRepo) GetItemForUpdate(loadID, productID string) (*entity.DailyLoadItem, error) {
	for i := range r.s.LoadItems {
		if r.s.LoadItems[i].DailyLoadID == loadID && r.s.LoadItems[i].ProductID == productID {
			it := r.s.LoadItems[i]
			it.Product = r.s.ProductByID(productID)
			return &it, nil
		}
	}
	return nil, nil
}

func (r *DailyLoadRepo) UpdateItemSold(itemID string, quantitySold int) error {
	for i := range r.s.LoadItems {
		if r.s.LoadItems[i].ID == itemID {
			r.s.LoadItems[i].QuantitySold = quantitySold
			return nil
		}
	}
	return nil
}

func (r *DailyLoadRepo) UpdateItemReturned(itemID string, quantityReturned int) error {
	for i := range r.s.LoadItems {
		if r.s.LoadItems[i].ID == itemID {
			r.s.LoadItems[i].QuantityReturned = quantityReturned
			return nil
		}
	}
	return nil
}

func (r *DailyLoadRepo) UpdateTotalSold(loadID string, totalSold decimal.Decimal) error {
	for i := range r.s.Loads {
		if r.s.Loads[i].ID == loadID {
			r.s.Loads[i].TotalSold = totalSold
			r.s.Loads[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

func (r *DailyLoadRepo) UpdateStatus(loadID, status string) error {
	for i := range r.s.Loads {
		if r.s.Loads[i].ID == loadID {
			r.s.Loads[i].Status = status
			r.s.Loads[i].UpdatedAt = time.Now()
			return nil
		}
	}
	return nil
}

// ── InventoryMovementRepo ────────────────────────────────────────────────────

type InventoryMovementRepo struct{ s *Store }

var _ repository.InventoryMovementRepository = (*InventoryMovementRepo)(nil)

func NewInventoryMovementRepo(s *Store) *InventoryMovementRepo {
	return &InventoryMovementRepo{s: s}
}

func (r *InventoryMovementRepo) Create(movement *entity.InventoryMovement) error {
	m := *movement
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.CreatedAt.IsZero() {
		m.CreatedAt = time.Now()
	}
	r.s.InvMovs = append(r.s.InvMovs, m)
	return nil
}

func (r *InventoryMovementRepo) List(from, to *time.Time, productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	var out []*entity.InventoryMovement
	for i := range r.s.InvMovs {
		m := r.s.InvMovs[i]
		if from != nil && m.CreatedAt.Before(*from) {
			continue
		}
		if to != nil && m.CreatedAt.After(*to) {
			continue
		}
		if productID != "" && m.ProductID != productID {
			continue
		}
		out = append(out, &m)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return page(out, limit, offset), nil
}

func (r *InventoryMovementRepo) ListByProduct(productID string, limit, offset int) ([]*entity.InventoryMovement, error) {
	return r.List(nil, nil, productID, limit, offset)
}

// ── MovementRepo ─────────────────────────────────────────────────────────────

type MovementRepo struct{ s *Store }

var _ repository.MovementRepository = (*MovementRepo)(nil)

func NewMovementRepo(s *Store) *MovementRepo { return &MovementRepo{s: s} }

func (r *MovementRepo) Create(movement *entity.Movement) error {
	m := *movement
	m.Items = nil
	r.s.Movements = append(r.s.Movements, m)
	return nil
}

func (r *MovementRepo) CreateSaleItem(item *entity.SaleItem) error {
	it := *item
	it.Product = nil
	r.s.SaleItems = append(r.s.SaleItems, it)
	return nil
}

func (r *MovementRepo) GetByID(id string) (*entity.Movement, error) {
	for i := range r.s.Movements {
		if r.s.Movements[i].ID == id {
			m := r.s.Movements[i]
			return &m, nil
		}
	}
	return nil, nil
}

func (r *MovementRepo) ListByType(movType string, limit, offset int) ([]*entity.Movement, error) {
	var out []*entity.Movement
	for i := range r.s.Movements {
		if r.s.Movements[i].Type == movType {
			m := r.s.Movements[i]
			out = append(out, &m)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return page(out, limit, offset), nil
}

func (r *MovementRepo) ListSaleItems(movementID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for i := range r.s.SaleItems {
		if r.s.SaleItems[i].MovementID == movementID {
			it := r.s.SaleItems[i]
			it.Product = r.s.ProductByID(it.ProductID)
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r *MovementRepo) SumByTypes(types []string, from, to time.Time) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i := range r.s.Movements {
		m := r.s.Movements[i]
		if !containsType(types, m.Type) {
			continue
		}
		if m.Date.Before(from) || m.Date.After(to) {
			continue
		}
		sum = sum.Add(m.Amount)
	}
	return sum, nil
}

func (r *MovementRepo) ListSaleItemsInPeriod(from, to time.Time) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for i := range r.s.SaleItems {
		it := r.s.SaleItems[i]
		mov, _ := r.GetByID(it.MovementID)
		if mov == nil || mov.Type != entity.MovementSale {
			continue
		}
		if mov.Date.Before(from) || mov.Date.After(to) {
			continue
		}
		it.Product = r.s.ProductByID(it.ProductID)
		out = append(out, &it)
	}
	return out, nil
}

func (r *MovementRepo) ListSaleItemsByProduct(productID string) ([]*entity.SaleItem, error) {
	var out []*entity.SaleItem
	for i := range r.s.SaleItems {
		if r.s.SaleItems[i].ProductID == productID {
			it := r.s.SaleItems[i]
			out = append(out, &it)
		}
	}
	return out, nil
}

func (r *MovementRepo) SumInvestmentsByBatch(batchID string) (decimal.Decimal, error) {
	sum := decimal.Zero
	for i := range r.s.Movements {
		m := r.s.Movements[i]
		if m.Type == entity.MovementInvestment && m.BatchID == batchID {
			sum = sum.Add(m.Amount)
		}
	}
	return sum, nil
}

// ── CashCutRepo ──────────────────────────────────────────────────────────────

type CashCutRepo struct{ s *Store }

var _ repository.CashCutRepository = (*CashCutRepo)(nil)

func NewCashCutRepo(s *Store) *CashCutRepo { return &CashCutRepo{s: s} }

func (r *CashCutRepo) Create(cut *entity.CashCut) error {
	r.s.CashCuts = append(r.s.CashCuts, *cut)
	return nil
}

func (r *CashCutRepo) List(limit, offset int) ([]*entity.CashCut, error) {
	out := make([]*entity.CashCut, 0, len(r.s.CashCuts))
	for i := range r.s.CashCuts {
		c := r.s.CashCuts[i]
		out = append(out, &c)
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].Date.After(out[j].Date) })
	return page(out, limit, offset), nil
}

// ── ProductBatchRepo ─────────────────────────────────────────────────────────

type ProductBatchRepo struct{ s *Store }

var _ repository.ProductBatchRepository = (*ProductBatchRepo)(nil)

func NewProductBatchRepo(s *Store) *ProductBatchRepo { return &ProductBatchRepo{s: s} }

func (r *ProductBatchRepo) Create(batch *entity.ProductBatch) error {
	r.s.Batches = append(r.s.Batches, *batch)
	return nil
}

func (r *ProductBatchRepo) GetByID(id string) (*entity.ProductBatch, error) {
	for i := range r.s.Batches {
		if r.s.Batches[i].ID == id {
			b := r.s.Batches[i]
			return &b, nil
		}
	}
	return nil, nil
}

func (r *ProductBatchRepo) List() ([]*entity.ProductBatch, error) {
	out := make([]*entity.ProductBatch, 0, len(r.s.Batches))
	for i := range r.s.Batches {
		b := r.s.Batches[i]
		out = append(out, &b)
	}
	return out, nil
}

func (r *ProductBatchRepo) Update(batch *entity.ProductBatch) error {
	for i := range r.s.Batches {
		if r.s.Batches[i].ID == batch.ID {
			r.s.Batches[i] = *batch
			return nil
		}
	}
	return nil
}

func (r *ProductBatchRepo) Delete(id string) error {
	for i := range r.s.Batches {
		if r.s.Batches[i].ID == id {
			r.s.Batches = append(r.s.Batches[:i], r.s.Batches[i+1:]...)
			return nil
		}
	}
	return nil
}

func containsType(types []string, t string) bool {
	for _, ty := range types {
		if ty == t {
			return true
		}
	}
	return false
}

func page[T any](in []*T, limit, offset int) []*T {
	if offset >= len(in) {
		return nil
	}
	in = in[offset:]
	if limit > 0 && limit < len(in) {
		in = in[:limit]
	}
	return in
}
