package sales

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

// Line una línea de venta lista para asentar: cantidad y precio ya resueltos por el
// caller (precio vivo en venta directa, precio congelado en venta desde la carga).
type Line struct {
	ProductID   string
	ProductName string
	Quantity    int
	UnitPrice   decimal.Decimal
}

// Recorder asienta ventas en el libro contable general. Es el único punto que crea
// registros Movement tipo SALE, de modo que la venta directa y la venta desde la
// carga del día producen registros estructuralmente idénticos.
type Recorder struct{}

// NewRecorder construye el recorder.
func NewRecorder() *Recorder {
	return &Recorder{}
}

// PostSaleInTx crea un Movement SALE con sus SaleItems usando el repositorio
// proporcionado (misma transacción del caller). El monto es la suma de las líneas.
func (r *Recorder) PostSaleInTx(
	ledgerRepo repository.MovementRepository,
	lines []Line,
	description string,
	now time.Time,
) (*entity.Movement, error) {
	if len(lines) == 0 {
		return nil, domain.ErrInvalidInput
	}

	total := decimal.Zero
	items := make([]*entity.SaleItem, 0, len(lines))
	for _, ln := range lines {
		lineTotal := ln.UnitPrice.Mul(decimal.NewFromInt(int64(ln.Quantity)))
		total = total.Add(lineTotal)
		items = append(items, &entity.SaleItem{
			ID:              uuid.New().String(),
			ProductID:       ln.ProductID,
			Quantity:        ln.Quantity,
			UnitPriceAtSale: ln.UnitPrice,
			Total:           lineTotal,
		})
	}

	mov := &entity.Movement{
		ID:          uuid.New().String(),
		Type:        entity.MovementSale,
		Amount:      total,
		Date:        now,
		Description: description,
		CreatedAt:   now,
	}
	if err := ledgerRepo.Create(mov); err != nil {
		return nil, err
	}
	for _, it := range items {
		it.MovementID = mov.ID
		if err := ledgerRepo.CreateSaleItem(it); err != nil {
			return nil, err
		}
	}
	mov.Items = items
	return mov, nil
}
