package dailyload

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/application/sales"
	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
	"github.com/jcastano/conta-negocios/internal/domain/repository"
)

const dateLayout = "2006-01-02"

// UseCase es el motor de la carga del día: crear la carga (sacar stock de bodega),
// registrar ventas contra ella y cerrarla devolviendo lo no vendido. Cada operación
// es una transacción; la máquina de estados es OPEN → CLOSED, sin reapertura.
type UseCase struct {
	txRunner TxRunner
	loadRepo repository.DailyLoadRepository // atado al pool, solo lecturas
	recorder *sales.Recorder
}

// NewUseCase construye el motor de cargas.
func NewUseCase(txRunner TxRunner, loadRepo repository.DailyLoadRepository, recorder *sales.Recorder) *UseCase {
	return &UseCase{txRunner: txRunner, loadRepo: loadRepo, recorder: recorder}
}

// CreateLoad crea la carga de una fecha (una sola por fecha, sin importar estado).
// Por cada ítem bloquea el producto, exige stock suficiente, lo descuenta, asienta
// la salida en el kardex y congela el precio de venta vigente en el ítem.
// Cualquier falla revierte los descuentos ya aplicados en esta llamada.
func (uc *UseCase) CreateLoad(ctx context.Context, in dto.CreateLoadRequest) (*entity.DailyLoad, error) {
	if len(in.Items) == 0 {
		return nil, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.QuantityTaken <= 0 {
			return nil, domain.ErrInvalidInput
		}
	}

	date := in.Date
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()
	loadID := uuid.New().String()

	err := uc.txRunner.RunLoad(ctx, func(
		loadRepo repository.DailyLoadRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		ledgerRepo repository.MovementRepository,
	) error {
		// Unicidad por fecha: verificación dentro de la tx, respaldada por el
		// constraint UNIQUE de daily_loads.date para el caso concurrente.
		existing, err := loadRepo.GetByDate(date)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateLoad
		}

		load := &entity.DailyLoad{
			ID:        loadID,
			Date:      date,
			Status:    entity.LoadStatusOpen,
			Notes:     in.Notes,
			TotalSold: decimal.Zero,
			CreatedAt: now,
			UpdatedAt: now,
		}
		if err := loadRepo.Create(load); err != nil {
			return err
		}

		for _, it := range in.Items {
			product, err := productRepo.GetForUpdate(it.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, it.ProductID)
			}
			if product.CurrentStock < it.QuantityTaken {
				return &domain.InsufficientStockError{ProductName: product.Name, Available: product.CurrentStock}
			}

			newStock := product.CurrentStock - it.QuantityTaken
			if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.InventoryMovement{
				ProductID:    product.ID,
				Type:         entity.InventoryMovementOUT,
				Quantity:     it.QuantityTaken,
				Reason:       "Carga del Día",
				BalanceAfter: newStock,
				ReferenceID:  loadID,
				CreatedAt:    now,
			}); err != nil {
				return err
			}
			if err := loadRepo.CreateItem(&entity.DailyLoadItem{
				ID:            uuid.New().String(),
				DailyLoadID:   loadID,
				ProductID:     product.ID,
				QuantityTaken: it.QuantityTaken,
				UnitPrice:     product.SellingPrice, // precio congelado del día
			}); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.getFullLoad(loadID)
}

// RegisterSale registra una venta parcial contra la carga abierta. Bloquea cada ítem,
// exige disponibilidad (tomadas − vendidas − devueltas), incrementa lo vendido y
// asienta UNA venta en el libro contable al precio congelado del ítem. Todo o nada.
func (uc *UseCase) RegisterSale(ctx context.Context, in dto.RegisterLoadSaleRequest) (*entity.DailyLoad, decimal.Decimal, error) {
	if in.LoadID == "" || len(in.Items) == 0 {
		return nil, decimal.Zero, domain.ErrInvalidInput
	}
	for _, it := range in.Items {
		if it.ProductID == "" || it.Quantity <= 0 {
			return nil, decimal.Zero, domain.ErrInvalidInput
		}
	}

	now := time.Now()
	saleTotal := decimal.Zero

	err := uc.txRunner.RunLoad(ctx, func(
		loadRepo repository.DailyLoadRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		ledgerRepo repository.MovementRepository,
	) error {
		load, err := loadRepo.GetByID(in.LoadID)
		if err != nil {
			return err
		}
		// Carga inexistente y carga cerrada son la misma condición para el caller.
		if load == nil || !load.IsOpen() {
			return domain.ErrLoadNotOpen
		}

		lines := make([]sales.Line, 0, len(in.Items))
		descParts := make([]string, 0, len(in.Items))
		for _, it := range in.Items {
			item, err := loadRepo.GetItemForUpdate(in.LoadID, it.ProductID)
			if err != nil {
				return err
			}
			if item == nil {
				return domain.ErrItemNotInLoad
			}

			name := "Producto"
			if item.Product != nil {
				name = item.Product.Name
			}
			available := item.Available()
			if it.Quantity > available {
				return &domain.InsufficientLoadStockError{ProductName: name, Available: available}
			}

			if err := loadRepo.UpdateItemSold(item.ID, item.QuantitySold+it.Quantity); err != nil {
				return err
			}
			// Precio congelado del ítem, no el precio vivo del producto.
			lines = append(lines, sales.Line{
				ProductID:   it.ProductID,
				ProductName: name,
				Quantity:    it.Quantity,
				UnitPrice:   item.UnitPrice,
			})
			descParts = append(descParts, fmt.Sprintf("%dx %s", it.Quantity, name))
		}

		sale, err := uc.recorder.PostSaleInTx(ledgerRepo, lines, "Venta (Carga): "+strings.Join(descParts, ", "), now)
		if err != nil {
			return err
		}
		saleTotal = sale.Amount

		return loadRepo.UpdateTotalSold(load.ID, load.TotalSold.Add(saleTotal))
	})
	if err != nil {
		return nil, decimal.Zero, err
	}

	load, err := uc.getFullLoad(in.LoadID)
	if err != nil {
		return nil, decimal.Zero, err
	}
	return load, saleTotal, nil
}

// CloseLoad cierra la carga devolviendo lo no vendido a bodega. Por cada ítem fija
// quantity_returned = tomadas − vendidas (una sola vez), reincrementa el stock del
// producto y asienta la entrada en el kardex. El cierre es terminal: cerrar una
// carga ya cerrada es un error, no un no-op.
func (uc *UseCase) CloseLoad(ctx context.Context, loadID string) (*entity.DailyLoad, error) {
	if loadID == "" {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now()

	err := uc.txRunner.RunLoad(ctx, func(
		loadRepo repository.DailyLoadRepository,
		productRepo repository.ProductRepository,
		movRepo repository.InventoryMovementRepository,
		ledgerRepo repository.MovementRepository,
	) error {
		load, err := loadRepo.GetByID(loadID)
		if err != nil {
			return err
		}
		if load == nil {
			return domain.ErrLoadNotFound
		}
		if !load.IsOpen() {
			return domain.ErrLoadClosed
		}

		items, err := loadRepo.ListItems(loadID)
		if err != nil {
			return err
		}
		for _, item := range items {
			returned := item.QuantityTaken - item.QuantitySold
			if err := loadRepo.UpdateItemReturned(item.ID, returned); err != nil {
				return err
			}
			if returned <= 0 {
				continue
			}

			product, err := productRepo.GetForUpdate(item.ProductID)
			if err != nil {
				return err
			}
			if product == nil {
				return fmt.Errorf("%w: %s", domain.ErrProductNotFound, item.ProductID)
			}
			newStock := product.CurrentStock + returned
			if err := productRepo.UpdateStock(product.ID, newStock); err != nil {
				return err
			}
			if err := movRepo.Create(&entity.InventoryMovement{
				ProductID:    product.ID,
				Type:         entity.InventoryMovementIN,
				Quantity:     returned,
				Reason:       fmt.Sprintf("Retorno Carga #%s", loadID),
				BalanceAfter: newStock,
				ReferenceID:  loadID,
				CreatedAt:    now,
			}); err != nil {
				return err
			}
		}

		return loadRepo.UpdateStatus(loadID, entity.LoadStatusClosed)
	})
	if err != nil {
		return nil, err
	}

	return uc.getFullLoad(loadID)
}

// GetByDate devuelve la carga de una fecha (vacía = hoy) con sus ítems.
// La ausencia de carga no es un error: devuelve nil.
func (uc *UseCase) GetByDate(ctx context.Context, date string) (*entity.DailyLoad, error) {
	if date == "" {
		date = time.Now().Format(dateLayout)
	} else if _, err := time.Parse(dateLayout, date); err != nil {
		return nil, domain.ErrInvalidInput
	}

	load, err := uc.loadRepo.GetByDate(date)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, nil
	}
	load.Items, err = uc.loadRepo.ListItems(load.ID)
	if err != nil {
		return nil, err
	}
	return load, nil
}

// List devuelve el historial completo de cargas con sus ítems, las más recientes primero.
func (uc *UseCase) List(ctx context.Context) ([]*entity.DailyLoad, error) {
	loads, err := uc.loadRepo.List()
	if err != nil {
		return nil, err
	}
	for _, load := range loads {
		load.Items, err = uc.loadRepo.ListItems(load.ID)
		if err != nil {
			return nil, err
		}
	}
	return loads, nil
}

func (uc *UseCase) getFullLoad(id string) (*entity.DailyLoad, error) {
	load, err := uc.loadRepo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if load == nil {
		return nil, domain.ErrLoadNotFound
	}
	load.Items, err = uc.loadRepo.ListItems(id)
	if err != nil {
		return nil, err
	}
	return load, nil
}
