package dailyload_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/conta-negocios/internal/application/apptest"
	"github.com/jcastano/conta-negocios/internal/application/dailyload"
	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/application/sales"
	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

func buildUseCase(store *apptest.Store) *dailyload.UseCase {
	return dailyload.NewUseCase(
		apptest.NewTxRunner(store),
		apptest.NewDailyLoadRepo(store),
		sales.NewRecorder(),
	)
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

// kardexOfType devuelve los registros del kardex de un tipo dado.
func kardexOfType(store *apptest.Store, movType string) []entity.InventoryMovement {
	var out []entity.InventoryMovement
	for _, m := range store.InvMovs {
		if m.Type == movType {
			out = append(out, m)
		}
	}
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// CreateLoad
// ──────────────────────────────────────────────────────────────────────────────

func TestCreateLoad_DescuentaStockYCongelaPrecio(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)
	jugoID := store.SeedProduct("Jugo", price(15), price(7), 8)

	load, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date: "2026-09-01",
		Items: []dto.LoadItemRequest{
			{ProductID: aguaID, QuantityTaken: 5},
			{ProductID: jugoID, QuantityTaken: 3},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, load)

	assert.Equal(t, entity.LoadStatusOpen, load.Status)
	assert.Equal(t, "2026-09-01", load.Date)
	assert.True(t, load.TotalSold.IsZero())
	require.Len(t, load.Items, 2)

	// El stock de bodega baja exactamente lo tomado.
	assert.Equal(t, 15, store.ProductByID(aguaID).CurrentStock)
	assert.Equal(t, 5, store.ProductByID(jugoID).CurrentStock)

	// El precio vigente queda congelado en el ítem.
	for _, it := range load.Items {
		switch it.ProductID {
		case aguaID:
			assert.True(t, it.UnitPrice.Equal(price(10)))
			assert.Equal(t, 5, it.QuantityTaken)
		case jugoID:
			assert.True(t, it.UnitPrice.Equal(price(15)))
			assert.Equal(t, 3, it.QuantityTaken)
		}
		assert.Zero(t, it.QuantitySold)
		assert.Zero(t, it.QuantityReturned)
	}

	// Cada ítem deja su salida en el kardex con el saldo posterior.
	outs := kardexOfType(store, entity.InventoryMovementOUT)
	require.Len(t, outs, 2)
	for _, m := range outs {
		assert.Equal(t, "Carga del Día", m.Reason)
		assert.Equal(t, load.ID, m.ReferenceID)
	}
}

func TestCreateLoad_FechaDuplicadaNoTocaStock(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	_, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 5}},
	})
	require.NoError(t, err)

	_, err = uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 2}},
	})
	require.ErrorIs(t, err, domain.ErrDuplicateLoad)

	// El intento rechazado no descuenta nada.
	assert.Equal(t, 15, store.ProductByID(aguaID).CurrentStock)
	assert.Len(t, store.Loads, 1)
}

func TestCreateLoad_StockInsuficienteRevierteTodo(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)
	jugoID := store.SeedProduct("Jugo", price(15), price(7), 2)

	// El segundo ítem pide más de lo que hay: ningún descuento debe persistir.
	_, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date: "2026-09-01",
		Items: []dto.LoadItemRequest{
			{ProductID: aguaID, QuantityTaken: 5},
			{ProductID: jugoID, QuantityTaken: 3},
		},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Jugo", stockErr.ProductName)
	assert.Equal(t, 2, stockErr.Available)

	assert.Equal(t, 20, store.ProductByID(aguaID).CurrentStock)
	assert.Equal(t, 2, store.ProductByID(jugoID).CurrentStock)
	assert.Empty(t, store.Loads)
	assert.Empty(t, store.InvMovs)
}

func TestCreateLoad_ProductoInexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)

	_, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: "no-existe", QuantityTaken: 1}},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateLoad_ValidaEntrada(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	cases := []struct {
		name string
		in   dto.CreateLoadRequest
	}{
		{"sin items", dto.CreateLoadRequest{Date: "2026-09-01"}},
		{"cantidad cero", dto.CreateLoadRequest{Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 0}}}},
		{"cantidad negativa", dto.CreateLoadRequest{Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: -1}}}},
		{"fecha malformada", dto.CreateLoadRequest{Date: "01/09/2026", Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 1}}}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := uc.CreateLoad(context.Background(), tc.in)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// RegisterSale
// ──────────────────────────────────────────────────────────────────────────────

func TestRegisterSale_AsientaVentaAlPrecioCongelado(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	load, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 5}},
	})
	require.NoError(t, err)

	// Subir el precio del producto después de crear la carga no afecta la venta.
	for i := range store.Products {
		if store.Products[i].ID == aguaID {
			store.Products[i].SellingPrice = price(99)
		}
	}

	updated, saleTotal, err := uc.RegisterSale(context.Background(), dto.RegisterLoadSaleRequest{
		LoadID: load.ID,
		Items:  []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 3}},
	})
	require.NoError(t, err)

	assert.True(t, saleTotal.Equal(price(30)), "3 unidades al precio congelado de 10")
	assert.True(t, updated.TotalSold.Equal(price(30)))
	require.Len(t, updated.Items, 1)
	assert.Equal(t, 3, updated.Items[0].QuantitySold)
	assert.Equal(t, 2, updated.Items[0].Available())

	// La venta queda en el libro contable con su detalle.
	require.Len(t, store.Movements, 1)
	mov := store.Movements[0]
	assert.Equal(t, entity.MovementSale, mov.Type)
	assert.True(t, mov.Amount.Equal(price(30)))
	assert.Equal(t, "Venta (Carga): 3x Agua", mov.Description)
	require.Len(t, store.SaleItems, 1)
	assert.True(t, store.SaleItems[0].UnitPriceAtSale.Equal(price(10)))

	// Vender desde la carga no toca el stock de bodega.
	assert.Equal(t, 15, store.ProductByID(aguaID).CurrentStock)
}

func TestRegisterSale_AcumulaTotalSold(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	load, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 5}},
	})
	require.NoError(t, err)

	_, _, err = uc.RegisterSale(context.Background(), dto.RegisterLoadSaleRequest{
		LoadID: load.ID,
		Items:  []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 2}},
	})
	require.NoError(t, err)

	updated, _, err := uc.RegisterSale(context.Background(), dto.RegisterLoadSaleRequest{
		LoadID: load.ID,
		Items:  []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 1}},
	})
	require.NoError(t, err)

	assert.True(t, updated.TotalSold.Equal(price(30)))
	assert.Equal(t, 3, updated.Items[0].QuantitySold)
	assert.Len(t, store.Movements, 2, "cada venta parcial es un asiento propio")
}

func TestRegisterSale_SobreventaEsTodoONada(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)
	jugoID := store.SeedProduct("Jugo", price(15), price(7), 10)

	load, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date: "2026-09-01",
		Items: []dto.LoadItemRequest{
			{ProductID: aguaID, QuantityTaken: 5},
			{ProductID: jugoID, QuantityTaken: 2},
		},
	})
	require.NoError(t, err)

	// La primera línea cabe, la segunda no: nada debe persistir.
	_, _, err = uc.RegisterSale(context.Background(), dto.RegisterLoadSaleRequest{
		LoadID: load.ID,
		Items: []dto.SaleLineRequest{
			{ProductID: aguaID, Quantity: 4},
			{ProductID: jugoID, Quantity: 3},
		},
	})

	var loadErr *domain.InsufficientLoadStockError
	require.ErrorAs(t, err, &loadErr)
	assert.Equal(t, "Jugo", loadErr.ProductName)
	assert.Equal(t, 2, loadErr.Available)

	after, err := uc.GetByDate(context.Background(), "2026-09-01")
	require.NoError(t, err)
	for _, it := range after.Items {
		assert.Zero(t, it.QuantitySold, "la venta rechazada no incrementa nada")
	}
	assert.True(t, after.TotalSold.IsZero())
	assert.Len(t, store.Movements, 0)
	assert.Len(t, store.SaleItems, 0)
}

func TestRegisterSale_ProductoFueraDeLaCarga(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)
	jugoID := store.SeedProduct("Jugo", price(15), price(7), 10)

	load, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 5}},
	})
	require.NoError(t, err)

	_, _, err = uc.RegisterSale(context.Background(), dto.RegisterLoadSaleRequest{
		LoadID: load.ID,
		Items:  []dto.SaleLineRequest{{ProductID: jugoID, Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrItemNotInLoad)
}

func TestRegisterSale_CargaCerradaOInexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	load, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 5}},
	})
	require.NoError(t, err)
	_, err = uc.CloseLoad(context.Background(), load.ID)
	require.NoError(t, err)

	_, _, err = uc.RegisterSale(context.Background(), dto.RegisterLoadSaleRequest{
		LoadID: load.ID,
		Items:  []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrLoadNotOpen)

	_, _, err = uc.RegisterSale(context.Background(), dto.RegisterLoadSaleRequest{
		LoadID: "no-existe",
		Items:  []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 1}},
	})
	assert.ErrorIs(t, err, domain.ErrLoadNotOpen)
}

// ──────────────────────────────────────────────────────────────────────────────
// CloseLoad
// ──────────────────────────────────────────────────────────────────────────────

// Día completo: stock 20, se cargan 5, se venden 3, se cierra. Al final el
// stock queda en 17 y las cantidades del ítem conservan lo tomado.
func TestCloseLoad_DevuelveLoNoVendido(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	load, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 5}},
	})
	require.NoError(t, err)

	_, saleTotal, err := uc.RegisterSale(context.Background(), dto.RegisterLoadSaleRequest{
		LoadID: load.ID,
		Items:  []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 3}},
	})
	require.NoError(t, err)
	require.True(t, saleTotal.Equal(price(30)))

	closed, err := uc.CloseLoad(context.Background(), load.ID)
	require.NoError(t, err)

	assert.Equal(t, entity.LoadStatusClosed, closed.Status)
	require.Len(t, closed.Items, 1)
	item := closed.Items[0]
	assert.Equal(t, 5, item.QuantityTaken)
	assert.Equal(t, 3, item.QuantitySold)
	assert.Equal(t, 2, item.QuantityReturned)
	assert.Equal(t, item.QuantityTaken, item.QuantitySold+item.QuantityReturned,
		"tras el cierre, vendido + devuelto = tomado")

	assert.Equal(t, 17, store.ProductByID(aguaID).CurrentStock)

	ins := kardexOfType(store, entity.InventoryMovementIN)
	require.Len(t, ins, 1)
	assert.Equal(t, 2, ins[0].Quantity)
	assert.Equal(t, "Retorno Carga #"+load.ID, ins[0].Reason)
	assert.Equal(t, 17, ins[0].BalanceAfter)
}

func TestCloseLoad_TodoVendidoNoGeneraRetorno(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	load, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 5}},
	})
	require.NoError(t, err)

	_, _, err = uc.RegisterSale(context.Background(), dto.RegisterLoadSaleRequest{
		LoadID: load.ID,
		Items:  []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 5}},
	})
	require.NoError(t, err)

	closed, err := uc.CloseLoad(context.Background(), load.ID)
	require.NoError(t, err)

	assert.Zero(t, closed.Items[0].QuantityReturned)
	assert.Equal(t, 15, store.ProductByID(aguaID).CurrentStock)
	assert.Empty(t, kardexOfType(store, entity.InventoryMovementIN))
}

func TestCloseLoad_CerrarDosVecesEsError(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	load, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 5}},
	})
	require.NoError(t, err)

	_, err = uc.CloseLoad(context.Background(), load.ID)
	require.NoError(t, err)

	_, err = uc.CloseLoad(context.Background(), load.ID)
	require.ErrorIs(t, err, domain.ErrLoadClosed)

	// El doble cierre no vuelve a sumar el retorno.
	assert.Equal(t, 20, store.ProductByID(aguaID).CurrentStock)
	assert.Len(t, kardexOfType(store, entity.InventoryMovementIN), 1)
}

func TestCloseLoad_Inexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)

	_, err := uc.CloseLoad(context.Background(), "no-existe")
	require.ErrorIs(t, err, domain.ErrLoadNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// Consultas
// ──────────────────────────────────────────────────────────────────────────────

func TestGetByDate_SinCargaDevuelveNil(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)

	load, err := uc.GetByDate(context.Background(), "2026-09-01")
	require.NoError(t, err)
	assert.Nil(t, load)
}

func TestGetByDate_FechaInvalida(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)

	_, err := uc.GetByDate(context.Background(), "hoy")
	require.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestList_DevuelveCargasConItems(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	_, err := uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-08-31",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 2}},
	})
	require.NoError(t, err)
	_, err = uc.CreateLoad(context.Background(), dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 3}},
	})
	require.NoError(t, err)

	loads, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, loads, 2)
	assert.Equal(t, "2026-09-01", loads[0].Date, "las más recientes primero")
	for _, l := range loads {
		assert.NotEmpty(t, l.Items)
	}
}
