package sales_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/conta-negocios/internal/application/apptest"
	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/application/sales"
	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

func buildUseCase(store *apptest.Store) *sales.UseCase {
	return sales.NewUseCase(apptest.NewTxRunner(store), sales.NewRecorder(), apptest.NewMovementRepo(store))
}

func price(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestCreateSale_DescuentaStockYAsientaVenta(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)
	jugoID := store.SeedProduct("Jugo", price(15), price(7), 10)

	sale, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleLineRequest{
			{ProductID: aguaID, Quantity: 2},
			{ProductID: jugoID, Quantity: 1},
		},
	})
	require.NoError(t, err)
	require.NotNil(t, sale)

	assert.Equal(t, entity.MovementSale, sale.Type)
	assert.True(t, sale.Amount.Equal(price(35)), "2x10 + 1x15")
	assert.Equal(t, "Venta de productos", sale.Description)
	require.Len(t, sale.Items, 2)

	// Venta directa: el stock de bodega baja al momento.
	assert.Equal(t, 18, store.ProductByID(aguaID).CurrentStock)
	assert.Equal(t, 9, store.ProductByID(jugoID).CurrentStock)

	// Cada línea deja su salida en el kardex referenciando la venta.
	require.Len(t, store.InvMovs, 2)
	for _, m := range store.InvMovs {
		assert.Equal(t, entity.InventoryMovementOUT, m.Type)
		assert.Equal(t, sale.ID, m.ReferenceID)
		assert.Equal(t, "Venta #"+sale.ID, m.Reason)
	}
}

func TestCreateSale_StockInsuficienteRevierteTodo(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)
	jugoID := store.SeedProduct("Jugo", price(15), price(7), 1)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleLineRequest{
			{ProductID: aguaID, Quantity: 2},
			{ProductID: jugoID, Quantity: 5},
		},
	})

	var stockErr *domain.InsufficientStockError
	require.ErrorAs(t, err, &stockErr)
	assert.Equal(t, "Jugo", stockErr.ProductName)
	assert.Equal(t, 1, stockErr.Available)

	assert.Equal(t, 20, store.ProductByID(aguaID).CurrentStock)
	assert.Empty(t, store.Movements)
	assert.Empty(t, store.SaleItems)
	assert.Empty(t, store.InvMovs)
}

func TestCreateSale_ProductoInexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: "no-existe", Quantity: 1}},
	})
	require.ErrorIs(t, err, domain.ErrProductNotFound)
}

func TestCreateSale_ValidaEntrada(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 0}},
	})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetSale_SoloVentas(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	sale, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
		Items: []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 1}},
	})
	require.NoError(t, err)

	got, err := uc.GetSale(context.Background(), sale.ID)
	require.NoError(t, err)
	assert.Equal(t, sale.ID, got.ID)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Agua", got.Items[0].Product.Name)

	_, err = uc.GetSale(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestGetSales_ListaConDetalle(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", price(10), price(4), 20)

	for i := 0; i < 3; i++ {
		_, err := uc.CreateSale(context.Background(), dto.CreateSaleRequest{
			Items: []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 1}},
		})
		require.NoError(t, err)
	}

	movs, err := uc.GetSales(context.Background(), 50, 0)
	require.NoError(t, err)
	require.Len(t, movs, 3)
	for _, m := range movs {
		assert.Len(t, m.Items, 1)
	}
}
