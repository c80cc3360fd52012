package usecase_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/conta-negocios/internal/application/apptest"
	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/application/usecase"
	"github.com/jcastano/conta-negocios/internal/domain"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

func buildUseCase(store *apptest.Store) *usecase.ProductUseCase {
	return usecase.NewProductUseCase(apptest.NewProductRepo(store), apptest.NewTxRunner(store))
}

func money(v int64) decimal.Decimal {
	return decimal.NewFromInt(v)
}

func TestCreateProduct(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)

	p, err := uc.Create(context.Background(), dto.CreateProductRequest{
		Name:         "Agua",
		CostPrice:    money(4),
		SellingPrice: money(10),
		CurrentStock: 20,
	})
	require.NoError(t, err)
	assert.NotEmpty(t, p.ID)
	assert.Equal(t, 5, p.MinStockAlert, "umbral por defecto")
	assert.Equal(t, 20, p.CurrentStock)

	// El stock inicial no genera movimiento de kardex.
	assert.Empty(t, store.InvMovs)
}

func TestCreateProduct_ValidaEntrada(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)

	cases := []dto.CreateProductRequest{
		{Name: "", SellingPrice: money(10)},
		{Name: "Agua", CostPrice: money(-1)},
		{Name: "Agua", SellingPrice: money(-1)},
		{Name: "Agua", CurrentStock: -1},
	}
	for _, in := range cases {
		_, err := uc.Create(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestUpdateProduct_NoTocaStock(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	id := store.SeedProduct("Agua", money(10), money(4), 20)

	newName := "Agua Mineral"
	newPrice := money(12)
	p, err := uc.Update(context.Background(), id, dto.UpdateProductRequest{
		Name:         &newName,
		SellingPrice: &newPrice,
	})
	require.NoError(t, err)
	assert.Equal(t, "Agua Mineral", p.Name)
	assert.True(t, p.SellingPrice.Equal(money(12)))
	assert.Equal(t, 20, store.ProductByID(id).CurrentStock)
}

func TestAdjustStock_PositivoYNegativo(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	id := store.SeedProduct("Agua", money(10), money(4), 20)

	p, err := uc.AdjustStock(context.Background(), id, dto.AdjustStockRequest{Delta: 5, Reason: "Compra"})
	require.NoError(t, err)
	assert.Equal(t, 25, p.CurrentStock)

	p, err = uc.AdjustStock(context.Background(), id, dto.AdjustStockRequest{Delta: -3})
	require.NoError(t, err)
	assert.Equal(t, 22, p.CurrentStock)

	// Cada ajuste queda en el kardex con cantidad positiva y saldo posterior.
	require.Len(t, store.InvMovs, 2)
	assert.Equal(t, entity.InventoryMovementADJUSTMENT, store.InvMovs[0].Type)
	assert.Equal(t, 5, store.InvMovs[0].Quantity)
	assert.Equal(t, 25, store.InvMovs[0].BalanceAfter)
	assert.Equal(t, "Compra", store.InvMovs[0].Reason)
	assert.Equal(t, 3, store.InvMovs[1].Quantity)
	assert.Equal(t, 22, store.InvMovs[1].BalanceAfter)
	assert.Equal(t, "Corrección Manual", store.InvMovs[1].Reason, "motivo por defecto")
}

func TestAdjustStock_NoPermiteNegativo(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	id := store.SeedProduct("Agua", money(10), money(4), 2)

	_, err := uc.AdjustStock(context.Background(), id, dto.AdjustStockRequest{Delta: -5})
	require.ErrorIs(t, err, domain.ErrStockBelowZero)

	assert.Equal(t, 2, store.ProductByID(id).CurrentStock)
	assert.Empty(t, store.InvMovs, "el ajuste rechazado no deja rastro")
}

func TestAdjustStock_DeltaCeroEsInvalido(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	id := store.SeedProduct("Agua", money(10), money(4), 2)

	_, err := uc.AdjustStock(context.Background(), id, dto.AdjustStockRequest{Delta: 0})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestGetByID_Inexistente(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)

	_, err := uc.GetByID(context.Background(), "no-existe")
	assert.ErrorIs(t, err, domain.ErrProductNotFound)
}
