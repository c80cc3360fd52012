package inventory_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/conta-negocios/internal/application/apptest"
	"github.com/jcastano/conta-negocios/internal/application/inventory"
	"github.com/jcastano/conta-negocios/internal/domain/entity"
)

func buildUseCase(store *apptest.Store) *inventory.KardexUseCase {
	return inventory.NewKardexUseCase(apptest.NewInventoryMovementRepo(store), apptest.NewProductRepo(store))
}

func seedMov(store *apptest.Store, productID, movType string, qty, balance int, at time.Time) {
	store.InvMovs = append(store.InvMovs, entity.InventoryMovement{
		ID: productID + at.String(), ProductID: productID, Type: movType,
		Quantity: qty, Reason: "Corrección Manual", BalanceAfter: balance, CreatedAt: at,
	})
}

func TestHistory_ResuelveNombresYOrdena(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", decimal.NewFromInt(10), decimal.NewFromInt(4), 20)

	now := time.Now()
	seedMov(store, aguaID, entity.InventoryMovementOUT, 5, 15, now.Add(-2*time.Hour))
	seedMov(store, aguaID, entity.InventoryMovementIN, 2, 17, now.Add(-1*time.Hour))

	entries, err := uc.History(context.Background(), nil, nil, "", 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 2)

	// Cronológico inverso: la entrada más reciente primero.
	assert.Equal(t, entity.InventoryMovementIN, entries[0].Type)
	assert.Equal(t, 17, entries[0].BalanceAfter)
	assert.Equal(t, "Agua", entries[0].Product)
	assert.Equal(t, entity.InventoryMovementOUT, entries[1].Type)
}

func TestHistory_ProductoEliminado(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)

	seedMov(store, "producto-borrado", entity.InventoryMovementOUT, 1, 0, time.Now())

	entries, err := uc.History(context.Background(), nil, nil, "", 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Producto Eliminado", entries[0].Product)
}

func TestHistory_FiltraPorProducto(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", decimal.NewFromInt(10), decimal.NewFromInt(4), 20)
	jugoID := store.SeedProduct("Jugo", decimal.NewFromInt(15), decimal.NewFromInt(7), 10)

	now := time.Now()
	seedMov(store, aguaID, entity.InventoryMovementOUT, 5, 15, now)
	seedMov(store, jugoID, entity.InventoryMovementOUT, 2, 8, now)

	entries, err := uc.History(context.Background(), nil, nil, aguaID, 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, "Agua", entries[0].Product)
}

func TestHistory_RespetaPeriodo(t *testing.T) {
	store := apptest.NewStore()
	uc := buildUseCase(store)
	aguaID := store.SeedProduct("Agua", decimal.NewFromInt(10), decimal.NewFromInt(4), 20)

	now := time.Now()
	seedMov(store, aguaID, entity.InventoryMovementOUT, 5, 15, now.AddDate(0, -3, 0))
	seedMov(store, aguaID, entity.InventoryMovementIN, 2, 17, now)

	// Sin fechas: solo el mes en curso.
	entries, err := uc.History(context.Background(), nil, nil, "", 50, 0)
	require.NoError(t, err)
	require.Len(t, entries, 1)
	assert.Equal(t, entity.InventoryMovementIN, entries[0].Type)

	// Con el periodo ampliado aparecen ambos.
	from := now.AddDate(0, -6, 0)
	to := now.Add(time.Hour)
	entries, err = uc.History(context.Background(), &from, &to, "", 50, 0)
	require.NoError(t, err)
	assert.Len(t, entries, 2)
}
