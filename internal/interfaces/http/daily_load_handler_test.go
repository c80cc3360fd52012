package http_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jcastano/conta-negocios/internal/application/apptest"
	"github.com/jcastano/conta-negocios/internal/application/dailyload"
	"github.com/jcastano/conta-negocios/internal/application/dto"
	"github.com/jcastano/conta-negocios/internal/application/sales"
	apphttp "github.com/jcastano/conta-negocios/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp levanta la API de cargas sobre repositorios en memoria.
func buildTestApp(t *testing.T) (*fiber.App, *apptest.Store) {
	t.Helper()
	store := apptest.NewStore()
	uc := dailyload.NewUseCase(
		apptest.NewTxRunner(store),
		apptest.NewDailyLoadRepo(store),
		sales.NewRecorder(),
	)
	app := fiber.New()
	handler := apphttp.NewDailyLoadHandler(uc)
	loads := app.Group("/api/daily-loads")
	loads.Post("/", handler.Create)
	loads.Get("/today", handler.GetByDate)
	loads.Post("/sell", handler.RegisterSale)
	loads.Put("/:id/close", handler.Close)
	return app, store
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) *http.Response {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	return resp
}

func decode[T any](t *testing.T, resp *http.Response) T {
	t.Helper()
	var out T
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestDailyLoadAPI_CicloCompleto(t *testing.T) {
	app, store := buildTestApp(t)
	aguaID := store.SeedProduct("Agua", decimal.NewFromInt(10), decimal.NewFromInt(4), 20)

	// Crear la carga del día.
	resp := doJSON(t, app, http.MethodPost, "/api/daily-loads", dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 5}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	load := decode[dto.LoadResponse](t, resp)
	assert.Equal(t, "OPEN", load.Status)
	require.Len(t, load.Items, 1)
	assert.Equal(t, 5, load.Items[0].Available)

	// Vender 3 unidades contra la carga.
	resp = doJSON(t, app, http.MethodPost, "/api/daily-loads/sell", dto.RegisterLoadSaleRequest{
		LoadID: load.ID,
		Items:  []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 3}},
	})
	require.Equal(t, http.StatusOK, resp.StatusCode)
	saleResp := decode[dto.RegisterSaleResponse](t, resp)
	assert.True(t, saleResp.SaleTotal.Equal(decimal.NewFromInt(30)))
	assert.Equal(t, 3, saleResp.Load.Items[0].QuantitySold)

	// Cerrar: lo no vendido vuelve a bodega.
	resp = doJSON(t, app, http.MethodPut, "/api/daily-loads/"+load.ID+"/close", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	closed := decode[dto.LoadResponse](t, resp)
	assert.Equal(t, "CLOSED", closed.Status)
	assert.Equal(t, 2, closed.Items[0].QuantityReturned)
	assert.Equal(t, 17, store.ProductByID(aguaID).CurrentStock)
}

func TestDailyLoadAPI_FechaDuplicadaDevuelve409(t *testing.T) {
	app, store := buildTestApp(t)
	aguaID := store.SeedProduct("Agua", decimal.NewFromInt(10), decimal.NewFromInt(4), 20)

	body := dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 5}},
	}
	resp := doJSON(t, app, http.MethodPost, "/api/daily-loads", body)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp = doJSON(t, app, http.MethodPost, "/api/daily-loads", body)
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "DUPLICATE_LOAD", errResp.Code)
}

func TestDailyLoadAPI_SobreventaDevuelve409(t *testing.T) {
	app, store := buildTestApp(t)
	aguaID := store.SeedProduct("Agua", decimal.NewFromInt(10), decimal.NewFromInt(4), 20)

	resp := doJSON(t, app, http.MethodPost, "/api/daily-loads", dto.CreateLoadRequest{
		Date:  "2026-09-01",
		Items: []dto.LoadItemRequest{{ProductID: aguaID, QuantityTaken: 2}},
	})
	require.Equal(t, http.StatusCreated, resp.StatusCode)
	load := decode[dto.LoadResponse](t, resp)

	resp = doJSON(t, app, http.MethodPost, "/api/daily-loads/sell", dto.RegisterLoadSaleRequest{
		LoadID: load.ID,
		Items:  []dto.SaleLineRequest{{ProductID: aguaID, Quantity: 3}},
	})
	require.Equal(t, http.StatusConflict, resp.StatusCode)
	errResp := decode[dto.ErrorResponse](t, resp)
	assert.Equal(t, "INSUFFICIENT_LOAD_STOCK", errResp.Code)
}

func TestDailyLoadAPI_SinCargaHoyDevuelveNull(t *testing.T) {
	app, _ := buildTestApp(t)

	resp := doJSON(t, app, http.MethodGet, "/api/daily-loads/today?date=2026-09-01", nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	var body any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	assert.Nil(t, body)
}

func TestDailyLoadAPI_CuerpoInvalido(t *testing.T) {
	app, _ := buildTestApp(t)

	req := httptest.NewRequest(http.MethodPost, "/api/daily-loads", bytes.NewBufferString("{no es json"))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}
