package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jcastano/conta-negocios/internal/application/accounting"
	"github.com/jcastano/conta-negocios/internal/application/batch"
	"github.com/jcastano/conta-negocios/internal/application/dailyload"
	"github.com/jcastano/conta-negocios/internal/application/inventory"
	"github.com/jcastano/conta-negocios/internal/application/sales"
	"github.com/jcastano/conta-negocios/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	ProductUC    *usecase.ProductUseCase
	DailyLoadUC  *dailyload.UseCase
	SalesUC      *sales.UseCase
	AccountingUC *accounting.UseCase
	KardexUC     *inventory.KardexUseCase
	BatchUC      *batch.UseCase
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Products
	products := api.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id/stock", productHandler.AdjustStock)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	// Daily loads (carga del día)
	loads := api.Group("/daily-loads")
	loadHandler := NewDailyLoadHandler(deps.DailyLoadUC)
	loads.Post("/", loadHandler.Create)
	loads.Get("/", loadHandler.List)
	loads.Get("/today", loadHandler.GetByDate)
	loads.Post("/sell", loadHandler.RegisterSale)
	loads.Put("/:id/close", loadHandler.Close)

	// Sales (venta directa desde bodega)
	salesGroup := api.Group("/sales")
	salesHandler := NewSalesHandler(deps.SalesUC)
	salesGroup.Post("/", salesHandler.Create)
	salesGroup.Get("/", salesHandler.List)
	salesGroup.Get("/:id", salesHandler.GetByID)

	// Accounting
	acc := api.Group("/accounting")
	accHandler := NewAccountingHandler(deps.AccountingUC)
	acc.Post("/expenses", accHandler.CreateExpense)
	acc.Get("/daily-balance", accHandler.DailyBalance)
	acc.Post("/cash-cut", accHandler.CashCut)
	acc.Get("/cash-cuts", accHandler.ListCashCuts)
	acc.Get("/profit-report", accHandler.ProfitReport)

	// Kardex
	kardex := api.Group("/kardex")
	kardexHandler := NewKardexHandler(deps.KardexUC)
	kardex.Get("/history", kardexHandler.History)

	// Batches (lotes de inversión)
	batches := api.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:id/summary", batchHandler.Summary)
	batches.Put("/:id", batchHandler.Update)
	batches.Delete("/:id", batchHandler.Delete)
}
