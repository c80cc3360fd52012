package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/jcastano/conta-negocios/internal/application/accounting"
	"github.com/jcastano/conta-negocios/internal/application/batch"
	"github.com/jcastano/conta-negocios/internal/application/dailyload"
	"github.com/jcastano/conta-negocios/internal/application/inventory"
	"github.com/jcastano/conta-negocios/internal/application/sales"
	"github.com/jcastano/conta-negocios/internal/application/usecase"
	"github.com/jcastano/conta-negocios/internal/infrastructure/postgres"
	httpRouter "github.com/jcastano/conta-negocios/internal/interfaces/http"
	"github.com/jcastano/conta-negocios/pkg/config"
	"github.com/jcastano/conta-negocios/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:   cfg.App.Env,
		Level: cfg.App.LogLevel,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Msg("iniciando aplicación")

	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()

	productRepo := postgres.NewProductRepository(pool)
	loadRepo := postgres.NewDailyLoadRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	inventoryMovRepo := postgres.NewInventoryMovementRepository(pool)
	cashCutRepo := postgres.NewCashCutRepository(pool)
	batchRepo := postgres.NewProductBatchRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	recorder := sales.NewRecorder()
	productUC := usecase.NewProductUseCase(productRepo, txRunner)
	dailyLoadUC := dailyload.NewUseCase(txRunner, loadRepo, recorder)
	salesUC := sales.NewUseCase(txRunner, recorder, movementRepo)
	accountingUC := accounting.NewUseCase(movementRepo, cashCutRepo)
	kardexUC := inventory.NewKardexUseCase(inventoryMovRepo, productRepo)
	batchUC := batch.NewUseCase(txRunner, batchRepo, productRepo, movementRepo)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 10,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Conta Negocios API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		ProductUC:    productUC,
		DailyLoadUC:  dailyLoadUC,
		SalesUC:      salesUC,
		AccountingUC: accountingUC,
		KardexUC:     kardexUC,
		BatchUC:      batchUC,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}
