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

	"github.com/bazaartech/inventory-ledger/internal/application/audit"
	"github.com/bazaartech/inventory-ledger/internal/application/auth"
	"github.com/bazaartech/inventory-ledger/internal/application/inventory"
	"github.com/bazaartech/inventory-ledger/internal/application/report"
	"github.com/bazaartech/inventory-ledger/internal/application/usecase"
	"github.com/bazaartech/inventory-ledger/internal/infrastructure/postgres"
	httpRouter "github.com/bazaartech/inventory-ledger/internal/interfaces/http"
	"github.com/bazaartech/inventory-ledger/pkg/config"
	"github.com/bazaartech/inventory-ledger/pkg/logger"
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

	if err := postgres.RunMigrations(cfg.DB.ConnectionString()); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	userRepo := postgres.NewUserRepository(pool)
	productRepo := postgres.NewProductRepository(pool)
	storeRepo := postgres.NewStoreRepository(pool)
	supplierRepo := postgres.NewSupplierRepository(pool)
	movementRepo := postgres.NewMovementRepository(pool)
	positionRepo := postgres.NewStockPositionRepository(pool)
	activityRepo := postgres.NewActivityRepository(pool)
	txRunner := postgres.NewTxRunner(pool)

	activityUC := audit.NewActivityLogUseCase(activityRepo, log)
	submitUC := inventory.NewSubmitMovementUseCase(
		txRunner, movementRepo, productRepo, storeRepo, supplierRepo, activityUC, log.Component("ledger"),
	)
	stockQueryUC := inventory.NewStockQueryUseCase(
		movementRepo, positionRepo, productRepo, storeRepo, cfg.Inventory.LowStockThreshold,
	)
	stockReportUC := report.NewStockReportUseCase(stockQueryUC)
	productUC := usecase.NewProductUseCase(productRepo, activityUC)
	storeUC := usecase.NewStoreUseCase(storeRepo, activityUC)
	supplierUC := usecase.NewSupplierUseCase(supplierRepo, activityUC)
	authUC := auth.NewAuthUseCase(userRepo, activityUC, auth.JWTConfig{
		Secret:     cfg.JWT.Secret,
		ExpMinutes: cfg.JWT.Expiration,
		Issuer:     cfg.JWT.Issuer,
	})

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
		Title:    "Inventory Ledger API",
	}))

	httpRouter.Router(app, httpRouter.RouterDeps{
		AuthUC:         authUC,
		ProductUC:      productUC,
		StoreUC:        storeUC,
		SupplierUC:     supplierUC,
		SubmitMovement: submitUC,
		StockQuery:     stockQueryUC,
		StockReport:    stockReportUC,
		ActivityLog:    activityUC,
		JWTSecret:      cfg.JWT.Secret,
		Log:            log.Component("http"),
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
