package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/bazaartech/inventory-ledger/internal/application/audit"
	"github.com/bazaartech/inventory-ledger/internal/application/auth"
	"github.com/bazaartech/inventory-ledger/internal/application/inventory"
	"github.com/bazaartech/inventory-ledger/internal/application/report"
	"github.com/bazaartech/inventory-ledger/internal/application/usecase"
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/pkg/logger"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC         *auth.AuthUseCase
	ProductUC      *usecase.ProductUseCase
	StoreUC        *usecase.StoreUseCase
	SupplierUC     *usecase.SupplierUseCase
	SubmitMovement *inventory.SubmitMovementUseCase
	StockQuery     *inventory.StockQueryUseCase
	StockReport    *report.StockReportUseCase
	ActivityLog    *audit.ActivityLogUseCase
	JWTSecret      string
	Log            *logger.Logger
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok"})
	})
	app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))

	api := app.Group("/api")

	// Auth (register y login públicos; logout requiere token)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)
	authGroup.Post("/logout", AuthMiddleware(deps.JWTSecret), authHandler.Logout)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Products (protegido)
	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)

	// Stores (protegido)
	stores := protected.Group("/stores")
	storeHandler := NewStoreHandler(deps.StoreUC)
	stores.Post("/", storeHandler.Create)
	stores.Get("/", storeHandler.List)
	stores.Get("/:id", storeHandler.GetByID)
	stores.Put("/:id", storeHandler.Update)

	// Suppliers (protegido)
	suppliers := protected.Group("/suppliers")
	supplierHandler := NewSupplierHandler(deps.SupplierUC)
	suppliers.Post("/", supplierHandler.Create)
	suppliers.Get("/", supplierHandler.List)
	suppliers.Get("/:id", supplierHandler.GetByID)
	suppliers.Put("/:id", supplierHandler.Update)

	// Inventory: libro de movimientos y consultas derivadas (protegido)
	invGroup := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.SubmitMovement, deps.StockQuery, deps.Log)
	invGroup.Post("/movements", inventoryHandler.SubmitMovement)
	invGroup.Get("/movements", inventoryHandler.ListMovements)
	invGroup.Get("/stock-position", inventoryHandler.GetStockPosition)
	invGroup.Get("/stock-summary", inventoryHandler.GetStockSummary)
	invGroup.Get("/verify", RequireRole(entity.RoleAdmin), inventoryHandler.VerifyLedger)

	// Vista de stocks del dashboard y exportación (protegido)
	stocks := protected.Group("/stocks")
	stockHandler := NewStockHandler(deps.StockQuery, deps.StockReport)
	stocks.Get("/", stockHandler.ListStocks)
	stocks.Get("/export", stockHandler.ExportStocks)

	// Registro de actividad (protegido, solo admin)
	logs := protected.Group("/logs", RequireRole(entity.RoleAdmin))
	activityHandler := NewActivityHandler(deps.ActivityLog)
	logs.Get("/", activityHandler.ListLogs)
}
