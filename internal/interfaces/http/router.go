package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/inventory-ims/internal/application/auth"
	"github.com/jhoicas/inventory-ims/internal/application/usecase"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	AuthUC          *auth.AuthUseCase
	ProductUC       *usecase.ProductUseCase
	WarehouseUC     *usecase.WarehouseUseCase
	InventoryUC     *usecase.InventoryUseCase
	MovementUC      *usecase.MovementUseCase
	PurchaseOrderUC *usecase.PurchaseOrderUseCase
	StockAlertUC    *usecase.StockAlertUseCase
	ReportingUC     *usecase.ReportingUseCase
	Exporters       ExporterFactory
	JWTSecret       string

	// AuthLimiter limita /api/auth por IP; nil = sin límite.
	AuthLimiter        RateLimiter
	AuthLimitPerMinute int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Auth (público, con rate limit)
	authGroup := api.Group("/auth", RateLimit(deps.AuthLimiter, "rate:auth", deps.AuthLimitPerMinute))
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	products := protected.Group("/products")
	productHandler := NewProductHandler(deps.ProductUC)
	products.Post("/", productHandler.Create)
	products.Get("/", productHandler.List)
	products.Get("/:id", productHandler.GetByID)
	products.Put("/:id", productHandler.Update)
	products.Delete("/:id", productHandler.Delete)

	warehouses := protected.Group("/warehouses")
	warehouseHandler := NewWarehouseHandler(deps.WarehouseUC)
	warehouses.Post("/", warehouseHandler.Create)
	warehouses.Get("/", warehouseHandler.List)
	warehouses.Get("/:id", warehouseHandler.GetByID)
	warehouses.Put("/:id", warehouseHandler.Update)
	warehouses.Delete("/:id", warehouseHandler.Delete)

	inventory := protected.Group("/inventory")
	inventoryHandler := NewInventoryHandler(deps.InventoryUC)
	inventory.Post("/", inventoryHandler.Create)
	inventory.Get("/", inventoryHandler.List)
	inventory.Get("/:id", inventoryHandler.GetByID)
	inventory.Put("/:id", inventoryHandler.Update)
	inventory.Delete("/:id", inventoryHandler.Delete)

	movements := protected.Group("/inventory-movements")
	movementHandler := NewMovementHandler(deps.MovementUC)
	movements.Post("/", movementHandler.Record)
	movements.Get("/", movementHandler.List)

	orders := protected.Group("/purchase-orders")
	orderHandler := NewPurchaseOrderHandler(deps.PurchaseOrderUC)
	orders.Post("/", orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Post("/:id/fulfill", orderHandler.Fulfill)
	orders.Post("/:id/cancel", orderHandler.Cancel)

	alerts := protected.Group("/stock-alerts")
	alertHandler := NewStockAlertHandler(deps.StockAlertUC)
	alerts.Get("/", alertHandler.ListActive)
	alerts.Post("/:id/resolve", alertHandler.Resolve)

	// Reportes: solo ADMIN y MANAGER (el caso de uso vuelve a verificar el rol)
	reports := protected.Group("/reports", RequireRole(usecase.ReportingRoles...))
	reportHandler := NewReportHandler(deps.ReportingUC, deps.Exporters)
	reports.Get("/inventory-turnover", reportHandler.InventoryTurnover)
	reports.Get("/stock-valuation", reportHandler.StockValuation)
	reports.Get("/inventory-trends", reportHandler.InventoryTrends)
}
