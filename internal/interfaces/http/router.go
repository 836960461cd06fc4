package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/dvergaras/fieldops-api/internal/application/auth"
	"github.com/dvergaras/fieldops-api/internal/application/inventory"
	"github.com/dvergaras/fieldops-api/internal/application/usecase"
	"github.com/dvergaras/fieldops-api/internal/domain/entity"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CatalogUC        *inventory.CatalogUseCase
	RegisterMovement *inventory.RegisterMovementUseCase
	BatchUC          *inventory.BatchUseCase
	EquipmentUC      *inventory.EquipmentUseCase
	HistoryUC        *inventory.HistoryUseCase
	CrewUC           *usecase.CrewUseCase
	OrderUC          *usecase.WorkOrderUseCase
	ReportUC         *usecase.ReportUseCase
	AuthUC           *auth.AuthUseCase
	JWTSecret        string
	MetricsEnabled   bool
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.MetricsEnabled {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.Handler()))
	}

	api := app.Group("/api")

	// Auth (público)
	authGroup := api.Group("/auth")
	authHandler := NewAuthHandler(deps.AuthUC)
	authGroup.Post("/register", authHandler.Register)
	authGroup.Post("/login", authHandler.Login)

	// Rutas protegidas (requieren Bearer Token)
	protected := api.Group("/", AuthMiddleware(deps.JWTSecret))

	// Los técnicos consultan; escribir inventario requiere almacenista o admin.
	warehouse := RequireRole(entity.RoleAdmin, entity.RoleAlmacenista)

	// Catálogo de ítems
	items := protected.Group("/items")
	itemHandler := NewItemHandler(deps.CatalogUC)
	items.Post("/", warehouse, itemHandler.Create)
	items.Get("/", itemHandler.List)
	items.Get("/low-stock", itemHandler.LowStock)
	items.Get("/:id", itemHandler.GetByID)
	items.Put("/:id", warehouse, itemHandler.Update)
	items.Delete("/:id", warehouse, itemHandler.Delete)

	// Movimientos e historial
	invGroup := protected.Group("/inventory")
	movementHandler := NewMovementHandler(deps.RegisterMovement)
	historyHandler := NewHistoryHandler(deps.HistoryUC)
	invGroup.Post("/movements", warehouse, movementHandler.Register)
	invGroup.Get("/history", historyHandler.Query)

	// Bobinas
	batches := protected.Group("/batches")
	batchHandler := NewBatchHandler(deps.BatchUC)
	batches.Post("/", warehouse, batchHandler.Create)
	batches.Get("/", batchHandler.List)
	batches.Get("/:code", batchHandler.GetByCode)
	batches.Put("/:code/quantity", warehouse, batchHandler.AddQuantity)
	batches.Put("/:code", RequireRole(entity.RoleAdmin), batchHandler.Adjust)
	batches.Delete("/:code", warehouse, batchHandler.Delete)

	// Equipos serializados
	equipment := protected.Group("/equipment")
	equipmentHandler := NewEquipmentHandler(deps.EquipmentUC)
	equipment.Post("/", warehouse, equipmentHandler.Register)
	equipment.Get("/", equipmentHandler.List)
	equipment.Get("/search", equipmentHandler.Find)
	equipment.Put("/:uniqueId/status", warehouse, equipmentHandler.MarkStatus)
	equipment.Delete("/:uniqueId", warehouse, equipmentHandler.Delete)

	// Cuadrillas
	crews := protected.Group("/crews")
	crewHandler := NewCrewHandler(deps.CrewUC)
	crews.Post("/", warehouse, crewHandler.Create)
	crews.Get("/", crewHandler.List)
	crews.Get("/:id", crewHandler.GetByID)
	crews.Get("/:id/inventory", crewHandler.Inventory)
	crews.Put("/:id", warehouse, crewHandler.Update)
	crews.Delete("/:id", warehouse, crewHandler.Delete)

	// Órdenes de trabajo
	orders := protected.Group("/orders")
	orderHandler := NewOrderHandler(deps.OrderUC)
	orders.Post("/", warehouse, orderHandler.Create)
	orders.Get("/", orderHandler.List)
	orders.Get("/:id", orderHandler.GetByID)
	orders.Get("/:id/usage", orderHandler.Usage)
	orders.Put("/:id", warehouse, orderHandler.Update)

	// Reportes
	reports := protected.Group("/reports")
	reportHandler := NewReportHandler(deps.ReportUC)
	reports.Get("/dashboard", reportHandler.Dashboard)
	reports.Get("/stock.xlsx", reportHandler.StockExcel)
	reports.Get("/movements.pdf", reportHandler.MovementsPDF)
}
