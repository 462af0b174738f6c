package http

import (
	"github.com/gofiber/fiber/v2"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	appinventory "github.com/jhoicas/Costeo-api/internal/application/inventory"
	appprocurement "github.com/jhoicas/Costeo-api/internal/application/procurement"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	CostingUC       *appcosting.UseCase
	SnapshotUC      *appinventory.SnapshotUseCase
	ReplenishmentUC *appinventory.ReplenishmentUseCase
	ProcurementUC   *appprocurement.UseCase
	WorkflowUC      *appprocurement.WorkflowUseCase
	POPDFUC         *appprocurement.PDFUseCase

	DefaultLeadTimeDays      int
	DefaultTargetDaysOfCover int
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	api := app.Group("/api")

	// Ledger de costos y consultas COGS
	cogs := api.Group("/cogs")
	cogsHandler := NewCOGSHandler(deps.CostingUC)
	cogs.Post("/", cogsHandler.CreateCostLot)
	cogs.Get("/:sku", cogsHandler.GetCOGS)

	// Stock, velocidad y recomendaciones de reposición
	inventory := api.Group("/inventory")
	inventoryHandler := NewInventoryHandler(
		deps.SnapshotUC, deps.ReplenishmentUC,
		deps.DefaultLeadTimeDays, deps.DefaultTargetDaysOfCover,
	)
	inventory.Get("/:sku", inventoryHandler.GetStock)
	inventory.Put("/:sku/snapshot", inventoryHandler.UpsertSnapshot)
	inventory.Put("/:sku/velocity", inventoryHandler.UpsertVelocity)
	inventory.Get("/:sku/recommendation", inventoryHandler.GetRecommendation)

	// Órdenes de compra
	pos := api.Group("/purchase-orders")
	poHandler := NewPurchaseOrderHandler(deps.ProcurementUC, deps.POPDFUC)
	pos.Post("/", poHandler.Create)
	pos.Get("/:id", poHandler.GetByID)
	pos.Patch("/:id/status", poHandler.Transition)
	pos.Get("/:id/pdf", poHandler.GetPDF)

	// Batches de intake reseller
	batches := api.Group("/workflow-batches")
	workflowHandler := NewWorkflowHandler(deps.WorkflowUC)
	batches.Post("/", workflowHandler.Create)
	batches.Get("/:id", workflowHandler.GetByID)
	batches.Patch("/:id/status", workflowHandler.Transition)
}
