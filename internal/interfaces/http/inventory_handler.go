package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Costeo-api/internal/application/dto"
	appinventory "github.com/jhoicas/Costeo-api/internal/application/inventory"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// InventoryHandler maneja snapshots de stock, velocidad de ventas y
// recomendaciones de reposición.
type InventoryHandler struct {
	snapshots     *appinventory.SnapshotUseCase
	replenishment *appinventory.ReplenishmentUseCase

	defaultLeadTimeDays      int
	defaultTargetDaysOfCover int
}

// NewInventoryHandler construye el handler. Los valores por defecto de lead
// time y cobertura vienen de configuración.
func NewInventoryHandler(
	snapshots *appinventory.SnapshotUseCase,
	replenishment *appinventory.ReplenishmentUseCase,
	defaultLeadTimeDays, defaultTargetDaysOfCover int,
) *InventoryHandler {
	return &InventoryHandler{
		snapshots:                snapshots,
		replenishment:            replenishment,
		defaultLeadTimeDays:      defaultLeadTimeDays,
		defaultTargetDaysOfCover: defaultTargetDaysOfCover,
	}
}

// GetStock godoc
// @Summary      Stock vigente de un SKU por ubicación
// @Tags         inventory
// @Produce      json
// @Param        sku        path   string  true  "SKU"
// @Param        account_id query  string  true  "Cuenta del vendedor"
// @Success      200  {object}  dto.StockResponse
// @Router       /api/inventory/{sku} [get]
func (h *InventoryHandler) GetStock(c *fiber.Ctx) error {
	sku := c.Params("sku")
	accountID := c.Query("account_id")
	if accountID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "account_id es obligatorio"})
	}
	stock, err := h.snapshots.CurrentStock(c.Context(), accountID, sku)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.StockResponse{
		SKU:     sku,
		FBAFBM:  stock.FBAFBM,
		PrepAWD: stock.PrepAWD,
		Ordered: stock.Ordered,
		Total:   stock.Total(),
	})
}

// UpsertSnapshot godoc
// @Summary      Sincronizar snapshot de stock
// @Description  Reemplaza el snapshot vivo de (sku, location) si as_of es más
//
//	nuevo que el vigente. Un snapshot tardío se descarta sin error
//	(applied: false).
//
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        sku   path  string                     true  "SKU"
// @Param        body  body  dto.UpsertSnapshotRequest  true  "account_id, location, quantity >= 0, as_of"
// @Success      200  {object}  map[string]bool
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku}/snapshot [put]
func (h *InventoryHandler) UpsertSnapshot(c *fiber.Ctx) error {
	var in dto.UpsertSnapshotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}
	location, ok := entity.ParseStockLocation(in.Location)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "location debe ser fba_fbm, prep_awd u ordered"})
	}

	applied, err := h.snapshots.UpsertSnapshot(c.Context(), entity.StockSnapshot{
		AccountID: in.AccountID,
		SKU:       c.Params("sku"),
		Location:  location,
		Quantity:  in.Quantity,
		AsOf:      in.AsOf,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(fiber.Map{"applied": applied})
}

// UpsertVelocity godoc
// @Summary      Registrar velocidad de ventas de un SKU
// @Tags         inventory
// @Accept       json
// @Produce      json
// @Param        sku   path  string                     true  "SKU"
// @Param        body  body  dto.UpsertVelocityRequest  true  "account_id, units_per_day >= 0"
// @Success      204  "sin contenido"
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku}/velocity [put]
func (h *InventoryHandler) UpsertVelocity(c *fiber.Ctx) error {
	var in dto.UpsertVelocityRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}
	if err := h.snapshots.UpsertVelocity(c.Context(), in.AccountID, c.Params("sku"), in.UnitsPerDay); err != nil {
		return respondDomainError(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// GetRecommendation godoc
// @Summary      Recomendación de reposición de un SKU
// @Description  Sin dato de velocidad responde cantidad 0, urgency no_signal y
//
//	reason insufficient_velocity_data; days_of_stock_left es null.
//
// @Tags         inventory
// @Produce      json
// @Param        sku                  path   string  true   "SKU"
// @Param        account_id           query  string  true   "Cuenta del vendedor"
// @Param        lead_time_days       query  int     false  "Días de lead time del proveedor"
// @Param        target_days_of_cover query  int     false  "Días de cobertura objetivo"
// @Success      200  {object}  dto.RecommendationResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/{sku}/recommendation [get]
func (h *InventoryHandler) GetRecommendation(c *fiber.Ctx) error {
	sku := c.Params("sku")
	accountID := c.Query("account_id")
	if accountID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "account_id es obligatorio"})
	}
	leadTime := c.QueryInt("lead_time_days", h.defaultLeadTimeDays)
	cover := c.QueryInt("target_days_of_cover", h.defaultTargetDaysOfCover)

	rec, err := h.replenishment.Recommend(c.Context(), accountID, sku, leadTime, cover)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(dto.RecommendationResponse{
		SKU:                 rec.SKU,
		SalesVelocity:       rec.SalesVelocity,
		DaysOfStockLeft:     rec.DaysOfStockLeft,
		DaysUntilNextOrder:  rec.DaysUntilNextOrder,
		RecommendedQuantity: rec.RecommendedQuantity,
		Urgency:             string(rec.Urgency),
		Reason:              rec.Reason,
	})
}
