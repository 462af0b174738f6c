package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/application/dto"
	domaincosting "github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// COGSHandler maneja el ledger de costos y las consultas COGS.
type COGSHandler struct {
	uc *appcosting.UseCase
}

// NewCOGSHandler construye el handler.
func NewCOGSHandler(uc *appcosting.UseCase) *COGSHandler {
	return &COGSHandler{uc: uc}
}

// CreateCostLot godoc
// @Summary      Registrar lote de costo
// @Description  Crea un evento de compra/recepción inmutable. Las correcciones
//
//	se registran como lotes nuevos, nunca como mutaciones.
//
// @Tags         cogs
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateCostLotRequest  true  "sku, account_id, quantity > 0, unit_cost >= 0, purchase_date, cost_method"
// @Success      201   {object}  dto.CostLotResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/cogs [post]
func (h *COGSHandler) CreateCostLot(c *fiber.Ctx) error {
	var in dto.CreateCostLotRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	if err := validate.Struct(in); err != nil {
		return respondValidationError(c, err)
	}
	method, ok := entity.ParseCostMethod(in.CostMethod)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "cost_method desconocido"})
	}

	lot, err := h.uc.AppendLot(c.Context(), &entity.CostLot{
		AccountID:     in.AccountID,
		SKU:           in.SKU,
		MarketplaceID: in.MarketplaceID,
		BatchID:       in.BatchID,
		Quantity:      in.Quantity,
		UnitCost:      in.UnitCost,
		ShipmentCost:  in.ShipmentCost,
		PurchaseDate:  in.PurchaseDate,
		CostMethod:    method,
	})
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(toCostLotResponse(lot))
}

// GetCOGS godoc
// @Summary      Consultar COGS de un SKU
// @Description  Calcula el costo de ventas de quantity unidades a una fecha
//
//	bajo el método indicado. partial:true indica que los lotes no
//	cubren la cantidad pedida: la UI debe mostrarlo como warning.
//
// @Tags         cogs
// @Produce      json
// @Param        sku        path   string  true   "SKU"
// @Param        account_id query  string  true   "Cuenta del vendedor"
// @Param        quantity   query  int     true   "Unidades a costear"
// @Param        method     query  string  true   "weighted_average | batch | time_period"
// @Param        as_of      query  string  false  "RFC3339 o YYYY-MM-DD; por defecto ahora"
// @Param        batch_id   query  string  false  "Requerido para method=batch"
// @Param        start      query  string  false  "Inicio de ventana para time_period"
// @Param        end        query  string  false  "Fin de ventana para time_period"
// @Success      200  {object}  dto.COGSQueryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      422  {object}  dto.ErrorResponse
// @Router       /api/cogs/{sku} [get]
func (h *COGSHandler) GetCOGS(c *fiber.Ctx) error {
	sku := c.Params("sku")
	accountID := c.Query("account_id")
	if accountID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "account_id es obligatorio"})
	}
	quantity := int64(c.QueryInt("quantity"))
	method, ok := entity.ParseCostMethod(c.Query("method"))
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "method debe ser weighted_average, batch o time_period"})
	}

	asOf := time.Now()
	if raw := c.Query("as_of"); raw != "" {
		parsed, err := parseDate(raw)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "as_of inválido"})
		}
		asOf = parsed
	}

	req := domaincosting.Request{
		SKU:      sku,
		Quantity: quantity,
		AsOf:     asOf,
		Method:   method,
		BatchID:  c.Query("batch_id"),
	}
	if method == entity.CostMethodTimePeriod {
		start, errStart := parseDate(c.Query("start"))
		end, errEnd := parseDate(c.Query("end"))
		if errStart != nil || errEnd != nil {
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start y end son obligatorios para time_period"})
		}
		req.PeriodStart = start
		req.PeriodEnd = end
	}

	res, err := h.uc.ComputeCOGS(c.Context(), accountID, req)
	if err != nil {
		return respondDomainError(c, err)
	}
	return c.JSON(toCOGSResponse(res))
}

func toCostLotResponse(lot *entity.CostLot) dto.CostLotResponse {
	return dto.CostLotResponse{
		ID:            lot.ID,
		AccountID:     lot.AccountID,
		SKU:           lot.SKU,
		MarketplaceID: lot.MarketplaceID,
		BatchID:       lot.BatchID,
		Quantity:      lot.Quantity,
		UnitCost:      lot.UnitCost,
		ShipmentCost:  lot.ShipmentCost,
		PurchaseDate:  lot.PurchaseDate,
		CostMethod:    string(lot.CostMethod),
		CreatedAt:     lot.CreatedAt,
	}
}

func toCOGSResponse(res domaincosting.Result) dto.COGSQueryResponse {
	out := dto.COGSQueryResponse{
		SKU:             res.SKU,
		Method:          string(res.Method),
		TotalQuantity:   res.TotalQuantity,
		AverageUnitCost: res.AverageUnitCost,
		TotalCost:       res.TotalCost,
		Partial:         res.Partial,
		ByMarketplace:   make([]dto.MarketplaceBreakdownDTO, 0, len(res.ByMarketplace)),
	}
	for _, mb := range res.ByMarketplace {
		out.ByMarketplace = append(out.ByMarketplace, dto.MarketplaceBreakdownDTO{
			MarketplaceID: mb.MarketplaceID,
			Quantity:      mb.Quantity,
			TotalCost:     mb.TotalCost,
		})
	}
	return out
}

// parseDate acepta RFC3339 o fecha simple YYYY-MM-DD.
func parseDate(raw string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, raw); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", raw)
}
