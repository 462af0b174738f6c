package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateCostLotRequest body para POST /api/cogs. Crea un lote de costo
// (evento de compra/recepción). quantity > 0 y unit_cost >= 0 se validan
// en el caso de uso; shipment_cost por defecto es 0.
type CreateCostLotRequest struct {
	AccountID     string          `json:"account_id" validate:"required"`
	SKU           string          `json:"sku" validate:"required"`
	MarketplaceID string          `json:"marketplace_id,omitempty"`
	BatchID       string          `json:"batch_id,omitempty"`
	Quantity      int64           `json:"quantity" validate:"required"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ShipmentCost  decimal.Decimal `json:"shipment_cost"`
	PurchaseDate  time.Time       `json:"purchase_date" validate:"required"`
	CostMethod    string          `json:"cost_method" validate:"required,oneof=weighted_average batch time_period"`
}

// CostLotResponse lote persistido.
type CostLotResponse struct {
	ID            string          `json:"id"`
	AccountID     string          `json:"account_id"`
	SKU           string          `json:"sku"`
	MarketplaceID string          `json:"marketplace_id,omitempty"`
	BatchID       string          `json:"batch_id,omitempty"`
	Quantity      int64           `json:"quantity"`
	UnitCost      decimal.Decimal `json:"unit_cost"`
	ShipmentCost  decimal.Decimal `json:"shipment_cost"`
	PurchaseDate  time.Time       `json:"purchase_date"`
	CostMethod    string          `json:"cost_method"`
	CreatedAt     time.Time       `json:"created_at"`
}

// MarketplaceBreakdownDTO subtotal COGS por marketplace.
type MarketplaceBreakdownDTO struct {
	MarketplaceID string          `json:"marketplace_id"`
	Quantity      int64           `json:"quantity"`
	TotalCost     decimal.Decimal `json:"total_cost"`
}

// COGSQueryResponse respuesta de GET /api/cogs/:sku. Partial en true indica
// que los lotes no cubren la cantidad pedida y el total es aproximado: la UI
// debe mostrarlo como warning visible, nunca ocultarlo.
type COGSQueryResponse struct {
	SKU             string                    `json:"sku"`
	Method          string                    `json:"method"`
	TotalQuantity   int64                     `json:"total_quantity"`
	AverageUnitCost decimal.Decimal           `json:"average_unit_cost"`
	TotalCost       decimal.Decimal           `json:"total_cost"`
	Partial         bool                      `json:"partial"`
	ByMarketplace   []MarketplaceBreakdownDTO `json:"by_marketplace"`
}
