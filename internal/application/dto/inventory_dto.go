package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// UpsertSnapshotRequest body para PUT /api/inventory/:sku/snapshot (sync
// externo de inventario). as_of manda: un snapshot que llega tarde con un
// as_of más viejo que el vigente se descarta.
type UpsertSnapshotRequest struct {
	AccountID string    `json:"account_id" validate:"required"`
	Location  string    `json:"location" validate:"required,oneof=fba_fbm prep_awd ordered"`
	Quantity  int64     `json:"quantity" validate:"min=0"`
	AsOf      time.Time `json:"as_of" validate:"required"`
}

// UpsertVelocityRequest body para PUT /api/inventory/:sku/velocity (feed
// externo de órdenes: unidades/día en ventana móvil).
type UpsertVelocityRequest struct {
	AccountID   string          `json:"account_id" validate:"required"`
	UnitsPerDay decimal.Decimal `json:"units_per_day"`
}

// StockResponse stock vigente de un SKU por ubicación.
type StockResponse struct {
	SKU     string `json:"sku"`
	FBAFBM  int64  `json:"fba_fbm"`
	PrepAWD int64  `json:"prep_awd"`
	Ordered int64  `json:"ordered"`
	Total   int64  `json:"total"`
}

// RecommendationResponse respuesta de GET /api/inventory/:sku/recommendation.
// days_of_stock_left null representa el sentinela "sin señal" (velocidad 0);
// en ese caso reason explica por qué la cantidad recomendada es 0.
type RecommendationResponse struct {
	SKU                 string           `json:"sku"`
	SalesVelocity       decimal.Decimal  `json:"sales_velocity"`
	DaysOfStockLeft     *decimal.Decimal `json:"days_of_stock_left"`
	DaysUntilNextOrder  *decimal.Decimal `json:"days_until_next_order"`
	RecommendedQuantity int64            `json:"recommended_quantity"`
	Urgency             string           `json:"urgency"`
	Reason              string           `json:"reason,omitempty"`
}
