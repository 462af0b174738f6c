package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// POLineRequest línea de una orden de compra nueva.
type POLineRequest struct {
	SKU      string          `json:"sku" validate:"required"`
	Quantity int64           `json:"quantity" validate:"required,min=1"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// CreatePurchaseOrderRequest body para POST /api/purchase-orders. Nace en draft.
type CreatePurchaseOrderRequest struct {
	AccountID        string          `json:"account_id" validate:"required"`
	PONumber         string          `json:"po_number" validate:"required"`
	SupplierID       string          `json:"supplier_id" validate:"required"`
	Lines            []POLineRequest `json:"lines" validate:"required,min=1,dive"`
	EstimatedArrival *time.Time      `json:"estimated_arrival,omitempty"`
}

// TransitionRequest body para PATCH .../status (órdenes de compra y batches).
// version es la versión leída por el cliente: si ya no coincide, la API
// responde 409 y el cliente recarga y decide si reintenta.
type TransitionRequest struct {
	Status  string `json:"status" validate:"required"`
	Version int64  `json:"version" validate:"min=0"`
}

// POLineResponse línea persistida.
type POLineResponse struct {
	SKU      string          `json:"sku"`
	Quantity int64           `json:"quantity"`
	UnitCost decimal.Decimal `json:"unit_cost"`
}

// PurchaseOrderResponse orden de compra con líneas y envíos FBA vinculados.
type PurchaseOrderResponse struct {
	ID                   string           `json:"id"`
	AccountID            string           `json:"account_id"`
	PONumber             string           `json:"po_number"`
	SupplierID           string           `json:"supplier_id"`
	Lines                []POLineResponse `json:"lines"`
	Status               string           `json:"status"`
	EstimatedArrival     *time.Time       `json:"estimated_arrival,omitempty"`
	LinkedFBAShipmentIDs []string         `json:"linked_fba_shipment_ids"`
	TotalCost            decimal.Decimal  `json:"total_cost"`
	Version              int64            `json:"version"`
	CreatedAt            time.Time        `json:"created_at"`
	UpdatedAt            time.Time        `json:"updated_at"`
}
