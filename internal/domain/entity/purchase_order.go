package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// POStatus estado de una orden de compra dentro del ciclo de procura.
type POStatus string

const (
	POStatusDraft     POStatus = "draft"
	POStatusOrdered   POStatus = "ordered"
	POStatusShipped   POStatus = "shipped"
	POStatusReceived  POStatus = "received"  // terminal
	POStatusCancelled POStatus = "cancelled" // terminal, alcanzable desde cualquier no-terminal
)

// ParsePOStatus valida el string recibido por la API.
func ParsePOStatus(s string) (POStatus, bool) {
	switch POStatus(s) {
	case POStatusDraft, POStatusOrdered, POStatusShipped, POStatusReceived, POStatusCancelled:
		return POStatus(s), true
	}
	return "", false
}

// PurchaseOrderLine línea de una orden de compra (SKU, cantidad y costo pactado).
type PurchaseOrderLine struct {
	SKU      string
	Quantity int64
	UnitCost decimal.Decimal
}

// PurchaseOrder orden de compra a un proveedor. Version soporta optimistic
// locking: dos transiciones concurrentes desde el mismo estado no pueden
// tener éxito ambas.
type PurchaseOrder struct {
	ID                   string
	AccountID            string
	PONumber             string
	SupplierID           string
	Lines                []PurchaseOrderLine
	Status               POStatus
	EstimatedArrival     *time.Time
	LinkedFBAShipmentIDs []string // relación por referencia, no ownership
	Version              int64
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// TotalCost suma quantity * unitCost de todas las líneas.
func (po PurchaseOrder) TotalCost() decimal.Decimal {
	total := decimal.Zero
	for _, l := range po.Lines {
		total = total.Add(l.UnitCost.Mul(decimal.NewFromInt(l.Quantity)))
	}
	return total
}

// FBAShipment envío FBA creado al despachar una orden de compra.
type FBAShipment struct {
	ID              string
	PurchaseOrderID string
	ShipmentNumber  string
	CreatedAt       time.Time
}
