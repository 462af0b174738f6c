package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CostMethod método de costeo soportado por el motor COGS.
// Enum cerrado: el dispatch dinámico por string queda confinado a ParseCostMethod.
type CostMethod string

const (
	CostMethodWeightedAverage CostMethod = "weighted_average"
	CostMethodBatch           CostMethod = "batch"
	CostMethodTimePeriod      CostMethod = "time_period"
)

// ParseCostMethod valida y convierte el string recibido por la API.
// Devuelve false si no corresponde a ningún método conocido.
func ParseCostMethod(s string) (CostMethod, bool) {
	switch CostMethod(s) {
	case CostMethodWeightedAverage, CostMethodBatch, CostMethodTimePeriod:
		return CostMethod(s), true
	}
	return "", false
}

// CostLot representa un evento de compra/recepción de un SKU con su costo propio.
// Inmutable una vez creado: las correcciones se registran como lotes nuevos,
// nunca como mutaciones, para que las consultas COGS a una fecha sean reproducibles.
type CostLot struct {
	ID            string
	AccountID     string
	SKU           string
	MarketplaceID string // opcional: amazon.com, amazon.ca, etc.
	BatchID       string // opcional: lo referencia el método de costeo "batch"
	Quantity      int64  // unidades recibidas, > 0
	UnitCost      decimal.Decimal
	ShipmentCost  decimal.Decimal // flete total del lote; se prorratea por unidad
	PurchaseDate  time.Time
	CostMethod    CostMethod
	CreatedAt     time.Time
}

// ProratedShipmentPerUnit devuelve el flete por unidad del lote (ShipmentCost / Quantity).
// Lote sin cantidad válida prorratea 0.
func (l CostLot) ProratedShipmentPerUnit() decimal.Decimal {
	if l.Quantity <= 0 || l.ShipmentCost.IsZero() {
		return decimal.Zero
	}
	return l.ShipmentCost.Div(decimal.NewFromInt(l.Quantity))
}
