package entity

import "time"

// StockLocation ubicación lógica del stock de un vendedor Amazon.
type StockLocation string

const (
	LocationFBAFBM  StockLocation = "fba_fbm"  // en bodegas de Amazon o del vendedor, vendible
	LocationPrepAWD StockLocation = "prep_awd" // en prep center o AWD, aún no vendible
	LocationOrdered StockLocation = "ordered"  // pedido al proveedor, en tránsito
)

// ParseStockLocation valida el string recibido por la API o el sync externo.
func ParseStockLocation(s string) (StockLocation, bool) {
	switch StockLocation(s) {
	case LocationFBAFBM, LocationPrepAWD, LocationOrdered:
		return StockLocation(s), true
	}
	return "", false
}

// StockSnapshot cantidad vigente de un SKU en una ubicación, con su marca de tiempo.
// A lo sumo un snapshot vivo por (accountID, sku, location); los superados
// se archivan en el histórico para análisis de tendencia.
type StockSnapshot struct {
	AccountID string
	SKU       string
	Location  StockLocation
	Quantity  int64
	AsOf      time.Time
}

// StockByLocation agregado de los snapshots vivos de un SKU.
// Ubicación sin snapshot cuenta como 0, no es error.
type StockByLocation struct {
	FBAFBM  int64
	PrepAWD int64
	Ordered int64
}

// Total stock en todas las ubicaciones (incluye lo pedido en tránsito).
func (s StockByLocation) Total() int64 {
	return s.FBAFBM + s.PrepAWD + s.Ordered
}
