package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesVelocity unidades vendidas por día (promedio móvil) de un SKU.
// La calcula un colaborador externo a partir de las órdenes; aquí solo se almacena.
type SalesVelocity struct {
	AccountID   string
	SKU         string
	UnitsPerDay decimal.Decimal
	UpdatedAt   time.Time
}
