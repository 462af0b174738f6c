package planning

import (
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// Urgency tier de urgencia de reposición que muestra la tabla de inventario.
type Urgency string

const (
	UrgencyOverdue  Urgency = "overdue"
	UrgencyUrgent   Urgency = "urgent"
	UrgencyOK       Urgency = "ok"
	UrgencyHealthy  Urgency = "healthy"
	UrgencyNoSignal Urgency = "no_signal" // sin velocidad de ventas, no hay señal de reorden
)

// ReasonInsufficientVelocity motivo devuelto cuando no hay dato de velocidad:
// se recomienda cantidad 0 en lugar de adivinar.
const ReasonInsufficientVelocity = "insufficient_velocity_data"

// Tiers umbrales (en días de stock hasta el punto de pedido) para clasificar
// la urgencia. Son política de negocio, no constantes: cada cuenta los ajusta
// por configuración. overdue (<= 0 días) es fijo por definición.
type Tiers struct {
	UrgentBelowDays int // por defecto 7
	OKBelowDays     int // por defecto 30; >= OKBelowDays es healthy
}

// DefaultTiers umbrales por defecto si la configuración no los define.
func DefaultTiers() Tiers {
	return Tiers{UrgentBelowDays: 7, OKBelowDays: 30}
}

// Input datos de entrada del planner para un SKU. Velocity viene de un feed
// externo (unidades/día); HasVelocity distingue "velocidad cero" de "sin dato".
type Input struct {
	SKU               string
	Stock             entity.StockByLocation
	Velocity          decimal.Decimal
	HasVelocity       bool
	LeadTimeDays      int
	TargetDaysOfCover int
}

// Recommendation resultado del planner para un SKU. DaysOfStockLeft nil
// representa el sentinela "infinito / sin señal" (velocidad 0): nunca NaN,
// nunca división por cero.
type Recommendation struct {
	SKU                 string
	SalesVelocity       decimal.Decimal
	DaysOfStockLeft     *decimal.Decimal
	DaysUntilNextOrder  *decimal.Decimal
	RecommendedQuantity int64
	Urgency             Urgency
	Reason              string
}

// Recommend calcula días de stock restantes, fecha implícita del próximo
// pedido y cantidad recomendada:
//
//	daysOfStockLeft    = stockFBAFBM / velocity            (nil si velocity = 0)
//	daysUntilNextOrder = daysOfStockLeft - leadTimeDays    (<= 0: pedir ya)
//	recommendedQty     = max(0, ceil(velocity*(lead+cover) - stockTotal))
//
// El stock total incluye prep/AWD y lo ya pedido, para no recomendar unidades
// que ya vienen en camino. La cantidad jamás es negativa.
func Recommend(in Input, tiers Tiers) Recommendation {
	rec := Recommendation{SKU: in.SKU, SalesVelocity: in.Velocity}

	if !in.HasVelocity || in.Velocity.LessThanOrEqual(decimal.Zero) {
		rec.Urgency = UrgencyNoSignal
		rec.Reason = ReasonInsufficientVelocity
		return rec
	}

	days := decimal.NewFromInt(in.Stock.FBAFBM).Div(in.Velocity)
	rec.DaysOfStockLeft = &days

	untilOrder := days.Sub(decimal.NewFromInt(int64(in.LeadTimeDays)))
	rec.DaysUntilNextOrder = &untilOrder

	horizon := decimal.NewFromInt(int64(in.LeadTimeDays + in.TargetDaysOfCover))
	needed := in.Velocity.Mul(horizon).Sub(decimal.NewFromInt(in.Stock.Total()))
	if qty := needed.Ceil().IntPart(); qty > 0 {
		rec.RecommendedQuantity = qty
	}

	rec.Urgency = classify(untilOrder, tiers)
	return rec
}

func classify(daysUntilOrder decimal.Decimal, tiers Tiers) Urgency {
	switch {
	case daysUntilOrder.LessThanOrEqual(decimal.Zero):
		return UrgencyOverdue
	case daysUntilOrder.LessThan(decimal.NewFromInt(int64(tiers.UrgentBelowDays))):
		return UrgencyUrgent
	case daysUntilOrder.LessThan(decimal.NewFromInt(int64(tiers.OKBelowDays))):
		return UrgencyOK
	default:
		return UrgencyHealthy
	}
}
