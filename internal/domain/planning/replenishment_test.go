package planning_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/planning"
)

func input(fbaFBM, prepAWD, ordered int64, velocity float64, leadTime, cover int) planning.Input {
	return planning.Input{
		SKU:               "SKU-1",
		Stock:             entity.StockByLocation{FBAFBM: fbaFBM, PrepAWD: prepAWD, Ordered: ordered},
		Velocity:          decimal.NewFromFloat(velocity),
		HasVelocity:       velocity > 0,
		LeadTimeDays:      leadTime,
		TargetDaysOfCover: cover,
	}
}

// TestRecommend_EscenarioReferencia stock 50 (todo en fba_fbm), velocidad 5/día,
// lead time 10, cobertura 14:
//
//	daysOfStockLeft    = 50/5  = 10
//	daysUntilNextOrder = 10-10 = 0   → overdue
//	recommendedQty     = ceil(5*24 - 50) = 70
func TestRecommend_EscenarioReferencia(t *testing.T) {
	rec := planning.Recommend(input(50, 0, 0, 5, 10, 14), planning.DefaultTiers())

	require.NotNil(t, rec.DaysOfStockLeft)
	assert.True(t, rec.DaysOfStockLeft.Equal(decimal.NewFromInt(10)),
		"días de stock esperados 10, se obtuvo %s", rec.DaysOfStockLeft)
	require.NotNil(t, rec.DaysUntilNextOrder)
	assert.True(t, rec.DaysUntilNextOrder.IsZero())
	assert.Equal(t, int64(70), rec.RecommendedQuantity)
	assert.Equal(t, planning.UrgencyOverdue, rec.Urgency)
}

// TestRecommend_NuncaNegativa con stock de sobra la cantidad se fija en 0,
// jamás en un número negativo.
func TestRecommend_NuncaNegativa(t *testing.T) {
	rec := planning.Recommend(input(10_000, 0, 0, 2, 10, 14), planning.DefaultTiers())
	assert.Equal(t, int64(0), rec.RecommendedQuantity)
	assert.Equal(t, planning.UrgencyHealthy, rec.Urgency)
}

// TestRecommend_SinVelocidad velocidad 0 es "sin señal": cantidad 0 con motivo
// explícito y días de stock null — nunca una división por cero ni un infinito.
func TestRecommend_SinVelocidad(t *testing.T) {
	rec := planning.Recommend(input(50, 0, 0, 0, 10, 14), planning.DefaultTiers())

	assert.Nil(t, rec.DaysOfStockLeft, "sin velocidad no hay días de stock")
	assert.Nil(t, rec.DaysUntilNextOrder)
	assert.Equal(t, int64(0), rec.RecommendedQuantity)
	assert.Equal(t, planning.UrgencyNoSignal, rec.Urgency)
	assert.Equal(t, planning.ReasonInsufficientVelocity, rec.Reason)
}

// TestRecommend_DescuentaStockEnTransito lo pedido y lo que está en prep/AWD
// cuentan contra la cantidad recomendada: no se vuelve a pedir lo que ya viene.
func TestRecommend_DescuentaStockEnTransito(t *testing.T) {
	sinTransito := planning.Recommend(input(50, 0, 0, 5, 10, 14), planning.DefaultTiers())
	conTransito := planning.Recommend(input(50, 20, 50, 5, 10, 14), planning.DefaultTiers())

	assert.Equal(t, int64(70), sinTransito.RecommendedQuantity)
	assert.Equal(t, int64(0), conTransito.RecommendedQuantity,
		"50+20+50 = 120 en total cubre las 120 unidades del horizonte")
}

// TestRecommend_RedondeaHaciaArriba la cantidad se redondea siempre hacia
// arriba: mejor una unidad de más que quedarse corto.
func TestRecommend_RedondeaHaciaArriba(t *testing.T) {
	// 1.5/día * 24 días - 20 = 16, pero con velocidad 1.7: 40.8 - 20 = 20.8 → 21
	rec := planning.Recommend(input(20, 0, 0, 1.7, 10, 14), planning.DefaultTiers())
	assert.Equal(t, int64(21), rec.RecommendedQuantity)
}

// TestRecommend_ClasificacionUrgencia recorre los cuatro tiers por días hasta
// el próximo pedido, con los umbrales por defecto (urgente < 7, ok < 30).
func TestRecommend_ClasificacionUrgencia(t *testing.T) {
	cases := []struct {
		name    string
		stock   int64 // velocidad 1/día, lead time 10 → daysUntilOrder = stock - 10
		urgency planning.Urgency
	}{
		{"stock agotado antes del lead time", 5, planning.UrgencyOverdue},
		{"justo en el punto de pedido", 10, planning.UrgencyOverdue},
		{"dentro de la ventana urgente", 15, planning.UrgencyUrgent},
		{"dentro de la ventana ok", 30, planning.UrgencyOK},
		{"con holgura", 50, planning.UrgencyHealthy},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := planning.Recommend(input(tc.stock, 0, 0, 1, 10, 0), planning.DefaultTiers())
			assert.Equal(t, tc.urgency, rec.Urgency)
		})
	}
}

// TestRecommend_TiersConfigurables los umbrales son política por cuenta: con
// otros valores la misma situación cambia de tier.
func TestRecommend_TiersConfigurables(t *testing.T) {
	in := input(15, 0, 0, 1, 10, 0) // daysUntilOrder = 5

	porDefecto := planning.Recommend(in, planning.DefaultTiers())
	estricto := planning.Recommend(in, planning.Tiers{UrgentBelowDays: 3, OKBelowDays: 10})

	assert.Equal(t, planning.UrgencyUrgent, porDefecto.Urgency)
	assert.Equal(t, planning.UrgencyOK, estricto.Urgency)
}
