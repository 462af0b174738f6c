package costing_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	"github.com/jhoicas/Costeo-api/internal/domain"
	domaincosting "github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria
// ──────────────────────────────────────────────────────────────────────────────

// fakeLotRepo ledger en memoria con la misma semántica que el adaptador real:
// append-only, ListBySKU filtra por cuenta, sku y asOf.
type fakeLotRepo struct {
	lots []entity.CostLot
}

func (r *fakeLotRepo) Append(_ context.Context, lot *entity.CostLot) error {
	r.lots = append(r.lots, *lot)
	return nil
}

func (r *fakeLotRepo) ListBySKU(_ context.Context, accountID, sku string, asOf time.Time) ([]entity.CostLot, error) {
	var out []entity.CostLot
	for _, l := range r.lots {
		if l.AccountID == accountID && l.SKU == sku && !l.PurchaseDate.After(asOf) {
			out = append(out, l)
		}
	}
	return out, nil
}

// fakeCache cuenta hits y misses para verificar el flujo de caché.
type fakeCache struct {
	store map[string]domaincosting.Result
	gets  int
	sets  int
}

func newFakeCache() *fakeCache {
	return &fakeCache{store: map[string]domaincosting.Result{}}
}

func (c *fakeCache) Get(_ context.Context, key string) (*domaincosting.Result, bool) {
	c.gets++
	res, ok := c.store[key]
	if !ok {
		return nil, false
	}
	return &res, true
}

func (c *fakeCache) Set(_ context.Context, key string, res domaincosting.Result) {
	c.sets++
	c.store[key] = res
}

func validLot() *entity.CostLot {
	return &entity.CostLot{
		AccountID:    "acc-1",
		SKU:          "SKU-1",
		Quantity:     100,
		UnitCost:     decimal.NewFromInt(5),
		PurchaseDate: time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC),
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// AppendLot
// ──────────────────────────────────────────────────────────────────────────────

func TestAppendLot_CompletaDefaults(t *testing.T) {
	repo := &fakeLotRepo{}
	uc := appcosting.NewUseCase(repo, nil)

	lot, err := uc.AppendLot(context.Background(), validLot())
	require.NoError(t, err)

	assert.NotEmpty(t, lot.ID, "debe asignarse un id")
	assert.False(t, lot.CreatedAt.IsZero())
	assert.Equal(t, entity.CostMethodWeightedAverage, lot.CostMethod,
		"el método por defecto es weighted_average")
	assert.Len(t, repo.lots, 1)
}

func TestAppendLot_RechazaEntradasInvalidas(t *testing.T) {
	uc := appcosting.NewUseCase(&fakeLotRepo{}, nil)

	cases := []struct {
		name   string
		mutate func(*entity.CostLot)
	}{
		{"sin account_id", func(l *entity.CostLot) { l.AccountID = "" }},
		{"sin sku", func(l *entity.CostLot) { l.SKU = "" }},
		{"quantity cero", func(l *entity.CostLot) { l.Quantity = 0 }},
		{"quantity negativa", func(l *entity.CostLot) { l.Quantity = -10 }},
		{"unit_cost negativo", func(l *entity.CostLot) { l.UnitCost = decimal.NewFromInt(-1) }},
		{"shipment_cost negativo", func(l *entity.CostLot) { l.ShipmentCost = decimal.NewFromInt(-1) }},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			lot := validLot()
			tc.mutate(lot)
			_, err := uc.AppendLot(context.Background(), lot)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrValidation)
		})
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ComputeCOGS + caché
// ──────────────────────────────────────────────────────────────────────────────

func TestComputeCOGS_SinCacheConsultaElLedger(t *testing.T) {
	repo := &fakeLotRepo{}
	uc := appcosting.NewUseCase(repo, nil)

	_, err := uc.AppendLot(context.Background(), validLot())
	require.NoError(t, err)

	res, err := uc.ComputeCOGS(context.Background(), "acc-1", domaincosting.Request{
		SKU:      "SKU-1",
		Quantity: 40,
		AsOf:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Method:   entity.CostMethodWeightedAverage,
	})
	require.NoError(t, err)
	assert.True(t, res.TotalCost.Equal(decimal.NewFromInt(200)))
}

func TestComputeCOGS_SegundaConsultaSaleDelCache(t *testing.T) {
	repo := &fakeLotRepo{}
	cache := newFakeCache()
	uc := appcosting.NewUseCase(repo, cache)

	_, err := uc.AppendLot(context.Background(), validLot())
	require.NoError(t, err)

	req := domaincosting.Request{
		SKU:      "SKU-1",
		Quantity: 40,
		AsOf:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Method:   entity.CostMethodWeightedAverage,
	}

	res1, err := uc.ComputeCOGS(context.Background(), "acc-1", req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "la primera consulta puebla el caché")

	res2, err := uc.ComputeCOGS(context.Background(), "acc-1", req)
	require.NoError(t, err)
	assert.Equal(t, 1, cache.sets, "la segunda consulta no vuelve a escribir")
	assert.Equal(t, 2, cache.gets)
	assert.True(t, res1.TotalCost.Equal(res2.TotalCost))
}

func TestComputeCOGS_ConsultasDistintasNoCompartenClave(t *testing.T) {
	repo := &fakeLotRepo{}
	cache := newFakeCache()
	uc := appcosting.NewUseCase(repo, cache)

	_, err := uc.AppendLot(context.Background(), validLot())
	require.NoError(t, err)

	base := domaincosting.Request{
		SKU:      "SKU-1",
		Quantity: 40,
		AsOf:     time.Date(2024, 6, 1, 0, 0, 0, 0, time.UTC),
		Method:   entity.CostMethodWeightedAverage,
	}
	otra := base
	otra.Quantity = 50

	_, err = uc.ComputeCOGS(context.Background(), "acc-1", base)
	require.NoError(t, err)
	_, err = uc.ComputeCOGS(context.Background(), "acc-1", otra)
	require.NoError(t, err)

	assert.Equal(t, 2, cache.sets, "cantidades distintas son claves distintas")
}
