package http_test

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appcosting "github.com/jhoicas/Costeo-api/internal/application/costing"
	appinventory "github.com/jhoicas/Costeo-api/internal/application/inventory"
	appprocurement "github.com/jhoicas/Costeo-api/internal/application/procurement"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/planning"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
	apphttp "github.com/jhoicas/Costeo-api/internal/interfaces/http"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes en memoria (solo lo que estas rutas tocan)
// ──────────────────────────────────────────────────────────────────────────────

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

type snapKey struct {
	account, sku string
	location     entity.StockLocation
}

type fakeSnapRepo struct {
	qty map[snapKey]int64
}

func (r *fakeSnapRepo) UpsertIfNewer(_ context.Context, snap entity.StockSnapshot) (bool, error) {
	r.qty[snapKey{snap.AccountID, snap.SKU, snap.Location}] = snap.Quantity
	return true, nil
}

func (r *fakeSnapRepo) Get(_ context.Context, accountID, sku string, location entity.StockLocation) (*entity.StockSnapshot, error) {
	q, ok := r.qty[snapKey{accountID, sku, location}]
	if !ok {
		return nil, nil
	}
	return &entity.StockSnapshot{AccountID: accountID, SKU: sku, Location: location, Quantity: q}, nil
}

func (r *fakeSnapRepo) CurrentStock(_ context.Context, accountID, sku string) (entity.StockByLocation, error) {
	return entity.StockByLocation{
		FBAFBM:  r.qty[snapKey{accountID, sku, entity.LocationFBAFBM}],
		PrepAWD: r.qty[snapKey{accountID, sku, entity.LocationPrepAWD}],
		Ordered: r.qty[snapKey{accountID, sku, entity.LocationOrdered}],
	}, nil
}

func (r *fakeSnapRepo) ApplyDelta(_ context.Context, accountID, sku string, location entity.StockLocation, delta int64, _ time.Time) error {
	r.qty[snapKey{accountID, sku, location}] += delta
	return nil
}

type fakeVelocityRepo struct {
	data map[string]entity.SalesVelocity
}

func (r *fakeVelocityRepo) Upsert(_ context.Context, v *entity.SalesVelocity) error {
	r.data[v.AccountID+"/"+v.SKU] = *v
	return nil
}

func (r *fakeVelocityRepo) Get(_ context.Context, accountID, sku string) (*entity.SalesVelocity, error) {
	if v, ok := r.data[accountID+"/"+sku]; ok {
		return &v, nil
	}
	return nil, nil
}

// buildTestApp arma la app Fiber con los casos de uso sobre fakes en memoria.
// Las rutas de procura no se registran: estas pruebas cubren COGS e inventario.
func buildTestApp(lotRepo repository.CostLotRepository, snapRepo repository.StockSnapshotRepository, velocityRepo repository.SalesVelocityRepository) *fiber.App {
	app := fiber.New()
	apphttp.Router(app, apphttp.RouterDeps{
		CostingUC:                appcosting.NewUseCase(lotRepo, nil),
		SnapshotUC:               appinventory.NewSnapshotUseCase(snapRepo, velocityRepo),
		ReplenishmentUC:          appinventory.NewReplenishmentUseCase(snapRepo, velocityRepo, planning.DefaultTiers()),
		ProcurementUC:            appprocurement.NewUseCase(nil, nil),
		WorkflowUC:               appprocurement.NewWorkflowUseCase(nil, nil),
		POPDFUC:                  appprocurement.NewPDFUseCase(nil, nil),
		DefaultLeadTimeDays:      14,
		DefaultTargetDaysOfCover: 30,
	})
	return app
}

func doJSON(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var payload map[string]any
	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, &payload))
	}
	return resp, payload
}

// ──────────────────────────────────────────────────────────────────────────────
// POST /api/cogs + GET /api/cogs/:sku
// ──────────────────────────────────────────────────────────────────────────────

func TestCOGS_CrearLoteYConsultar(t *testing.T) {
	app := buildTestApp(&fakeLotRepo{}, &fakeSnapRepo{qty: map[snapKey]int64{}}, &fakeVelocityRepo{data: map[string]entity.SalesVelocity{}})

	resp, _ := doJSON(t, app, http.MethodPost, "/api/cogs/", `{
		"account_id": "acc-1", "sku": "SKU-1", "quantity": 100,
		"unit_cost": "5", "purchase_date": "2024-01-01T00:00:00Z",
		"cost_method": "weighted_average"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, _ = doJSON(t, app, http.MethodPost, "/api/cogs/", `{
		"account_id": "acc-1", "sku": "SKU-1", "quantity": 50,
		"unit_cost": "6", "purchase_date": "2024-02-01T00:00:00Z",
		"cost_method": "weighted_average"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, payload := doJSON(t, app, http.MethodGet,
		"/api/cogs/SKU-1?account_id=acc-1&quantity=120&method=weighted_average&as_of=2024-06-01", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "620", payload["total_cost"], "100*5 + 20*6 = 620")
	assert.Equal(t, false, payload["partial"])
}

func TestCOGS_ParcialCuandoFaltanLotes(t *testing.T) {
	app := buildTestApp(&fakeLotRepo{}, &fakeSnapRepo{qty: map[snapKey]int64{}}, &fakeVelocityRepo{data: map[string]entity.SalesVelocity{}})

	resp, _ := doJSON(t, app, http.MethodPost, "/api/cogs/", `{
		"account_id": "acc-1", "sku": "SKU-1", "quantity": 50,
		"unit_cost": "5", "purchase_date": "2024-01-01T00:00:00Z",
		"cost_method": "weighted_average"
	}`)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	resp, payload := doJSON(t, app, http.MethodGet,
		"/api/cogs/SKU-1?account_id=acc-1&quantity=120&method=weighted_average", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["partial"], "cobertura incompleta responde 200 con partial")
}

func TestCOGS_ValidacionDeRequest(t *testing.T) {
	app := buildTestApp(&fakeLotRepo{}, &fakeSnapRepo{qty: map[snapKey]int64{}}, &fakeVelocityRepo{data: map[string]entity.SalesVelocity{}})

	// quantity <= 0 en el body
	resp, payload := doJSON(t, app, http.MethodPost, "/api/cogs/", `{
		"account_id": "acc-1", "sku": "SKU-1", "quantity": 0,
		"unit_cost": "5", "purchase_date": "2024-01-01T00:00:00Z",
		"cost_method": "weighted_average"
	}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", payload["code"])

	// método desconocido en la consulta
	resp, payload = doJSON(t, app, http.MethodGet,
		"/api/cogs/SKU-1?account_id=acc-1&quantity=10&method=fifo", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", payload["code"])

	// sin account_id
	resp, _ = doJSON(t, app, http.MethodGet,
		"/api/cogs/SKU-1?quantity=10&method=weighted_average", "")
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCOGS_BatchInexistenteEs404(t *testing.T) {
	app := buildTestApp(&fakeLotRepo{}, &fakeSnapRepo{qty: map[snapKey]int64{}}, &fakeVelocityRepo{data: map[string]entity.SalesVelocity{}})

	resp, payload := doJSON(t, app, http.MethodGet,
		"/api/cogs/SKU-1?account_id=acc-1&quantity=10&method=batch&batch_id=PO-X", "")
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "BATCH_NOT_FOUND", payload["code"])
}

// ──────────────────────────────────────────────────────────────────────────────
// Inventario y recomendación
// ──────────────────────────────────────────────────────────────────────────────

func TestInventario_SnapshotYRecomendacion(t *testing.T) {
	velocityRepo := &fakeVelocityRepo{data: map[string]entity.SalesVelocity{}}
	velocityRepo.data["acc-1/SKU-1"] = entity.SalesVelocity{
		AccountID: "acc-1", SKU: "SKU-1", UnitsPerDay: decimal.NewFromInt(5),
	}
	app := buildTestApp(&fakeLotRepo{}, &fakeSnapRepo{qty: map[snapKey]int64{}}, velocityRepo)

	resp, payload := doJSON(t, app, http.MethodPut, "/api/inventory/SKU-1/snapshot", `{
		"account_id": "acc-1", "location": "fba_fbm", "quantity": 50,
		"as_of": "2024-06-01T00:00:00Z"
	}`)
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, payload["applied"])

	resp, payload = doJSON(t, app, http.MethodGet,
		"/api/inventory/SKU-1/recommendation?account_id=acc-1&lead_time_days=10&target_days_of_cover=14", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, float64(70), payload["recommended_quantity"])
	assert.Equal(t, "overdue", payload["urgency"])
}

// TestInventario_RecomendacionSinVelocidad days_of_stock_left viaja como null
// y el motivo explica la cantidad 0.
func TestInventario_RecomendacionSinVelocidad(t *testing.T) {
	app := buildTestApp(&fakeLotRepo{}, &fakeSnapRepo{qty: map[snapKey]int64{}}, &fakeVelocityRepo{data: map[string]entity.SalesVelocity{}})

	resp, payload := doJSON(t, app, http.MethodGet,
		"/api/inventory/SKU-NUEVO/recommendation?account_id=acc-1", "")
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Nil(t, payload["days_of_stock_left"])
	assert.Equal(t, "no_signal", payload["urgency"])
	assert.Equal(t, "insufficient_velocity_data", payload["reason"])
	assert.Equal(t, float64(0), payload["recommended_quantity"])
}

func TestInventario_UbicacionInvalida(t *testing.T) {
	app := buildTestApp(&fakeLotRepo{}, &fakeSnapRepo{qty: map[snapKey]int64{}}, &fakeVelocityRepo{data: map[string]entity.SalesVelocity{}})

	resp, payload := doJSON(t, app, http.MethodPut, "/api/inventory/SKU-1/snapshot", `{
		"account_id": "acc-1", "location": "bodega-x", "quantity": 10,
		"as_of": "2024-06-01T00:00:00Z"
	}`)
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "VALIDATION", payload["code"])
}
