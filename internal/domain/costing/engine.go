package costing

import (
	"fmt"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// Request parámetros de una consulta COGS. BatchID solo aplica al método batch;
// PeriodStart/PeriodEnd solo al método time_period.
type Request struct {
	SKU         string
	Quantity    int64
	AsOf        time.Time
	Method      entity.CostMethod
	BatchID     string
	PeriodStart time.Time
	PeriodEnd   time.Time
}

// MarketplaceBreakdown subtotal de la consulta atribuido a un marketplace.
type MarketplaceBreakdown struct {
	MarketplaceID string
	Quantity      int64
	TotalCost     decimal.Decimal
}

// Result resultado de ComputeCOGS. Derivado, nunca persistido como fuente de verdad.
// Partial indica que los lotes disponibles hasta AsOf no cubren la cantidad pedida:
// el total se calculó con lo que había y el reporte debe mostrarlo como aproximado.
type Result struct {
	SKU             string
	Method          entity.CostMethod
	TotalQuantity   int64
	AverageUnitCost decimal.Decimal
	TotalCost       decimal.Decimal
	Partial         bool
	ByMarketplace   []MarketplaceBreakdown
}

// ComputeCOGS calcula el costo de ventas de quantity unidades de un SKU a una
// fecha, bajo el método indicado, consumiendo el historial de lotes recibido.
// Es una función pura: mismos lotes y misma Request producen el mismo Result,
// lo que la hace cacheable por (sku, asOf, method) — el historial anterior a
// un asOf fijo nunca cambia (los lotes son inmutables).
//
// El flete de cada lote se prorratea por unidad (ShipmentCost/Quantity) y se
// suma una sola vez por unidad consumida, en todos los métodos.
func ComputeCOGS(req Request, lots []entity.CostLot) (Result, error) {
	if req.Quantity <= 0 {
		return Result{}, fmt.Errorf("%w: quantity debe ser > 0", domain.ErrValidation)
	}

	usable := filterAsOf(lots, req.AsOf)

	switch req.Method {
	case entity.CostMethodWeightedAverage:
		return drawWeightedAverage(req, usable), nil
	case entity.CostMethodBatch:
		return computeBatch(req, usable)
	case entity.CostMethodTimePeriod:
		return computeTimePeriod(req, usable)
	default:
		return Result{}, fmt.Errorf("%w: método de costeo desconocido %q", domain.ErrValidation, req.Method)
	}
}

// filterAsOf descarta lotes posteriores a asOf y garantiza orden por
// purchaseDate ascendente (el ledger ya lo entrega así; esto protege a
// callers que armen la lista a mano, p. ej. en tests).
func filterAsOf(lots []entity.CostLot, asOf time.Time) []entity.CostLot {
	out := make([]entity.CostLot, 0, len(lots))
	for _, l := range lots {
		if !l.PurchaseDate.After(asOf) {
			out = append(out, l)
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		return out[i].PurchaseDate.Before(out[j].PurchaseDate)
	})
	return out
}

// drawWeightedAverage consume los lotes en orden de compra: de cada lote toma
// min(cantidadDelLote, pendiente) unidades a su costo unitario más flete
// prorrateado. El promedio resultante es el ponderado de las unidades consumidas.
func drawWeightedAverage(req Request, lots []entity.CostLot) Result {
	res := Result{SKU: req.SKU, Method: entity.CostMethodWeightedAverage}

	remaining := req.Quantity
	total := decimal.Zero
	byMarketplace := map[string]*MarketplaceBreakdown{}
	var order []string

	for _, lot := range lots {
		if remaining == 0 {
			break
		}
		take := lot.Quantity
		if take > remaining {
			take = remaining
		}
		perUnit := lot.UnitCost.Add(lot.ProratedShipmentPerUnit())
		cost := perUnit.Mul(decimal.NewFromInt(take))

		total = total.Add(cost)
		res.TotalQuantity += take
		remaining -= take

		mb, ok := byMarketplace[lot.MarketplaceID]
		if !ok {
			mb = &MarketplaceBreakdown{MarketplaceID: lot.MarketplaceID}
			byMarketplace[lot.MarketplaceID] = mb
			order = append(order, lot.MarketplaceID)
		}
		mb.Quantity += take
		mb.TotalCost = mb.TotalCost.Add(cost)
	}

	res.TotalCost = total
	res.Partial = res.TotalQuantity < req.Quantity
	if res.TotalQuantity > 0 {
		res.AverageUnitCost = total.Div(decimal.NewFromInt(res.TotalQuantity))
	}
	for _, id := range order {
		res.ByMarketplace = append(res.ByMarketplace, *byMarketplace[id])
	}
	return res
}

// computeBatch usa directamente el costo del lote identificado por BatchID.
func computeBatch(req Request, lots []entity.CostLot) (Result, error) {
	if req.BatchID == "" {
		return Result{}, fmt.Errorf("%w: el método batch requiere batch_id", domain.ErrValidation)
	}
	var lot *entity.CostLot
	for i := range lots {
		if lots[i].BatchID == req.BatchID {
			lot = &lots[i]
			break
		}
	}
	if lot == nil {
		return Result{}, fmt.Errorf("%w: batch_id %q para sku %q", domain.ErrBatchNotFound, req.BatchID, req.SKU)
	}

	consumed := req.Quantity
	if consumed > lot.Quantity {
		consumed = lot.Quantity
	}
	perUnit := lot.UnitCost.Add(lot.ProratedShipmentPerUnit())
	total := perUnit.Mul(decimal.NewFromInt(consumed))

	return Result{
		SKU:             req.SKU,
		Method:          entity.CostMethodBatch,
		TotalQuantity:   consumed,
		AverageUnitCost: perUnit,
		TotalCost:       total,
		Partial:         consumed < req.Quantity,
		ByMarketplace: []MarketplaceBreakdown{
			{MarketplaceID: lot.MarketplaceID, Quantity: consumed, TotalCost: total},
		},
	}, nil
}

// computeTimePeriod promedia (ponderado por cantidad) los lotes cuya fecha de
// compra cae en [PeriodStart, PeriodEnd]. Ventana vacía es un error explícito:
// el caller decide el fallback, el motor nunca asume un valor por defecto.
func computeTimePeriod(req Request, lots []entity.CostLot) (Result, error) {
	var window []entity.CostLot
	for _, l := range lots {
		if !l.PurchaseDate.Before(req.PeriodStart) && !l.PurchaseDate.After(req.PeriodEnd) {
			window = append(window, l)
		}
	}
	if len(window) == 0 {
		return Result{}, fmt.Errorf("%w: sku %q entre %s y %s", domain.ErrInsufficientData,
			req.SKU, req.PeriodStart.Format("2006-01-02"), req.PeriodEnd.Format("2006-01-02"))
	}

	available := int64(0)
	weighted := decimal.Zero
	for _, l := range window {
		available += l.Quantity
		perUnit := l.UnitCost.Add(l.ProratedShipmentPerUnit())
		weighted = weighted.Add(perUnit.Mul(decimal.NewFromInt(l.Quantity)))
	}
	avg := weighted.Div(decimal.NewFromInt(available))

	consumed := req.Quantity
	if consumed > available {
		consumed = available
	}

	res := Result{
		SKU:             req.SKU,
		Method:          entity.CostMethodTimePeriod,
		TotalQuantity:   consumed,
		AverageUnitCost: avg,
		TotalCost:       avg.Mul(decimal.NewFromInt(consumed)),
		Partial:         consumed < req.Quantity,
	}

	// Atribución por marketplace: unidades consumidas en orden de compra, al precio promedio.
	remaining := consumed
	byMarketplace := map[string]*MarketplaceBreakdown{}
	var order []string
	for _, lot := range window {
		if remaining == 0 {
			break
		}
		take := lot.Quantity
		if take > remaining {
			take = remaining
		}
		remaining -= take
		mb, ok := byMarketplace[lot.MarketplaceID]
		if !ok {
			mb = &MarketplaceBreakdown{MarketplaceID: lot.MarketplaceID}
			byMarketplace[lot.MarketplaceID] = mb
			order = append(order, lot.MarketplaceID)
		}
		mb.Quantity += take
		mb.TotalCost = mb.TotalCost.Add(avg.Mul(decimal.NewFromInt(take)))
	}
	for _, id := range order {
		res.ByMarketplace = append(res.ByMarketplace, *byMarketplace[id])
	}
	return res, nil
}
