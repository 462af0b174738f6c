package costing

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/domain"
	domaincosting "github.com/jhoicas/Costeo-api/internal/domain/costing"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// COGSCache caché de resultados ComputeCOGS por clave derivada de la consulta.
// Es seguro cachear porque el historial de lotes anterior a un asOf fijo no
// cambia (los lotes son inmutables). Una implementación nil-safe sobre Redis
// vive en infrastructure/cache; pasar nil desactiva el caché.
type COGSCache interface {
	Get(ctx context.Context, key string) (*domaincosting.Result, bool)
	Set(ctx context.Context, key string, res domaincosting.Result)
}

// UseCase ledger de costos + consultas COGS.
type UseCase struct {
	lotRepo repository.CostLotRepository
	cache   COGSCache
}

// NewUseCase construye el caso de uso. cache puede ser nil (sin caché).
func NewUseCase(lotRepo repository.CostLotRepository, cache COGSCache) *UseCase {
	return &UseCase{lotRepo: lotRepo, cache: cache}
}

// AppendLot valida y persiste un lote nuevo. Rechaza quantity <= 0 y
// unit_cost < 0 con ErrValidation. El lote queda inmutable: correcciones
// posteriores se registran como lotes nuevos.
func (uc *UseCase) AppendLot(ctx context.Context, lot *entity.CostLot) (*entity.CostLot, error) {
	if lot.AccountID == "" || lot.SKU == "" {
		return nil, fmt.Errorf("%w: account_id y sku son obligatorios", domain.ErrValidation)
	}
	if lot.Quantity <= 0 {
		return nil, fmt.Errorf("%w: quantity debe ser > 0", domain.ErrValidation)
	}
	if lot.UnitCost.IsNegative() {
		return nil, fmt.Errorf("%w: unit_cost no puede ser negativo", domain.ErrValidation)
	}
	if lot.ShipmentCost.IsNegative() {
		return nil, fmt.Errorf("%w: shipment_cost no puede ser negativo", domain.ErrValidation)
	}
	if lot.CostMethod == "" {
		lot.CostMethod = entity.CostMethodWeightedAverage
	}
	if lot.ID == "" {
		lot.ID = uuid.New().String()
	}
	if lot.CreatedAt.IsZero() {
		lot.CreatedAt = time.Now()
	}
	if err := uc.lotRepo.Append(ctx, lot); err != nil {
		return nil, err
	}
	return lot, nil
}

// LotsForSKU historial de lotes de un SKU hasta asOf, en orden de compra.
func (uc *UseCase) LotsForSKU(ctx context.Context, accountID, sku string, asOf time.Time) ([]entity.CostLot, error) {
	return uc.lotRepo.ListBySKU(ctx, accountID, sku, asOf)
}

// ComputeCOGS resuelve una consulta COGS contra el ledger, pasando por el
// caché cuando está configurado. Lectura pura: corre a cualquier concurrencia.
func (uc *UseCase) ComputeCOGS(ctx context.Context, accountID string, req domaincosting.Request) (domaincosting.Result, error) {
	key := cacheKey(accountID, req)
	if uc.cache != nil {
		if cached, ok := uc.cache.Get(ctx, key); ok {
			return *cached, nil
		}
	}

	lots, err := uc.lotRepo.ListBySKU(ctx, accountID, req.SKU, req.AsOf)
	if err != nil {
		return domaincosting.Result{}, err
	}
	res, err := domaincosting.ComputeCOGS(req, lots)
	if err != nil {
		return domaincosting.Result{}, err
	}

	if uc.cache != nil {
		uc.cache.Set(ctx, key, res)
	}
	return res, nil
}

func cacheKey(accountID string, req domaincosting.Request) string {
	return fmt.Sprintf("cogs:%s:%s:%d:%s:%d:%s:%d:%d",
		accountID, req.SKU, req.AsOf.Unix(), req.Method, req.Quantity,
		req.BatchID, req.PeriodStart.Unix(), req.PeriodEnd.Unix())
}
