package inventory

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// SnapshotUseCase sincronización de snapshots de stock y velocidad de ventas
// desde los feeds externos (inventario Amazon, órdenes).
type SnapshotUseCase struct {
	snapRepo     repository.StockSnapshotRepository
	velocityRepo repository.SalesVelocityRepository
}

// NewSnapshotUseCase construye el caso de uso.
func NewSnapshotUseCase(
	snapRepo repository.StockSnapshotRepository,
	velocityRepo repository.SalesVelocityRepository,
) *SnapshotUseCase {
	return &SnapshotUseCase{snapRepo: snapRepo, velocityRepo: velocityRepo}
}

// UpsertSnapshot reemplaza el snapshot vivo de (sku, location) si asOf es más
// nuevo que el almacenado. Devuelve false si el snapshot llegó tarde y fue
// descartado (no es error: el sync externo reintenta con datos frescos).
// Ante un conflicto de concurrencia reintenta una vez automáticamente; la
// condición por asOf hace el reintento seguro.
func (uc *SnapshotUseCase) UpsertSnapshot(ctx context.Context, snap entity.StockSnapshot) (bool, error) {
	if snap.AccountID == "" || snap.SKU == "" {
		return false, fmt.Errorf("%w: account_id y sku son obligatorios", domain.ErrValidation)
	}
	if snap.Quantity < 0 {
		return false, fmt.Errorf("%w: quantity no puede ser negativa", domain.ErrValidation)
	}
	if snap.AsOf.IsZero() {
		return false, fmt.Errorf("%w: as_of es obligatorio", domain.ErrValidation)
	}

	applied, err := uc.snapRepo.UpsertIfNewer(ctx, snap)
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		applied, err = uc.snapRepo.UpsertIfNewer(ctx, snap)
	}
	return applied, err
}

// CurrentStock agrega los snapshots vivos del SKU (ubicación ausente = 0).
func (uc *SnapshotUseCase) CurrentStock(ctx context.Context, accountID, sku string) (entity.StockByLocation, error) {
	return uc.snapRepo.CurrentStock(ctx, accountID, sku)
}

// UpsertVelocity registra la velocidad de ventas (unidades/día) calculada por
// el colaborador externo de ingesta de órdenes.
func (uc *SnapshotUseCase) UpsertVelocity(ctx context.Context, accountID, sku string, unitsPerDay decimal.Decimal) error {
	if accountID == "" || sku == "" {
		return fmt.Errorf("%w: account_id y sku son obligatorios", domain.ErrValidation)
	}
	if unitsPerDay.IsNegative() {
		return fmt.Errorf("%w: units_per_day no puede ser negativa", domain.ErrValidation)
	}
	return uc.velocityRepo.Upsert(ctx, &entity.SalesVelocity{
		AccountID:   accountID,
		SKU:         sku,
		UnitsPerDay: unitsPerDay,
		UpdatedAt:   time.Now(),
	})
}
