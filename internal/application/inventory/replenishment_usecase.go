package inventory

import (
	"context"
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/planning"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// ReplenishmentUseCase combina snapshots de stock con la velocidad de ventas
// externa para producir la recomendación de reposición de un SKU.
type ReplenishmentUseCase struct {
	snapRepo     repository.StockSnapshotRepository
	velocityRepo repository.SalesVelocityRepository
	tiers        planning.Tiers
}

// NewReplenishmentUseCase construye el caso de uso. Los tiers de urgencia
// vienen de configuración (umbralUrgente/umbralOK en días).
func NewReplenishmentUseCase(
	snapRepo repository.StockSnapshotRepository,
	velocityRepo repository.SalesVelocityRepository,
	tiers planning.Tiers,
) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{snapRepo: snapRepo, velocityRepo: velocityRepo, tiers: tiers}
}

// Recommend calcula días de stock, próximo pedido y cantidad recomendada.
// Sin dato de velocidad devuelve cantidad 0 con reason
// "insufficient_velocity_data" — jamás adivina ni divide por cero.
func (uc *ReplenishmentUseCase) Recommend(
	ctx context.Context,
	accountID, sku string,
	leadTimeDays, targetDaysOfCover int,
) (planning.Recommendation, error) {
	if leadTimeDays < 0 || targetDaysOfCover < 0 {
		return planning.Recommendation{}, fmt.Errorf(
			"%w: lead_time_days y target_days_of_cover no pueden ser negativos", domain.ErrValidation)
	}

	stock, err := uc.snapRepo.CurrentStock(ctx, accountID, sku)
	if err != nil {
		return planning.Recommendation{}, err
	}

	in := planning.Input{
		SKU:               sku,
		Stock:             stock,
		LeadTimeDays:      leadTimeDays,
		TargetDaysOfCover: targetDaysOfCover,
	}

	velocity, err := uc.velocityRepo.Get(ctx, accountID, sku)
	if err != nil {
		return planning.Recommendation{}, err
	}
	if velocity != nil {
		in.Velocity = velocity.UnitsPerDay
		in.HasVelocity = velocity.UnitsPerDay.GreaterThan(decimal.Zero)
	}

	return planning.Recommend(in, uc.tiers), nil
}
