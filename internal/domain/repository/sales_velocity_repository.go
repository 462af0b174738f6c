package repository

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// SalesVelocityRepository velocidad de ventas por SKU, alimentada por el feed
// externo de órdenes. El servicio no la calcula, solo la almacena y consulta.
type SalesVelocityRepository interface {
	Upsert(ctx context.Context, v *entity.SalesVelocity) error

	// Get devuelve nil (sin error) si no hay dato para el SKU; el planner lo
	// traduce a "insufficient_velocity_data", nunca a un valor inventado.
	Get(ctx context.Context, accountID, sku string) (*entity.SalesVelocity, error)
}
