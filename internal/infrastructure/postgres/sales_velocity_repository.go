package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.SalesVelocityRepository = (*SalesVelocityRepo)(nil)

// SalesVelocityRepo velocidad de ventas por SKU sobre PostgreSQL.
type SalesVelocityRepo struct {
	q Querier
}

// NewSalesVelocityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSalesVelocityRepository(q Querier) *SalesVelocityRepo {
	return &SalesVelocityRepo{q: q}
}

// Upsert inserta o actualiza la velocidad del SKU.
func (r *SalesVelocityRepo) Upsert(ctx context.Context, v *entity.SalesVelocity) error {
	query := `
		INSERT INTO sales_velocity (account_id, sku, units_per_day, updated_at)
		VALUES ($1, $2, $3, $4)
		ON CONFLICT (account_id, sku)
		DO UPDATE SET units_per_day = EXCLUDED.units_per_day, updated_at = EXCLUDED.updated_at`
	_, err := r.q.Exec(ctx, query, v.AccountID, v.SKU, v.UnitsPerDay, v.UpdatedAt)
	if err != nil {
		return fmt.Errorf("upsert sales velocity: %w", err)
	}
	return nil
}

// Get devuelve nil (sin error) si el SKU no tiene dato de velocidad.
func (r *SalesVelocityRepo) Get(ctx context.Context, accountID, sku string) (*entity.SalesVelocity, error) {
	query := `
		SELECT account_id, sku, units_per_day, updated_at
		FROM sales_velocity
		WHERE account_id = $1 AND sku = $2`
	var v entity.SalesVelocity
	err := r.q.QueryRow(ctx, query, accountID, sku).Scan(
		&v.AccountID, &v.SKU, &v.UnitsPerDay, &v.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get sales velocity: %w", err)
	}
	return &v, nil
}
