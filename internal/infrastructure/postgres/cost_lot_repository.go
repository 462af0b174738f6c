package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.CostLotRepository = (*CostLotRepo)(nil)

// CostLotRepo ledger append-only sobre PostgreSQL (usable con pool o tx).
// La tabla cost_lots solo recibe INSERTs; no hay UPDATE ni DELETE en ningún
// camino de código, lo que hace las escrituras seguras bajo concurrencia sin
// más bloqueo que el insert atómico del motor.
type CostLotRepo struct {
	q Querier
}

// NewCostLotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCostLotRepository(q Querier) *CostLotRepo {
	return &CostLotRepo{q: q}
}

// Append persiste un lote nuevo.
func (r *CostLotRepo) Append(ctx context.Context, lot *entity.CostLot) error {
	query := `
		INSERT INTO cost_lots (id, account_id, sku, marketplace_id, batch_id, quantity, unit_cost, shipment_cost, purchase_date, cost_method, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	marketplaceID := nullable(lot.MarketplaceID)
	batchID := nullable(lot.BatchID)
	_, err := r.q.Exec(ctx, query,
		lot.ID, lot.AccountID, lot.SKU, marketplaceID, batchID,
		lot.Quantity, lot.UnitCost, lot.ShipmentCost,
		lot.PurchaseDate, string(lot.CostMethod), lot.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: cost lot %s", domain.ErrDuplicate, lot.ID)
		}
		return fmt.Errorf("append cost lot: %w", err)
	}
	return nil
}

// ListBySKU lotes de un SKU con purchase_date <= asOf, en orden de compra
// (empates por id para un orden total estable).
func (r *CostLotRepo) ListBySKU(ctx context.Context, accountID, sku string, asOf time.Time) ([]entity.CostLot, error) {
	query := `
		SELECT id, account_id, sku, marketplace_id, batch_id, quantity, unit_cost, shipment_cost, purchase_date, cost_method, created_at
		FROM cost_lots
		WHERE account_id = $1 AND sku = $2 AND purchase_date <= $3
		ORDER BY purchase_date ASC, id ASC`
	rows, err := r.q.Query(ctx, query, accountID, sku, asOf)
	if err != nil {
		return nil, fmt.Errorf("list cost lots: %w", err)
	}
	defer rows.Close()

	var lots []entity.CostLot
	for rows.Next() {
		var l entity.CostLot
		var marketplaceID, batchID *string
		var method string
		if err := rows.Scan(&l.ID, &l.AccountID, &l.SKU, &marketplaceID, &batchID,
			&l.Quantity, &l.UnitCost, &l.ShipmentCost, &l.PurchaseDate, &method, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan cost lot: %w", err)
		}
		if marketplaceID != nil {
			l.MarketplaceID = *marketplaceID
		}
		if batchID != nil {
			l.BatchID = *batchID
		}
		l.CostMethod = entity.CostMethod(method)
		lots = append(lots, l)
	}
	return lots, rows.Err()
}

// nullable convierte "" en NULL para columnas opcionales.
func nullable(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
