package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.PurchaseOrderRepository = (*PurchaseOrderRepo)(nil)

// PurchaseOrderRepo órdenes de compra sobre PostgreSQL (usable con pool o tx).
type PurchaseOrderRepo struct {
	q Querier
}

// NewPurchaseOrderRepository construye el adaptador. Pasar pool o tx (Querier).
func NewPurchaseOrderRepository(q Querier) *PurchaseOrderRepo {
	return &PurchaseOrderRepo{q: q}
}

// Create persiste la orden y sus líneas.
func (r *PurchaseOrderRepo) Create(ctx context.Context, po *entity.PurchaseOrder) error {
	query := `
		INSERT INTO purchase_orders (id, account_id, po_number, supplier_id, status, estimated_arrival, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		po.ID, po.AccountID, po.PONumber, po.SupplierID, string(po.Status),
		po.EstimatedArrival, po.Version, po.CreatedAt, po.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: po_number %s", domain.ErrDuplicate, po.PONumber)
		}
		return fmt.Errorf("create purchase order: %w", err)
	}

	lineQuery := `
		INSERT INTO purchase_order_lines (po_id, line_no, sku, quantity, unit_cost)
		VALUES ($1, $2, $3, $4, $5)`
	for i, l := range po.Lines {
		if _, err := r.q.Exec(ctx, lineQuery, po.ID, i+1, l.SKU, l.Quantity, l.UnitCost); err != nil {
			return fmt.Errorf("create purchase order line: %w", err)
		}
	}
	return nil
}

// GetByID orden con líneas y envíos FBA vinculados; nil si no existe.
func (r *PurchaseOrderRepo) GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	query := `
		SELECT id, account_id, po_number, supplier_id, status, estimated_arrival, version, created_at, updated_at
		FROM purchase_orders WHERE id = $1`
	var po entity.PurchaseOrder
	var status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&po.ID, &po.AccountID, &po.PONumber, &po.SupplierID, &status,
		&po.EstimatedArrival, &po.Version, &po.CreatedAt, &po.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get purchase order: %w", err)
	}
	po.Status = entity.POStatus(status)

	lineQuery := `
		SELECT sku, quantity, unit_cost
		FROM purchase_order_lines WHERE po_id = $1 ORDER BY line_no`
	rows, err := r.q.Query(ctx, lineQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get purchase order lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.PurchaseOrderLine
		if err := rows.Scan(&l.SKU, &l.Quantity, &l.UnitCost); err != nil {
			return nil, fmt.Errorf("scan purchase order line: %w", err)
		}
		po.Lines = append(po.Lines, l)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	shipQuery := `SELECT id FROM fba_shipments WHERE po_id = $1 ORDER BY created_at`
	shipRows, err := r.q.Query(ctx, shipQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get linked shipments: %w", err)
	}
	defer shipRows.Close()
	for shipRows.Next() {
		var shipmentID string
		if err := shipRows.Scan(&shipmentID); err != nil {
			return nil, fmt.Errorf("scan shipment id: %w", err)
		}
		po.LinkedFBAShipmentIDs = append(po.LinkedFBAShipmentIDs, shipmentID)
	}
	return &po, shipRows.Err()
}

// UpdateStatusVersioned cambia el estado con optimistic locking. Cero filas
// afectadas significa que la versión ya no coincide (o la orden no existe):
// otra transición ganó y esta debe abortar.
func (r *PurchaseOrderRepo) UpdateStatusVersioned(ctx context.Context, id string, status entity.POStatus, expectedVersion int64) error {
	query := `
		UPDATE purchase_orders
		SET status = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3`
	tag, err := r.q.Exec(ctx, query, id, string(status), expectedVersion)
	if err != nil {
		return fmt.Errorf("update purchase order status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: orden %s versión %d", domain.ErrConcurrencyConflict, id, expectedVersion)
	}
	return nil
}

// CreateFBAShipment persiste el envío vinculado a la orden.
func (r *PurchaseOrderRepo) CreateFBAShipment(ctx context.Context, shipment *entity.FBAShipment) error {
	query := `
		INSERT INTO fba_shipments (id, po_id, shipment_number, created_at)
		VALUES ($1, $2, $3, $4)`
	_, err := r.q.Exec(ctx, query, shipment.ID, shipment.PurchaseOrderID, shipment.ShipmentNumber, shipment.CreatedAt)
	if err != nil {
		return fmt.Errorf("create fba shipment: %w", err)
	}
	return nil
}
