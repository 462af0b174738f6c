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

var _ repository.WorkflowBatchRepository = (*WorkflowBatchRepo)(nil)

// WorkflowBatchRepo batches de intake reseller sobre PostgreSQL.
type WorkflowBatchRepo struct {
	q Querier
}

// NewWorkflowBatchRepository construye el adaptador. Pasar pool o tx (Querier).
func NewWorkflowBatchRepository(q Querier) *WorkflowBatchRepo {
	return &WorkflowBatchRepo{q: q}
}

// Create persiste el batch y sus líneas de producto (el batch es dueño de ellas).
func (r *WorkflowBatchRepo) Create(ctx context.Context, batch *entity.WorkflowBatch) error {
	query := `
		INSERT INTO workflow_batches (id, account_id, batch_number, fulfillment_type, status, version, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	_, err := r.q.Exec(ctx, query,
		batch.ID, batch.AccountID, batch.BatchNumber, string(batch.FulfillmentType),
		string(batch.Status), batch.Version, batch.CreatedAt, batch.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("%w: batch_number %s", domain.ErrDuplicate, batch.BatchNumber)
		}
		return fmt.Errorf("create workflow batch: %w", err)
	}

	productQuery := `
		INSERT INTO workflow_batch_products (id, batch_id, sku, asin, barcode, condition, quantity, cost_of_goods)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`
	for _, p := range batch.Products {
		if _, err := r.q.Exec(ctx, productQuery,
			p.ID, batch.ID, p.SKU, nullable(p.ASIN), nullable(p.Barcode),
			p.Condition, p.Quantity, p.CostOfGoods,
		); err != nil {
			return fmt.Errorf("create batch product: %w", err)
		}
	}
	return nil
}

// GetByID batch con sus productos; nil si no existe.
func (r *WorkflowBatchRepo) GetByID(ctx context.Context, id string) (*entity.WorkflowBatch, error) {
	query := `
		SELECT id, account_id, batch_number, fulfillment_type, status, version, created_at, updated_at
		FROM workflow_batches WHERE id = $1`
	var b entity.WorkflowBatch
	var fulfillment, status string
	err := r.q.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.AccountID, &b.BatchNumber, &fulfillment, &status,
		&b.Version, &b.CreatedAt, &b.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get workflow batch: %w", err)
	}
	b.FulfillmentType = entity.FulfillmentType(fulfillment)
	b.Status = entity.BatchStatus(status)

	productQuery := `
		SELECT id, sku, asin, barcode, condition, quantity, cost_of_goods
		FROM workflow_batch_products WHERE batch_id = $1 ORDER BY id`
	rows, err := r.q.Query(ctx, productQuery, id)
	if err != nil {
		return nil, fmt.Errorf("get batch products: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var p entity.BatchProduct
		var asin, barcode *string
		if err := rows.Scan(&p.ID, &p.SKU, &asin, &barcode, &p.Condition, &p.Quantity, &p.CostOfGoods); err != nil {
			return nil, fmt.Errorf("scan batch product: %w", err)
		}
		if asin != nil {
			p.ASIN = *asin
		}
		if barcode != nil {
			p.Barcode = *barcode
		}
		b.Products = append(b.Products, p)
	}
	return &b, rows.Err()
}

// UpdateStatusVersioned misma semántica de optimistic locking que las órdenes.
func (r *WorkflowBatchRepo) UpdateStatusVersioned(ctx context.Context, id string, status entity.BatchStatus, expectedVersion int64) error {
	query := `
		UPDATE workflow_batches
		SET status = $2, version = version + 1, updated_at = now()
		WHERE id = $1 AND version = $3`
	tag, err := r.q.Exec(ctx, query, id, string(status), expectedVersion)
	if err != nil {
		return fmt.Errorf("update workflow batch status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("%w: batch %s versión %d", domain.ErrConcurrencyConflict, id, expectedVersion)
	}
	return nil
}
