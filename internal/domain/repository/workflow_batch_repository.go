package repository

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// WorkflowBatchRepository persistencia de batches de intake reseller.
// El batch es dueño de sus líneas de producto: se crean con él.
type WorkflowBatchRepository interface {
	Create(ctx context.Context, batch *entity.WorkflowBatch) error

	GetByID(ctx context.Context, id string) (*entity.WorkflowBatch, error)

	// UpdateStatusVersioned misma semántica de optimistic locking que las
	// órdenes de compra.
	UpdateStatusVersioned(ctx context.Context, id string, status entity.BatchStatus, expectedVersion int64) error
}
