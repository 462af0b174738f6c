package procurement

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/Costeo-api/internal/domain"
	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	domainproc "github.com/jhoicas/Costeo-api/internal/domain/procurement"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// WorkflowUseCase pipeline de intake reseller: batches de productos escaneados
// que al completarse se convierten en lotes de costo y stock vendible.
type WorkflowUseCase struct {
	txRunner  TxRunner
	batchRepo repository.WorkflowBatchRepository
}

// NewWorkflowUseCase construye el caso de uso.
func NewWorkflowUseCase(txRunner TxRunner, batchRepo repository.WorkflowBatchRepository) *WorkflowUseCase {
	return &WorkflowUseCase{txRunner: txRunner, batchRepo: batchRepo}
}

// CreateBatch persiste un batch nuevo en draft con sus líneas de producto.
func (uc *WorkflowUseCase) CreateBatch(ctx context.Context, batch *entity.WorkflowBatch) (*entity.WorkflowBatch, error) {
	if batch.AccountID == "" || batch.BatchNumber == "" {
		return nil, fmt.Errorf("%w: account_id y batch_number son obligatorios", domain.ErrValidation)
	}
	if batch.FulfillmentType != entity.FulfillmentFBA && batch.FulfillmentType != entity.FulfillmentFBM {
		return nil, fmt.Errorf("%w: fulfillment_type debe ser FBA o FBM", domain.ErrValidation)
	}
	if len(batch.Products) == 0 {
		return nil, fmt.Errorf("%w: el batch requiere al menos un producto", domain.ErrValidation)
	}
	for i := range batch.Products {
		p := &batch.Products[i]
		if p.SKU == "" || p.Quantity <= 0 || p.CostOfGoods.IsNegative() {
			return nil, fmt.Errorf("%w: producto con sku vacío, quantity <= 0 o cost_of_goods negativo", domain.ErrValidation)
		}
		if p.ID == "" {
			p.ID = uuid.New().String()
		}
	}
	now := time.Now()
	batch.ID = uuid.New().String()
	batch.Status = entity.BatchStatusDraft
	batch.Version = 1
	batch.CreatedAt = now
	batch.UpdatedAt = now
	if err := uc.batchRepo.Create(ctx, batch); err != nil {
		return nil, err
	}
	return batch, nil
}

// GetBatch batch con sus productos.
func (uc *WorkflowUseCase) GetBatch(ctx context.Context, id string) (*entity.WorkflowBatch, error) {
	batch, err := uc.batchRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: batch %s", domain.ErrNotFound, id)
	}
	return batch, nil
}

// TransitionBatch aplica una transición al batch. Al completarse, cada
// producto genera un CostLot (método batch, identificado por el número de
// batch) y suma su cantidad al stock fba_fbm — la misma semántica de
// recepción que una orden de compra, en una sola transacción.
func (uc *WorkflowUseCase) TransitionBatch(ctx context.Context, batchID string, target entity.BatchStatus, expectedVersion int64) (*entity.WorkflowBatch, error) {
	batch, err := uc.batchRepo.GetByID(ctx, batchID)
	if err != nil {
		return nil, err
	}
	if batch == nil {
		return nil, fmt.Errorf("%w: batch %s", domain.ErrNotFound, batchID)
	}
	if err := domainproc.ValidateTransitionBatch(batch.Status, target); err != nil {
		return nil, err
	}
	if batch.Version != expectedVersion {
		return nil, fmt.Errorf("%w: batch %s versión %d, se esperaba %d",
			domain.ErrConcurrencyConflict, batchID, batch.Version, expectedVersion)
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.CostLotRepository,
		snapRepo repository.StockSnapshotRepository,
		_ repository.PurchaseOrderRepository,
		batchRepo repository.WorkflowBatchRepository,
	) error {
		if err := batchRepo.UpdateStatusVersioned(ctx, batch.ID, target, expectedVersion); err != nil {
			return err
		}
		if target != entity.BatchStatusCompleted {
			return nil
		}
		for _, p := range batch.Products {
			lot := &entity.CostLot{
				ID:           uuid.New().String(),
				AccountID:    batch.AccountID,
				SKU:          p.SKU,
				BatchID:      batch.BatchNumber,
				Quantity:     p.Quantity,
				UnitCost:     p.CostOfGoods,
				PurchaseDate: now,
				CostMethod:   entity.CostMethodBatch,
				CreatedAt:    now,
			}
			if err := lotRepo.Append(ctx, lot); err != nil {
				return err
			}
			if err := snapRepo.ApplyDelta(ctx, batch.AccountID, p.SKU, entity.LocationFBAFBM, p.Quantity, now); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.batchRepo.GetByID(ctx, batch.ID)
}
