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

// UseCase ciclo de vida de órdenes de compra: creación y transiciones de
// estado con sus efectos sobre el ledger de costos y los snapshots de stock.
type UseCase struct {
	txRunner TxRunner
	poRepo   repository.PurchaseOrderRepository
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner TxRunner, poRepo repository.PurchaseOrderRepository) *UseCase {
	return &UseCase{txRunner: txRunner, poRepo: poRepo}
}

// CreatePurchaseOrder persiste una orden nueva en estado draft.
func (uc *UseCase) CreatePurchaseOrder(ctx context.Context, po *entity.PurchaseOrder) (*entity.PurchaseOrder, error) {
	if po.AccountID == "" || po.PONumber == "" || po.SupplierID == "" {
		return nil, fmt.Errorf("%w: account_id, po_number y supplier_id son obligatorios", domain.ErrValidation)
	}
	if len(po.Lines) == 0 {
		return nil, fmt.Errorf("%w: la orden requiere al menos una línea", domain.ErrValidation)
	}
	for _, l := range po.Lines {
		if l.SKU == "" || l.Quantity <= 0 || l.UnitCost.IsNegative() {
			return nil, fmt.Errorf("%w: línea con sku vacío, quantity <= 0 o unit_cost negativo", domain.ErrValidation)
		}
	}
	now := time.Now()
	po.ID = uuid.New().String()
	po.Status = entity.POStatusDraft
	po.Version = 1
	po.CreatedAt = now
	po.UpdatedAt = now
	if err := uc.poRepo.Create(ctx, po); err != nil {
		return nil, err
	}
	return po, nil
}

// GetPurchaseOrder orden con líneas y envíos vinculados.
func (uc *UseCase) GetPurchaseOrder(ctx context.Context, id string) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, id)
	}
	return po, nil
}

// Transition aplica una transición de estado a la orden, de forma atómica con
// sus efectos:
//
//	draft   → ordered:  suma las líneas al snapshot "ordered"
//	ordered → shipped:  crea y vincula un envío FBA
//	shipped → received: escribe un CostLot por línea, mueve ordered → fba_fbm
//	* no terminal → cancelled: libera lo pedido si ya contaba como "ordered"
//
// La fila de la orden se actualiza con optimistic locking (version): dos
// transiciones concurrentes desde el mismo estado no pueden ganar ambas. Ante
// ErrConcurrencyConflict el caller recarga y decide si reintenta (la semántica
// de reintento depende del negocio, no se reintenta aquí).
func (uc *UseCase) Transition(ctx context.Context, poID string, target entity.POStatus, expectedVersion int64) (*entity.PurchaseOrder, error) {
	po, err := uc.poRepo.GetByID(ctx, poID)
	if err != nil {
		return nil, err
	}
	if po == nil {
		return nil, fmt.Errorf("%w: orden de compra %s", domain.ErrNotFound, poID)
	}
	if err := domainproc.ValidateTransitionPO(po.Status, target); err != nil {
		return nil, err
	}
	if po.Version != expectedVersion {
		return nil, fmt.Errorf("%w: orden %s versión %d, se esperaba %d",
			domain.ErrConcurrencyConflict, poID, po.Version, expectedVersion)
	}

	now := time.Now()
	err = uc.txRunner.Run(ctx, func(
		lotRepo repository.CostLotRepository,
		snapRepo repository.StockSnapshotRepository,
		poRepo repository.PurchaseOrderRepository,
		_ repository.WorkflowBatchRepository,
	) error {
		// El UPDATE condicional por versión va primero: si otra transición
		// ganó, la tx aborta sin tocar snapshots ni ledger.
		if err := poRepo.UpdateStatusVersioned(ctx, po.ID, target, expectedVersion); err != nil {
			return err
		}

		switch target {
		case entity.POStatusOrdered:
			for _, l := range po.Lines {
				if err := snapRepo.ApplyDelta(ctx, po.AccountID, l.SKU, entity.LocationOrdered, l.Quantity, now); err != nil {
					return err
				}
			}

		case entity.POStatusShipped:
			shipment := &entity.FBAShipment{
				ID:              uuid.New().String(),
				PurchaseOrderID: po.ID,
				ShipmentNumber:  fmt.Sprintf("FBA-%s-%d", po.PONumber, now.Unix()),
				CreatedAt:       now,
			}
			if err := poRepo.CreateFBAShipment(ctx, shipment); err != nil {
				return err
			}

		case entity.POStatusReceived:
			for _, l := range po.Lines {
				lot := &entity.CostLot{
					ID:           uuid.New().String(),
					AccountID:    po.AccountID,
					SKU:          l.SKU,
					BatchID:      po.PONumber,
					Quantity:     l.Quantity,
					UnitCost:     l.UnitCost,
					PurchaseDate: now,
					CostMethod:   entity.CostMethodWeightedAverage,
					CreatedAt:    now,
				}
				if err := lotRepo.Append(ctx, lot); err != nil {
					return err
				}
				if err := snapRepo.ApplyDelta(ctx, po.AccountID, l.SKU, entity.LocationOrdered, -l.Quantity, now); err != nil {
					return err
				}
				if err := snapRepo.ApplyDelta(ctx, po.AccountID, l.SKU, entity.LocationFBAFBM, l.Quantity, now); err != nil {
					return err
				}
			}

		case entity.POStatusCancelled:
			// Solo hay stock "ordered" reservado si la orden pasó por ordered.
			if po.Status == entity.POStatusOrdered || po.Status == entity.POStatusShipped {
				for _, l := range po.Lines {
					if err := snapRepo.ApplyDelta(ctx, po.AccountID, l.SKU, entity.LocationOrdered, -l.Quantity, now); err != nil {
						return err
					}
				}
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	return uc.poRepo.GetByID(ctx, po.ID)
}
