package repository

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// PurchaseOrderRepository persistencia de órdenes de compra y sus líneas.
type PurchaseOrderRepository interface {
	Create(ctx context.Context, po *entity.PurchaseOrder) error

	// GetByID devuelve la orden con líneas y envíos FBA vinculados; nil si no existe.
	GetByID(ctx context.Context, id string) (*entity.PurchaseOrder, error)

	// UpdateStatusVersioned cambia el estado con optimistic locking:
	// UPDATE ... WHERE id = $1 AND version = $2. Si ninguna fila coincide
	// devuelve domain.ErrConcurrencyConflict y el caller decide si reintenta.
	UpdateStatusVersioned(ctx context.Context, id string, status entity.POStatus, expectedVersion int64) error

	// CreateFBAShipment persiste el envío FBA creado al despachar la orden
	// y lo deja vinculado a la PO (relación por referencia).
	CreateFBAShipment(ctx context.Context, shipment *entity.FBAShipment) error
}
