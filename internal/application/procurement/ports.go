package procurement

import (
	"context"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que una transición de estado y sus
// efectos (lotes de costo, snapshots) se apliquen todo-o-nada.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		lotRepo repository.CostLotRepository,
		snapRepo repository.StockSnapshotRepository,
		poRepo repository.PurchaseOrderRepository,
		batchRepo repository.WorkflowBatchRepository,
	) error) error
}

// POPDFGenerator genera el PDF de una orden de compra para enviar al proveedor.
type POPDFGenerator interface {
	Generate(po *entity.PurchaseOrder) ([]byte, error)
}
