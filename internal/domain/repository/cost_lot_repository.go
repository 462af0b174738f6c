package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// CostLotRepository ledger append-only de lotes de costo. No expone update ni
// delete: las correcciones son lotes nuevos, lo que garantiza que las
// consultas COGS a una fecha sean siempre reproducibles.
type CostLotRepository interface {
	// Append persiste un lote nuevo. Seguro bajo escritores concurrentes:
	// es un INSERT puro, sin read-modify-write.
	Append(ctx context.Context, lot *entity.CostLot) error

	// ListBySKU devuelve los lotes de un SKU con purchaseDate <= asOf,
	// ordenados por purchaseDate ascendente (empates por id).
	ListBySKU(ctx context.Context, accountID, sku string, asOf time.Time) ([]entity.CostLot, error)
}
