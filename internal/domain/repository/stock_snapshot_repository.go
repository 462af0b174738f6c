package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
)

// StockSnapshotRepository snapshots vivos de stock por (account, sku, location)
// con histórico de los superados.
type StockSnapshotRepository interface {
	// UpsertIfNewer reemplaza el snapshot vivo solo si snap.AsOf es más nuevo
	// que el almacenado (last-writer-wins por asOf, no por orden de llegada).
	// Devuelve false si el snapshot llegó tarde y fue descartado.
	// El snapshot anterior se archiva en el histórico.
	UpsertIfNewer(ctx context.Context, snap entity.StockSnapshot) (bool, error)

	// Get snapshot vivo de una ubicación; nil si no existe.
	Get(ctx context.Context, accountID, sku string, location entity.StockLocation) (*entity.StockSnapshot, error)

	// CurrentStock agrega los snapshots vivos de las tres ubicaciones.
	// Ubicación sin snapshot cuenta como 0.
	CurrentStock(ctx context.Context, accountID, sku string) (entity.StockByLocation, error)

	// ApplyDelta suma delta (puede ser negativo) a la cantidad viva de la
	// ubicación, creando el snapshot si no existe. Usado por las transiciones
	// de procura, que mueven stock en términos relativos.
	ApplyDelta(ctx context.Context, accountID, sku string, location entity.StockLocation, delta int64, asOf time.Time) error
}
