package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/Costeo-api/internal/application/procurement"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ procurement.TxRunner = (*TxRunner)(nil)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// Run inicia una transacción, ejecuta fn con repos atados a la tx y hace
// Commit o Rollback. Las transiciones de procura dependen de esto para que
// el cambio de estado, los lotes de costo y los snapshots sean todo-o-nada.
func (r *TxRunner) Run(ctx context.Context, fn func(
	lotRepo repository.CostLotRepository,
	snapRepo repository.StockSnapshotRepository,
	poRepo repository.PurchaseOrderRepository,
	batchRepo repository.WorkflowBatchRepository,
) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	lotRepo := NewCostLotRepository(tx)
	snapRepo := NewStockSnapshotRepository(tx)
	poRepo := NewPurchaseOrderRepository(tx)
	batchRepo := NewWorkflowBatchRepository(tx)

	if err := fn(lotRepo, snapRepo, poRepo, batchRepo); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}
