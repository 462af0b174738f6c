package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Costeo-api/internal/domain/entity"
	"github.com/jhoicas/Costeo-api/internal/domain/repository"
)

var _ repository.StockSnapshotRepository = (*StockSnapshotRepo)(nil)

// StockSnapshotRepo snapshots vivos + histórico sobre PostgreSQL.
// El write condicional por as_of implementa el last-writer-wins por marca de
// tiempo: un snapshot rezagado del sync externo nunca pisa uno más nuevo.
type StockSnapshotRepo struct {
	q Querier
}

// NewStockSnapshotRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockSnapshotRepository(q Querier) *StockSnapshotRepo {
	return &StockSnapshotRepo{q: q}
}

// UpsertIfNewer archiva el snapshot vigente (si el nuevo es más nuevo) y lo
// reemplaza con un upsert condicional: el UPDATE solo aplica cuando
// as_of almacenado < as_of entrante. Cero filas afectadas = llegó tarde.
func (r *StockSnapshotRepo) UpsertIfNewer(ctx context.Context, snap entity.StockSnapshot) (bool, error) {
	archive := `
		INSERT INTO stock_snapshot_history (account_id, sku, location, quantity, as_of, archived_at)
		SELECT account_id, sku, location, quantity, as_of, now()
		FROM stock_snapshots
		WHERE account_id = $1 AND sku = $2 AND location = $3 AND as_of < $4`
	if _, err := r.q.Exec(ctx, archive, snap.AccountID, snap.SKU, string(snap.Location), snap.AsOf); err != nil {
		return false, fmt.Errorf("archive snapshot: %w", err)
	}

	upsert := `
		INSERT INTO stock_snapshots (account_id, sku, location, quantity, as_of)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id, sku, location)
		DO UPDATE SET quantity = EXCLUDED.quantity, as_of = EXCLUDED.as_of
		WHERE stock_snapshots.as_of < EXCLUDED.as_of`
	tag, err := r.q.Exec(ctx, upsert, snap.AccountID, snap.SKU, string(snap.Location), snap.Quantity, snap.AsOf)
	if err != nil {
		return false, fmt.Errorf("upsert snapshot: %w", err)
	}
	return tag.RowsAffected() > 0, nil
}

// Get snapshot vivo de una ubicación; nil si no existe.
func (r *StockSnapshotRepo) Get(ctx context.Context, accountID, sku string, location entity.StockLocation) (*entity.StockSnapshot, error) {
	query := `
		SELECT account_id, sku, location, quantity, as_of
		FROM stock_snapshots
		WHERE account_id = $1 AND sku = $2 AND location = $3`
	var s entity.StockSnapshot
	var loc string
	err := r.q.QueryRow(ctx, query, accountID, sku, string(location)).Scan(
		&s.AccountID, &s.SKU, &loc, &s.Quantity, &s.AsOf,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get snapshot: %w", err)
	}
	s.Location = entity.StockLocation(loc)
	return &s, nil
}

// CurrentStock agrega los snapshots vivos del SKU. Ubicación sin fila cuenta 0.
func (r *StockSnapshotRepo) CurrentStock(ctx context.Context, accountID, sku string) (entity.StockByLocation, error) {
	query := `
		SELECT location, quantity
		FROM stock_snapshots
		WHERE account_id = $1 AND sku = $2`
	rows, err := r.q.Query(ctx, query, accountID, sku)
	if err != nil {
		return entity.StockByLocation{}, fmt.Errorf("current stock: %w", err)
	}
	defer rows.Close()

	var stock entity.StockByLocation
	for rows.Next() {
		var loc string
		var qty int64
		if err := rows.Scan(&loc, &qty); err != nil {
			return entity.StockByLocation{}, fmt.Errorf("scan stock: %w", err)
		}
		switch entity.StockLocation(loc) {
		case entity.LocationFBAFBM:
			stock.FBAFBM = qty
		case entity.LocationPrepAWD:
			stock.PrepAWD = qty
		case entity.LocationOrdered:
			stock.Ordered = qty
		}
	}
	return stock, rows.Err()
}

// ApplyDelta suma delta a la cantidad viva (creando la fila si falta) y
// archiva el estado anterior. Usado por las transiciones de procura dentro
// de su transacción.
func (r *StockSnapshotRepo) ApplyDelta(ctx context.Context, accountID, sku string, location entity.StockLocation, delta int64, asOf time.Time) error {
	archive := `
		INSERT INTO stock_snapshot_history (account_id, sku, location, quantity, as_of, archived_at)
		SELECT account_id, sku, location, quantity, as_of, now()
		FROM stock_snapshots
		WHERE account_id = $1 AND sku = $2 AND location = $3`
	if _, err := r.q.Exec(ctx, archive, accountID, sku, string(location)); err != nil {
		return fmt.Errorf("archive snapshot: %w", err)
	}

	query := `
		INSERT INTO stock_snapshots (account_id, sku, location, quantity, as_of)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (account_id, sku, location)
		DO UPDATE SET
			quantity = stock_snapshots.quantity + EXCLUDED.quantity,
			as_of = GREATEST(stock_snapshots.as_of, EXCLUDED.as_of)`
	if _, err := r.q.Exec(ctx, query, accountID, sku, string(location), delta, asOf); err != nil {
		return fmt.Errorf("apply stock delta: %w", err)
	}
	return nil
}
