package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/jhoicas/retail-curves/internal/application/catalog"
	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var (
	_ navidad.TxRunner = (*TxRunner)(nil)
	_ catalog.TxRunner = (*TxRunner)(nil)
)

// TxRunner ejecuta callbacks dentro de una transacción PostgreSQL.
type TxRunner struct {
	pool *pgxpool.Pool
}

// NewTxRunner construye el runner con el pool.
func NewTxRunner(pool *pgxpool.Pool) *TxRunner {
	return &TxRunner{pool: pool}
}

// RunImport abre la transacción de un archivo completo; si fn falla se hace Rollback.
func (r *TxRunner) RunImport(ctx context.Context, fn func(tx navidad.ImportTx) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(&importTx{tx: tx})
	})
}

// RunCatalog abre una transacción para cargas de maestros.
func (r *TxRunner) RunCatalog(ctx context.Context, fn func(tx catalog.Tx) error) error {
	return r.run(ctx, func(tx pgx.Tx) error {
		return fn(&catalogTx{q: tx})
	})
}

func (r *TxRunner) run(ctx context.Context, fn func(tx pgx.Tx) error) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("begin transaction: %w", err)
	}
	defer func() { _ = tx.Rollback(ctx) }()

	if err := fn(tx); err != nil {
		return err
	}
	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("commit transaction: %w", err)
	}
	return nil
}

// importTx repos atados a la transacción del archivo.
type importTx struct {
	tx pgx.Tx
}

func (t *importTx) Stores() repository.StoreRepository    { return NewStoreRepository(t.tx) }
func (t *importTx) Families() repository.FamilyRepository { return NewFamilyRepository(t.tx) }

// Chunk abre un savepoint (Begin sobre una pgx.Tx) para las escrituras de un chunk.
func (t *importTx) Chunk(ctx context.Context, fn func(
	stockRepo repository.StockRecordRepository,
	salesRepo repository.SalesRecordRepository,
) error) error {
	sp, err := t.tx.Begin(ctx)
	if err != nil {
		return fmt.Errorf("savepoint: %w", err)
	}
	defer func() { _ = sp.Rollback(ctx) }()

	if err := fn(NewStockRecordRepository(sp), NewSalesRecordRepository(sp)); err != nil {
		return err
	}
	if err := sp.Commit(ctx); err != nil {
		return fmt.Errorf("release savepoint: %w", err)
	}
	return nil
}

// catalogTx repos de maestros atados a una transacción.
type catalogTx struct {
	q Querier
}

func (t *catalogTx) Regions() repository.RegionRepository  { return NewRegionRepository(t.q) }
func (t *catalogTx) Zones() repository.ZoneRepository      { return NewZoneRepository(t.q) }
func (t *catalogTx) Stores() repository.StoreRepository    { return NewStoreRepository(t.q) }
func (t *catalogTx) Families() repository.FamilyRepository { return NewFamilyRepository(t.q) }
