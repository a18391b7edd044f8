package postgres

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

// ─── Transacción falsa ───────────────────────────────────────────────────────

// recordingTx registra SQL y argumentos; los métodos de pgx.Tx no redefinidos no se usan.
type recordingTx struct {
	pgx.Tx

	execSQL  string
	execArgs []any
	execTag  pgconn.CommandTag

	querySQL  string
	queryArgs []any
	queryErr  error

	copyTable pgx.Identifier
	copyCols  []string
	copyRows  [][]any
	copyErr   error

	children   []*recordingTx
	committed  bool
	rolledBack bool
}

func (t *recordingTx) Exec(_ context.Context, sql string, args ...any) (pgconn.CommandTag, error) {
	t.execSQL, t.execArgs = sql, args
	return t.execTag, nil
}

func (t *recordingTx) Query(_ context.Context, sql string, args ...any) (pgx.Rows, error) {
	t.querySQL, t.queryArgs = sql, args
	return nil, t.queryErr
}

func (t *recordingTx) CopyFrom(_ context.Context, table pgx.Identifier, cols []string, src pgx.CopyFromSource) (int64, error) {
	t.copyTable, t.copyCols = table, cols
	for src.Next() {
		v, err := src.Values()
		if err != nil {
			return 0, err
		}
		t.copyRows = append(t.copyRows, v)
	}
	if t.copyErr != nil {
		return 0, t.copyErr
	}
	return int64(len(t.copyRows)), nil
}

func (t *recordingTx) Begin(context.Context) (pgx.Tx, error) {
	child := &recordingTx{execTag: t.execTag}
	t.children = append(t.children, child)
	return child, nil
}

func (t *recordingTx) Commit(context.Context) error {
	t.committed = true
	return nil
}

func (t *recordingTx) Rollback(context.Context) error {
	if !t.committed {
		t.rolledBack = true
	}
	return nil
}

var errBoom = errors.New("boom")

func recDay(d int) time.Time { return time.Date(2023, 12, d, 0, 0, 0, 0, time.UTC) }

// ─── FindExisting ────────────────────────────────────────────────────────────

func TestFindExisting_ProductoCruzadoEnUnaConsulta(t *testing.T) {
	q := &recordingTx{queryErr: errBoom}
	dates := []time.Time{recDay(1), recDay(2)}

	_, err := NewStockRecordRepository(q).FindExisting(context.Background(), []int64{1, 2}, []int64{9}, dates)
	require.ErrorIs(t, err, errBoom)
	assert.Contains(t, err.Error(), "stock_records")

	assert.Contains(t, q.querySQL, "FROM stock_records")
	assert.Contains(t, q.querySQL, "store_id = ANY($1) AND family_id = ANY($2) AND date = ANY($3::date[])")
	assert.Equal(t, []any{[]int64{1, 2}, []int64{9}, dates}, q.queryArgs)
}

func TestFindExisting_SinClavesNoConsulta(t *testing.T) {
	q := &recordingTx{}
	keys, err := NewSalesRecordRepository(q).FindExisting(context.Background(), []int64{1}, nil, []time.Time{recDay(1)})
	require.NoError(t, err)
	assert.Empty(t, keys)
	assert.Empty(t, q.querySQL)
}

// ─── BulkUpdate ──────────────────────────────────────────────────────────────

func TestBulkUpdate_UnnestPorClaveNatural(t *testing.T) {
	q := &recordingTx{execTag: pgconn.NewCommandTag("UPDATE 2")}
	revenue := decimal.RequireFromString("1500.5")

	n, err := NewSalesRecordRepository(q).BulkUpdate(context.Background(), []*entity.SalesRecord{
		{StoreID: 1, FamilyID: 9, Date: recDay(1), UnitsSold: decimal.NewFromInt(3)},
		{StoreID: 2, FamilyID: 9, Date: recDay(2), UnitsSold: decimal.RequireFromString("0.01"), Revenue: &revenue},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 2, n)

	assert.Contains(t, q.execSQL, "UPDATE sales_records t")
	assert.Contains(t, q.execSQL, "SET units_sold = v.units::numeric, revenue = v.value::numeric")
	assert.Contains(t, q.execSQL, "unnest($1::bigint[], $2::bigint[], $3::date[], $4::text[], $5::text[])")
	assert.Contains(t, q.execSQL, "t.store_id = v.store_id AND t.family_id = v.family_id AND t.date = v.date")

	require.Len(t, q.execArgs, 5)
	assert.Equal(t, []int64{1, 2}, q.execArgs[0])
	assert.Equal(t, []int64{9, 9}, q.execArgs[1])
	assert.Equal(t, []time.Time{recDay(1), recDay(2)}, q.execArgs[2])
	assert.Equal(t, []string{"3", "0.01"}, q.execArgs[3])
	values := q.execArgs[4].([]*string)
	require.Len(t, values, 2)
	assert.Nil(t, values[0])
	assert.Equal(t, "1500.5", *values[1])
}

func TestBulkUpdate_VacioNoEjecuta(t *testing.T) {
	q := &recordingTx{}
	n, err := NewStockRecordRepository(q).BulkUpdate(context.Background(), nil)
	require.NoError(t, err)
	assert.Zero(t, n)
	assert.Empty(t, q.execSQL)
}

// ─── BulkCreate ──────────────────────────────────────────────────────────────

func TestBulkCreate_CopyConColumnas(t *testing.T) {
	q := &recordingTx{}
	units := decimal.NewFromInt(10)

	n, err := NewStockRecordRepository(q).BulkCreate(context.Background(), []*entity.StockRecord{
		{StoreID: 1, FamilyID: 9, Date: recDay(1), StockUnits: units},
	})
	require.NoError(t, err)
	assert.EqualValues(t, 1, n)
	assert.Equal(t, pgx.Identifier{"stock_records"}, q.copyTable)
	assert.Equal(t, []string{"store_id", "family_id", "date", "stock_units", "stock_value"}, q.copyCols)
	require.Len(t, q.copyRows, 1)
	assert.Equal(t, int64(1), q.copyRows[0][0])
	assert.True(t, units.Equal(q.copyRows[0][3].(decimal.Decimal)))
}

func TestBulkCreate_ClaveRepetidaEsDuplicado(t *testing.T) {
	q := &recordingTx{copyErr: &pgconn.PgError{Code: "23505"}}
	_, err := NewSalesRecordRepository(q).BulkCreate(context.Background(), []*entity.SalesRecord{
		{StoreID: 1, FamilyID: 9, Date: recDay(1), UnitsSold: decimal.NewFromInt(1)},
	})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

// ─── Savepoint por chunk ─────────────────────────────────────────────────────

func TestImportTxChunk_ConfirmaSavepoint(t *testing.T) {
	outer := &recordingTx{}
	itx := &importTx{tx: outer}

	err := itx.Chunk(context.Background(), func(stock repository.StockRecordRepository, sales repository.SalesRecordRepository) error {
		assert.Same(t, outer.children[0], stock.(*StockRecordRepo).q)
		assert.Same(t, outer.children[0], sales.(*SalesRecordRepo).q)
		return nil
	})
	require.NoError(t, err)

	require.Len(t, outer.children, 1)
	assert.True(t, outer.children[0].committed)
	assert.False(t, outer.children[0].rolledBack)
	assert.False(t, outer.committed, "el archivo se confirma fuera del chunk")
}

func TestImportTxChunk_ErrorRevierteSoloElSavepoint(t *testing.T) {
	outer := &recordingTx{}
	itx := &importTx{tx: outer}

	err := itx.Chunk(context.Background(), func(repository.StockRecordRepository, repository.SalesRecordRepository) error { return errBoom })
	require.ErrorIs(t, err, errBoom)

	require.Len(t, outer.children, 1)
	assert.False(t, outer.children[0].committed)
	assert.True(t, outer.children[0].rolledBack)
	assert.False(t, outer.rolledBack)
}
