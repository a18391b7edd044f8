package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var (
	_ repository.StockRecordRepository = (*StockRecordRepo)(nil)
	_ repository.SalesRecordRepository = (*SalesRecordRepo)(nil)
)

// findExisting claves existentes en table dentro de sucursales × familias × fechas.
func findExisting(ctx context.Context, q Querier, table string, storeIDs, familyIDs []int64, dates []time.Time) ([]entity.RecordKey, error) {
	if len(storeIDs) == 0 || len(familyIDs) == 0 || len(dates) == 0 {
		return nil, nil
	}
	query := fmt.Sprintf(`
		SELECT store_id, family_id, date FROM %s
		WHERE store_id = ANY($1) AND family_id = ANY($2) AND date = ANY($3::date[])`, table)
	rows, err := q.Query(ctx, query, storeIDs, familyIDs, dates)
	if err != nil {
		return nil, fmt.Errorf("find existing %s: %w", table, err)
	}
	defer rows.Close()
	var keys []entity.RecordKey
	for rows.Next() {
		var k entity.RecordKey
		if err := rows.Scan(&k.StoreID, &k.FamilyID, &k.Date); err != nil {
			return nil, err
		}
		keys = append(keys, k)
	}
	return keys, rows.Err()
}

// bulkUpdate actualiza por clave natural con un único UPDATE ... FROM unnest(...).
// Los valores viajan como texto para evitar depender del codec de arrays NUMERIC.
func bulkUpdate(ctx context.Context, q Querier, table, unitsCol, valueCol string, keys []entity.RecordKey, units []string, values []*string) (int64, error) {
	storeIDs := make([]int64, len(keys))
	familyIDs := make([]int64, len(keys))
	dates := make([]time.Time, len(keys))
	for i, k := range keys {
		storeIDs[i], familyIDs[i], dates[i] = k.StoreID, k.FamilyID, k.Date
	}
	query := fmt.Sprintf(`
		UPDATE %[1]s t
		SET %[2]s = v.units::numeric, %[3]s = v.value::numeric
		FROM unnest($1::bigint[], $2::bigint[], $3::date[], $4::text[], $5::text[])
			AS v(store_id, family_id, date, units, value)
		WHERE t.store_id = v.store_id AND t.family_id = v.family_id AND t.date = v.date`,
		table, unitsCol, valueCol)
	tag, err := q.Exec(ctx, query, storeIDs, familyIDs, dates, units, values)
	if err != nil {
		return 0, fmt.Errorf("bulk update %s: %w", table, err)
	}
	return tag.RowsAffected(), nil
}

func optionalText(d *decimal.Decimal) *string {
	if d == nil {
		return nil
	}
	s := d.String()
	return &s
}

func copyError(table string, err error) error {
	if isUniqueViolation(err) {
		return fmt.Errorf("copy %s: %w", table, domain.ErrDuplicate)
	}
	return fmt.Errorf("copy %s: %w", table, err)
}

// ─── Stock ───────────────────────────────────────────────────────────────────

// StockRecordRepo stock diario sobre PostgreSQL.
type StockRecordRepo struct {
	q Querier
}

// NewStockRecordRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRecordRepository(q Querier) *StockRecordRepo {
	return &StockRecordRepo{q: q}
}

// FindExisting claves de stock ya cargadas.
func (r *StockRecordRepo) FindExisting(ctx context.Context, storeIDs, familyIDs []int64, dates []time.Time) ([]entity.RecordKey, error) {
	return findExisting(ctx, r.q, "stock_records", storeIDs, familyIDs, dates)
}

// BulkCreate inserta con COPY.
func (r *StockRecordRepo) BulkCreate(ctx context.Context, records []*entity.StockRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"stock_records"},
		[]string{"store_id", "family_id", "date", "stock_units", "stock_value"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{rec.StoreID, rec.FamilyID, rec.Date, rec.StockUnits, rec.StockValue}, nil
		}),
	)
	if err != nil {
		return 0, copyError("stock_records", err)
	}
	return n, nil
}

// BulkUpdate actualiza unidades y valor por clave natural.
func (r *StockRecordRepo) BulkUpdate(ctx context.Context, records []*entity.StockRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	keys := make([]entity.RecordKey, len(records))
	units := make([]string, len(records))
	values := make([]*string, len(records))
	for i, rec := range records {
		keys[i] = rec.Key()
		units[i] = rec.StockUnits.String()
		values[i] = optionalText(rec.StockValue)
	}
	return bulkUpdate(ctx, r.q, "stock_records", "stock_units", "stock_value", keys, units, values)
}

// ─── Ventas ──────────────────────────────────────────────────────────────────

// SalesRecordRepo ventas diarias sobre PostgreSQL.
type SalesRecordRepo struct {
	q Querier
}

// NewSalesRecordRepository construye el adaptador.
func NewSalesRecordRepository(q Querier) *SalesRecordRepo {
	return &SalesRecordRepo{q: q}
}

// FindExisting claves de ventas ya cargadas.
func (r *SalesRecordRepo) FindExisting(ctx context.Context, storeIDs, familyIDs []int64, dates []time.Time) ([]entity.RecordKey, error) {
	return findExisting(ctx, r.q, "sales_records", storeIDs, familyIDs, dates)
}

// BulkCreate inserta con COPY.
func (r *SalesRecordRepo) BulkCreate(ctx context.Context, records []*entity.SalesRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	n, err := r.q.CopyFrom(ctx,
		pgx.Identifier{"sales_records"},
		[]string{"store_id", "family_id", "date", "units_sold", "revenue"},
		pgx.CopyFromSlice(len(records), func(i int) ([]any, error) {
			rec := records[i]
			return []any{rec.StoreID, rec.FamilyID, rec.Date, rec.UnitsSold, rec.Revenue}, nil
		}),
	)
	if err != nil {
		return 0, copyError("sales_records", err)
	}
	return n, nil
}

// BulkUpdate actualiza unidades e ingreso por clave natural.
func (r *SalesRecordRepo) BulkUpdate(ctx context.Context, records []*entity.SalesRecord) (int64, error) {
	if len(records) == 0 {
		return 0, nil
	}
	keys := make([]entity.RecordKey, len(records))
	units := make([]string, len(records))
	values := make([]*string, len(records))
	for i, rec := range records {
		keys[i] = rec.Key()
		units[i] = rec.UnitsSold.String()
		values[i] = optionalText(rec.Revenue)
	}
	return bulkUpdate(ctx, r.q, "sales_records", "units_sold", "revenue", keys, units, values)
}
