package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/infrastructure/sqlitebackup"
)

var _ sqlitebackup.Source = (*BackupSource)(nil)

// BackupSource lectura completa de maestros y registros para el respaldo previo a importar.
type BackupSource struct {
	q Querier
}

// NewBackupSource construye la fuente de respaldo.
func NewBackupSource(q Querier) *BackupSource {
	return &BackupSource{q: q}
}

func (s *BackupSource) Regions(ctx context.Context) ([]entity.Region, error) {
	return collect(ctx, s.q, `SELECT id, name FROM regions ORDER BY id`, func(row pgx.Rows) (entity.Region, error) {
		var r entity.Region
		err := row.Scan(&r.ID, &r.Name)
		return r, err
	})
}

func (s *BackupSource) Zones(ctx context.Context) ([]entity.Zone, error) {
	return collect(ctx, s.q, `SELECT id, region_id, name FROM zones ORDER BY id`, func(row pgx.Rows) (entity.Zone, error) {
		var z entity.Zone
		err := row.Scan(&z.ID, &z.RegionID, &z.Name)
		return z, err
	})
}

func (s *BackupSource) Stores(ctx context.Context) ([]entity.Store, error) {
	return collect(ctx, s.q, storeSelect+` ORDER BY s.id`, func(row pgx.Rows) (entity.Store, error) {
		var st entity.Store
		err := row.Scan(&st.ID, &st.Code, &st.Name, &st.RegionID, &st.ZoneID, &st.RegionName, &st.ZoneName, &st.IsDistributionCenter)
		return st, err
	})
}

func (s *BackupSource) Families(ctx context.Context) ([]entity.Family, error) {
	query := `SELECT id, origen, sector, familia_std, subfamilia_std, is_active FROM families ORDER BY id`
	return collect(ctx, s.q, query, func(row pgx.Rows) (entity.Family, error) {
		var f entity.Family
		err := row.Scan(&f.ID, &f.Origen, &f.Sector, &f.FamiliaStd, &f.SubfamiliaStd, &f.IsActive)
		return f, err
	})
}

// EachStock recorre stock_records sin materializar la tabla completa.
func (s *BackupSource) EachStock(ctx context.Context, fn func(entity.StockRecord) error) error {
	rows, err := s.q.Query(ctx, `SELECT id, store_id, family_id, date, stock_units, stock_value FROM stock_records ORDER BY id`)
	if err != nil {
		return fmt.Errorf("backup stock: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r entity.StockRecord
		var value decimal.NullDecimal
		if err := rows.Scan(&r.ID, &r.StoreID, &r.FamilyID, &r.Date, &r.StockUnits, &value); err != nil {
			return err
		}
		if value.Valid {
			r.StockValue = &value.Decimal
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return rows.Err()
}

// EachSales recorre sales_records sin materializar la tabla completa.
func (s *BackupSource) EachSales(ctx context.Context, fn func(entity.SalesRecord) error) error {
	rows, err := s.q.Query(ctx, `SELECT id, store_id, family_id, date, units_sold, revenue FROM sales_records ORDER BY id`)
	if err != nil {
		return fmt.Errorf("backup sales: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var r entity.SalesRecord
		var revenue decimal.NullDecimal
		if err := rows.Scan(&r.ID, &r.StoreID, &r.FamilyID, &r.Date, &r.UnitsSold, &revenue); err != nil {
			return err
		}
		if revenue.Valid {
			r.Revenue = &revenue.Decimal
		}
		if err := fn(r); err != nil {
			return err
		}
	}
	return rows.Err()
}

func collect[T any](ctx context.Context, q Querier, query string, scan func(pgx.Rows) (T, error)) ([]T, error) {
	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("backup: %w", err)
	}
	defer rows.Close()
	var out []T
	for rows.Next() {
		v, err := scan(rows)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, rows.Err()
}
