// Package sqlitebackup vuelca maestros y registros diarios a un archivo SQLite antes de importar.
package sqlitebackup

import (
	"context"
	"database/sql"
	"fmt"
	"os"
	"time"

	"github.com/shopspring/decimal"
	_ "modernc.org/sqlite"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
)

// Source lectura completa de los datos a respaldar.
type Source interface {
	Regions(ctx context.Context) ([]entity.Region, error)
	Zones(ctx context.Context) ([]entity.Zone, error)
	Stores(ctx context.Context) ([]entity.Store, error)
	Families(ctx context.Context) ([]entity.Family, error)
	EachStock(ctx context.Context, fn func(entity.StockRecord) error) error
	EachSales(ctx context.Context, fn func(entity.SalesRecord) error) error
}

// Result filas copiadas por tabla.
type Result struct {
	Path     string
	Regions  int
	Zones    int
	Stores   int
	Families int
	Stock    int
	Sales    int
}

var schema = []string{
	`CREATE TABLE regions (id INTEGER PRIMARY KEY, name TEXT NOT NULL UNIQUE)`,
	`CREATE TABLE zones (id INTEGER PRIMARY KEY, region_id INTEGER NOT NULL, name TEXT NOT NULL, UNIQUE (region_id, name))`,
	`CREATE TABLE stores (
		id INTEGER PRIMARY KEY, code TEXT NOT NULL UNIQUE, name TEXT NOT NULL,
		region_id INTEGER NOT NULL, zone_id INTEGER NOT NULL, is_distribution_center INTEGER NOT NULL)`,
	`CREATE TABLE families (
		id INTEGER PRIMARY KEY, origen TEXT NOT NULL, sector TEXT NOT NULL,
		familia_std TEXT NOT NULL, subfamilia_std TEXT NOT NULL, is_active INTEGER NOT NULL)`,
	`CREATE TABLE stock_records (
		store_id INTEGER NOT NULL, family_id INTEGER NOT NULL, date TEXT NOT NULL,
		stock_units TEXT NOT NULL, stock_value TEXT, UNIQUE (store_id, family_id, date))`,
	`CREATE TABLE sales_records (
		store_id INTEGER NOT NULL, family_id INTEGER NOT NULL, date TEXT NOT NULL,
		units_sold TEXT NOT NULL, revenue TEXT, UNIQUE (store_id, family_id, date))`,
	`CREATE TABLE backup_meta (created_at TEXT NOT NULL)`,
}

// Write crea (o reemplaza) el archivo path con una copia completa de src.
// Si falla, el archivo parcial se elimina.
func Write(ctx context.Context, src Source, path string) (res *Result, err error) {
	if err := os.Remove(path); err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("backup: limpiar %s: %w", path, err)
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("backup: abrir sqlite: %w", err)
	}
	defer func() {
		db.Close()
		if err != nil {
			_ = os.Remove(path)
		}
	}()

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("backup: iniciar transacción: %w", err)
	}
	defer tx.Rollback() //nolint:errcheck

	for _, stmt := range schema {
		if _, err := tx.ExecContext(ctx, stmt); err != nil {
			return nil, fmt.Errorf("backup: crear esquema: %w", err)
		}
	}

	res = &Result{Path: path}
	if res.Regions, err = copyRegions(ctx, tx, src); err != nil {
		return nil, err
	}
	if res.Zones, err = copyZones(ctx, tx, src); err != nil {
		return nil, err
	}
	if res.Stores, err = copyStores(ctx, tx, src); err != nil {
		return nil, err
	}
	if res.Families, err = copyFamilies(ctx, tx, src); err != nil {
		return nil, err
	}
	if res.Stock, err = copyStock(ctx, tx, src); err != nil {
		return nil, err
	}
	if res.Sales, err = copySales(ctx, tx, src); err != nil {
		return nil, err
	}
	if _, err := tx.ExecContext(ctx, `INSERT INTO backup_meta (created_at) VALUES (?)`, time.Now().UTC().Format(time.RFC3339)); err != nil {
		return nil, fmt.Errorf("backup: meta: %w", err)
	}
	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("backup: commit: %w", err)
	}
	return res, nil
}

func copyRegions(ctx context.Context, tx *sql.Tx, src Source) (int, error) {
	list, err := src.Regions(ctx)
	if err != nil {
		return 0, fmt.Errorf("backup: leer regiones: %w", err)
	}
	return insertAll(ctx, tx, `INSERT INTO regions (id, name) VALUES (?, ?)`, len(list), func(i int) []any {
		return []any{list[i].ID, list[i].Name}
	})
}

func copyZones(ctx context.Context, tx *sql.Tx, src Source) (int, error) {
	list, err := src.Zones(ctx)
	if err != nil {
		return 0, fmt.Errorf("backup: leer zonas: %w", err)
	}
	return insertAll(ctx, tx, `INSERT INTO zones (id, region_id, name) VALUES (?, ?, ?)`, len(list), func(i int) []any {
		return []any{list[i].ID, list[i].RegionID, list[i].Name}
	})
}

func copyStores(ctx context.Context, tx *sql.Tx, src Source) (int, error) {
	list, err := src.Stores(ctx)
	if err != nil {
		return 0, fmt.Errorf("backup: leer sucursales: %w", err)
	}
	return insertAll(ctx, tx,
		`INSERT INTO stores (id, code, name, region_id, zone_id, is_distribution_center) VALUES (?, ?, ?, ?, ?, ?)`,
		len(list), func(i int) []any {
			s := list[i]
			return []any{s.ID, s.Code, s.Name, s.RegionID, s.ZoneID, s.IsDistributionCenter}
		})
}

func copyFamilies(ctx context.Context, tx *sql.Tx, src Source) (int, error) {
	list, err := src.Families(ctx)
	if err != nil {
		return 0, fmt.Errorf("backup: leer familias: %w", err)
	}
	return insertAll(ctx, tx,
		`INSERT INTO families (id, origen, sector, familia_std, subfamilia_std, is_active) VALUES (?, ?, ?, ?, ?, ?)`,
		len(list), func(i int) []any {
			f := list[i]
			return []any{f.ID, f.Origen, f.Sector, f.FamiliaStd, f.SubfamiliaStd, f.IsActive}
		})
}

func copyStock(ctx context.Context, tx *sql.Tx, src Source) (int, error) {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO stock_records (store_id, family_id, date, stock_units, stock_value) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("backup: preparar stock: %w", err)
	}
	defer stmt.Close()
	n := 0
	err = src.EachStock(ctx, func(r entity.StockRecord) error {
		if _, err := stmt.ExecContext(ctx, r.StoreID, r.FamilyID, r.Date.Format(time.DateOnly),
			r.StockUnits.String(), optional(r.StockValue)); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("backup: copiar stock: %w", err)
	}
	return n, nil
}

func copySales(ctx context.Context, tx *sql.Tx, src Source) (int, error) {
	stmt, err := tx.PrepareContext(ctx,
		`INSERT INTO sales_records (store_id, family_id, date, units_sold, revenue) VALUES (?, ?, ?, ?, ?)`)
	if err != nil {
		return 0, fmt.Errorf("backup: preparar ventas: %w", err)
	}
	defer stmt.Close()
	n := 0
	err = src.EachSales(ctx, func(r entity.SalesRecord) error {
		if _, err := stmt.ExecContext(ctx, r.StoreID, r.FamilyID, r.Date.Format(time.DateOnly),
			r.UnitsSold.String(), optional(r.Revenue)); err != nil {
			return err
		}
		n++
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("backup: copiar ventas: %w", err)
	}
	return n, nil
}

func insertAll(ctx context.Context, tx *sql.Tx, query string, n int, args func(i int) []any) (int, error) {
	if n == 0 {
		return 0, nil
	}
	stmt, err := tx.PrepareContext(ctx, query)
	if err != nil {
		return 0, fmt.Errorf("backup: preparar: %w", err)
	}
	defer stmt.Close()
	for i := 0; i < n; i++ {
		if _, err := stmt.ExecContext(ctx, args(i)...); err != nil {
			return i, fmt.Errorf("backup: insertar: %w", err)
		}
	}
	return n, nil
}

func optional(d *decimal.Decimal) any {
	if d == nil {
		return nil
	}
	return d.String()
}
