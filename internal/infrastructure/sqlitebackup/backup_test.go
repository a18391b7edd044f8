package sqlitebackup_test

import (
	"context"
	"database/sql"
	"path/filepath"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/infrastructure/memory"
	"github.com/jhoicas/retail-curves/internal/infrastructure/sqlitebackup"
)

func seed(t *testing.T) *memory.DB {
	t.Helper()
	ctx := context.Background()
	db := memory.New()
	reg, _, err := db.Regions().GetOrCreate(ctx, "Norte")
	require.NoError(t, err)
	zone, _, err := db.Zones().GetOrCreate(ctx, reg.ID, "Costa")
	require.NoError(t, err)
	store := &entity.Store{Code: "35", Name: "Sucursal 35", RegionID: reg.ID, ZoneID: zone.ID}
	require.NoError(t, db.Stores().Create(ctx, store))
	fam := &entity.Family{Origen: "JUGUETES", Sector: "Hogar", FamiliaStd: "Juguetes", SubfamiliaStd: "Muñecas", IsActive: true}
	_, err = db.Families().Upsert(ctx, fam)
	require.NoError(t, err)

	day := time.Date(2024, 12, 1, 0, 0, 0, 0, time.UTC)
	value := decimal.RequireFromString("1500.50")
	_, err = db.StockRecords().BulkCreate(ctx, []*entity.StockRecord{
		{StoreID: store.ID, FamilyID: fam.ID, Date: day, StockUnits: decimal.NewFromInt(10), StockValue: &value},
		{StoreID: store.ID, FamilyID: fam.ID, Date: day.AddDate(0, 0, 1), StockUnits: decimal.NewFromInt(8)},
	})
	require.NoError(t, err)
	_, err = db.SalesRecords().BulkCreate(ctx, []*entity.SalesRecord{
		{StoreID: store.ID, FamilyID: fam.ID, Date: day, UnitsSold: decimal.RequireFromString("2.5")},
	})
	require.NoError(t, err)
	return db
}

func TestWrite(t *testing.T) {
	db := seed(t)
	path := filepath.Join(t.TempDir(), "backup.sqlite")

	res, err := sqlitebackup.Write(context.Background(), db.BackupSource(), path)
	require.NoError(t, err)
	assert.Equal(t, path, res.Path)
	assert.Equal(t, 1, res.Regions)
	assert.Equal(t, 1, res.Zones)
	assert.Equal(t, 1, res.Stores)
	assert.Equal(t, 1, res.Families)
	assert.Equal(t, 2, res.Stock)
	assert.Equal(t, 1, res.Sales)

	conn, err := sql.Open("sqlite", path)
	require.NoError(t, err)
	defer conn.Close()

	var code string
	require.NoError(t, conn.QueryRow(`SELECT code FROM stores`).Scan(&code))
	assert.Equal(t, "35", code)

	var units string
	var value sql.NullString
	require.NoError(t, conn.QueryRow(`SELECT stock_units, stock_value FROM stock_records WHERE date = '2024-12-01'`).Scan(&units, &value))
	assert.Equal(t, "10", units)
	assert.Equal(t, "1500.5", value.String)

	var sold string
	require.NoError(t, conn.QueryRow(`SELECT units_sold FROM sales_records`).Scan(&sold))
	assert.Equal(t, "2.5", sold)
}

func TestWrite_ReemplazaArchivo(t *testing.T) {
	db := seed(t)
	path := filepath.Join(t.TempDir(), "backup.sqlite")
	ctx := context.Background()

	_, err := sqlitebackup.Write(ctx, db.BackupSource(), path)
	require.NoError(t, err)
	res, err := sqlitebackup.Write(ctx, db.BackupSource(), path)
	require.NoError(t, err)
	assert.Equal(t, 2, res.Stock)
}

func TestWrite_BaseVacia(t *testing.T) {
	path := filepath.Join(t.TempDir(), "vacio.sqlite")
	res, err := sqlitebackup.Write(context.Background(), memory.New().BackupSource(), path)
	require.NoError(t, err)
	assert.Zero(t, res.Stores)
	assert.Zero(t, res.Stock)
}
