package report_test

import (
	"context"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-curves/internal/application/dto"
	"github.com/jhoicas/retail-curves/internal/application/report"
	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/infrastructure/memory"
)

type fixture struct {
	db     *memory.DB
	svc    *report.Service
	store  *entity.Store
	cdr    *entity.Store
	other  *entity.Store
	family *entity.Family
}

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.New()

	north, _, err := db.Regions().GetOrCreate(ctx, "Norte")
	require.NoError(t, err)
	south, _, err := db.Regions().GetOrCreate(ctx, "Sur")
	require.NoError(t, err)
	zn, _, err := db.Zones().GetOrCreate(ctx, north.ID, "Costa")
	require.NoError(t, err)
	zs, _, err := db.Zones().GetOrCreate(ctx, south.ID, "Lagos")
	require.NoError(t, err)

	f := &fixture{db: db}
	f.store = &entity.Store{Code: "35", Name: "Sucursal 35", RegionID: north.ID, ZoneID: zn.ID}
	f.cdr = &entity.Store{Code: "CDR01", RegionID: north.ID, ZoneID: zn.ID, IsDistributionCenter: true}
	f.other = &entity.Store{Code: "80", RegionID: south.ID, ZoneID: zs.ID}
	for _, s := range []*entity.Store{f.store, f.cdr, f.other} {
		require.NoError(t, db.Stores().Create(ctx, s))
	}
	f.family = &entity.Family{Origen: "JUGUETES", IsActive: true}
	_, err = db.Families().Upsert(ctx, f.family)
	require.NoError(t, err)

	f.svc = report.NewService(db.Reports(), db.Stores(), report.DefaultSeason, nil)
	return f
}

func (f *fixture) stock(t *testing.T, store *entity.Store, date time.Time, units int64) {
	t.Helper()
	_, err := f.db.StockRecords().BulkCreate(context.Background(), []*entity.StockRecord{{
		StoreID: store.ID, FamilyID: f.family.ID, Date: date, StockUnits: decimal.NewFromInt(units),
	}})
	require.NoError(t, err)
}

func (f *fixture) sale(t *testing.T, store *entity.Store, date time.Time, units int64) {
	t.Helper()
	_, err := f.db.SalesRecords().BulkCreate(context.Background(), []*entity.SalesRecord{{
		StoreID: store.ID, FamilyID: f.family.ID, Date: date, UnitsSold: decimal.NewFromInt(units),
	}})
	require.NoError(t, err)
}

// índice del 1 de diciembre dentro de la ventana 1/oct-31/dic.
const dec1 = 61

func TestStockCurves_Origenes(t *testing.T) {
	f := newFixture(t)
	f.stock(t, f.store, day(2022, 12, 1), 10)
	f.stock(t, f.store, day(2023, 12, 1), 5)
	f.stock(t, f.cdr, day(2023, 12, 1), 100)

	all, err := f.svc.StockCurves(context.Background(), dto.CurveQuery{})
	require.NoError(t, err)
	assert.Equal(t, 2023, all.Meta.PivotYear)
	assert.Equal(t, []int{2022, 2023}, all.Meta.YearsCompared)
	assert.Len(t, all.Labels, 92)
	require.Len(t, all.Datasets, 2)
	assert.Equal(t, 2022, all.Datasets[0].Year)
	assert.Equal(t, 10.0, all.Datasets[0].Data[dec1])
	assert.Equal(t, 105.0, all.Datasets[1].Data[dec1])
	assert.Zero(t, all.Datasets[1].Data[dec1+1], "el stock diario no se acumula")

	stores, err := f.svc.StockCurves(context.Background(), dto.CurveQuery{Source: "stores"})
	require.NoError(t, err)
	require.Len(t, stores.Datasets, 2)
	assert.Equal(t, 5.0, stores.Datasets[1].Data[dec1])

	cdr, err := f.svc.StockCurves(context.Background(), dto.CurveQuery{Source: "CDR"})
	require.NoError(t, err)
	require.Len(t, cdr.Datasets, 1, "las series planas se omiten")
	assert.Equal(t, 2023, cdr.Datasets[0].Year)
	assert.Equal(t, 100.0, cdr.Datasets[0].Data[dec1])
	assert.Equal(t, "cdr", cdr.Meta.Source)
}

func TestStockCurves_SourceInvalido(t *testing.T) {
	f := newFixture(t)
	_, err := f.svc.StockCurves(context.Background(), dto.CurveQuery{Source: "todos"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestSalesCurves_AcumuladasSinCDR(t *testing.T) {
	f := newFixture(t)
	f.sale(t, f.store, day(2023, 10, 1), 2)
	f.sale(t, f.store, day(2023, 10, 3), 3)
	f.sale(t, f.cdr, day(2023, 10, 2), 50)
	f.sale(t, f.store, day(2023, 9, 30), 99)

	resp, err := f.svc.SalesCurves(context.Background(), dto.CurveQuery{Year: 2023})
	require.NoError(t, err)

	require.Len(t, resp.Datasets, 1)
	data := resp.Datasets[0].Data
	assert.Equal(t, []float64{2, 2, 5}, data[:3])
	assert.Equal(t, 5.0, data[len(data)-1])
	assert.Equal(t, "Ventas acumuladas 2023", resp.Datasets[0].Label)
}

func TestSalesCurves_SucursalFuerzaRegionYZona(t *testing.T) {
	f := newFixture(t)
	f.sale(t, f.store, day(2023, 11, 1), 4)
	f.sale(t, f.other, day(2023, 11, 1), 7)

	wrongRegion := f.other.RegionID
	resp, err := f.svc.SalesCurves(context.Background(), dto.CurveQuery{Year: 2023, StoreCode: "35", RegionID: &wrongRegion})
	require.NoError(t, err)

	require.NotNil(t, resp.Meta.Scope.RegionID)
	assert.Equal(t, f.store.RegionID, *resp.Meta.Scope.RegionID)
	assert.Equal(t, f.store.ZoneID, *resp.Meta.Scope.ZoneID)
	require.Len(t, resp.Datasets, 1)
	assert.Equal(t, 4.0, resp.Datasets[0].Data[len(resp.Datasets[0].Data)-1])

	// Una sucursal inexistente se ignora y no aplica región ni zona.
	resp, err = f.svc.SalesCurves(context.Background(), dto.CurveQuery{Year: 2023, StoreCode: "nada", RegionID: &wrongRegion})
	require.NoError(t, err)
	assert.Nil(t, resp.Meta.Scope.RegionID)
	assert.Equal(t, 11.0, resp.Datasets[0].Data[len(resp.Datasets[0].Data)-1])
}

func TestSalesCurves_ExcluyeFamiliasInactivas(t *testing.T) {
	f := newFixture(t)
	f.sale(t, f.store, day(2023, 11, 1), 4)
	require.NoError(t, f.db.Families().Deactivate(context.Background(), f.family.ID))

	resp, err := f.svc.SalesCurves(context.Background(), dto.CurveQuery{Year: 2023})
	require.NoError(t, err)
	assert.Empty(t, resp.Datasets)
	assert.Equal(t, []int{2023}, resp.Meta.YearsCompared)
}
