package navidad_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	domnavidad "github.com/jhoicas/retail-curves/internal/domain/navidad"
	"github.com/jhoicas/retail-curves/internal/infrastructure/memory"
	"github.com/jhoicas/retail-curves/pkg/logger"
)

// ─── Fakes ───────────────────────────────────────────────────────────────────

type sliceOpener struct {
	rows  [][]string
	err   error
	opens int
}

func (o *sliceOpener) Open(path, sheet string) (domnavidad.RowSource, error) {
	o.opens++
	if o.err != nil {
		return nil, o.err
	}
	return &sliceSource{rows: o.rows, i: -1}, nil
}

type sliceSource struct {
	rows [][]string
	i    int
}

func (s *sliceSource) Next() bool    { s.i++; return s.i < len(s.rows) }
func (s *sliceSource) Row() []string { return s.rows[s.i] }
func (s *sliceSource) Err() error    { return nil }
func (s *sliceSource) Close() error  { return nil }

var header = []string{"Dia", "Region", "Zona", "Sucursal", "SubFamilia", "Unidades Stock Final", "Unidades Vendidas"}

func sheet(rows ...[]string) [][]string {
	out := [][]string{{"Reporte Navidad 2023"}, header}
	return append(out, rows...)
}

type fixture struct {
	db     *memory.DB
	family *entity.Family
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	ctx := context.Background()
	db := memory.New()

	reg, _, err := db.Regions().GetOrCreate(ctx, "Metropolitana")
	require.NoError(t, err)
	zone, _, err := db.Zones().GetOrCreate(ctx, reg.ID, "Centro")
	require.NoError(t, err)
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{Code: "35", Name: "Sucursal 35", RegionID: reg.ID, ZoneID: zone.ID}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{Code: "36", Name: "Sucursal 36", RegionID: reg.ID, ZoneID: zone.ID}))
	require.NoError(t, db.Stores().Create(ctx, &entity.Store{Code: "CDR01", Name: "CDR CDR01", RegionID: reg.ID, ZoneID: zone.ID, IsDistributionCenter: true}))

	fam := &entity.Family{Origen: "JUGUETES", Sector: "Hogar", FamiliaStd: "Juguetes", SubfamiliaStd: "Muñecas", IsActive: true}
	_, err = db.Families().Upsert(ctx, fam)
	require.NoError(t, err)

	return &fixture{db: db, family: fam}
}

func (f *fixture) run(t *testing.T, rows [][]string, in navidad.Input) (*entity.ImportSummary, error) {
	t.Helper()
	loader := navidad.NewLoader(&sliceOpener{rows: rows}, f.db, logger.Nop())
	return loader.Process(context.Background(), in)
}

func records(db *memory.DB) []string {
	var out []string
	for _, r := range db.AllStock() {
		out = append(out, fmt.Sprintf("stock|%d|%d|%s|%s", r.StoreID, r.FamilyID, r.Date.Format("2006-01-02"), r.StockUnits.String()))
	}
	for _, r := range db.AllSales() {
		out = append(out, fmt.Sprintf("sales|%d|%d|%s|%s", r.StoreID, r.FamilyID, r.Date.Format("2006-01-02"), r.UnitsSold.String()))
	}
	return out
}

// ─── Escenarios ──────────────────────────────────────────────────────────────

func TestProcess_ImportaStockYVentas(t *testing.T) {
	f := newFixture(t)
	rows := sheet(
		[]string{"01/12/2023", "Metropolitana", "Centro", "035", "JUGUETES", "10", "2"},
		[]string{"02/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "1.234,5", "3"},
	)

	sum, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.Rows)
	assert.Equal(t, 2, sum.RowsRaw)
	assert.Equal(t, 2, sum.StockCreated)
	assert.Equal(t, 2, sum.SalesCreated)
	assert.Zero(t, sum.StockSkipped)
	assert.Zero(t, sum.SalesSkipped)
	assert.Equal(t, 1, sum.Chunks)
	assert.Equal(t, header, sum.DetectedColumns)

	stock := f.db.AllStock()
	require.Len(t, stock, 2)
	assert.Equal(t, "10", stock[0].StockUnits.String())
	assert.Equal(t, "1234.5", stock[1].StockUnits.String())
	assert.Equal(t, f.family.ID, stock[0].FamilyID)
}

func TestProcess_Idempotente(t *testing.T) {
	f := newFixture(t)
	rows := sheet(
		[]string{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "2"},
		[]string{"01/12/2023", "Metropolitana", "Centro", "36", "JUGUETES", "7", "1"},
	)

	first, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)
	after := records(f.db)

	second, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Equal(t, after, records(f.db))
	assert.Equal(t, 2, first.StockCreated)
	assert.Zero(t, second.StockCreated)
	assert.Equal(t, 2, second.StockUpdated)
	assert.Zero(t, second.SalesCreated)
	assert.Equal(t, 2, second.SalesUpdated)
}

func TestProcess_SucursalDesconocidaSeOmite(t *testing.T) {
	f := newFixture(t)
	rows := sheet(
		[]string{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "2"},
		[]string{"01/12/2023", "Metropolitana", "Centro", "999", "JUGUETES", "5", "5"},
		[]string{"02/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "9", "1"},
	)

	sum, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Rows)
	assert.Equal(t, 2, sum.StockCreated)
	assert.Equal(t, 2, sum.SalesCreated)
	assert.Equal(t, 1, sum.StockSkipped)
	assert.Equal(t, 1, sum.SalesSkipped)
}

func TestProcess_CDRSoloStock(t *testing.T) {
	f := newFixture(t)
	rows := sheet(
		[]string{"01/12/2023", "Metropolitana", "Centro", "CDR01", "JUGUETES", "500", "40"},
	)

	sum, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.StockCreated)
	assert.Zero(t, sum.SalesCreated)
	assert.Equal(t, 1, sum.SalesSkipped)
	assert.Empty(t, f.db.AllSales())
}

func TestProcess_VentasNoPositivasOVaciasSeOmiten(t *testing.T) {
	f := newFixture(t)
	rows := sheet(
		[]string{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "0"},
		[]string{"02/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "-3"},
		[]string{"03/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "", ""},
	)

	sum, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.StockCreated)
	assert.Equal(t, 1, sum.StockSkipped)
	assert.Zero(t, sum.SalesCreated)
	assert.Equal(t, 3, sum.SalesSkipped)
}

func TestProcess_VentasQueRedondeanACeroSeOmiten(t *testing.T) {
	f := newFixture(t)
	rows := sheet(
		[]string{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "0,004"},
		[]string{"02/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "0,005"},
	)

	sum, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Equal(t, 2, sum.StockCreated)
	assert.Equal(t, 1, sum.SalesCreated)
	assert.Equal(t, 1, sum.SalesSkipped)
	sales := f.db.AllSales()
	require.Len(t, sales, 1)
	assert.True(t, sales[0].UnitsSold.IsPositive())
	assert.Equal(t, "0.01", sales[0].UnitsSold.StringFixed(2))
}

func TestProcess_FilasSinFechaOSinSubFamilia(t *testing.T) {
	f := newFixture(t)
	rows := sheet(
		[]string{"no es fecha", "Metropolitana", "Centro", "35", "JUGUETES", "10", "2"},
		[]string{"01/12/2023", "Metropolitana", "Centro", "35", "   ", "10", "2"},
		[]string{"", "", "", "", "", "", ""},
		[]string{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "2"},
	)

	sum, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Equal(t, 3, sum.Rows, "las filas en blanco no cuentan")
	assert.Equal(t, 1, sum.StockCreated)
	assert.Zero(t, sum.StockSkipped)
	assert.Zero(t, sum.SalesSkipped)
}

func TestProcess_FamiliaAmbiguaSeOmite(t *testing.T) {
	f := newFixture(t)
	_, err := f.db.Families().Upsert(context.Background(), &entity.Family{
		Origen: "JUGUETES", Sector: "Otro", FamiliaStd: "Juguetes", SubfamiliaStd: "Autos", IsActive: true,
	})
	require.NoError(t, err)

	rows := sheet([]string{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "2"})
	sum, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Zero(t, sum.StockCreated)
	assert.Equal(t, 1, sum.StockSkipped)
	assert.Equal(t, 1, sum.SalesSkipped)
}

func TestProcess_FamiliaInactivaNoResuelve(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.db.Families().Deactivate(context.Background(), f.family.ID))

	rows := sheet([]string{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "2"})
	sum, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.StockSkipped)
	assert.Empty(t, f.db.AllStock())
}

func TestProcess_AreaEstricta(t *testing.T) {
	f := newFixture(t)
	rows := sheet(
		[]string{"01/12/2023", " Metropolitana ", "Centro", "35", "JUGUETES", "10", "2"},
		[]string{"01/12/2023", "Sur", "Centro", "36", "JUGUETES", "10", "2"},
	)

	sum, err := f.run(t, rows, navidad.Input{StrictArea: true})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.StockCreated)
	assert.Equal(t, 1, sum.StockSkipped)
	assert.Equal(t, 1, sum.SalesSkipped)

	g := newFixture(t)
	sum, err = g.run(t, rows, navidad.Input{StrictArea: false})
	require.NoError(t, err)
	assert.Equal(t, 2, sum.StockCreated)
}

func TestProcess_ChunksEquivalenAUnaSolaPasada(t *testing.T) {
	var data [][]string
	for d := 1; d <= 5; d++ {
		data = append(data, []string{fmt.Sprintf("%02d/12/2023", d), "Metropolitana", "Centro", "35", "JUGUETES", fmt.Sprint(d * 10), fmt.Sprint(d)})
	}
	rows := sheet(data...)

	chunked := newFixture(t)
	sumChunked, err := chunked.run(t, rows, navidad.Input{ChunkSize: 2})
	require.NoError(t, err)

	single := newFixture(t)
	sumSingle, err := single.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Equal(t, 3, sumChunked.Chunks)
	assert.Equal(t, 1, sumSingle.Chunks)
	assert.Equal(t, records(single.db), records(chunked.db))
	assert.Equal(t, sumSingle.StockCreated, sumChunked.StockCreated)
	assert.Equal(t, sumSingle.SalesCreated, sumChunked.SalesCreated)
}

func TestProcess_FallaEnChunkRevierteTodo(t *testing.T) {
	f := newFixture(t)
	boom := errors.New("disco lleno")
	f.db.ChunkHook = func(chunk int) error {
		if chunk == 2 {
			return boom
		}
		return nil
	}
	rows := sheet(
		[]string{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "2"},
		[]string{"02/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "2"},
		[]string{"03/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "2"},
	)

	sum, err := f.run(t, rows, navidad.Input{ChunkSize: 2})
	require.Error(t, err)
	assert.ErrorIs(t, err, boom)
	assert.Nil(t, sum)
	assert.Empty(t, f.db.AllStock())
	assert.Empty(t, f.db.AllSales())
}

func TestProcess_ClaveRepetidaEnChunkGanaLaUltima(t *testing.T) {
	f := newFixture(t)
	rows := sheet(
		[]string{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10", "2"},
		[]string{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "12", "4"},
	)

	sum, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)

	assert.Equal(t, 1, sum.StockCreated)
	assert.Equal(t, 1, sum.StockUpdated)
	stock := f.db.AllStock()
	require.Len(t, stock, 1)
	assert.Equal(t, "12", stock[0].StockUnits.String())
	sales := f.db.AllSales()
	require.Len(t, sales, 1)
	assert.Equal(t, "4", sales[0].UnitsSold.String())
}

func TestProcess_AccesoPorLote(t *testing.T) {
	f := newFixture(t)
	var data [][]string
	for d := 1; d <= 20; d++ {
		data = append(data, []string{fmt.Sprintf("%02d/12/2023", d), "Metropolitana", "Centro", "35", "JUGUETES", "10", "1"})
	}

	_, err := f.run(t, sheet(data...), navidad.Input{})
	require.NoError(t, err)

	// Un FindExisting y un BulkCreate por tipo de registro, sin importar la cantidad de filas.
	assert.Equal(t, 2, f.db.FindExistingCalls)
	assert.Equal(t, 2, f.db.BulkCreateCalls)
	assert.Zero(t, f.db.BulkUpdateCalls)
}

func TestProcess_SinEncabezado(t *testing.T) {
	f := newFixture(t)
	rows := [][]string{
		{"Dia", "Sucursal", "Otra"},
		{"01/12/2023", "35", "x"},
	}

	sum, err := f.run(t, rows, navidad.Input{})
	require.Error(t, err)
	assert.ErrorIs(t, err, domnavidad.ErrHeadersNotFound)
	assert.Nil(t, sum)
}

func TestProcess_ErrorAlAbrir(t *testing.T) {
	f := newFixture(t)
	loader := navidad.NewLoader(&sliceOpener{err: domnavidad.ErrFileNotFound}, f.db, logger.Nop())

	_, err := loader.Process(context.Background(), navidad.Input{Path: "no-existe.xlsx"})
	assert.ErrorIs(t, err, domnavidad.ErrFileNotFound)
}

func TestProcess_EncabezadoIncompletoLeeVacias(t *testing.T) {
	f := newFixture(t)
	rows := [][]string{
		{"Dia", "Region", "Zona", "Sucursal", "SubFamilia", "Unidades Stock Final"},
		{"01/12/2023", "Metropolitana", "Centro", "35", "JUGUETES", "10"},
	}

	sum, err := f.run(t, rows, navidad.Input{})
	require.NoError(t, err)
	assert.Equal(t, 1, sum.StockCreated)
	assert.Equal(t, 1, sum.SalesSkipped)
}

func TestEffectiveChunkSize(t *testing.T) {
	assert.Equal(t, navidad.DefaultChunkSize, navidad.EffectiveChunkSize(0))
	assert.Equal(t, navidad.DefaultChunkSize, navidad.EffectiveChunkSize(-5))
	assert.Equal(t, 250, navidad.EffectiveChunkSize(250))
}
