package navidad

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

// pendingRow fila ya normalizada esperando el flush de su chunk.
type pendingRow struct {
	date     time.Time
	code     string
	origen   string
	region   string
	zone     string
	stock    float64
	hasStock bool
	sold     float64
	hasSold  bool
}

// batchWriter resuelve y escribe un chunk de filas con operaciones por lote.
type batchWriter struct {
	resolver   *Resolver
	strictArea bool
}

func newBatchWriter(resolver *Resolver, strictArea bool) *batchWriter {
	return &batchWriter{resolver: resolver, strictArea: strictArea}
}

// flush resuelve dimensiones del chunk, separa altas de actualizaciones y escribe
// stock y ventas dentro de un savepoint. Los contadores se acumulan en sum.
func (w *batchWriter) flush(ctx context.Context, tx ImportTx, rows []pendingRow, sum *entity.ImportSummary) error {
	codes, origens := distinctKeys(rows)
	if err := w.resolver.Warm(ctx, codes, origens); err != nil {
		return err
	}

	stockRows := make([]*entity.StockRecord, 0, len(rows))
	salesRows := make([]*entity.SalesRecord, 0, len(rows))
	for _, row := range rows {
		store, err := w.resolver.Store(ctx, row.code)
		if err != nil {
			return err
		}
		if store == nil || (w.strictArea && !sameArea(store, row)) {
			sum.StockSkipped++
			sum.SalesSkipped++
			continue
		}
		family, err := w.resolver.Family(ctx, row.origen)
		if err != nil {
			return err
		}
		if family == nil {
			sum.StockSkipped++
			sum.SalesSkipped++
			continue
		}

		if row.hasStock {
			stockRows = append(stockRows, &entity.StockRecord{
				StoreID:    store.ID,
				FamilyID:   family.ID,
				Date:       row.date,
				StockUnits: toUnits(row.stock),
			})
		} else {
			sum.StockSkipped++
		}

		// Ventas: solo tiendas (no CDR) y unidades > 0 ya redondeadas.
		var sold decimal.Decimal
		if row.hasSold {
			sold = toUnits(row.sold)
		}
		if sold.IsPositive() && !store.IsDistributionCenter {
			salesRows = append(salesRows, &entity.SalesRecord{
				StoreID:   store.ID,
				FamilyID:  family.ID,
				Date:      row.date,
				UnitsSold: sold,
			})
		} else {
			sum.SalesSkipped++
		}
	}

	if len(stockRows) == 0 && len(salesRows) == 0 {
		return nil
	}
	return tx.Chunk(ctx, func(stockRepo repository.StockRecordRepository, salesRepo repository.SalesRecordRepository) error {
		created, updated, err := upsertRecords(ctx, stockRepo, stockRows, func(dst, src *entity.StockRecord) {
			dst.StockUnits = src.StockUnits
			dst.StockValue = src.StockValue
		})
		if err != nil {
			return fmt.Errorf("escribir stock: %w", err)
		}
		sum.StockCreated += created
		sum.StockUpdated += updated

		created, updated, err = upsertRecords(ctx, salesRepo, salesRows, func(dst, src *entity.SalesRecord) {
			dst.UnitsSold = src.UnitsSold
			dst.Revenue = src.Revenue
		})
		if err != nil {
			return fmt.Errorf("escribir ventas: %w", err)
		}
		sum.SalesCreated += created
		sum.SalesUpdated += updated
		return nil
	})
}

// keyed registros con clave natural (sucursal, familia, día).
type keyed interface {
	Key() entity.RecordKey
}

// bulkRepo forma común de los repositorios de stock y ventas.
type bulkRepo[T keyed] interface {
	FindExisting(ctx context.Context, storeIDs, familyIDs []int64, dates []time.Time) ([]entity.RecordKey, error)
	BulkCreate(ctx context.Context, records []T) (int64, error)
	BulkUpdate(ctx context.Context, records []T) (int64, error)
}

// recordKey versión comparable de RecordKey (time.Time no sirve como clave de map).
type recordKey struct {
	storeID  int64
	familyID int64
	day      string
}

func keyOf(k entity.RecordKey) recordKey {
	return recordKey{storeID: k.StoreID, familyID: k.FamilyID, day: k.Date.Format(time.DateOnly)}
}

// upsertRecords separa altas y actualizaciones según las claves existentes y ejecuta un
// insert por lote y un update por lote. Si una clave se repite dentro del chunk gana la
// última aparición y las repeticiones cuentan como actualización.
func upsertRecords[T keyed](ctx context.Context, repo bulkRepo[T], rows []T, merge func(dst, src T)) (created, updated int, err error) {
	if len(rows) == 0 {
		return 0, 0, nil
	}
	storeIDs, familyIDs, dates := scopeOf(rows)
	existingKeys, err := repo.FindExisting(ctx, storeIDs, familyIDs, dates)
	if err != nil {
		return 0, 0, err
	}
	existing := make(map[recordKey]struct{}, len(existingKeys))
	for _, k := range existingKeys {
		existing[keyOf(k)] = struct{}{}
	}

	seen := make(map[recordKey]T, len(rows))
	var toCreate, toUpdate []T
	for _, rec := range rows {
		k := keyOf(rec.Key())
		if prev, ok := seen[k]; ok {
			merge(prev, rec)
			updated++
			continue
		}
		seen[k] = rec
		if _, ok := existing[k]; ok {
			toUpdate = append(toUpdate, rec)
			updated++
		} else {
			toCreate = append(toCreate, rec)
			created++
		}
	}

	if len(toCreate) > 0 {
		if _, err := repo.BulkCreate(ctx, toCreate); err != nil {
			return 0, 0, err
		}
	}
	if len(toUpdate) > 0 {
		if _, err := repo.BulkUpdate(ctx, toUpdate); err != nil {
			return 0, 0, err
		}
	}
	return created, updated, nil
}

// scopeOf conjuntos distintos de sucursales, familias y fechas del chunk.
func scopeOf[T keyed](rows []T) (storeIDs, familyIDs []int64, dates []time.Time) {
	seenStore := make(map[int64]struct{})
	seenFamily := make(map[int64]struct{})
	seenDate := make(map[string]struct{})
	for _, rec := range rows {
		k := rec.Key()
		if _, ok := seenStore[k.StoreID]; !ok {
			seenStore[k.StoreID] = struct{}{}
			storeIDs = append(storeIDs, k.StoreID)
		}
		if _, ok := seenFamily[k.FamilyID]; !ok {
			seenFamily[k.FamilyID] = struct{}{}
			familyIDs = append(familyIDs, k.FamilyID)
		}
		d := k.Date.Format(time.DateOnly)
		if _, ok := seenDate[d]; !ok {
			seenDate[d] = struct{}{}
			dates = append(dates, k.Date)
		}
	}
	return storeIDs, familyIDs, dates
}

func distinctKeys(rows []pendingRow) (codes, origens []string) {
	seenCode := make(map[string]struct{})
	seenOrigen := make(map[string]struct{})
	for _, r := range rows {
		if _, ok := seenCode[r.code]; !ok {
			seenCode[r.code] = struct{}{}
			codes = append(codes, r.code)
		}
		if _, ok := seenOrigen[r.origen]; !ok {
			seenOrigen[r.origen] = struct{}{}
			origens = append(origens, r.origen)
		}
	}
	return codes, origens
}

// sameArea validación estricta: región y zona declaradas deben coincidir con el maestro.
func sameArea(store *entity.Store, row pendingRow) bool {
	return strings.TrimSpace(store.RegionName) == row.region &&
		strings.TrimSpace(store.ZoneName) == row.zone
}

// toUnits redondea a dos decimales como las columnas NUMERIC(14,2).
func toUnits(f float64) decimal.Decimal {
	return decimal.NewFromFloat(f).Round(2)
}
