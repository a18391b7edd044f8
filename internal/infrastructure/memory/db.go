// Package memory implementa los puertos de persistencia en memoria, con transacciones
// simuladas por snapshot. Se usa en tests y en corridas de prueba sin base de datos.
package memory

import (
	"context"
	"fmt"
	"maps"
	"sort"
	"sync"
	"time"

	"github.com/jhoicas/retail-curves/internal/application/catalog"
	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var (
	_ navidad.TxRunner = (*DB)(nil)
	_ catalog.TxRunner = (*DB)(nil)
)

type recKey struct {
	storeID  int64
	familyID int64
	day      string
}

func keyOf(storeID, familyID int64, date time.Time) recKey {
	return recKey{storeID: storeID, familyID: familyID, day: date.Format(time.DateOnly)}
}

type state struct {
	seq      int64
	regions  map[int64]entity.Region
	zones    map[int64]entity.Zone
	stores   map[int64]entity.Store
	families map[int64]entity.Family
	stock    map[recKey]entity.StockRecord
	sales    map[recKey]entity.SalesRecord
	users    map[string]entity.User
	runs     map[string]entity.ImportRun
}

func newState() state {
	return state{
		regions:  make(map[int64]entity.Region),
		zones:    make(map[int64]entity.Zone),
		stores:   make(map[int64]entity.Store),
		families: make(map[int64]entity.Family),
		stock:    make(map[recKey]entity.StockRecord),
		sales:    make(map[recKey]entity.SalesRecord),
		users:    make(map[string]entity.User),
		runs:     make(map[string]entity.ImportRun),
	}
}

func (s state) clone() state {
	return state{
		seq:      s.seq,
		regions:  maps.Clone(s.regions),
		zones:    maps.Clone(s.zones),
		stores:   maps.Clone(s.stores),
		families: maps.Clone(s.families),
		stock:    maps.Clone(s.stock),
		sales:    maps.Clone(s.sales),
		users:    maps.Clone(s.users),
		runs:     maps.Clone(s.runs),
	}
}

// DB base en memoria. Las transacciones se serializan.
type DB struct {
	txMu sync.Mutex
	mu   sync.Mutex
	st   state

	// ChunkHook, si está definido, se invoca al abrir cada chunk (número base 1).
	// Un error simula una falla de escritura dentro del savepoint.
	ChunkHook func(chunk int) error
	chunks    int

	// Contadores de llamadas por lote, útiles para verificar el acceso a datos.
	FindExistingCalls int
	BulkCreateCalls   int
	BulkUpdateCalls   int
}

// New crea una base vacía.
func New() *DB {
	return &DB{st: newState()}
}

func (db *DB) nextID() int64 {
	db.st.seq++
	return db.st.seq
}

func (db *DB) snapshot() state {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.st.clone()
}

func (db *DB) restore(s state) {
	db.mu.Lock()
	defer db.mu.Unlock()
	db.st = s
}

// ─── Transacciones ───────────────────────────────────────────────────────────

// RunImport ejecuta fn sobre una transacción simulada; si falla se restaura el snapshot.
func (db *DB) RunImport(ctx context.Context, fn func(tx navidad.ImportTx) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()
	db.chunks = 0
	before := db.snapshot()
	if err := fn(importTx{db: db}); err != nil {
		db.restore(before)
		return err
	}
	return nil
}

// RunCatalog ejecuta una carga de maestros con la misma semántica de rollback.
func (db *DB) RunCatalog(ctx context.Context, fn func(tx catalog.Tx) error) error {
	db.txMu.Lock()
	defer db.txMu.Unlock()
	before := db.snapshot()
	if err := fn(catalogTx{db: db}); err != nil {
		db.restore(before)
		return err
	}
	return nil
}

type importTx struct{ db *DB }

func (t importTx) Stores() repository.StoreRepository    { return t.db.Stores() }
func (t importTx) Families() repository.FamilyRepository { return t.db.Families() }

func (t importTx) Chunk(ctx context.Context, fn func(repository.StockRecordRepository, repository.SalesRecordRepository) error) error {
	t.db.chunks++
	before := t.db.snapshot()
	if hook := t.db.ChunkHook; hook != nil {
		if err := hook(t.db.chunks); err != nil {
			return fmt.Errorf("savepoint chunk %d: %w", t.db.chunks, err)
		}
	}
	if err := fn(t.db.StockRecords(), t.db.SalesRecords()); err != nil {
		t.db.restore(before)
		return err
	}
	return nil
}

type catalogTx struct{ db *DB }

func (t catalogTx) Regions() repository.RegionRepository  { return t.db.Regions() }
func (t catalogTx) Zones() repository.ZoneRepository      { return t.db.Zones() }
func (t catalogTx) Stores() repository.StoreRepository    { return t.db.Stores() }
func (t catalogTx) Families() repository.FamilyRepository { return t.db.Families() }

// ─── Inspección (tests) ──────────────────────────────────────────────────────

// AllStock registros de stock ordenados por sucursal, familia y fecha.
func (db *DB) AllStock() []entity.StockRecord {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.StockRecord, 0, len(db.st.stock))
	for _, r := range db.st.stock {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return lessKey(out[i].Key(), out[j].Key()) })
	return out
}

// AllSales registros de ventas ordenados por sucursal, familia y fecha.
func (db *DB) AllSales() []entity.SalesRecord {
	db.mu.Lock()
	defer db.mu.Unlock()
	out := make([]entity.SalesRecord, 0, len(db.st.sales))
	for _, r := range db.st.sales {
		out = append(out, r)
	}
	sort.Slice(out, func(i, j int) bool { return lessKey(out[i].Key(), out[j].Key()) })
	return out
}

func lessKey(a, b entity.RecordKey) bool {
	if a.StoreID != b.StoreID {
		return a.StoreID < b.StoreID
	}
	if a.FamilyID != b.FamilyID {
		return a.FamilyID < b.FamilyID
	}
	return a.Date.Before(b.Date)
}
