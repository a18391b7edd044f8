package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
)

// BackupReader lectura completa de la base para respaldos.
type BackupReader struct{ db *DB }

// BackupSource devuelve el lector de respaldo.
func (db *DB) BackupSource() BackupReader { return BackupReader{db} }

func (b BackupReader) Regions(_ context.Context) ([]entity.Region, error) {
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	return sortedByID(b.db.st.regions, func(r entity.Region) int64 { return r.ID }), nil
}

func (b BackupReader) Zones(_ context.Context) ([]entity.Zone, error) {
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	return sortedByID(b.db.st.zones, func(z entity.Zone) int64 { return z.ID }), nil
}

func (b BackupReader) Stores(_ context.Context) ([]entity.Store, error) {
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	return sortedByID(b.db.st.stores, func(s entity.Store) int64 { return s.ID }), nil
}

func (b BackupReader) Families(_ context.Context) ([]entity.Family, error) {
	b.db.mu.Lock()
	defer b.db.mu.Unlock()
	return sortedByID(b.db.st.families, func(f entity.Family) int64 { return f.ID }), nil
}

func (b BackupReader) EachStock(_ context.Context, fn func(entity.StockRecord) error) error {
	for _, r := range b.db.AllStock() {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func (b BackupReader) EachSales(_ context.Context, fn func(entity.SalesRecord) error) error {
	for _, r := range b.db.AllSales() {
		if err := fn(r); err != nil {
			return err
		}
	}
	return nil
}

func sortedByID[T any](m map[int64]T, id func(T) int64) []T {
	out := make([]T, 0, len(m))
	for _, v := range m {
		out = append(out, v)
	}
	sort.Slice(out, func(i, j int) bool { return id(out[i]) < id(out[j]) })
	return out
}
