package memory

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var (
	_ repository.StockRecordRepository = stockRepo{}
	_ repository.SalesRecordRepository = salesRepo{}
)

// StockRecords repositorio de stock diario.
func (db *DB) StockRecords() repository.StockRecordRepository { return stockRepo{db} }

// SalesRecords repositorio de ventas diarias.
func (db *DB) SalesRecords() repository.SalesRecordRepository { return salesRepo{db} }

type scope struct {
	stores   map[int64]struct{}
	families map[int64]struct{}
	days     map[string]struct{}
}

func newScope(storeIDs, familyIDs []int64, dates []time.Time) scope {
	s := scope{
		stores:   make(map[int64]struct{}, len(storeIDs)),
		families: make(map[int64]struct{}, len(familyIDs)),
		days:     make(map[string]struct{}, len(dates)),
	}
	for _, id := range storeIDs {
		s.stores[id] = struct{}{}
	}
	for _, id := range familyIDs {
		s.families[id] = struct{}{}
	}
	for _, d := range dates {
		s.days[d.Format(time.DateOnly)] = struct{}{}
	}
	return s
}

func (s scope) contains(k recKey) bool {
	_, okS := s.stores[k.storeID]
	_, okF := s.families[k.familyID]
	_, okD := s.days[k.day]
	return okS && okF && okD
}

// ─── Stock ───────────────────────────────────────────────────────────────────

type stockRepo struct{ db *DB }

func (r stockRepo) FindExisting(_ context.Context, storeIDs, familyIDs []int64, dates []time.Time) ([]entity.RecordKey, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.FindExistingCalls++
	sc := newScope(storeIDs, familyIDs, dates)
	var out []entity.RecordKey
	for k, rec := range r.db.st.stock {
		if sc.contains(k) {
			out = append(out, rec.Key())
		}
	}
	return out, nil
}

func (r stockRepo) BulkCreate(_ context.Context, records []*entity.StockRecord) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.BulkCreateCalls++
	for _, rec := range records {
		k := keyOf(rec.StoreID, rec.FamilyID, rec.Date)
		if _, ok := r.db.st.stock[k]; ok {
			return 0, domain.ErrDuplicate
		}
		rec.ID = r.db.nextID()
		r.db.st.stock[k] = *rec
	}
	return int64(len(records)), nil
}

func (r stockRepo) BulkUpdate(_ context.Context, records []*entity.StockRecord) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.BulkUpdateCalls++
	var n int64
	for _, rec := range records {
		k := keyOf(rec.StoreID, rec.FamilyID, rec.Date)
		cur, ok := r.db.st.stock[k]
		if !ok {
			continue
		}
		cur.StockUnits = rec.StockUnits
		cur.StockValue = rec.StockValue
		r.db.st.stock[k] = cur
		n++
	}
	return n, nil
}

// ─── Ventas ──────────────────────────────────────────────────────────────────

type salesRepo struct{ db *DB }

func (r salesRepo) FindExisting(_ context.Context, storeIDs, familyIDs []int64, dates []time.Time) ([]entity.RecordKey, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.FindExistingCalls++
	sc := newScope(storeIDs, familyIDs, dates)
	var out []entity.RecordKey
	for k, rec := range r.db.st.sales {
		if sc.contains(k) {
			out = append(out, rec.Key())
		}
	}
	return out, nil
}

func (r salesRepo) BulkCreate(_ context.Context, records []*entity.SalesRecord) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.BulkCreateCalls++
	if err := checkUnitsSold(records); err != nil {
		return 0, err
	}
	for _, rec := range records {
		k := keyOf(rec.StoreID, rec.FamilyID, rec.Date)
		if _, ok := r.db.st.sales[k]; ok {
			return 0, domain.ErrDuplicate
		}
		rec.ID = r.db.nextID()
		r.db.st.sales[k] = *rec
	}
	return int64(len(records)), nil
}

func (r salesRepo) BulkUpdate(_ context.Context, records []*entity.SalesRecord) (int64, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	r.db.BulkUpdateCalls++
	if err := checkUnitsSold(records); err != nil {
		return 0, err
	}
	var n int64
	for _, rec := range records {
		k := keyOf(rec.StoreID, rec.FamilyID, rec.Date)
		cur, ok := r.db.st.sales[k]
		if !ok {
			continue
		}
		cur.UnitsSold = rec.UnitsSold
		cur.Revenue = rec.Revenue
		r.db.st.sales[k] = cur
		n++
	}
	return n, nil
}

// checkUnitsSold replica el CHECK (units_sold > 0) de la tabla sales_records.
func checkUnitsSold(records []*entity.SalesRecord) error {
	for _, rec := range records {
		if !rec.UnitsSold.IsPositive() {
			return fmt.Errorf("%w: units_sold=%s", domain.ErrInvalidInput, rec.UnitsSold)
		}
	}
	return nil
}
