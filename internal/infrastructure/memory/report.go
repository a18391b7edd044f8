package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var _ repository.ReportRepository = reportRepo{}

// Reports repositorio de consultas para curvas.
func (db *DB) Reports() repository.ReportRepository { return reportRepo{db} }

type reportRepo struct{ db *DB }

func (r reportRepo) AvailableYears(_ context.Context) ([]int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	seen := make(map[int]struct{})
	for k := range r.db.st.stock {
		seen[yearOf(k.day)] = struct{}{}
	}
	for k := range r.db.st.sales {
		seen[yearOf(k.day)] = struct{}{}
	}
	years := make([]int, 0, len(seen))
	for y := range seen {
		years = append(years, y)
	}
	sort.Ints(years)
	return years, nil
}

func (r reportRepo) DailyStock(_ context.Context, from, to time.Time, sc repository.ReportScope, source string) ([]repository.DailyTotal, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	totals := make(map[string]decimal.Decimal)
	for k, rec := range r.db.st.stock {
		if !r.inScope(k, from, to, sc) {
			continue
		}
		cdr := r.db.st.stores[k.storeID].IsDistributionCenter
		if (source == repository.SourceStores && cdr) || (source == repository.SourceCDR && !cdr) {
			continue
		}
		totals[k.day] = totals[k.day].Add(rec.StockUnits)
	}
	return sortedTotals(totals), nil
}

func (r reportRepo) DailySales(_ context.Context, from, to time.Time, sc repository.ReportScope) ([]repository.DailyTotal, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	totals := make(map[string]decimal.Decimal)
	for k, rec := range r.db.st.sales {
		if !r.inScope(k, from, to, sc) || r.db.st.stores[k.storeID].IsDistributionCenter {
			continue
		}
		totals[k.day] = totals[k.day].Add(rec.UnitsSold)
	}
	return sortedTotals(totals), nil
}

// inScope aplica rango de fechas, ámbito y familias activas. Requiere db.mu tomado.
func (r reportRepo) inScope(k recKey, from, to time.Time, sc repository.ReportScope) bool {
	if k.day < from.Format(time.DateOnly) || k.day > to.Format(time.DateOnly) {
		return false
	}
	f, ok := r.db.st.families[k.familyID]
	if !ok || !f.IsActive {
		return false
	}
	if sc.FamilyID != nil && *sc.FamilyID != k.familyID {
		return false
	}
	st := r.db.st.stores[k.storeID]
	if sc.StoreCode != "" && st.Code != sc.StoreCode {
		return false
	}
	if sc.ZoneID != nil && st.ZoneID != *sc.ZoneID {
		return false
	}
	if sc.RegionID != nil && st.RegionID != *sc.RegionID {
		return false
	}
	return true
}

func sortedTotals(totals map[string]decimal.Decimal) []repository.DailyTotal {
	out := make([]repository.DailyTotal, 0, len(totals))
	for day, units := range totals {
		d, _ := time.Parse(time.DateOnly, day)
		out = append(out, repository.DailyTotal{Date: d, Units: units})
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Date.Before(out[j].Date) })
	return out
}

func yearOf(day string) int {
	d, _ := time.Parse(time.DateOnly, day)
	return d.Year()
}
