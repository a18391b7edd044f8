package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var _ repository.ReportRepository = (*ReportRepo)(nil)

// ReportRepo agregaciones diarias para las curvas de temporada.
type ReportRepo struct {
	q Querier
}

// NewReportRepository construye el adaptador.
func NewReportRepository(q Querier) *ReportRepo {
	return &ReportRepo{q: q}
}

// AvailableYears años con stock o ventas cargados, ascendente.
func (r *ReportRepo) AvailableYears(ctx context.Context) ([]int, error) {
	rows, err := r.q.Query(ctx, `
		SELECT DISTINCT EXTRACT(YEAR FROM date)::int AS y FROM stock_records
		UNION
		SELECT DISTINCT EXTRACT(YEAR FROM date)::int FROM sales_records
		ORDER BY 1`)
	if err != nil {
		return nil, fmt.Errorf("available years: %w", err)
	}
	defer rows.Close()
	var years []int
	for rows.Next() {
		var y int
		if err := rows.Scan(&y); err != nil {
			return nil, err
		}
		years = append(years, y)
	}
	return years, rows.Err()
}

// DailyStock suma diaria de stock_units en [from, to] para el ámbito y origen dados.
func (r *ReportRepo) DailyStock(ctx context.Context, from, to time.Time, scope repository.ReportScope, source string) ([]repository.DailyTotal, error) {
	w := newScopeFilter(from, to, scope)
	switch source {
	case repository.SourceStores:
		w.add("NOT s.is_distribution_center")
	case repository.SourceCDR:
		w.add("s.is_distribution_center")
	}
	query := `
		SELECT t.date, SUM(t.stock_units)
		FROM stock_records t
		JOIN stores s ON s.id = t.store_id
		JOIN families f ON f.id = t.family_id
		WHERE ` + w.sql() + `
		GROUP BY t.date ORDER BY t.date`
	return r.daily(ctx, query, w.args)
}

// DailySales suma diaria de units_sold en [from, to]; nunca incluye CDR.
func (r *ReportRepo) DailySales(ctx context.Context, from, to time.Time, scope repository.ReportScope) ([]repository.DailyTotal, error) {
	w := newScopeFilter(from, to, scope)
	w.add("NOT s.is_distribution_center")
	query := `
		SELECT t.date, SUM(t.units_sold)
		FROM sales_records t
		JOIN stores s ON s.id = t.store_id
		JOIN families f ON f.id = t.family_id
		WHERE ` + w.sql() + `
		GROUP BY t.date ORDER BY t.date`
	return r.daily(ctx, query, w.args)
}

func (r *ReportRepo) daily(ctx context.Context, query string, args []any) ([]repository.DailyTotal, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("daily totals: %w", err)
	}
	defer rows.Close()
	var out []repository.DailyTotal
	for rows.Next() {
		var d repository.DailyTotal
		if err := rows.Scan(&d.Date, &d.Units); err != nil {
			return nil, err
		}
		out = append(out, d)
	}
	return out, rows.Err()
}

// scopeFilter arma el WHERE con parámetros posicionales.
type scopeFilter struct {
	conds []string
	args  []any
}

func newScopeFilter(from, to time.Time, scope repository.ReportScope) *scopeFilter {
	w := &scopeFilter{}
	w.add("f.is_active")
	w.add("t.date >= $%d", from)
	w.add("t.date <= $%d", to)
	if scope.RegionID != nil {
		w.add("s.region_id = $%d", *scope.RegionID)
	}
	if scope.ZoneID != nil {
		w.add("s.zone_id = $%d", *scope.ZoneID)
	}
	if scope.StoreCode != "" {
		w.add("s.code = $%d", scope.StoreCode)
	}
	if scope.FamilyID != nil {
		w.add("t.family_id = $%d", *scope.FamilyID)
	}
	return w
}

// add agrega una condición; si recibe un argumento, format lleva un único %d para su posición.
func (w *scopeFilter) add(format string, arg ...any) {
	if len(arg) == 0 {
		w.conds = append(w.conds, format)
		return
	}
	w.args = append(w.args, arg[0])
	w.conds = append(w.conds, fmt.Sprintf(format, len(w.args)))
}

func (w *scopeFilter) sql() string {
	return strings.Join(w.conds, " AND ")
}
