package report

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/retail-curves/internal/application/dto"
	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
	"github.com/jhoicas/retail-curves/pkg/logger"
)

const scopeNote = "Si se elige sucursal, región y zona se fuerzan a las de esa sucursal."

// Service curvas de temporada de stock y ventas comparando hasta tres años.
type Service struct {
	reports repository.ReportRepository
	stores  repository.StoreRepository
	season  Season
	now     func() time.Time
	log     *logger.Logger
}

// NewService construye el servicio de reportes.
func NewService(reports repository.ReportRepository, stores repository.StoreRepository, season Season, log *logger.Logger) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{reports: reports, stores: stores, season: season, now: time.Now, log: log}
}

// StockCurves stock diario (no acumulado) por año. El pivote es el último año con datos.
func (s *Service) StockCurves(ctx context.Context, q dto.CurveQuery) (*dto.CurvesResponse, error) {
	source := strings.ToLower(strings.TrimSpace(q.Source))
	if source == "" {
		source = repository.SourceAll
	}
	if source != repository.SourceAll && source != repository.SourceStores && source != repository.SourceCDR {
		return nil, fmt.Errorf("source %q (all|stores|cdr): %w", q.Source, domain.ErrInvalidInput)
	}
	available, err := s.reports.AvailableYears(ctx)
	if err != nil {
		return nil, err
	}
	pivot := s.now().Year()
	if len(available) > 0 {
		pivot = available[len(available)-1]
	}
	scope, applied, err := s.coherentScope(ctx, q)
	if err != nil {
		return nil, err
	}

	resp := s.newResponse(pivot, available, applied)
	resp.Meta.Source = source
	for _, y := range resp.Meta.YearsCompared {
		from, to := s.season.Window(y)
		totals, err := s.reports.DailyStock(ctx, from, to, scope, source)
		if err != nil {
			return nil, err
		}
		series := dailySeries(from, to, totals, false)
		if flat(series) {
			continue
		}
		resp.Datasets = append(resp.Datasets, dto.CurveDataset{Label: fmt.Sprintf("Stock diario %d", y), Year: y, Data: series})
	}
	return resp, nil
}

// SalesCurves ventas diarias acumuladas por año, siempre sin CDR. El pivote viene en q.Year
// (por defecto el último año con datos).
func (s *Service) SalesCurves(ctx context.Context, q dto.CurveQuery) (*dto.CurvesResponse, error) {
	available, err := s.reports.AvailableYears(ctx)
	if err != nil {
		return nil, err
	}
	pivot := q.Year
	if pivot == 0 {
		pivot = s.now().Year()
		if len(available) > 0 {
			pivot = available[len(available)-1]
		}
	}
	scope, applied, err := s.coherentScope(ctx, q)
	if err != nil {
		return nil, err
	}

	resp := s.newResponse(pivot, available, applied)
	for _, y := range resp.Meta.YearsCompared {
		from, to := s.season.Window(y)
		totals, err := s.reports.DailySales(ctx, from, to, scope)
		if err != nil {
			return nil, err
		}
		series := dailySeries(from, to, totals, true)
		if flat(series) {
			continue
		}
		resp.Datasets = append(resp.Datasets, dto.CurveDataset{Label: fmt.Sprintf("Ventas acumuladas %d", y), Year: y, Data: series})
	}
	return resp, nil
}

func (s *Service) newResponse(pivot int, available []int, applied dto.CurveScope) *dto.CurvesResponse {
	if available == nil {
		available = []int{}
	}
	years := YearsToCompare(pivot, available)
	if years == nil {
		years = []int{}
	}
	return &dto.CurvesResponse{
		Labels:   s.season.Labels(pivot),
		Datasets: []dto.CurveDataset{},
		Meta: dto.CurveMeta{
			PivotYear:      pivot,
			YearsCompared:  years,
			AvailableYears: available,
			Scope:          applied,
			Note:           scopeNote,
		},
	}
}

// coherentScope con sucursal válida fuerza su región y zona; una sucursal inexistente se ignora.
func (s *Service) coherentScope(ctx context.Context, q dto.CurveQuery) (repository.ReportScope, dto.CurveScope, error) {
	scope := repository.ReportScope{FamilyID: q.FamilyID}
	code := strings.TrimSpace(q.StoreCode)
	if code != "" {
		st, err := s.stores.GetByCode(ctx, code)
		if err != nil {
			return scope, dto.CurveScope{}, err
		}
		if st != nil {
			regionID, zoneID := st.RegionID, st.ZoneID
			scope.StoreCode = st.Code
			scope.RegionID = &regionID
			scope.ZoneID = &zoneID
		} else {
			s.log.Debug().Str("store_code", code).Msg("sucursal inexistente, se ignora en el ámbito")
		}
	} else {
		scope.RegionID = q.RegionID
		scope.ZoneID = q.ZoneID
	}
	return scope, dto.CurveScope{
		RegionID:  scope.RegionID,
		ZoneID:    scope.ZoneID,
		StoreCode: scope.StoreCode,
		FamilyID:  scope.FamilyID,
	}, nil
}

// dailySeries un valor por día de [from, to]; los días sin datos valen 0.
func dailySeries(from, to time.Time, totals []repository.DailyTotal, accumulate bool) []float64 {
	byDay := make(map[string]float64, len(totals))
	for _, t := range totals {
		byDay[t.Date.Format(time.DateOnly)] += t.Units.InexactFloat64()
	}
	var series []float64
	acc := 0.0
	for d := from; !d.After(to); d = d.AddDate(0, 0, 1) {
		v := byDay[d.Format(time.DateOnly)]
		if accumulate {
			acc += v
			v = acc
		}
		series = append(series, v)
	}
	return series
}

func flat(series []float64) bool {
	sum := 0.0
	for _, v := range series {
		sum += v
	}
	return sum <= 0
}
