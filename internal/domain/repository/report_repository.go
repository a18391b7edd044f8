package repository

import (
	"context"
	"time"

	"github.com/shopspring/decimal"
)

// Orígenes de stock para las curvas.
const (
	SourceAll    = "all"
	SourceStores = "stores"
	SourceCDR    = "cdr"
)

// ReportScope filtros de ámbito de los reportes. Los campos vacíos no filtran.
type ReportScope struct {
	RegionID  *int64
	ZoneID    *int64
	StoreCode string
	FamilyID  *int64
}

// DailyTotal suma de unidades de un día.
type DailyTotal struct {
	Date  time.Time
	Units decimal.Decimal
}

// ReportRepository consultas de solo lectura sobre stock y ventas.
// Siempre excluye familias inactivas.
type ReportRepository interface {
	AvailableYears(ctx context.Context) ([]int, error)
	DailyStock(ctx context.Context, from, to time.Time, scope ReportScope, source string) ([]DailyTotal, error)
	// DailySales excluye CDR.
	DailySales(ctx context.Context, from, to time.Time, scope ReportScope) ([]DailyTotal, error)
}
