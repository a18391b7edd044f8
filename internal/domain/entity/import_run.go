package entity

import "time"

// Estados de una corrida de importación.
const (
	ImportStatusSuccess = "success"
	ImportStatusFailed  = "failed"
)

// ImportRun registro de auditoría de cada carga de planilla (web o CLI).
type ImportRun struct {
	ID         string
	UserID     *string // nil en corridas por CLI
	FileName   string
	Sheet      string
	Pad        int
	StrictArea bool
	ChunkSize  int
	Status     string
	Error      string
	Summary    ImportSummary
	StartedAt  time.Time
	FinishedAt time.Time
}

// ImportSummary contadores que devuelve el cargador al terminar.
type ImportSummary struct {
	Rows            int      `json:"rows"`
	StockCreated    int      `json:"stock_created"`
	StockUpdated    int      `json:"stock_updated"`
	StockSkipped    int      `json:"stock_skipped"`
	SalesCreated    int      `json:"sales_created"`
	SalesUpdated    int      `json:"sales_updated"`
	SalesSkipped    int      `json:"sales_skipped"`
	DetectedColumns []string `json:"detected_columns"`
	RowsRaw         int      `json:"rows_raw"`
	Chunks          int      `json:"chunks"`
}
