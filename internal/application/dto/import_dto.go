package dto

import "time"

// ImportRequest parámetros del formulario de carga (multipart o CLI).
type ImportRequest struct {
	Sheet      string `form:"sheet"`
	Pad        int    `form:"pad"`
	StrictArea bool   `form:"strict_area"`
	ChunkSize  int    `form:"chunk_size"`
}

// ImportSummaryResponse contadores del cargador.
type ImportSummaryResponse struct {
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

// ImportRunResponse corrida de importación con su resumen.
type ImportRunResponse struct {
	ID         string                `json:"id"`
	UserID     *string               `json:"user_id,omitempty"`
	FileName   string                `json:"file_name"`
	Sheet      string                `json:"sheet,omitempty"`
	Pad        int                   `json:"pad"`
	StrictArea bool                  `json:"strict_area"`
	ChunkSize  int                   `json:"chunk_size"`
	Status     string                `json:"status"`
	Error      string                `json:"error,omitempty"`
	Summary    ImportSummaryResponse `json:"summary"`
	StartedAt  time.Time             `json:"started_at"`
	FinishedAt time.Time             `json:"finished_at"`
}

// ImportRunListResponse listado paginado de corridas.
type ImportRunListResponse struct {
	Items []ImportRunResponse `json:"items"`
	Page  PageResponse        `json:"page"`
}
