package dto

// CurveQuery filtros de las curvas de temporada (querystring).
type CurveQuery struct {
	RegionID  *int64 `query:"region_id"`
	ZoneID    *int64 `query:"zone_id"`
	StoreCode string `query:"store_code"`
	FamilyID  *int64 `query:"family_id"`
	Source    string `query:"source"` // all | stores | cdr (solo stock)
	Year      int    `query:"year"`   // año pivote (solo ventas)
}

// CurveDataset serie de un año.
type CurveDataset struct {
	Label string    `json:"label"`
	Year  int       `json:"year"`
	Data  []float64 `json:"data"`
}

// CurveScope ámbito efectivamente aplicado.
type CurveScope struct {
	RegionID  *int64 `json:"region_id"`
	ZoneID    *int64 `json:"zone_id"`
	StoreCode string `json:"store_code,omitempty"`
	FamilyID  *int64 `json:"family_id"`
}

// CurveMeta metadatos de la comparación.
type CurveMeta struct {
	PivotYear      int        `json:"pivot_year"`
	YearsCompared  []int      `json:"years_compared"`
	AvailableYears []int      `json:"available_years"`
	Source         string     `json:"source,omitempty"`
	Scope          CurveScope `json:"scope"`
	Note           string     `json:"note,omitempty"`
}

// CurvesResponse eje X común (MM-DD) y una serie por año.
type CurvesResponse struct {
	Labels   []string       `json:"labels"`
	Datasets []CurveDataset `json:"datasets"`
	Meta     CurveMeta      `json:"meta"`
}
