package dto

// OptionItem elemento genérico de los selectores en cascada.
type OptionItem struct {
	ID    any    `json:"id"`
	Label string `json:"label"`
}

// OptionListResponse envoltura {"items": [...]} de los selectores.
type OptionListResponse struct {
	Items []OptionItem `json:"items"`
}

// NamedRef referencia id + nombre.
type NamedRef struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// StoreRef código y nombre de sucursal.
type StoreRef struct {
	Code string `json:"code"`
	Name string `json:"name"`
}

// StoreInfoResponse sucursal con su región y zona; OK=false si el código no existe.
type StoreInfoResponse struct {
	OK                   bool      `json:"ok"`
	Store                *StoreRef `json:"store,omitempty"`
	Region               *NamedRef `json:"region,omitempty"`
	Zone                 *NamedRef `json:"zone,omitempty"`
	IsDistributionCenter bool      `json:"is_distribution_center,omitempty"`
}

// FamilyResponse familia del catálogo.
type FamilyResponse struct {
	ID            int64  `json:"id"`
	Origen        string `json:"origen"`
	Sector        string `json:"sector"`
	FamiliaStd    string `json:"familia_std"`
	SubfamiliaStd string `json:"subfamilia_std"`
}

// FamilyListResponse listado de familias activas.
type FamilyListResponse struct {
	Items []FamilyResponse `json:"items"`
}

// LoadStoresResult contadores de la carga de sucursales.
type LoadStoresResult struct {
	RegionsCreated int `json:"regions_created"`
	ZonesCreated   int `json:"zones_created"`
	StoresCreated  int `json:"stores_created"`
	StoresUpdated  int `json:"stores_updated"`
}

// LoadFamiliesResult contadores de la carga de familias.
type LoadFamiliesResult struct {
	Created     int `json:"created"`
	Updated     int `json:"updated"`
	Deactivated int `json:"deactivated"`
}
