package entity

// Store representa una sucursal o un centro de distribución (CDR).
// Code es la clave externa estable con la que se cruzan las planillas: nunca se regenera.
type Store struct {
	ID                   int64
	Code                 string
	Name                 string
	RegionID             int64
	ZoneID               int64
	RegionName           string // desnormalizado en lecturas (JOIN), no se persiste
	ZoneName             string
	IsDistributionCenter bool // CDR: carga stock, nunca ventas
}
