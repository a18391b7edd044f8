package entity

// Family dimensión de producto (SubFamilia). Origen es el texto que aparece en la columna
// "SubFamilia" de las planillas y se usa como clave de cruce.
type Family struct {
	ID            int64
	Origen        string
	Sector        string
	FamiliaStd    string
	SubfamiliaStd string
	IsActive      bool
}
