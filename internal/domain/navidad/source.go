package navidad

import (
	"path/filepath"
	"strings"
)

// RowSource recorre una planilla fila por fila sin materializarla completa.
// Las celdas llegan como texto crudo; las filas pueden tener largo variable.
type RowSource interface {
	Next() bool
	Row() []string
	Err() error
	Close() error
}

// SupportedExtension indica si hay lector para la extensión del nombre de archivo.
func SupportedExtension(name string) bool {
	switch strings.ToLower(filepath.Ext(name)) {
	case ".xlsx", ".xlsm", ".xltx", ".xltm", ".csv", ".txt", ".tsv":
		return true
	}
	return false
}
