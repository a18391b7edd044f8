// Package spreadsheet lee planillas XLSX y CSV fila a fila para el cargador.
package spreadsheet

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strings"

	"github.com/jhoicas/retail-curves/internal/application/navidad"
	domnavidad "github.com/jhoicas/retail-curves/internal/domain/navidad"
)

var _ navidad.SourceOpener = (*Opener)(nil)

// Opener elige el lector según la extensión del archivo.
type Opener struct{}

// NewOpener construye el selector de lectores.
func NewOpener() *Opener {
	return &Opener{}
}

// Open abre path. sheet solo aplica a libros Excel (nombre o índice base 0; vacío = primera hoja).
func (o *Opener) Open(path, sheet string) (domnavidad.RowSource, error) {
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("%w: %s", domnavidad.ErrFileNotFound, path)
		}
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}

	ext := strings.ToLower(filepath.Ext(path))
	if !domnavidad.SupportedExtension(path) {
		if ext == ".xls" {
			return nil, fmt.Errorf("%w: %s (guardá el libro como .xlsx)", domnavidad.ErrUnsupportedFormat, ext)
		}
		return nil, fmt.Errorf("%w: %q", domnavidad.ErrUnsupportedFormat, ext)
	}

	switch ext {
	case ".xlsx", ".xlsm", ".xltx", ".xltm":
		return openXLSX(path, sheet)
	case ".tsv":
		return openCSV(path, '\t')
	default:
		return openCSV(path, 0)
	}
}
