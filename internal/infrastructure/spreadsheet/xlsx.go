package spreadsheet

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/xuri/excelize/v2"

	domnavidad "github.com/jhoicas/retail-curves/internal/domain/navidad"
)

// xlsxSource recorre una hoja con el iterador de excelize sin cargarla completa.
// Las celdas se leen en crudo: fechas como número de serie y números sin formato.
type xlsxSource struct {
	f    *excelize.File
	rows *excelize.Rows
	row  []string
	err  error
}

func openXLSX(path, sheet string) (*xlsxSource, error) {
	f, err := excelize.OpenFile(path)
	if err != nil {
		return nil, fmt.Errorf("abrir libro: %w", err)
	}
	name, err := pickSheet(f.GetSheetList(), sheet)
	if err != nil {
		_ = f.Close()
		return nil, err
	}
	rows, err := f.Rows(name)
	if err != nil {
		_ = f.Close()
		return nil, fmt.Errorf("leer hoja %q: %w", name, err)
	}
	return &xlsxSource{f: f, rows: rows}, nil
}

// pickSheet resuelve el selector: nombre exacto primero, luego índice base 0.
func pickSheet(sheets []string, selector string) (string, error) {
	if len(sheets) == 0 {
		return "", fmt.Errorf("%w: el libro no tiene hojas", domnavidad.ErrSheetNotFound)
	}
	selector = strings.TrimSpace(selector)
	if selector == "" {
		return sheets[0], nil
	}
	for _, s := range sheets {
		if s == selector {
			return s, nil
		}
	}
	if i, err := strconv.Atoi(selector); err == nil && i >= 0 && i < len(sheets) {
		return sheets[i], nil
	}
	return "", fmt.Errorf("%w: %q (disponibles: %s)", domnavidad.ErrSheetNotFound, selector, strings.Join(sheets, ", "))
}

func (s *xlsxSource) Next() bool {
	if s.err != nil {
		return false
	}
	if !s.rows.Next() {
		s.err = s.rows.Error()
		return false
	}
	cols, err := s.rows.Columns(excelize.Options{RawCellValue: true})
	if err != nil {
		s.err = fmt.Errorf("leer fila: %w", err)
		return false
	}
	s.row = cols
	return true
}

func (s *xlsxSource) Row() []string { return s.row }
func (s *xlsxSource) Err() error    { return s.err }

func (s *xlsxSource) Close() error {
	return errors.Join(s.rows.Close(), s.f.Close())
}
