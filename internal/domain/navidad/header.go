package navidad

import (
	"fmt"
	"strings"
)

// Columnas canónicas que el cargador necesita, en el orden de la planilla modelo.
const (
	ColDia        = "Dia"
	ColRegion     = "Region"
	ColZona       = "Zona"
	ColSucursal   = "Sucursal"
	ColSubFamilia = "SubFamilia"
	ColStockFinal = "Unidades Stock Final"
	ColVendidas   = "Unidades Vendidas"
)

// RequiredColumns lista fija de las siete columnas semánticas.
var RequiredColumns = []string{
	ColDia, ColRegion, ColZona, ColSucursal, ColSubFamilia, ColStockFinal, ColVendidas,
}

const (
	// MaxHeaderScan filas iniciales que se revisan buscando el encabezado.
	MaxHeaderScan = 30
	// MinHeaderMatches umbral mínimo de columnas requeridas reconocidas.
	MinHeaderMatches = 5
)

// headerAliases sinónimos conocidos (se normalizan al construir el índice).
var headerAliases = map[string]string{
	"día":   ColDia,
	"dia":   ColDia,
	"fecha": ColDia,
	"day":   ColDia,
	"date":  ColDia,

	"region": ColRegion,
	"región": ColRegion,

	"zona": ColZona,
	"zone": ColZona,

	"sucursal": ColSucursal,
	"tienda":   ColSucursal,
	"store":    ColSucursal,

	"subfamilia":  ColSubFamilia,
	"sub familia": ColSubFamilia,
	"origen":      ColSubFamilia,
	"subfamily":   ColSubFamilia,

	"unidades stock final": ColStockFinal,
	"stock final unidades": ColStockFinal,
	"stock final":          ColStockFinal,
	"stock (unidades)":     ColStockFinal,

	"unidades vendidas": ColVendidas,
	"ventas unidades":   ColVendidas,
	"ventas":            ColVendidas,
	"units sold":        ColVendidas,
}

// canonicalByKey alias y nombres requeridos ya normalizados -> nombre canónico.
var canonicalByKey = buildCanonicalIndex()

func buildCanonicalIndex() map[string]string {
	idx := make(map[string]string, len(headerAliases)+len(RequiredColumns))
	for _, name := range RequiredColumns {
		idx[NormalizeHeader(name)] = name
	}
	for alias, name := range headerAliases {
		idx[NormalizeHeader(alias)] = name
	}
	return idx
}

// Canonical devuelve el nombre canónico de un encabezado o "" si no se reconoce.
func Canonical(cell string) string {
	return canonicalByKey[NormalizeHeader(cell)]
}

// Header resultado de la detección: fila del encabezado, nombres de columna y
// posición de cada columna canónica reconocida.
type Header struct {
	Row     int
	Columns []string
	Index   map[string]int
	Matches int
}

// DataStart índice (en el mismo sistema que Row) de la primera fila de datos.
func (h Header) DataStart() int { return h.Row + 1 }

// Missing columnas requeridas que no aparecieron en el encabezado elegido.
func (h Header) Missing() []string {
	var out []string
	for _, name := range RequiredColumns {
		if _, ok := h.Index[name]; !ok {
			out = append(out, name)
		}
	}
	return out
}

// Value devuelve la celda de la columna canónica en la fila o "" si falta.
func (h Header) Value(row []string, column string) string {
	i, ok := h.Index[column]
	if !ok || i >= len(row) {
		return ""
	}
	return row[i]
}

// DetectHeader busca, entre las primeras MaxHeaderScan filas, la que reconoce más columnas
// requeridas. Gana la primera fila con el máximo; corta apenas una fila reconoce las siete.
// Si la mejor reconoce menos de MinHeaderMatches devuelve ErrHeadersNotFound.
func DetectHeader(rows [][]string) (Header, error) {
	best := Header{Row: -1, Matches: -1}
	limit := len(rows)
	if limit > MaxHeaderScan {
		limit = MaxHeaderScan
	}
	for i := 0; i < limit; i++ {
		index := make(map[string]int, len(RequiredColumns))
		for j, cell := range rows[i] {
			canon := Canonical(cell)
			if canon == "" {
				continue
			}
			if _, dup := index[canon]; !dup {
				index[canon] = j
			}
		}
		if len(index) > best.Matches {
			best = Header{Row: i, Index: index, Matches: len(index)}
		}
		if len(index) == len(RequiredColumns) {
			break
		}
	}
	if best.Matches < MinHeaderMatches {
		return Header{}, fmt.Errorf("%w (mejor fila: %d de %d columnas)", ErrHeadersNotFound, max(best.Matches, 0), len(RequiredColumns))
	}
	best.Columns = columnNames(rows[best.Row], best.Index)
	return best, nil
}

// columnNames nombres finales: canónico donde hubo match, texto original en el resto
// (o col_<j> si la celda está vacía). Las columnas duplicadas conservan su texto.
func columnNames(row []string, index map[string]int) []string {
	byPos := make(map[int]string, len(index))
	for name, pos := range index {
		byPos[pos] = name
	}
	cols := make([]string, len(row))
	for j, cell := range row {
		if name, ok := byPos[j]; ok {
			cols[j] = name
			continue
		}
		if raw := strings.TrimSpace(cell); raw != "" {
			cols[j] = raw
			continue
		}
		cols[j] = fmt.Sprintf("col_%d", j)
	}
	return cols
}
