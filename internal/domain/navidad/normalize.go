// Package navidad contiene las reglas puras del cargador de planillas de temporada:
// normalización de fechas, números y códigos de sucursal, y detección de encabezados.
// Ninguna función de normalización devuelve error: la ausencia de valor la decide el llamador.
package navidad

import (
	"math"
	"strconv"
	"strings"
	"time"
	"unicode"

	"github.com/shopspring/decimal"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

// excelEpoch origen de los seriales de fecha de Excel (Windows, con el bug de 1900 incluido).
var excelEpoch = time.Date(1899, time.December, 30, 0, 0, 0, 0, time.UTC)

// maxExcelSerial corresponde al 31/12/9999.
const maxExcelSerial = 2958465

// Formatos aceptados, día primero. "2" y "1" aceptan uno o dos dígitos al parsear.
var dateLayouts = []string{
	"2006-1-2",
	"2006/1/2",
	"2/1/2006",
	"2-1-2006",
	"2.1.2006",
	"2/1/06",
	"2-1-06",
	"2.1.06",
}

// ParseDate convierte una celda a fecha (medianoche UTC).
// Acepta time.Time, texto día-primero y seriales de Excel; ok=false si no hay fecha.
func ParseDate(raw any) (time.Time, bool) {
	switch v := raw.(type) {
	case nil:
		return time.Time{}, false
	case time.Time:
		if v.IsZero() {
			return time.Time{}, false
		}
		return truncateDate(v), true
	case *time.Time:
		if v == nil {
			return time.Time{}, false
		}
		return ParseDate(*v)
	case float64:
		return serialDate(v)
	case float32:
		return serialDate(float64(v))
	case int:
		return serialDate(float64(v))
	case int64:
		return serialDate(float64(v))
	}

	s := strings.TrimSpace(cellText(raw))
	if s == "" {
		return time.Time{}, false
	}
	datePart := s
	if i := strings.IndexAny(datePart, " T"); i > 0 {
		datePart = datePart[:i]
	}
	for _, layout := range dateLayouts {
		if t, err := time.Parse(layout, datePart); err == nil {
			return t, true
		}
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, false
	}
	return serialDate(f)
}

func serialDate(f float64) (time.Time, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) || f < 0 || f > maxExcelSerial {
		return time.Time{}, false
	}
	return excelEpoch.AddDate(0, 0, int(f)), true
}

func truncateDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ParseNumber convierte una celda a número aceptando "1.234,56" y "1,234.56".
// Si aparecen ambos separadores, el último es el decimal; si solo hay coma, la coma es decimal.
func ParseNumber(raw any) (float64, bool) {
	switch v := raw.(type) {
	case nil:
		return 0, false
	case float64:
		return finite(v)
	case float32:
		return finite(float64(v))
	case int:
		return float64(v), true
	case int64:
		return float64(v), true
	case int32:
		return float64(v), true
	case decimal.Decimal:
		return v.InexactFloat64(), true
	}

	s := strings.Map(func(r rune) rune {
		if unicode.IsSpace(r) {
			return -1
		}
		return r
	}, cellText(raw))
	if s == "" {
		return 0, false
	}
	lastComma := strings.LastIndex(s, ",")
	lastDot := strings.LastIndex(s, ".")
	switch {
	case lastComma >= 0 && lastDot >= 0:
		if lastComma > lastDot {
			s = strings.ReplaceAll(s, ".", "")
			s = strings.ReplaceAll(s, ",", ".")
		} else {
			s = strings.ReplaceAll(s, ",", "")
		}
	case lastComma >= 0:
		s = strings.ReplaceAll(s, ",", ".")
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, false
	}
	return finite(f)
}

func finite(f float64) (float64, bool) {
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// NormalizeStoreCode lleva un código de sucursal a su forma canónica:
// 54.0 -> "54", " 054 " -> "54", "00" -> "0"; los códigos no numéricos ("CDR01") quedan recortados.
// pad se acepta por compatibilidad con los formularios y no altera el resultado.
func NormalizeStoreCode(raw any, pad int) string {
	_ = pad
	switch v := raw.(type) {
	case nil:
		return ""
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) < 1e15 {
			return strconv.FormatInt(int64(v), 10)
		}
	case int:
		return strconv.Itoa(v)
	case int64:
		return strconv.FormatInt(v, 10)
	}

	s := strings.TrimSpace(cellText(raw))
	if s == "" {
		return ""
	}
	if isDigits(s) {
		return stripZeros(s)
	}
	if f, err := strconv.ParseFloat(s, 64); err == nil && f == math.Trunc(f) && math.Abs(f) < 1e15 {
		return strconv.FormatInt(int64(f), 10)
	}
	return s
}

func isDigits(s string) bool {
	if s == "" {
		return false
	}
	for i := 0; i < len(s); i++ {
		if s[i] < '0' || s[i] > '9' {
			return false
		}
	}
	return true
}

func stripZeros(s string) string {
	s = strings.TrimLeft(s, "0")
	if s == "" {
		return "0"
	}
	return s
}

// NormalizeHeader normaliza un encabezado para compararlo: minúsculas, sin tildes,
// sin saltos de línea y con los espacios internos colapsados.
func NormalizeHeader(s string) string {
	s = strings.ReplaceAll(s, "\n", " ")
	s = strings.ToLower(strings.Join(strings.Fields(s), " "))
	folded, _, err := transform.String(diacritics(), s)
	if err != nil {
		return s
	}
	return folded
}

// diacritics crea un transformer nuevo por llamada: los transformer encadenados tienen estado.
func diacritics() transform.Transformer {
	return transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)
}

func cellText(raw any) string {
	switch v := raw.(type) {
	case string:
		return v
	case []byte:
		return string(v)
	case interface{ String() string }:
		return v.String()
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64)
	case int:
		return strconv.Itoa(v)
	case bool:
		return strconv.FormatBool(v)
	default:
		return ""
	}
}
