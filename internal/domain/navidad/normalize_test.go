package navidad_test

import (
	"math"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-curves/internal/domain/navidad"
)

func day(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseDate
// ──────────────────────────────────────────────────────────────────────────────

func TestParseDate_MismaFechaEnDistintasRepresentaciones(t *testing.T) {
	want := day(2023, time.October, 1)
	inputs := []any{
		"01/10/2023",
		"1/10/2023",
		"01-10-2023",
		"01.10.2023",
		"2023-10-01",
		"2023-10-01 00:00:00",
		" 01/10/2023 ",
		"01/10/23",
		"45200",
		45200.0,
		time.Date(2023, time.October, 1, 17, 45, 0, 0, time.UTC),
	}
	for _, in := range inputs {
		got, ok := navidad.ParseDate(in)
		require.True(t, ok, "debe parsear %#v", in)
		assert.Equal(t, want, got, "entrada %#v", in)
	}
}

func TestParseDate_DiaPrimero(t *testing.T) {
	got, ok := navidad.ParseDate("05/12/2024")
	require.True(t, ok)
	assert.Equal(t, 5, got.Day())
	assert.Equal(t, time.December, got.Month())
}

func TestParseDate_SerialConDecimalesSeTrunca(t *testing.T) {
	got, ok := navidad.ParseDate("45200.75")
	require.True(t, ok)
	assert.Equal(t, day(2023, time.October, 1), got)
}

func TestParseDate_SinFecha(t *testing.T) {
	for _, in := range []any{nil, "", "   ", "sin dato", "31/02/2023", "-5", time.Time{}, math.NaN()} {
		_, ok := navidad.ParseDate(in)
		assert.False(t, ok, "no debe parsear %#v", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseNumber
// ──────────────────────────────────────────────────────────────────────────────

func TestParseNumber_SeparadoresLocales(t *testing.T) {
	cases := map[string]float64{
		"1.234,56":    1234.56,
		"1,234.56":    1234.56,
		"1 234,56":    1234.56,
		"12,5":        12.5,
		"12.5":        12.5,
		"1.234.567,8": 1234567.8,
		"-3,25":       -3.25,
		"0":           0,
		"50":          50,
	}
	for in, want := range cases {
		got, ok := navidad.ParseNumber(in)
		require.True(t, ok, "debe parsear %q", in)
		assert.InDelta(t, want, got, 1e-9, "entrada %q", in)
	}
}

func TestParseNumber_AmbasConvencionesCoinciden(t *testing.T) {
	a, okA := navidad.ParseNumber("1.234,56")
	b, okB := navidad.ParseNumber("1,234.56")
	require.True(t, okA)
	require.True(t, okB)
	assert.Equal(t, a, b)
}

func TestParseNumber_Tipados(t *testing.T) {
	got, ok := navidad.ParseNumber(42)
	require.True(t, ok)
	assert.Equal(t, 42.0, got)

	got, ok = navidad.ParseNumber(3.5)
	require.True(t, ok)
	assert.Equal(t, 3.5, got)

	got, ok = navidad.ParseNumber(decimal.RequireFromString("7.25"))
	require.True(t, ok)
	assert.Equal(t, 7.25, got)
}

func TestParseNumber_Invalidos(t *testing.T) {
	for _, in := range []any{nil, "", "  ", "abc", "12a", math.NaN(), math.Inf(1), "NaN", "Inf"} {
		_, ok := navidad.ParseNumber(in)
		assert.False(t, ok, "no debe parsear %#v", in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// NormalizeStoreCode
// ──────────────────────────────────────────────────────────────────────────────

func TestNormalizeStoreCode_FormaCanonica(t *testing.T) {
	cases := []struct {
		in   any
		want string
	}{
		{"54", "54"},
		{"54.0", "54"},
		{" 054 ", "54"},
		{54.0, "54"},
		{54, "54"},
		{"0", "0"},
		{"00", "0"},
		{"CDR01", "CDR01"},
		{" cdr 2 ", "cdr 2"},
		{"54.5", "54.5"},
		{"000000000000000000000123", "123"},
		{nil, ""},
		{"", ""},
	}
	for _, c := range cases {
		assert.Equal(t, c.want, navidad.NormalizeStoreCode(c.in, 0), "entrada %#v", c.in)
	}
}

func TestNormalizeStoreCode_PadNoRellena(t *testing.T) {
	assert.Equal(t, "54", navidad.NormalizeStoreCode("54", 3))
	assert.Equal(t, "54", navidad.NormalizeStoreCode("054", 5))
}

func TestNormalizeHeader(t *testing.T) {
	assert.Equal(t, "region", navidad.NormalizeHeader("  Región "))
	assert.Equal(t, "unidades stock final", navidad.NormalizeHeader("Unidades\nStock   Final"))
	assert.Equal(t, "dia", navidad.NormalizeHeader("DÍA"))
}
