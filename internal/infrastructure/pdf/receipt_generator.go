// Package pdf genera el comprobante de una corrida de importación.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: título + archivo     │  Estado + fecha             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  PARÁMETROS: hoja / pad / área estricta / chunk             │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Concepto | Creados | Actualizados | Omitidos         │
//	│  ─────────────────────────────────────────────────────────  │
//	│  COLUMNAS DETECTADAS                                         │
//	│  FOOTER: QR con el id de la corrida + error si falló         │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/jhoicas/retail-curves/internal/application/navidad"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
)

var _ navidad.ReceiptGenerator = (*ReceiptGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorError   = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// ReceiptGenerator implementa navidad.ReceiptGenerator usando Maroto v2.
type ReceiptGenerator struct{}

// NewReceiptGenerator construye el generador.
func NewReceiptGenerator() *ReceiptGenerator { return &ReceiptGenerator{} }

// GenerateImportReceipt genera el PDF de la corrida y devuelve sus bytes.
func (g *ReceiptGenerator) GenerateImportReceipt(_ context.Context, run *entity.ImportRun) ([]byte, error) {
	if run == nil {
		return nil, fmt.Errorf("pdf: corrida nula")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Comprobante de importación", true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(headerRow(run))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))
	m.AddRows(paramsRow(run))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))

	m.AddRows(tableHeaderRow())
	m.AddRows(countRow("Stock", run.Summary.StockCreated, run.Summary.StockUpdated, run.Summary.StockSkipped))
	m.AddRows(countRow("Ventas", run.Summary.SalesCreated, run.Summary.SalesUpdated, run.Summary.SalesSkipped))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(run.Summary))

	m.AddRows(line.NewRow(3))
	for _, r := range columnRows(run.Summary.DetectedColumns) {
		m.AddRows(r)
	}
	m.AddRows(line.NewRow(1, props.Line{Color: colorGray, Thickness: 0.3}))
	for _, r := range footerRows(run) {
		m.AddRows(r)
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

// headerRow: título + archivo (izq) y estado + fecha (der).
func headerRow(run *entity.ImportRun) core.Row {
	status := "EXITOSA"
	statusColor := colorPrimary
	if run.Status != entity.ImportStatusSuccess {
		status = "FALLIDA"
		statusColor = colorError
	}
	return row.New(18).Add(
		col.New(7).Add(
			text.New("COMPROBANTE DE IMPORTACIÓN", props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
			text.New("Archivo: "+nonEmpty(run.FileName, "—"), props.Text{
				Size: 9, Top: 9, Color: colorGray,
			}),
		),
		col.New(5).Add(
			text.New("CORRIDA "+status, props.Text{
				Style: fontstyle.Bold, Size: 10, Align: align.Right, Color: statusColor, Top: 1,
			}),
			text.New("Inicio: "+run.StartedAt.Format("02/01/2006 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
			text.New("Fin: "+run.FinishedAt.Format("02/01/2006 15:04:05"), props.Text{
				Size: 8, Align: align.Right, Top: 13, Color: colorGray,
			}),
		),
	)
}

// paramsRow: parámetros con que se ejecutó la carga.
func paramsRow(run *entity.ImportRun) core.Row {
	strict := "no"
	if run.StrictArea {
		strict = "sí"
	}
	return row.New(12).Add(
		col.New(12).Add(
			text.New("PARÁMETROS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
			text.New(fmt.Sprintf("Hoja: %s   |   Pad: %d   |   Área estricta: %s   |   Chunk: %s filas",
				nonEmpty(run.Sheet, "primera"),
				run.Pad,
				strict,
				formatThousands(run.ChunkSize),
			), props.Text{Size: 8, Top: 7, Color: colorGray}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Concepto", 3, align.Left),
		h("Creados", 3, align.Right),
		h("Actualizados", 3, align.Right),
		h("Omitidos", 3, align.Right),
	)
}

func countRow(label string, created, updated, skipped int) core.Row {
	cell := func(s string, a align.Type) core.Col {
		return col.New(3).Add(text.New(s, props.Text{Size: 8, Align: a, Top: 1, Left: 1, Right: 1}))
	}
	return row.New(7).Add(
		cell(label, align.Left),
		cell(formatThousands(created), align.Right),
		cell(formatThousands(updated), align.Right),
		cell(formatThousands(skipped), align.Right),
	)
}

// totalsRow: filas leídas y chunks confirmados.
func totalsRow(sum entity.ImportSummary) core.Row {
	label := func(s string) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2})
	}
	value := func(s string) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			label("Filas con datos:"),
			label("Filas leídas:"),
			label("Chunks:"),
		),
		col.New(3).Add(
			value(formatThousands(sum.Rows)),
			value(formatThousands(sum.RowsRaw)),
			value(formatThousands(sum.Chunks)),
		),
	)
}

func columnRows(cols []string) []core.Row {
	rows := []core.Row{
		row.New(6).Add(col.New(12).Add(
			text.New("COLUMNAS DETECTADAS", props.Text{
				Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1,
			}),
		)),
	}
	if len(cols) == 0 {
		return append(rows, row.New(5).Add(col.New(12).Add(
			text.New("—", props.Text{Size: 7, Color: colorGray, Left: 2}),
		)))
	}
	for _, chunk := range splitEvery(strings.Join(cols, " · "), 110) {
		rows = append(rows, row.New(4).Add(col.New(12).Add(
			text.New(chunk, props.Text{Size: 7, Color: colorGray, Top: 0.5, Left: 2}),
		)))
	}
	return rows
}

// footerRows: QR con el id de la corrida y el error, si lo hubo.
func footerRows(run *entity.ImportRun) []core.Row {
	var rows []core.Row
	if run.Error != "" {
		rows = append(rows, row.New(5).Add(col.New(12).Add(
			text.New("Error:", props.Text{Style: fontstyle.Bold, Size: 7, Color: colorError, Top: 1}),
		)))
		for _, chunk := range splitEvery(run.Error, 100) {
			rows = append(rows, row.New(4).Add(col.New(12).Add(
				text.New(chunk, props.Text{Size: 6.5, Color: colorError, Top: 0.5, Left: 2}),
			)))
		}
		rows = append(rows, row.New(3))
	}
	rows = append(rows, row.New(40).Add(
		col.New(3).Add(code.NewQr(run.ID, props.Rect{Percent: 95, Center: true})),
		col.New(9).Add(
			text.New("Id de corrida", props.Text{Size: 8, Top: 4, Left: 3, Color: colorGray}),
			text.New(run.ID, props.Text{Style: fontstyle.Bold, Size: 9, Top: 10, Left: 3}),
			text.New("Los datos se confirman solo si la corrida es exitosa.", props.Text{
				Size: 7, Top: 20, Left: 3, Color: colorGray,
			}),
		),
	))
	return rows
}

// ── helpers ───────────────────────────────────────────────────────────────────

func nonEmpty(s, fallback string) string {
	if s != "" {
		return s
	}
	return fallback
}

// formatThousands inserta puntos de miles. Ej: 25000 → "25.000".
func formatThousands(n int) string {
	s := strconv.Itoa(n)
	neg := strings.HasPrefix(s, "-")
	s = strings.TrimPrefix(s, "-")
	l := len(s)
	if l <= 3 {
		if neg {
			return "-" + s
		}
		return s
	}
	buf := make([]byte, 0, l+l/3+1)
	if neg {
		buf = append(buf, '-')
	}
	for i, c := range []byte(s) {
		if i > 0 && (l-i)%3 == 0 {
			buf = append(buf, '.')
		}
		buf = append(buf, c)
	}
	return string(buf)
}

// splitEvery divide s en trozos de máx n bytes.
func splitEvery(s string, n int) []string {
	var parts []string
	for len(s) > n {
		parts = append(parts, s[:n])
		s = s[n:]
	}
	if s != "" {
		parts = append(parts, s)
	}
	return parts
}
