package navidad

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
	domnavidad "github.com/jhoicas/retail-curves/internal/domain/navidad"
	"github.com/jhoicas/retail-curves/pkg/logger"
)

// DefaultChunkSize filas por chunk cuando no se indica otro valor.
const DefaultChunkSize = 10000

// EffectiveChunkSize aplica el valor por defecto a tamaños no positivos.
func EffectiveChunkSize(n int) int {
	if n <= 0 {
		return DefaultChunkSize
	}
	return n
}

// Input parámetros de una importación.
type Input struct {
	Path       string
	Sheet      string // nombre o índice base 0; vacío = primera hoja
	Pad        int    // aceptado por compatibilidad; los códigos se normalizan sin ceros a la izquierda
	StrictArea bool
	ChunkSize  int
}

// Loader orquesta la importación de una planilla Navidad: detecta el encabezado,
// recorre las filas en streaming y escribe por chunks dentro de una única transacción.
type Loader struct {
	opener   SourceOpener
	txRunner TxRunner
	log      *logger.Logger
}

// NewLoader construye el cargador.
func NewLoader(opener SourceOpener, txRunner TxRunner, log *logger.Logger) *Loader {
	if log == nil {
		log = logger.Nop()
	}
	return &Loader{opener: opener, txRunner: txRunner, log: log}
}

// Process importa el archivo completo. Ante cualquier error no queda nada escrito y el
// resumen es nil.
func (l *Loader) Process(ctx context.Context, in Input) (*entity.ImportSummary, error) {
	chunkSize := EffectiveChunkSize(in.ChunkSize)

	src, err := l.opener.Open(in.Path, in.Sheet)
	if err != nil {
		return nil, err
	}
	defer src.Close()

	prefix, err := readPrefix(src, domnavidad.MaxHeaderScan)
	if err != nil {
		return nil, err
	}
	header, err := domnavidad.DetectHeader(prefix)
	if err != nil {
		return nil, err
	}
	if missing := header.Missing(); len(missing) > 0 {
		l.log.Warn().Strs("missing", missing).Int("header_row", header.Row).Msg("encabezado incompleto, columnas faltantes se leen vacías")
	}

	sum := &entity.ImportSummary{DetectedColumns: header.Columns}
	started := time.Now()

	err = l.txRunner.RunImport(ctx, func(tx ImportTx) error {
		writer := newBatchWriter(NewResolver(tx.Stores(), tx.Families()), in.StrictArea)
		buf := make([]pendingRow, 0, min(chunkSize, 4096))

		flush := func() error {
			if len(buf) == 0 {
				return nil
			}
			sum.Chunks++
			t0 := time.Now()
			if err := writer.flush(ctx, tx, buf, sum); err != nil {
				return fmt.Errorf("chunk %d: %w", sum.Chunks, err)
			}
			l.log.Info().
				Int("chunk", sum.Chunks).
				Int("rows", len(buf)).
				Int("stock_created", sum.StockCreated).
				Int("stock_updated", sum.StockUpdated).
				Int("sales_created", sum.SalesCreated).
				Int("sales_updated", sum.SalesUpdated).
				Dur("elapsed", time.Since(t0)).
				Msg("chunk importado")
			buf = buf[:0]
			return nil
		}

		consume := func(cells []string) error {
			if isBlankRow(cells) {
				return nil
			}
			sum.RowsRaw++
			sum.Rows++
			row, ok := parseRow(header, cells, in.Pad)
			if !ok {
				return nil
			}
			buf = append(buf, row)
			if len(buf) >= chunkSize {
				return flush()
			}
			return nil
		}

		for _, cells := range prefix[header.DataStart():] {
			if err := consume(cells); err != nil {
				return err
			}
		}
		for src.Next() {
			if err := ctx.Err(); err != nil {
				return err
			}
			if err := consume(src.Row()); err != nil {
				return err
			}
		}
		if err := src.Err(); err != nil {
			return fmt.Errorf("leer planilla: %w", err)
		}
		return flush()
	})
	if err != nil {
		l.log.Error().Err(err).Str("file", in.Path).Msg("importación revertida")
		return nil, err
	}

	l.log.Info().
		Str("file", in.Path).
		Int("rows", sum.Rows).
		Int("chunks", sum.Chunks).
		Int("stock_created", sum.StockCreated).
		Int("stock_updated", sum.StockUpdated).
		Int("stock_skipped", sum.StockSkipped).
		Int("sales_created", sum.SalesCreated).
		Int("sales_updated", sum.SalesUpdated).
		Int("sales_skipped", sum.SalesSkipped).
		Dur("elapsed", time.Since(started)).
		Msg("importación completada")
	return sum, nil
}

// readPrefix lee hasta n filas para la detección del encabezado.
func readPrefix(src domnavidad.RowSource, n int) ([][]string, error) {
	prefix := make([][]string, 0, n)
	for len(prefix) < n && src.Next() {
		row := src.Row()
		cp := make([]string, len(row))
		copy(cp, row)
		prefix = append(prefix, cp)
	}
	if err := src.Err(); err != nil {
		return nil, fmt.Errorf("leer planilla: %w", err)
	}
	return prefix, nil
}

// parseRow normaliza una fila de datos. Devuelve false si no tiene fecha válida o
// le falta la SubFamilia.
func parseRow(h domnavidad.Header, cells []string, pad int) (pendingRow, bool) {
	date, ok := domnavidad.ParseDate(h.Value(cells, domnavidad.ColDia))
	if !ok {
		return pendingRow{}, false
	}
	code := domnavidad.NormalizeStoreCode(h.Value(cells, domnavidad.ColSucursal), pad)
	origen := strings.TrimSpace(h.Value(cells, domnavidad.ColSubFamilia))
	if origen == "" {
		return pendingRow{}, false
	}
	stock, hasStock := domnavidad.ParseNumber(h.Value(cells, domnavidad.ColStockFinal))
	sold, hasSold := domnavidad.ParseNumber(h.Value(cells, domnavidad.ColVendidas))
	return pendingRow{
		date:     date,
		code:     code,
		origen:   origen,
		region:   strings.TrimSpace(h.Value(cells, domnavidad.ColRegion)),
		zone:     strings.TrimSpace(h.Value(cells, domnavidad.ColZona)),
		stock:    stock,
		hasStock: hasStock,
		sold:     sold,
		hasSold:  hasSold,
	}, true
}

func isBlankRow(cells []string) bool {
	for _, c := range cells {
		if strings.TrimSpace(c) != "" {
			return false
		}
	}
	return true
}
