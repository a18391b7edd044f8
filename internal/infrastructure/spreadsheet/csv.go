package spreadsheet

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
	"golang.org/x/text/transform"

	domnavidad "github.com/jhoicas/retail-curves/internal/domain/navidad"
)

const sniffSize = 64 * 1024

var (
	utf8BOM    = []byte{0xEF, 0xBB, 0xBF}
	delimiters = []rune{';', ',', '\t', '|'}
)

// csvSource lector de texto delimitado.
type csvSource struct {
	file *os.File
	r    *csv.Reader
	row  []string
	err  error
}

// openCSV abre un archivo delimitado. delim 0 = detectar sobre las primeras líneas.
// Si la muestra no es UTF-8 válido se decodifica como Windows-1252.
func openCSV(path string, delim rune) (*csvSource, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("abrir %s: %w", path, err)
	}
	br := bufio.NewReaderSize(f, sniffSize)
	sample, err := br.Peek(sniffSize)
	if err != nil && !errors.Is(err, io.EOF) {
		_ = f.Close()
		return nil, fmt.Errorf("leer %s: %w", path, err)
	}
	if bytes.HasPrefix(sample, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
		sample = sample[len(utf8BOM):]
	}

	var src io.Reader = br
	if !utf8.Valid(completeLines(sample)) {
		src = transform.NewReader(br, charmap.Windows1252.NewDecoder())
	}
	if delim == 0 {
		delim = sniffDelimiter(sample)
	}

	r := csv.NewReader(src)
	r.Comma = delim
	r.FieldsPerRecord = -1
	r.LazyQuotes = true
	return &csvSource{file: f, r: r}, nil
}

// sniffDelimiter elige el candidato con la cuenta por línea más repetida (fuera de comillas)
// entre las primeras líneas de la muestra; a igualdad gana la cuenta mayor. "," si no hay ninguno.
func sniffDelimiter(sample []byte) rune {
	lines := bytes.Split(completeLines(sample), []byte{'\n'})
	if len(lines) > domnavidad.MaxHeaderScan {
		lines = lines[:domnavidad.MaxHeaderScan]
	}
	perLine := make([]map[rune]int, 0, len(lines))
	for _, line := range lines {
		perLine = append(perLine, countDelimiters(line))
	}

	best, bestFreq, bestN := ',', 0, 0
	for _, d := range delimiters {
		freq, n := modalCount(perLine, d)
		if freq > bestFreq || (freq == bestFreq && n > bestN) {
			best, bestFreq, bestN = d, freq, n
		}
	}
	return best
}

func countDelimiters(line []byte) map[rune]int {
	counts := make(map[rune]int, len(delimiters))
	inQuotes := false
	for _, c := range string(line) {
		if c == '"' {
			inQuotes = !inQuotes
			continue
		}
		if !inQuotes {
			counts[c]++
		}
	}
	return counts
}

// modalCount cuenta distinta de cero más frecuente de d por línea y cuántas líneas la tienen.
func modalCount(perLine []map[rune]int, d rune) (freq, n int) {
	seen := make(map[int]int)
	for _, counts := range perLine {
		if c := counts[d]; c > 0 {
			seen[c]++
		}
	}
	for c, f := range seen {
		if f > freq || (f == freq && c > n) {
			freq, n = f, c
		}
	}
	return freq, n
}

// completeLines recorta una muestra llena hasta el último salto de línea para no
// validar un carácter multibyte partido.
func completeLines(sample []byte) []byte {
	if len(sample) < sniffSize-len(utf8BOM) {
		return sample
	}
	if i := bytes.LastIndexByte(sample, '\n'); i >= 0 {
		return sample[:i]
	}
	return sample
}

func (s *csvSource) Next() bool {
	if s.err != nil {
		return false
	}
	rec, err := s.r.Read()
	if err != nil {
		if !errors.Is(err, io.EOF) {
			s.err = fmt.Errorf("leer csv: %w", err)
		}
		return false
	}
	s.row = rec
	return true
}

func (s *csvSource) Row() []string { return s.row }
func (s *csvSource) Err() error    { return s.err }
func (s *csvSource) Close() error  { return s.file.Close() }
