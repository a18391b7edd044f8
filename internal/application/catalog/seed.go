package catalog

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/jhoicas/retail-curves/internal/domain"
	domnavidad "github.com/jhoicas/retail-curves/internal/domain/navidad"
)

// StoreSeed fila del JSON de sucursales.
type StoreSeed struct {
	Region string
	Zone   string
	Code   string
	IsCDR  bool
}

// FamilySeed fila del JSON de familias.
type FamilySeed struct {
	Origen        string
	Sector        string
	FamiliaStd    string
	SubfamiliaStd string
}

// ParseStoreSeeds lee [{"region","zona","sucursal_id","CDR"}]. CDR es opcional (false).
func ParseStoreSeeds(r io.Reader) ([]StoreSeed, error) {
	rows, err := decodeObjects(r)
	if err != nil {
		return nil, err
	}
	seeds := make([]StoreSeed, 0, len(rows))
	for i, row := range rows {
		n := i + 1
		region, err := requiredText(row, "region", n)
		if err != nil {
			return nil, err
		}
		zone, err := requiredText(row, "zona", n)
		if err != nil {
			return nil, err
		}
		code, err := requiredText(row, "sucursal_id", n)
		if err != nil {
			return nil, err
		}
		isCDR := false
		if raw, ok := row["CDR"]; ok {
			if isCDR, err = ParseBool(raw); err != nil {
				return nil, fmt.Errorf("fila %d: %w", n, err)
			}
		}
		seeds = append(seeds, StoreSeed{Region: region, Zone: zone, Code: code, IsCDR: isCDR})
	}
	return seeds, nil
}

// ParseFamilySeeds lee [{"origen","sector","familia_std","subfamilia_std"}]; las cuatro claves son obligatorias.
func ParseFamilySeeds(r io.Reader) ([]FamilySeed, error) {
	rows, err := decodeObjects(r)
	if err != nil {
		return nil, err
	}
	seeds := make([]FamilySeed, 0, len(rows))
	for i, row := range rows {
		var missing []string
		for _, k := range []string{"origen", "sector", "familia_std", "subfamilia_std"} {
			if _, ok := row[k]; !ok {
				missing = append(missing, k)
			}
		}
		if len(missing) > 0 {
			return nil, fmt.Errorf("fila %d: faltan columnas %s: %w", i+1, strings.Join(missing, ", "), domain.ErrInvalidInput)
		}
		seeds = append(seeds, FamilySeed{
			Origen:        text(row["origen"]),
			Sector:        text(row["sector"]),
			FamiliaStd:    text(row["familia_std"]),
			SubfamiliaStd: text(row["subfamilia_std"]),
		})
	}
	return seeds, nil
}

// ParseBool acepta bool o texto TRUE/T/1/YES/Y/SI/SÍ y FALSE/F/0/NO/N/"".
func ParseBool(raw any) (bool, error) {
	if b, ok := raw.(bool); ok {
		return b, nil
	}
	switch strings.ToUpper(text(raw)) {
	case "TRUE", "T", "1", "YES", "Y", "SI", "SÍ":
		return true, nil
	case "FALSE", "F", "0", "NO", "N", "":
		return false, nil
	}
	return false, fmt.Errorf("booleano inválido %q: %w", text(raw), domain.ErrInvalidInput)
}

func decodeObjects(r io.Reader) ([]map[string]any, error) {
	dec := json.NewDecoder(r)
	dec.UseNumber()
	var rows []map[string]any
	if err := dec.Decode(&rows); err != nil {
		return nil, fmt.Errorf("leer JSON (se espera una lista de objetos): %w", err)
	}
	return rows, nil
}

func requiredText(row map[string]any, key string, n int) (string, error) {
	raw, ok := row[key]
	if !ok {
		return "", fmt.Errorf("fila %d: falta la clave %q: %w", n, key, domain.ErrInvalidInput)
	}
	return text(raw), nil
}

// text convierte un valor JSON a texto recortado; los números conservan su forma literal.
func text(raw any) string {
	switch v := raw.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(v)
	case json.Number:
		return v.String()
	case bool:
		if v {
			return "true"
		}
		return "false"
	default:
		return strings.TrimSpace(fmt.Sprint(v))
	}
}

// storeCode código de maestro normalizado igual que en la importación.
func storeCode(raw string, pad int) string {
	return domnavidad.NormalizeStoreCode(raw, pad)
}
