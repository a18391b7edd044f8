package navidad

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

// familyEntry valor cacheado: family nil significa no encontrada o ambigua.
type familyEntry struct {
	family    *entity.Family
	ambiguous bool
}

// Resolver resuelve códigos de sucursal y textos de SubFamilia contra las dimensiones.
// Las cachés viven lo que dura una importación; los fallos también se cachean.
type Resolver struct {
	stores   repository.StoreRepository
	families repository.FamilyRepository

	storeCache  map[string]*entity.Store
	familyCache map[string]familyEntry
}

// NewResolver construye un resolver con cachés vacías.
func NewResolver(stores repository.StoreRepository, families repository.FamilyRepository) *Resolver {
	return &Resolver{
		stores:      stores,
		families:    families,
		storeCache:  make(map[string]*entity.Store),
		familyCache: make(map[string]familyEntry),
	}
}

// Warm precarga en bloque las sucursales y familias de un chunk.
// Solo consulta las claves que todavía no están en caché.
func (r *Resolver) Warm(ctx context.Context, codes, origens []string) error {
	var missingCodes []string
	for _, c := range codes {
		if _, ok := r.storeCache[c]; !ok {
			missingCodes = append(missingCodes, c)
		}
	}
	if len(missingCodes) > 0 {
		stores, err := r.stores.ListByCodes(ctx, missingCodes)
		if err != nil {
			return fmt.Errorf("precargar sucursales: %w", err)
		}
		for _, c := range missingCodes {
			r.storeCache[c] = nil
		}
		for _, s := range stores {
			r.storeCache[s.Code] = s
		}
	}

	var missingOrigens []string
	for _, o := range origens {
		if _, ok := r.familyCache[o]; !ok {
			missingOrigens = append(missingOrigens, o)
		}
	}
	if len(missingOrigens) > 0 {
		families, err := r.families.ListActiveByOrigens(ctx, missingOrigens)
		if err != nil {
			return fmt.Errorf("precargar familias: %w", err)
		}
		r.cacheFamilies(missingOrigens, families)
	}
	return nil
}

// Store resuelve una sucursal por código exacto. nil si no existe.
func (r *Resolver) Store(ctx context.Context, code string) (*entity.Store, error) {
	if s, ok := r.storeCache[code]; ok {
		return s, nil
	}
	s, err := r.stores.GetByCode(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("buscar sucursal %q: %w", code, err)
	}
	r.storeCache[code] = s
	return s, nil
}

// Family resuelve la familia activa cuyo origen coincide exactamente (mayúsculas incluidas).
// Devuelve nil si no hay ninguna o si hay más de una.
func (r *Resolver) Family(ctx context.Context, origen string) (*entity.Family, error) {
	if e, ok := r.familyCache[origen]; ok {
		return e.family, nil
	}
	families, err := r.families.ListActiveByOrigens(ctx, []string{origen})
	if err != nil {
		return nil, fmt.Errorf("buscar familia %q: %w", origen, err)
	}
	r.cacheFamilies([]string{origen}, families)
	return r.familyCache[origen].family, nil
}

func (r *Resolver) cacheFamilies(origens []string, families []*entity.Family) {
	byOrigen := make(map[string][]*entity.Family, len(origens))
	for _, f := range families {
		if !f.IsActive {
			continue
		}
		byOrigen[f.Origen] = append(byOrigen[f.Origen], f)
	}
	for _, o := range origens {
		matches := byOrigen[o]
		switch len(matches) {
		case 1:
			r.familyCache[o] = familyEntry{family: matches[0]}
		case 0:
			r.familyCache[o] = familyEntry{}
		default:
			r.familyCache[o] = familyEntry{ambiguous: true}
		}
	}
}
