package catalog

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/jhoicas/retail-curves/internal/application/dto"
	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
	"github.com/jhoicas/retail-curves/pkg/logger"
)

// Service carga y consulta los maestros de regiones, zonas, sucursales y familias.
type Service struct {
	tx       TxRunner
	regions  repository.RegionRepository
	zones    repository.ZoneRepository
	stores   repository.StoreRepository
	families repository.FamilyRepository
	log      *logger.Logger
}

// NewService construye el servicio de catálogo.
func NewService(
	tx TxRunner,
	regions repository.RegionRepository,
	zones repository.ZoneRepository,
	stores repository.StoreRepository,
	families repository.FamilyRepository,
	log *logger.Logger,
) *Service {
	if log == nil {
		log = logger.Nop()
	}
	return &Service{tx: tx, regions: regions, zones: zones, stores: stores, families: families, log: log}
}

// ─── Cargas ──────────────────────────────────────────────────────────────────

// LoadStores crea regiones y zonas faltantes y crea o actualiza sucursales.
// Todo ocurre en una transacción: una fila inválida no deja cambios a medias.
func (s *Service) LoadStores(ctx context.Context, seeds []StoreSeed, pad int) (*dto.LoadStoresResult, error) {
	res := &dto.LoadStoresResult{}
	err := s.tx.RunCatalog(ctx, func(tx Tx) error {
		regionCache := make(map[string]*entity.Region)
		zoneCache := make(map[string]*entity.Zone)

		for i, seed := range seeds {
			code := storeCode(seed.Code, pad)
			if code == "" || seed.Region == "" || seed.Zone == "" {
				return fmt.Errorf("fila %d: region, zona y sucursal_id son obligatorios: %w", i+1, domain.ErrInvalidInput)
			}

			region, ok := regionCache[seed.Region]
			if !ok {
				r, created, err := tx.Regions().GetOrCreate(ctx, seed.Region)
				if err != nil {
					return fmt.Errorf("región %q: %w", seed.Region, err)
				}
				if created {
					res.RegionsCreated++
				}
				region = r
				regionCache[seed.Region] = r
			}

			zoneKey := fmt.Sprintf("%d|%s", region.ID, seed.Zone)
			zone, ok := zoneCache[zoneKey]
			if !ok {
				z, created, err := tx.Zones().GetOrCreate(ctx, region.ID, seed.Zone)
				if err != nil {
					return fmt.Errorf("zona %q: %w", seed.Zone, err)
				}
				if created {
					res.ZonesCreated++
				}
				zone = z
				zoneCache[zoneKey] = z
			}

			name := genericStoreName(code, seed.IsCDR)
			store, err := tx.Stores().GetByCode(ctx, code)
			if err != nil {
				return fmt.Errorf("sucursal %q: %w", code, err)
			}
			if store == nil {
				if err := tx.Stores().Create(ctx, &entity.Store{
					Code:                 code,
					Name:                 name,
					RegionID:             region.ID,
					ZoneID:               zone.ID,
					IsDistributionCenter: seed.IsCDR,
				}); err != nil {
					return fmt.Errorf("crear sucursal %q: %w", code, err)
				}
				res.StoresCreated++
				continue
			}

			changed := false
			if store.RegionID != region.ID {
				store.RegionID = region.ID
				changed = true
			}
			if store.ZoneID != zone.ID {
				store.ZoneID = zone.ID
				changed = true
			}
			if store.IsDistributionCenter != seed.IsCDR {
				store.IsDistributionCenter = seed.IsCDR
				changed = true
			}
			// Solo se pisan nombres vacíos o genéricos.
			if isGenericName(store.Name) && store.Name != name {
				store.Name = name
				changed = true
			}
			if changed {
				if err := tx.Stores().Update(ctx, store); err != nil {
					return fmt.Errorf("actualizar sucursal %q: %w", code, err)
				}
				res.StoresUpdated++
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int("regions_created", res.RegionsCreated).
		Int("zones_created", res.ZonesCreated).
		Int("stores_created", res.StoresCreated).
		Int("stores_updated", res.StoresUpdated).
		Msg("sucursales cargadas")
	return res, nil
}

// LoadFamilies crea o reactiva familias por (origen, sector, familia_std, subfamilia_std).
// Con deactivateMissing desactiva las familias activas que no vienen en la lista.
func (s *Service) LoadFamilies(ctx context.Context, seeds []FamilySeed, deactivateMissing bool) (*dto.LoadFamiliesResult, error) {
	res := &dto.LoadFamiliesResult{}
	err := s.tx.RunCatalog(ctx, func(tx Tx) error {
		seen := make(map[string]struct{}, len(seeds))
		for i, seed := range seeds {
			f := &entity.Family{
				Origen:        seed.Origen,
				Sector:        seed.Sector,
				FamiliaStd:    seed.FamiliaStd,
				SubfamiliaStd: seed.SubfamiliaStd,
				IsActive:      true,
			}
			seen[familyKey(f)] = struct{}{}
			created, err := tx.Families().Upsert(ctx, f)
			if err != nil {
				return fmt.Errorf("fila %d: %w", i+1, err)
			}
			if created {
				res.Created++
			} else {
				res.Updated++
			}
		}
		if !deactivateMissing {
			return nil
		}
		active, err := tx.Families().ListActive(ctx)
		if err != nil {
			return err
		}
		for _, f := range active {
			if _, ok := seen[familyKey(f)]; ok {
				continue
			}
			if err := tx.Families().Deactivate(ctx, f.ID); err != nil {
				return fmt.Errorf("desactivar familia %d: %w", f.ID, err)
			}
			res.Deactivated++
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	s.log.Info().
		Int("created", res.Created).
		Int("updated", res.Updated).
		Int("deactivated", res.Deactivated).
		Msg("familias cargadas")
	return res, nil
}

// Counts total de sucursales y familias (confirmación previa del CLI).
func (s *Service) Counts(ctx context.Context) (stores, families int, err error) {
	if stores, err = s.stores.Count(ctx); err != nil {
		return 0, 0, err
	}
	if families, err = s.families.Count(ctx); err != nil {
		return 0, 0, err
	}
	return stores, families, nil
}

// ─── Consultas ───────────────────────────────────────────────────────────────

// Regions lista de regiones ordenada por nombre.
func (s *Service) Regions(ctx context.Context) (*dto.OptionListResponse, error) {
	list, err := s.regions.List(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.OptionItem, 0, len(list))
	for _, r := range list {
		items = append(items, dto.OptionItem{ID: r.ID, Label: r.Name})
	}
	return &dto.OptionListResponse{Items: items}, nil
}

// Zones zonas de una región. regionID nil devuelve lista vacía.
func (s *Service) Zones(ctx context.Context, regionID *int64) (*dto.OptionListResponse, error) {
	out := &dto.OptionListResponse{Items: []dto.OptionItem{}}
	if regionID == nil {
		return out, nil
	}
	list, err := s.zones.ListByRegion(ctx, *regionID)
	if err != nil {
		return nil, err
	}
	for _, z := range list {
		out.Items = append(out.Items, dto.OptionItem{ID: z.ID, Label: z.Name})
	}
	return out, nil
}

// Stores sucursales de una zona; el id es el código y la etiqueta "código - nombre".
func (s *Service) Stores(ctx context.Context, zoneID *int64) (*dto.OptionListResponse, error) {
	out := &dto.OptionListResponse{Items: []dto.OptionItem{}}
	if zoneID == nil {
		return out, nil
	}
	list, err := s.stores.ListByZone(ctx, *zoneID)
	if err != nil {
		return nil, err
	}
	sort.Slice(list, func(i, j int) bool { return list[i].Code < list[j].Code })
	for _, st := range list {
		label := st.Code
		if st.Name != "" {
			label = st.Code + " - " + st.Name
		}
		out.Items = append(out.Items, dto.OptionItem{ID: st.Code, Label: label})
	}
	return out, nil
}

// StoreInfo datos de una sucursal con su región y zona. OK=false si no existe.
func (s *Service) StoreInfo(ctx context.Context, code string) (*dto.StoreInfoResponse, error) {
	code = strings.TrimSpace(code)
	if code == "" {
		return &dto.StoreInfoResponse{OK: false}, nil
	}
	st, err := s.stores.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}
	if st == nil {
		return &dto.StoreInfoResponse{OK: false}, nil
	}
	return &dto.StoreInfoResponse{
		OK:                   true,
		Store:                &dto.StoreRef{Code: st.Code, Name: st.Name},
		Region:               &dto.NamedRef{ID: st.RegionID, Name: st.RegionName},
		Zone:                 &dto.NamedRef{ID: st.ZoneID, Name: st.ZoneName},
		IsDistributionCenter: st.IsDistributionCenter,
	}, nil
}

// Families familias activas.
func (s *Service) Families(ctx context.Context) (*dto.FamilyListResponse, error) {
	list, err := s.families.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	items := make([]dto.FamilyResponse, 0, len(list))
	for _, f := range list {
		items = append(items, dto.FamilyResponse{
			ID:            f.ID,
			Origen:        f.Origen,
			Sector:        f.Sector,
			FamiliaStd:    f.FamiliaStd,
			SubfamiliaStd: f.SubfamiliaStd,
		})
	}
	return &dto.FamilyListResponse{Items: items}, nil
}

func genericStoreName(code string, isCDR bool) string {
	if isCDR {
		return "CDR " + code
	}
	return "Sucursal " + code
}

func isGenericName(name string) bool {
	return name == "" || strings.HasPrefix(name, "Sucursal ") || strings.HasPrefix(name, "CDR ")
}

func familyKey(f *entity.Family) string {
	return strings.Join([]string{f.Origen, f.Sector, f.FamiliaStd, f.SubfamiliaStd}, "\x00")
}
