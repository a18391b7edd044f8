package memory

import (
	"context"
	"sort"

	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var (
	_ repository.RegionRepository = regionRepo{}
	_ repository.ZoneRepository   = zoneRepo{}
	_ repository.StoreRepository  = storeRepo{}
	_ repository.FamilyRepository = familyRepo{}
)

// Regions repositorio de regiones.
func (db *DB) Regions() repository.RegionRepository { return regionRepo{db} }

// Zones repositorio de zonas.
func (db *DB) Zones() repository.ZoneRepository { return zoneRepo{db} }

// Stores repositorio de sucursales.
func (db *DB) Stores() repository.StoreRepository { return storeRepo{db} }

// Families repositorio de familias.
func (db *DB) Families() repository.FamilyRepository { return familyRepo{db} }

// ─── Regiones ────────────────────────────────────────────────────────────────

type regionRepo struct{ db *DB }

func (r regionRepo) GetOrCreate(_ context.Context, name string) (*entity.Region, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, reg := range r.db.st.regions {
		if reg.Name == name {
			out := reg
			return &out, false, nil
		}
	}
	reg := entity.Region{ID: r.db.nextID(), Name: name}
	r.db.st.regions[reg.ID] = reg
	return &reg, true, nil
}

func (r regionRepo) List(_ context.Context) ([]*entity.Region, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	out := make([]*entity.Region, 0, len(r.db.st.regions))
	for _, reg := range r.db.st.regions {
		reg := reg
		out = append(out, &reg)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ─── Zonas ───────────────────────────────────────────────────────────────────

type zoneRepo struct{ db *DB }

func (r zoneRepo) GetOrCreate(_ context.Context, regionID int64, name string) (*entity.Zone, bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.st.regions[regionID]; !ok {
		return nil, false, domain.ErrNotFound
	}
	for _, z := range r.db.st.zones {
		if z.RegionID == regionID && z.Name == name {
			out := z
			return &out, false, nil
		}
	}
	z := entity.Zone{ID: r.db.nextID(), RegionID: regionID, Name: name}
	r.db.st.zones[z.ID] = z
	return &z, true, nil
}

func (r zoneRepo) GetByID(_ context.Context, id int64) (*entity.Zone, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	z, ok := r.db.st.zones[id]
	if !ok {
		return nil, nil
	}
	return &z, nil
}

func (r zoneRepo) ListByRegion(_ context.Context, regionID int64) ([]*entity.Zone, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Zone
	for _, z := range r.db.st.zones {
		if z.RegionID == regionID {
			z := z
			out = append(out, &z)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

// ─── Sucursales ──────────────────────────────────────────────────────────────

type storeRepo struct{ db *DB }

// withNames completa RegionName y ZoneName. Requiere db.mu tomado.
func (r storeRepo) withNames(s entity.Store) *entity.Store {
	s.RegionName = r.db.st.regions[s.RegionID].Name
	s.ZoneName = r.db.st.zones[s.ZoneID].Name
	return &s
}

func (r storeRepo) GetByCode(_ context.Context, code string) (*entity.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.st.stores {
		if s.Code == code {
			return r.withNames(s), nil
		}
	}
	return nil, nil
}

func (r storeRepo) ListByCodes(_ context.Context, codes []string) ([]*entity.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	want := make(map[string]struct{}, len(codes))
	for _, c := range codes {
		want[c] = struct{}{}
	}
	var out []*entity.Store
	for _, s := range r.db.st.stores {
		if _, ok := want[s.Code]; ok {
			out = append(out, r.withNames(s))
		}
	}
	return out, nil
}

func (r storeRepo) ListByZone(_ context.Context, zoneID int64) ([]*entity.Store, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Store
	for _, s := range r.db.st.stores {
		if s.ZoneID == zoneID {
			out = append(out, r.withNames(s))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Code < out[j].Code })
	return out, nil
}

func (r storeRepo) Create(_ context.Context, store *entity.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for _, s := range r.db.st.stores {
		if s.Code == store.Code {
			return domain.ErrDuplicate
		}
	}
	store.ID = r.db.nextID()
	r.db.st.stores[store.ID] = *store
	return nil
}

func (r storeRepo) Update(_ context.Context, store *entity.Store) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	if _, ok := r.db.st.stores[store.ID]; !ok {
		return domain.ErrNotFound
	}
	r.db.st.stores[store.ID] = *store
	return nil
}

func (r storeRepo) Count(_ context.Context) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.st.stores), nil
}

// ─── Familias ────────────────────────────────────────────────────────────────

type familyRepo struct{ db *DB }

func (r familyRepo) ListActiveByOrigens(_ context.Context, origens []string) ([]*entity.Family, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	want := make(map[string]struct{}, len(origens))
	for _, o := range origens {
		want[o] = struct{}{}
	}
	var out []*entity.Family
	for _, f := range r.db.st.families {
		if _, ok := want[f.Origen]; ok && f.IsActive {
			f := f
			out = append(out, &f)
		}
	}
	return out, nil
}

func (r familyRepo) ListActive(_ context.Context) ([]*entity.Family, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	var out []*entity.Family
	for _, f := range r.db.st.families {
		if f.IsActive {
			f := f
			out = append(out, &f)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ID < out[j].ID })
	return out, nil
}

func (r familyRepo) Upsert(_ context.Context, family *entity.Family) (bool, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	for id, f := range r.db.st.families {
		if f.Origen == family.Origen && f.Sector == family.Sector &&
			f.FamiliaStd == family.FamiliaStd && f.SubfamiliaStd == family.SubfamiliaStd {
			f.IsActive = family.IsActive
			r.db.st.families[id] = f
			family.ID = id
			return false, nil
		}
	}
	family.ID = r.db.nextID()
	r.db.st.families[family.ID] = *family
	return true, nil
}

func (r familyRepo) Deactivate(_ context.Context, id int64) error {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	f, ok := r.db.st.families[id]
	if !ok {
		return domain.ErrNotFound
	}
	f.IsActive = false
	r.db.st.families[id] = f
	return nil
}

func (r familyRepo) Count(_ context.Context) (int, error) {
	r.db.mu.Lock()
	defer r.db.mu.Unlock()
	return len(r.db.st.families), nil
}
