package repository

import (
	"context"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
)

// RegionRepository define el puerto de persistencia para Region.
type RegionRepository interface {
	// GetOrCreate devuelve la región por nombre creándola si no existe (created=true).
	GetOrCreate(ctx context.Context, name string) (region *entity.Region, created bool, err error)
	List(ctx context.Context) ([]*entity.Region, error)
}

// ZoneRepository define el puerto de persistencia para Zone.
type ZoneRepository interface {
	GetOrCreate(ctx context.Context, regionID int64, name string) (zone *entity.Zone, created bool, err error)
	GetByID(ctx context.Context, id int64) (*entity.Zone, error)
	ListByRegion(ctx context.Context, regionID int64) ([]*entity.Zone, error)
}

// StoreRepository define el puerto de persistencia para Store.
// Las lecturas devuelven RegionName y ZoneName resueltos.
type StoreRepository interface {
	// GetByCode devuelve nil, nil si el código no existe.
	GetByCode(ctx context.Context, code string) (*entity.Store, error)
	ListByCodes(ctx context.Context, codes []string) ([]*entity.Store, error)
	ListByZone(ctx context.Context, zoneID int64) ([]*entity.Store, error)
	Create(ctx context.Context, store *entity.Store) error
	Update(ctx context.Context, store *entity.Store) error
	Count(ctx context.Context) (int, error)
}

// FamilyRepository define el puerto de persistencia para Family.
type FamilyRepository interface {
	// ListActiveByOrigens devuelve todas las familias activas cuyo origen está en la lista,
	// incluidas las que comparten origen (el llamador decide sobre la ambigüedad).
	ListActiveByOrigens(ctx context.Context, origens []string) ([]*entity.Family, error)
	ListActive(ctx context.Context) ([]*entity.Family, error)
	// Upsert crea o reactiva la familia identificada por (origen, sector, familia_std, subfamilia_std).
	Upsert(ctx context.Context, family *entity.Family) (created bool, err error)
	Deactivate(ctx context.Context, id int64) error
	Count(ctx context.Context) (int, error)
}
