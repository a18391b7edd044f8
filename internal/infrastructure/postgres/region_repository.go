package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var (
	_ repository.RegionRepository = (*RegionRepo)(nil)
	_ repository.ZoneRepository   = (*ZoneRepo)(nil)
)

// RegionRepo implementación de RegionRepository sobre PostgreSQL.
type RegionRepo struct {
	q Querier
}

// NewRegionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewRegionRepository(q Querier) *RegionRepo {
	return &RegionRepo{q: q}
}

// GetOrCreate inserta la región si no existe. El DO UPDATE sin cambios hace que RETURNING
// devuelva también la fila existente; xmax = 0 distingue la inserción.
func (r *RegionRepo) GetOrCreate(ctx context.Context, name string) (*entity.Region, bool, error) {
	query := `
		INSERT INTO regions (name) VALUES ($1)
		ON CONFLICT (name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, name, (xmax = 0) AS inserted`
	var reg entity.Region
	var created bool
	if err := r.q.QueryRow(ctx, query, name).Scan(&reg.ID, &reg.Name, &created); err != nil {
		return nil, false, fmt.Errorf("get or create region: %w", err)
	}
	return &reg, created, nil
}

// List regiones ordenadas por nombre.
func (r *RegionRepo) List(ctx context.Context) ([]*entity.Region, error) {
	rows, err := r.q.Query(ctx, `SELECT id, name FROM regions ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list regions: %w", err)
	}
	defer rows.Close()
	var list []*entity.Region
	for rows.Next() {
		var reg entity.Region
		if err := rows.Scan(&reg.ID, &reg.Name); err != nil {
			return nil, err
		}
		list = append(list, &reg)
	}
	return list, rows.Err()
}

// ZoneRepo implementación de ZoneRepository sobre PostgreSQL.
type ZoneRepo struct {
	q Querier
}

// NewZoneRepository construye el adaptador.
func NewZoneRepository(q Querier) *ZoneRepo {
	return &ZoneRepo{q: q}
}

// GetOrCreate zona por (región, nombre).
func (r *ZoneRepo) GetOrCreate(ctx context.Context, regionID int64, name string) (*entity.Zone, bool, error) {
	query := `
		INSERT INTO zones (region_id, name) VALUES ($1, $2)
		ON CONFLICT (region_id, name) DO UPDATE SET name = EXCLUDED.name
		RETURNING id, region_id, name, (xmax = 0) AS inserted`
	var z entity.Zone
	var created bool
	if err := r.q.QueryRow(ctx, query, regionID, name).Scan(&z.ID, &z.RegionID, &z.Name, &created); err != nil {
		if isForeignKeyViolation(err) {
			return nil, false, fmt.Errorf("región %d inexistente: %w", regionID, errNotFound)
		}
		return nil, false, fmt.Errorf("get or create zone: %w", err)
	}
	return &z, created, nil
}

// GetByID devuelve nil, nil si no existe.
func (r *ZoneRepo) GetByID(ctx context.Context, id int64) (*entity.Zone, error) {
	var z entity.Zone
	err := r.q.QueryRow(ctx, `SELECT id, region_id, name FROM zones WHERE id = $1`, id).
		Scan(&z.ID, &z.RegionID, &z.Name)
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get zone: %w", err)
	}
	return &z, nil
}

// ListByRegion zonas de una región ordenadas por nombre.
func (r *ZoneRepo) ListByRegion(ctx context.Context, regionID int64) ([]*entity.Zone, error) {
	rows, err := r.q.Query(ctx, `SELECT id, region_id, name FROM zones WHERE region_id = $1 ORDER BY name`, regionID)
	if err != nil {
		return nil, fmt.Errorf("list zones: %w", err)
	}
	defer rows.Close()
	var list []*entity.Zone
	for rows.Next() {
		var z entity.Zone
		if err := rows.Scan(&z.ID, &z.RegionID, &z.Name); err != nil {
			return nil, err
		}
		list = append(list, &z)
	}
	return list, rows.Err()
}
