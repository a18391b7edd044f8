package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var _ repository.StoreRepository = (*StoreRepo)(nil)

const storeSelect = `
	SELECT s.id, s.code, s.name, s.region_id, s.zone_id, r.name, z.name, s.is_distribution_center
	FROM stores s
	JOIN regions r ON r.id = s.region_id
	JOIN zones z ON z.id = s.zone_id`

// StoreRepo implementación de StoreRepository sobre PostgreSQL.
type StoreRepo struct {
	q Querier
}

// NewStoreRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStoreRepository(q Querier) *StoreRepo {
	return &StoreRepo{q: q}
}

func scanStore(row pgx.Row) (*entity.Store, error) {
	var s entity.Store
	err := row.Scan(&s.ID, &s.Code, &s.Name, &s.RegionID, &s.ZoneID, &s.RegionName, &s.ZoneName, &s.IsDistributionCenter)
	if err != nil {
		return nil, err
	}
	return &s, nil
}

func (r *StoreRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Store, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stores: %w", err)
	}
	defer rows.Close()
	var list []*entity.Store
	for rows.Next() {
		s, err := scanStore(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, s)
	}
	return list, rows.Err()
}

// GetByCode obtiene una sucursal por código exacto; nil, nil si no existe.
func (r *StoreRepo) GetByCode(ctx context.Context, code string) (*entity.Store, error) {
	s, err := scanStore(r.q.QueryRow(ctx, storeSelect+` WHERE s.code = $1`, code))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get store by code: %w", err)
	}
	return s, nil
}

// ListByCodes sucursales cuyos códigos están en la lista (una sola consulta).
func (r *StoreRepo) ListByCodes(ctx context.Context, codes []string) ([]*entity.Store, error) {
	if len(codes) == 0 {
		return nil, nil
	}
	return r.list(ctx, storeSelect+` WHERE s.code = ANY($1)`, codes)
}

// ListByZone sucursales de una zona ordenadas por código.
func (r *StoreRepo) ListByZone(ctx context.Context, zoneID int64) ([]*entity.Store, error) {
	return r.list(ctx, storeSelect+` WHERE s.zone_id = $1 ORDER BY s.code`, zoneID)
}

// Create inserta la sucursal y asigna su ID.
func (r *StoreRepo) Create(ctx context.Context, store *entity.Store) error {
	query := `
		INSERT INTO stores (code, name, region_id, zone_id, is_distribution_center)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id`
	err := r.q.QueryRow(ctx, query,
		store.Code, store.Name, store.RegionID, store.ZoneID, store.IsDistributionCenter,
	).Scan(&store.ID)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("sucursal %q: %w", store.Code, domain.ErrDuplicate)
		}
		return fmt.Errorf("insert store: %w", err)
	}
	return nil
}

// Update actualiza nombre, región, zona y marca CDR.
func (r *StoreRepo) Update(ctx context.Context, store *entity.Store) error {
	query := `
		UPDATE stores SET name = $2, region_id = $3, zone_id = $4, is_distribution_center = $5
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, store.ID, store.Name, store.RegionID, store.ZoneID, store.IsDistributionCenter)
	if err != nil {
		return fmt.Errorf("update store: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count total de sucursales.
func (r *StoreRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM stores`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count stores: %w", err)
	}
	return n, nil
}
