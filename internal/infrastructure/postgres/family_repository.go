package postgres

import (
	"context"
	"fmt"

	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var _ repository.FamilyRepository = (*FamilyRepo)(nil)

// FamilyRepo implementación de FamilyRepository sobre PostgreSQL.
type FamilyRepo struct {
	q Querier
}

// NewFamilyRepository construye el adaptador.
func NewFamilyRepository(q Querier) *FamilyRepo {
	return &FamilyRepo{q: q}
}

func (r *FamilyRepo) list(ctx context.Context, query string, args ...any) ([]*entity.Family, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list families: %w", err)
	}
	defer rows.Close()
	var list []*entity.Family
	for rows.Next() {
		var f entity.Family
		if err := rows.Scan(&f.ID, &f.Origen, &f.Sector, &f.FamiliaStd, &f.SubfamiliaStd, &f.IsActive); err != nil {
			return nil, err
		}
		list = append(list, &f)
	}
	return list, rows.Err()
}

// ListActiveByOrigens familias activas con origen exacto (sensible a mayúsculas) en la lista.
func (r *FamilyRepo) ListActiveByOrigens(ctx context.Context, origens []string) ([]*entity.Family, error) {
	if len(origens) == 0 {
		return nil, nil
	}
	return r.list(ctx, `
		SELECT id, origen, sector, familia_std, subfamilia_std, is_active
		FROM families WHERE is_active AND origen = ANY($1)`, origens)
}

// ListActive todas las familias activas.
func (r *FamilyRepo) ListActive(ctx context.Context) ([]*entity.Family, error) {
	return r.list(ctx, `
		SELECT id, origen, sector, familia_std, subfamilia_std, is_active
		FROM families WHERE is_active ORDER BY sector, familia_std, subfamilia_std, origen`)
}

// Upsert crea la familia o actualiza is_active de la existente con la misma 4-tupla.
func (r *FamilyRepo) Upsert(ctx context.Context, family *entity.Family) (bool, error) {
	query := `
		INSERT INTO families (origen, sector, familia_std, subfamilia_std, is_active)
		VALUES ($1, $2, $3, $4, $5)
		ON CONFLICT (origen, sector, familia_std, subfamilia_std)
		DO UPDATE SET is_active = EXCLUDED.is_active
		RETURNING id, (xmax = 0) AS inserted`
	var created bool
	err := r.q.QueryRow(ctx, query,
		family.Origen, family.Sector, family.FamiliaStd, family.SubfamiliaStd, family.IsActive,
	).Scan(&family.ID, &created)
	if err != nil {
		return false, fmt.Errorf("upsert family: %w", err)
	}
	return created, nil
}

// Deactivate marca la familia como inactiva.
func (r *FamilyRepo) Deactivate(ctx context.Context, id int64) error {
	tag, err := r.q.Exec(ctx, `UPDATE families SET is_active = FALSE WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deactivate family: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// Count total de familias.
func (r *FamilyRepo) Count(ctx context.Context) (int, error) {
	var n int
	if err := r.q.QueryRow(ctx, `SELECT count(*) FROM families`).Scan(&n); err != nil {
		return 0, fmt.Errorf("count families: %w", err)
	}
	return n, nil
}
