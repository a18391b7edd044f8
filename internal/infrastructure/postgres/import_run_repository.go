package postgres

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/domain/repository"
)

var _ repository.ImportRunRepository = (*ImportRunRepo)(nil)

const importRunSelect = `
	SELECT id, user_id, file_name, sheet, pad, strict_area, chunk_size, status, error, summary,
	       started_at, finished_at
	FROM import_runs`

// ImportRunRepo auditoría de importaciones; el resumen se guarda como JSONB.
type ImportRunRepo struct {
	q Querier
}

// NewImportRunRepository construye el adaptador.
func NewImportRunRepository(q Querier) *ImportRunRepo {
	return &ImportRunRepo{q: q}
}

// Create inserta la corrida.
func (r *ImportRunRepo) Create(ctx context.Context, run *entity.ImportRun) error {
	summary, err := json.Marshal(run.Summary)
	if err != nil {
		return fmt.Errorf("marshal summary: %w", err)
	}
	query := `
		INSERT INTO import_runs (id, user_id, file_name, sheet, pad, strict_area, chunk_size, status, error,
			summary, started_at, finished_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err = r.q.Exec(ctx, query,
		run.ID, run.UserID, run.FileName, run.Sheet, run.Pad, run.StrictArea, run.ChunkSize, run.Status,
		run.Error, summary, run.StartedAt, run.FinishedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert import run: %w", err)
	}
	return nil
}

func scanImportRun(row pgx.Row) (*entity.ImportRun, error) {
	var run entity.ImportRun
	var summary []byte
	err := row.Scan(
		&run.ID, &run.UserID, &run.FileName, &run.Sheet, &run.Pad, &run.StrictArea, &run.ChunkSize,
		&run.Status, &run.Error, &summary, &run.StartedAt, &run.FinishedAt,
	)
	if err != nil {
		return nil, err
	}
	if len(summary) > 0 {
		if err := json.Unmarshal(summary, &run.Summary); err != nil {
			return nil, fmt.Errorf("unmarshal summary: %w", err)
		}
	}
	return &run, nil
}

// GetByID devuelve nil, nil si no existe.
func (r *ImportRunRepo) GetByID(ctx context.Context, id string) (*entity.ImportRun, error) {
	run, err := scanImportRun(r.q.QueryRow(ctx, importRunSelect+` WHERE id = $1`, id))
	if err != nil {
		if isNoRows(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("get import run: %w", err)
	}
	return run, nil
}

// List corridas más recientes primero.
func (r *ImportRunRepo) List(ctx context.Context, limit, offset int) ([]*entity.ImportRun, error) {
	rows, err := r.q.Query(ctx, importRunSelect+` ORDER BY started_at DESC LIMIT $1 OFFSET $2`, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("list import runs: %w", err)
	}
	defer rows.Close()
	var list []*entity.ImportRun
	for rows.Next() {
		run, err := scanImportRun(rows)
		if err != nil {
			return nil, err
		}
		list = append(list, run)
	}
	return list, rows.Err()
}
