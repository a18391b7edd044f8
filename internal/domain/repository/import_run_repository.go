package repository

import (
	"context"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
)

// ImportRunRepository persiste la auditoría de importaciones.
type ImportRunRepository interface {
	Create(ctx context.Context, run *entity.ImportRun) error
	GetByID(ctx context.Context, id string) (*entity.ImportRun, error)
	List(ctx context.Context, limit, offset int) ([]*entity.ImportRun, error)
}
