package repository

import (
	"context"

	"github.com/jhoicas/retail-curves/internal/domain/entity"
)

// UserRepository define el puerto de persistencia para User.
type UserRepository interface {
	Create(ctx context.Context, user *entity.User) error
	// FindByEmail devuelve nil, nil si no existe.
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
}
