package auth_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/retail-curves/internal/application/auth"
	"github.com/jhoicas/retail-curves/internal/application/dto"
	"github.com/jhoicas/retail-curves/internal/domain"
	"github.com/jhoicas/retail-curves/internal/domain/entity"
	"github.com/jhoicas/retail-curves/internal/infrastructure/memory"
	"github.com/jhoicas/retail-curves/pkg/jwt"
)

func newUseCase() *auth.AuthUseCase {
	return auth.NewAuthUseCase(memory.New().Users(), auth.JWTConfig{Secret: "secreto", ExpMinutes: 5, Issuer: "test"})
}

func TestCreateUserYLogin(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	user, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "ana@tienda.cl", Password: "navidad2023", Role: entity.RoleAdmin})
	require.NoError(t, err)
	assert.Equal(t, "ana@tienda.cl", user.Name)
	assert.Equal(t, entity.RoleAdmin, user.Role)

	resp, err := uc.Login(ctx, dto.LoginRequest{Email: "ANA@tienda.cl", Password: "navidad2023"})
	require.NoError(t, err)
	userID, role, err := jwt.Parse("secreto", resp.Token)
	require.NoError(t, err)
	assert.Equal(t, user.ID, userID)
	assert.Equal(t, entity.RoleAdmin, role)
}

func TestCreateUser_Validaciones(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()

	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "sin-arroba", Password: "navidad2023"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.cl", Password: "corto"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.cl", Password: "navidad2023", Role: "root"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	u, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.cl", Password: "navidad2023"})
	require.NoError(t, err)
	assert.Equal(t, entity.RoleAnalyst, u.Role)

	_, err = uc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.cl", Password: "navidad2023"})
	assert.ErrorIs(t, err, domain.ErrEmailAlreadyExists)
}

func TestLogin_Errores(t *testing.T) {
	uc := newUseCase()
	ctx := context.Background()
	_, err := uc.CreateUser(ctx, dto.CreateUserRequest{Email: "a@b.cl", Password: "navidad2023"})
	require.NoError(t, err)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "x@b.cl", Password: "navidad2023"})
	assert.ErrorIs(t, err, domain.ErrUserNotFound)

	_, err = uc.Login(ctx, dto.LoginRequest{Email: "a@b.cl", Password: "otra-clave"})
	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}
