package usecase_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/auth"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/application/usecase"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
)

func TestUserUseCase_CreateYDuplicado(t *testing.T) {
	repos := memory.New().Repos()
	uc := usecase.NewUserUseCase(repos.Users)
	ctx := context.Background()

	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: " Caja1 ", Password: "secreto1", Role: "cashier"})
	require.NoError(t, err)
	assert.Equal(t, "caja1", u.Username)
	assert.True(t, u.Active)

	_, err = uc.Create(ctx, dto.CreateUserRequest{Username: "CAJA1", Password: "secreto1", Role: "cashier"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	assert.Equal(t, "Username already exists", err.Error())

	// el hash se guarda pero nunca sale en la respuesta
	stored, err := repos.Users.GetByUsername(ctx, "caja1")
	require.NoError(t, err)
	assert.NotEqual(t, "secreto1", stored.PasswordHash)
}

func TestUserUseCase_CreateValidaciones(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.New().Repos().Users)
	cases := map[string]struct {
		in  dto.CreateUserRequest
		msg string
	}{
		"faltan campos":    {dto.CreateUserRequest{Username: "ana"}, "username, password, role are required"},
		"rol inválido":     {dto.CreateUserRequest{Username: "ana", Password: "secreto1", Role: "root"}, "Invalid role"},
		"contraseña corta": {dto.CreateUserRequest{Username: "ana", Password: "123", Role: "admin"}, "Password must be at least 6 characters"},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			_, err := uc.Create(context.Background(), tc.in)
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrInvalidInput)
			assert.Equal(t, tc.msg, err.Error())
		})
	}
}

func TestUserUseCase_UpdateYResetPassword(t *testing.T) {
	repos := memory.New().Repos()
	uc := usecase.NewUserUseCase(repos.Users)
	ctx := context.Background()
	u, err := uc.Create(ctx, dto.CreateUserRequest{Username: "ana", Password: "secreto1", Role: "cashier"})
	require.NoError(t, err)

	up, err := uc.Update(ctx, u.ID, dto.UpdateUserRequest{Role: strPtr("admin"), Active: boolPtr(false)})
	require.NoError(t, err)
	assert.Equal(t, "admin", up.Role)
	assert.False(t, up.Active)

	_, err = uc.Update(ctx, u.ID, dto.UpdateUserRequest{Role: strPtr("chef")})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	require.NoError(t, uc.ResetPassword(ctx, u.ID, dto.ResetPasswordRequest{Password: "nueva-clave"}))
	_, err = uc.Update(ctx, u.ID, dto.UpdateUserRequest{Active: boolPtr(true)})
	require.NoError(t, err)
	login := auth.NewAuthUseCase(repos.Users, auth.JWTConfig{Secret: "x", ExpMinutes: 5})
	_, err = login.Login(ctx, dto.LoginRequest{Username: "ana", Password: "nueva-clave"})
	assert.NoError(t, err)

	err = uc.ResetPassword(ctx, "nope", dto.ResetPasswordRequest{Password: "nueva-clave"})
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrUserNotFound)
	assert.Equal(t, "User not found", err.Error())

	err = uc.ResetPassword(ctx, u.ID, dto.ResetPasswordRequest{Password: "corta"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestUserUseCase_ListFiltros(t *testing.T) {
	uc := usecase.NewUserUseCase(memory.New().Repos().Users)
	ctx := context.Background()
	for _, in := range []dto.CreateUserRequest{
		{Username: "admin", Password: "secreto1", Role: "admin"},
		{Username: "caja1", Password: "secreto1", Role: "cashier"},
		{Username: "caja2", Password: "secreto1", Role: "cashier", Active: boolPtr(false)},
	} {
		_, err := uc.Create(ctx, in)
		require.NoError(t, err)
	}

	res, err := uc.List(ctx, dto.UserListQuery{})
	require.NoError(t, err)
	assert.Equal(t, 3, res.Total)
	assert.Equal(t, 50, res.Limit)

	res, err = uc.List(ctx, dto.UserListQuery{Role: "cashier", Active: boolPtr(true)})
	require.NoError(t, err)
	require.Equal(t, 1, res.Total)
	assert.Equal(t, "caja1", res.Items[0].Username)

	res, err = uc.List(ctx, dto.UserListQuery{Search: "CAJA"})
	require.NoError(t, err)
	assert.Equal(t, 2, res.Total)
}

func TestUserUseCase_EnsureAdmin(t *testing.T) {
	repos := memory.New().Repos()
	uc := usecase.NewUserUseCase(repos.Users)
	ctx := context.Background()

	created, err := uc.EnsureAdmin(ctx, "Admin", "admin123")
	require.NoError(t, err)
	assert.True(t, created)

	created, err = uc.EnsureAdmin(ctx, "admin", "otra-clave")
	require.NoError(t, err)
	assert.False(t, created, "la segunda ejecución no toca al admin existente")

	u, err := repos.Users.GetByUsername(ctx, "admin")
	require.NoError(t, err)
	assert.Equal(t, "admin", u.Role)
	assert.True(t, u.Active)

	_, err = uc.EnsureAdmin(ctx, "otro", "123")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}
