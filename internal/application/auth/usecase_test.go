package auth_test

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/cafe-pos-api/internal/application/auth"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/infrastructure/memory"
	"github.com/jhoicas/cafe-pos-api/pkg/jwt"
)

func newAuth(t *testing.T, active bool) *auth.AuthUseCase {
	t.Helper()
	store := memory.New()
	hash, err := auth.HashPassword("secreto1")
	require.NoError(t, err)
	require.NoError(t, store.Repos().Users.Create(context.Background(), &entity.User{
		ID: "u1", Username: "maria", PasswordHash: hash, Role: entity.RoleCashier, Active: active, CreatedAt: time.Now(),
	}))
	return auth.NewAuthUseCase(store.Repos().Users, auth.JWTConfig{Secret: "s3cret", ExpMinutes: 60, Issuer: "test"})
}

func TestLogin_OK(t *testing.T) {
	uc := newAuth(t, true)

	res, err := uc.Login(context.Background(), dto.LoginRequest{Username: "  MARIA ", Password: "secreto1"})
	require.NoError(t, err)
	assert.Equal(t, dto.SessionUser{ID: "u1", Username: "maria", Role: "cashier"}, res.User)

	id, err := jwt.Parse("s3cret", res.Token)
	require.NoError(t, err)
	assert.Equal(t, "u1", id.UserID)
	assert.Equal(t, "cashier", id.Role)
}

func TestLogin_CredencialesInvalidas(t *testing.T) {
	cases := []struct {
		name     string
		active   bool
		username string
		password string
	}{
		{"contraseña incorrecta", true, "maria", "otra-clave"},
		{"usuario inexistente", true, "pedro", "secreto1"},
		{"usuario inactivo", false, "maria", "secreto1"},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := newAuth(t, tc.active).Login(context.Background(), dto.LoginRequest{Username: tc.username, Password: tc.password})
			require.Error(t, err)
			assert.ErrorIs(t, err, domain.ErrUnauthorized)
			assert.Equal(t, "Invalid username/password", err.Error())
		})
	}
}

func TestLogin_CamposRequeridos(t *testing.T) {
	_, err := newAuth(t, true).Login(context.Background(), dto.LoginRequest{Username: "maria"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestHashPassword_Longitud(t *testing.T) {
	_, err := auth.HashPassword("12345")
	var de *domain.Error
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Password must be at least 6 characters", de.Message)

	_, err = auth.HashPassword("   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)

	_, err = auth.HashPassword(strings.Repeat("a", 80))
	require.True(t, errors.As(err, &de))
	assert.Equal(t, "Password must be at most 72 bytes", de.Message)

	hash, err := auth.HashPassword(strings.Repeat("a", 72))
	require.NoError(t, err)
	assert.NotEmpty(t, hash)
}
