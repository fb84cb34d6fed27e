package auth

import (
	"context"
	"strings"

	"golang.org/x/crypto/bcrypt"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
	"github.com/jhoicas/cafe-pos-api/pkg/jwt"
)

// JWTConfig configuración para generación de tokens.
type JWTConfig struct {
	Secret     string
	ExpMinutes int
	Issuer     string
}

// AuthUseCase login de usuarios del POS.
type AuthUseCase struct {
	users  repository.UserRepository
	jwtCfg JWTConfig
}

// NewAuthUseCase construye el caso de uso de auth.
func NewAuthUseCase(users repository.UserRepository, jwtCfg JWTConfig) *AuthUseCase {
	return &AuthUseCase{users: users, jwtCfg: jwtCfg}
}

// errInvalidCredentials mismo mensaje para usuario inexistente, inactivo o contraseña errónea.
var errInvalidCredentials = &domain.Error{Kind: domain.ErrUnauthorized, Message: "Invalid username/password"}

// Login verifica username/password de un usuario activo y emite el JWT.
func (uc *AuthUseCase) Login(ctx context.Context, in dto.LoginRequest) (*dto.LoginResponse, error) {
	username := NormalizeUsername(in.Username)
	if username == "" || in.Password == "" {
		return nil, domain.Invalid("username and password are required")
	}
	user, err := uc.users.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if user == nil || !user.Active {
		return nil, errInvalidCredentials
	}
	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(in.Password)); err != nil {
		return nil, errInvalidCredentials
	}
	token, err := jwt.Generate(uc.jwtCfg.Secret, uc.jwtCfg.Issuer,
		jwt.Identity{UserID: user.ID, Username: user.Username, Role: user.Role}, uc.jwtCfg.ExpMinutes)
	if err != nil {
		return nil, err
	}
	return &dto.LoginResponse{
		Token: token,
		User:  dto.SessionUser{ID: user.ID, Username: user.Username, Role: user.Role},
	}, nil
}

// NormalizeUsername recorta y pasa a minúsculas.
func NormalizeUsername(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}

// Límites de longitud de contraseña. bcrypt no acepta más de 72 bytes.
const (
	MinPasswordLength = 6
	MaxPasswordBytes  = 72
)

// HashPassword valida longitud y genera el hash bcrypt.
func HashPassword(password string) (string, error) {
	if strings.TrimSpace(password) == "" {
		return "", domain.Invalid("password is required")
	}
	if len(password) < MinPasswordLength {
		return "", domain.Invalid("Password must be at least 6 characters")
	}
	if len(password) > MaxPasswordBytes {
		return "", domain.Invalid("Password must be at most 72 bytes")
	}
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
