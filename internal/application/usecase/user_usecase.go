package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cafe-pos-api/internal/application/auth"
	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// UserUseCase administración de usuarios (solo admin).
type UserUseCase struct {
	repo repository.UserRepository
	now  func() time.Time
}

// NewUserUseCase construye el caso de uso.
func NewUserUseCase(repo repository.UserRepository) *UserUseCase {
	return &UserUseCase{repo: repo, now: time.Now}
}

var errUserNotFound = &domain.Error{Kind: domain.ErrUserNotFound, Message: "User not found"}

// Create crea un usuario con username en minúsculas. Duplicado -> 409.
func (uc *UserUseCase) Create(ctx context.Context, in dto.CreateUserRequest) (*dto.UserResponse, error) {
	username := auth.NormalizeUsername(in.Username)
	role := strings.TrimSpace(in.Role)
	if username == "" || strings.TrimSpace(in.Password) == "" || role == "" {
		return nil, domain.Invalid("username, password, role are required")
	}
	if !entity.ValidRole(role) {
		return nil, domain.Invalid("Invalid role")
	}
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return nil, err
	}
	existing, err := uc.repo.GetByUsername(ctx, username)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, domain.Duplicate("Username already exists")
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := uc.now().UTC()
	user := &entity.User{
		ID:           uuid.New().String(),
		Username:     username,
		PasswordHash: hash,
		Role:         role,
		Active:       active,
		CreatedAt:    now,
		UpdatedAt:    now,
	}
	if err := uc.repo.Create(ctx, user); err != nil {
		return nil, err
	}
	out := dto.FromUser(user)
	return &out, nil
}

// Update cambia rol y/o estado.
func (uc *UserUseCase) Update(ctx context.Context, id string, in dto.UpdateUserRequest) (*dto.UserResponse, error) {
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, errUserNotFound
	}
	if in.Role != nil {
		if !entity.ValidRole(*in.Role) {
			return nil, domain.Invalid("Invalid role")
		}
		user.Role = *in.Role
	}
	if in.Active != nil {
		user.Active = *in.Active
	}
	user.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, user); err != nil {
		return nil, err
	}
	out := dto.FromUser(user)
	return &out, nil
}

// ResetPassword reemplaza el hash.
func (uc *UserUseCase) ResetPassword(ctx context.Context, id string, in dto.ResetPasswordRequest) error {
	hash, err := auth.HashPassword(in.Password)
	if err != nil {
		return err
	}
	user, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if user == nil {
		return errUserNotFound
	}
	user.PasswordHash = hash
	user.UpdatedAt = uc.now().UTC()
	return uc.repo.Update(ctx, user)
}

// List lista usuarios (limit por defecto 50, máximo 100).
func (uc *UserUseCase) List(ctx context.Context, q dto.UserListQuery) (*dto.PageResponse[dto.UserResponse], error) {
	page := q.PageQuery.Normalize(50, 100)
	list, total, err := uc.repo.List(ctx, repository.UserFilter{
		Search: strings.ToLower(strings.TrimSpace(q.Search)),
		Role:   strings.TrimSpace(q.Role),
		Active: q.Active,
		Limit:  page.Limit,
		Offset: page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.UserResponse, 0, len(list))
	for _, u := range list {
		items = append(items, dto.FromUser(u))
	}
	res := dto.NewPage(items, page, total)
	return &res, nil
}

// EnsureAdmin crea el admin inicial si el username no existe. Idempotente: created=false si ya estaba.
func (uc *UserUseCase) EnsureAdmin(ctx context.Context, username, password string) (created bool, err error) {
	existing, err := uc.repo.GetByUsername(ctx, auth.NormalizeUsername(username))
	if err != nil {
		return false, err
	}
	if existing != nil {
		return false, nil
	}
	if _, err := uc.Create(ctx, dto.CreateUserRequest{Username: username, Password: password, Role: entity.RoleAdmin}); err != nil {
		return false, err
	}
	return true, nil
}
