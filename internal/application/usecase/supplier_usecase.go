package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// maxSuppliers tope del listado de proveedores (sin paginación).
const maxSuppliers = 500

// SupplierUseCase CRUD de proveedores.
type SupplierUseCase struct {
	repo repository.SupplierRepository
	now  func() time.Time
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, now: time.Now}
}

var errSupplierNotFound = domain.NotFound("Supplier not found")

func (uc *SupplierUseCase) Create(ctx context.Context, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	name := strings.TrimSpace(in.Name)
	if name == "" {
		return nil, domain.Invalid("name is required")
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := uc.now().UTC()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      name,
		Phone:     strings.TrimSpace(in.Phone),
		Email:     strings.TrimSpace(in.Email),
		Address:   strings.TrimSpace(in.Address),
		Note:      strings.TrimSpace(in.Note),
		Active:    active,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

func (uc *SupplierUseCase) Update(ctx context.Context, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	s, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if s == nil {
		return nil, errSupplierNotFound
	}
	set := func(dst *string, v *string) {
		if v != nil {
			*dst = strings.TrimSpace(*v)
		}
	}
	set(&s.Name, in.Name)
	if s.Name == "" {
		return nil, domain.Invalid("name is required")
	}
	set(&s.Phone, in.Phone)
	set(&s.Email, in.Email)
	set(&s.Address, in.Address)
	set(&s.Note, in.Note)
	if in.Active != nil {
		s.Active = *in.Active
	}
	s.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, s); err != nil {
		return nil, err
	}
	out := dto.FromSupplier(s)
	return &out, nil
}

func (uc *SupplierUseCase) Delete(ctx context.Context, id string) error {
	err := uc.repo.Delete(ctx, id)
	if err == domain.ErrNotFound {
		return errSupplierNotFound
	}
	return err
}

// List proveedores por nombre, hasta 500.
func (uc *SupplierUseCase) List(ctx context.Context, q dto.SupplierListQuery) (*dto.ItemsResponse[dto.SupplierResponse], error) {
	list, err := uc.repo.List(ctx, repository.SupplierFilter{
		Search: strings.TrimSpace(q.Search),
		Active: q.Active,
		Limit:  maxSuppliers,
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, dto.FromSupplier(s))
	}
	return &dto.ItemsResponse[dto.SupplierResponse]{Items: items}, nil
}
