package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/cafe-pos-api/internal/application/dto"
	"github.com/jhoicas/cafe-pos-api/internal/domain"
	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/pos"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// ProductUseCase casos de uso CRUD del catálogo. El stock se maneja vía reposición y facturas de compra.
type ProductUseCase struct {
	repo repository.ProductRepository
	now  func() time.Time
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository) *ProductUseCase {
	return &ProductUseCase{repo: repo, now: time.Now}
}

var errProductNotFound = domain.NotFound("Product not found")

func nonNegativeMoney(field string, v *decimal.Decimal) (decimal.Decimal, error) {
	if v == nil {
		return decimal.Zero, nil
	}
	if v.IsNegative() {
		return decimal.Zero, domain.Invalid("%s must be a non-negative number", field)
	}
	return pos.Round2(*v), nil
}

// Create crea un producto activo por defecto, con stock 0.
func (uc *ProductUseCase) Create(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	name := strings.TrimSpace(in.Name)
	category := strings.TrimSpace(in.Category)
	if name == "" || category == "" {
		return nil, domain.Invalid("name and category are required")
	}
	if in.Price == nil {
		return nil, domain.Invalid("price must be a non-negative number")
	}
	price, err := nonNegativeMoney("price", in.Price)
	if err != nil {
		return nil, err
	}
	cost, err := nonNegativeMoney("cost", in.Cost)
	if err != nil {
		return nil, err
	}
	threshold := 0
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.Invalid("lowStockThreshold must be >= 0")
		}
		threshold = *in.LowStockThreshold
	}
	active := true
	if in.Active != nil {
		active = *in.Active
	}
	now := uc.now().UTC()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              name,
		Category:          category,
		Price:             price,
		Cost:              cost,
		LowStockThreshold: threshold,
		SKU:               strings.TrimSpace(in.SKU),
		Active:            active,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errProductNotFound
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Update aplica los campos presentes. No permite modificar StockQty.
func (uc *ProductUseCase) Update(ctx context.Context, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, errProductNotFound
	}
	if in.Name != nil {
		if product.Name = strings.TrimSpace(*in.Name); product.Name == "" {
			return nil, domain.Invalid("name and category are required")
		}
	}
	if in.Category != nil {
		if product.Category = strings.TrimSpace(*in.Category); product.Category == "" {
			return nil, domain.Invalid("name and category are required")
		}
	}
	if in.Price != nil {
		if product.Price, err = nonNegativeMoney("price", in.Price); err != nil {
			return nil, err
		}
	}
	if in.Cost != nil {
		if product.Cost, err = nonNegativeMoney("cost", in.Cost); err != nil {
			return nil, err
		}
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.Invalid("lowStockThreshold must be >= 0")
		}
		product.LowStockThreshold = *in.LowStockThreshold
	}
	if in.SKU != nil {
		product.SKU = strings.TrimSpace(*in.SKU)
	}
	if in.Active != nil {
		product.Active = *in.Active
	}
	product.UpdatedAt = uc.now().UTC()
	if err := uc.repo.Update(ctx, product); err != nil {
		return nil, err
	}
	out := dto.FromProduct(product)
	return &out, nil
}

// Delete elimina el producto; las órdenes históricas conservan su snapshot.
func (uc *ProductUseCase) Delete(ctx context.Context, id string) error {
	err := uc.repo.Delete(ctx, id)
	if err == domain.ErrNotFound {
		return errProductNotFound
	}
	return err
}

// List lista productos con filtros y paginación (limit por defecto 20, máximo 100).
func (uc *ProductUseCase) List(ctx context.Context, q dto.ProductListQuery) (*dto.PageResponse[dto.ProductResponse], error) {
	page := q.PageQuery.Normalize(20, 100)
	list, total, err := uc.repo.List(ctx, repository.ProductFilter{
		Search:   strings.TrimSpace(q.Search),
		Category: strings.TrimSpace(q.Category),
		Active:   q.Active,
		Limit:    page.Limit,
		Offset:   page.Offset(),
	})
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, dto.FromProduct(p))
	}
	res := dto.NewPage(items, page, total)
	return &res, nil
}
