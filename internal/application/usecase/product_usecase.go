package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/bazaartech/inventory-ledger/internal/application/dto"
	"github.com/bazaartech/inventory-ledger/internal/domain"
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
)

// ActivityRecorder puerto mínimo para auditar acciones de catálogo.
type ActivityRecorder interface {
	Record(ctx context.Context, actor, action, module string, details entity.ActivityDetails)
}

// ProductUseCase casos de uso CRUD para productos. El stock no se edita aquí:
// se deriva del libro de movimientos.
type ProductUseCase struct {
	repo     repository.ProductRepository
	activity ActivityRecorder
}

// NewProductUseCase construye el caso de uso.
func NewProductUseCase(repo repository.ProductRepository, activity ActivityRecorder) *ProductUseCase {
	return &ProductUseCase{repo: repo, activity: activity}
}

// Create crea un nuevo producto. SKU debe ser único.
func (uc *ProductUseCase) Create(ctx context.Context, actor string, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	existing, _ := uc.repo.GetBySKU(in.SKU)
	if existing != nil {
		return nil, domain.ErrDuplicate
	}
	if in.LowStockThreshold != nil && *in.LowStockThreshold < 0 {
		return nil, domain.NewValidationError("low_stock_threshold", "no puede ser negativo")
	}
	now := time.Now()
	product := &entity.Product{
		ID:                uuid.New().String(),
		Name:              in.Name,
		SKU:               in.SKU,
		LowStockThreshold: in.LowStockThreshold,
		CreatedAt:         now,
		UpdatedAt:         now,
	}
	if err := uc.repo.Create(product); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, "create_product", product.ID, product.Name)
	return toProductResponse(product), nil
}

// GetByID obtiene un producto por ID.
func (uc *ProductUseCase) GetByID(ctx context.Context, id string) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	return toProductResponse(product), nil
}

// Update actualiza un producto. El SKU no cambia; el stock se maneja vía movimientos.
func (uc *ProductUseCase) Update(ctx context.Context, actor, id string, in dto.UpdateProductRequest) (*dto.ProductResponse, error) {
	product, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		product.Name = *in.Name
	}
	if in.LowStockThreshold != nil {
		if *in.LowStockThreshold < 0 {
			return nil, domain.NewValidationError("low_stock_threshold", "no puede ser negativo")
		}
		product.LowStockThreshold = in.LowStockThreshold
	}
	product.UpdatedAt = time.Now()
	if err := uc.repo.Update(product); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, "update_product", product.ID, product.Name)
	return toProductResponse(product), nil
}

// List lista productos con paginación.
func (uc *ProductUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.ProductListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		items = append(items, *toProductResponse(p))
	}
	return &dto.ProductListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

func (uc *ProductUseCase) record(ctx context.Context, actor, action, entityID, entityName string) {
	if uc.activity == nil {
		return
	}
	uc.activity.Record(ctx, actor, action, entity.ActivityModuleCatalog, entity.ActivityDetails{
		Kind:       entity.DetailKindCatalog,
		EntityID:   entityID,
		EntityName: entityName,
	})
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:                p.ID,
		Name:              p.Name,
		SKU:               p.SKU,
		LowStockThreshold: p.LowStockThreshold,
		CreatedAt:         p.CreatedAt,
		UpdatedAt:         p.UpdatedAt,
	}
}
