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

// SupplierUseCase casos de uso CRUD para proveedores.
type SupplierUseCase struct {
	repo     repository.SupplierRepository
	activity ActivityRecorder
}

// NewSupplierUseCase construye el caso de uso.
func NewSupplierUseCase(repo repository.SupplierRepository, activity ActivityRecorder) *SupplierUseCase {
	return &SupplierUseCase{repo: repo, activity: activity}
}

// Create crea un nuevo proveedor.
func (uc *SupplierUseCase) Create(ctx context.Context, actor string, in dto.CreateSupplierRequest) (*dto.SupplierResponse, error) {
	now := time.Now()
	supplier := &entity.Supplier{
		ID:          uuid.New().String(),
		Name:        in.Name,
		ContactInfo: in.ContactInfo,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	if err := uc.repo.Create(supplier); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, "create_supplier", supplier.ID, supplier.Name)
	return toSupplierResponse(supplier), nil
}

// GetByID obtiene un proveedor por ID.
func (uc *SupplierUseCase) GetByID(ctx context.Context, id string) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	return toSupplierResponse(supplier), nil
}

// Update actualiza un proveedor.
func (uc *SupplierUseCase) Update(ctx context.Context, actor, id string, in dto.UpdateSupplierRequest) (*dto.SupplierResponse, error) {
	supplier, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if supplier == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		supplier.Name = *in.Name
	}
	if in.ContactInfo != nil {
		supplier.ContactInfo = *in.ContactInfo
	}
	supplier.UpdatedAt = time.Now()
	if err := uc.repo.Update(supplier); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, "update_supplier", supplier.ID, supplier.Name)
	return toSupplierResponse(supplier), nil
}

// List lista proveedores con paginación.
func (uc *SupplierUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.SupplierListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.SupplierResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toSupplierResponse(s))
	}
	return &dto.SupplierListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

func (uc *SupplierUseCase) record(ctx context.Context, actor, action, entityID, entityName string) {
	if uc.activity == nil {
		return
	}
	uc.activity.Record(ctx, actor, action, entity.ActivityModuleCatalog, entity.ActivityDetails{
		Kind:       entity.DetailKindCatalog,
		EntityID:   entityID,
		EntityName: entityName,
	})
}

func toSupplierResponse(s *entity.Supplier) *dto.SupplierResponse {
	return &dto.SupplierResponse{
		ID:          s.ID,
		Name:        s.Name,
		ContactInfo: s.ContactInfo,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   s.UpdatedAt,
	}
}
