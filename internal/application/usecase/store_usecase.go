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

// StoreUseCase casos de uso CRUD para tiendas.
type StoreUseCase struct {
	repo     repository.StoreRepository
	activity ActivityRecorder
}

// NewStoreUseCase construye el caso de uso.
func NewStoreUseCase(repo repository.StoreRepository, activity ActivityRecorder) *StoreUseCase {
	return &StoreUseCase{repo: repo, activity: activity}
}

// Create crea una nueva tienda.
func (uc *StoreUseCase) Create(ctx context.Context, actor string, in dto.CreateStoreRequest) (*dto.StoreResponse, error) {
	now := time.Now()
	store := &entity.Store{
		ID:        uuid.New().String(),
		Name:      in.Name,
		Location:  in.Location,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repo.Create(store); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, "create_store", store.ID, store.Name)
	return toStoreResponse(store), nil
}

// GetByID obtiene una tienda por ID.
func (uc *StoreUseCase) GetByID(ctx context.Context, id string) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	return toStoreResponse(store), nil
}

// Update actualiza una tienda.
func (uc *StoreUseCase) Update(ctx context.Context, actor, id string, in dto.UpdateStoreRequest) (*dto.StoreResponse, error) {
	store, err := uc.repo.GetByID(id)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}
	if in.Name != nil {
		store.Name = *in.Name
	}
	if in.Location != nil {
		store.Location = *in.Location
	}
	store.UpdatedAt = time.Now()
	if err := uc.repo.Update(store); err != nil {
		return nil, err
	}
	uc.record(ctx, actor, "update_store", store.ID, store.Name)
	return toStoreResponse(store), nil
}

// List lista tiendas con paginación.
func (uc *StoreUseCase) List(ctx context.Context, page dto.PageRequest) (*dto.StoreListResponse, error) {
	page.DefaultPage()
	list, err := uc.repo.List(page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StoreResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *toStoreResponse(s))
	}
	return &dto.StoreListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

func (uc *StoreUseCase) record(ctx context.Context, actor, action, entityID, entityName string) {
	if uc.activity == nil {
		return
	}
	uc.activity.Record(ctx, actor, action, entity.ActivityModuleCatalog, entity.ActivityDetails{
		Kind:       entity.DetailKindCatalog,
		EntityID:   entityID,
		EntityName: entityName,
	})
}

func toStoreResponse(s *entity.Store) *dto.StoreResponse {
	return &dto.StoreResponse{
		ID:        s.ID,
		Name:      s.Name,
		Location:  s.Location,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}
