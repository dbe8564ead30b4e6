package repository

import "github.com/bazaartech/inventory-ledger/internal/domain/entity"

// StoreRepository puerto de persistencia para tiendas.
type StoreRepository interface {
	Create(store *entity.Store) error
	GetByID(id string) (*entity.Store, error)
	Update(store *entity.Store) error
	List(limit, offset int) ([]*entity.Store, error)
}
