package repository

import "github.com/bazaartech/inventory-ledger/internal/domain/entity"

// ProductRepository puerto de persistencia para productos.
type ProductRepository interface {
	Create(product *entity.Product) error
	GetByID(id string) (*entity.Product, error)
	GetBySKU(sku string) (*entity.Product, error)
	Update(product *entity.Product) error
	List(limit, offset int) ([]*entity.Product, error)
}
