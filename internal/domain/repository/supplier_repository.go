package repository

import "github.com/bazaartech/inventory-ledger/internal/domain/entity"

// SupplierRepository puerto de persistencia para proveedores.
type SupplierRepository interface {
	Create(supplier *entity.Supplier) error
	GetByID(id string) (*entity.Supplier, error)
	Update(supplier *entity.Supplier) error
	List(limit, offset int) ([]*entity.Supplier, error)
}
