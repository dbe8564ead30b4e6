package repository

import (
	"time"

	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
)

// StockPositionView posición cacheada enriquecida con datos de catálogo para
// los listados del dashboard.
type StockPositionView struct {
	ProductID         string
	ProductName       string
	SKU               string
	StoreID           string
	StoreName         string
	Location          string
	OnHand            int64
	LowStockThreshold *int64 // umbral por producto; nil usa el global
}

// StockFilter filtros del listado de posiciones (vista de stocks del dashboard).
type StockFilter struct {
	StoreID    string
	SupplierID string     // parejas con algún movimiento de ese proveedor
	From       *time.Time // parejas con algún movimiento desde esta fecha (inclusive)
	To         *time.Time // parejas con algún movimiento hasta esta fecha (inclusive)
	Search     string     // busca en nombre de producto, SKU y nombre de tienda
	Status     string     // out_of_stock | low_stock | in_stock (se filtra tras clasificar)
	SortField  string     // product_name | sku | store_name | quantity
	SortDesc   bool
}

// StockPositionRepository es el puerto de la proyección cacheada por
// (producto, tienda). Se mantiene transaccionalmente junto a cada append del
// libro; nunca se confía en ella como única verdad.
type StockPositionRepository interface {
	// Get devuelve la posición; si no existe aún, una posición en cero.
	Get(productID, storeID string) (*entity.StockPosition, error)

	// GetForUpdate obtiene la posición y bloquea la fila (SELECT FOR UPDATE)
	// para serializar envíos concurrentes sobre la misma pareja.
	GetForUpdate(productID, storeID string) (*entity.StockPosition, error)

	// Upsert inserta o actualiza la posición cacheada.
	Upsert(position *entity.StockPosition) error

	// ListAll devuelve todas las posiciones conocidas (para el resumen agregado
	// y la verificación contra el libro).
	ListAll() ([]*entity.StockPosition, error)

	// ListView devuelve posiciones con datos de catálogo, filtradas y ordenadas.
	ListView(filter StockFilter) ([]*StockPositionView, error)
}
