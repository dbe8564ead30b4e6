package entity

import "time"

// Product representa un producto o SKU del catálogo.
// El stock no vive aquí: se deriva del libro de movimientos por tienda.
type Product struct {
	ID   string
	Name string
	SKU  string // código único

	// LowStockThreshold umbral propio del producto; nil usa el umbral global del sistema.
	LowStockThreshold *int64

	CreatedAt time.Time
	UpdatedAt time.Time
}
