package entity

import "time"

// StockPosition es la proyección cacheada del stock actual de un producto en una
// tienda. Se reconstruye siempre desde el libro de movimientos; nunca es la
// fuente de verdad por sí sola.
type StockPosition struct {
	ProductID string
	StoreID   string
	OnHand    int64
	UpdatedAt time.Time
}
