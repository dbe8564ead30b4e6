package entity

import "time"

// Supplier representa un proveedor; solo es relevante en movimientos de entrada (IN).
type Supplier struct {
	ID          string
	Name        string
	ContactInfo string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
