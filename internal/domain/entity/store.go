package entity

import "time"

// Store representa una tienda o sucursal donde se mantiene inventario.
type Store struct {
	ID        string
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
