package repository

import (
	"time"

	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
)

// ActivityFilter filtros para consultar el registro de actividad.
type ActivityFilter struct {
	Module string
	Action string // coincidencia parcial, insensible a mayúsculas
	Actor  string
	From   *time.Time
	To     *time.Time
}

// ActivityRepository puerto del registro de actividad, append-only.
type ActivityRepository interface {
	// Append persiste una entrada nueva y devuelve su ID.
	Append(entry *entity.ActivityEntry) (string, error)

	// List devuelve entradas filtradas, más recientes primero, hasta limit.
	List(filter ActivityFilter, limit int) ([]*entity.ActivityEntry, error)
}
