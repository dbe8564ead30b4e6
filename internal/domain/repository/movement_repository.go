package repository

import (
	"time"

	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
)

// MovementFilter filtros opcionales para consultar el libro de movimientos.
// Los campos vacíos / nil no filtran.
type MovementFilter struct {
	ProductID  string
	StoreID    string
	SupplierID string
	Type       string
	From       *time.Time
	To         *time.Time
}

// MovementRepository es el puerto del libro de movimientos. Append es la única
// escritura: no hay update ni delete, el libro es append-only.
type MovementRepository interface {
	// Append persiste un movimiento nuevo. El almacén asigna Timestamp y Seq
	// (monótonos en orden de inserción) y devuelve el ID del registro.
	Append(movement *entity.Movement) (string, error)

	// GetByIdempotencyKey devuelve el movimiento ya confirmado con esa clave,
	// o nil si no existe. Soporta reintentos de clientes sin duplicar.
	GetByIdempotencyKey(key string) (*entity.Movement, error)

	// ListByKey devuelve la historia completa de una pareja (producto, tienda)
	// en orden (timestamp, seq) ascendente. Entrada del proyector.
	ListByKey(productID, storeID string) ([]*entity.Movement, error)

	// List consulta el libro con filtros, orden descendente por fecha, paginado.
	List(filter MovementFilter, limit, offset int) ([]*entity.Movement, error)

	// SumByKey calcula en el almacén el pliegue con signo (IN positivo,
	// OUT/REM negativo) de una pareja. Equivale a proyectar ListByKey.
	SumByKey(productID, storeID string) (int64, error)
}
