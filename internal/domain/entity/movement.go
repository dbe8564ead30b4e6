package entity

import "time"

// Tipos de movimiento de inventario.
const (
	MovementTypeIN  = "IN"  // entrada de mercancía
	MovementTypeOUT = "OUT" // venta / salida
	MovementTypeREM = "REM" // retiro manual / ajuste
)

// ValidMovementType indica si el tipo es uno de los tres reconocidos.
func ValidMovementType(t string) bool {
	return t == MovementTypeIN || t == MovementTypeOUT || t == MovementTypeREM
}

// Movement es un hecho inmutable del libro de inventario: una unidad de cambio
// sobre la pareja (producto, tienda). Nunca se actualiza ni se borra; las
// correcciones se expresan como movimientos compensatorios nuevos.
type Movement struct {
	ID             string
	Seq            int64 // número de inserción asignado por el almacén, desempata timestamps iguales
	ProductID      string
	StoreID        string
	SupplierID     string // solo significativo en movimientos IN
	Type           string // IN, OUT, REM
	Quantity       int64  // magnitud positiva; el signo lo implica Type
	IdempotencyKey string // opcional, provisto por el cliente para deduplicar reintentos
	Timestamp      time.Time
	Actor          string // UserID de quien lo registró
}
