package inventory

import (
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
)

// Project pliega los movimientos de una pareja (producto, tienda) y devuelve la
// cantidad disponible: suma entradas (IN) y resta salidas (OUT) y retiros (REM).
// Los movimientos deben venir en orden de timestamp ascendente (desempate por
// secuencia de inserción), que es como los entrega el almacén del libro.
// Historia vacía -> 0. La función es pura: llamarla dos veces sobre la misma
// historia produce el mismo resultado.
func Project(movements []*entity.Movement) int64 {
	var onHand int64
	for _, m := range movements {
		onHand += Delta(m.Type, m.Quantity)
	}
	return onHand
}

// Delta devuelve la contribución con signo de un movimiento a la cantidad
// disponible: +quantity para IN, -quantity para OUT y REM.
// Tipos desconocidos no aportan nada; el servicio de registro los rechaza antes.
func Delta(movementType string, quantity int64) int64 {
	switch movementType {
	case entity.MovementTypeIN:
		return quantity
	case entity.MovementTypeOUT, entity.MovementTypeREM:
		return -quantity
	}
	return 0
}

// ProjectWithCandidate proyecta la historia y aplica encima un movimiento
// candidato aún no confirmado. Es la cantidad que quedaría si el candidato se
// aceptara; el servicio de registro la usa para rechazar salidas que dejarían
// el disponible en negativo antes de hacer commit.
func ProjectWithCandidate(onHand int64, candidateType string, candidateQty int64) int64 {
	return onHand + Delta(candidateType, candidateQty)
}
