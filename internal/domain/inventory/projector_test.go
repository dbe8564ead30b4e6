package inventory_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/domain/inventory"
)

func mov(movType string, qty int64) *entity.Movement {
	return &entity.Movement{Type: movType, Quantity: qty}
}

// Historia vacía debe proyectar 0, no error ni valor especial.
func TestProject_HistoriaVacia_RetornaCero(t *testing.T) {
	assert.Equal(t, int64(0), inventory.Project(nil))
	assert.Equal(t, int64(0), inventory.Project([]*entity.Movement{}))
}

// IN suma, OUT y REM restan.
func TestProject_PliegueConSigno(t *testing.T) {
	history := []*entity.Movement{
		mov(entity.MovementTypeIN, 50),
		mov(entity.MovementTypeOUT, 30),
		mov(entity.MovementTypeIN, 10),
		mov(entity.MovementTypeREM, 5),
	}
	assert.Equal(t, int64(25), inventory.Project(history))
}

// Una historia que entra y sale lo mismo queda exactamente en cero.
func TestProject_EntradaYSalidaIguales_QuedaEnCero(t *testing.T) {
	history := []*entity.Movement{
		mov(entity.MovementTypeIN, 10),
		mov(entity.MovementTypeOUT, 10),
	}
	assert.Equal(t, int64(0), inventory.Project(history))
}

// Project es una función pura: dos pliegues de la misma historia coinciden.
func TestProject_EsDeterminista(t *testing.T) {
	history := []*entity.Movement{
		mov(entity.MovementTypeIN, 100),
		mov(entity.MovementTypeOUT, 33),
		mov(entity.MovementTypeREM, 7),
	}
	first := inventory.Project(history)
	second := inventory.Project(history)
	assert.Equal(t, first, second)
	assert.Equal(t, int64(60), first)
}

func TestDelta_PorTipo(t *testing.T) {
	assert.Equal(t, int64(5), inventory.Delta(entity.MovementTypeIN, 5))
	assert.Equal(t, int64(-5), inventory.Delta(entity.MovementTypeOUT, 5))
	assert.Equal(t, int64(-5), inventory.Delta(entity.MovementTypeREM, 5))
	// Tipo desconocido no aporta; el servicio lo rechaza antes de llegar aquí.
	assert.Equal(t, int64(0), inventory.Delta("TRANSFER", 5))
}

// ProjectWithCandidate es el disponible que quedaría si se aceptara el candidato.
func TestProjectWithCandidate(t *testing.T) {
	assert.Equal(t, int64(15), inventory.ProjectWithCandidate(10, entity.MovementTypeIN, 5))
	assert.Equal(t, int64(0), inventory.ProjectWithCandidate(10, entity.MovementTypeOUT, 10))
	assert.Equal(t, int64(-1), inventory.ProjectWithCandidate(10, entity.MovementTypeREM, 11),
		"el candidato que deja negativo debe proyectar negativo para que el servicio lo rechace")
}
