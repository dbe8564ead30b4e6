package inventory

import (
	"context"

	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
)

// TxRunner ejecuta una función dentro de una transacción de BD, pasando
// repositorios atados a esa tx. Garantiza que el append al libro y la
// actualización de la posición cacheada sean atómicos.
type TxRunner interface {
	Run(ctx context.Context, fn func(
		movRepo repository.MovementRepository,
		posRepo repository.StockPositionRepository,
	) error) error
}

// ActivityRecorder registra acciones en el log de actividad. Es observabilidad
// secundaria: un fallo al registrar nunca debe afectar el commit del movimiento.
// Lo implementa *audit.ActivityLogUseCase; la interfaz evita el acople directo.
type ActivityRecorder interface {
	Record(ctx context.Context, actor, action, module string, details entity.ActivityDetails)
}
