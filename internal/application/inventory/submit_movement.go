package inventory

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/bazaartech/inventory-ledger/internal/application/dto"
	"github.com/bazaartech/inventory-ledger/internal/domain"
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	domInv "github.com/bazaartech/inventory-ledger/internal/domain/inventory"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
	"github.com/bazaartech/inventory-ledger/pkg/logger"
	"github.com/bazaartech/inventory-ledger/pkg/metrics"
)

// SubmitMovementUseCase valida y registra movimientos (IN, OUT, REM) en el libro
// de inventario de forma transaccional, con bloqueo de fila (SELECT FOR UPDATE)
// sobre la posición cacheada de la pareja (producto, tienda).
//
// La verificación stock-suficiente es un check-then-act: el bloqueo de fila
// serializa los envíos concurrentes sobre la misma pareja; envíos a parejas
// distintas no se bloquean entre sí.
type SubmitMovementUseCase struct {
	txRunner     TxRunner
	movementRepo repository.MovementRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
	supplierRepo repository.SupplierRepository
	activity     ActivityRecorder
	log          *logger.Logger
}

// NewSubmitMovementUseCase construye el caso de uso.
func NewSubmitMovementUseCase(
	txRunner TxRunner,
	movementRepo repository.MovementRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	supplierRepo repository.SupplierRepository,
	activity ActivityRecorder,
	log *logger.Logger,
) *SubmitMovementUseCase {
	return &SubmitMovementUseCase{
		txRunner:     txRunner,
		movementRepo: movementRepo,
		productRepo:  productRepo,
		storeRepo:    storeRepo,
		supplierRepo: supplierRepo,
		activity:     activity,
		log:          log,
	}
}

// Submit valida la entrada, serializa contra envíos concurrentes de la misma
// pareja y hace append al libro junto con la actualización de la posición
// cacheada en una sola transacción. Devuelve el ID del movimiento confirmado.
//
// Errores:
//   - domain.ValidationError: cantidad <= 0, tipo no reconocido, producto/tienda/proveedor inexistente.
//   - domain.ErrInsufficientStock: OUT/REM dejaría el disponible en negativo.
//   - domain.ErrConcurrencyConflict: conflicto de serialización que persistió tras un reintento.
//   - domain.ErrLedgerIntegrity: la historia existente ya proyecta negativo (requiere investigación).
//
// supplier_id solo se toma en cuenta en IN; en OUT/REM se descarta en silencio
// (entrada permisiva, comportamiento heredado del sistema original).
func (uc *SubmitMovementUseCase) Submit(ctx context.Context, actor string, in dto.SubmitMovementRequest) (string, error) {
	if !entity.ValidMovementType(in.MovementType) {
		metrics.MovementRejected("validation")
		return "", domain.NewValidationError("movement_type", "debe ser IN, OUT o REM")
	}
	if in.Quantity <= 0 {
		metrics.MovementRejected("validation")
		return "", domain.NewValidationError("quantity", "debe ser un entero positivo")
	}

	product, err := uc.productRepo.GetByID(in.ProductID)
	if err != nil {
		return "", err
	}
	if product == nil {
		metrics.MovementRejected("validation")
		return "", domain.NewValidationError("product_id", "producto no existe")
	}
	store, err := uc.storeRepo.GetByID(in.StoreID)
	if err != nil {
		return "", err
	}
	if store == nil {
		metrics.MovementRejected("validation")
		return "", domain.NewValidationError("store_id", "tienda no existe")
	}

	supplierID := ""
	if in.MovementType == entity.MovementTypeIN && in.SupplierID != "" {
		supplier, err := uc.supplierRepo.GetByID(in.SupplierID)
		if err != nil {
			return "", err
		}
		if supplier == nil {
			metrics.MovementRejected("validation")
			return "", domain.NewValidationError("supplier_id", "proveedor no existe")
		}
		supplierID = in.SupplierID
	}

	// Reintento idempotente: misma clave -> mismo record_id, sin append duplicado.
	if key := strings.TrimSpace(in.IdempotencyKey); key != "" {
		existing, err := uc.movementRepo.GetByIdempotencyKey(key)
		if err != nil {
			return "", err
		}
		if existing != nil {
			return existing.ID, nil
		}
	}

	mov := &entity.Movement{
		ProductID:      in.ProductID,
		StoreID:        in.StoreID,
		SupplierID:     supplierID,
		Type:           in.MovementType,
		Quantity:       in.Quantity,
		IdempotencyKey: strings.TrimSpace(in.IdempotencyKey),
		Actor:          actor,
	}

	recordID, err := uc.submitOnce(ctx, mov)
	if errors.Is(err, domain.ErrConcurrencyConflict) {
		// Un conflicto de serialización invalidó el snapshot; re-validar una vez
		// contra estado fresco antes de rendirse.
		recordID, err = uc.submitOnce(ctx, mov)
	}
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrInsufficientStock):
			metrics.MovementRejected("insufficient_stock")
		case errors.Is(err, domain.ErrConcurrencyConflict):
			metrics.MovementRejected("conflict")
		case errors.Is(err, domain.ErrDuplicate):
			// Carrera entre dos reintentos con la misma clave: el otro ganó.
			if existing, lookupErr := uc.movementRepo.GetByIdempotencyKey(mov.IdempotencyKey); lookupErr == nil && existing != nil {
				return existing.ID, nil
			}
		}
		return "", err
	}

	metrics.MovementSubmitted(mov.Type)
	uc.recordActivity(ctx, actor, mov, recordID)
	return recordID, nil
}

// submitOnce ejecuta una transacción: bloquea la posición, proyecta el candidato
// y, si el invariante disponible>=0 se mantiene, hace append + upsert.
func (uc *SubmitMovementUseCase) submitOnce(ctx context.Context, mov *entity.Movement) (string, error) {
	var recordID string
	err := uc.txRunner.Run(ctx, func(
		movRepo repository.MovementRepository,
		posRepo repository.StockPositionRepository,
	) error {
		pos, err := posRepo.GetForUpdate(mov.ProductID, mov.StoreID)
		if err != nil {
			return err
		}
		if pos.OnHand < 0 {
			// Historia ya negativa sin rechazo previo registrado: alguien
			// manipuló los datos por fuera del servicio. Nunca se corrige
			// en silencio.
			return domain.ErrLedgerIntegrity
		}

		projected := domInv.ProjectWithCandidate(pos.OnHand, mov.Type, mov.Quantity)
		if projected < 0 {
			return domain.ErrInsufficientStock
		}

		id, err := movRepo.Append(mov)
		if err != nil {
			return err
		}
		recordID = id

		pos.OnHand = projected
		pos.UpdatedAt = time.Now()
		return posRepo.Upsert(pos)
	})
	if err != nil {
		return "", err
	}
	return recordID, nil
}

// recordActivity escribe la entrada de auditoría del movimiento. Best-effort:
// el movimiento ya está confirmado y un fallo aquí solo se registra en el log.
func (uc *SubmitMovementUseCase) recordActivity(ctx context.Context, actor string, mov *entity.Movement, recordID string) {
	if uc.activity == nil {
		return
	}
	uc.activity.Record(ctx, actor, "stock_"+strings.ToLower(mov.Type), entity.ActivityModuleInventory, entity.ActivityDetails{
		Kind:         entity.DetailKindMovement,
		MovementID:   recordID,
		MovementType: mov.Type,
		Quantity:     mov.Quantity,
		ProductID:    mov.ProductID,
		StoreID:      mov.StoreID,
	})
}
