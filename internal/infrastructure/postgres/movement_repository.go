package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"github.com/bazaartech/inventory-ledger/internal/domain"
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación del libro de movimientos sobre PostgreSQL
// (usable con pool o tx). La tabla es append-only: este adaptador no expone
// UPDATE ni DELETE.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, seq, product_id, store_id, supplier_id, type, quantity, idempotency_key, timestamp, actor`

// Append persiste un movimiento. El timestamp lo asigna la BD (now()) y seq es
// un bigserial, de modo que el orden de inserción queda grabado y desempata
// timestamps iguales.
func (r *MovementRepo) Append(movement *entity.Movement) (string, error) {
	if movement.ID == "" {
		movement.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, product_id, store_id, supplier_id, type, quantity, idempotency_key, actor)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING seq, timestamp`
	supplierID := (*string)(nil)
	if movement.SupplierID != "" {
		supplierID = &movement.SupplierID
	}
	idemKey := (*string)(nil)
	if movement.IdempotencyKey != "" {
		idemKey = &movement.IdempotencyKey
	}
	actor := (*string)(nil)
	if movement.Actor != "" {
		actor = &movement.Actor
	}
	err := r.q.QueryRow(context.Background(), query,
		movement.ID, movement.ProductID, movement.StoreID, supplierID,
		movement.Type, movement.Quantity, idemKey, actor,
	).Scan(&movement.Seq, &movement.Timestamp)
	if err != nil {
		if isUniqueViolation(err) {
			return "", domain.ErrDuplicate
		}
		return "", fmt.Errorf("append movement: %w", err)
	}
	return movement.ID, nil
}

// GetByIdempotencyKey devuelve el movimiento confirmado con esa clave, o nil.
func (r *MovementRepo) GetByIdempotencyKey(key string) (*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE idempotency_key = $1`
	m, err := r.scanOne(r.q.QueryRow(context.Background(), query, key))
	if err != nil {
		return nil, fmt.Errorf("get movement by idempotency key: %w", err)
	}
	return m, nil
}

// ListByKey historia completa de una pareja (producto, tienda) en orden
// (timestamp, seq) ascendente: la entrada del proyector.
func (r *MovementRepo) ListByKey(productID, storeID string) ([]*entity.Movement, error) {
	query := `
		SELECT ` + movementColumns + `
		FROM movements
		WHERE product_id = $1 AND store_id = $2
		ORDER BY timestamp ASC, seq ASC`
	rows, err := r.q.Query(context.Background(), query, productID, storeID)
	if err != nil {
		return nil, fmt.Errorf("list movements by key: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// List consulta el libro con filtros opcionales, más recientes primero.
func (r *MovementRepo) List(filter repository.MovementFilter, limit, offset int) ([]*entity.Movement, error) {
	query := `SELECT ` + movementColumns + ` FROM movements WHERE 1=1`
	var args []any
	pos := 1
	if filter.ProductID != "" {
		query += fmt.Sprintf(" AND product_id = $%d", pos)
		args = append(args, filter.ProductID)
		pos++
	}
	if filter.StoreID != "" {
		query += fmt.Sprintf(" AND store_id = $%d", pos)
		args = append(args, filter.StoreID)
		pos++
	}
	if filter.SupplierID != "" {
		query += fmt.Sprintf(" AND supplier_id = $%d", pos)
		args = append(args, filter.SupplierID)
		pos++
	}
	if filter.Type != "" {
		query += fmt.Sprintf(" AND type = $%d", pos)
		args = append(args, filter.Type)
		pos++
	}
	if filter.From != nil {
		query += fmt.Sprintf(" AND timestamp >= $%d", pos)
		args = append(args, *filter.From)
		pos++
	}
	if filter.To != nil {
		query += fmt.Sprintf(" AND timestamp <= $%d", pos)
		args = append(args, *filter.To)
		pos++
	}
	query += fmt.Sprintf(" ORDER BY timestamp DESC, seq DESC LIMIT $%d OFFSET $%d", pos, pos+1)
	args = append(args, limit, offset)

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	return r.scanAll(rows)
}

// SumByKey pliegue con signo de una pareja calculado en la BD: IN suma,
// OUT y REM restan. Historia vacía -> 0.
func (r *MovementRepo) SumByKey(productID, storeID string) (int64, error) {
	query := `
		SELECT COALESCE(SUM(CASE WHEN type = 'IN' THEN quantity ELSE -quantity END), 0)
		FROM movements
		WHERE product_id = $1 AND store_id = $2`
	var sum int64
	err := r.q.QueryRow(context.Background(), query, productID, storeID).Scan(&sum)
	if err != nil {
		return 0, fmt.Errorf("sum movements by key: %w", err)
	}
	return sum, nil
}

func (r *MovementRepo) scanOne(row pgx.Row) (*entity.Movement, error) {
	var m entity.Movement
	var supplierID, idemKey, actor *string
	err := row.Scan(&m.ID, &m.Seq, &m.ProductID, &m.StoreID, &supplierID,
		&m.Type, &m.Quantity, &idemKey, &m.Timestamp, &actor)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	if supplierID != nil {
		m.SupplierID = *supplierID
	}
	if idemKey != nil {
		m.IdempotencyKey = *idemKey
	}
	if actor != nil {
		m.Actor = *actor
	}
	return &m, nil
}

func (r *MovementRepo) scanAll(rows pgx.Rows) ([]*entity.Movement, error) {
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		var supplierID, idemKey, actor *string
		if err := rows.Scan(&m.ID, &m.Seq, &m.ProductID, &m.StoreID, &supplierID,
			&m.Type, &m.Quantity, &idemKey, &m.Timestamp, &actor); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		if supplierID != nil {
			m.SupplierID = *supplierID
		}
		if idemKey != nil {
			m.IdempotencyKey = *idemKey
		}
		if actor != nil {
			m.Actor = *actor
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}
