package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
)

var _ repository.ActivityRepository = (*ActivityRepo)(nil)

// ActivityRepo implementación de ActivityRepository sobre PostgreSQL.
// Los detalles se guardan como jsonb; fallos aquí nunca deben bloquear
// la operación que los originó (el caso de uso decide eso, no el repo).
type ActivityRepo struct {
	q Querier
}

// NewActivityRepository construye el adaptador. Pasar pool o tx (Querier).
func NewActivityRepository(q Querier) *ActivityRepo {
	return &ActivityRepo{q: q}
}

// Append persiste una entrada nueva y devuelve su ID. El timestamp lo asigna
// la base de datos para mantener un orden consistente con los movimientos.
func (r *ActivityRepo) Append(entry *entity.ActivityEntry) (string, error) {
	details, err := json.Marshal(entry.Details)
	if err != nil {
		return "", fmt.Errorf("marshal activity details: %w", err)
	}
	id := entry.ID
	if id == "" {
		id = uuid.New().String()
	}
	query := `
		INSERT INTO activity_log (id, actor, action, module, details, timestamp)
		VALUES ($1, $2, $3, $4, $5, now())
		RETURNING timestamp`
	err = r.q.QueryRow(context.Background(), query,
		id, entry.Actor, entry.Action, entry.Module, details,
	).Scan(&entry.Timestamp)
	if err != nil {
		return "", fmt.Errorf("insert activity entry: %w", err)
	}
	entry.ID = id
	return id, nil
}

// List devuelve entradas filtradas, más recientes primero, hasta limit.
// El filtro de acción es parcial e insensible a mayúsculas.
func (r *ActivityRepo) List(filter repository.ActivityFilter, limit int) ([]*entity.ActivityEntry, error) {
	var (
		conds []string
		args  []any
	)
	add := func(cond string, arg any) {
		args = append(args, arg)
		conds = append(conds, fmt.Sprintf(cond, len(args)))
	}
	if filter.Module != "" {
		add("module = $%d", filter.Module)
	}
	if filter.Action != "" {
		add("action ILIKE $%d", "%"+filter.Action+"%")
	}
	if filter.Actor != "" {
		add("actor = $%d", filter.Actor)
	}
	if filter.From != nil {
		add("timestamp >= $%d", *filter.From)
	}
	if filter.To != nil {
		add("timestamp < $%d", *filter.To)
	}

	query := `SELECT id, actor, action, module, details, timestamp FROM activity_log`
	if len(conds) > 0 {
		query += " WHERE " + strings.Join(conds, " AND ")
	}
	args = append(args, limit)
	query += fmt.Sprintf(" ORDER BY timestamp DESC LIMIT $%d", len(args))

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list activity entries: %w", err)
	}
	defer rows.Close()

	var list []*entity.ActivityEntry
	for rows.Next() {
		var (
			e   entity.ActivityEntry
			raw []byte
		)
		if err := rows.Scan(&e.ID, &e.Actor, &e.Action, &e.Module, &raw, &e.Timestamp); err != nil {
			return nil, fmt.Errorf("scan activity entry: %w", err)
		}
		if len(raw) > 0 {
			if err := json.Unmarshal(raw, &e.Details); err != nil {
				return nil, fmt.Errorf("unmarshal activity details: %w", err)
			}
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}
