package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
)

var _ repository.StockPositionRepository = (*StockPositionRepo)(nil)

// StockPositionRepo implementación de StockPositionRepository sobre PostgreSQL
// (usable con pool o tx).
type StockPositionRepo struct {
	q Querier
}

// NewStockPositionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockPositionRepository(q Querier) *StockPositionRepo {
	return &StockPositionRepo{q: q}
}

// Get obtiene la posición cacheada de un producto en una tienda.
// Si no existe aún, devuelve una posición en cero (historia vacía).
func (r *StockPositionRepo) Get(productID, storeID string) (*entity.StockPosition, error) {
	query := `
		SELECT product_id, store_id, on_hand, updated_at
		FROM stock_positions WHERE product_id = $1 AND store_id = $2`
	var p entity.StockPosition
	err := r.q.QueryRow(context.Background(), query, productID, storeID).Scan(
		&p.ProductID, &p.StoreID, &p.OnHand, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return &entity.StockPosition{ProductID: productID, StoreID: storeID}, nil
		}
		return nil, fmt.Errorf("get stock position: %w", err)
	}
	return &p, nil
}

// GetForUpdate obtiene la posición y bloquea la fila (SELECT FOR UPDATE) para
// serializar los envíos concurrentes sobre la misma pareja. Parejas distintas
// bloquean filas distintas y no se estorban.
func (r *StockPositionRepo) GetForUpdate(productID, storeID string) (*entity.StockPosition, error) {
	query := `
		SELECT product_id, store_id, on_hand, updated_at
		FROM stock_positions WHERE product_id = $1 AND store_id = $2
		FOR UPDATE`
	var p entity.StockPosition
	err := r.q.QueryRow(context.Background(), query, productID, storeID).Scan(
		&p.ProductID, &p.StoreID, &p.OnHand, &p.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			// Primera vez que la pareja aparece: crear la fila en cero dentro
			// de la misma tx y bloquearla, para que el siguiente concurrente espere.
			if err := r.insertZero(productID, storeID); err != nil {
				return nil, err
			}
			return r.GetForUpdate(productID, storeID)
		}
		return nil, fmt.Errorf("get stock position for update: %w", err)
	}
	return &p, nil
}

func (r *StockPositionRepo) insertZero(productID, storeID string) error {
	query := `
		INSERT INTO stock_positions (product_id, store_id, on_hand, updated_at)
		VALUES ($1, $2, 0, now())
		ON CONFLICT (product_id, store_id) DO NOTHING`
	if _, err := r.q.Exec(context.Background(), query, productID, storeID); err != nil {
		return fmt.Errorf("init stock position: %w", err)
	}
	return nil
}

// Upsert inserta o actualiza la posición cacheada (por producto y tienda).
func (r *StockPositionRepo) Upsert(position *entity.StockPosition) error {
	query := `
		INSERT INTO stock_positions (product_id, store_id, on_hand, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (product_id, store_id)
		DO UPDATE SET on_hand = EXCLUDED.on_hand, updated_at = now()`
	_, err := r.q.Exec(context.Background(), query, position.ProductID, position.StoreID, position.OnHand)
	if err != nil {
		return fmt.Errorf("upsert stock position: %w", err)
	}
	return nil
}

// ListAll devuelve todas las posiciones conocidas.
func (r *StockPositionRepo) ListAll() ([]*entity.StockPosition, error) {
	query := `
		SELECT product_id, store_id, on_hand, updated_at
		FROM stock_positions
		ORDER BY product_id, store_id`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list stock positions: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockPosition
	for rows.Next() {
		var p entity.StockPosition
		if err := rows.Scan(&p.ProductID, &p.StoreID, &p.OnHand, &p.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan stock position: %w", err)
		}
		list = append(list, &p)
	}
	return list, rows.Err()
}

// ListView posiciones con datos de catálogo para la vista de stocks.
// La clasificación por estado no se hace aquí: es regla de dominio.
func (r *StockPositionRepo) ListView(filter repository.StockFilter) ([]*repository.StockPositionView, error) {
	query := `
		SELECT sp.product_id, p.name, p.sku, sp.store_id, s.name, s.location,
		       sp.on_hand, p.low_stock_threshold
		FROM stock_positions sp
		JOIN products p ON p.id = sp.product_id
		JOIN stores s ON s.id = sp.store_id
		WHERE 1=1`
	var args []any
	pos := 1
	if filter.StoreID != "" {
		query += fmt.Sprintf(" AND sp.store_id = $%d", pos)
		args = append(args, filter.StoreID)
		pos++
	}
	if filter.SupplierID != "" {
		// Parejas que tienen al menos un movimiento de ese proveedor.
		query += fmt.Sprintf(` AND EXISTS (
			SELECT 1 FROM movements m
			WHERE m.product_id = sp.product_id AND m.store_id = sp.store_id AND m.supplier_id = $%d)`, pos)
		args = append(args, filter.SupplierID)
		pos++
	}
	if filter.From != nil || filter.To != nil {
		// Parejas con al menos un movimiento dentro del rango de fechas.
		cond := ` AND EXISTS (
			SELECT 1 FROM movements m
			WHERE m.product_id = sp.product_id AND m.store_id = sp.store_id`
		if filter.From != nil {
			cond += fmt.Sprintf(" AND m.timestamp >= $%d", pos)
			args = append(args, *filter.From)
			pos++
		}
		if filter.To != nil {
			cond += fmt.Sprintf(" AND m.timestamp <= $%d", pos)
			args = append(args, *filter.To)
			pos++
		}
		query += cond + ")"
	}
	if filter.Search != "" {
		query += fmt.Sprintf(" AND (p.name ILIKE $%d OR p.sku ILIKE $%d OR s.name ILIKE $%d)", pos, pos, pos)
		args = append(args, "%"+filter.Search+"%")
		pos++
	}
	query += " ORDER BY " + sortColumn(filter.SortField)
	if filter.SortDesc {
		query += " DESC"
	} else {
		query += " ASC"
	}

	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock view: %w", err)
	}
	defer rows.Close()
	var list []*repository.StockPositionView
	for rows.Next() {
		var v repository.StockPositionView
		if err := rows.Scan(&v.ProductID, &v.ProductName, &v.SKU, &v.StoreID, &v.StoreName,
			&v.Location, &v.OnHand, &v.LowStockThreshold); err != nil {
			return nil, fmt.Errorf("scan stock view: %w", err)
		}
		list = append(list, &v)
	}
	return list, rows.Err()
}

// sortColumn mapea el nombre de campo del frontend a la columna SQL.
// Lista blanca: cualquier otro valor ordena por nombre de producto.
func sortColumn(field string) string {
	switch field {
	case "sku":
		return "p.sku"
	case "store_name":
		return "s.name"
	case "quantity":
		return "sp.on_hand"
	case "updated_at":
		return "sp.updated_at"
	default:
		return "p.name"
	}
}
