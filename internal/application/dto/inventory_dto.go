package dto

import "time"

// SubmitMovementRequest body para POST /api/inventory/movements.
type SubmitMovementRequest struct {
	ProductID      string `json:"product_id"`
	StoreID        string `json:"store_id"`
	SupplierID     string `json:"supplier_id,omitempty"` // solo se toma en cuenta en IN
	MovementType   string `json:"movement_type"`
	Quantity       int64  `json:"quantity"`
	IdempotencyKey string `json:"idempotency_key,omitempty"`
}

// SubmitMovementResponse respuesta del registro de un movimiento.
type SubmitMovementResponse struct {
	RecordID string `json:"record_id"`
}

// MovementResponse un movimiento del libro tal como se expone por la API.
type MovementResponse struct {
	ID           string    `json:"id"`
	ProductID    string    `json:"product_id"`
	StoreID      string    `json:"store_id"`
	SupplierID   string    `json:"supplier_id,omitempty"`
	MovementType string    `json:"movement_type"`
	Quantity     int64     `json:"quantity"`
	Timestamp    time.Time `json:"timestamp"`
	Actor        string    `json:"actor,omitempty"`
}

// MovementListResponse listado paginado de movimientos.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// StockPositionResponse respuesta de GET /api/inventory/stock-position.
type StockPositionResponse struct {
	ProductID string `json:"product_id"`
	StoreID   string `json:"store_id"`
	OnHand    int64  `json:"on_hand"`
	Status    string `json:"status"`
}

// StockSummaryResponse respuesta de GET /api/inventory/stock-summary.
type StockSummaryResponse struct {
	TotalItems      int   `json:"total_items"`
	TotalQuantity   int64 `json:"total_quantity"`
	LowStockCount   int   `json:"low_stock_count"`
	OutOfStockCount int   `json:"out_of_stock_count"`
}

// StockItemResponse una fila de la vista de stocks del dashboard.
type StockItemResponse struct {
	ProductID   string `json:"product_id"`
	ProductName string `json:"product_name"`
	SKU         string `json:"sku"`
	StoreID     string `json:"store_id"`
	StoreName   string `json:"store_name"`
	Location    string `json:"location"`
	Quantity    int64  `json:"quantity"`
	Status      string `json:"status"`
}

// VerifyMismatch discrepancia entre la posición cacheada y el pliegue del libro.
type VerifyMismatch struct {
	ProductID string `json:"product_id"`
	StoreID   string `json:"store_id"`
	Cached    int64  `json:"cached"`
	Projected int64  `json:"projected"`
}

// VerifyLedgerResponse respuesta de GET /api/inventory/verify.
type VerifyLedgerResponse struct {
	PositionsChecked int              `json:"positions_checked"`
	Mismatches       []VerifyMismatch `json:"mismatches"`
	NegativeOnHand   []VerifyMismatch `json:"negative_on_hand"`
}
