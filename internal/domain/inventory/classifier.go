package inventory

// Estados de stock derivados de la cantidad disponible.
const (
	StatusOutOfStock = "OUT_OF_STOCK"
	StatusLowStock   = "LOW_STOCK"
	StatusInStock    = "IN_STOCK"
)

// DefaultLowStockThreshold umbral global por defecto; configurable vía
// INVENTORY_LOW_STOCK_THRESHOLD y sobreescribible por producto.
const DefaultLowStockThreshold int64 = 20

// Classify deriva el estado de stock a partir del disponible y un umbral.
// Reglas en orden de prioridad:
//  1. disponible == 0           -> OUT_OF_STOCK (sin importar el umbral, incluso umbral 0)
//  2. 0 < disponible <= umbral  -> LOW_STOCK
//  3. disponible > umbral       -> IN_STOCK
func Classify(onHand, threshold int64) string {
	switch {
	case onHand == 0:
		return StatusOutOfStock
	case onHand <= threshold:
		return StatusLowStock
	default:
		return StatusInStock
	}
}

// Summary agrega las posiciones conocidas: total de parejas (producto, tienda),
// unidades totales y conteos de stock bajo y agotado.
type Summary struct {
	TotalItems      int   `json:"total_items"`
	TotalQuantity   int64 `json:"total_quantity"`
	LowStockCount   int   `json:"low_stock_count"`
	OutOfStockCount int   `json:"out_of_stock_count"`
}

// Position cantidad disponible de una pareja junto a su umbral efectivo.
type Position struct {
	OnHand    int64
	Threshold int64
}

// Summarize es el map-reduce sobre todas las posiciones usando Classify, de modo
// que los conteos agregados siempre coinciden con la clasificación por ítem.
func Summarize(positions []Position) Summary {
	var s Summary
	s.TotalItems = len(positions)
	for _, p := range positions {
		s.TotalQuantity += p.OnHand
		switch Classify(p.OnHand, p.Threshold) {
		case StatusLowStock:
			s.LowStockCount++
		case StatusOutOfStock:
			s.OutOfStockCount++
		}
	}
	return s
}
