package inventory

import (
	"context"

	"github.com/bazaartech/inventory-ledger/internal/application/dto"
	"github.com/bazaartech/inventory-ledger/internal/domain"
	domInv "github.com/bazaartech/inventory-ledger/internal/domain/inventory"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
)

// StockQueryUseCase consultas derivadas del libro: posición por pareja, vista de
// stocks del dashboard, resumen agregado y verificación libro-vs-cache.
// Solo lecturas; puede correr concurrente con envíos (snapshot del pool).
type StockQueryUseCase struct {
	movementRepo repository.MovementRepository
	positionRepo repository.StockPositionRepository
	productRepo  repository.ProductRepository
	storeRepo    repository.StoreRepository
	// defaultThreshold umbral global de stock bajo; los productos pueden
	// definir el suyo propio.
	defaultThreshold int64
}

// NewStockQueryUseCase construye el caso de uso de consultas.
func NewStockQueryUseCase(
	movementRepo repository.MovementRepository,
	positionRepo repository.StockPositionRepository,
	productRepo repository.ProductRepository,
	storeRepo repository.StoreRepository,
	defaultThreshold int64,
) *StockQueryUseCase {
	if defaultThreshold <= 0 {
		defaultThreshold = domInv.DefaultLowStockThreshold
	}
	return &StockQueryUseCase{
		movementRepo:     movementRepo,
		positionRepo:     positionRepo,
		productRepo:      productRepo,
		storeRepo:        storeRepo,
		defaultThreshold: defaultThreshold,
	}
}

func (uc *StockQueryUseCase) threshold(override *int64) int64 {
	if override != nil {
		return *override
	}
	return uc.defaultThreshold
}

// GetPosition recalcula el disponible de una pareja plegando el libro completo
// (no la cache) y lo clasifica. El producto y la tienda deben existir; con
// historia vacía la pareja vale 0 / OUT_OF_STOCK.
// Un resultado negativo es una violación de integridad del libro, no un estado
// de negocio válido.
func (uc *StockQueryUseCase) GetPosition(ctx context.Context, productID, storeID string) (*dto.StockPositionResponse, error) {
	product, err := uc.productRepo.GetByID(productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, domain.ErrNotFound
	}
	store, err := uc.storeRepo.GetByID(storeID)
	if err != nil {
		return nil, err
	}
	if store == nil {
		return nil, domain.ErrNotFound
	}

	onHand, err := uc.movementRepo.SumByKey(productID, storeID)
	if err != nil {
		return nil, err
	}
	if onHand < 0 {
		return nil, domain.ErrLedgerIntegrity
	}

	return &dto.StockPositionResponse{
		ProductID: productID,
		StoreID:   storeID,
		OnHand:    onHand,
		Status:    domInv.Classify(onHand, uc.threshold(product.LowStockThreshold)),
	}, nil
}

// GetSummary agrega todas las posiciones conocidas con la misma regla de
// clasificación por ítem (Summarize reusa Classify: una sola lógica).
func (uc *StockQueryUseCase) GetSummary(ctx context.Context) (*dto.StockSummaryResponse, error) {
	views, err := uc.positionRepo.ListView(repository.StockFilter{})
	if err != nil {
		return nil, err
	}
	positions := make([]domInv.Position, 0, len(views))
	for _, v := range views {
		positions = append(positions, domInv.Position{
			OnHand:    v.OnHand,
			Threshold: uc.threshold(v.LowStockThreshold),
		})
	}
	s := domInv.Summarize(positions)
	return &dto.StockSummaryResponse{
		TotalItems:      s.TotalItems,
		TotalQuantity:   s.TotalQuantity,
		LowStockCount:   s.LowStockCount,
		OutOfStockCount: s.OutOfStockCount,
	}, nil
}

// ListStocks devuelve la vista de stocks del dashboard: posiciones con datos de
// catálogo, clasificadas y filtradas. El filtro por status se aplica después de
// clasificar para que use exactamente la misma regla que el resto del sistema.
func (uc *StockQueryUseCase) ListStocks(ctx context.Context, filter repository.StockFilter) ([]dto.StockItemResponse, error) {
	statusFilter := filter.Status
	filter.Status = "" // el repo no clasifica; el filtro por estado se hace aquí
	views, err := uc.positionRepo.ListView(filter)
	if err != nil {
		return nil, err
	}
	items := make([]dto.StockItemResponse, 0, len(views))
	for _, v := range views {
		status := domInv.Classify(v.OnHand, uc.threshold(v.LowStockThreshold))
		if statusFilter != "" && !statusMatches(statusFilter, status) {
			continue
		}
		items = append(items, dto.StockItemResponse{
			ProductID:   v.ProductID,
			ProductName: v.ProductName,
			SKU:         v.SKU,
			StoreID:     v.StoreID,
			StoreName:   v.StoreName,
			Location:    v.Location,
			Quantity:    v.OnHand,
			Status:      status,
		})
	}
	return items, nil
}

// statusMatches acepta tanto el formato querystring del dashboard
// (out_of_stock) como el estado canónico (OUT_OF_STOCK).
func statusMatches(filter, status string) bool {
	switch filter {
	case "out_of_stock", domInv.StatusOutOfStock:
		return status == domInv.StatusOutOfStock
	case "low_stock", domInv.StatusLowStock:
		return status == domInv.StatusLowStock
	case "in_stock", domInv.StatusInStock:
		return status == domInv.StatusInStock
	}
	return false
}

// ListMovements consulta el libro con filtros, más recientes primero.
func (uc *StockQueryUseCase) ListMovements(ctx context.Context, filter repository.MovementFilter, page dto.PageRequest) (*dto.MovementListResponse, error) {
	page.DefaultPage()
	movements, err := uc.movementRepo.List(filter, page.Limit, page.Offset)
	if err != nil {
		return nil, err
	}
	items := make([]dto.MovementResponse, 0, len(movements))
	for _, m := range movements {
		items = append(items, dto.MovementResponse{
			ID:           m.ID,
			ProductID:    m.ProductID,
			StoreID:      m.StoreID,
			SupplierID:   m.SupplierID,
			MovementType: m.Type,
			Quantity:     m.Quantity,
			Timestamp:    m.Timestamp,
			Actor:        m.Actor,
		})
	}
	return &dto.MovementListResponse{
		Items: items,
		Page:  dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(items)},
	}, nil
}

// VerifyLedger recorre todas las posiciones cacheadas y las contrasta contra el
// pliegue del libro. Cualquier discrepancia o disponible negativo se reporta
// para investigación del operador; nunca se corrige en silencio.
func (uc *StockQueryUseCase) VerifyLedger(ctx context.Context) (*dto.VerifyLedgerResponse, error) {
	positions, err := uc.positionRepo.ListAll()
	if err != nil {
		return nil, err
	}
	out := &dto.VerifyLedgerResponse{
		PositionsChecked: len(positions),
		Mismatches:       []dto.VerifyMismatch{},
		NegativeOnHand:   []dto.VerifyMismatch{},
	}
	for _, p := range positions {
		projected, err := uc.movementRepo.SumByKey(p.ProductID, p.StoreID)
		if err != nil {
			return nil, err
		}
		m := dto.VerifyMismatch{
			ProductID: p.ProductID,
			StoreID:   p.StoreID,
			Cached:    p.OnHand,
			Projected: projected,
		}
		if projected != p.OnHand {
			out.Mismatches = append(out.Mismatches, m)
		}
		if projected < 0 || p.OnHand < 0 {
			out.NegativeOnHand = append(out.NegativeOnHand, m)
		}
	}
	return out, nil
}
