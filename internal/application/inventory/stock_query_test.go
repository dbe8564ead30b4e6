package inventory_test

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	appinv "github.com/bazaartech/inventory-ledger/internal/application/inventory"
	"github.com/bazaartech/inventory-ledger/internal/domain"
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	dominv "github.com/bazaartech/inventory-ledger/internal/domain/inventory"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
)

func threshold(v int64) *int64 { return &v }

type queryFixture struct {
	uc     *appinv.StockQueryUseCase
	ledger *fakeLedger
	pos    *fakePositions
}

func newQueryFixture(t *testing.T, products map[string]*entity.Product) *queryFixture {
	t.Helper()
	ledger := &fakeLedger{}
	pos := newFakePositions()
	stores := &fakeStores{byID: map[string]*entity.Store{storeID: {ID: storeID}}}
	uc := appinv.NewStockQueryUseCase(ledger, pos, &fakeProducts{byID: products}, stores, 20)
	return &queryFixture{uc: uc, ledger: ledger, pos: pos}
}

func (f *queryFixture) append(t *testing.T, movType string, qty int64) {
	t.Helper()
	_, err := f.ledger.Append(&entity.Movement{
		ProductID: productID, StoreID: storeID, Type: movType, Quantity: qty,
	})
	require.NoError(t, err)
}

// La posición se recalcula plegando el libro, no leyendo la cache.
func TestGetPosition_PliegaElLibro(t *testing.T) {
	f := newQueryFixture(t, map[string]*entity.Product{productID: {ID: productID}})
	f.append(t, entity.MovementTypeIN, 50)
	f.append(t, entity.MovementTypeOUT, 35)

	out, err := f.uc.GetPosition(context.Background(), productID, storeID)
	require.NoError(t, err)
	assert.Equal(t, int64(15), out.OnHand)
	assert.Equal(t, dominv.StatusLowStock, out.Status, "15 <= umbral 20 es stock bajo")
}

func TestGetPosition_HistoriaVacia_CeroYAgotado(t *testing.T) {
	f := newQueryFixture(t, map[string]*entity.Product{productID: {ID: productID}})

	out, err := f.uc.GetPosition(context.Background(), productID, storeID)
	require.NoError(t, err)
	assert.Equal(t, int64(0), out.OnHand)
	assert.Equal(t, dominv.StatusOutOfStock, out.Status)
}

// El umbral propio del producto tiene prioridad sobre el global.
func TestGetPosition_UmbralPorProducto(t *testing.T) {
	f := newQueryFixture(t, map[string]*entity.Product{
		productID: {ID: productID, LowStockThreshold: threshold(10)},
	})
	f.append(t, entity.MovementTypeIN, 15)

	out, err := f.uc.GetPosition(context.Background(), productID, storeID)
	require.NoError(t, err)
	assert.Equal(t, dominv.StatusInStock, out.Status, "15 > umbral propio 10, aunque el global sea 20")
}

func TestGetPosition_ProductoInexistente(t *testing.T) {
	f := newQueryFixture(t, map[string]*entity.Product{})
	_, err := f.uc.GetPosition(context.Background(), "nope", storeID)
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Una tienda desconocida es un error, no una posición en cero.
func TestGetPosition_TiendaInexistente(t *testing.T) {
	f := newQueryFixture(t, map[string]*entity.Product{productID: {ID: productID}})
	f.append(t, entity.MovementTypeIN, 50)

	_, err := f.uc.GetPosition(context.Background(), productID, "nope")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

// Un pliegue negativo nunca es un estado de negocio: es corrupción del libro.
func TestGetPosition_PliegueNegativo_ErrorDeIntegridad(t *testing.T) {
	f := newQueryFixture(t, map[string]*entity.Product{productID: {ID: productID}})
	f.append(t, entity.MovementTypeOUT, 5) // insertado por fuera del servicio

	_, err := f.uc.GetPosition(context.Background(), productID, storeID)
	require.ErrorIs(t, err, domain.ErrLedgerIntegrity)
}

// El filtro por estado usa la misma regla de clasificación que la vista.
func TestListStocks_FiltraPorEstadoTrasClasificar(t *testing.T) {
	f := newQueryFixture(t, map[string]*entity.Product{})
	f.pos.views = []*repository.StockPositionView{
		{ProductID: "p-1", SKU: "SKU001", OnHand: 0},
		{ProductID: "p-2", SKU: "SKU002", OnHand: 5},
		{ProductID: "p-3", SKU: "SKU003", OnHand: 100},
		{ProductID: "p-4", SKU: "SKU004", OnHand: 40, LowStockThreshold: threshold(50)},
	}

	low, err := f.uc.ListStocks(context.Background(), repository.StockFilter{Status: "low_stock"})
	require.NoError(t, err)
	require.Len(t, low, 2)
	assert.Equal(t, "SKU002", low[0].SKU)
	assert.Equal(t, "SKU004", low[1].SKU, "el umbral propio del producto manda")

	// El formato canónico también se acepta.
	out, err := f.uc.ListStocks(context.Background(), repository.StockFilter{Status: dominv.StatusOutOfStock})
	require.NoError(t, err)
	require.Len(t, out, 1)
	assert.Equal(t, "SKU001", out[0].SKU)
}

// El resumen agrega con la misma clasificación por ítem.
func TestGetSummary_ConsistenteConLaVista(t *testing.T) {
	f := newQueryFixture(t, map[string]*entity.Product{})
	f.pos.views = []*repository.StockPositionView{
		{ProductID: "p-1", OnHand: 0},
		{ProductID: "p-2", OnHand: 5},
		{ProductID: "p-3", OnHand: 100},
	}

	s, err := f.uc.GetSummary(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 3, s.TotalItems)
	assert.Equal(t, int64(105), s.TotalQuantity)
	assert.Equal(t, 1, s.LowStockCount)
	assert.Equal(t, 1, s.OutOfStockCount)
}

// VerifyLedger reporta cache desincronizada y disponibles negativos.
func TestVerifyLedger_DetectaDiscrepancias(t *testing.T) {
	f := newQueryFixture(t, map[string]*entity.Product{})
	f.append(t, entity.MovementTypeIN, 10)

	// Cache manipulada: dice 7 cuando el libro proyecta 10.
	require.NoError(t, f.pos.Upsert(&entity.StockPosition{
		ProductID: productID, StoreID: storeID, OnHand: 7,
	}))
	// Posición negativa sin movimientos que la respalden.
	require.NoError(t, f.pos.Upsert(&entity.StockPosition{
		ProductID: "p-corrupto", StoreID: storeID, OnHand: -4,
	}))

	out, err := f.uc.VerifyLedger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, out.PositionsChecked)
	require.Len(t, out.Mismatches, 2)
	require.Len(t, out.NegativeOnHand, 1)
	assert.Equal(t, "p-corrupto", out.NegativeOnHand[0].ProductID)
}

// Sin posiciones cacheadas, la verificación pasa limpia.
func TestVerifyLedger_SinPosiciones(t *testing.T) {
	f := newQueryFixture(t, map[string]*entity.Product{})
	out, err := f.uc.VerifyLedger(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, out.PositionsChecked)
	assert.Empty(t, out.Mismatches)
	assert.Empty(t, out.NegativeOnHand)
}
