package http_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/bazaartech/inventory-ledger/internal/application/audit"
	"github.com/bazaartech/inventory-ledger/internal/application/dto"
	appinv "github.com/bazaartech/inventory-ledger/internal/application/inventory"
	"github.com/bazaartech/inventory-ledger/internal/application/report"
	"github.com/bazaartech/inventory-ledger/internal/application/usecase"
	"github.com/bazaartech/inventory-ledger/internal/domain/entity"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
	apphttp "github.com/bazaartech/inventory-ledger/internal/interfaces/http"
	"github.com/bazaartech/inventory-ledger/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Fakes de repositorios para probar los handlers sin base de datos
// ──────────────────────────────────────────────────────────────────────────────

type stubStores struct{ byID map[string]*entity.Store }

func (s *stubStores) Create(*entity.Store) error { return nil }
func (s *stubStores) GetByID(id string) (*entity.Store, error) {
	return s.byID[id], nil
}
func (s *stubStores) Update(*entity.Store) error { return nil }
func (s *stubStores) List(int, int) ([]*entity.Store, error) { return nil, nil }

type stubProducts struct{ byID map[string]*entity.Product }

func (s *stubProducts) Create(*entity.Product) error { return nil }
func (s *stubProducts) GetByID(id string) (*entity.Product, error) {
	return s.byID[id], nil
}
func (s *stubProducts) GetBySKU(string) (*entity.Product, error) { return nil, nil }
func (s *stubProducts) Update(*entity.Product) error { return nil }
func (s *stubProducts) List(int, int) ([]*entity.Product, error) { return nil, nil }

type stubMovements struct{}

func (s *stubMovements) Append(*entity.Movement) (string, error) { return "", nil }
func (s *stubMovements) GetByIdempotencyKey(string) (*entity.Movement, error) { return nil, nil }
func (s *stubMovements) ListByKey(string, string) ([]*entity.Movement, error) { return nil, nil }
func (s *stubMovements) List(repository.MovementFilter, int, int) ([]*entity.Movement, error) {
	return nil, nil
}
func (s *stubMovements) SumByKey(string, string) (int64, error) { return 0, nil }

// stubPositions captura el filtro recibido en ListView para verificar qué
// llega desde la querystring.
type stubPositions struct {
	lastFilter repository.StockFilter
}

func (s *stubPositions) Get(productID, storeID string) (*entity.StockPosition, error) {
	return &entity.StockPosition{ProductID: productID, StoreID: storeID}, nil
}
func (s *stubPositions) GetForUpdate(productID, storeID string) (*entity.StockPosition, error) {
	return s.Get(productID, storeID)
}
func (s *stubPositions) Upsert(*entity.StockPosition) error { return nil }
func (s *stubPositions) ListAll() ([]*entity.StockPosition, error) { return nil, nil }
func (s *stubPositions) ListView(filter repository.StockFilter) ([]*repository.StockPositionView, error) {
	s.lastFilter = filter
	return nil, nil
}

// stubActivity captura el filtro recibido en List.
type stubActivity struct {
	lastFilter repository.ActivityFilter
}

func (s *stubActivity) Append(*entity.ActivityEntry) (string, error) { return "", nil }
func (s *stubActivity) List(filter repository.ActivityFilter, limit int) ([]*entity.ActivityEntry, error) {
	s.lastFilter = filter
	return nil, nil
}

type noopRecorder struct{}

func (noopRecorder) Record(ctx context.Context, actor, action, module string, details entity.ActivityDetails) {
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "test", Level: "error"})
}

func decodeError(t *testing.T, resp *http.Response) dto.ErrorResponse {
	t.Helper()
	var out dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	return out
}

// ──────────────────────────────────────────────────────────────────────────────
// Catálogo: entidad inexistente responde 404, nunca 200 con cuerpo null
// ──────────────────────────────────────────────────────────────────────────────

func buildStoreApp(stores *stubStores) *fiber.App {
	app := fiber.New()
	h := apphttp.NewStoreHandler(usecase.NewStoreUseCase(stores, noopRecorder{}))
	app.Get("/stores/:id", h.GetByID)
	app.Put("/stores/:id", h.Update)
	return app
}

func TestStoreGetByID_Inexistente_404(t *testing.T) {
	app := buildStoreApp(&stubStores{byID: map[string]*entity.Store{}})

	req := httptest.NewRequest(http.MethodGet, "/stores/no-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestStoreUpdate_Inexistente_404(t *testing.T) {
	app := buildStoreApp(&stubStores{byID: map[string]*entity.Store{}})

	req := httptest.NewRequest(http.MethodPut, "/stores/no-existe", strings.NewReader(`{"name":"Nueva"}`))
	req.Header.Set(fiber.HeaderContentType, fiber.MIMEApplicationJSON)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestStoreGetByID_Existente_200(t *testing.T) {
	app := buildStoreApp(&stubStores{byID: map[string]*entity.Store{
		"s-1": {ID: "s-1", Name: "Central"},
	}})

	req := httptest.NewRequest(http.MethodGet, "/stores/s-1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
	var out dto.StoreResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&out))
	assert.Equal(t, "Central", out.Name)
}

// ──────────────────────────────────────────────────────────────────────────────
// Vista de stocks: rango de fechas de movimientos por querystring
// ──────────────────────────────────────────────────────────────────────────────

func buildStockApp(pos *stubPositions, stores *stubStores, products *stubProducts) *fiber.App {
	app := fiber.New()
	query := appinv.NewStockQueryUseCase(&stubMovements{}, pos, products, stores, 20)
	h := apphttp.NewStockHandler(query, report.NewStockReportUseCase(query))
	app.Get("/stocks", h.ListStocks)
	return app
}

func TestListStocks_RangoDeFechas_LlegaAlRepositorio(t *testing.T) {
	pos := &stubPositions{}
	app := buildStockApp(pos, &stubStores{}, &stubProducts{})

	req := httptest.NewRequest(http.MethodGet, "/stocks?start_date=2026-01-02&end_date=2026-01-03", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	require.NotNil(t, pos.lastFilter.From)
	require.NotNil(t, pos.lastFilter.To)
	assert.Equal(t, time.Date(2026, 1, 2, 0, 0, 0, 0, time.Local), *pos.lastFilter.From)
	// El límite superior cubre el día completo.
	assert.Equal(t, time.Date(2026, 1, 3, 23, 59, 59, 0, time.Local), *pos.lastFilter.To)
}

func TestListStocks_FechaMalFormada_SeIgnora(t *testing.T) {
	pos := &stubPositions{}
	app := buildStockApp(pos, &stubStores{}, &stubProducts{})

	req := httptest.NewRequest(http.MethodGet, "/stocks?start_date=hoy&end_date=03-01-2026", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Nil(t, pos.lastFilter.From)
	assert.Nil(t, pos.lastFilter.To)
}

// ──────────────────────────────────────────────────────────────────────────────
// Posición de stock: producto o tienda desconocidos responden 404
// ──────────────────────────────────────────────────────────────────────────────

func buildInventoryApp(stores *stubStores, products *stubProducts) *fiber.App {
	app := fiber.New()
	query := appinv.NewStockQueryUseCase(&stubMovements{}, &stubPositions{}, products, stores, 20)
	h := apphttp.NewInventoryHandler(nil, query, testLogger())
	app.Get("/inventory/stock-position", h.GetStockPosition)
	return app
}

func TestGetStockPosition_TiendaDesconocida_404(t *testing.T) {
	app := buildInventoryApp(
		&stubStores{},
		&stubProducts{byID: map[string]*entity.Product{"p-1": {ID: "p-1"}}},
	)

	req := httptest.NewRequest(http.MethodGet, "/inventory/stock-position?product_id=p-1&store_id=no-existe", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
	assert.Equal(t, "NOT_FOUND", decodeError(t, resp).Code)
}

func TestGetStockPosition_ParejaConocida_200(t *testing.T) {
	app := buildInventoryApp(
		&stubStores{byID: map[string]*entity.Store{"s-1": {ID: "s-1"}}},
		&stubProducts{byID: map[string]*entity.Product{"p-1": {ID: "p-1"}}},
	)

	req := httptest.NewRequest(http.MethodGet, "/inventory/stock-position?product_id=p-1&store_id=s-1", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	assert.Equal(t, http.StatusOK, resp.StatusCode)
}

// ──────────────────────────────────────────────────────────────────────────────
// Registro de actividad: rango de fechas por querystring
// ──────────────────────────────────────────────────────────────────────────────

func TestListLogs_RangoDeFechas_LlegaAlRepositorio(t *testing.T) {
	repo := &stubActivity{}
	app := fiber.New()
	h := apphttp.NewActivityHandler(audit.NewActivityLogUseCase(repo, testLogger()))
	app.Get("/logs", h.ListLogs)

	req := httptest.NewRequest(http.MethodGet, "/logs?action=stock&start_date=2026-08-01&end_date=2026-08-31", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	assert.Equal(t, "stock", repo.lastFilter.Action)
	require.NotNil(t, repo.lastFilter.From)
	require.NotNil(t, repo.lastFilter.To)
	assert.Equal(t, time.Date(2026, 8, 1, 0, 0, 0, 0, time.Local), *repo.lastFilter.From)
	assert.Equal(t, time.Date(2026, 8, 31, 23, 59, 59, 0, time.Local), *repo.lastFilter.To)
}
