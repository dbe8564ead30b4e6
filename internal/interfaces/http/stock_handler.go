package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/bazaartech/inventory-ledger/internal/application/dto"
	"github.com/bazaartech/inventory-ledger/internal/application/inventory"
	"github.com/bazaartech/inventory-ledger/internal/application/report"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
)

// StockHandler vista de stocks del dashboard y exportación XLSX (protegido).
type StockHandler struct {
	query  *inventory.StockQueryUseCase
	report *report.StockReportUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(query *inventory.StockQueryUseCase, report *report.StockReportUseCase) *StockHandler {
	return &StockHandler{query: query, report: report}
}

// parseDateQuery lee un parámetro de fecha (YYYY-MM-DD). Si endOfDay es true
// devuelve las 23:59:59 de ese día para que el límite superior sea inclusivo.
// Las fechas mal formadas se ignoran.
func parseDateQuery(c *fiber.Ctx, name string, endOfDay bool) *time.Time {
	raw := c.Query(name)
	if raw == "" {
		return nil
	}
	t, err := time.ParseInLocation("2006-01-02", raw, time.Local)
	if err != nil {
		return nil
	}
	if endOfDay {
		t = t.Add(24*time.Hour - time.Second)
	}
	return &t
}

func stockFilterFromQuery(c *fiber.Ctx) repository.StockFilter {
	return repository.StockFilter{
		StoreID:    c.Query("store_id"),
		SupplierID: c.Query("supplier_id"),
		From:       parseDateQuery(c, "start_date", false),
		To:         parseDateQuery(c, "end_date", true),
		Search:     c.Query("search"),
		Status:     c.Query("status"),
		SortField:  c.Query("sort"),
		SortDesc:   c.Query("order") == "desc",
	}
}

// ListStocks godoc
// @Summary      Vista de stocks por producto y tienda
// @Tags         stocks
// @Security     Bearer
// @Produce      json
// @Param        store_id     query  string  false  "Filtrar por tienda"
// @Param        supplier_id  query  string  false  "Parejas con movimientos del proveedor"
// @Param        start_date   query  string  false  "Parejas con movimientos desde (YYYY-MM-DD)"
// @Param        end_date     query  string  false  "Parejas con movimientos hasta (YYYY-MM-DD)"
// @Param        search       query  string  false  "Busca en nombre, SKU y tienda"
// @Param        status       query  string  false  "out_of_stock | low_stock | in_stock"
// @Param        sort         query  string  false  "product_name | sku | store_name | quantity"
// @Param        order        query  string  false  "asc (por defecto) | desc"
// @Success      200  {object}  map[string]interface{}
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stocks [get]
func (h *StockHandler) ListStocks(c *fiber.Ctx) error {
	items, err := h.query.ListStocks(c.Context(), stockFilterFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(fiber.Map{
		"total": len(items),
		"items": items,
	})
}

// ExportStocks godoc
// @Summary      Exportar la vista de stocks a XLSX
// @Tags         stocks
// @Security     Bearer
// @Produce      application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param        store_id     query  string  false  "Filtrar por tienda"
// @Param        supplier_id  query  string  false  "Parejas con movimientos del proveedor"
// @Param        search       query  string  false  "Busca en nombre, SKU y tienda"
// @Param        status       query  string  false  "out_of_stock | low_stock | in_stock"
// @Success      200  {file}    binary
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/stocks/export [get]
func (h *StockHandler) ExportStocks(c *fiber.Ctx) error {
	data, err := h.report.GenerateXLSX(c.Context(), stockFilterFromQuery(c))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	filename := "stocks_" + time.Now().Format("20060102_150405") + ".xlsx"
	c.Set(fiber.HeaderContentType, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(data)
}
