package http

import (
	"errors"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/bazaartech/inventory-ledger/internal/application/dto"
	"github.com/bazaartech/inventory-ledger/internal/application/inventory"
	"github.com/bazaartech/inventory-ledger/internal/domain"
	"github.com/bazaartech/inventory-ledger/internal/domain/repository"
	"github.com/bazaartech/inventory-ledger/pkg/logger"
)

// InventoryHandler maneja las peticiones HTTP de movimientos y consultas del
// libro de inventario (protegido).
type InventoryHandler struct {
	submit *inventory.SubmitMovementUseCase
	query  *inventory.StockQueryUseCase
	log    *logger.Logger
}

// NewInventoryHandler construye el handler.
func NewInventoryHandler(submit *inventory.SubmitMovementUseCase, query *inventory.StockQueryUseCase, log *logger.Logger) *InventoryHandler {
	return &InventoryHandler{submit: submit, query: query, log: log}
}

// SubmitMovement godoc
// @Summary      Registrar movimiento de inventario (IN, OUT, REM)
// @Tags         inventory
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.SubmitMovementRequest  true  "product_id, store_id, movement_type, quantity; supplier_id solo para IN; idempotency_key opcional"
// @Success      201   {object}  dto.SubmitMovementResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [post]
func (h *InventoryHandler) SubmitMovement(c *fiber.Ctx) error {
	actor := GetUserID(c)
	if actor == "" {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.ErrorResponse{Code: "UNAUTHORIZED", Message: "token inválido"})
	}
	var in dto.SubmitMovementRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	recordID, err := h.submit.Submit(c.Context(), actor, in)
	if err != nil {
		var ve *domain.ValidationError
		switch {
		case errors.As(err, &ve):
			return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: ve.Reason, Field: ve.Field})
		case errors.Is(err, domain.ErrInsufficientStock):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "INSUFFICIENT_STOCK", Message: "stock insuficiente"})
		case errors.Is(err, domain.ErrConcurrencyConflict):
			return c.Status(fiber.StatusConflict).JSON(dto.ErrorResponse{Code: "CONFLICT", Message: "conflicto concurrente, reintente la operación"})
		case errors.Is(err, domain.ErrLedgerIntegrity):
			return h.integrityError(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.Status(fiber.StatusCreated).JSON(dto.SubmitMovementResponse{RecordID: recordID})
}

// ListMovements godoc
// @Summary      Listar movimientos del libro
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id   query  string  false  "Filtrar por producto"
// @Param        store_id     query  string  false  "Filtrar por tienda"
// @Param        supplier_id  query  string  false  "Filtrar por proveedor"
// @Param        type         query  string  false  "IN | OUT | REM"
// @Param        from         query  string  false  "RFC3339, inclusive"
// @Param        to           query  string  false  "RFC3339, exclusivo"
// @Param        limit        query  int     false  "Por defecto 20, máx 100"
// @Param        offset       query  int     false  "Por defecto 0"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/inventory/movements [get]
func (h *InventoryHandler) ListMovements(c *fiber.Ctx) error {
	filter := repository.MovementFilter{
		ProductID:  c.Query("product_id"),
		StoreID:    c.Query("store_id"),
		SupplierID: c.Query("supplier_id"),
		Type:       c.Query("type"),
	}
	var err error
	if filter.From, err = parseTimeQuery(c, "from"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "from debe ser RFC3339", Field: "from"})
	}
	if filter.To, err = parseTimeQuery(c, "to"); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "to debe ser RFC3339", Field: "to"})
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "paginación inválida"})
	}
	out, err := h.query.ListMovements(c.Context(), filter, page)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetStockPosition godoc
// @Summary      Posición de stock de una pareja (producto, tienda)
// @Description  Recalcula el disponible plegando el libro completo y lo clasifica.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Param        product_id  query  string  true  "UUID del producto"
// @Param        store_id    query  string  true  "UUID de la tienda"
// @Success      200  {object}  dto.StockPositionResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-position [get]
func (h *InventoryHandler) GetStockPosition(c *fiber.Ctx) error {
	productID := c.Query("product_id")
	storeID := c.Query("store_id")
	if productID == "" || storeID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "product_id y store_id son requeridos"})
	}
	out, err := h.query.GetPosition(c.Context(), productID, storeID)
	if err != nil {
		switch {
		case errors.Is(err, domain.ErrNotFound):
			return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "producto o tienda no encontrados"})
		case errors.Is(err, domain.ErrLedgerIntegrity):
			return h.integrityError(c, err)
		}
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// GetStockSummary godoc
// @Summary      Resumen agregado de stock
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.StockSummaryResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/stock-summary [get]
func (h *InventoryHandler) GetStockSummary(c *fiber.Ctx) error {
	out, err := h.query.GetSummary(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// VerifyLedger godoc
// @Summary      Verificar proyección cacheada contra el libro
// @Description  Compara cada posición cacheada con el pliegue del libro y reporta discrepancias.
// @Tags         inventory
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.VerifyLedgerResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/inventory/verify [get]
func (h *InventoryHandler) VerifyLedger(c *fiber.Ctx) error {
	out, err := h.query.VerifyLedger(c.Context())
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}

// integrityError responde 500 con una referencia de incidente; el detalle queda
// solo en el log interno, nunca en la respuesta.
func (h *InventoryHandler) integrityError(c *fiber.Ctx, err error) error {
	incidentID := uuid.New().String()
	h.log.Error().Err(err).Str("incident_id", incidentID).Msg("violación de integridad del libro")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{
		Code:       "LEDGER_INTEGRITY",
		Message:    "inconsistencia interna de inventario, contacte al administrador",
		IncidentID: incidentID,
	})
}

func parseTimeQuery(c *fiber.Ctx, name string) (*time.Time, error) {
	raw := c.Query(name)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, err
	}
	return &t, nil
}
