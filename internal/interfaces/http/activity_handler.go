package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/bazaartech/inventory-ledger/internal/application/audit"
	"github.com/bazaartech/inventory-ledger/internal/application/dto"
)

// ActivityHandler consulta del registro de actividad (protegido, solo admin).
type ActivityHandler struct {
	uc *audit.ActivityLogUseCase
}

// NewActivityHandler construye el handler.
func NewActivityHandler(uc *audit.ActivityLogUseCase) *ActivityHandler {
	return &ActivityHandler{uc: uc}
}

// ListLogs godoc
// @Summary      Consultar el registro de actividad
// @Tags         logs
// @Security     Bearer
// @Produce      json
// @Param        module      query  string  false  "inventory | auth | catalog"
// @Param        action      query  string  false  "Coincidencia parcial, ej: stock"
// @Param        user        query  string  false  "UUID del actor"
// @Param        timeframe   query  string  false  "today | week | month"
// @Param        start_date  query  string  false  "Desde (YYYY-MM-DD, inclusive)"
// @Param        end_date    query  string  false  "Hasta (YYYY-MM-DD, inclusive)"
// @Success      200  {object}  dto.ActivityListResponse
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      500  {object}  dto.ErrorResponse
// @Router       /api/logs [get]
func (h *ActivityHandler) ListLogs(c *fiber.Ctx) error {
	out, err := h.uc.Query(c.Context(), audit.QueryInput{
		Module:    c.Query("module"),
		Action:    c.Query("action"),
		Actor:     c.Query("user"),
		Timeframe: c.Query("timeframe"),
		From:      parseDateQuery(c, "start_date", false),
		To:        parseDateQuery(c, "end_date", true),
	})
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	}
	return c.JSON(out)
}
