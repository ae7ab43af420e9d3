package http

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bazar-api/internal/application/dto"
	"github.com/tu-usuario/bazar-api/internal/application/ledger"
	"github.com/tu-usuario/bazar-api/internal/domain/repository"
	"github.com/tu-usuario/bazar-api/pkg/logger"
)

// MovementHandler maneja la consulta del historial de movimientos y la
// eliminación administrativa. La eliminación va directo al repositorio: es una
// override fuera del contrato del ledger y queda trazada como tal.
type MovementHandler struct {
	query   *ledger.QueryUseCase
	movRepo repository.StockMovementRepository
	log     *logger.Logger
}

// NewMovementHandler construye el handler.
func NewMovementHandler(query *ledger.QueryUseCase, movRepo repository.StockMovementRepository, log *logger.Logger) *MovementHandler {
	return &MovementHandler{query: query, movRepo: movRepo, log: log}
}

// List godoc
// @Summary      Historial de movimientos de una tienda
// @Description  Orden: timestamp ascendente, desempate por ID. Filtros opcionales
//               por producto y rango de fechas (RFC 3339).
// @Tags         movements
// @Produce      json
// @Param        storeId     path   int     true   "ID de la tienda"
// @Param        product_id  query  int     false  "Filtrar por producto"
// @Param        start_date  query  string  false  "Desde (RFC 3339)"
// @Param        end_date    query  string  false  "Hasta (RFC 3339)"
// @Success      200  {object}  dto.MovementListResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/stock-movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	storeID, err := parseIDParam(c, "storeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "storeId inválido"})
	}
	var productID *int64
	if v := c.QueryInt("product_id", 0); v > 0 {
		id := int64(v)
		productID = &id
	}
	from, err := parseTimeQuery(c, "start_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "start_date inválida (RFC 3339)"})
	}
	to, err := parseTimeQuery(c, "end_date")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "end_date inválida (RFC 3339)"})
	}
	limit, offset := pageParams(c)

	list, err := h.query.ListMovements(c.Context(), storeID, productID, from, to, limit, offset)
	if err != nil {
		return writeLedgerError(c, err)
	}
	items := make([]dto.MovementResponse, 0, len(list))
	for _, m := range list {
		items = append(items, *dto.ToMovementResponse(m))
	}
	return c.JSON(dto.MovementListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}})
}

// GetByID godoc
// @Summary      Obtener un movimiento
// @Tags         movements
// @Produce      json
// @Param        storeId     path  int  true  "ID de la tienda"
// @Param        movementId  path  int  true  "ID del movimiento"
// @Success      200  {object}  dto.MovementResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/stock-movements/{movementId} [get]
func (h *MovementHandler) GetByID(c *fiber.Ctx) error {
	storeID, err := parseIDParam(c, "storeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "storeId inválido"})
	}
	movementID, err := parseIDParam(c, "movementId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "movementId inválido"})
	}
	mov, err := h.query.GetMovement(c.Context(), storeID, movementID)
	if err != nil {
		return writeLedgerError(c, err)
	}
	return c.JSON(dto.ToMovementResponse(mov))
}

// Delete godoc
// @Summary      Eliminar un movimiento (override administrativa)
// @Description  Rompe la derivabilidad del historial; tras usarla, la cantidad
//               actual ya no es la suma de los movimientos.
// @Tags         movements
// @Param        storeId     path  int  true  "ID de la tienda"
// @Param        movementId  path  int  true  "ID del movimiento"
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/stock-movements/{movementId} [delete]
func (h *MovementHandler) Delete(c *fiber.Ctx) error {
	storeID, err := parseIDParam(c, "storeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "storeId inválido"})
	}
	movementID, err := parseIDParam(c, "movementId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "movementId inválido"})
	}
	// verifica pertenencia a la tienda antes de borrar
	if _, err := h.query.GetMovement(c.Context(), storeID, movementID); err != nil {
		return writeLedgerError(c, err)
	}
	if err := h.movRepo.Delete(c.Context(), movementID); err != nil {
		return writeLedgerError(c, err)
	}
	h.log.Warn().
		Int64("store_id", storeID).
		Int64("movement_id", movementID).
		Msg("movimiento eliminado por override administrativa")
	return c.SendStatus(fiber.StatusNoContent)
}

// parseTimeQuery lee un parámetro de query como RFC 3339; nil si está vacío.
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
