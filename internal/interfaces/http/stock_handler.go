package http

import (
	"context"
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/tu-usuario/bazar-api/internal/application/dto"
	"github.com/tu-usuario/bazar-api/internal/application/gateway"
	"github.com/tu-usuario/bazar-api/internal/application/ledger"
	"github.com/tu-usuario/bazar-api/internal/domain"
	"github.com/tu-usuario/bazar-api/internal/domain/entity"
)

// StockHandler maneja los comandos y lecturas de stock de una tienda.
type StockHandler struct {
	gateway *gateway.UseCase
	query   *ledger.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(gw *gateway.UseCase, query *ledger.QueryUseCase) *StockHandler {
	return &StockHandler{gateway: gw, query: query}
}

// StockIn godoc
// @Summary      Registrar entrada de stock
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Param        body  body  dto.StockInRequest  true  "product_id, quantity, manager_id/vendor_id opcionales"
// @Success      201  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/stock-in [post]
func (h *StockHandler) StockIn(c *fiber.Ctx) error {
	storeID, err := parseIDParam(c, "storeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "storeId inválido"})
	}
	var in dto.StockInRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stock, err := h.gateway.StockIn(c.Context(), ledger.StockInInput{
		StoreID:   storeID,
		ProductID: in.ProductID,
		Quantity:  in.Quantity,
		ManagerID: in.ManagerID,
		VendorID:  in.VendorID,
	})
	if err != nil {
		return writeLedgerError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(dto.ToStockResponse(stock))
}

// Sell godoc
// @Summary      Registrar venta
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Param        body  body  dto.WithdrawRequest  true  "product_id, quantity"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.InsufficientStockResponse
// @Router       /api/stores/{storeId}/sell [post]
func (h *StockHandler) Sell(c *fiber.Ctx) error {
	return h.withdraw(c, h.gateway.Sell)
}

// RemoveStock godoc
// @Summary      Registrar retiro de stock (merma, daño)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        storeId  path  int  true  "ID de la tienda"
// @Param        body  body  dto.WithdrawRequest  true  "product_id, quantity"
// @Success      200  {object}  dto.StockResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.InsufficientStockResponse
// @Router       /api/stores/{storeId}/remove-stock [post]
func (h *StockHandler) RemoveStock(c *fiber.Ctx) error {
	return h.withdraw(c, h.gateway.RemoveStock)
}

func (h *StockHandler) withdraw(c *fiber.Ctx, op func(ctx context.Context, storeID, productID, quantity int64) (*entity.Stock, error)) error {
	storeID, err := parseIDParam(c, "storeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "storeId inválido"})
	}
	var in dto.WithdrawRequest
	if err := c.BodyParser(&in); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
	}
	stock, err := op(c.Context(), storeID, in.ProductID, in.Quantity)
	if err != nil {
		return writeLedgerError(c, err)
	}
	return c.JSON(dto.ToStockResponse(stock))
}

// GetStock godoc
// @Summary      Stock actual de un producto en la tienda
// @Tags         stock
// @Produce      json
// @Param        storeId    path  int  true  "ID de la tienda"
// @Param        productId  path  int  true  "ID del producto"
// @Success      200  {object}  dto.StockResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stores/{storeId}/stock/{productId} [get]
func (h *StockHandler) GetStock(c *fiber.Ctx) error {
	storeID, err := parseIDParam(c, "storeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "storeId inválido"})
	}
	productID, err := parseIDParam(c, "productId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "productId inválido"})
	}
	stock, err := h.query.GetStock(c.Context(), storeID, productID)
	if err != nil {
		return writeLedgerError(c, err)
	}
	if stock == nil {
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: "sin registro de stock para esa pareja tienda/producto"})
	}
	return c.JSON(dto.ToStockResponse(stock))
}

// ListStock godoc
// @Summary      Stock de toda la tienda
// @Tags         stock
// @Produce      json
// @Param        storeId  path   int  true   "ID de la tienda"
// @Param        limit    query  int  false  "Límite"  default(20)
// @Param        offset   query  int  false  "Offset"  default(0)
// @Success      200  {object}  dto.StockListResponse
// @Router       /api/stores/{storeId}/stock [get]
func (h *StockHandler) ListStock(c *fiber.Ctx) error {
	storeID, err := parseIDParam(c, "storeId")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_ID", Message: "storeId inválido"})
	}
	limit, offset := pageParams(c)
	list, err := h.query.ListStock(c.Context(), storeID, limit, offset)
	if err != nil {
		return writeLedgerError(c, err)
	}
	items := make([]dto.StockResponse, 0, len(list))
	for _, s := range list {
		items = append(items, *dto.ToStockResponse(s))
	}
	return c.JSON(dto.StockListResponse{Items: items, Page: dto.PageResponse{Limit: limit, Offset: offset}})
}

// writeLedgerError mapea la taxonomía de errores del ledger a HTTP:
// cantidad inválida 400, referencias/stock inexistente 404, stock insuficiente
// 409 (con solicitado y disponible), invariante interna 500, resto 503.
func writeLedgerError(c *fiber.Ctx, err error) error {
	var insufficient *domain.InsufficientStockError
	switch {
	case errors.As(err, &insufficient):
		return c.Status(fiber.StatusConflict).JSON(dto.InsufficientStockResponse{
			Code:      "INSUFFICIENT_STOCK",
			Message:   insufficient.Error(),
			Requested: insufficient.Requested,
			Available: insufficient.Available,
		})
	case errors.Is(err, domain.ErrInvalidQuantity), errors.Is(err, domain.ErrInvalidInput):
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: err.Error()})
	case errors.Is(err, domain.ErrProductNotStocked):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_STOCKED", Message: err.Error()})
	case errors.Is(err, domain.ErrNotFound):
		return c.Status(fiber.StatusNotFound).JSON(dto.ErrorResponse{Code: "NOT_FOUND", Message: err.Error()})
	case errors.Is(err, domain.ErrNegativeQuantity):
		// inalcanzable si la validación del ledger es correcta
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: err.Error()})
	default:
		return c.Status(fiber.StatusServiceUnavailable).JSON(dto.ErrorResponse{Code: "STORAGE", Message: "almacenamiento no disponible"})
	}
}
