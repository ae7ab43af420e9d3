package dto

import (
	"time"

	"github.com/tu-usuario/bazar-api/internal/domain/entity"
)

// StockInRequest body para POST /api/stores/:storeId/stock-in.
// ManagerID y VendorID son la atribución opcional de la entrada.
type StockInRequest struct {
	ProductID int64  `json:"product_id"`
	Quantity  int64  `json:"quantity"`
	ManagerID *int64 `json:"manager_id,omitempty"`
	VendorID  *int64 `json:"vendor_id,omitempty"`
}

// WithdrawRequest body para POST /api/stores/:storeId/sell y /remove-stock.
type WithdrawRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int64 `json:"quantity"`
}

// StockResponse stock actual de un producto en una tienda.
type StockResponse struct {
	StoreID   int64     `json:"store_id"`
	ProductID int64     `json:"product_id"`
	Quantity  int64     `json:"quantity"`
	UpdatedAt time.Time `json:"updated_at"`
}

// StockListResponse listado de stock de una tienda.
type StockListResponse struct {
	Items []StockResponse `json:"items"`
	Page  PageResponse    `json:"page"`
}

// ToStockResponse mapea la entidad al DTO.
func ToStockResponse(s *entity.Stock) *StockResponse {
	return &StockResponse{
		StoreID:   s.StoreID,
		ProductID: s.ProductID,
		Quantity:  s.Quantity,
		UpdatedAt: s.UpdatedAt,
	}
}
