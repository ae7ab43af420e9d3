package dto

import (
	"time"

	"github.com/tu-usuario/bazar-api/internal/domain/entity"
)

// MovementResponse un movimiento del historial.
type MovementResponse struct {
	ID             int64     `json:"id"`
	StoreID        int64     `json:"store_id"`
	ProductID      int64     `json:"product_id"`
	QuantityChange int64     `json:"quantity_change"`
	Type           string    `json:"movement_type"`
	Timestamp      time.Time `json:"timestamp"`
	ManagerID      *int64    `json:"manager_id,omitempty"`
	VendorID       *int64    `json:"vendor_id,omitempty"`
}

// MovementListResponse listado de movimientos de una tienda.
type MovementListResponse struct {
	Items []MovementResponse `json:"items"`
	Page  PageResponse       `json:"page"`
}

// ToMovementResponse mapea la entidad al DTO.
func ToMovementResponse(m *entity.StockMovement) *MovementResponse {
	return &MovementResponse{
		ID:             m.ID,
		StoreID:        m.StoreID,
		ProductID:      m.ProductID,
		QuantityChange: m.QuantityChange,
		Type:           m.Type,
		Timestamp:      m.Timestamp,
		ManagerID:      m.ManagerID,
		VendorID:       m.VendorID,
	}
}
