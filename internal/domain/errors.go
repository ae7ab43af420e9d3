package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrInvalidQuantity   = errors.New("la cantidad debe ser mayor que cero")
	ErrProductNotStocked = errors.New("el producto no tiene stock registrado en la tienda")
	ErrInsufficientStock = errors.New("stock insuficiente")
	ErrNegativeQuantity  = errors.New("el stock no puede quedar negativo")
)

// InsufficientStockError lleva la cantidad solicitada y la disponible para que el
// caller pueda mostrarlas o ajustar la orden.
type InsufficientStockError struct {
	Requested int64
	Available int64
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("stock insuficiente: solicitado %d, disponible %d", e.Requested, e.Available)
}

// Is permite el despacho con errors.Is contra el sentinel ErrInsufficientStock.
func (e *InsufficientStockError) Is(target error) bool {
	return target == ErrInsufficientStock
}
