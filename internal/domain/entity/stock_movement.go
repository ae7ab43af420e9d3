package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementTypeStockIn = "STOCK_IN" // entrada de mercancía
	MovementTypeSale    = "SALE"     // venta
	MovementTypeRemoval = "REMOVAL"  // retiro (merma, daño)
)

// StockMovement representa un movimiento aceptado del ledger. Inmutable una vez
// escrito; el ID lo asigna el almacén de forma monótona.
// QuantityChange es positivo para entradas y negativo para ventas/retiros.
// ManagerID y VendorID solo aplican a entradas (atribución opcional).
type StockMovement struct {
	ID             int64
	StoreID        int64
	ProductID      int64
	QuantityChange int64
	Type           string
	Timestamp      time.Time
	ManagerID      *int64
	VendorID       *int64
}
