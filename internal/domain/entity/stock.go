package entity

import "time"

// Stock representa la cantidad actual de un producto en una tienda.
// Clave compuesta (StoreID, ProductID). La fila se crea con la primera entrada y
// nunca se elimina en operación normal: cantidad 0 sigue siendo "con registro",
// distinguible de un producto que jamás tuvo stock.
type Stock struct {
	StoreID   int64
	ProductID int64
	Quantity  int64
	UpdatedAt time.Time
}
