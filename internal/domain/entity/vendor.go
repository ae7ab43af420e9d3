package entity

import "time"

// Vendor representa un proveedor; contraparte opcional en entradas de stock.
type Vendor struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
