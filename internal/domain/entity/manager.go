package entity

import "time"

// Manager representa el encargado que autoriza una entrada de stock.
type Manager struct {
	ID        int64
	Name      string
	CreatedAt time.Time
}
