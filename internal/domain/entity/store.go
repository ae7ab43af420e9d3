package entity

import "time"

// Store representa una tienda de la cadena.
type Store struct {
	ID        int64
	Name      string
	Location  string
	CreatedAt time.Time
	UpdatedAt time.Time
}
