package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo maestro. El precio es informativo:
// el ledger no toma decisiones de precio.
type Product struct {
	ID          int64
	Name        string
	Category    string
	Price       decimal.Decimal
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}
