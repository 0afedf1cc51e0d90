package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryBatch representa un lote de un producto con su propio costo y vencimiento opcional.
// El stock visible de un producto es la suma de sus lotes; un lote agotado queda en cero
// (no se elimina) para conservar el historial de precio y costo.
type InventoryBatch struct {
	ID         string
	TenantID   string
	ItemName   string          // nombre canónico (Title Case)
	Quantity   decimal.Decimal // >= 0
	Price      decimal.Decimal // precio de venta unitario
	Cost       decimal.Decimal // costo unitario
	ExpiryDate *time.Time      // nil = no perecedero
	CreatedAt  time.Time
	UpdatedAt  time.Time
}

// SameExpiry indica si el lote vence el mismo día que expiry (nil solo coincide con nil).
func (b *InventoryBatch) SameExpiry(expiry *time.Time) bool {
	if b.ExpiryDate == nil || expiry == nil {
		return b.ExpiryDate == nil && expiry == nil
	}
	y1, m1, d1 := b.ExpiryDate.Date()
	y2, m2, d2 := expiry.Date()
	return y1 == y2 && m1 == m2 && d1 == d2
}
