package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CatalogEntry precio de un producto para un tenant. Sobrescribe la entrada del catálogo
// por defecto con el mismo nombre, salvo que su precio sea cero.
type CatalogEntry struct {
	TenantID  string
	ItemName  string
	Price     decimal.Decimal
	Cost      *decimal.Decimal
	UpdatedAt time.Time
}
