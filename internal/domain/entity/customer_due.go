package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// CustomerDue saldo de fiado de un cliente con un tenant. Se crea con la primera venta
// a crédito y nunca se elimina; TotalDue nunca es negativo.
type CustomerDue struct {
	TenantID     string
	CustomerName string
	TotalDue     decimal.Decimal
	UpdatedAt    time.Time
}
