package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SettleRequest body para POST /api/dues/:customer/settle. Sin amount se liquida todo el saldo.
type SettleRequest struct {
	Amount *decimal.Decimal `json:"amount,omitempty" swaggertype:"number"`
}

// SettleResponse resultado de un abono.
type SettleResponse struct {
	CustomerName string          `json:"customer_name"`
	Kind         string          `json:"kind"` // full | partial
	Paid         decimal.Decimal `json:"paid"`
	PreviousDue  decimal.Decimal `json:"previous_due"`
	RemainingDue decimal.Decimal `json:"remaining_due"`
	SettledSales int64           `json:"settled_sales"`
	Message      string          `json:"message"`
}

// CustomerDueDTO saldo de un cliente.
type CustomerDueDTO struct {
	CustomerName string          `json:"customer_name"`
	TotalDue     decimal.Decimal `json:"total_due"`
	UpdatedAt    time.Time       `json:"updated_at"`
}

// DuesListResponse respuesta de GET /api/dues.
type DuesListResponse struct {
	Items      []CustomerDueDTO `json:"items"`
	TotalDue   decimal.Decimal  `json:"total_due"`
	Pagination PageResponse     `json:"pagination"`
}
