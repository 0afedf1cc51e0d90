package dto

import "github.com/shopspring/decimal"

// ChatRequest body para POST /api/orders/chat y /api/orders/parse.
type ChatRequest struct {
	Message string `json:"message" validate:"required,max=1000"`
}

// OrderLineDTO línea interpretada de un pedido.
type OrderLineDTO struct {
	Item      string          `json:"item"`
	Quantity  decimal.Decimal `json:"qty"`
	UnitPrice decimal.Decimal `json:"price"`
	LineTotal decimal.Decimal `json:"line_total"`
}

// ParseResponse respuesta de POST /api/orders/parse (sin mover stock).
type ParseResponse struct {
	Success        bool           `json:"success"`
	Lines          []OrderLineDTO `json:"lines"`
	PaymentMode    string         `json:"payment_mode"`
	CustomerName   string         `json:"customer_name"`
	Source         string         `json:"source"`          // local | fallback | none
	FallbackStatus string         `json:"fallback_status"` // matched | empty | unavailable | skipped
	Normalized     string         `json:"normalized"`
	RuleVersion    string         `json:"rule_version"`
}

// SoldLineDTO línea despachada.
type SoldLineDTO struct {
	Item       string          `json:"item"`
	Quantity   decimal.Decimal `json:"qty"`
	UnitPrice  decimal.Decimal `json:"price"`
	TotalPrice decimal.Decimal `json:"total"`
	TotalCost  decimal.Decimal `json:"cost"`
}

// FailedLineDTO línea no despachada.
type FailedLineDTO struct {
	Item      string          `json:"item"`
	Requested decimal.Decimal `json:"requested"`
	Available decimal.Decimal `json:"available"`
	Reason    string          `json:"reason"`
}

// ChatResponse respuesta de POST /api/orders/chat.
type ChatResponse struct {
	Success       bool            `json:"success"`
	Message       string          `json:"message"`
	Warning       string          `json:"warning,omitempty"`
	TransactionID string          `json:"transaction_id,omitempty"`
	PaymentMode   string          `json:"payment_mode,omitempty"`
	CustomerName  string          `json:"customer_name,omitempty"`
	Sold          []SoldLineDTO   `json:"sold"`
	Failed        []FailedLineDTO `json:"failed"`
	TotalRevenue  decimal.Decimal `json:"total_revenue"`
	TotalCost     decimal.Decimal `json:"total_cost"`
	Source        string          `json:"source,omitempty"`
}
