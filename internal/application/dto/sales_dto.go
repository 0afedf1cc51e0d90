package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// SalesReportDTO respuesta de GET /api/sales/today, /month y /date/:date.
type SalesReportDTO struct {
	Period       string          `json:"period"` // ej: "2026-10-17" u "October 2026"
	From         time.Time       `json:"from"`
	To           time.Time       `json:"to"`
	TotalRevenue decimal.Decimal `json:"total_revenue"`
	TotalCost    decimal.Decimal `json:"total_cost"`
	GrossMargin  decimal.Decimal `json:"gross_margin"`
	CashRevenue  decimal.Decimal `json:"cash_revenue"`
	CreditIssued decimal.Decimal `json:"credit_issued"` // ventas a fiado del período
	Collected    decimal.Decimal `json:"collected"`     // abonos parciales recibidos
	OrderCount   int             `json:"order_count"`
	ItemsSold    []ItemSoldDTO   `json:"items_sold"`
	Orders       []SaleOrderDTO  `json:"orders"`
	Daily        []DailyTotalDTO `json:"daily,omitempty"` // solo en el reporte mensual
}

// DailyTotalDTO totales de un día del mes.
type DailyTotalDTO struct {
	Date     string          `json:"date"`
	Revenue  decimal.Decimal `json:"revenue"`
	Quantity decimal.Decimal `json:"quantity"`
	Orders   int             `json:"orders"`
}

// ItemSoldDTO acumulado por producto, mayor ingreso primero.
type ItemSoldDTO struct {
	ItemName     string          `json:"item_name"`
	QuantitySold decimal.Decimal `json:"quantity_sold"`
	Revenue      decimal.Decimal `json:"revenue"`
	MarginPct    decimal.Decimal `json:"margin_pct"` // (revenue - cost) / revenue * 100
}

// SaleOrderDTO líneas de un mismo pedido (mismo transaction_id).
type SaleOrderDTO struct {
	TransactionID string          `json:"transaction_id"`
	CustomerName  string          `json:"customer_name"`
	PaymentMode   string          `json:"payment_mode"`
	Total         decimal.Decimal `json:"total"`
	CreatedAt     time.Time       `json:"created_at"`
	Lines         []SaleLineDTO   `json:"lines"`
}

// SaleLineDTO una línea de venta.
type SaleLineDTO struct {
	ItemName   string          `json:"item_name"`
	Quantity   decimal.Decimal `json:"quantity"`
	TotalPrice decimal.Decimal `json:"total_price"`
	IsSettled  bool            `json:"is_settled"`
}
