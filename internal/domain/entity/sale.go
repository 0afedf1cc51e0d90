package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentMode modo de pago de una venta.
type PaymentMode string

// Modos de pago.
const (
	PaymentModeCash   PaymentMode = "Cash"
	PaymentModeUdhaar PaymentMode = "Udhaar" // fiado / crédito de tienda
)

const (
	// WalkInCustomer cliente por defecto cuando el pedido no nombra a nadie.
	WalkInCustomer = "Walk-in"
	// PaymentMarkerItem nombre reservado para las filas sintéticas de abono parcial.
	PaymentMarkerItem = "PAYMENT"
)

// Sale línea de venta inmutable; solo IsSettled cambia al liquidar el fiado.
// Todas las líneas de un mismo pedido comparten TransactionID.
type Sale struct {
	ID            string
	TenantID      string
	TransactionID string
	ItemName      string
	Quantity      decimal.Decimal
	TotalPrice    decimal.Decimal // negativo en filas de abono
	TotalCost     decimal.Decimal // suma de los costos por lote consumido
	CustomerName  string
	PaymentMode   PaymentMode
	IsSettled     bool
	CreatedAt     time.Time
}

// IsPayment indica si la fila es un abono sintético y no una venta de producto.
func (s *Sale) IsPayment() bool {
	return s.ItemName == PaymentMarkerItem
}
