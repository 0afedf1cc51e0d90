package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas salvo decimal).
var (
	ErrNotFound                = errors.New("recurso no encontrado")
	ErrInvalidInput            = errors.New("entrada inválida")
	ErrDuplicate               = errors.New("recurso duplicado")
	ErrInsufficientStock       = errors.New("stock insuficiente")
	ErrParseEmpty              = errors.New("no se reconoció ningún producto en el pedido")
	ErrDelegateUnavailable     = errors.New("servicio de IA no disponible")
	ErrNoOutstandingDue        = errors.New("el cliente no tiene saldo pendiente")
	ErrInvalidSettlementAmount = errors.New("monto de abono inválido")
	ErrLedgerInvariant         = errors.New("invariante de saldo violada")
)

// InsufficientStockError detalla el faltante de una línea.
// errors.Is(err, ErrInsufficientStock) devuelve true.
type InsufficientStockError struct {
	Item      string
	Requested decimal.Decimal
	Available decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("%s: %s (solicitado %s, disponible %s)",
		ErrInsufficientStock, e.Item, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }
