package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AddStockRequest body para POST /api/inventory/stock.
// Sin cost_price se usa el costo del catálogo o el 75 % del precio de venta.
type AddStockRequest struct {
	ItemName   string           `json:"item_name" validate:"required,max=100"`
	Quantity   decimal.Decimal  `json:"quantity" swaggertype:"number"`
	Price      *decimal.Decimal `json:"price,omitempty" swaggertype:"number"`
	CostPrice  *decimal.Decimal `json:"cost_price,omitempty" swaggertype:"number"`
	ExpiryDate string           `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"` // YYYY-MM-DD
}

// ReduceStockRequest body para POST /api/inventory/reduce (merma, consumo propio).
type ReduceStockRequest struct {
	ItemName string          `json:"item_name" validate:"required,max=100"`
	Quantity decimal.Decimal `json:"quantity" swaggertype:"number"`
}

// StockResponse resultado de una entrada de stock.
type StockResponse struct {
	ItemName   string          `json:"item_name"`
	BatchID    string          `json:"batch_id"`
	Merged     bool            `json:"merged"`   // se sumó a un lote con el mismo vencimiento
	NewItem    bool            `json:"new_item"` // primer ingreso del producto
	BatchQty   decimal.Decimal `json:"batch_quantity"`
	TotalStock decimal.Decimal `json:"total_stock"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"` // costo promedio ponderado del lote
}

// ReduceStockResponse resultado de una baja manual.
type ReduceStockResponse struct {
	ItemName  string          `json:"item_name"`
	Reduced   decimal.Decimal `json:"reduced"`
	Remaining decimal.Decimal `json:"remaining"`
	CostValue decimal.Decimal `json:"cost_value"` // costo de lo dado de baja
}

// BatchDTO lote de inventario.
type BatchDTO struct {
	ID         string          `json:"id"`
	Quantity   decimal.Decimal `json:"quantity"`
	Price      decimal.Decimal `json:"price"`
	Cost       decimal.Decimal `json:"cost"`
	ExpiryDate *string         `json:"expiry_date"` // null = no perecedero
	CreatedAt  time.Time       `json:"created_at"`
}

// InventoryItemDTO stock agregado de un producto.
type InventoryItemDTO struct {
	ItemName          string          `json:"item_name"`
	TotalQuantity     decimal.Decimal `json:"total_quantity"`
	Price             decimal.Decimal `json:"price"`
	AvgCost           decimal.Decimal `json:"avg_cost"`
	StockValue        decimal.Decimal `json:"stock_value"` // TotalQuantity * AvgCost
	NearestExpiry     *string         `json:"nearest_expiry"`
	LowStock          bool            `json:"low_stock"`
	SuggestedOrderQty decimal.Decimal `json:"suggested_order_qty"` // hasta 1.5x el umbral
	Batches           []BatchDTO      `json:"batches"`
}

// InventoryListResponse respuesta de GET /api/inventory.
type InventoryListResponse struct {
	Items         []InventoryItemDTO `json:"items"`
	TotalItems    int                `json:"total_items"`
	LowStockCount int                `json:"low_stock_count"`
	StockValue    decimal.Decimal    `json:"stock_value"`
}
