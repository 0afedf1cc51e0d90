package repository

import (
	"context"

	"github.com/jhoicas/Kirana-api/internal/domain/entity"
)

// BatchRepository define el puerto de persistencia para lotes de inventario.
type BatchRepository interface {
	Create(ctx context.Context, batch *entity.InventoryBatch) error
	Update(ctx context.Context, batch *entity.InventoryBatch) error
	// ListByItemForUpdate devuelve los lotes del producto en orden FIFO (vencimiento ascendente,
	// sin vencimiento al final) y los bloquea hasta el fin de la transacción (SELECT FOR UPDATE).
	ListByItemForUpdate(ctx context.Context, tenantID, itemName string) ([]*entity.InventoryBatch, error)
	// ListByTenant devuelve todos los lotes del tenant ordenados por producto y luego FIFO.
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.InventoryBatch, error)
}
