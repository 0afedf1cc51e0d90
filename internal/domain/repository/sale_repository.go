package repository

import (
	"context"
	"time"

	"github.com/jhoicas/Kirana-api/internal/domain/entity"
)

// SaleRepository define el puerto de persistencia para líneas de venta (solo inserción,
// más la marca de liquidado).
type SaleRepository interface {
	Create(ctx context.Context, sale *entity.Sale) error
	// MarkSettled marca como liquidadas todas las ventas a crédito pendientes del cliente.
	MarkSettled(ctx context.Context, tenantID, customerName string) (int64, error)
	ListByPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*entity.Sale, error)
	ListByCustomer(ctx context.Context, tenantID, customerName string, limit int) ([]*entity.Sale, error)
}
