package repository

import (
	"context"

	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// DueRepository define el puerto para el saldo de fiado por (tenant, cliente).
type DueRepository interface {
	// AddDue suma amount al saldo del cliente; crea la fila si no existe.
	AddDue(ctx context.Context, tenantID, customerName string, amount decimal.Decimal) error
	// Get devuelve nil, nil si el cliente no tiene fila.
	Get(ctx context.Context, tenantID, customerName string) (*entity.CustomerDue, error)
	// GetForUpdate bloquea la fila del cliente. Devuelve nil, nil si no existe.
	GetForUpdate(ctx context.Context, tenantID, customerName string) (*entity.CustomerDue, error)
	Update(ctx context.Context, due *entity.CustomerDue) error
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.CustomerDue, error)
}
