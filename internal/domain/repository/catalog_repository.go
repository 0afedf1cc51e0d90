package repository

import (
	"context"

	"github.com/jhoicas/Kirana-api/internal/domain/entity"
)

// CatalogRepository precios propios de cada tenant.
type CatalogRepository interface {
	ListByTenant(ctx context.Context, tenantID string) ([]*entity.CatalogEntry, error)
	// Get búsqueda sin distinguir mayúsculas. Devuelve nil, nil si no existe.
	Get(ctx context.Context, tenantID, itemName string) (*entity.CatalogEntry, error)
	Upsert(ctx context.Context, entry *entity.CatalogEntry) error
}
