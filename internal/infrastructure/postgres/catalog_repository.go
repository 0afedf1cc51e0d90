package postgres

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

var _ repository.CatalogRepository = (*CatalogRepo)(nil)

// CatalogRepo precios propios de cada tenant.
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador del catálogo. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

// ListByTenant entradas del tenant ordenadas por nombre.
func (r *CatalogRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.CatalogEntry, error) {
	query := `
		SELECT tenant_id, item_name, price, cost, updated_at
		FROM catalog_entries
		WHERE tenant_id = $1
		ORDER BY item_name ASC`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list catalog: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogEntry
	for rows.Next() {
		var e entity.CatalogEntry
		if err := rows.Scan(&e.TenantID, &e.ItemName, &e.Price, &e.Cost, &e.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog entry: %w", err)
		}
		list = append(list, &e)
	}
	return list, rows.Err()
}

// Get entrada del producto sin distinguir mayúsculas; nil, nil si no existe.
func (r *CatalogRepo) Get(ctx context.Context, tenantID, itemName string) (*entity.CatalogEntry, error) {
	query := `
		SELECT tenant_id, item_name, price, cost, updated_at
		FROM catalog_entries
		WHERE tenant_id = $1 AND lower(item_name) = lower($2)`
	var e entity.CatalogEntry
	err := r.q.QueryRow(ctx, query, tenantID, itemName).Scan(&e.TenantID, &e.ItemName, &e.Price, &e.Cost, &e.UpdatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog entry: %w", err)
	}
	return &e, nil
}

// Upsert crea o actualiza precio y costo. Un costo nil conserva el costo guardado.
func (r *CatalogRepo) Upsert(ctx context.Context, e *entity.CatalogEntry) error {
	if strings.TrimSpace(e.ItemName) == "" {
		return fmt.Errorf("catalog entry sin nombre: %w", domain.ErrInvalidInput)
	}
	query := `
		INSERT INTO catalog_entries (tenant_id, item_name, price, cost, updated_at)
		VALUES ($1, $2, $3, $4, now())
		ON CONFLICT (tenant_id, lower(item_name))
		DO UPDATE SET price = EXCLUDED.price,
		              cost = COALESCE(EXCLUDED.cost, catalog_entries.cost),
		              updated_at = now()`
	if _, err := r.q.Exec(ctx, query, e.TenantID, e.ItemName, e.Price, e.Cost); err != nil {
		return fmt.Errorf("upsert catalog entry: %w", err)
	}
	return nil
}
