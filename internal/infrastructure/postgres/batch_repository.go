package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

var _ repository.BatchRepository = (*BatchRepo)(nil)

const batchColumns = `id, tenant_id, item_name, quantity, price, cost, expiry_date, created_at, updated_at`

// fifoOrder orden de consumo: vence primero, sin vencimiento al final, luego el más antiguo.
const fifoOrder = `expiry_date ASC NULLS LAST, created_at ASC, id ASC`

// BatchRepo implementación de BatchRepository sobre PostgreSQL (usable con pool o tx).
type BatchRepo struct {
	q Querier
}

// NewBatchRepository construye el adaptador de lotes. Pasar pool o tx (Querier).
func NewBatchRepository(q Querier) *BatchRepo {
	return &BatchRepo{q: q}
}

// Create inserta un lote.
func (r *BatchRepo) Create(ctx context.Context, b *entity.InventoryBatch) error {
	query := `
		INSERT INTO inventory_batches (` + batchColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)`
	_, err := r.q.Exec(ctx, query,
		b.ID, b.TenantID, b.ItemName, b.Quantity, b.Price, b.Cost, b.ExpiryDate, b.CreatedAt, b.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("create batch %s: %w", b.ID, domain.ErrDuplicate)
		}
		return fmt.Errorf("create batch: %w", err)
	}
	return nil
}

// Update guarda cantidad, precio, costo y vencimiento del lote.
func (r *BatchRepo) Update(ctx context.Context, b *entity.InventoryBatch) error {
	query := `
		UPDATE inventory_batches
		SET quantity = $2, price = $3, cost = $4, expiry_date = $5, updated_at = now()
		WHERE id = $1`
	tag, err := r.q.Exec(ctx, query, b.ID, b.Quantity, b.Price, b.Cost, b.ExpiryDate)
	if err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("update batch %s: %w", b.ID, domain.ErrInvalidInput)
		}
		return fmt.Errorf("update batch: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("batch %s: %w", b.ID, domain.ErrNotFound)
	}
	return nil
}

// ListByItemForUpdate lotes del producto en orden FIFO, bloqueados hasta el fin de la tx.
func (r *BatchRepo) ListByItemForUpdate(ctx context.Context, tenantID, itemName string) ([]*entity.InventoryBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM inventory_batches
		WHERE tenant_id = $1 AND lower(item_name) = lower($2)
		ORDER BY ` + fifoOrder + `
		FOR UPDATE`
	rows, err := r.q.Query(ctx, query, tenantID, itemName)
	if err != nil {
		return nil, fmt.Errorf("list batches for update: %w", err)
	}
	return scanBatches(rows)
}

// ListByTenant todos los lotes del tenant por producto y luego FIFO.
func (r *BatchRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.InventoryBatch, error) {
	query := `
		SELECT ` + batchColumns + `
		FROM inventory_batches
		WHERE tenant_id = $1
		ORDER BY item_name ASC, ` + fifoOrder
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list batches: %w", err)
	}
	return scanBatches(rows)
}

func scanBatches(rows pgx.Rows) ([]*entity.InventoryBatch, error) {
	defer rows.Close()
	var list []*entity.InventoryBatch
	for rows.Next() {
		var b entity.InventoryBatch
		if err := rows.Scan(
			&b.ID, &b.TenantID, &b.ItemName, &b.Quantity, &b.Price, &b.Cost, &b.ExpiryDate, &b.CreatedAt, &b.UpdatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan batch: %w", err)
		}
		list = append(list, &b)
	}
	return list, rows.Err()
}
