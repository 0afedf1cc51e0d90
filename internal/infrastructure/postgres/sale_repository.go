package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

var _ repository.SaleRepository = (*SaleRepo)(nil)

const saleColumns = `id, tenant_id, transaction_id, item_name, quantity, total_price, total_cost,
	customer_name, payment_mode, is_settled, created_at`

// SaleRepo implementación de SaleRepository sobre PostgreSQL.
type SaleRepo struct {
	q Querier
}

// NewSaleRepository construye el adaptador de ventas. Pasar pool o tx (Querier).
func NewSaleRepository(q Querier) *SaleRepo {
	return &SaleRepo{q: q}
}

// Create inserta una línea de venta (o un abono).
func (r *SaleRepo) Create(ctx context.Context, s *entity.Sale) error {
	query := `
		INSERT INTO sales (` + saleColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11)`
	_, err := r.q.Exec(ctx, query,
		s.ID, s.TenantID, s.TransactionID, s.ItemName, s.Quantity, s.TotalPrice, s.TotalCost,
		s.CustomerName, string(s.PaymentMode), s.IsSettled, s.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create sale: %w", err)
	}
	return nil
}

// MarkSettled marca como liquidadas las ventas a crédito pendientes del cliente.
func (r *SaleRepo) MarkSettled(ctx context.Context, tenantID, customerName string) (int64, error) {
	query := `
		UPDATE sales SET is_settled = true
		WHERE tenant_id = $1 AND lower(customer_name) = lower($2)
		  AND payment_mode = $3 AND is_settled = false`
	tag, err := r.q.Exec(ctx, query, tenantID, customerName, string(entity.PaymentModeUdhaar))
	if err != nil {
		return 0, fmt.Errorf("mark settled: %w", err)
	}
	return tag.RowsAffected(), nil
}

// ListByPeriod ventas en [from, to) en orden cronológico.
func (r *SaleRepo) ListByPeriod(ctx context.Context, tenantID string, from, to time.Time) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE tenant_id = $1 AND created_at >= $2 AND created_at < $3
		ORDER BY created_at ASC, id ASC`
	rows, err := r.q.Query(ctx, query, tenantID, from, to)
	if err != nil {
		return nil, fmt.Errorf("list sales by period: %w", err)
	}
	return scanSales(rows)
}

// ListByCustomer ventas del cliente, más recientes primero. limit <= 0 no limita.
func (r *SaleRepo) ListByCustomer(ctx context.Context, tenantID, customerName string, limit int) ([]*entity.Sale, error) {
	query := `
		SELECT ` + saleColumns + `
		FROM sales
		WHERE tenant_id = $1 AND lower(customer_name) = lower($2)
		ORDER BY created_at DESC, id DESC`
	args := []any{tenantID, customerName}
	if limit > 0 {
		query += ` LIMIT $3`
		args = append(args, limit)
	}
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list sales by customer: %w", err)
	}
	return scanSales(rows)
}

func scanSales(rows pgx.Rows) ([]*entity.Sale, error) {
	defer rows.Close()
	var list []*entity.Sale
	for rows.Next() {
		var s entity.Sale
		var mode string
		if err := rows.Scan(
			&s.ID, &s.TenantID, &s.TransactionID, &s.ItemName, &s.Quantity, &s.TotalPrice, &s.TotalCost,
			&s.CustomerName, &mode, &s.IsSettled, &s.CreatedAt,
		); err != nil {
			return nil, fmt.Errorf("scan sale: %w", err)
		}
		s.PaymentMode = entity.PaymentMode(mode)
		list = append(list, &s)
	}
	return list, rows.Err()
}
