package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

var _ repository.DueRepository = (*DueRepo)(nil)

// DueRepo saldos de fiado sobre PostgreSQL. La fila es única por (tenant, lower(cliente)).
type DueRepo struct {
	q Querier
}

// NewDueRepository construye el adaptador de saldos. Pasar pool o tx (Querier).
func NewDueRepository(q Querier) *DueRepo {
	return &DueRepo{q: q}
}

// AddDue suma amount al saldo; el upsert es atómico y bloquea la fila hasta el fin de la tx.
func (r *DueRepo) AddDue(ctx context.Context, tenantID, customerName string, amount decimal.Decimal) error {
	query := `
		INSERT INTO customer_dues (tenant_id, customer_name, total_due, updated_at)
		VALUES ($1, $2, $3, now())
		ON CONFLICT (tenant_id, lower(customer_name))
		DO UPDATE SET total_due = customer_dues.total_due + EXCLUDED.total_due, updated_at = now()`
	if _, err := r.q.Exec(ctx, query, tenantID, customerName, amount); err != nil {
		if isCheckViolation(err) {
			return fmt.Errorf("add due %s: %w", customerName, domain.ErrLedgerInvariant)
		}
		return fmt.Errorf("add due: %w", err)
	}
	return nil
}

// Get saldo del cliente; nil, nil si no existe.
func (r *DueRepo) Get(ctx context.Context, tenantID, customerName string) (*entity.CustomerDue, error) {
	return r.get(ctx, tenantID, customerName, "")
}

// GetForUpdate igual que Get pero bloquea la fila (SELECT FOR UPDATE).
func (r *DueRepo) GetForUpdate(ctx context.Context, tenantID, customerName string) (*entity.CustomerDue, error) {
	return r.get(ctx, tenantID, customerName, " FOR UPDATE")
}

func (r *DueRepo) get(ctx context.Context, tenantID, customerName, lock string) (*entity.CustomerDue, error) {
	query := `
		SELECT tenant_id, customer_name, total_due, updated_at
		FROM customer_dues
		WHERE tenant_id = $1 AND lower(customer_name) = lower($2)` + lock
	var d entity.CustomerDue
	err := r.q.QueryRow(ctx, query, tenantID, customerName).Scan(
		&d.TenantID, &d.CustomerName, &d.TotalDue, &d.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get due: %w", err)
	}
	return &d, nil
}

// Update fija el saldo. Un saldo negativo nunca se persiste.
func (r *DueRepo) Update(ctx context.Context, d *entity.CustomerDue) error {
	if d.TotalDue.IsNegative() {
		return fmt.Errorf("saldo %s para %s: %w", d.TotalDue.String(), d.CustomerName, domain.ErrLedgerInvariant)
	}
	query := `
		UPDATE customer_dues SET total_due = $3, updated_at = now()
		WHERE tenant_id = $1 AND lower(customer_name) = lower($2)`
	tag, err := r.q.Exec(ctx, query, d.TenantID, d.CustomerName, d.TotalDue)
	if err != nil {
		return fmt.Errorf("update due: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return fmt.Errorf("due %s: %w", d.CustomerName, domain.ErrNotFound)
	}
	return nil
}

// ListByTenant saldos del tenant, mayor saldo primero.
func (r *DueRepo) ListByTenant(ctx context.Context, tenantID string) ([]*entity.CustomerDue, error) {
	query := `
		SELECT tenant_id, customer_name, total_due, updated_at
		FROM customer_dues
		WHERE tenant_id = $1
		ORDER BY total_due DESC, customer_name ASC`
	rows, err := r.q.Query(ctx, query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list dues: %w", err)
	}
	defer rows.Close()
	var list []*entity.CustomerDue
	for rows.Next() {
		var d entity.CustomerDue
		if err := rows.Scan(&d.TenantID, &d.CustomerName, &d.TotalDue, &d.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan due: %w", err)
		}
		list = append(list, &d)
	}
	return list, rows.Err()
}
