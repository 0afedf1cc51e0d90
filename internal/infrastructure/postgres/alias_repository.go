package postgres

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

var _ repository.AliasRepository = (*AliasRepo)(nil)

// AliasRepo tabla global de alias (no tiene tenant).
type AliasRepo struct {
	q Querier
}

// NewAliasRepository construye el adaptador de alias.
func NewAliasRepository(q Querier) *AliasRepo {
	return &AliasRepo{q: q}
}

// List todos los alias ordenados.
func (r *AliasRepo) List(ctx context.Context) ([]*entity.Alias, error) {
	rows, err := r.q.Query(ctx, `SELECT alias, item_name, created_at FROM item_aliases ORDER BY alias ASC`)
	if err != nil {
		return nil, fmt.Errorf("list aliases: %w", err)
	}
	defer rows.Close()
	var list []*entity.Alias
	for rows.Next() {
		var a entity.Alias
		if err := rows.Scan(&a.Alias, &a.ItemName, &a.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan alias: %w", err)
		}
		list = append(list, &a)
	}
	return list, rows.Err()
}

// Create inserta el alias en minúsculas. Devuelve domain.ErrDuplicate si ya existe.
func (r *AliasRepo) Create(ctx context.Context, a *entity.Alias) error {
	a.Alias = strings.ToLower(strings.TrimSpace(a.Alias))
	query := `
		INSERT INTO item_aliases (alias, item_name, created_at)
		VALUES ($1, $2, COALESCE($3, now()))`
	var createdAt any
	if !a.CreatedAt.IsZero() {
		createdAt = a.CreatedAt
	}
	if _, err := r.q.Exec(ctx, query, a.Alias, a.ItemName, createdAt); err != nil {
		if isUniqueViolation(err) {
			return fmt.Errorf("alias %q: %w", a.Alias, domain.ErrDuplicate)
		}
		return fmt.Errorf("create alias: %w", err)
	}
	return nil
}
