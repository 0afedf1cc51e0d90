package repository

import (
	"context"

	"github.com/jhoicas/Kirana-api/internal/domain/entity"
)

// AliasRepository tabla global de alias (lectura y alta).
type AliasRepository interface {
	List(ctx context.Context) ([]*entity.Alias, error)
	// Create devuelve domain.ErrDuplicate si el alias ya existe.
	Create(ctx context.Context, alias *entity.Alias) error
}
