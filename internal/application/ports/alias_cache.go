package ports

import (
	"context"
	"time"
)

// AliasCache caché de la tabla global de alias (alias → nombre canónico).
type AliasCache interface {
	Get(ctx context.Context) (map[string]string, bool, error)
	Set(ctx context.Context, aliases map[string]string, ttl time.Duration) error
	Invalidate(ctx context.Context) error
}

// NoopAliasCache caché deshabilitada.
type NoopAliasCache struct{}

func (NoopAliasCache) Get(_ context.Context) (map[string]string, bool, error) { return nil, false, nil }

func (NoopAliasCache) Set(_ context.Context, _ map[string]string, _ time.Duration) error { return nil }

func (NoopAliasCache) Invalidate(_ context.Context) error { return nil }
