// Package cache adaptadores de caché sobre Redis.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"time"

	redis "github.com/redis/go-redis/v9"

	"github.com/jhoicas/Kirana-api/internal/application/ports"
)

var _ ports.AliasCache = (*RedisAliasCache)(nil)

// DefaultAliasKey clave donde se guarda la tabla completa de alias (JSON).
const DefaultAliasKey = "kirana:aliases:v1"

// RedisAliasCache guarda la tabla global de alias en una sola clave.
type RedisAliasCache struct {
	client *redis.Client
	key    string
}

// NewRedisAliasCache construye la caché. key vacía usa DefaultAliasKey.
func NewRedisAliasCache(client *redis.Client, key string) *RedisAliasCache {
	if key == "" {
		key = DefaultAliasKey
	}
	return &RedisAliasCache{client: client, key: key}
}

// NewClient cliente Redis a partir de la configuración.
func NewClient(addr, password string, db int) *redis.Client {
	return redis.NewClient(&redis.Options{
		Addr:     addr,
		Password: password,
		DB:       db,
	})
}

func (c *RedisAliasCache) Ping(ctx context.Context) error {
	return c.client.Ping(ctx).Err()
}

func (c *RedisAliasCache) Close() error {
	return c.client.Close()
}

// Get devuelve (nil, false, nil) si la clave no existe.
func (c *RedisAliasCache) Get(ctx context.Context) (map[string]string, bool, error) {
	val, err := c.client.Get(ctx, c.key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get aliases: %w", err)
	}
	var aliases map[string]string
	if err := json.Unmarshal(val, &aliases); err != nil {
		return nil, false, fmt.Errorf("decodificar alias en caché: %w", err)
	}
	return aliases, true, nil
}

func (c *RedisAliasCache) Set(ctx context.Context, aliases map[string]string, ttl time.Duration) error {
	if aliases == nil {
		return nil
	}
	payload, err := json.Marshal(aliases)
	if err != nil {
		return err
	}
	if err := c.client.Set(ctx, c.key, payload, ttl).Err(); err != nil {
		return fmt.Errorf("redis set aliases: %w", err)
	}
	return nil
}

func (c *RedisAliasCache) Invalidate(ctx context.Context) error {
	if err := c.client.Del(ctx, c.key).Err(); err != nil {
		return fmt.Errorf("redis del aliases: %w", err)
	}
	return nil
}
