// seed carga en la tabla global de alias las correcciones de la tabla por defecto
// que apuntan a productos del catálogo base.
//
// Uso: go run ./cmd/seed
// Lee la misma configuración que la API (DATABASE_URL, DB_HOST, ...). Idempotente:
// los alias existentes se omiten.
package main

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/jhoicas/Kirana-api/internal/application/usecase"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/cache"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Kirana-api/pkg/config"
	"github.com/jhoicas/Kirana-api/pkg/logger"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Cargar configuración: %v\n", err)
		os.Exit(1)
	}
	log := logger.New(logger.Config{Env: cfg.App.Env, Level: cfg.App.LogLevel, Service: "kirana-seed"})

	ctx, cancel := context.WithTimeout(context.Background(), 2*time.Minute)
	defer cancel()

	pool, err := postgres.NewPool(ctx, cfg.DB)
	if err != nil {
		log.Fatal().Err(err).Msg("conexión a PostgreSQL")
	}
	defer pool.Close()
	if err := postgres.RunMigrations(pool); err != nil {
		log.Fatal().Err(err).Msg("migraciones")
	}

	uc := usecase.NewAliasUseCase(postgres.NewAliasRepository(pool), nil, 0, nil, nil, 0, log.Component("seed"))
	n, err := uc.SeedDefaults(ctx, parser.DefaultRuleSet(), parser.DefaultCatalog())
	if err != nil {
		log.Fatal().Err(err).Msg("cargar alias")
	}

	// La API puede tener la tabla anterior en caché.
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedisAliasCache(cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), cache.DefaultAliasKey)
		if err := rc.Invalidate(ctx); err != nil {
			log.Warn().Err(err).Msg("no se pudo invalidar la caché de alias")
		}
		_ = rc.Close()
	}

	log.Info().Int("aliases", n).Msg("alias cargados")
}
