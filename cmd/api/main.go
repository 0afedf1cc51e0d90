package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gofiber/contrib/swagger"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	_ "github.com/jhoicas/Kirana-api/docs"
	"github.com/jhoicas/Kirana-api/internal/application/analytics"
	"github.com/jhoicas/Kirana-api/internal/application/inventory"
	"github.com/jhoicas/Kirana-api/internal/application/ledger"
	"github.com/jhoicas/Kirana-api/internal/application/order"
	"github.com/jhoicas/Kirana-api/internal/application/ports"
	"github.com/jhoicas/Kirana-api/internal/application/usecase"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
	infraai "github.com/jhoicas/Kirana-api/internal/infrastructure/ai"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/cache"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/memory"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/metrics"
	infrapdf "github.com/jhoicas/Kirana-api/internal/infrastructure/pdf"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/postgres"
	httpRouter "github.com/jhoicas/Kirana-api/internal/interfaces/http"
	"github.com/jhoicas/Kirana-api/pkg/config"
	"github.com/jhoicas/Kirana-api/pkg/logger"
)

// stores repositorios y runner transaccional del driver elegido.
type stores struct {
	txRunner ports.TxRunner
	batches  repository.BatchRepository
	sales    repository.SaleRepository
	dues     repository.DueRepository
	catalog  repository.CatalogRepository
	aliases  repository.AliasRepository
}

// @title                       Kirana API
// @version                     1.0
// @description                 Pedidos por voz, stock por lotes FIFO y fiado para tiendas de barrio.
// @host                        localhost:8080
// @BasePath                    /
// @securityDefinitions.apikey  Bearer
// @in                          header
// @name                        Authorization
// @description                 Token JWT: Bearer <token>
func main() {
	cfg, err := config.Load()
	if err != nil {
		panic("cargar configuración: " + err.Error())
	}

	log := logger.New(logger.Config{
		Env:     cfg.App.Env,
		Level:   cfg.App.LogLevel,
		Service: cfg.App.Name,
	})
	log.Info().
		Str("env", cfg.App.Env).
		Str("app", cfg.App.Name).
		Str("store", cfg.App.StoreDriver).
		Msg("iniciando aplicación")

	if cfg.JWT.Secret == "" {
		log.Fatal().Msg("JWT_SECRET es obligatorio")
	}

	ctx := context.Background()

	var st stores
	switch cfg.App.StoreDriver {
	case "memory":
		mem := memory.NewStore()
		st = stores{
			txRunner: mem,
			batches:  mem.Batches(),
			sales:    mem.Sales(),
			dues:     mem.Dues(),
			catalog:  mem.Catalog(),
			aliases:  mem.Aliases(),
		}
		log.Warn().Msg("almacenamiento en memoria: los datos se pierden al reiniciar")
	default:
		pool, err := postgres.NewPool(ctx, cfg.DB)
		if err != nil {
			log.Fatal().Err(err).Msg("conexión a PostgreSQL")
		}
		defer pool.Close()
		if cfg.DB.AutoMigrate {
			if err := postgres.RunMigrations(pool); err != nil {
				log.Fatal().Err(err).Msg("migraciones")
			}
			log.Info().Msg("migraciones aplicadas")
		}
		st = postgresStores(pool)
	}

	// IA opcional: respaldo del parser y generación de alias.
	var llm ports.LLMService
	if cfg.AI.AIEnabled() {
		switch cfg.AI.Provider {
		case "anthropic":
			llm = infraai.NewAnthropicService(cfg.AI.AnthropicAPIKey, cfg.AI.AnthropicModel)
		default:
			llm = infraai.NewGeminiService(cfg.AI.GeminiAPIKey, cfg.AI.GeminiModel)
		}
		log.Info().Str("provider", cfg.AI.Provider).Msg("IA habilitada")
	} else {
		log.Warn().Msg("IA deshabilitada: sin API key, solo parser local")
	}
	limiter := rate.NewLimiter(rate.Limit(cfg.AI.RatePerSecond), cfg.AI.Burst)
	aiTimeout := time.Duration(cfg.AI.TimeoutSeconds) * time.Second

	var aliasCache ports.AliasCache
	if cfg.Redis.Addr != "" {
		rc := cache.NewRedisAliasCache(cache.NewClient(cfg.Redis.Addr, cfg.Redis.Password, cfg.Redis.DB), cache.DefaultAliasKey)
		if err := rc.Ping(ctx); err != nil {
			log.Warn().Err(err).Msg("Redis no disponible, alias sin caché")
		} else {
			aliasCache = rc
			defer rc.Close()
		}
	}

	loc, err := analytics.LoadLocation(cfg.Shop.Timezone)
	if err != nil {
		log.Fatal().Err(err).Str("timezone", cfg.Shop.Timezone).Msg("zona horaria inválida")
	}
	threshold, err := decimal.NewFromString(cfg.Shop.LowStockThreshold)
	if err != nil {
		log.Fatal().Err(err).Msg("LOW_STOCK_THRESHOLD inválido")
	}

	prom := metrics.NewPrometheus()
	defaults := parser.DefaultCatalog()
	rules := parser.DefaultRuleSet()

	aliasUC := usecase.NewAliasUseCase(st.aliases, aliasCache,
		time.Duration(cfg.Redis.AliasTTLSeconds)*time.Second, llm, limiter, aiTimeout, log.Component("aliases"))

	var fallback *order.FallbackDelegator
	if llm != nil {
		fallback = order.NewFallbackDelegator(llm, limiter, aiTimeout, log.Component("fallback"))
	}
	resolver := order.NewCatalogResolver(st.catalog, st.batches, defaults)
	parseUC := order.NewParseUseCase(resolver, aliasUC, fallback, rules, prom, log.Component("parser"))
	engine := order.NewFulfillmentEngine(st.txRunner, defaults, prom, log.Component("fulfillment"))

	// El generador de alias solo tiene sentido con IA.
	var aliasGen inventory.AliasGenerator
	if llm != nil {
		aliasGen = aliasUC
	}
	stockUC := inventory.NewStockUseCase(st.txRunner, defaults, aliasGen, log.Component("inventory"))
	replenishmentUC := inventory.NewReplenishmentUseCase(st.batches, st.catalog, defaults, threshold)

	pdfGenerator := infrapdf.NewMarotoPDFGenerator(cfg.Shop.Name, cfg.Shop.UPIID)
	ledgerUC := ledger.NewLedgerUseCase(st.txRunner, st.dues, st.sales, pdfGenerator, prom, log.Component("ledger"))
	salesUC := analytics.NewSalesReportUseCase(st.sales, loc)

	app := fiber.New(fiber.Config{
		AppName:      cfg.App.Name,
		ReadTimeout:  time.Second * 10,
		WriteTimeout: time.Second * 30,
		IdleTimeout:  time.Second * 60,
	})
	app.Use(recover.New())

	// Swagger UI en local: http://localhost:<port>/docs
	app.Use(swagger.New(swagger.Config{
		BasePath: "/",
		FilePath: "./docs/swagger.json",
		Path:     "docs",
		Title:    "Kirana API",
	}))

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"status": "ok", "service": cfg.App.Name, "ai": llm != nil})
	})

	httpRouter.Router(app, httpRouter.RouterDeps{
		Chat:          order.NewChatUseCase(parseUC, engine),
		Parse:         parseUC,
		Stock:         stockUC,
		Replenishment: replenishmentUC,
		Ledger:        ledgerUC,
		Sales:         salesUC,
		Aliases:       aliasUC,
		Metrics:       prom,
		JWTSecret:     cfg.JWT.Secret,
	})

	go func() {
		if err := app.Listen(cfg.HTTP.Addr()); err != nil {
			log.Error().Err(err).Msg("servidor HTTP finalizado")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info().Msg("señal de apagado recibida, cerrando servidor...")

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	if err := app.ShutdownWithContext(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("apagado del servidor")
	}

	log.Info().Msg("aplicación detenida")
}

func postgresStores(pool *pgxpool.Pool) stores {
	return stores{
		txRunner: postgres.NewTxRunner(pool),
		batches:  postgres.NewBatchRepository(pool),
		sales:    postgres.NewSaleRepository(pool),
		dues:     postgres.NewDueRepository(pool),
		catalog:  postgres.NewCatalogRepository(pool),
		aliases:  postgres.NewAliasRepository(pool),
	}
}
