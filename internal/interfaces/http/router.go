package http

import (
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"

	"github.com/jhoicas/Kirana-api/internal/application/analytics"
	"github.com/jhoicas/Kirana-api/internal/application/inventory"
	"github.com/jhoicas/Kirana-api/internal/application/ledger"
	"github.com/jhoicas/Kirana-api/internal/application/order"
	"github.com/jhoicas/Kirana-api/internal/application/usecase"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/metrics"
	"github.com/jhoicas/Kirana-api/pkg/jwt"
)

// RouterDeps dependencias para el router.
type RouterDeps struct {
	Chat          *order.ChatUseCase
	Parse         *order.ParseUseCase
	Stock         *inventory.StockUseCase
	Replenishment *inventory.ReplenishmentUseCase
	Ledger        *ledger.LedgerUseCase
	Sales         *analytics.SalesReportUseCase
	Aliases       *usecase.AliasUseCase
	Metrics       *metrics.Prometheus // nil deshabilita /metrics
	JWTSecret     string
}

// Router registra las rutas de la API.
func Router(app *fiber.App, deps RouterDeps) {
	if deps.Metrics != nil {
		app.Use(MetricsMiddleware(deps.Metrics))
		app.Get("/metrics", adaptor.HTTPHandler(deps.Metrics.Handler()))
	}

	api := app.Group("/api", AuthMiddleware(deps.JWTSecret))

	// Pedidos
	orderHandler := NewOrderHandler(deps.Chat, deps.Parse)
	orders := api.Group("/orders")
	orders.Post("/chat", orderHandler.Chat)
	orders.Post("/parse", orderHandler.Parse)

	// Inventario por lotes
	inventoryHandler := NewInventoryHandler(deps.Stock, deps.Replenishment)
	inv := api.Group("/inventory")
	inv.Get("/", inventoryHandler.List)
	inv.Post("/stock", inventoryHandler.AddStock)
	inv.Post("/reduce", inventoryHandler.ReduceStock)

	// Fiado
	ledgerHandler := NewLedgerHandler(deps.Ledger)
	dues := api.Group("/dues")
	dues.Get("/", ledgerHandler.List)
	dues.Post("/:customer/settle", ledgerHandler.Settle)
	dues.Get("/:customer/statement.pdf", ledgerHandler.StatementPDF)

	// Reportes
	salesHandler := NewSalesHandler(deps.Sales)
	sales := api.Group("/sales")
	sales.Get("/today", salesHandler.Today)
	sales.Get("/month", salesHandler.Month)
	sales.Get("/date/:date", salesHandler.Date)

	// Alias globales: lectura para todos, alta solo el dueño
	aliasHandler := NewAliasHandler(deps.Aliases)
	aliases := api.Group("/aliases")
	aliases.Get("/", aliasHandler.List)
	aliases.Post("/", RequireRole(jwt.RoleOwner), aliasHandler.Create)
}

// MetricsMiddleware mide la duración por ruta registrada (no por URL, para acotar la cardinalidad).
func MetricsMiddleware(m *metrics.Prometheus) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		status := c.Response().StatusCode()
		if fe, ok := err.(*fiber.Error); ok {
			status = fe.Code
		}
		m.ObserveHTTP(c.Method(), c.Route().Path, status, time.Since(start))
		return err
	}
}
