package order

import (
	"context"
	"fmt"
	"strings"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Kirana-api/internal/application/ports"
	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
)

// Origen de las líneas de un pedido.
const (
	SourceLocal    = "local"
	SourceFallback = "fallback"
	SourceNone     = "none"
)

// AliasProvider tabla global de alias (normalmente cacheada).
type AliasProvider interface {
	Aliases(ctx context.Context) (parser.Aliases, error)
}

// ParseResult pedido interpretado.
type ParseResult struct {
	Lines          []parser.OrderLine
	PaymentMode    entity.PaymentMode
	CustomerName   string
	Source         string
	FallbackStatus FallbackStatus
	Normalized     string
	RuleVersion    string
}

// ParseUseCase interpreta el texto de un pedido: parser local y, si no reconoce nada, el modelo.
type ParseUseCase struct {
	resolver *CatalogResolver
	aliases  AliasProvider
	fallback *FallbackDelegator
	rules    parser.RuleSet
	metrics  ports.OrderMetrics
	logger   zerolog.Logger
}

// NewParseUseCase construye el caso de uso. metrics puede ser nil.
func NewParseUseCase(
	resolver *CatalogResolver,
	aliases AliasProvider,
	fallback *FallbackDelegator,
	rules parser.RuleSet,
	metrics ports.OrderMetrics,
	logger zerolog.Logger,
) *ParseUseCase {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &ParseUseCase{
		resolver: resolver,
		aliases:  aliases,
		fallback: fallback,
		rules:    rules,
		metrics:  metrics,
		logger:   logger,
	}
}

// Parse devuelve las líneas del pedido. Si ni el parser local ni el modelo reconocen
// ningún producto devuelve el resultado vacío junto con domain.ErrParseEmpty.
func (uc *ParseUseCase) Parse(ctx context.Context, tenantID, text string) (*ParseResult, error) {
	if strings.TrimSpace(text) == "" {
		return nil, domain.ErrInvalidInput
	}

	var (
		catalog *parser.Catalog
		aliases parser.Aliases
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		catalog, _, err = uc.resolver.Resolve(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		if uc.aliases == nil {
			return nil
		}
		a, err := uc.aliases.Aliases(gctx)
		if err != nil {
			// Los alias mejoran el match pero no son imprescindibles.
			uc.logger.Warn().Err(err).Msg("no se pudieron cargar los alias; se continúa sin ellos")
			return nil
		}
		aliases = a
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, fmt.Errorf("resolver catálogo: %w", err)
	}

	local := parser.Parse(text, catalog, aliases, uc.rules)
	res := &ParseResult{
		Lines:          local.Lines,
		PaymentMode:    local.PaymentMode,
		CustomerName:   local.CustomerName,
		Source:         SourceLocal,
		FallbackStatus: FallbackSkipped,
		Normalized:     local.Normalized,
		RuleVersion:    local.RuleVersion,
	}
	if !local.Empty() {
		uc.metrics.ParseOutcome(SourceLocal)
		return res, nil
	}

	fb := uc.fallback.Resolve(ctx, text, catalog)
	uc.metrics.FallbackOutcome(string(fb.Status))
	res.FallbackStatus = fb.Status
	if fb.Status != FallbackMatched {
		res.Source = SourceNone
		uc.metrics.ParseOutcome(SourceNone)
		uc.logger.Info().Str("tenant_id", tenantID).Str("fallback", string(fb.Status)).Msg("pedido no reconocido")
		return res, domain.ErrParseEmpty
	}

	res.Lines = fb.Lines
	res.Source = SourceFallback
	// Los metadatos detectados localmente ganan; el modelo solo completa los valores por defecto.
	if res.PaymentMode == entity.PaymentModeCash && fb.PaymentMode != "" {
		res.PaymentMode = fb.PaymentMode
	}
	if res.CustomerName == entity.WalkInCustomer && fb.CustomerName != "" {
		res.CustomerName = fb.CustomerName
	}
	uc.metrics.ParseOutcome(SourceFallback)
	return res, nil
}
