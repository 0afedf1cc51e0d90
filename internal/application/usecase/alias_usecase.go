package usecase

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Kirana-api/internal/application/dto"
	"github.com/jhoicas/Kirana-api/internal/application/ports"
	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

const aliasPrompt = `A grocery shop in India sells %q. Speech-to-text often mishears product names.
List up to 10 common misspellings, phonetic variants and Hindi/Hinglish names a shopkeeper might say for it.
Return ONLY a JSON array of lowercase strings, e.g. ["doodh", "dudh"].`

// maxAliasLen alias más largos se descartan (frases, no palabras).
const maxAliasLen = 40

var jsonArrayRe = regexp.MustCompile(`(?s)\[.*\]`)

// AliasUseCase administra la tabla global de alias y su caché.
// Implementa order.AliasProvider e inventory.AliasGenerator.
type AliasUseCase struct {
	repo    repository.AliasRepository
	cache   ports.AliasCache
	ttl     time.Duration
	llm     ports.LLMService
	limiter *rate.Limiter
	timeout time.Duration
	logger  zerolog.Logger
}

// NewAliasUseCase construye el caso de uso. cache nil usa NoopAliasCache; llm nil
// deshabilita GenerateForItem.
func NewAliasUseCase(
	repo repository.AliasRepository,
	cache ports.AliasCache,
	ttl time.Duration,
	llm ports.LLMService,
	limiter *rate.Limiter,
	timeout time.Duration,
	logger zerolog.Logger,
) *AliasUseCase {
	if cache == nil {
		cache = ports.NoopAliasCache{}
	}
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &AliasUseCase{repo: repo, cache: cache, ttl: ttl, llm: llm, limiter: limiter, timeout: timeout, logger: logger}
}

// Aliases tabla alias → nombre canónico. Lee de la caché y, si no está, del repositorio.
// Un fallo de la caché no es fatal.
func (uc *AliasUseCase) Aliases(ctx context.Context) (parser.Aliases, error) {
	if m, ok, err := uc.cache.Get(ctx); err != nil {
		uc.logger.Warn().Err(err).Msg("caché de alias no disponible")
	} else if ok {
		return parser.Aliases(m), nil
	}

	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("listar alias: %w", err)
	}
	m := make(map[string]string, len(list))
	for _, a := range list {
		m[strings.ToLower(a.Alias)] = a.ItemName
	}
	if err := uc.cache.Set(ctx, m, uc.ttl); err != nil {
		uc.logger.Warn().Err(err).Msg("no se pudo guardar la caché de alias")
	}
	return parser.Aliases(m), nil
}

// List alias ordenados.
func (uc *AliasUseCase) List(ctx context.Context) ([]dto.AliasDTO, error) {
	list, err := uc.repo.List(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.AliasDTO, 0, len(list))
	for _, a := range list {
		out = append(out, dto.AliasDTO{Alias: a.Alias, ItemName: a.ItemName, CreatedAt: a.CreatedAt})
	}
	return out, nil
}

// Create agrega un alias. El alias no puede ser igual al nombre del producto.
func (uc *AliasUseCase) Create(ctx context.Context, req dto.CreateAliasRequest) (*dto.AliasDTO, error) {
	alias := strings.ToLower(strings.Join(strings.Fields(req.Alias), " "))
	item := parser.TitleName(req.ItemName)
	if alias == "" || item == "" || len(alias) > maxAliasLen || strings.EqualFold(alias, item) {
		return nil, domain.ErrInvalidInput
	}
	a := &entity.Alias{Alias: alias, ItemName: item, CreatedAt: time.Now()}
	if err := uc.repo.Create(ctx, a); err != nil {
		return nil, err
	}
	uc.invalidate(ctx)
	return &dto.AliasDTO{Alias: a.Alias, ItemName: a.ItemName, CreatedAt: a.CreatedAt}, nil
}

// GenerateForItem pide al modelo variantes del nombre y guarda las nuevas.
// Devuelve cuántos alias se crearon; los duplicados se ignoran.
func (uc *AliasUseCase) GenerateForItem(ctx context.Context, itemName string) (int, error) {
	if uc.llm == nil {
		return 0, domain.ErrDelegateUnavailable
	}
	item := parser.TitleName(itemName)
	if item == "" {
		return 0, domain.ErrInvalidInput
	}

	ctx, cancel := context.WithTimeout(ctx, uc.timeout)
	defer cancel()
	if uc.limiter != nil {
		if err := uc.limiter.Wait(ctx); err != nil {
			return 0, fmt.Errorf("límite de llamadas a IA: %w", err)
		}
	}

	raw, err := uc.llm.Complete(ctx, fmt.Sprintf(aliasPrompt, item))
	if err != nil {
		return 0, fmt.Errorf("%w: %v", domain.ErrDelegateUnavailable, err)
	}
	block := jsonArrayRe.FindString(raw)
	if block == "" {
		return 0, fmt.Errorf("IA: no se encontró un array JSON (respuesta: %s)", raw)
	}
	var candidates []string
	if err := json.Unmarshal([]byte(block), &candidates); err != nil {
		return 0, fmt.Errorf("IA: parsear alias: %w", err)
	}

	created := 0
	for _, c := range candidates {
		alias := strings.ToLower(strings.Join(strings.Fields(c), " "))
		if len(alias) < 2 || len(alias) > maxAliasLen || strings.EqualFold(alias, item) {
			continue
		}
		err := uc.repo.Create(ctx, &entity.Alias{Alias: alias, ItemName: item, CreatedAt: time.Now()})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	if created > 0 {
		uc.invalidate(ctx)
	}
	return created, nil
}

// SeedDefaults guarda las correcciones de la tabla por defecto que apuntan a productos
// del catálogo (las de unidades y números no son alias de producto).
func (uc *AliasUseCase) SeedDefaults(ctx context.Context, rules parser.RuleSet, catalog *parser.Catalog) (int, error) {
	created := 0
	for alias, target := range rules.Typos {
		it, ok := catalog.Lookup(target)
		if !ok {
			continue
		}
		err := uc.repo.Create(ctx, &entity.Alias{Alias: alias, ItemName: it.Name, CreatedAt: time.Now()})
		if errors.Is(err, domain.ErrDuplicate) {
			continue
		}
		if err != nil {
			return created, err
		}
		created++
	}
	if created > 0 {
		uc.invalidate(ctx)
	}
	return created, nil
}

func (uc *AliasUseCase) invalidate(ctx context.Context) {
	if err := uc.cache.Invalidate(ctx); err != nil {
		uc.logger.Warn().Err(err).Msg("no se pudo invalidar la caché de alias")
	}
}
