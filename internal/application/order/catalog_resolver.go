package order

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

// CatalogResolver arma el catálogo activo de un tenant: el catálogo por defecto extendido
// con los precios propios del tenant y los productos que tiene en inventario.
type CatalogResolver struct {
	catalogRepo repository.CatalogRepository
	batchRepo   repository.BatchRepository
	defaults    *parser.Catalog
}

// NewCatalogResolver construye el resolver. Si defaults es nil usa parser.DefaultCatalog().
func NewCatalogResolver(catalogRepo repository.CatalogRepository, batchRepo repository.BatchRepository, defaults *parser.Catalog) *CatalogResolver {
	if defaults == nil {
		defaults = parser.DefaultCatalog()
	}
	return &CatalogResolver{catalogRepo: catalogRepo, batchRepo: batchRepo, defaults: defaults}
}

type tenantPrice struct {
	name  string
	price decimal.Decimal
	cost  *decimal.Decimal
}

// Resolve devuelve el catálogo combinado y los lotes del tenant.
// Orden: primero los productos por defecto, luego los agregados del tenant por nombre.
// Un precio del tenant en cero (o ausente) conserva el precio por defecto.
func (r *CatalogResolver) Resolve(ctx context.Context, tenantID string) (*parser.Catalog, []*entity.InventoryBatch, error) {
	var (
		entries []*entity.CatalogEntry
		batches []*entity.InventoryBatch
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		entries, err = r.catalogRepo.ListByTenant(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("listar catálogo del tenant: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		var err error
		batches, err = r.batchRepo.ListByTenant(gctx, tenantID)
		if err != nil {
			return fmt.Errorf("listar lotes del tenant: %w", err)
		}
		return nil
	})
	if err := g.Wait(); err != nil {
		return nil, nil, err
	}

	prices := make(map[string]*tenantPrice)
	get := func(name string) *tenantPrice {
		key := strings.ToLower(strings.TrimSpace(name))
		tp, ok := prices[key]
		if !ok {
			tp = &tenantPrice{name: strings.TrimSpace(name)}
			prices[key] = tp
		}
		return tp
	}
	// Lotes: precio del lote más reciente con precio > 0.
	for _, b := range newestFirst(batches) {
		tp := get(b.ItemName)
		if tp.price.IsZero() && b.Price.GreaterThan(decimal.Zero) {
			tp.price = b.Price
		}
	}
	// Catálogo del tenant: gana sobre el precio del lote.
	for _, e := range entries {
		tp := get(e.ItemName)
		tp.name = e.ItemName
		if e.Price.GreaterThan(decimal.Zero) {
			tp.price = e.Price
		}
		if e.Cost != nil {
			tp.cost = e.Cost
		}
	}

	catalog := r.defaults.Clone()
	additions := make([]*tenantPrice, 0, len(prices))
	for _, tp := range prices {
		if tp.name == "" {
			continue
		}
		if _, ok := catalog.Lookup(tp.name); ok {
			catalog.Add(tp.name, tp.price, tp.cost)
			continue
		}
		additions = append(additions, tp)
	}
	sort.Slice(additions, func(i, j int) bool {
		return strings.ToLower(additions[i].name) < strings.ToLower(additions[j].name)
	})
	for _, tp := range additions {
		catalog.Add(tp.name, tp.price, tp.cost)
	}
	return catalog, batches, nil
}

func newestFirst(batches []*entity.InventoryBatch) []*entity.InventoryBatch {
	out := make([]*entity.InventoryBatch, len(batches))
	copy(out, batches)
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	return out
}
