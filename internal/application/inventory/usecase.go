package inventory

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kirana-api/internal/application/ports"
	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/inventory"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

// defaultCostRatio costo estimado cuando no hay costo de compra: 75 % del precio de venta.
var defaultCostRatio = decimal.RequireFromString("0.75")

// aliasGenerationTimeout tiempo máximo de la generación de alias en segundo plano.
const aliasGenerationTimeout = 30 * time.Second

// StockUseCase entradas y bajas de stock por lotes, con bloqueo de fila (SELECT FOR UPDATE)
// y Commit/Rollback vía TxRunner.
type StockUseCase struct {
	txRunner ports.TxRunner
	defaults *parser.Catalog
	aliasGen AliasGenerator
	logger   zerolog.Logger
	now      func() time.Time
}

// NewStockUseCase construye el caso de uso. aliasGen puede ser nil (IA deshabilitada).
func NewStockUseCase(txRunner ports.TxRunner, defaults *parser.Catalog, aliasGen AliasGenerator, logger zerolog.Logger) *StockUseCase {
	if defaults == nil {
		defaults = parser.DefaultCatalog()
	}
	return &StockUseCase{txRunner: txRunner, defaults: defaults, aliasGen: aliasGen, logger: logger, now: time.Now}
}

// AddStockInput entrada de stock. Price y Cost son opcionales.
type AddStockInput struct {
	TenantID   string
	ItemName   string
	Quantity   decimal.Decimal
	Price      *decimal.Decimal
	Cost       *decimal.Decimal
	ExpiryDate *time.Time
}

// StockResult resultado de AddStock.
type StockResult struct {
	Batch      *entity.InventoryBatch
	Merged     bool
	NewItem    bool
	TotalStock decimal.Decimal
}

// AddStock suma un lote. Si ya existe un lote del producto con el mismo vencimiento se
// fusiona con costo promedio ponderado; si no, se crea uno nuevo. El primer ingreso de un
// producto desconocido lo agrega al catálogo del tenant y dispara la generación de alias.
func (uc *StockUseCase) AddStock(ctx context.Context, in AddStockInput) (*StockResult, error) {
	if in.TenantID == "" || strings.TrimSpace(in.ItemName) == "" || !in.Quantity.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	if (in.Price != nil && in.Price.IsNegative()) || (in.Cost != nil && in.Cost.IsNegative()) {
		return nil, domain.ErrInvalidInput
	}

	var res *StockResult
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		now := uc.now()
		entry, name, err := uc.canonical(ctx, repos, in.TenantID, in.ItemName)
		if err != nil {
			return err
		}
		batches, err := repos.Batches.ListByItemForUpdate(ctx, in.TenantID, name)
		if err != nil {
			return err
		}
		_, known := uc.defaults.Lookup(name)
		res = &StockResult{NewItem: entry == nil && !known && len(batches) == 0}

		price := uc.resolvePrice(in.Price, entry, name, batches)
		cost := uc.resolveCost(in.Cost, entry, name, price)

		var target *entity.InventoryBatch
		for _, b := range batches {
			if b.SameExpiry(in.ExpiryDate) {
				target = b
				break
			}
		}
		if target != nil {
			target.Cost = inventory.WeightedAverageCost(target.Quantity, target.Cost, in.Quantity, cost)
			target.Quantity = target.Quantity.Add(in.Quantity)
			if price.GreaterThan(decimal.Zero) {
				target.Price = price
			}
			target.UpdatedAt = now
			if err := repos.Batches.Update(ctx, target); err != nil {
				return err
			}
			res.Merged = true
		} else {
			target = &entity.InventoryBatch{
				ID:         uuid.New().String(),
				TenantID:   in.TenantID,
				ItemName:   name,
				Quantity:   in.Quantity,
				Price:      price,
				Cost:       cost,
				ExpiryDate: in.ExpiryDate,
				CreatedAt:  now,
				UpdatedAt:  now,
			}
			if err := repos.Batches.Create(ctx, target); err != nil {
				return err
			}
			batches = append(batches, target)
		}
		res.Batch = target
		res.TotalStock = inventory.Available(batches)

		if res.NewItem || in.Price != nil || in.Cost != nil {
			upd := &entity.CatalogEntry{TenantID: in.TenantID, ItemName: name, Price: price, Cost: &cost, UpdatedAt: now}
			if err := repos.Catalog.Upsert(ctx, upd); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.logger.Info().
		Str("tenant_id", in.TenantID).
		Str("item", res.Batch.ItemName).
		Str("qty", in.Quantity.String()).
		Bool("merged", res.Merged).
		Msg("stock ingresado")
	if res.NewItem {
		uc.generateAliasesAsync(res.Batch.ItemName)
	}
	return res, nil
}

// ReduceResult resultado de ReduceStock.
type ReduceResult struct {
	ItemName  string
	Reduced   decimal.Decimal
	Remaining decimal.Decimal
	CostValue decimal.Decimal
}

// ReduceStock da de baja stock en orden FIFO sin registrar venta (merma, consumo propio).
func (uc *StockUseCase) ReduceStock(ctx context.Context, tenantID, itemName string, qty decimal.Decimal) (*ReduceResult, error) {
	if tenantID == "" || strings.TrimSpace(itemName) == "" || !qty.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	var res *ReduceResult
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		_, name, err := uc.canonical(ctx, repos, tenantID, itemName)
		if err != nil {
			return err
		}
		batches, err := repos.Batches.ListByItemForUpdate(ctx, tenantID, name)
		if err != nil {
			return err
		}
		if len(batches) == 0 {
			return fmt.Errorf("%w: %s sin lotes", domain.ErrNotFound, name)
		}
		inventory.SortFIFO(batches)
		plan, err := inventory.AllocateFIFO(name, batches, qty)
		if err != nil {
			return err
		}
		now := uc.now()
		for _, b := range plan.Apply() {
			b.UpdatedAt = now
			if err := repos.Batches.Update(ctx, b); err != nil {
				return err
			}
		}
		res = &ReduceResult{
			ItemName:  name,
			Reduced:   qty,
			Remaining: inventory.Available(batches),
			CostValue: plan.TotalCost,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// canonical resuelve el nombre canónico: catálogo por defecto, luego catálogo del tenant,
// luego Title Case del texto recibido.
func (uc *StockUseCase) canonical(ctx context.Context, repos repository.TxRepos, tenantID, itemName string) (*entity.CatalogEntry, string, error) {
	entry, err := repos.Catalog.Get(ctx, tenantID, itemName)
	if err != nil {
		return nil, "", err
	}
	if it, ok := uc.defaults.Lookup(itemName); ok {
		return entry, it.Name, nil
	}
	if entry != nil {
		return entry, entry.ItemName, nil
	}
	return nil, parser.TitleName(itemName), nil
}

func (uc *StockUseCase) resolvePrice(given *decimal.Decimal, entry *entity.CatalogEntry, name string, batches []*entity.InventoryBatch) decimal.Decimal {
	if given != nil && given.GreaterThan(decimal.Zero) {
		return *given
	}
	if entry != nil && entry.Price.GreaterThan(decimal.Zero) {
		return entry.Price
	}
	if p := uc.defaults.Price(name); p.GreaterThan(decimal.Zero) {
		return p
	}
	var newest *entity.InventoryBatch
	for _, b := range batches {
		if b.Price.GreaterThan(decimal.Zero) && (newest == nil || b.CreatedAt.After(newest.CreatedAt)) {
			newest = b
		}
	}
	if newest != nil {
		return newest.Price
	}
	return decimal.Zero
}

func (uc *StockUseCase) resolveCost(given *decimal.Decimal, entry *entity.CatalogEntry, name string, price decimal.Decimal) decimal.Decimal {
	if given != nil {
		return *given
	}
	if entry != nil && entry.Cost != nil && entry.Cost.GreaterThan(decimal.Zero) {
		return *entry.Cost
	}
	if it, ok := uc.defaults.Lookup(name); ok && it.Cost != nil && it.Cost.GreaterThan(decimal.Zero) {
		return *it.Cost
	}
	return price.Mul(defaultCostRatio).Round(2)
}

// generateAliasesAsync no bloquea la respuesta; los errores solo se registran.
func (uc *StockUseCase) generateAliasesAsync(itemName string) {
	if uc.aliasGen == nil {
		return
	}
	go func() {
		ctx, cancel := context.WithTimeout(context.Background(), aliasGenerationTimeout)
		defer cancel()
		n, err := uc.aliasGen.GenerateForItem(ctx, itemName)
		if err != nil {
			uc.logger.Warn().Err(err).Str("item", itemName).Msg("no se pudieron generar alias")
			return
		}
		uc.logger.Info().Str("item", itemName).Int("aliases", n).Msg("alias generados")
	}()
}
