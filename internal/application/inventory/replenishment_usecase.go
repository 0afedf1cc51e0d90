package inventory

import (
	"context"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
	"golang.org/x/sync/errgroup"

	"github.com/jhoicas/Kirana-api/internal/application/dto"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

// DefaultLowStockThreshold umbral de stock bajo si la configuración no indica otro.
var DefaultLowStockThreshold = decimal.NewFromInt(5)

// ReplenishmentUseCase arma el listado de inventario por producto y marca los que están
// bajo el umbral de reposición, con la cantidad sugerida de pedido.
type ReplenishmentUseCase struct {
	batchRepo   repository.BatchRepository
	catalogRepo repository.CatalogRepository
	defaults    *parser.Catalog
	threshold   decimal.Decimal
}

// NewReplenishmentUseCase construye el caso de uso. threshold <= 0 usa DefaultLowStockThreshold.
func NewReplenishmentUseCase(
	batchRepo repository.BatchRepository,
	catalogRepo repository.CatalogRepository,
	defaults *parser.Catalog,
	threshold decimal.Decimal,
) *ReplenishmentUseCase {
	if defaults == nil {
		defaults = parser.DefaultCatalog()
	}
	if !threshold.GreaterThan(decimal.Zero) {
		threshold = DefaultLowStockThreshold
	}
	return &ReplenishmentUseCase{
		batchRepo:   batchRepo,
		catalogRepo: catalogRepo,
		defaults:    defaults,
		threshold:   threshold,
	}
}

// ListInventory devuelve el stock agregado por producto. Primero los productos con stock
// bajo (mayor déficit primero), luego el resto por nombre.
func (uc *ReplenishmentUseCase) ListInventory(ctx context.Context, tenantID string) (*dto.InventoryListResponse, error) {
	var (
		batches []*entity.InventoryBatch
		entries []*entity.CatalogEntry
	)
	g, gctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		batches, err = uc.batchRepo.ListByTenant(gctx, tenantID)
		return err
	})
	g.Go(func() error {
		var err error
		entries, err = uc.catalogRepo.ListByTenant(gctx, tenantID)
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, err
	}

	prices := make(map[string]decimal.Decimal, len(entries))
	for _, e := range entries {
		if e.Price.GreaterThan(decimal.Zero) {
			prices[strings.ToLower(e.ItemName)] = e.Price
		}
	}

	// Agrupar lotes por producto (ListByTenant ya viene ordenado por producto y FIFO).
	byItem := make(map[string]*dto.InventoryItemDTO)
	order := make([]string, 0)
	costSum := make(map[string]decimal.Decimal)
	for _, b := range batches {
		key := strings.ToLower(b.ItemName)
		item, ok := byItem[key]
		if !ok {
			item = &dto.InventoryItemDTO{ItemName: b.ItemName, Batches: []dto.BatchDTO{}}
			byItem[key] = item
			order = append(order, key)
		}
		var expiry *string
		if b.ExpiryDate != nil && b.Quantity.GreaterThan(decimal.Zero) {
			s := b.ExpiryDate.Format(expiryLayout)
			expiry = &s
			if item.NearestExpiry == nil || s < *item.NearestExpiry {
				item.NearestExpiry = expiry
			}
		}
		item.TotalQuantity = item.TotalQuantity.Add(b.Quantity)
		costSum[key] = costSum[key].Add(b.Quantity.Mul(b.Cost))
		if item.Price.IsZero() {
			item.Price = b.Price
		}
		if b.Quantity.GreaterThan(decimal.Zero) {
			item.Batches = append(item.Batches, dto.BatchDTO{
				ID:         b.ID,
				Quantity:   b.Quantity,
				Price:      b.Price,
				Cost:       b.Cost,
				ExpiryDate: expiry,
				CreatedAt:  b.CreatedAt,
			})
		}
	}

	ideal := uc.threshold.Mul(decimal.RequireFromString("1.5"))
	out := &dto.InventoryListResponse{Items: make([]dto.InventoryItemDTO, 0, len(order)), StockValue: decimal.Zero}
	for _, key := range order {
		item := byItem[key]
		if p, ok := prices[key]; ok {
			item.Price = p
		} else if p := uc.defaults.Price(item.ItemName); p.GreaterThan(decimal.Zero) {
			item.Price = p
		}
		if item.TotalQuantity.GreaterThan(decimal.Zero) {
			item.AvgCost = costSum[key].Div(item.TotalQuantity).Round(2)
			item.StockValue = costSum[key].Round(2)
		}
		if item.TotalQuantity.LessThan(uc.threshold) {
			item.LowStock = true
			item.SuggestedOrderQty = ideal.Sub(item.TotalQuantity).Ceil()
			out.LowStockCount++
		}
		out.StockValue = out.StockValue.Add(item.StockValue)
		out.Items = append(out.Items, *item)
	}

	sort.SliceStable(out.Items, func(i, j int) bool {
		a, b := out.Items[i], out.Items[j]
		if a.LowStock != b.LowStock {
			return a.LowStock
		}
		if a.LowStock && !a.TotalQuantity.Equal(b.TotalQuantity) {
			return a.TotalQuantity.LessThan(b.TotalQuantity)
		}
		return strings.ToLower(a.ItemName) < strings.ToLower(b.ItemName)
	})
	out.TotalItems = len(out.Items)
	return out, nil
}
