package inventory_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kirana-api/internal/application/dto"
	appinventory "github.com/jhoicas/Kirana-api/internal/application/inventory"
	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const tenant = "00000000-0000-0000-0000-000000000001"

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func ptr(s string) *decimal.Decimal {
	v := dec(s)
	return &v
}

// fakeAliasGen registra los productos para los que se pidieron alias.
type fakeAliasGen struct {
	mu    sync.Mutex
	items []string
	done  chan struct{}
}

func (f *fakeAliasGen) GenerateForItem(_ context.Context, item string) (int, error) {
	f.mu.Lock()
	f.items = append(f.items, item)
	f.mu.Unlock()
	close(f.done)
	return 3, nil
}

func newStock(s *memory.Store, gen appinventory.AliasGenerator) *appinventory.StockUseCase {
	return appinventory.NewStockUseCase(s, nil, gen, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// AddStock
// ──────────────────────────────────────────────────────────────────────────────

func TestAddStock_MismoVencimientoSeFusionaConCostoPonderado(t *testing.T) {
	s := memory.NewStore()
	uc := newStock(s, nil)
	ctx := context.Background()
	expiry := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	first, err := uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "milk", Quantity: dec("10"), Cost: ptr("20"), ExpiryDate: &expiry})
	require.NoError(t, err)
	assert.Equal(t, "Milk", first.Batch.ItemName)
	assert.False(t, first.Merged)

	sameDay := expiry.Add(5 * time.Hour)
	second, err := uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "Milk", Quantity: dec("10"), Cost: ptr("30"), ExpiryDate: &sameDay})
	require.NoError(t, err)
	assert.True(t, second.Merged)
	assert.Equal(t, first.Batch.ID, second.Batch.ID)
	assert.True(t, second.Batch.Quantity.Equal(dec("20")))
	assert.True(t, second.Batch.Cost.Equal(dec("25")), "(10×20 + 10×30) / 20, got %s", second.Batch.Cost)

	batches, err := s.Batches().ListByTenant(ctx, tenant)
	require.NoError(t, err)
	assert.Len(t, batches, 1)
}

func TestAddStock_OtroVencimientoCreaLote(t *testing.T) {
	s := memory.NewStore()
	uc := newStock(s, nil)
	ctx := context.Background()
	expiry := time.Date(2026, 12, 1, 0, 0, 0, 0, time.UTC)

	_, err := uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "Milk", Quantity: dec("2"), ExpiryDate: &expiry})
	require.NoError(t, err)
	res, err := uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "Milk", Quantity: dec("3")})
	require.NoError(t, err)
	assert.False(t, res.Merged)
	assert.True(t, res.TotalStock.Equal(dec("5")))
}

func TestAddStock_CostoPorDefecto(t *testing.T) {
	s := memory.NewStore()
	uc := newStock(s, nil)
	ctx := context.Background()

	// Producto del catálogo por defecto: costo del catálogo.
	res, err := uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "Sugar", Quantity: dec("1")})
	require.NoError(t, err)
	assert.True(t, res.Batch.Cost.Equal(dec("36")))
	assert.True(t, res.Batch.Price.Equal(dec("45")))

	// Producto nuevo con precio: 75 % del precio.
	res, err = uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "kaju katli", Quantity: dec("1"), Price: ptr("800")})
	require.NoError(t, err)
	assert.Equal(t, "Kaju Katli", res.Batch.ItemName)
	assert.True(t, res.Batch.Cost.Equal(dec("600")))
}

func TestAddStock_ProductoNuevoEntraAlCatalogoYGeneraAlias(t *testing.T) {
	s := memory.NewStore()
	gen := &fakeAliasGen{done: make(chan struct{})}
	uc := newStock(s, gen)
	ctx := context.Background()

	res, err := uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "Murgi", Quantity: dec("4"), Price: ptr("220")})
	require.NoError(t, err)
	assert.True(t, res.NewItem)

	entry, err := s.Catalog().Get(ctx, tenant, "murgi")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Price.Equal(dec("220")))

	select {
	case <-gen.done:
	case <-time.After(time.Second):
		t.Fatal("no se generaron alias")
	}
	gen.mu.Lock()
	defer gen.mu.Unlock()
	assert.Equal(t, []string{"Murgi"}, gen.items)
}

func TestAddStock_EntradaInvalida(t *testing.T) {
	uc := newStock(memory.NewStore(), nil)
	cases := []appinventory.AddStockInput{
		{TenantID: tenant, ItemName: "", Quantity: dec("1")},
		{TenantID: tenant, ItemName: "Milk", Quantity: dec("0")},
		{TenantID: tenant, ItemName: "Milk", Quantity: dec("1"), Price: ptr("-1")},
	}
	for _, in := range cases {
		_, err := uc.AddStock(context.Background(), in)
		assert.ErrorIs(t, err, domain.ErrInvalidInput)
	}
}

func TestAddStockFromRequest_FechaInvalida(t *testing.T) {
	uc := newStock(memory.NewStore(), nil)
	_, err := uc.AddStockFromRequest(context.Background(), tenant, dto.AddStockRequest{ItemName: "Milk", Quantity: dec("1"), ExpiryDate: "01/12/2026"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

// ──────────────────────────────────────────────────────────────────────────────
// ReduceStock
// ──────────────────────────────────────────────────────────────────────────────

func TestReduceStock_FIFOSinVenta(t *testing.T) {
	s := memory.NewStore()
	uc := newStock(s, nil)
	ctx := context.Background()
	soon := time.Now().Add(24 * time.Hour)

	_, err := uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "Bread", Quantity: dec("2"), Cost: ptr("30"), ExpiryDate: &soon})
	require.NoError(t, err)
	_, err = uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "Bread", Quantity: dec("5"), Cost: ptr("32")})
	require.NoError(t, err)

	res, err := uc.ReduceStock(ctx, tenant, "bread", dec("3"))
	require.NoError(t, err)
	assert.True(t, res.Remaining.Equal(dec("4")))
	assert.True(t, res.CostValue.Equal(dec("92")), "2×30 + 1×32")

	sales, err := s.Sales().ListByPeriod(ctx, tenant, time.Time{}, time.Now().Add(time.Hour))
	require.NoError(t, err)
	assert.Empty(t, sales)
}

func TestReduceStock_Insuficiente(t *testing.T) {
	s := memory.NewStore()
	uc := newStock(s, nil)
	ctx := context.Background()
	_, err := uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "Bread", Quantity: dec("2")})
	require.NoError(t, err)

	_, err = uc.ReduceStock(ctx, tenant, "Bread", dec("3"))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	_, err = uc.ReduceStock(ctx, tenant, "Ghee", dec("1"))
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

// ──────────────────────────────────────────────────────────────────────────────
// ListInventory
// ──────────────────────────────────────────────────────────────────────────────

func TestListInventory_StockBajoPrimero(t *testing.T) {
	s := memory.NewStore()
	uc := newStock(s, nil)
	ctx := context.Background()
	expiry := time.Date(2026, 11, 20, 0, 0, 0, 0, time.UTC)

	_, err := uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "Atta", Quantity: dec("40"), Cost: ptr("30")})
	require.NoError(t, err)
	_, err = uc.AddStock(ctx, appinventory.AddStockInput{TenantID: tenant, ItemName: "Milk", Quantity: dec("2"), Cost: ptr("25"), ExpiryDate: &expiry})
	require.NoError(t, err)

	list, err := appinventory.NewReplenishmentUseCase(s.Batches(), s.Catalog(), nil, decimal.Zero).ListInventory(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, list.Items, 2)
	assert.Equal(t, 1, list.LowStockCount)

	milk := list.Items[0]
	assert.Equal(t, "Milk", milk.ItemName)
	assert.True(t, milk.LowStock)
	assert.True(t, milk.SuggestedOrderQty.Equal(dec("6")), "ceil(7.5 - 2)")
	require.NotNil(t, milk.NearestExpiry)
	assert.Equal(t, "2026-11-20", *milk.NearestExpiry)

	atta := list.Items[1]
	assert.False(t, atta.LowStock)
	assert.True(t, atta.StockValue.Equal(dec("1200")))
	assert.True(t, list.StockValue.Equal(dec("1250")))
}
