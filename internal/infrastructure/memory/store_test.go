package memory_test

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/memory"
)

const tenant = "tenant-1"

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func seedBatch(t *testing.T, s *memory.Store, id, item, qty string, expiry *time.Time) {
	t.Helper()
	require.NoError(t, s.Batches().Create(context.Background(), &entity.InventoryBatch{
		ID: id, TenantID: tenant, ItemName: item, Quantity: d(qty),
		Price: d("10"), Cost: d("8"), ExpiryDate: expiry, CreatedAt: time.Now(),
	}))
}

// ──────────────────────────────────────────────────────────────────────────────
// Transacciones
// ──────────────────────────────────────────────────────────────────────────────

func TestRun_CommitAplicaEscrituras(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedBatch(t, s, "b1", "Milk", "5", nil)

	err := s.Run(ctx, func(r repository.TxRepos) error {
		bs, err := r.Batches.ListByItemForUpdate(ctx, tenant, "milk")
		require.NoError(t, err)
		require.Len(t, bs, 1)
		bs[0].Quantity = d("2")
		return r.Batches.Update(ctx, bs[0])
	})
	require.NoError(t, err)

	bs, err := s.Batches().ListByTenant(ctx, tenant)
	require.NoError(t, err)
	assert.True(t, bs[0].Quantity.Equal(d("2")))
}

func TestRun_ErrorDescartaEscrituras(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedBatch(t, s, "b1", "Milk", "5", nil)
	boom := errors.New("boom")

	err := s.Run(ctx, func(r repository.TxRepos) error {
		bs, _ := r.Batches.ListByItemForUpdate(ctx, tenant, "Milk")
		bs[0].Quantity = decimal.Zero
		require.NoError(t, r.Batches.Update(ctx, bs[0]))
		require.NoError(t, r.Dues.AddDue(ctx, tenant, "Raju", d("50")))
		return boom
	})
	require.ErrorIs(t, err, boom)

	bs, _ := s.Batches().ListByTenant(ctx, tenant)
	assert.True(t, bs[0].Quantity.Equal(d("5")), "el rollback no debe tocar el lote")
	due, err := s.Dues().Get(ctx, tenant, "Raju")
	require.NoError(t, err)
	assert.Nil(t, due)
}

func TestRun_LecturasSonCopias(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedBatch(t, s, "b1", "Milk", "5", nil)

	bs, _ := s.Batches().ListByTenant(ctx, tenant)
	bs[0].Quantity = decimal.Zero

	again, _ := s.Batches().ListByTenant(ctx, tenant)
	assert.True(t, again[0].Quantity.Equal(d("5")))
}

func TestRun_BloqueoSerializaMismoProducto(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	seedBatch(t, s, "b1", "Milk", "10", nil)

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_ = s.Run(ctx, func(r repository.TxRepos) error {
				bs, err := r.Batches.ListByItemForUpdate(ctx, tenant, "Milk")
				if err != nil {
					return err
				}
				bs[0].Quantity = bs[0].Quantity.Sub(decimal.NewFromInt(1))
				return r.Batches.Update(ctx, bs[0])
			})
		}()
	}
	wg.Wait()

	bs, _ := s.Batches().ListByTenant(ctx, tenant)
	assert.True(t, bs[0].Quantity.IsZero(), "10 descuentos concurrentes de 1 dejan 0, got %s", bs[0].Quantity)
}

func TestRun_ContextoCanceladoMientrasEsperaBloqueo(t *testing.T) {
	s := memory.NewStore()
	seedBatch(t, s, "b1", "Milk", "10", nil)

	locked := make(chan struct{})
	done := make(chan struct{})
	go func() {
		_ = s.Run(context.Background(), func(r repository.TxRepos) error {
			_, _ = r.Batches.ListByItemForUpdate(context.Background(), tenant, "Milk")
			close(locked)
			<-done
			return nil
		})
	}()
	<-locked

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	err := s.Run(ctx, func(r repository.TxRepos) error {
		_, err := r.Batches.ListByItemForUpdate(ctx, tenant, "Milk")
		return err
	})
	close(done)
	assert.ErrorIs(t, err, context.DeadlineExceeded)
}

// ──────────────────────────────────────────────────────────────────────────────
// Repositorios
// ──────────────────────────────────────────────────────────────────────────────

func TestBatchRepo_OrdenFIFO(t *testing.T) {
	s := memory.NewStore()
	soon := time.Date(2026, 1, 5, 0, 0, 0, 0, time.UTC)
	late := time.Date(2026, 3, 5, 0, 0, 0, 0, time.UTC)
	seedBatch(t, s, "none", "Milk", "1", nil)
	seedBatch(t, s, "late", "Milk", "1", &late)
	seedBatch(t, s, "soon", "Milk", "1", &soon)
	seedBatch(t, s, "other", "Bread", "1", nil)

	bs, err := s.Batches().ListByItemForUpdate(context.Background(), tenant, "MILK")
	require.NoError(t, err)
	require.Len(t, bs, 3)
	assert.Equal(t, []string{"soon", "late", "none"}, []string{bs[0].ID, bs[1].ID, bs[2].ID})
}

func TestBatchRepo_UpdateInexistente(t *testing.T) {
	s := memory.NewStore()
	err := s.Batches().Update(context.Background(), &entity.InventoryBatch{ID: "x"})
	assert.ErrorIs(t, err, domain.ErrNotFound)
}

func TestDueRepo_AddDueYNegativo(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	dues := s.Dues()

	require.NoError(t, dues.AddDue(ctx, tenant, "Raju", d("100")))
	require.NoError(t, dues.AddDue(ctx, tenant, "raju", d("50")))

	due, err := dues.Get(ctx, tenant, "Raju")
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.True(t, due.TotalDue.Equal(d("150")))

	due.TotalDue = d("-1")
	assert.ErrorIs(t, dues.Update(ctx, due), domain.ErrLedgerInvariant)
}

func TestDueRepo_ListByTenantOrdenadoPorSaldo(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Dues().AddDue(ctx, tenant, "Amit", d("20")))
	require.NoError(t, s.Dues().AddDue(ctx, tenant, "Raju", d("90")))
	require.NoError(t, s.Dues().AddDue(ctx, "otro", "Sita", d("500")))

	list, err := s.Dues().ListByTenant(ctx, tenant)
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "Raju", list[0].CustomerName)
}

func TestSaleRepo_MarkSettledSoloFiadoPendiente(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	sales := s.Sales()
	now := time.Now()
	require.NoError(t, sales.Create(ctx, &entity.Sale{ID: "1", TenantID: tenant, CustomerName: "Raju", PaymentMode: entity.PaymentModeUdhaar, CreatedAt: now}))
	require.NoError(t, sales.Create(ctx, &entity.Sale{ID: "2", TenantID: tenant, CustomerName: "Raju", PaymentMode: entity.PaymentModeUdhaar, CreatedAt: now.Add(time.Second)}))
	require.NoError(t, sales.Create(ctx, &entity.Sale{ID: "3", TenantID: tenant, CustomerName: "Raju", PaymentMode: entity.PaymentModeCash, IsSettled: true, CreatedAt: now}))

	n, err := sales.MarkSettled(ctx, tenant, "raju")
	require.NoError(t, err)
	assert.Equal(t, int64(2), n)

	list, err := sales.ListByCustomer(ctx, tenant, "Raju", 0)
	require.NoError(t, err)
	require.Len(t, list, 3)
	assert.Equal(t, "2", list[0].ID, "más reciente primero")
	for _, sale := range list {
		assert.True(t, sale.IsSettled)
	}
}

func TestSaleRepo_ListByPeriodSemiabierto(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	from := time.Date(2026, 5, 1, 0, 0, 0, 0, time.UTC)
	to := from.Add(24 * time.Hour)
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: "in", TenantID: tenant, CreatedAt: from}))
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{ID: "out", TenantID: tenant, CreatedAt: to}))

	list, err := s.Sales().ListByPeriod(ctx, tenant, from, to)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "in", list[0].ID)
}

func TestCatalogRepo_GetInexistenteDevuelveNil(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	e, err := s.Catalog().Get(ctx, tenant, "Ghee")
	require.NoError(t, err)
	assert.Nil(t, e)

	require.NoError(t, s.Catalog().Upsert(ctx, &entity.CatalogEntry{TenantID: tenant, ItemName: "Ghee", Price: d("600")}))
	e, err = s.Catalog().Get(ctx, tenant, "ghee")
	require.NoError(t, err)
	require.NotNil(t, e)
	assert.True(t, e.Price.Equal(d("600")))
}

func TestAliasRepo_Duplicado(t *testing.T) {
	s := memory.NewStore()
	ctx := context.Background()
	require.NoError(t, s.Aliases().Create(ctx, &entity.Alias{Alias: "Chicken", ItemName: "Murgi"}))
	assert.ErrorIs(t, s.Aliases().Create(ctx, &entity.Alias{Alias: "chicken", ItemName: "Murgi"}), domain.ErrDuplicate)

	list, err := s.Aliases().List(ctx)
	require.NoError(t, err)
	require.Len(t, list, 1)
	assert.Equal(t, "chicken", list[0].Alias)
}
