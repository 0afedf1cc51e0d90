//go:build integration

package postgres_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	pgxdecimal "github.com/jackc/pgx-shopspring-decimal"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/testcontainers/testcontainers-go"
	tcpostgres "github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"

	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/postgres"
)

const tenant = "shop-1"

// newTestPool levanta un PostgreSQL efímero con las migraciones aplicadas.
func newTestPool(t *testing.T) *pgxpool.Pool {
	t.Helper()
	ctx := context.Background()

	container, err := tcpostgres.Run(ctx,
		"postgres:16-alpine",
		tcpostgres.WithDatabase("kirana_test"),
		tcpostgres.WithUsername("postgres"),
		tcpostgres.WithPassword("postgres"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(60*time.Second)),
	)
	require.NoError(t, err)
	t.Cleanup(func() { _ = container.Terminate(context.Background()) })

	dsn, err := container.ConnectionString(ctx, "sslmode=disable")
	require.NoError(t, err)

	cfg, err := pgxpool.ParseConfig(dsn)
	require.NoError(t, err)
	cfg.AfterConnect = func(ctx context.Context, conn *pgx.Conn) error {
		pgxdecimal.Register(conn.TypeMap())
		return nil
	}
	pool, err := pgxpool.NewWithConfig(ctx, cfg)
	require.NoError(t, err)
	t.Cleanup(pool.Close)

	require.NoError(t, postgres.RunMigrations(pool))
	require.NoError(t, postgres.RunMigrations(pool), "segunda ejecución sin cambios")
	return pool
}

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func newBatch(item, qty string, expiry *time.Time) *entity.InventoryBatch {
	now := time.Now().UTC()
	return &entity.InventoryBatch{
		ID: uuid.New().String(), TenantID: tenant, ItemName: item, Quantity: d(qty),
		Price: d("60"), Cost: d("25"), ExpiryDate: expiry, CreatedAt: now, UpdatedAt: now,
	}
}

func TestPostgres_Repositorios(t *testing.T) {
	pool := newTestPool(t)
	ctx := context.Background()
	runner := postgres.NewTxRunner(pool)

	t.Run("lotes en orden FIFO", func(t *testing.T) {
		soon := time.Date(2030, 1, 5, 0, 0, 0, 0, time.UTC)
		none := newBatch("Milk", "3", nil)
		early := newBatch("Milk", "2", &soon)
		batches := postgres.NewBatchRepository(pool)
		require.NoError(t, batches.Create(ctx, none))
		require.NoError(t, batches.Create(ctx, early))

		err := runner.Run(ctx, func(r repository.TxRepos) error {
			list, err := r.Batches.ListByItemForUpdate(ctx, tenant, "milk")
			require.NoError(t, err)
			require.Len(t, list, 2)
			assert.Equal(t, early.ID, list[0].ID)
			assert.Equal(t, none.ID, list[1].ID)
			return nil
		})
		require.NoError(t, err)
	})

	t.Run("rollback descarta cambios", func(t *testing.T) {
		err := runner.Run(ctx, func(r repository.TxRepos) error {
			require.NoError(t, r.Dues.AddDue(ctx, tenant, "Ghost", d("10")))
			return domain.ErrInsufficientStock
		})
		require.ErrorIs(t, err, domain.ErrInsufficientStock)

		due, err := postgres.NewDueRepository(pool).Get(ctx, tenant, "Ghost")
		require.NoError(t, err)
		assert.Nil(t, due)
	})

	t.Run("saldo acumulado y nunca negativo", func(t *testing.T) {
		dues := postgres.NewDueRepository(pool)
		require.NoError(t, dues.AddDue(ctx, tenant, "Raju", d("100")))
		require.NoError(t, dues.AddDue(ctx, tenant, "raju", d("60")))

		due, err := dues.Get(ctx, tenant, "RAJU")
		require.NoError(t, err)
		require.NotNil(t, due)
		assert.True(t, due.TotalDue.Equal(d("160")))

		due.TotalDue = d("-1")
		assert.ErrorIs(t, dues.Update(ctx, due), domain.ErrLedgerInvariant)
	})

	t.Run("descuentos concurrentes se serializan", func(t *testing.T) {
		b := newBatch("Bread", "10", nil)
		require.NoError(t, postgres.NewBatchRepository(pool).Create(ctx, b))

		var wg sync.WaitGroup
		for i := 0; i < 10; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				_ = runner.Run(ctx, func(r repository.TxRepos) error {
					list, err := r.Batches.ListByItemForUpdate(ctx, tenant, "Bread")
					if err != nil {
						return err
					}
					list[0].Quantity = list[0].Quantity.Sub(decimal.NewFromInt(1))
					return r.Batches.Update(ctx, list[0])
				})
			}()
		}
		wg.Wait()

		list, err := postgres.NewBatchRepository(pool).ListByTenant(ctx, tenant)
		require.NoError(t, err)
		for _, got := range list {
			if got.ID == b.ID {
				assert.True(t, got.Quantity.IsZero(), "got %s", got.Quantity)
			}
		}
	})

	t.Run("ventas, liquidación y periodo", func(t *testing.T) {
		sales := postgres.NewSaleRepository(pool)
		tx := uuid.New().String()
		now := time.Now().UTC()
		for _, item := range []string{"Milk", "Bread"} {
			require.NoError(t, sales.Create(ctx, &entity.Sale{
				ID: uuid.New().String(), TenantID: tenant, TransactionID: tx, ItemName: item,
				Quantity: d("1"), TotalPrice: d("40"), TotalCost: d("30"), CustomerName: "Amit",
				PaymentMode: entity.PaymentModeUdhaar, CreatedAt: now,
			}))
		}
		n, err := sales.MarkSettled(ctx, tenant, "amit")
		require.NoError(t, err)
		assert.Equal(t, int64(2), n)

		list, err := sales.ListByPeriod(ctx, tenant, now.Add(-time.Minute), now.Add(time.Minute))
		require.NoError(t, err)
		assert.Len(t, list, 2)

		limited, err := sales.ListByCustomer(ctx, tenant, "Amit", 1)
		require.NoError(t, err)
		assert.Len(t, limited, 1)
	})

	t.Run("catálogo y alias", func(t *testing.T) {
		catalog := postgres.NewCatalogRepository(pool)
		cost := d("400")
		require.NoError(t, catalog.Upsert(ctx, &entity.CatalogEntry{TenantID: tenant, ItemName: "Ghee", Price: d("550"), Cost: &cost}))
		require.NoError(t, catalog.Upsert(ctx, &entity.CatalogEntry{TenantID: tenant, ItemName: "Ghee", Price: d("600")}))
		e, err := catalog.Get(ctx, tenant, "ghee")
		require.NoError(t, err)
		require.NotNil(t, e)
		assert.True(t, e.Price.Equal(d("600")))
		require.NotNil(t, e.Cost)
		assert.True(t, e.Cost.Equal(cost), "costo nil conserva el guardado")

		aliases := postgres.NewAliasRepository(pool)
		require.NoError(t, aliases.Create(ctx, &entity.Alias{Alias: "Doodh", ItemName: "Milk"}))
		assert.ErrorIs(t, aliases.Create(ctx, &entity.Alias{Alias: "doodh", ItemName: "Milk"}), domain.ErrDuplicate)
	})
}
