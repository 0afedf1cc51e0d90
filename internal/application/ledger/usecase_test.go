package ledger_test

import (
	"context"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kirana-api/internal/application/ledger"
	"github.com/jhoicas/Kirana-api/internal/application/ports"
	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const tenant = "00000000-0000-0000-0000-000000000001"

func dec(s string) *decimal.Decimal {
	v := decimal.RequireFromString(s)
	return &v
}

type mockPDF struct{ mock.Mock }

func (m *mockPDF) GenerateStatementPDF(ctx context.Context, data ports.StatementData) ([]byte, error) {
	args := m.Called(ctx, data)
	b, _ := args.Get(0).([]byte)
	return b, args.Error(1)
}

// setup crea un cliente con dos ventas a crédito (total 150) y una venta al contado.
func setup(t *testing.T) (*memory.Store, *ledger.LedgerUseCase) {
	t.Helper()
	s := memory.NewStore()
	ctx := context.Background()
	now := time.Now()
	for i, total := range []string{"100", "50"} {
		require.NoError(t, s.Sales().Create(ctx, &entity.Sale{
			ID: string(rune('a' + i)), TenantID: tenant, ItemName: "Milk", Quantity: decimal.NewFromInt(1),
			TotalPrice: *dec(total), CustomerName: "Raju", PaymentMode: entity.PaymentModeUdhaar, CreatedAt: now,
		}))
	}
	require.NoError(t, s.Sales().Create(ctx, &entity.Sale{
		ID: "cash", TenantID: tenant, ItemName: "Bread", TotalPrice: *dec("40"),
		CustomerName: "Raju", PaymentMode: entity.PaymentModeCash, IsSettled: true, CreatedAt: now,
	}))
	require.NoError(t, s.Dues().AddDue(ctx, tenant, "Raju", *dec("150")))
	return s, ledger.NewLedgerUseCase(s, s.Dues(), s.Sales(), nil, nil, zerolog.Nop())
}

func dueOf(t *testing.T, s *memory.Store, name string) decimal.Decimal {
	t.Helper()
	d, err := s.Dues().Get(context.Background(), tenant, name)
	require.NoError(t, err)
	require.NotNil(t, d)
	return d.TotalDue
}

// ──────────────────────────────────────────────────────────────────────────────
// Settle
// ──────────────────────────────────────────────────────────────────────────────

func TestSettle_LiquidacionTotal(t *testing.T) {
	s, uc := setup(t)
	ctx := context.Background()

	res, err := uc.Settle(ctx, tenant, "raju", nil)
	require.NoError(t, err)
	assert.Equal(t, ledger.SettlementFull, res.Kind)
	assert.True(t, res.Paid.Equal(*dec("150")))
	assert.Equal(t, int64(2), res.SettledSales)
	assert.True(t, dueOf(t, s, "Raju").IsZero())

	sales, err := s.Sales().ListByCustomer(ctx, tenant, "Raju", 0)
	require.NoError(t, err)
	for _, sale := range sales {
		assert.True(t, sale.IsSettled, sale.ID)
	}
}

func TestSettle_MontoMayorAlSaldoLiquidaTodo(t *testing.T) {
	s, uc := setup(t)

	res, err := uc.Settle(context.Background(), tenant, "Raju", dec("500"))
	require.NoError(t, err)
	assert.Equal(t, ledger.SettlementFull, res.Kind)
	assert.True(t, res.Paid.Equal(*dec("150")), "nunca se cobra más que el saldo")
	assert.True(t, dueOf(t, s, "Raju").IsZero())
}

func TestSettle_AbonoParcial(t *testing.T) {
	s, uc := setup(t)
	ctx := context.Background()

	res, err := uc.Settle(ctx, tenant, "Raju", dec("60"))
	require.NoError(t, err)
	assert.Equal(t, ledger.SettlementPartial, res.Kind)
	assert.True(t, res.RemainingDue.Equal(*dec("90")))
	assert.True(t, dueOf(t, s, "Raju").Equal(*dec("90")))

	sales, err := s.Sales().ListByCustomer(ctx, tenant, "Raju", 0)
	require.NoError(t, err)
	var payments, pending int
	for _, sale := range sales {
		if sale.IsPayment() {
			payments++
			assert.True(t, sale.TotalPrice.Equal(*dec("-60")))
			assert.True(t, sale.IsSettled)
			assert.Equal(t, entity.PaymentModeCash, sale.PaymentMode)
			continue
		}
		if !sale.IsSettled {
			pending++
		}
	}
	assert.Equal(t, 1, payments)
	assert.Equal(t, 2, pending, "un abono parcial no liquida ventas individuales")
}

func TestSettle_SinSaldo(t *testing.T) {
	s, uc := setup(t)
	ctx := context.Background()

	_, err := uc.Settle(ctx, tenant, "Amit", nil)
	assert.ErrorIs(t, err, domain.ErrNoOutstandingDue)
	amit, err := s.Dues().Get(ctx, tenant, "Amit")
	require.NoError(t, err)
	assert.Nil(t, amit, "no se crea fila de saldo")

	_, err = uc.Settle(ctx, tenant, "Raju", nil)
	require.NoError(t, err)
	before, err := s.Sales().ListByCustomer(ctx, tenant, "Raju", 0)
	require.NoError(t, err)

	for _, amount := range []*decimal.Decimal{dec("10"), nil} {
		_, err = uc.Settle(ctx, tenant, "Raju", amount)
		assert.ErrorIs(t, err, domain.ErrNoOutstandingDue, "saldo en cero")
	}

	assert.True(t, dueOf(t, s, "Raju").IsZero(), "sin mutación del saldo")
	after, err := s.Sales().ListByCustomer(ctx, tenant, "Raju", 0)
	require.NoError(t, err)
	assert.Len(t, after, len(before), "sin filas de abono nuevas")
	for i := range after {
		assert.Equal(t, before[i].ID, after[i].ID)
		assert.Equal(t, before[i].IsSettled, after[i].IsSettled)
	}
}

func TestSettle_MontoInvalido(t *testing.T) {
	s, uc := setup(t)
	for _, amount := range []string{"0", "-5"} {
		_, err := uc.Settle(context.Background(), tenant, "Raju", dec(amount))
		assert.ErrorIs(t, err, domain.ErrInvalidSettlementAmount, amount)
	}
	assert.True(t, dueOf(t, s, "Raju").Equal(*dec("150")), "sin mutación")
}

func TestSettle_ClienteWalkIn(t *testing.T) {
	_, uc := setup(t)
	_, err := uc.Settle(context.Background(), tenant, "walk-in", nil)
	assert.ErrorIs(t, err, domain.ErrNoOutstandingDue)
}

// ──────────────────────────────────────────────────────────────────────────────
// Listado y estado de cuenta
// ──────────────────────────────────────────────────────────────────────────────

func TestListDues_SoloPendientes(t *testing.T) {
	s, uc := setup(t)
	ctx := context.Background()
	require.NoError(t, s.Dues().AddDue(ctx, tenant, "Amit", *dec("20")))
	_, err := uc.Settle(ctx, tenant, "Amit", nil)
	require.NoError(t, err)

	all, err := uc.ListDues(ctx, tenant, false)
	require.NoError(t, err)
	assert.Len(t, all, 2)

	outstanding, err := uc.ListDues(ctx, tenant, true)
	require.NoError(t, err)
	require.Len(t, outstanding, 1)
	assert.Equal(t, "Raju", outstanding[0].CustomerName)
}

func TestStatementPDF(t *testing.T) {
	s, _ := setup(t)
	pdf := new(mockPDF)
	pdf.On("GenerateStatementPDF", mock.Anything, mock.MatchedBy(func(d ports.StatementData) bool {
		return d.Due.CustomerName == "Raju" && len(d.Sales) == 3
	})).Return([]byte("%PDF"), nil)
	uc := ledger.NewLedgerUseCase(s, s.Dues(), s.Sales(), pdf, nil, zerolog.Nop())

	out, err := uc.StatementPDF(context.Background(), tenant, "raju")
	require.NoError(t, err)
	assert.Equal(t, []byte("%PDF"), out)
	pdf.AssertExpectations(t)

	_, err = uc.StatementPDF(context.Background(), tenant, "Nadie")
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
