package order

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

const testTenant = "00000000-0000-0000-0000-000000000001"

type mockLLM struct{ mock.Mock }

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

func dec(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func addBatch(t *testing.T, s *memory.Store, id, item, qty, cost string, expiry *time.Time) {
	t.Helper()
	require.NoError(t, s.Batches().Create(context.Background(), &entity.InventoryBatch{
		ID: id, TenantID: testTenant, ItemName: item, Quantity: dec(qty),
		Cost: dec(cost), ExpiryDate: expiry, CreatedAt: time.Now(),
	}))
}

func qtyOf(t *testing.T, s *memory.Store, id string) decimal.Decimal {
	t.Helper()
	bs, err := s.Batches().ListByTenant(context.Background(), testTenant)
	require.NoError(t, err)
	for _, b := range bs {
		if b.ID == id {
			return b.Quantity
		}
	}
	t.Fatalf("lote %s no encontrado", id)
	return decimal.Zero
}

func newEngine(s *memory.Store) *FulfillmentEngine {
	return NewFulfillmentEngine(s, parser.DefaultCatalog(), nil, zerolog.Nop())
}

type staticAliases parser.Aliases

func (a staticAliases) Aliases(context.Context) (parser.Aliases, error) {
	return parser.Aliases(a), nil
}

func newParseUseCase(s *memory.Store, llm *mockLLM, aliases AliasProvider) *ParseUseCase {
	resolver := NewCatalogResolver(s.Catalog(), s.Batches(), nil)
	var fb *FallbackDelegator
	if llm != nil {
		fb = NewFallbackDelegator(llm, nil, time.Second, zerolog.Nop())
	}
	return NewParseUseCase(resolver, aliases, fb, parser.DefaultRuleSet(), nil, zerolog.Nop())
}

// ──────────────────────────────────────────────────────────────────────────────
// Fallback
// ──────────────────────────────────────────────────────────────────────────────

func TestFallback_RespuestaValida(t *testing.T) {
	llm := new(mockLLM)
	llm.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"item": "milk", "qty": 2, "payment_mode": "Udhaar", "customer_name": "raju"}]`, nil)

	res := NewFallbackDelegator(llm, nil, time.Second, zerolog.Nop()).
		Resolve(context.Background(), "do dudu", parser.DefaultCatalog())

	require.Equal(t, FallbackMatched, res.Status)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "Milk", res.Lines[0].Item)
	assert.True(t, res.Lines[0].Quantity.Equal(dec("2")))
	assert.True(t, res.Lines[0].UnitPrice.Equal(dec("60")))
	assert.Equal(t, entity.PaymentModeUdhaar, res.PaymentMode)
	assert.Equal(t, "Raju", res.CustomerName)
	llm.AssertExpectations(t)
}

func TestFallback_BloqueMarkdownYEnvelope(t *testing.T) {
	llm := new(mockLLM)
	llm.On("Complete", mock.Anything, mock.Anything).
		Return("Here you go:\n```json\n{\"items\": [{\"item\": \"Sugar\", \"qty\": \"3\"}, {\"item\": \"Sugar\", \"qty\": 1}]}\n```", nil)

	res := NewFallbackDelegator(llm, nil, time.Second, zerolog.Nop()).
		Resolve(context.Background(), "cheeeni teen", parser.DefaultCatalog())

	require.Equal(t, FallbackMatched, res.Status)
	require.Len(t, res.Lines, 1, "los duplicados se descartan")
	assert.True(t, res.Lines[0].Quantity.Equal(dec("3")))
}

func TestFallback_ProductoFueraDelCatalogo(t *testing.T) {
	llm := new(mockLLM)
	llm.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"item": "Caviar", "qty": 1}, {"item": "Milk", "qty": 0}]`, nil)

	res := NewFallbackDelegator(llm, nil, time.Second, zerolog.Nop()).
		Resolve(context.Background(), "caviar", parser.DefaultCatalog())

	assert.Equal(t, FallbackEmpty, res.Status)
	assert.Empty(t, res.Lines)
}

func TestFallback_ErrorDelModelo(t *testing.T) {
	llm := new(mockLLM)
	llm.On("Complete", mock.Anything, mock.Anything).Return("", errors.New("503"))

	res := NewFallbackDelegator(llm, nil, time.Second, zerolog.Nop()).
		Resolve(context.Background(), "xyz", parser.DefaultCatalog())

	assert.Equal(t, FallbackUnavailable, res.Status)
	assert.ErrorIs(t, res.Err, domain.ErrDelegateUnavailable)
}

func TestFallback_JSONInvalido(t *testing.T) {
	llm := new(mockLLM)
	llm.On("Complete", mock.Anything, mock.Anything).Return("no lo sé", nil)

	res := NewFallbackDelegator(llm, nil, time.Second, zerolog.Nop()).
		Resolve(context.Background(), "xyz", parser.DefaultCatalog())

	assert.Equal(t, FallbackUnavailable, res.Status)
}

func TestFallback_SinModelo(t *testing.T) {
	var d *FallbackDelegator
	res := d.Resolve(context.Background(), "xyz", parser.DefaultCatalog())
	assert.Equal(t, FallbackUnavailable, res.Status)
}

func TestExtractJSON(t *testing.T) {
	cases := map[string]string{
		"[]":                        "[]",
		"```json\n[{\"a\":1}]\n```": `[{"a":1}]`,
		"```\n{\"a\":1}\n```":       `{"a":1}`,
		"texto [1,2] más":           "[1,2]",
		"nada":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, extractJSON(in), in)
	}
}

// ──────────────────────────────────────────────────────────────────────────────
// ParseUseCase
// ──────────────────────────────────────────────────────────────────────────────

func TestParse_LocalNoConsultaModelo(t *testing.T) {
	llm := new(mockLLM)
	uc := newParseUseCase(memory.NewStore(), llm, nil)

	res, err := uc.Parse(context.Background(), testTenant, "2 milk 3 bread")
	require.NoError(t, err)
	assert.Equal(t, SourceLocal, res.Source)
	assert.Equal(t, FallbackSkipped, res.FallbackStatus)
	require.Len(t, res.Lines, 2)
	llm.AssertNotCalled(t, "Complete", mock.Anything, mock.Anything)
}

func TestParse_VacioConsultaModeloUnaVez(t *testing.T) {
	llm := new(mockLLM)
	llm.On("Complete", mock.Anything, mock.Anything).Return(`[]`, nil)
	uc := newParseUseCase(memory.NewStore(), llm, nil)

	res, err := uc.Parse(context.Background(), testTenant, "hello bhaiya kaise ho")
	require.ErrorIs(t, err, domain.ErrParseEmpty)
	require.NotNil(t, res)
	assert.Equal(t, SourceNone, res.Source)
	assert.Equal(t, FallbackEmpty, res.FallbackStatus)
	llm.AssertNumberOfCalls(t, "Complete", 1)
}

func TestParse_FallbackCompletaMetadatos(t *testing.T) {
	llm := new(mockLLM)
	llm.On("Complete", mock.Anything, mock.Anything).
		Return(`[{"item": "Sugar", "qty": 2, "payment_mode": "Udhaar", "customer_name": "Amit"}]`, nil)
	uc := newParseUseCase(memory.NewStore(), llm, nil)

	res, err := uc.Parse(context.Background(), testTenant, "hello bhaiya kaise ho")
	require.NoError(t, err)
	assert.Equal(t, SourceFallback, res.Source)
	assert.Equal(t, entity.PaymentModeUdhaar, res.PaymentMode)
	assert.Equal(t, "Amit", res.CustomerName)
}

func TestParse_TextoVacio(t *testing.T) {
	uc := newParseUseCase(memory.NewStore(), nil, nil)
	_, err := uc.Parse(context.Background(), testTenant, "   ")
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestParse_AliasDeLaTienda(t *testing.T) {
	uc := newParseUseCase(memory.NewStore(), nil, staticAliases{"chicken": "Murgi"})
	s := memory.NewStore()
	require.NoError(t, s.Catalog().Upsert(context.Background(), &entity.CatalogEntry{TenantID: testTenant, ItemName: "Murgi", Price: dec("200")}))
	uc.resolver = NewCatalogResolver(s.Catalog(), s.Batches(), nil)

	res, err := uc.Parse(context.Background(), testTenant, "2 chicken")
	require.NoError(t, err)
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "Murgi", res.Lines[0].Item)
	assert.True(t, res.Lines[0].UnitPrice.Equal(dec("200")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Fulfillment
// ──────────────────────────────────────────────────────────────────────────────

func TestFulfill_FIFOEntreDosLotes(t *testing.T) {
	s := memory.NewStore()
	soon := time.Now().Add(48 * time.Hour)
	addBatch(t, s, "a", "Milk", "2", "10", &soon)
	addBatch(t, s, "b", "Milk", "5", "20", nil)

	res, err := newEngine(s).Fulfill(context.Background(), FulfillInput{
		TenantID: testTenant,
		Lines:    []parser.OrderLine{{Item: "Milk", Quantity: dec("4")}},
	})
	require.NoError(t, err)
	require.Len(t, res.Succeeded, 1)
	assert.True(t, qtyOf(t, s, "a").IsZero())
	assert.True(t, qtyOf(t, s, "b").Equal(dec("3")))
	assert.True(t, res.TotalCost.Equal(dec("60")), "2×10 + 2×20")
	assert.True(t, res.TotalRevenue.Equal(dec("240")), "precio por defecto 60")
	assert.Equal(t, entity.PaymentModeCash, res.PaymentMode)
	assert.Equal(t, entity.WalkInCustomer, res.CustomerName)
}

func TestFulfill_StockInsuficienteNoTocaLotes(t *testing.T) {
	s := memory.NewStore()
	addBatch(t, s, "a", "Milk", "2", "10", nil)
	addBatch(t, s, "b", "Milk", "5", "20", nil)
	addBatch(t, s, "c", "Bread", "4", "30", nil)

	res, err := newEngine(s).Fulfill(context.Background(), FulfillInput{
		TenantID: testTenant,
		Lines: []parser.OrderLine{
			{Item: "Milk", Quantity: dec("10")},
			{Item: "Bread", Quantity: dec("1")},
		},
	})
	require.NoError(t, err)
	require.Len(t, res.Failed, 1)
	require.Len(t, res.Succeeded, 1)
	assert.Equal(t, "Milk", res.Failed[0].Item)
	assert.True(t, res.Failed[0].Available.Equal(dec("7")))
	assert.ErrorIs(t, res.Failed[0].Err, domain.ErrInsufficientStock)
	assert.True(t, qtyOf(t, s, "a").Equal(dec("2")))
	assert.True(t, qtyOf(t, s, "b").Equal(dec("5")))
	assert.True(t, qtyOf(t, s, "c").Equal(dec("3")))
}

func TestFulfill_FiadoSumaSaldoYCompartenTransaccion(t *testing.T) {
	s := memory.NewStore()
	addBatch(t, s, "a", "Milk", "5", "25", nil)
	addBatch(t, s, "b", "Bread", "5", "30", nil)
	ctx := context.Background()

	res, err := newEngine(s).Fulfill(ctx, FulfillInput{
		TenantID:     testTenant,
		PaymentMode:  entity.PaymentModeUdhaar,
		CustomerName: "raju",
		Lines: []parser.OrderLine{
			{Item: "Milk", Quantity: dec("2")},
			{Item: "Bread", Quantity: dec("1")},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, "Raju", res.CustomerName)

	due, err := s.Dues().Get(ctx, testTenant, "Raju")
	require.NoError(t, err)
	require.NotNil(t, due)
	assert.True(t, due.TotalDue.Equal(dec("160")), "2×60 + 1×40, got %s", due.TotalDue)

	sales, err := s.Sales().ListByCustomer(ctx, testTenant, "Raju", 0)
	require.NoError(t, err)
	require.Len(t, sales, 2)
	for _, sale := range sales {
		assert.Equal(t, res.TransactionID, sale.TransactionID)
		assert.False(t, sale.IsSettled)
		assert.Equal(t, entity.PaymentModeUdhaar, sale.PaymentMode)
	}
}

func TestFulfill_FiadoSinClienteNoCreaSaldo(t *testing.T) {
	s := memory.NewStore()
	addBatch(t, s, "a", "Milk", "5", "25", nil)
	ctx := context.Background()

	_, err := newEngine(s).Fulfill(ctx, FulfillInput{
		TenantID:    testTenant,
		PaymentMode: entity.PaymentModeUdhaar,
		Lines:       []parser.OrderLine{{Item: "Milk", Quantity: dec("1")}},
	})
	require.NoError(t, err)
	dues, err := s.Dues().ListByTenant(ctx, testTenant)
	require.NoError(t, err)
	assert.Empty(t, dues)
}

func TestFulfill_PrecioDeLineaSeAprende(t *testing.T) {
	s := memory.NewStore()
	addBatch(t, s, "a", "Kaju", "3", "300", nil)
	ctx := context.Background()

	res, err := newEngine(s).Fulfill(ctx, FulfillInput{
		TenantID: testTenant,
		Lines:    []parser.OrderLine{{Item: "Kaju", Quantity: dec("1"), UnitPrice: dec("380")}},
	})
	require.NoError(t, err)
	assert.True(t, res.TotalRevenue.Equal(dec("380")))

	entry, err := s.Catalog().Get(ctx, testTenant, "Kaju")
	require.NoError(t, err)
	require.NotNil(t, entry)
	assert.True(t, entry.Price.Equal(dec("380")))
}

// ──────────────────────────────────────────────────────────────────────────────
// Chat
// ──────────────────────────────────────────────────────────────────────────────

func TestChat_ExitoParcial(t *testing.T) {
	s := memory.NewStore()
	addBatch(t, s, "a", "Milk", "5", "25", nil)
	addBatch(t, s, "b", "Bread", "1", "30", nil)
	chat := NewChatUseCase(newParseUseCase(s, nil, nil), newEngine(s))

	res, err := chat.Handle(context.Background(), testTenant, "2 milk 3 bread")
	require.NoError(t, err)
	assert.True(t, res.Success)
	assert.Equal(t, "✅ Sold 2 Milk for ₹120 | ❌ Failed: Bread (only 1 left)", res.Message)
	assert.Equal(t, warnSomeFailed, res.Warning)
}

func TestChat_NoEntendido(t *testing.T) {
	s := memory.NewStore()
	chat := NewChatUseCase(newParseUseCase(s, nil, nil), newEngine(s))

	res, err := chat.Handle(context.Background(), testTenant, "hello bhaiya kaise ho")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, msgNotUnderstood, res.Message)
}

func TestChat_TodoFalla(t *testing.T) {
	s := memory.NewStore()
	chat := NewChatUseCase(newParseUseCase(s, nil, nil), newEngine(s))

	res, err := chat.Handle(context.Background(), testTenant, "2 milk")
	require.NoError(t, err)
	assert.False(t, res.Success)
	assert.Equal(t, "❌ FAILED: Milk (only 0 left)", res.Message)
	assert.Equal(t, warnNoStock, res.Warning)
}
