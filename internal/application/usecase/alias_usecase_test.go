package usecase_test

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kirana-api/internal/application/dto"
	"github.com/jhoicas/Kirana-api/internal/application/usecase"
	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
	"github.com/jhoicas/Kirana-api/internal/infrastructure/memory"
)

// ──────────────────────────────────────────────────────────────────────────────
// Mocks
// ──────────────────────────────────────────────────────────────────────────────

type mockLLM struct{ mock.Mock }

func (m *mockLLM) Complete(ctx context.Context, prompt string) (string, error) {
	args := m.Called(ctx, prompt)
	return args.String(0), args.Error(1)
}

type mockCache struct{ mock.Mock }

func (m *mockCache) Get(ctx context.Context) (map[string]string, bool, error) {
	args := m.Called(ctx)
	v, _ := args.Get(0).(map[string]string)
	return v, args.Bool(1), args.Error(2)
}

func (m *mockCache) Set(ctx context.Context, aliases map[string]string, ttl time.Duration) error {
	return m.Called(ctx, aliases, ttl).Error(0)
}

func (m *mockCache) Invalidate(ctx context.Context) error {
	return m.Called(ctx).Error(0)
}

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAliases_CacheHitNoLeeRepositorio(t *testing.T) {
	cache := new(mockCache)
	cache.On("Get", mock.Anything).Return(map[string]string{"chicken": "Murgi"}, true, nil)
	uc := usecase.NewAliasUseCase(memory.NewStore().Aliases(), cache, time.Minute, nil, nil, 0, zerolog.Nop())

	got, err := uc.Aliases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, parser.Aliases{"chicken": "Murgi"}, got)
	cache.AssertNotCalled(t, "Set", mock.Anything, mock.Anything, mock.Anything)
}

func TestAliases_CacheMissCargaYGuarda(t *testing.T) {
	s := memory.NewStore()
	cache := new(mockCache)
	cache.On("Get", mock.Anything).Return(nil, false, errors.New("redis caído"))
	cache.On("Set", mock.Anything, map[string]string{"chicken": "Murgi"}, time.Minute).Return(nil)
	cache.On("Invalidate", mock.Anything).Return(nil)
	uc := usecase.NewAliasUseCase(s.Aliases(), cache, time.Minute, nil, nil, 0, zerolog.Nop())

	_, err := uc.Create(context.Background(), dto.CreateAliasRequest{Alias: " Chicken ", ItemName: "murgi"})
	require.NoError(t, err)

	got, err := uc.Aliases(context.Background())
	require.NoError(t, err)
	assert.Equal(t, parser.Aliases{"chicken": "Murgi"}, got)
	cache.AssertExpectations(t)
}

func TestCreate_AliasIgualAlProductoEsInvalido(t *testing.T) {
	uc := usecase.NewAliasUseCase(memory.NewStore().Aliases(), nil, 0, nil, nil, 0, zerolog.Nop())
	_, err := uc.Create(context.Background(), dto.CreateAliasRequest{Alias: "milk", ItemName: "Milk"})
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestCreate_Duplicado(t *testing.T) {
	uc := usecase.NewAliasUseCase(memory.NewStore().Aliases(), nil, 0, nil, nil, 0, zerolog.Nop())
	_, err := uc.Create(context.Background(), dto.CreateAliasRequest{Alias: "doodh", ItemName: "Milk"})
	require.NoError(t, err)
	_, err = uc.Create(context.Background(), dto.CreateAliasRequest{Alias: "DOODH", ItemName: "Milk"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
}

func TestGenerateForItem_GuardaVariantesNuevas(t *testing.T) {
	s := memory.NewStore()
	llm := new(mockLLM)
	llm.On("Complete", mock.Anything, mock.MatchedBy(func(p string) bool { return len(p) > 0 })).
		Return("```json\n[\"murgee\", \"Murgi\", \"murghi\", \"murgee\", \"x\"]\n```", nil)
	uc := usecase.NewAliasUseCase(s.Aliases(), nil, 0, llm, nil, time.Second, zerolog.Nop())

	n, err := uc.GenerateForItem(context.Background(), "murgi")
	require.NoError(t, err)
	assert.Equal(t, 2, n, "se descartan el propio nombre, duplicados y alias de 1 letra")

	list, err := uc.List(context.Background())
	require.NoError(t, err)
	require.Len(t, list, 2)
	assert.Equal(t, "murgee", list[0].Alias)
	assert.Equal(t, "Murgi", list[0].ItemName)
}

func TestGenerateForItem_SinModelo(t *testing.T) {
	uc := usecase.NewAliasUseCase(memory.NewStore().Aliases(), nil, 0, nil, nil, 0, zerolog.Nop())
	_, err := uc.GenerateForItem(context.Background(), "Murgi")
	assert.ErrorIs(t, err, domain.ErrDelegateUnavailable)
}

func TestSeedDefaults_SoloProductosDelCatalogo(t *testing.T) {
	s := memory.NewStore()
	uc := usecase.NewAliasUseCase(s.Aliases(), nil, 0, nil, nil, 0, zerolog.Nop())
	rules := parser.RuleSet{Typos: map[string]string{"doodh": "milk", "keji": "kg", "aloo": "potato"}}

	n, err := uc.SeedDefaults(context.Background(), rules, parser.DefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, 1, n)

	again, err := uc.SeedDefaults(context.Background(), rules, parser.DefaultCatalog())
	require.NoError(t, err)
	assert.Equal(t, 0, again, "idempotente")
}
