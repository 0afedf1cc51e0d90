package parser_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
)

func qty(lines []parser.OrderLine) map[string]string {
	out := make(map[string]string, len(lines))
	for _, l := range lines {
		out[l.Item] = l.Quantity.String()
	}
	return out
}

// ─── FuzzyMatch ─────────────────────────────────────────────────────────────

func TestFuzzyMatch_CadaNombreCanonicoSeResuelveASiMismo(t *testing.T) {
	cat := parser.DefaultCatalog()
	cat.Add("Coca Cola", decimal.NewFromInt(45), nil)
	aliases := cat.CleanAliases(parser.Aliases{"cola": "coca cola", "doodh": "milk", "chana": "dal"})

	for _, name := range cat.Names() {
		got, ok := cat.FuzzyMatch(name, aliases)
		require.True(t, ok, name)
		assert.Equal(t, name, got)
	}
}

func TestFuzzyMatch_AliasDevuelveNombreCanonico(t *testing.T) {
	cat := parser.DefaultCatalog()
	aliases := parser.Aliases{
		"doodh": "milk", "jeera": "Cumin", "sarson tel": "mustard oil",
		"desi ghee": "ghee", "amul butter": "Butter", "tel": "mustard oil",
	}

	for alias, want := range map[string]string{
		"doodh": "Milk", "jeera": "Cumin", "sarson tel": "Mustard Oil",
		"desi ghee": "Ghee", "amul butter": "Butter", "tel": "Mustard Oil",
	} {
		got, ok := cat.FuzzyMatch(alias, aliases)
		require.True(t, ok, alias)
		assert.Equal(t, want, got)
	}
}

func TestFuzzyMatch_Precedencia(t *testing.T) {
	cat := parser.DefaultCatalog()

	got, ok := cat.FuzzyMatch("MILK", nil)
	require.True(t, ok)
	assert.Equal(t, "Milk", got, "exacto sin distinguir mayúsculas")

	got, ok = cat.FuzzyMatch("milky", nil)
	require.True(t, ok)
	assert.Equal(t, "Milk", got, "el candidato contiene el nombre")

	got, ok = cat.FuzzyMatch("chan", nil)
	require.True(t, ok)
	assert.Equal(t, "Chana Dal", got, "contención: gana el primero en orden de catálogo")

	got, ok = cat.FuzzyMatch("sugr", nil)
	require.True(t, ok)
	assert.Equal(t, "Sugar", got, "prefijo de 3 letras")

	_, ok = cat.FuzzyMatch("xy", nil)
	assert.False(t, ok)
}

func TestFuzzyMatch_MultipalabraRequiereMismoNumeroDePalabras(t *testing.T) {
	cat := parser.DefaultCatalog()

	got, ok := cat.FuzzyMatch("toor dal", nil)
	require.True(t, ok)
	assert.Equal(t, "Toor Dal", got)

	_, ok = cat.FuzzyMatch("milk bread", nil)
	assert.False(t, ok, "dos palabras no pueden resolverse a un producto de una palabra")
}

func TestCatalogAdd_PrecioCeroNoReemplazaDefault(t *testing.T) {
	cat := parser.DefaultCatalog()
	cat.Add("milk", decimal.Zero, nil)
	cat.Add("Murgi", decimal.NewFromInt(220), nil)

	assert.True(t, cat.Price("Milk").Equal(decimal.NewFromInt(60)))
	names := cat.Names()
	assert.Equal(t, "Milk", names[0], "la posición del default se conserva")
	assert.Equal(t, "Murgi", names[len(names)-1])
}

// ─── Normalizador ───────────────────────────────────────────────────────────

func stage(t *testing.T, stages []parser.Stage, name string) parser.Stage {
	t.Helper()
	for _, s := range stages {
		if s.Name == name {
			return s
		}
	}
	t.Fatalf("etapa %s no encontrada", name)
	return parser.Stage{}
}

func TestStages_OrdenFijo(t *testing.T) {
	stages := parser.Stages(parser.DefaultRuleSet(), parser.Metadata{}, nil)
	names := make([]string, 0, len(stages))
	for _, s := range stages {
		names = append(names, s.Name)
	}
	assert.Equal(t, []string{
		parser.StageStripStopWords,
		parser.StageStripMetadata,
		parser.StageSplitGluedDigits,
		parser.StageCorrectAliases,
		parser.StageTranslateNumerals,
		parser.StageStripUnits,
		parser.StageCollapseSpace,
	}, names)
}

func TestStages_Individuales(t *testing.T) {
	rules := parser.DefaultRuleSet()
	meta := parser.Metadata{PaymentMode: entity.PaymentModeUdhaar, CustomerName: "Raju"}
	stages := parser.Stages(rules, meta, parser.Aliases{"chai": "coffee"})

	assert.Equal(t, "2 milk", parser.CollapseWhitespace(stage(t, stages, parser.StageStripStopWords).Apply("give 2 milk please")))
	assert.Equal(t, "5 eggs", parser.CollapseWhitespace(stage(t, stages, parser.StageStripMetadata).Apply("5 eggs raju udhaar")))
	assert.Equal(t, "2 tel 1.5 kg", stage(t, stages, parser.StageSplitGluedDigits).Apply("2tel 1.5kg"))
	assert.Equal(t, "coffee milk", stage(t, stages, parser.StageCorrectAliases).Apply("chai doodh"),
		"los alias del almacén ganan sobre los typos")
	assert.Equal(t, "1.25 2.5 0.5", stage(t, stages, parser.StageTranslateNumerals).Apply("sawa dhai half"))
	assert.Equal(t, "2 milk", parser.CollapseWhitespace(stage(t, stages, parser.StageStripUnits).Apply("2 kg milk")))
	assert.Equal(t, "2 milk", stage(t, stages, parser.StageCollapseSpace).Apply("  2   milk "))
}

func TestCorrectAliases_UnaSolaPasada(t *testing.T) {
	stages := parser.Stages(parser.DefaultRuleSet(), parser.Metadata{}, parser.Aliases{"a1": "b1", "b1": "c1"})
	assert.Equal(t, "b1", stage(t, stages, parser.StageCorrectAliases).Apply("a1"))
}

// ─── Metadatos ──────────────────────────────────────────────────────────────

func TestExtractMetadata(t *testing.T) {
	cat := parser.DefaultCatalog()
	rules := parser.DefaultRuleSet()

	cases := []struct {
		text     string
		mode     entity.PaymentMode
		customer string
	}{
		{"sold 5 milk to raju on udhaar", entity.PaymentModeUdhaar, "Raju"},
		{"aadha kilo cheeni ramesh ko", entity.PaymentModeCash, "Ramesh"},
		{"2 milk 3 bread", entity.PaymentModeCash, entity.WalkInCustomer},
		{"2 milk for sugar", entity.PaymentModeCash, entity.WalkInCustomer},
		{"suresh credit 2 bread", entity.PaymentModeUdhaar, "Suresh"},
		{"doodh ka packet raju ko", entity.PaymentModeCash, "Raju"},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			meta := parser.ExtractMetadata(tc.text, cat, nil, rules)
			assert.Equal(t, tc.mode, meta.PaymentMode)
			assert.Equal(t, tc.customer, meta.CustomerName)
		})
	}
}

// ─── Parse ──────────────────────────────────────────────────────────────────

func TestParse_NumeroProducto(t *testing.T) {
	for _, text := range []string{"2 milk 3 bread", "  2   milk    3 bread  "} {
		res := parser.Parse(text, parser.DefaultCatalog(), nil, parser.DefaultRuleSet())
		require.Len(t, res.Lines, 2, text)
		assert.Equal(t, map[string]string{"Milk": "2", "Bread": "3"}, qty(res.Lines))
	}
}

func TestParse_PedidoEnHindiConUdhaar(t *testing.T) {
	res := parser.Parse("ek kilo doodh aur 5 ande raju ke khatte me", parser.DefaultCatalog(), nil, parser.DefaultRuleSet())

	assert.Equal(t, entity.PaymentModeUdhaar, res.PaymentMode)
	assert.Equal(t, "Raju", res.CustomerName)
	assert.Equal(t, map[string]string{"Milk": "1", "Eggs": "5"}, qty(res.Lines))
	assert.Equal(t, parser.DefaultRuleSetVersion, res.RuleVersion)
}

func TestParse_CasosHinglish(t *testing.T) {
	cases := []struct {
		text     string
		customer string
		want     map[string]string
	}{
		{"bhaiya 2 packet maggi dena aur 1 chhota sabun", entity.WalkInCustomer, map[string]string{"Noodles": "2", "Soap": "1"}},
		{"aadha kilo cheeni ramesh ko", "Ramesh", map[string]string{"Sugar": "0.5"}},
		{"100 gram jeera", entity.WalkInCustomer, map[string]string{"Cumin": "100"}},
		{"250g chai patti", entity.WalkInCustomer, map[string]string{"Tea": "250"}},
		{"dedh kilo chawal aur 2tel", entity.WalkInCustomer, map[string]string{"Rice": "1.5", "Oil": "2"}},
		{"sugar milk 2", entity.WalkInCustomer, map[string]string{"Milk": "2", "Sugar": "1"}},
		{"1 toor dal 2 milk", entity.WalkInCustomer, map[string]string{"Toor Dal": "1", "Milk": "2"}},
	}
	for _, tc := range cases {
		t.Run(tc.text, func(t *testing.T) {
			res := parser.Parse(tc.text, parser.DefaultCatalog(), nil, parser.DefaultRuleSet())
			assert.Equal(t, tc.customer, res.CustomerName)
			assert.Equal(t, tc.want, qty(res.Lines))
		})
	}
}

func TestParse_SinDuplicadosGanaLaPrimeraCantidad(t *testing.T) {
	res := parser.Parse("2 milk 5 milk", parser.DefaultCatalog(), nil, parser.DefaultRuleSet())
	require.Len(t, res.Lines, 1)
	assert.Equal(t, "2", res.Lines[0].Quantity.String())
}

func TestParse_PrecioDeLinea(t *testing.T) {
	res := parser.Parse("3 bread", parser.DefaultCatalog(), nil, parser.DefaultRuleSet())
	require.Len(t, res.Lines, 1)
	assert.True(t, res.Lines[0].UnitPrice.Equal(decimal.NewFromInt(40)))
	assert.True(t, res.Lines[0].LineTotal.Equal(decimal.NewFromInt(120)))
}

func TestParse_AliasDelAlmacen(t *testing.T) {
	cat := parser.DefaultCatalog()
	cat.Add("Murgi", decimal.NewFromInt(220), nil)

	res := parser.Parse("2 chicken", cat, parser.Aliases{"chicken": "murgi"}, parser.DefaultRuleSet())
	assert.Equal(t, map[string]string{"Murgi": "2"}, qty(res.Lines))
}

func TestParse_TextoSinProductos(t *testing.T) {
	res := parser.Parse("hello bhaiya kaise ho", parser.DefaultCatalog(), nil, parser.DefaultRuleSet())
	assert.True(t, res.Empty())
	assert.Equal(t, entity.PaymentModeCash, res.PaymentMode)
}
