package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// OrderLine línea de pedido resuelta. No se persiste.
type OrderLine struct {
	Item      string
	Quantity  decimal.Decimal
	UnitPrice decimal.Decimal
	LineTotal decimal.Decimal
}

// matcher empareja cantidades y productos sobre el texto normalizado.
// Un índice de token asignado a un match no se reutiliza.
type matcher struct {
	tokens   []string
	consumed []bool
	catalog  *Catalog
	aliases  Aliases
	lines    []OrderLine
	seen     map[string]struct{}
}

// MatchItems empareja cantidades y productos en tres pasadas: número-producto,
// producto-número y productos sueltos (cantidad 1). Un producto ya agregado no se repite;
// se conserva la cantidad del primer match.
func MatchItems(normalized string, catalog *Catalog, aliases Aliases) []OrderLine {
	tokens := strings.Fields(normalized)
	m := &matcher{
		tokens:   tokens,
		consumed: make([]bool, len(tokens)),
		catalog:  catalog,
		aliases:  aliases,
		seen:     make(map[string]struct{}),
	}
	m.numberThenItem()
	m.itemThenNumber()
	m.standalone()
	return m.lines
}

func (m *matcher) numberThenItem() {
	for i := range m.tokens {
		qty, ok := m.number(i)
		if !ok {
			continue
		}
		for _, width := range []int{2, 1} {
			name, ok := m.resolve(i+1, width)
			if !ok {
				continue
			}
			m.consume(i, 1+width)
			m.add(name, qty)
			break
		}
	}
}

func (m *matcher) itemThenNumber() {
	for i := range m.tokens {
		for _, width := range []int{2, 1} {
			qty, ok := m.number(i + width)
			if !ok {
				continue
			}
			name, ok := m.resolve(i, width)
			if !ok {
				continue
			}
			m.consume(i, width+1)
			m.add(name, qty)
			break
		}
	}
}

func (m *matcher) standalone() {
	for i := range m.tokens {
		for _, width := range []int{3, 2, 1} {
			name, ok := m.resolve(i, width)
			if !ok {
				continue
			}
			m.consume(i, width)
			m.add(name, decimal.NewFromInt(1))
			break
		}
	}
}

// number cantidad del token i si está libre y es numérico.
func (m *matcher) number(i int) (decimal.Decimal, bool) {
	if i < 0 || i >= len(m.tokens) || m.consumed[i] || !numericToken.MatchString(m.tokens[i]) {
		return decimal.Zero, false
	}
	d, err := decimal.NewFromString(m.tokens[i])
	if err != nil {
		return decimal.Zero, false
	}
	return d, true
}

// resolve intenta width tokens libres y no numéricos a partir de i como un solo producto.
func (m *matcher) resolve(i, width int) (string, bool) {
	if i < 0 || i+width > len(m.tokens) {
		return "", false
	}
	for j := i; j < i+width; j++ {
		if m.consumed[j] || numericToken.MatchString(m.tokens[j]) {
			return "", false
		}
	}
	return m.catalog.FuzzyMatch(strings.Join(m.tokens[i:i+width], " "), m.aliases)
}

func (m *matcher) consume(i, n int) {
	for j := i; j < i+n && j < len(m.consumed); j++ {
		m.consumed[j] = true
	}
}

// add agrega la línea si la cantidad es positiva y el producto no estaba.
func (m *matcher) add(name string, qty decimal.Decimal) {
	if !qty.GreaterThan(decimal.Zero) {
		return
	}
	if _, dup := m.seen[name]; dup {
		return
	}
	m.seen[name] = struct{}{}
	price := m.catalog.Price(name)
	m.lines = append(m.lines, OrderLine{
		Item:      name,
		Quantity:  qty,
		UnitPrice: price,
		LineTotal: qty.Mul(price),
	})
}
