package parser

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Aliases alias (minúsculas) → nombre canónico.
type Aliases map[string]string

// Item entrada del catálogo activo.
type Item struct {
	Name  string
	Price decimal.Decimal
	Cost  *decimal.Decimal
}

// Catalog lista ordenada de productos. El orden de inserción define el desempate
// de FuzzyMatch: primero los productos por defecto, luego los del tenant.
type Catalog struct {
	items []Item
	index map[string]int // nombre en minúsculas → posición
}

// NewCatalog catálogo vacío.
func NewCatalog() *Catalog {
	return &Catalog{index: make(map[string]int)}
}

type defaultItem struct {
	name  string
	price string
	cost  string
}

// Precios de referencia del mercado indio (venta y compra mayorista).
var defaultItems = []defaultItem{
	{"Milk", "60", "25"}, {"Bread", "40", "30"}, {"Eggs", "7", "5.5"}, {"Butter", "55", "45"},
	{"Cheese", "100", "14"}, {"Paneer", "80", "60"}, {"Curd", "45", "30"},
	{"Rice", "50", "38"}, {"Sugar", "45", "36"}, {"Salt", "25", "18"}, {"Flour", "35", "26"},
	{"Wheat", "35", "28"}, {"Atta", "40", "32"}, {"Maida", "40", "30"}, {"Suji", "50", "38"}, {"Poha", "45", "35"},
	{"Dal", "120", "90"}, {"Toor Dal", "140", "110"}, {"Moong Dal", "130", "100"}, {"Chana Dal", "90", "70"},
	{"Urad Dal", "120", "95"}, {"Rajma", "150", "115"}, {"Chana", "80", "60"},
	{"Tea", "250", "200"}, {"Coffee", "400", "320"},
	{"Oil", "150", "125"}, {"Ghee", "550", "450"}, {"Mustard Oil", "180", "140"}, {"Turmeric", "200", "150"},
	{"Red Chilli", "300", "220"}, {"Cumin", "350", "280"}, {"Coriander", "150", "110"},
	{"Biscuits", "30", "22"}, {"Chips", "20", "7"}, {"Noodles", "15", "11"}, {"Soap", "40", "28"},
	{"Detergent", "120", "90"}, {"Toothpaste", "80", "75"},
}

// DefaultCatalog catálogo por defecto, compartido por todos los tenants.
func DefaultCatalog() *Catalog {
	c := NewCatalog()
	for _, it := range defaultItems {
		cost := decimal.RequireFromString(it.cost)
		c.Add(it.name, decimal.RequireFromString(it.price), &cost)
	}
	return c
}

// Add agrega un producto o actualiza uno existente sin cambiar su posición.
// Un precio cero nunca reemplaza un precio distinto de cero; lo mismo con el costo.
func (c *Catalog) Add(name string, price decimal.Decimal, cost *decimal.Decimal) {
	name = strings.TrimSpace(name)
	if name == "" {
		return
	}
	key := strings.ToLower(name)
	if i, ok := c.index[key]; ok {
		if price.GreaterThan(decimal.Zero) {
			c.items[i].Price = price
		}
		if cost != nil && cost.GreaterThan(decimal.Zero) {
			cst := *cost
			c.items[i].Cost = &cst
		}
		return
	}
	var cst *decimal.Decimal
	if cost != nil {
		v := *cost
		cst = &v
	}
	c.index[key] = len(c.items)
	c.items = append(c.items, Item{Name: name, Price: price, Cost: cst})
}

// Clone copia independiente del catálogo.
func (c *Catalog) Clone() *Catalog {
	out := &Catalog{items: make([]Item, len(c.items)), index: make(map[string]int, len(c.index))}
	copy(out.items, c.items)
	for k, v := range c.index {
		out.index[k] = v
	}
	return out
}

// Names nombres canónicos en orden de catálogo.
func (c *Catalog) Names() []string {
	out := make([]string, 0, len(c.items))
	for _, it := range c.items {
		out = append(out, it.Name)
	}
	return out
}

// Lookup búsqueda exacta sin distinguir mayúsculas.
func (c *Catalog) Lookup(name string) (Item, bool) {
	i, ok := c.index[strings.ToLower(strings.TrimSpace(name))]
	if !ok {
		return Item{}, false
	}
	return c.items[i], true
}

// Price precio unitario; cero si el producto no existe.
func (c *Catalog) Price(name string) decimal.Decimal {
	it, ok := c.Lookup(name)
	if !ok {
		return decimal.Zero
	}
	return it.Price
}

// FuzzyMatch resuelve un candidato (una o varias palabras) a un nombre canónico.
// Precedencia: alias > exacto > contención (en cualquier sentido) > prefijo de 3 letras.
// Dentro de cada regla gana el primer producto en orden de catálogo.
// Un candidato de varias palabras solo se acepta si el nombre resuelto tiene el mismo número de palabras.
func (c *Catalog) FuzzyMatch(candidate string, aliases Aliases) (string, bool) {
	word := strings.ToLower(strings.Join(strings.Fields(candidate), " "))
	if word == "" {
		return "", false
	}
	words := len(strings.Fields(word))

	// Un alias fija el número de palabras del nombre destino, no el del texto dictado.
	if target, ok := aliases[word]; ok {
		word = strings.ToLower(strings.Join(strings.Fields(target), " "))
		words = len(strings.Fields(word))
	}

	accept := func(name string) (string, bool) {
		if words > 1 && len(strings.Fields(name)) != words {
			return "", false
		}
		return name, true
	}

	if it, ok := c.Lookup(word); ok {
		return accept(it.Name)
	}

	for _, it := range c.items {
		item := strings.ToLower(it.Name)
		if strings.Contains(word, item) || (len(word) >= 3 && strings.Contains(item, word)) {
			if name, ok := accept(it.Name); ok {
				return name, true
			}
		}
	}

	if len(word) >= 3 {
		prefix := word[:3]
		for _, it := range c.items {
			item := strings.ToLower(it.Name)
			if strings.HasPrefix(item, prefix) || (len(item) >= 3 && strings.HasPrefix(word, item[:3])) {
				if name, ok := accept(it.Name); ok {
					return name, true
				}
			}
		}
	}
	return "", false
}

// CleanAliases descarta alias vacíos y los que colisionan con otro nombre canónico
// del catálogo, para que FuzzyMatch(nombre) siempre devuelva el mismo nombre.
func (c *Catalog) CleanAliases(aliases Aliases) Aliases {
	out := make(Aliases, len(aliases))
	for k, v := range aliases {
		key := strings.ToLower(strings.TrimSpace(k))
		target := strings.ToLower(strings.TrimSpace(v))
		if key == "" || target == "" {
			continue
		}
		if it, ok := c.Lookup(key); ok && !strings.EqualFold(it.Name, target) {
			continue
		}
		out[key] = target
	}
	return out
}
