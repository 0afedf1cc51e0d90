// Package parser convierte un pedido dictado (inglés, hindi o hinglish) en líneas de pedido.
// Es un servicio de dominio puro: no hace I/O y no guarda estado global mutable.
package parser

import (
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
)

// Result salida del parser local.
type Result struct {
	Lines        []OrderLine
	PaymentMode  entity.PaymentMode
	CustomerName string
	Normalized   string
	RuleVersion  string
}

// Empty true si no se reconoció ningún producto.
func (r Result) Empty() bool { return len(r.Lines) == 0 }

// Parse extrae metadatos del texto crudo, lo normaliza y empareja productos y cantidades.
func Parse(text string, catalog *Catalog, aliases Aliases, rules RuleSet) Result {
	if catalog == nil {
		catalog = DefaultCatalog()
	}
	aliases = catalog.CleanAliases(aliases)

	meta := ExtractMetadata(text, catalog, aliases, rules)
	normalized := Normalize(text, Stages(rules, meta, aliases))

	return Result{
		Lines:        MatchItems(normalized, catalog, aliases),
		PaymentMode:  meta.PaymentMode,
		CustomerName: meta.CustomerName,
		Normalized:   normalized,
		RuleVersion:  rules.Version,
	}
}
