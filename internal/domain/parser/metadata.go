package parser

import (
	"regexp"
	"strings"

	"golang.org/x/text/cases"
	"golang.org/x/text/language"
	"golang.org/x/text/unicode/norm"

	"github.com/jhoicas/Kirana-api/internal/domain/entity"
)

// Metadata forma de pago y cliente detectados en el mensaje.
type Metadata struct {
	PaymentMode  entity.PaymentMode
	CustomerName string
}

// IsWalkIn true si no se detectó un cliente con nombre.
func (m Metadata) IsWalkIn() bool {
	return m.CustomerName == "" || m.CustomerName == entity.WalkInCustomer
}

// Patrones de cliente en orden de prioridad.
var customerPatterns = []*regexp.Regexp{
	regexp.MustCompile(`\b(?:to|for)\s+([a-z]+?)\s+(?:on|udhaar|udhar|credit|khata|khatte)\b`),
	regexp.MustCompile(`\b([a-z]+?)\s+(?:ko|ka|ki|ke|se)(?:\s|$)`),
	regexp.MustCompile(`\b(?:to|for)\s+([a-z]+?)(?:\s|$)`),
	regexp.MustCompile(`\b([a-z]+?)\s+(?:udhaar|udhar|credit|khata|khatte)\b`),
}

var numericToken = regexp.MustCompile(`^\d+(?:\.\d+)?$`)

// ExtractMetadata detecta forma de pago y cliente sobre el texto crudo en minúsculas.
// Se ejecuta antes del normalizador.
func ExtractMetadata(text string, catalog *Catalog, aliases Aliases, rules RuleSet) Metadata {
	raw := strings.ToLower(norm.NFKC.String(text))
	meta := Metadata{PaymentMode: entity.PaymentModeCash, CustomerName: entity.WalkInCustomer}

	if re := wordsPattern(rules.CreditKeywords); re != nil && re.MatchString(raw) {
		meta.PaymentMode = entity.PaymentModeUdhaar
	}

	stop := customerStopSet(catalog, aliases, rules)
	for _, pat := range customerPatterns {
		for _, m := range pat.FindAllStringSubmatch(raw, -1) {
			candidate := strings.TrimSpace(m[1])
			if !acceptableCustomer(candidate, stop) {
				continue
			}
			meta.CustomerName = TitleName(candidate)
			return meta
		}
	}
	return meta
}

// TitleName normaliza un nombre (cliente o producto) a Title Case con espacios simples.
// cases.Caser no es seguro para uso concurrente; se crea uno por llamada.
func TitleName(s string) string {
	s = strings.Join(strings.Fields(strings.ToLower(norm.NFKC.String(s))), " ")
	return cases.Title(language.Und).String(s)
}

// CustomerName nombre de cliente canónico; vacío o "walk-in" devuelven entity.WalkInCustomer.
func CustomerName(s string) string {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, entity.WalkInCustomer) {
		return entity.WalkInCustomer
	}
	return TitleName(s)
}

func acceptableCustomer(candidate string, stop map[string]struct{}) bool {
	if len(candidate) < 2 || numericToken.MatchString(candidate) {
		return false
	}
	_, blocked := stop[candidate]
	return !blocked
}

// customerStopSet palabras comunes, nombres del catálogo y todo vocabulario que el
// normalizador reconoce como producto, número o unidad.
func customerStopSet(catalog *Catalog, aliases Aliases, rules RuleSet) map[string]struct{} {
	stop := make(map[string]struct{}, 256)
	add := func(words ...string) {
		for _, w := range words {
			stop[strings.ToLower(w)] = struct{}{}
		}
	}
	add(rules.CustomerStopList...)
	add(rules.StopWords...)
	add(rules.CreditKeywords...)
	add(rules.Units...)
	for w := range rules.Numerals {
		add(w)
	}
	for w := range rules.Typos {
		add(w)
	}
	for w := range aliases {
		add(w)
	}
	if catalog != nil {
		for _, name := range catalog.Names() {
			add(name)
			add(strings.Fields(name)...)
		}
	}
	return stop
}
