package parser

import (
	"regexp"
	"sort"
	"strings"

	"golang.org/x/text/unicode/norm"
)

// Nombres de las etapas del normalizador, en orden de ejecución.
const (
	StageStripStopWords    = "strip-stopwords"
	StageStripMetadata     = "strip-metadata"
	StageSplitGluedDigits  = "split-glued-digits"
	StageCorrectAliases    = "correct-aliases"
	StageTranslateNumerals = "translate-numerals"
	StageStripUnits        = "strip-units"
	StageCollapseSpace     = "collapse-whitespace"
)

// Stage paso del normalizador. Cada etapa asume que las anteriores ya corrieron.
type Stage struct {
	Name  string
	Apply func(text string) string
}

var gluedDigits = regexp.MustCompile(`(?i)(\d+(?:\.\d+)?)([a-z]+)`)

// Stages arma el pipeline para un mensaje. meta es el resultado de ExtractMetadata
// sobre el mismo texto; aliases son los alias globales (ganan sobre los typos).
func Stages(rules RuleSet, meta Metadata, aliases Aliases) []Stage {
	corrections := rules.MergeAliases(aliases)
	numerals := make(map[string]string, len(rules.Numerals))
	for w, n := range rules.Numerals {
		numerals[w] = n.String()
	}

	metaWords := append([]string(nil), rules.CreditKeywords...)
	if !meta.IsWalkIn() {
		metaWords = append(metaWords, strings.ToLower(meta.CustomerName))
	}

	return []Stage{
		{Name: StageStripStopWords, Apply: func(text string) string {
			return removeWords(text, rules.StopWords)
		}},
		{Name: StageStripMetadata, Apply: func(text string) string {
			return removeWords(text, metaWords)
		}},
		{Name: StageSplitGluedDigits, Apply: func(text string) string {
			return gluedDigits.ReplaceAllString(text, "$1 $2")
		}},
		{Name: StageCorrectAliases, Apply: func(text string) string {
			return replaceWords(text, corrections)
		}},
		{Name: StageTranslateNumerals, Apply: func(text string) string {
			return replaceWords(text, numerals)
		}},
		{Name: StageStripUnits, Apply: func(text string) string {
			return removeWords(text, rules.Units)
		}},
		{Name: StageCollapseSpace, Apply: CollapseWhitespace},
	}
}

// Normalize pasa el texto por todas las etapas.
func Normalize(text string, stages []Stage) string {
	out := strings.ToLower(norm.NFKC.String(text))
	for _, s := range stages {
		out = s.Apply(out)
	}
	return out
}

// CollapseWhitespace deja un solo espacio entre palabras.
func CollapseWhitespace(text string) string {
	return strings.Join(strings.Fields(text), " ")
}

// wordsPattern compila (?i)\b(?:w1|w2|...)\b con las palabras más largas primero,
// así "kilos" no queda cortado por "kilo".
func wordsPattern(words []string) *regexp.Regexp {
	if len(words) == 0 {
		return nil
	}
	sorted := make([]string, 0, len(words))
	seen := make(map[string]struct{}, len(words))
	for _, w := range words {
		w = strings.ToLower(strings.TrimSpace(w))
		if w == "" {
			continue
		}
		if _, ok := seen[w]; ok {
			continue
		}
		seen[w] = struct{}{}
		sorted = append(sorted, regexp.QuoteMeta(w))
	}
	if len(sorted) == 0 {
		return nil
	}
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) > len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})
	return regexp.MustCompile(`(?i)\b(?:` + strings.Join(sorted, "|") + `)\b`)
}

func removeWords(text string, words []string) string {
	re := wordsPattern(words)
	if re == nil {
		return text
	}
	return re.ReplaceAllString(text, " ")
}

// replaceWords reemplazo en una sola pasada: el resultado de una sustitución
// no vuelve a evaluarse contra la tabla.
func replaceWords(text string, table map[string]string) string {
	if len(table) == 0 {
		return text
	}
	lower := make(map[string]string, len(table))
	keys := make([]string, 0, len(table))
	for k, v := range table {
		k = strings.ToLower(strings.TrimSpace(k))
		lower[k] = v
		keys = append(keys, k)
	}
	re := wordsPattern(keys)
	if re == nil {
		return text
	}
	return re.ReplaceAllStringFunc(text, func(m string) string {
		if v, ok := lower[strings.ToLower(m)]; ok {
			return v
		}
		return m
	})
}
