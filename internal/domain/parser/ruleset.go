package parser

import (
	"github.com/shopspring/decimal"
)

// RuleSet agrupa todas las tablas que usa el parser. Se pasa en cada llamada;
// el paquete no guarda estado mutable global.
type RuleSet struct {
	// Version identifica la revisión de las reglas (se devuelve en ParseResult y en logs).
	Version string

	StopWords      []string
	Typos          map[string]string // error fonético / sinónimo → nombre canónico en minúsculas
	Numerals       map[string]decimal.Decimal
	Units          []string
	CreditKeywords []string
	// CustomerStopList palabras que nunca se aceptan como nombre de cliente.
	// Los nombres del catálogo se agregan en tiempo de extracción.
	CustomerStopList []string
}

// DefaultRuleSetVersion revisión de DefaultRuleSet.
const DefaultRuleSetVersion = "2025.1"

// DefaultRuleSet reglas para inglés, hindi y hinglish.
func DefaultRuleSet() RuleSet {
	return RuleSet{
		Version: DefaultRuleSetVersion,
		StopWords: []string{
			"sold", "sell", "sale", "selling", "please", "and", "aur", "the", "a", "an", "some", "of",
			"also", "give", "add", "more", "i", "want", "need", "get", "me", "us",
			"becho", "bech", "do", "de", "dena", "le", "lo", "lena", "karo",
			"nu", "no", "ko", "ka", "ki", "ke", "se", "pe", "p", "par", "on", "for", "to",
		},
		Typos:    defaultTypos(),
		Numerals: defaultNumerals(),
		Units: []string{
			"kg", "kgs", "kilo", "kilos", "kilogram", "kilograms",
			"liter", "liters", "litre", "litres", "ltr", "ltrs", "ml",
			"gram", "grams", "gm", "gms", "g",
			"piece", "pieces", "pcs", "packet", "packets", "pack", "unit", "units",
			"rs", "rupee", "rupees",
		},
		CreditKeywords: []string{
			"udhaar", "udhar", "udhhaar", "credit", "khata", "khate", "khatte",
			"udhaari", "udhari", "uthaar", "uthar",
		},
		CustomerStopList: []string{
			"on", "the", "and", "sold", "sell", "sale", "give", "some", "also", "more", "cash", "udhaar",
			"jeera", "khatte", "khata", "me", "bhaiya", "bhai", "sir", "ji", "please", "kilo", "aadha",
		},
	}
}

func defaultTypos() map[string]string {
	return map[string]string{
		"keji": "kg", "kaji": "kg", "kilo": "kg", "kilos": "kg", "kilogram": "kg",
		"doodh": "milk", "dudh": "milk", "dudth": "milk", "melk": "milk", "malk": "milk", "milkk": "milk", "melku": "milk",
		"chawal": "rice", "chaawal": "rice", "chaval": "rice", "rise": "rice", "rais": "rice", "raice": "rice", "ricee": "rice",
		"cheeni": "sugar", "chini": "sugar", "shakkar": "sugar", "suger": "sugar", "sugur": "sugar", "sugarr": "sugar",
		"aloo": "potato", "alu": "potato", "aaloo": "potato",
		"pyaz": "onion", "pyaaz": "onion", "kanda": "onion",
		"tamatar": "tomato", "tamater": "tomato",
		"anda": "eggs", "ande": "eggs", "anday": "eggs", "ags": "eggs", "aggs": "eggs", "eggz": "eggs", "eg": "eggs",
		"namak": "salt", "namkeen": "salt",
		"tel": "oil", "teil": "oil",
		"makhan": "butter", "makkhan": "butter", "buttar": "butter", "butr": "butter",
		"dahi": "curd", "dahee": "curd",
		"roti": "bread", "rotee": "bread", "bred": "bread", "brad": "bread", "breads": "bread",
		"daal": "dal", "dhaal": "dal", "dhal": "dal",
		"chees": "cheese", "cheez": "cheese", "cheeze": "cheese",
		"panneer": "paneer", "pneer": "paneer", "panir": "paneer", "paner": "paneer",
		"ataa": "atta", "aata": "atta", "aatta": "atta",
		"mayda":  "maida",
		"biskut": "biscuits", "biscut": "biscuits", "biskoot": "biscuits", "biskit": "biscuits", "biscuit": "biscuits",
		"sabun": "soap", "saabun": "soap",
		"maggi": "noodles", "maagi": "noodles", "noodle": "noodles",
		"tooothpaste": "toothpaste", "toothpast": "toothpaste", "colgate": "toothpaste",
		"tee": "tea", "chai": "tea", "patti": "tea",
		"coffe": "coffee", "koffee": "coffee", "cofee": "coffee",
		"jeera": "cumin", "jira": "cumin", "zeera": "cumin",
		"flor": "flour", "flower": "flour",
		"ghea": "ghee", "ghi": "ghee",
		"chiips": "chips", "chip": "chips",
	}
}

func defaultNumerals() map[string]decimal.Decimal {
	n := func(s string) decimal.Decimal { return decimal.RequireFromString(s) }
	return map[string]decimal.Decimal{
		// inglés y homófonos frecuentes del dictado
		"zero": n("0"), "one": n("1"), "won": n("1"), "two": n("2"), "too": n("2"), "to": n("2"), "tu": n("2"),
		"three": n("3"), "tree": n("3"), "free": n("3"), "four": n("4"), "for": n("4"), "ford": n("4"), "fore": n("4"),
		"five": n("5"), "fife": n("5"), "six": n("6"), "sex": n("6"), "sax": n("6"), "seven": n("7"), "saven": n("7"),
		"eight": n("8"), "ate": n("8"), "ait": n("8"), "nine": n("9"), "nain": n("9"), "ten": n("10"), "tan": n("10"),
		"eleven": n("11"), "twelve": n("12"), "half": n("0.5"), "quarter": n("0.25"),
		"double": n("2"), "triple": n("3"), "single": n("1"),
		// hindi
		"ek": n("1"), "do": n("2"), "teen": n("3"), "char": n("4"), "paanch": n("5"), "panch": n("5"),
		"chhe": n("6"), "chay": n("6"), "saat": n("7"), "aath": n("8"), "nau": n("9"), "das": n("10"),
		"gyarah": n("11"), "barah": n("12"), "terah": n("13"), "chaudah": n("14"), "pandrah": n("15"),
		// fracciones
		"dhai": n("2.5"), "adha": n("0.5"), "aadha": n("0.5"), "adhaa": n("0.5"), "dedh": n("1.5"),
		"paune": n("0.75"), "pav": n("0.25"), "paav": n("0.25"), "sawa": n("1.25"),
	}
}

// MergeAliases devuelve una copia de la tabla de correcciones con los alias del
// almacén aplicados encima (los alias ganan ante conflicto).
func (r RuleSet) MergeAliases(aliases Aliases) map[string]string {
	merged := make(map[string]string, len(r.Typos)+len(aliases))
	for k, v := range r.Typos {
		merged[k] = v
	}
	for k, v := range aliases {
		merged[k] = v
	}
	return merged
}
