package order

import (
	"context"
	"encoding/json"
	"fmt"
	"regexp"
	"strings"
	"time"

	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"
	"golang.org/x/time/rate"

	"github.com/jhoicas/Kirana-api/internal/application/ports"
	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
)

// FallbackStatus resultado de la consulta al modelo.
type FallbackStatus string

const (
	FallbackMatched     FallbackStatus = "matched"
	FallbackEmpty       FallbackStatus = "empty"
	FallbackUnavailable FallbackStatus = "unavailable"
	// FallbackSkipped el parser local ya encontró productos; no se consultó al modelo.
	FallbackSkipped FallbackStatus = "skipped"
)

// FallbackResult salida del delegado. Err solo se registra en logs, nunca llega al usuario.
type FallbackResult struct {
	Status       FallbackStatus
	Lines        []parser.OrderLine
	PaymentMode  entity.PaymentMode // vacío si el modelo no lo indicó
	CustomerName string             // vacío si el modelo no lo indicó
	Err          error
}

const fallbackPrompt = `Parse this voice command for a grocery shop: %q
Available items: %s
Common errors: "four"/"for"/"Ford"→4, "too"/"to"→2, "keji"→kg, "doodh"→Milk, "cheeni"→Sugar.
Credit words (udhaar, udhar, khata, credit) mean payment_mode "Udhaar", otherwise "Cash".
Return ONLY a valid JSON array: [{"item": "ItemName", "qty": number, "payment_mode": "Cash", "customer_name": "Walk-in"}]
If nothing found, return: []`

// FallbackDelegator consulta al modelo generativo cuando el parser local no reconoce nada.
type FallbackDelegator struct {
	llm     ports.LLMService
	limiter *rate.Limiter
	timeout time.Duration
	logger  zerolog.Logger
}

// NewFallbackDelegator construye el delegado. llm puede ser nil (IA deshabilitada);
// limiter nil significa sin límite; timeout <= 0 usa 10 s.
func NewFallbackDelegator(llm ports.LLMService, limiter *rate.Limiter, timeout time.Duration, logger zerolog.Logger) *FallbackDelegator {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &FallbackDelegator{llm: llm, limiter: limiter, timeout: timeout, logger: logger}
}

// Resolve envía el texto original y los nombres del catálogo al modelo y valida la respuesta:
// cada producto debe coincidir exactamente (sin distinguir mayúsculas) con el catálogo y qty > 0.
// Cualquier fallo de red, timeout o JSON inválido devuelve FallbackUnavailable.
func (d *FallbackDelegator) Resolve(ctx context.Context, text string, catalog *parser.Catalog) FallbackResult {
	if d == nil || d.llm == nil {
		return FallbackResult{Status: FallbackUnavailable, Err: domain.ErrDelegateUnavailable}
	}

	ctx, cancel := context.WithTimeout(ctx, d.timeout)
	defer cancel()

	if d.limiter != nil {
		if err := d.limiter.Wait(ctx); err != nil {
			return d.unavailable(fmt.Errorf("límite de llamadas a IA: %w", err))
		}
	}

	names, _ := json.Marshal(catalog.Names())
	raw, err := d.llm.Complete(ctx, fmt.Sprintf(fallbackPrompt, text, string(names)))
	if err != nil {
		return d.unavailable(err)
	}

	items, err := decodeFallback(raw)
	if err != nil {
		return d.unavailable(err)
	}

	res := FallbackResult{Status: FallbackEmpty}
	seen := make(map[string]struct{})
	for _, it := range items {
		entry, ok := catalog.Lookup(it.Item)
		if !ok {
			continue
		}
		qty := decimal.NewFromInt(1)
		if it.Qty != nil {
			qty = *it.Qty
		}
		if !qty.GreaterThan(decimal.Zero) {
			continue
		}
		if _, dup := seen[entry.Name]; dup {
			continue
		}
		seen[entry.Name] = struct{}{}
		res.Lines = append(res.Lines, parser.OrderLine{
			Item:      entry.Name,
			Quantity:  qty,
			UnitPrice: entry.Price,
			LineTotal: qty.Mul(entry.Price),
		})
		if res.PaymentMode == "" {
			res.PaymentMode = paymentModeFrom(it.PaymentMode)
		}
		if res.CustomerName == "" && strings.TrimSpace(it.CustomerName) != "" {
			res.CustomerName = parser.CustomerName(it.CustomerName)
		}
	}
	if len(res.Lines) > 0 {
		res.Status = FallbackMatched
	}
	return res
}

func (d *FallbackDelegator) unavailable(err error) FallbackResult {
	d.logger.Warn().Err(err).Msg("IA: fallback no disponible, se trata como pedido no reconocido")
	return FallbackResult{Status: FallbackUnavailable, Err: fmt.Errorf("%w: %v", domain.ErrDelegateUnavailable, err)}
}

// fallbackItem elemento devuelto por el modelo. qty acepta número o string.
type fallbackItem struct {
	Item         string           `json:"item"`
	Qty          *decimal.Decimal `json:"qty"`
	PaymentMode  string           `json:"payment_mode"`
	CustomerName string           `json:"customer_name"`
}

type fallbackEnvelope struct {
	fallbackItem
	Items []fallbackItem `json:"items"`
}

// decodeFallback acepta un array de items, un objeto {"items": [...]} o un único item.
func decodeFallback(raw string) ([]fallbackItem, error) {
	clean := extractJSON(raw)
	if clean == "" {
		return nil, fmt.Errorf("IA: no se encontró JSON en la respuesta (respuesta: %s)", raw)
	}
	if strings.HasPrefix(clean, "[") {
		var items []fallbackItem
		if err := json.Unmarshal([]byte(clean), &items); err != nil {
			return nil, fmt.Errorf("IA: parsear JSON: %w (JSON extraído: %s)", err, clean)
		}
		return items, nil
	}
	var env fallbackEnvelope
	if err := json.Unmarshal([]byte(clean), &env); err != nil {
		return nil, fmt.Errorf("IA: parsear JSON: %w (JSON extraído: %s)", err, clean)
	}
	if len(env.Items) > 0 {
		for i := range env.Items {
			if env.Items[i].PaymentMode == "" {
				env.Items[i].PaymentMode = env.PaymentMode
			}
			if env.Items[i].CustomerName == "" {
				env.Items[i].CustomerName = env.CustomerName
			}
		}
		return env.Items, nil
	}
	if env.Item != "" {
		return []fallbackItem{env.fallbackItem}, nil
	}
	return nil, nil
}

// jsonBlockRe captura desde el primer '[' o '{' hasta el último cierre.
var jsonBlockRe = regexp.MustCompile(`(?s)(\[.*\]|\{.*\})`)

// extractJSON quita bloques markdown (```json … ```) y se queda con el primer bloque JSON.
func extractJSON(text string) string {
	text = strings.TrimSpace(text)
	if idx := strings.Index(text, "```"); idx != -1 {
		after := text[idx+3:]
		if nl := strings.Index(after, "\n"); nl != -1 {
			after = after[nl+1:]
		} else {
			after = strings.TrimPrefix(after, "json")
		}
		if end := strings.LastIndex(after, "```"); end != -1 {
			after = after[:end]
		}
		text = strings.TrimSpace(after)
	}
	if strings.HasPrefix(text, "[") || strings.HasPrefix(text, "{") {
		return text
	}
	return strings.TrimSpace(jsonBlockRe.FindString(text))
}

func paymentModeFrom(s string) entity.PaymentMode {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "udhaar", "udhar", "credit", "khata":
		return entity.PaymentModeUdhaar
	case "cash":
		return entity.PaymentModeCash
	}
	return ""
}
