package order

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
)

// Mensajes visibles para el tendero (la app cliente está en inglés).
const (
	msgNotUnderstood  = "❌ I didn't understand that."
	warnNotUnderstood = "Try: 'Sold 2kg Sugar, 9kg Flour'"
	warnSomeFailed    = "Some items failed"
	warnNoStock       = "Insufficient Stock"
)

// ChatResult respuesta del endpoint de pedidos por voz.
type ChatResult struct {
	Success bool
	Message string
	Warning string
	Parse   *ParseResult
	Order   *FulfillResult
}

// ChatUseCase orquesta un pedido completo: interpretar, despachar y armar el mensaje.
type ChatUseCase struct {
	parser    *ParseUseCase
	fulfiller *FulfillmentEngine
}

// NewChatUseCase construye el caso de uso.
func NewChatUseCase(parser *ParseUseCase, fulfiller *FulfillmentEngine) *ChatUseCase {
	return &ChatUseCase{parser: parser, fulfiller: fulfiller}
}

// Handle interpreta el mensaje y despacha las líneas. Un pedido no reconocido no es error:
// devuelve Success=false con el mensaje para el usuario.
func (uc *ChatUseCase) Handle(ctx context.Context, tenantID, message string) (*ChatResult, error) {
	parsed, err := uc.parser.Parse(ctx, tenantID, message)
	if errors.Is(err, domain.ErrParseEmpty) {
		return &ChatResult{Success: false, Message: msgNotUnderstood, Warning: warnNotUnderstood, Parse: parsed}, nil
	}
	if err != nil {
		return nil, err
	}

	res, err := uc.fulfiller.Fulfill(ctx, FulfillInput{
		TenantID:     tenantID,
		Lines:        parsed.Lines,
		PaymentMode:  parsed.PaymentMode,
		CustomerName: parsed.CustomerName,
	})
	if err != nil {
		return nil, err
	}

	out := &ChatResult{Parse: parsed, Order: res}
	out.Success, out.Message, out.Warning = summarize(res)
	return out, nil
}

// summarize "✅ Sold 2 Milk, 3 Bread for ₹200 | ❌ Failed: Eggs (only 4 left)".
func summarize(res *FulfillResult) (bool, string, string) {
	sold := make([]string, 0, len(res.Succeeded))
	for _, l := range res.Succeeded {
		sold = append(sold, fmt.Sprintf("%s %s", l.Quantity.String(), l.Item))
	}
	failed := make([]string, 0, len(res.Failed))
	for _, f := range res.Failed {
		var stockErr *domain.InsufficientStockError
		if errors.As(f.Err, &stockErr) {
			failed = append(failed, fmt.Sprintf("%s (only %s left)", f.Item, f.Available.String()))
			continue
		}
		failed = append(failed, fmt.Sprintf("%s (error)", f.Item))
	}

	suffix := ""
	if res.PaymentMode == entity.PaymentModeUdhaar && res.CustomerName != entity.WalkInCustomer {
		suffix = fmt.Sprintf(" on udhaar to %s", res.CustomerName)
	}
	total := res.TotalRevenue.Round(2).String()

	switch {
	case len(sold) > 0 && len(failed) > 0:
		return true, fmt.Sprintf("✅ Sold %s for ₹%s%s | ❌ Failed: %s", strings.Join(sold, ", "), total, suffix, strings.Join(failed, ", ")), warnSomeFailed
	case len(sold) > 0:
		return true, fmt.Sprintf("✅ Sold %s for ₹%s%s", strings.Join(sold, ", "), total, suffix), ""
	default:
		return false, fmt.Sprintf("❌ FAILED: %s", strings.Join(failed, ", ")), warnNoStock
	}
}
