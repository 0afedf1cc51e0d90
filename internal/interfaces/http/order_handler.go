package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Kirana-api/internal/application/dto"
	"github.com/jhoicas/Kirana-api/internal/application/order"
	"github.com/jhoicas/Kirana-api/internal/domain"
)

// OrderHandler pedidos por voz/texto (protegido).
type OrderHandler struct {
	chat  *order.ChatUseCase
	parse *order.ParseUseCase
}

// NewOrderHandler construye el handler.
func NewOrderHandler(chat *order.ChatUseCase, parse *order.ParseUseCase) *OrderHandler {
	return &OrderHandler{chat: chat, parse: parse}
}

// Chat godoc
// @Summary      Registrar un pedido dictado
// @Description  Interpreta el texto (inglés, hindi o hinglish), descuenta stock por lotes FIFO,
//
//	registra las ventas y, si es fiado, suma al saldo del cliente. Cada línea se
//	despacha por separado: un faltante no cancela las demás.
//
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "message: texto del pedido"
// @Success      200   {object}  dto.ChatResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Failure      500   {object}  dto.ErrorResponse
// @Router       /api/orders/chat [post]
func (h *OrderHandler) Chat(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var req dto.ChatRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	res, err := h.chat.Handle(c.UserContext(), tenantID, req.Message)
	if err != nil {
		return writeError(c, err)
	}
	return c.JSON(toChatResponse(res))
}

// Parse godoc
// @Summary      Interpretar un pedido sin mover stock
// @Tags         orders
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.ChatRequest  true  "message: texto del pedido"
// @Success      200   {object}  dto.ParseResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      401   {object}  dto.ErrorResponse
// @Router       /api/orders/parse [post]
func (h *OrderHandler) Parse(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var req dto.ChatRequest
	if ok, err := parseBody(c, &req); !ok {
		return err
	}
	res, err := h.parse.Parse(c.UserContext(), tenantID, req.Message)
	if err != nil && !errors.Is(err, domain.ErrParseEmpty) {
		return writeError(c, err)
	}
	return c.JSON(toParseResponse(res))
}

func toParseResponse(res *order.ParseResult) dto.ParseResponse {
	out := dto.ParseResponse{Lines: []dto.OrderLineDTO{}}
	if res == nil {
		return out
	}
	out.Success = len(res.Lines) > 0
	out.PaymentMode = string(res.PaymentMode)
	out.CustomerName = res.CustomerName
	out.Source = res.Source
	out.FallbackStatus = string(res.FallbackStatus)
	out.Normalized = res.Normalized
	out.RuleVersion = res.RuleVersion
	for _, l := range res.Lines {
		out.Lines = append(out.Lines, dto.OrderLineDTO{
			Item: l.Item, Quantity: l.Quantity, UnitPrice: l.UnitPrice, LineTotal: l.LineTotal,
		})
	}
	return out
}

func toChatResponse(res *order.ChatResult) dto.ChatResponse {
	out := dto.ChatResponse{
		Success: res.Success,
		Message: res.Message,
		Warning: res.Warning,
		Sold:    []dto.SoldLineDTO{},
		Failed:  []dto.FailedLineDTO{},
	}
	if res.Parse != nil {
		out.Source = res.Parse.Source
	}
	if res.Order == nil {
		return out
	}
	o := res.Order
	out.TransactionID = o.TransactionID
	out.PaymentMode = string(o.PaymentMode)
	out.CustomerName = o.CustomerName
	out.TotalRevenue = o.TotalRevenue
	out.TotalCost = o.TotalCost
	for _, l := range o.Succeeded {
		out.Sold = append(out.Sold, dto.SoldLineDTO{
			Item: l.Item, Quantity: l.Quantity, UnitPrice: l.UnitPrice, TotalPrice: l.TotalPrice, TotalCost: l.TotalCost,
		})
	}
	for _, f := range o.Failed {
		reason := "error"
		if errors.Is(f.Err, domain.ErrInsufficientStock) {
			reason = "insufficient_stock"
		}
		out.Failed = append(out.Failed, dto.FailedLineDTO{
			Item: f.Item, Requested: f.Requested, Available: f.Available, Reason: reason,
		})
	}
	return out
}
