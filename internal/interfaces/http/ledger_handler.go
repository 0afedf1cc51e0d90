package http

import (
	"fmt"
	"net/url"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kirana-api/internal/application/dto"
	"github.com/jhoicas/Kirana-api/internal/application/ledger"
)

// LedgerHandler saldos de fiado (udhaar).
type LedgerHandler struct {
	uc *ledger.LedgerUseCase
}

// NewLedgerHandler construye el handler.
func NewLedgerHandler(uc *ledger.LedgerUseCase) *LedgerHandler {
	return &LedgerHandler{uc: uc}
}

// customerParam nombre del cliente desde la ruta (puede venir con %20).
func customerParam(c *fiber.Ctx) string {
	raw := c.Params("customer")
	if name, err := url.PathUnescape(raw); err == nil {
		return name
	}
	return raw
}

// List godoc
// @Summary      Saldos de fiado
// @Tags         dues
// @Security     Bearer
// @Produce      json
// @Param        all     query  bool  false  "incluir clientes con saldo cero"
// @Param        limit   query  int   false  "máximo de filas (50 por defecto)"
// @Param        offset  query  int   false  "desplazamiento"
// @Success      200  {object}  dto.DuesListResponse
// @Failure      401  {object}  dto.ErrorResponse
// @Router       /api/dues [get]
func (h *LedgerHandler) List(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var page dto.PageRequest
	if err := c.QueryParser(&page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_QUERY", Message: "parámetros inválidos"})
	}
	if err := validate.Struct(page); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: "datos inválidos", Details: validationDetails(err)})
	}
	page.DefaultPage()

	dues, err := h.uc.ListDues(c.UserContext(), tenantID, !c.QueryBool("all", false))
	if err != nil {
		return writeError(c, err)
	}

	resp := dto.DuesListResponse{
		Items:      []dto.CustomerDueDTO{},
		TotalDue:   decimal.Zero,
		Pagination: dto.PageResponse{Limit: page.Limit, Offset: page.Offset, Total: len(dues)},
	}
	for i, d := range dues {
		resp.TotalDue = resp.TotalDue.Add(d.TotalDue)
		if i >= page.Offset && len(resp.Items) < page.Limit {
			resp.Items = append(resp.Items, dto.CustomerDueDTO{CustomerName: d.CustomerName, TotalDue: d.TotalDue, UpdatedAt: d.UpdatedAt})
		}
	}
	return c.JSON(resp)
}

// Settle godoc
// @Summary      Registrar abono o liquidar fiado
// @Description  Sin amount (o con amount >= saldo) liquida todo el saldo. Un monto menor es abono parcial.
// @Tags         dues
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        customer  path  string             true   "nombre del cliente"
// @Param        body      body  dto.SettleRequest  false  "amount opcional"
// @Success      200  {object}  dto.SettleResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dues/{customer}/settle [post]
func (h *LedgerHandler) Settle(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	var req dto.SettleRequest
	if len(c.Body()) > 0 {
		if ok, err := parseBody(c, &req); !ok {
			return err
		}
	}
	res, err := h.uc.Settle(c.UserContext(), tenantID, customerParam(c), req.Amount)
	if err != nil {
		return writeError(c, err)
	}

	msg := fmt.Sprintf("✅ %s cleared ₹%s udhaar", res.CustomerName, res.Paid.Round(2).String())
	if res.Kind == ledger.SettlementPartial {
		msg = fmt.Sprintf("✅ %s paid ₹%s, ₹%s still due", res.CustomerName, res.Paid.Round(2).String(), res.RemainingDue.Round(2).String())
	}
	return c.JSON(dto.SettleResponse{
		CustomerName: res.CustomerName,
		Kind:         res.Kind,
		Paid:         res.Paid,
		PreviousDue:  res.PreviousDue,
		RemainingDue: res.RemainingDue,
		SettledSales: res.SettledSales,
		Message:      msg,
	})
}

// StatementPDF godoc
// @Summary      Estado de cuenta del cliente en PDF
// @Tags         dues
// @Security     Bearer
// @Produce      application/pdf
// @Param        customer  path  string  true  "nombre del cliente"
// @Success      200  {file}    binary
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/dues/{customer}/statement.pdf [get]
func (h *LedgerHandler) StatementPDF(c *fiber.Ctx) error {
	tenantID := GetTenantID(c)
	if tenantID == "" {
		return unauthorized(c)
	}
	name := customerParam(c)
	out, err := h.uc.StatementPDF(c.UserContext(), tenantID, name)
	if err != nil {
		return writeError(c, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf(`inline; filename="udhaar-%s.pdf"`, url.PathEscape(name)))
	return c.Send(out)
}
