// Package pdf genera el estado de cuenta de fiado (udhaar) de un cliente.
//
// Layout de la página A4:
//
//	┌─────────────────────────────────────────────────────────────┐
//	│  HEADER: Nombre de la tienda  │  Estado de cuenta + Fecha    │
//	│  CLIENTE: nombre + saldo pendiente                           │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TABLA: Fecha | Producto | Cant | Modo | Importe | Estado    │
//	│  ─────────────────────────────────────────────────────────  │
//	│  TOTALES: Fiado / Abonos / SALDO PENDIENTE                   │
//	│  FOOTER: QR de pago UPI (opcional)                           │
//	└─────────────────────────────────────────────────────────────┘
package pdf

import (
	"context"
	"fmt"
	"net/url"
	"strings"

	maroto "github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/code"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/line"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/consts/pagesize"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kirana-api/internal/application/ports"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
)

var _ ports.StatementPDFGenerator = (*MarotoPDFGenerator)(nil)

// ── Paleta de colores ─────────────────────────────────────────────────────────

var (
	colorPrimary = &props.Color{Red: 0, Green: 70, Blue: 127}
	colorGray    = &props.Color{Red: 100, Green: 100, Blue: 100}
	colorRed     = &props.Color{Red: 170, Green: 30, Blue: 30}
)

// ── Generator ─────────────────────────────────────────────────────────────────

// MarotoPDFGenerator implementa ports.StatementPDFGenerator usando Maroto v2.
type MarotoPDFGenerator struct {
	shopName string
	upiID    string
}

// NewMarotoPDFGenerator construye el generador. upiID vacío omite el QR de pago.
func NewMarotoPDFGenerator(shopName, upiID string) *MarotoPDFGenerator {
	return &MarotoPDFGenerator{shopName: shopName, upiID: upiID}
}

// GenerateStatementPDF genera el PDF y devuelve sus bytes.
func (g *MarotoPDFGenerator) GenerateStatementPDF(_ context.Context, data ports.StatementData) ([]byte, error) {
	if data.Due == nil {
		return nil, fmt.Errorf("pdf: estado de cuenta sin saldo")
	}
	cfg := config.NewBuilder().
		WithPageSize(pagesize.A4).
		WithLeftMargin(10).WithRightMargin(10).
		WithTopMargin(10).WithBottomMargin(10).
		WithDefaultFont(&props.Font{Family: "helvetica", Size: 9}).
		WithTitle("Udhaar statement - "+data.Due.CustomerName, true).
		WithAuthor(g.shopName, true).
		Build()

	m := maroto.New(cfg)

	m.AddRows(g.headerRow(data))
	m.AddRows(customerRow(data.Due))
	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.5}))

	m.AddRows(tableHeaderRow())
	m.AddRows(tableRows(data.Sales, data)...)

	m.AddRows(line.NewRow(1, props.Line{Color: colorPrimary, Thickness: 0.3}))
	m.AddRows(totalsRow(data))

	if g.upiID != "" && data.Due.TotalDue.GreaterThan(decimal.Zero) {
		m.AddRows(line.NewRow(3))
		m.AddRows(g.paymentRow(data.Due))
	}

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("pdf: generar documento: %w", err)
	}
	return doc.GetBytes(), nil
}

// ── Secciones ─────────────────────────────────────────────────────────────────

func (g *MarotoPDFGenerator) headerRow(data ports.StatementData) core.Row {
	return row.New(16).Add(
		col.New(7).Add(
			text.New(g.shopName, props.Text{
				Style: fontstyle.Bold, Size: 13, Color: colorPrimary, Top: 1,
			}),
		),
		col.New(5).Add(
			text.New("UDHAAR STATEMENT", props.Text{
				Style: fontstyle.Bold, Size: 9, Align: align.Right, Color: colorPrimary, Top: 1,
			}),
			text.New("Date: "+data.GeneratedAt.Format("02/01/2006 15:04"), props.Text{
				Size: 8, Align: align.Right, Top: 8, Color: colorGray,
			}),
		),
	)
}

func customerRow(due *entity.CustomerDue) core.Row {
	return row.New(14).Add(
		col.New(8).Add(
			text.New("CUSTOMER", props.Text{Style: fontstyle.Bold, Size: 8, Color: colorPrimary, Top: 1}),
			text.New(due.CustomerName, props.Text{Style: fontstyle.Bold, Size: 11, Top: 6}),
		),
		col.New(4).Add(
			text.New("Outstanding", props.Text{Size: 8, Align: align.Right, Color: colorGray, Top: 1}),
			text.New(formatRupees(due.TotalDue), props.Text{
				Style: fontstyle.Bold, Size: 11, Align: align.Right, Color: colorRed, Top: 6,
			}),
		),
	)
}

func tableHeaderRow() core.Row {
	h := func(label string, size int, a align.Type) core.Col {
		return col.New(size).Add(text.New(label, props.Text{
			Style: fontstyle.Bold, Size: 8, Align: a, Color: colorPrimary, Top: 2, Left: 1, Right: 1,
		}))
	}
	return row.New(8).Add(
		h("Date", 2, align.Left),
		h("Item", 4, align.Left),
		h("Qty", 1, align.Center),
		h("Mode", 1, align.Center),
		h("Amount", 2, align.Right),
		h("Status", 2, align.Center),
	)
}

// tableRows una fila por venta; los abonos se muestran como "Payment received".
func tableRows(sales []*entity.Sale, data ports.StatementData) []core.Row {
	if len(sales) == 0 {
		return []core.Row{row.New(7).Add(col.New(12).Add(
			text.New("No transactions", props.Text{Size: 8, Align: align.Center, Color: colorGray, Top: 1}),
		))}
	}
	out := make([]core.Row, 0, len(sales))
	for _, s := range sales {
		item, qty, status := s.ItemName, s.Quantity.String(), "Pending"
		if s.IsPayment() {
			item, qty = "Payment received", "-"
		}
		if s.IsSettled {
			status = "Settled"
		}
		out = append(out, row.New(6).Add(
			col.New(2).Add(text.New(s.CreatedAt.In(data.GeneratedAt.Location()).Format("02/01/06"), props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(4).Add(text.New(item, props.Text{Size: 8, Top: 1, Left: 1})),
			col.New(1).Add(text.New(qty, props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(1).Add(text.New(string(s.PaymentMode), props.Text{Size: 8, Align: align.Center, Top: 1})),
			col.New(2).Add(text.New(formatRupees(s.TotalPrice), props.Text{Size: 8, Align: align.Right, Top: 1, Right: 1})),
			col.New(2).Add(text.New(status, props.Text{Size: 8, Align: align.Center, Top: 1})),
		))
	}
	return out
}

// totalsRow fiado emitido en las ventas listadas, abonos recibidos y saldo actual.
func totalsRow(data ports.StatementData) core.Row {
	credit, paid := decimal.Zero, decimal.Zero
	for _, s := range data.Sales {
		switch {
		case s.IsPayment():
			paid = paid.Add(s.TotalPrice.Neg())
		case s.PaymentMode == entity.PaymentModeUdhaar:
			credit = credit.Add(s.TotalPrice)
		}
	}
	label := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Style: fontstyle.Bold, Size: 9, Align: align.Right, Right: 2, Color: c})
	}
	value := func(s string, c *props.Color) core.Component {
		return text.New(s, props.Text{Size: 9, Align: align.Right, Right: 1, Color: c})
	}
	return row.New(18).Add(
		col.New(6),
		col.New(3).Add(
			label("Credit taken:", nil),
			label("Payments:", nil),
			label("BALANCE DUE:", colorRed),
		),
		col.New(3).Add(
			value(formatRupees(credit), nil),
			value(formatRupees(paid), nil),
			value(formatRupees(data.Due.TotalDue), colorRed),
		),
	)
}

// paymentRow QR UPI con el saldo pendiente.
func (g *MarotoPDFGenerator) paymentRow(due *entity.CustomerDue) core.Row {
	return row.New(40).Add(
		col.New(4).Add(code.NewQr(upiLink(g.upiID, g.shopName, due.TotalDue), props.Rect{Percent: 95, Center: true})),
		col.New(8).Add(
			text.New("Scan to pay "+formatRupees(due.TotalDue), props.Text{
				Style: fontstyle.Bold, Size: 10, Top: 8, Left: 3, Color: colorPrimary,
			}),
			text.New("UPI: "+g.upiID, props.Text{Size: 8, Top: 16, Left: 3, Color: colorGray}),
		),
	)
}

// ── helpers ───────────────────────────────────────────────────────────────────

func upiLink(upiID, payee string, amount decimal.Decimal) string {
	q := url.Values{}
	q.Set("pa", upiID)
	q.Set("pn", payee)
	q.Set("am", amount.StringFixed(2))
	q.Set("cu", "INR")
	return "upi://pay?" + q.Encode()
}

// formatRupees agrupa al estilo indio (lakh/crore). Ej: 1234567.5 → "Rs. 12,34,567.50".
// Helvetica no trae el glifo ₹.
func formatRupees(v decimal.Decimal) string {
	sign := ""
	if v.IsNegative() {
		sign = "-"
		v = v.Neg()
	}
	s := v.StringFixed(2)
	intPart, frac := s, ""
	if i := strings.IndexByte(s, '.'); i >= 0 {
		intPart, frac = s[:i], s[i:]
	}
	return "Rs. " + sign + groupIndian(intPart) + frac
}

func groupIndian(s string) string {
	if len(s) <= 3 {
		return s
	}
	head, tail := s[:len(s)-3], s[len(s)-3:]
	var parts []string
	for len(head) > 2 {
		parts = append([]string{head[len(head)-2:]}, parts...)
		head = head[:len(head)-2]
	}
	if head != "" {
		parts = append([]string{head}, parts...)
	}
	return strings.Join(parts, ",") + "," + tail
}
