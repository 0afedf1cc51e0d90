// Package analytics contiene los reportes de ventas de la tienda (hoy, mes, día puntual).
package analytics

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kirana-api/internal/application/dto"
	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

// DefaultTimezone zona horaria de la tienda si la configuración no indica otra.
const DefaultTimezone = "Asia/Kolkata"

const dateLayout = "2006-01-02"

// SalesReportUseCase arma los reportes de ventas en la zona horaria de la tienda.
// Los días se cortan a medianoche local; los pedidos se agrupan por transaction_id.
type SalesReportUseCase struct {
	saleRepo repository.SaleRepository
	loc      *time.Location
	now      func() time.Time
}

// NewSalesReportUseCase construye el caso de uso. loc nil usa UTC.
func NewSalesReportUseCase(saleRepo repository.SaleRepository, loc *time.Location) *SalesReportUseCase {
	if loc == nil {
		loc = time.UTC
	}
	return &SalesReportUseCase{saleRepo: saleRepo, loc: loc, now: time.Now}
}

// LoadLocation carga la zona horaria; vacío usa DefaultTimezone.
func LoadLocation(name string) (*time.Location, error) {
	if strings.TrimSpace(name) == "" {
		name = DefaultTimezone
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("zona horaria %q: %w", name, err)
	}
	return loc, nil
}

// Today ventas del día en curso.
func (uc *SalesReportUseCase) Today(ctx context.Context, tenantID string) (*dto.SalesReportDTO, error) {
	now := uc.now().In(uc.loc)
	start := time.Date(now.Year(), now.Month(), now.Day(), 0, 0, 0, 0, uc.loc)
	return uc.report(ctx, tenantID, start.Format(dateLayout), start, start.AddDate(0, 0, 1), false)
}

// Month ventas del mes en curso, con totales por día.
func (uc *SalesReportUseCase) Month(ctx context.Context, tenantID string) (*dto.SalesReportDTO, error) {
	now := uc.now().In(uc.loc)
	start := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, uc.loc)
	return uc.report(ctx, tenantID, start.Format("January 2006"), start, start.AddDate(0, 1, 0), true)
}

// Date ventas de un día puntual (YYYY-MM-DD, hora local de la tienda).
func (uc *SalesReportUseCase) Date(ctx context.Context, tenantID, date string) (*dto.SalesReportDTO, error) {
	day, err := time.ParseInLocation(dateLayout, date, uc.loc)
	if err != nil {
		return nil, domain.ErrInvalidInput
	}
	return uc.report(ctx, tenantID, day.Format(dateLayout), day, day.AddDate(0, 0, 1), false)
}

func (uc *SalesReportUseCase) report(ctx context.Context, tenantID, label string, from, to time.Time, daily bool) (*dto.SalesReportDTO, error) {
	sales, err := uc.saleRepo.ListByPeriod(ctx, tenantID, from, to)
	if err != nil {
		return nil, err
	}

	out := &dto.SalesReportDTO{
		Period:       label,
		From:         from,
		To:           to,
		TotalRevenue: decimal.Zero,
		TotalCost:    decimal.Zero,
		CashRevenue:  decimal.Zero,
		CreditIssued: decimal.Zero,
		Collected:    decimal.Zero,
		ItemsSold:    []dto.ItemSoldDTO{},
		Orders:       []dto.SaleOrderDTO{},
	}

	type itemAcc struct {
		qty, revenue, cost decimal.Decimal
	}
	items := make(map[string]*itemAcc)
	orders := make(map[string]*dto.SaleOrderDTO)
	orderIDs := make([]string, 0)
	days := make(map[string]*dto.DailyTotalDTO)
	dayOrders := make(map[string]map[string]struct{})

	for _, s := range sales {
		// Los abonos parciales no son ventas: se informan aparte.
		if s.IsPayment() {
			out.Collected = out.Collected.Add(s.TotalPrice.Neg())
			continue
		}
		out.TotalRevenue = out.TotalRevenue.Add(s.TotalPrice)
		out.TotalCost = out.TotalCost.Add(s.TotalCost)
		if s.PaymentMode == entity.PaymentModeUdhaar {
			out.CreditIssued = out.CreditIssued.Add(s.TotalPrice)
		} else {
			out.CashRevenue = out.CashRevenue.Add(s.TotalPrice)
		}

		acc, ok := items[s.ItemName]
		if !ok {
			acc = &itemAcc{}
			items[s.ItemName] = acc
		}
		acc.qty = acc.qty.Add(s.Quantity)
		acc.revenue = acc.revenue.Add(s.TotalPrice)
		acc.cost = acc.cost.Add(s.TotalCost)

		txID := s.TransactionID
		if txID == "" {
			txID = s.ID
		}
		o, ok := orders[txID]
		if !ok {
			o = &dto.SaleOrderDTO{
				TransactionID: txID,
				CustomerName:  s.CustomerName,
				PaymentMode:   string(s.PaymentMode),
				Total:         decimal.Zero,
				CreatedAt:     s.CreatedAt.In(uc.loc),
			}
			orders[txID] = o
			orderIDs = append(orderIDs, txID)
		}
		o.Total = o.Total.Add(s.TotalPrice)
		o.Lines = append(o.Lines, dto.SaleLineDTO{
			ItemName:   s.ItemName,
			Quantity:   s.Quantity,
			TotalPrice: s.TotalPrice,
			IsSettled:  s.IsSettled,
		})

		if daily {
			key := s.CreatedAt.In(uc.loc).Format(dateLayout)
			d, ok := days[key]
			if !ok {
				d = &dto.DailyTotalDTO{Date: key}
				days[key] = d
				dayOrders[key] = make(map[string]struct{})
			}
			d.Revenue = d.Revenue.Add(s.TotalPrice)
			d.Quantity = d.Quantity.Add(s.Quantity)
			dayOrders[key][txID] = struct{}{}
		}
	}

	out.GrossMargin = out.TotalRevenue.Sub(out.TotalCost)
	hundred := decimal.NewFromInt(100)
	for name, acc := range items {
		margin := decimal.Zero
		if acc.revenue.GreaterThan(decimal.Zero) {
			margin = acc.revenue.Sub(acc.cost).Div(acc.revenue).Mul(hundred).Round(2)
		}
		out.ItemsSold = append(out.ItemsSold, dto.ItemSoldDTO{
			ItemName:     name,
			QuantitySold: acc.qty,
			Revenue:      acc.revenue,
			MarginPct:    margin,
		})
	}
	sort.Slice(out.ItemsSold, func(i, j int) bool {
		a, b := out.ItemsSold[i], out.ItemsSold[j]
		if !a.Revenue.Equal(b.Revenue) {
			return a.Revenue.GreaterThan(b.Revenue)
		}
		return a.ItemName < b.ItemName
	})

	// Pedidos: más reciente primero.
	for i := len(orderIDs) - 1; i >= 0; i-- {
		out.Orders = append(out.Orders, *orders[orderIDs[i]])
	}
	out.OrderCount = len(out.Orders)

	if daily {
		for key, d := range days {
			d.Orders = len(dayOrders[key])
			out.Daily = append(out.Daily, *d)
		}
		sort.Slice(out.Daily, func(i, j int) bool { return out.Daily[i].Date < out.Daily[j].Date })
	}
	return out, nil
}
