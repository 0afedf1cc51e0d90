// Package ledger administra el fiado (udhaar): abonos, liquidación y estado de cuenta.
package ledger

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kirana-api/internal/application/ports"
	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

// Tipos de liquidación.
const (
	SettlementFull    = "full"
	SettlementPartial = "partial"
)

// statementSalesLimit ventas incluidas en el estado de cuenta.
const statementSalesLimit = 100

// SettlementResult resultado de un abono.
type SettlementResult struct {
	CustomerName string
	Kind         string
	Paid         decimal.Decimal
	PreviousDue  decimal.Decimal
	RemainingDue decimal.Decimal
	SettledSales int64
}

// LedgerUseCase casos de uso del saldo de fiado.
type LedgerUseCase struct {
	txRunner ports.TxRunner
	dues     repository.DueRepository
	sales    repository.SaleRepository
	pdf      ports.StatementPDFGenerator
	metrics  ports.OrderMetrics
	logger   zerolog.Logger
	now      func() time.Time
}

// NewLedgerUseCase construye el caso de uso. pdf y metrics pueden ser nil.
func NewLedgerUseCase(
	txRunner ports.TxRunner,
	dues repository.DueRepository,
	sales repository.SaleRepository,
	pdf ports.StatementPDFGenerator,
	metrics ports.OrderMetrics,
	logger zerolog.Logger,
) *LedgerUseCase {
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &LedgerUseCase{
		txRunner: txRunner,
		dues:     dues,
		sales:    sales,
		pdf:      pdf,
		metrics:  metrics,
		logger:   logger,
		now:      time.Now,
	}
}

// Settle registra un abono del cliente. amount nil (o >= saldo) liquida todo: el saldo
// queda en cero y las ventas a crédito pendientes se marcan como liquidadas. Un abono
// menor descuenta el saldo y deja una fila PAYMENT con total negativo.
func (uc *LedgerUseCase) Settle(ctx context.Context, tenantID, customerName string, amount *decimal.Decimal) (*SettlementResult, error) {
	if amount != nil && !amount.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidSettlementAmount
	}
	name := parser.CustomerName(customerName)
	if name == entity.WalkInCustomer {
		return nil, domain.ErrNoOutstandingDue
	}

	var res *SettlementResult
	err := uc.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		due, err := repos.Dues.GetForUpdate(ctx, tenantID, name)
		if err != nil {
			return err
		}
		if due == nil || due.TotalDue.IsZero() {
			return domain.ErrNoOutstandingDue
		}
		if due.TotalDue.IsNegative() {
			uc.logger.Error().
				Str("tenant_id", tenantID).
				Str("customer", name).
				Str("total_due", due.TotalDue.String()).
				Msg("saldo de fiado negativo")
			return fmt.Errorf("%w: saldo %s para %s", domain.ErrLedgerInvariant, due.TotalDue.String(), name)
		}

		now := uc.now()
		res = &SettlementResult{CustomerName: due.CustomerName, PreviousDue: due.TotalDue}

		if amount == nil || amount.GreaterThanOrEqual(due.TotalDue) {
			res.Kind = SettlementFull
			res.Paid = due.TotalDue
			res.RemainingDue = decimal.Zero
			due.TotalDue = decimal.Zero
			due.UpdatedAt = now
			if err := repos.Dues.Update(ctx, due); err != nil {
				return err
			}
			n, err := repos.Sales.MarkSettled(ctx, tenantID, due.CustomerName)
			if err != nil {
				return err
			}
			res.SettledSales = n
			return nil
		}

		res.Kind = SettlementPartial
		res.Paid = *amount
		due.TotalDue = due.TotalDue.Sub(*amount)
		due.UpdatedAt = now
		res.RemainingDue = due.TotalDue
		if err := repos.Dues.Update(ctx, due); err != nil {
			return err
		}
		return repos.Sales.Create(ctx, &entity.Sale{
			ID:            uuid.New().String(),
			TenantID:      tenantID,
			TransactionID: uuid.New().String(),
			ItemName:      entity.PaymentMarkerItem,
			Quantity:      decimal.NewFromInt(1),
			TotalPrice:    amount.Neg(),
			TotalCost:     decimal.Zero,
			CustomerName:  due.CustomerName,
			PaymentMode:   entity.PaymentModeCash,
			IsSettled:     true,
			CreatedAt:     now,
		})
	})
	if err != nil {
		return nil, err
	}
	uc.metrics.Settlement(res.Kind)
	uc.logger.Info().
		Str("tenant_id", tenantID).
		Str("customer", res.CustomerName).
		Str("kind", res.Kind).
		Str("paid", res.Paid.String()).
		Msg("abono de fiado registrado")
	return res, nil
}

// ListDues saldos del tenant, mayor saldo primero. onlyOutstanding omite los saldos en cero.
func (uc *LedgerUseCase) ListDues(ctx context.Context, tenantID string, onlyOutstanding bool) ([]*entity.CustomerDue, error) {
	dues, err := uc.dues.ListByTenant(ctx, tenantID)
	if err != nil {
		return nil, err
	}
	if !onlyOutstanding {
		return dues, nil
	}
	out := dues[:0]
	for _, d := range dues {
		if d.TotalDue.GreaterThan(decimal.Zero) {
			out = append(out, d)
		}
	}
	return out, nil
}

// Statement datos del estado de cuenta de un cliente.
func (uc *LedgerUseCase) Statement(ctx context.Context, tenantID, customerName string) (*ports.StatementData, error) {
	name := parser.CustomerName(customerName)
	due, err := uc.dues.Get(ctx, tenantID, name)
	if err != nil {
		return nil, err
	}
	if due == nil {
		return nil, domain.ErrNotFound
	}
	sales, err := uc.sales.ListByCustomer(ctx, tenantID, due.CustomerName, statementSalesLimit)
	if err != nil {
		return nil, err
	}
	return &ports.StatementData{TenantID: tenantID, GeneratedAt: uc.now(), Due: due, Sales: sales}, nil
}

// StatementPDF genera el PDF del estado de cuenta.
func (uc *LedgerUseCase) StatementPDF(ctx context.Context, tenantID, customerName string) ([]byte, error) {
	if uc.pdf == nil {
		return nil, fmt.Errorf("generador de PDF no configurado")
	}
	data, err := uc.Statement(ctx, tenantID, customerName)
	if err != nil {
		return nil, err
	}
	return uc.pdf.GenerateStatementPDF(ctx, *data)
}
