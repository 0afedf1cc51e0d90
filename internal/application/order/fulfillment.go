package order

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kirana-api/internal/application/ports"
	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/inventory"
	"github.com/jhoicas/Kirana-api/internal/domain/parser"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

// FulfillInput pedido a despachar.
type FulfillInput struct {
	TenantID     string
	Lines        []parser.OrderLine
	PaymentMode  entity.PaymentMode
	CustomerName string
}

// LineResult línea despachada.
type LineResult struct {
	Item       string
	Quantity   decimal.Decimal
	UnitPrice  decimal.Decimal
	TotalPrice decimal.Decimal
	TotalCost  decimal.Decimal
}

// LineFailure línea no despachada. Available solo aplica a stock insuficiente.
type LineFailure struct {
	Item      string
	Requested decimal.Decimal
	Available decimal.Decimal
	Err       error
}

// FulfillResult resultado del pedido completo.
type FulfillResult struct {
	TransactionID string
	PaymentMode   entity.PaymentMode
	CustomerName  string
	Succeeded     []LineResult
	Failed        []LineFailure
	TotalRevenue  decimal.Decimal
	TotalCost     decimal.Decimal
}

// FulfillmentEngine descuenta stock por lotes (FIFO por vencimiento), registra las ventas
// y, si el pedido es fiado, suma la línea al saldo del cliente.
type FulfillmentEngine struct {
	txRunner ports.TxRunner
	defaults *parser.Catalog
	metrics  ports.OrderMetrics
	logger   zerolog.Logger
	now      func() time.Time
}

// NewFulfillmentEngine construye el motor. defaults es el catálogo por defecto usado para
// precios cuando el tenant no tiene uno propio.
func NewFulfillmentEngine(txRunner ports.TxRunner, defaults *parser.Catalog, metrics ports.OrderMetrics, logger zerolog.Logger) *FulfillmentEngine {
	if defaults == nil {
		defaults = parser.DefaultCatalog()
	}
	if metrics == nil {
		metrics = ports.NoopMetrics{}
	}
	return &FulfillmentEngine{txRunner: txRunner, defaults: defaults, metrics: metrics, logger: logger, now: time.Now}
}

// Fulfill procesa cada línea en su propia transacción. Una línea con stock insuficiente
// hace Rollback solo de esa línea y no aborta el resto del pedido.
func (e *FulfillmentEngine) Fulfill(ctx context.Context, in FulfillInput) (*FulfillResult, error) {
	if in.TenantID == "" {
		return nil, domain.ErrInvalidInput
	}
	mode := in.PaymentMode
	if mode != entity.PaymentModeUdhaar {
		mode = entity.PaymentModeCash
	}
	res := &FulfillResult{
		TransactionID: uuid.New().String(),
		PaymentMode:   mode,
		CustomerName:  parser.CustomerName(in.CustomerName),
		TotalRevenue:  decimal.Zero,
		TotalCost:     decimal.Zero,
	}

	for _, line := range in.Lines {
		if !line.Quantity.GreaterThan(decimal.Zero) {
			res.Failed = append(res.Failed, LineFailure{Item: line.Item, Requested: line.Quantity, Err: domain.ErrInvalidInput})
			e.metrics.LineFulfilled(false)
			continue
		}
		lr, err := e.fulfillLine(ctx, in.TenantID, res, line)
		if err != nil {
			failure := LineFailure{Item: line.Item, Requested: line.Quantity, Err: err}
			var stockErr *domain.InsufficientStockError
			if errors.As(err, &stockErr) {
				failure.Available = stockErr.Available
			} else {
				e.logger.Error().Err(err).Str("tenant_id", in.TenantID).Str("item", line.Item).Msg("error despachando línea")
			}
			res.Failed = append(res.Failed, failure)
			e.metrics.LineFulfilled(false)
			continue
		}
		res.Succeeded = append(res.Succeeded, *lr)
		res.TotalRevenue = res.TotalRevenue.Add(lr.TotalPrice)
		res.TotalCost = res.TotalCost.Add(lr.TotalCost)
		e.metrics.LineFulfilled(true)
	}
	return res, nil
}

// fulfillLine: bloquea los lotes del producto (SELECT FOR UPDATE), reparte FIFO,
// actualiza lotes, inserta la venta y el saldo de fiado en la misma transacción.
func (e *FulfillmentEngine) fulfillLine(ctx context.Context, tenantID string, order *FulfillResult, line parser.OrderLine) (*LineResult, error) {
	var out *LineResult
	err := e.txRunner.Run(ctx, func(repos repository.TxRepos) error {
		now := e.now()

		batches, err := repos.Batches.ListByItemForUpdate(ctx, tenantID, line.Item)
		if err != nil {
			return err
		}
		inventory.SortFIFO(batches)

		plan, err := inventory.AllocateFIFO(line.Item, batches, line.Quantity)
		if err != nil {
			return err
		}
		for _, b := range plan.Apply() {
			b.UpdatedAt = now
			if err := repos.Batches.Update(ctx, b); err != nil {
				return err
			}
		}

		unitPrice, err := e.priceLine(ctx, repos, tenantID, line, batches, now)
		if err != nil {
			return err
		}
		total := line.Quantity.Mul(unitPrice)

		sale := &entity.Sale{
			ID:            uuid.New().String(),
			TenantID:      tenantID,
			TransactionID: order.TransactionID,
			ItemName:      line.Item,
			Quantity:      line.Quantity,
			TotalPrice:    total,
			TotalCost:     plan.TotalCost,
			CustomerName:  order.CustomerName,
			PaymentMode:   order.PaymentMode,
			IsSettled:     order.PaymentMode == entity.PaymentModeCash,
			CreatedAt:     now,
		}
		if err := repos.Sales.Create(ctx, sale); err != nil {
			return err
		}

		if order.PaymentMode == entity.PaymentModeUdhaar && order.CustomerName != entity.WalkInCustomer {
			if err := repos.Dues.AddDue(ctx, tenantID, order.CustomerName, total); err != nil {
				return err
			}
		}

		out = &LineResult{
			Item:       line.Item,
			Quantity:   line.Quantity,
			UnitPrice:  unitPrice,
			TotalPrice: total,
			TotalCost:  plan.TotalCost,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// priceLine precio unitario: el de la línea si es > 0; si no, el del catálogo del tenant,
// el del catálogo por defecto o el del lote más reciente. Si la línea trae precio y el
// producto no tiene ninguno registrado, se guarda en el catálogo del tenant.
func (e *FulfillmentEngine) priceLine(
	ctx context.Context,
	repos repository.TxRepos,
	tenantID string,
	line parser.OrderLine,
	batches []*entity.InventoryBatch,
	now time.Time,
) (decimal.Decimal, error) {
	entry, err := repos.Catalog.Get(ctx, tenantID, line.Item)
	if err != nil {
		return decimal.Zero, err
	}
	catalogPrice := decimal.Zero
	if entry != nil {
		catalogPrice = entry.Price
	}
	if catalogPrice.IsZero() {
		catalogPrice = e.defaults.Price(line.Item)
	}

	if line.UnitPrice.GreaterThan(decimal.Zero) {
		if catalogPrice.IsZero() {
			learned := &entity.CatalogEntry{TenantID: tenantID, ItemName: line.Item, Price: line.UnitPrice, UpdatedAt: now}
			if entry != nil {
				learned.Cost = entry.Cost
			}
			if err := repos.Catalog.Upsert(ctx, learned); err != nil {
				return decimal.Zero, err
			}
		}
		return line.UnitPrice, nil
	}
	if catalogPrice.GreaterThan(decimal.Zero) {
		return catalogPrice, nil
	}
	var newest *entity.InventoryBatch
	for _, b := range batches {
		if b.Price.GreaterThan(decimal.Zero) && (newest == nil || b.CreatedAt.After(newest.CreatedAt)) {
			newest = b
		}
	}
	if newest != nil {
		return newest.Price, nil
	}
	return decimal.Zero, nil
}
