package inventory

import (
	"sort"

	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/shopspring/decimal"
)

// Allocation cantidad tomada de un lote concreto.
type Allocation struct {
	Batch    *entity.InventoryBatch
	Quantity decimal.Decimal
	Cost     decimal.Decimal // Quantity * Batch.Cost
}

// AllocationPlan resultado de repartir una cantidad entre lotes (servicio de dominio).
type AllocationPlan struct {
	Item        string
	Requested   decimal.Decimal
	Available   decimal.Decimal
	Allocations []Allocation
	TotalCost   decimal.Decimal
}

// SortFIFO ordena los lotes por vencimiento ascendente; los lotes sin vencimiento van al final.
// A igual vencimiento gana el lote más antiguo.
func SortFIFO(batches []*entity.InventoryBatch) {
	sort.SliceStable(batches, func(i, j int) bool {
		a, b := batches[i], batches[j]
		switch {
		case a.ExpiryDate == nil && b.ExpiryDate == nil:
			return a.CreatedAt.Before(b.CreatedAt)
		case a.ExpiryDate == nil:
			return false
		case b.ExpiryDate == nil:
			return true
		case !a.ExpiryDate.Equal(*b.ExpiryDate):
			return a.ExpiryDate.Before(*b.ExpiryDate)
		default:
			return a.CreatedAt.Before(b.CreatedAt)
		}
	})
}

// Available suma las cantidades de los lotes.
func Available(batches []*entity.InventoryBatch) decimal.Decimal {
	total := decimal.Zero
	for _, b := range batches {
		total = total.Add(b.Quantity)
	}
	return total
}

// AllocateFIFO reparte requested entre los lotes (ya ordenados FIFO) sin modificarlos.
// Si el stock agregado no alcanza devuelve *domain.InsufficientStockError.
func AllocateFIFO(item string, batches []*entity.InventoryBatch, requested decimal.Decimal) (*AllocationPlan, error) {
	if !requested.GreaterThan(decimal.Zero) {
		return nil, domain.ErrInvalidInput
	}
	available := Available(batches)
	if available.LessThan(requested) {
		return nil, &domain.InsufficientStockError{Item: item, Requested: requested, Available: available}
	}

	plan := &AllocationPlan{
		Item:      item,
		Requested: requested,
		Available: available,
		TotalCost: decimal.Zero,
	}
	remaining := requested
	for _, b := range batches {
		if !remaining.GreaterThan(decimal.Zero) {
			break
		}
		if !b.Quantity.GreaterThan(decimal.Zero) {
			continue
		}
		take := decimal.Min(remaining, b.Quantity)
		cost := take.Mul(b.Cost)
		plan.Allocations = append(plan.Allocations, Allocation{Batch: b, Quantity: take, Cost: cost})
		plan.TotalCost = plan.TotalCost.Add(cost)
		remaining = remaining.Sub(take)
	}
	return plan, nil
}

// Apply descuenta las cantidades del plan en los lotes y devuelve los lotes modificados.
// Un lote agotado queda en cero.
func (p *AllocationPlan) Apply() []*entity.InventoryBatch {
	touched := make([]*entity.InventoryBatch, 0, len(p.Allocations))
	for _, a := range p.Allocations {
		a.Batch.Quantity = a.Batch.Quantity.Sub(a.Quantity)
		touched = append(touched, a.Batch)
	}
	return touched
}

// WeightedAverageCost costo promedio ponderado al sumar una entrada a un lote existente.
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
func WeightedAverageCost(onHand, currentCost, incoming, incomingCost decimal.Decimal) decimal.Decimal {
	sum := onHand.Add(incoming)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := onHand.Mul(currentCost).Add(incoming.Mul(incomingCost))
	return num.Div(sum)
}
