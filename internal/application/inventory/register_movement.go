package inventory

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Kirana-api/internal/application/dto"
	"github.com/jhoicas/Kirana-api/internal/domain"
)

// expiryLayout formato de fecha de vencimiento en la API.
const expiryLayout = "2006-01-02"

// AddStockFromRequest adapta el request HTTP al caso de uso AddStock.
func (uc *StockUseCase) AddStockFromRequest(ctx context.Context, tenantID string, in dto.AddStockRequest) (*dto.StockResponse, error) {
	var expiry *time.Time
	if s := strings.TrimSpace(in.ExpiryDate); s != "" {
		t, err := time.Parse(expiryLayout, s)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		expiry = &t
	}
	res, err := uc.AddStock(ctx, AddStockInput{
		TenantID:   tenantID,
		ItemName:   in.ItemName,
		Quantity:   in.Quantity,
		Price:      in.Price,
		Cost:       in.CostPrice,
		ExpiryDate: expiry,
	})
	if err != nil {
		return nil, err
	}
	return &dto.StockResponse{
		ItemName:   res.Batch.ItemName,
		BatchID:    res.Batch.ID,
		Merged:     res.Merged,
		NewItem:    res.NewItem,
		BatchQty:   res.Batch.Quantity,
		TotalStock: res.TotalStock,
		Price:      res.Batch.Price,
		Cost:       res.Batch.Cost.Round(2),
	}, nil
}

// ReduceStockFromRequest adapta el request HTTP al caso de uso ReduceStock.
func (uc *StockUseCase) ReduceStockFromRequest(ctx context.Context, tenantID string, in dto.ReduceStockRequest) (*dto.ReduceStockResponse, error) {
	res, err := uc.ReduceStock(ctx, tenantID, in.ItemName, in.Quantity)
	if err != nil {
		return nil, err
	}
	return &dto.ReduceStockResponse{
		ItemName:  res.ItemName,
		Reduced:   res.Reduced,
		Remaining: res.Remaining,
		CostValue: res.CostValue.Round(2),
	}, nil
}
