package memory

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Kirana-api/internal/domain"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/inventory"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

var (
	_ repository.BatchRepository   = (*BatchRepo)(nil)
	_ repository.SaleRepository    = (*SaleRepo)(nil)
	_ repository.DueRepository     = (*DueRepo)(nil)
	_ repository.CatalogRepository = (*CatalogRepo)(nil)
	_ repository.AliasRepository   = (*AliasRepo)(nil)
)

// ── Lotes ─────────────────────────────────────────────────────────────────────

// BatchRepo lotes en memoria.
type BatchRepo struct{ session }

func copyBatch(b *entity.InventoryBatch) *entity.InventoryBatch {
	c := *b
	if b.ExpiryDate != nil {
		e := *b.ExpiryDate
		c.ExpiryDate = &e
	}
	return &c
}

func (r *BatchRepo) Create(_ context.Context, batch *entity.InventoryBatch) error {
	if batch.ID == "" {
		return domain.ErrInvalidInput
	}
	c := copyBatch(batch)
	r.write(func() {
		if _, ok := r.store.batches[c.ID]; !ok {
			r.store.order = append(r.store.order, c.ID)
		}
		r.store.batches[c.ID] = c
	})
	return nil
}

func (r *BatchRepo) Update(_ context.Context, batch *entity.InventoryBatch) error {
	r.store.mu.RLock()
	_, ok := r.store.batches[batch.ID]
	r.store.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}
	c := copyBatch(batch)
	r.write(func() { r.store.batches[c.ID] = c })
	return nil
}

func (r *BatchRepo) ListByItemForUpdate(ctx context.Context, tenantID, itemName string) ([]*entity.InventoryBatch, error) {
	if err := r.lock(ctx, key("batch", tenantID, itemName)); err != nil {
		return nil, err
	}
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.InventoryBatch
	for _, id := range r.store.order {
		b := r.store.batches[id]
		if b.TenantID == tenantID && strings.EqualFold(b.ItemName, itemName) {
			out = append(out, copyBatch(b))
		}
	}
	inventory.SortFIFO(out)
	return out, nil
}

func (r *BatchRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.InventoryBatch, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.InventoryBatch
	for _, id := range r.store.order {
		if b := r.store.batches[id]; b.TenantID == tenantID {
			out = append(out, copyBatch(b))
		}
	}
	inventory.SortFIFO(out)
	sort.SliceStable(out, func(i, j int) bool {
		return strings.ToLower(out[i].ItemName) < strings.ToLower(out[j].ItemName)
	})
	return out, nil
}

// ── Ventas ────────────────────────────────────────────────────────────────────

// SaleRepo ventas en memoria (solo inserción y marca de liquidado).
type SaleRepo struct{ session }

func (r *SaleRepo) Create(_ context.Context, sale *entity.Sale) error {
	c := *sale
	r.write(func() { r.store.sales = append(r.store.sales, &c) })
	return nil
}

func pendingCredit(s *entity.Sale, tenantID, customerName string) bool {
	return s.TenantID == tenantID &&
		strings.EqualFold(s.CustomerName, customerName) &&
		s.PaymentMode == entity.PaymentModeUdhaar &&
		!s.IsSettled
}

func (r *SaleRepo) MarkSettled(_ context.Context, tenantID, customerName string) (int64, error) {
	r.store.mu.RLock()
	var n int64
	for _, s := range r.store.sales {
		if pendingCredit(s, tenantID, customerName) {
			n++
		}
	}
	r.store.mu.RUnlock()

	r.write(func() {
		for _, s := range r.store.sales {
			if pendingCredit(s, tenantID, customerName) {
				s.IsSettled = true
			}
		}
	})
	return n, nil
}

func (r *SaleRepo) ListByPeriod(_ context.Context, tenantID string, from, to time.Time) ([]*entity.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.TenantID == tenantID && !s.CreatedAt.Before(from) && s.CreatedAt.Before(to) {
			c := *s
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.Before(out[j].CreatedAt) })
	return out, nil
}

func (r *SaleRepo) ListByCustomer(_ context.Context, tenantID, customerName string, limit int) ([]*entity.Sale, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.Sale
	for _, s := range r.store.sales {
		if s.TenantID == tenantID && strings.EqualFold(s.CustomerName, customerName) {
			c := *s
			out = append(out, &c)
		}
	}
	sort.SliceStable(out, func(i, j int) bool { return out[i].CreatedAt.After(out[j].CreatedAt) })
	if limit > 0 && len(out) > limit {
		out = out[:limit]
	}
	return out, nil
}

// ── Saldos de fiado ───────────────────────────────────────────────────────────

// DueRepo saldos por (tenant, cliente).
type DueRepo struct{ session }

func (r *DueRepo) AddDue(ctx context.Context, tenantID, customerName string, amount decimal.Decimal) error {
	k := key(tenantID, customerName)
	if err := r.lock(ctx, key("due", tenantID, customerName)); err != nil {
		return err
	}
	now := time.Now()
	r.write(func() {
		d, ok := r.store.dues[k]
		if !ok {
			d = &entity.CustomerDue{TenantID: tenantID, CustomerName: customerName, TotalDue: decimal.Zero}
			r.store.dues[k] = d
		}
		d.TotalDue = d.TotalDue.Add(amount)
		d.UpdatedAt = now
	})
	return nil
}

func (r *DueRepo) Get(_ context.Context, tenantID, customerName string) (*entity.CustomerDue, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	d, ok := r.store.dues[key(tenantID, customerName)]
	if !ok {
		return nil, nil
	}
	c := *d
	return &c, nil
}

func (r *DueRepo) GetForUpdate(ctx context.Context, tenantID, customerName string) (*entity.CustomerDue, error) {
	if err := r.lock(ctx, key("due", tenantID, customerName)); err != nil {
		return nil, err
	}
	return r.Get(ctx, tenantID, customerName)
}

func (r *DueRepo) Update(_ context.Context, due *entity.CustomerDue) error {
	if due.TotalDue.IsNegative() {
		return fmt.Errorf("%w: saldo negativo para %s", domain.ErrLedgerInvariant, due.CustomerName)
	}
	k := key(due.TenantID, due.CustomerName)
	r.store.mu.RLock()
	_, ok := r.store.dues[k]
	r.store.mu.RUnlock()
	if !ok {
		return domain.ErrNotFound
	}
	c := *due
	r.write(func() { r.store.dues[k] = &c })
	return nil
}

func (r *DueRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.CustomerDue, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.CustomerDue
	for _, d := range r.store.dues {
		if d.TenantID == tenantID {
			c := *d
			out = append(out, &c)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if !out[i].TotalDue.Equal(out[j].TotalDue) {
			return out[i].TotalDue.GreaterThan(out[j].TotalDue)
		}
		return out[i].CustomerName < out[j].CustomerName
	})
	return out, nil
}

// ── Catálogo ──────────────────────────────────────────────────────────────────

// CatalogRepo precios propios por tenant.
type CatalogRepo struct{ session }

func copyEntry(e *entity.CatalogEntry) *entity.CatalogEntry {
	c := *e
	if e.Cost != nil {
		v := *e.Cost
		c.Cost = &v
	}
	return &c
}

func (r *CatalogRepo) ListByTenant(_ context.Context, tenantID string) ([]*entity.CatalogEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	var out []*entity.CatalogEntry
	for _, e := range r.store.catalog {
		if e.TenantID == tenantID {
			out = append(out, copyEntry(e))
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].ItemName < out[j].ItemName })
	return out, nil
}

func (r *CatalogRepo) Get(_ context.Context, tenantID, itemName string) (*entity.CatalogEntry, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	e, ok := r.store.catalog[key(tenantID, itemName)]
	if !ok {
		return nil, nil
	}
	return copyEntry(e), nil
}

func (r *CatalogRepo) Upsert(_ context.Context, entry *entity.CatalogEntry) error {
	if strings.TrimSpace(entry.ItemName) == "" {
		return domain.ErrInvalidInput
	}
	c := copyEntry(entry)
	r.write(func() {
		k := key(c.TenantID, c.ItemName)
		// un costo nil conserva el guardado
		if prev, ok := r.store.catalog[k]; ok && c.Cost == nil && prev.Cost != nil {
			cost := *prev.Cost
			c.Cost = &cost
		}
		r.store.catalog[k] = c
	})
	return nil
}

// ── Alias ─────────────────────────────────────────────────────────────────────

// AliasRepo tabla global de alias.
type AliasRepo struct{ session }

func (r *AliasRepo) List(_ context.Context) ([]*entity.Alias, error) {
	r.store.mu.RLock()
	defer r.store.mu.RUnlock()
	out := make([]*entity.Alias, 0, len(r.store.aliases))
	for _, a := range r.store.aliases {
		c := *a
		out = append(out, &c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Alias < out[j].Alias })
	return out, nil
}

func (r *AliasRepo) Create(_ context.Context, alias *entity.Alias) error {
	k := strings.ToLower(strings.TrimSpace(alias.Alias))
	if k == "" || strings.TrimSpace(alias.ItemName) == "" {
		return domain.ErrInvalidInput
	}
	r.store.mu.Lock()
	defer r.store.mu.Unlock()
	if _, ok := r.store.aliases[k]; ok {
		return domain.ErrDuplicate
	}
	c := *alias
	c.Alias = k
	if c.CreatedAt.IsZero() {
		c.CreatedAt = time.Now()
	}
	r.store.aliases[k] = &c
	return nil
}
