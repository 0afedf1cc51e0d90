// Package memory implementa los repositorios en memoria (STORE_DRIVER=memory y tests).
// Las transacciones guardan las escrituras en un diario que se aplica en el Commit;
// los bloqueos por (tenant, producto) y (tenant, cliente) reemplazan a SELECT FOR UPDATE.
package memory

import (
	"context"
	"strings"
	"sync"

	"github.com/jhoicas/Kirana-api/internal/application/ports"
	"github.com/jhoicas/Kirana-api/internal/domain/entity"
	"github.com/jhoicas/Kirana-api/internal/domain/repository"
)

var _ ports.TxRunner = (*Store)(nil)

// Store datos en memoria de todos los tenants.
type Store struct {
	mu      sync.RWMutex
	batches map[string]*entity.InventoryBatch // id → lote
	order   []string                          // ids en orden de creación
	sales   []*entity.Sale
	dues    map[string]*entity.CustomerDue  // tenant|cliente
	catalog map[string]*entity.CatalogEntry // tenant|producto
	aliases map[string]*entity.Alias        // alias

	locks *keyedLocks
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{
		batches: make(map[string]*entity.InventoryBatch),
		dues:    make(map[string]*entity.CustomerDue),
		catalog: make(map[string]*entity.CatalogEntry),
		aliases: make(map[string]*entity.Alias),
		locks:   newKeyedLocks(),
	}
}

// Batches repositorio de lotes sin transacción.
func (s *Store) Batches() *BatchRepo { return &BatchRepo{session{store: s}} }

// Sales repositorio de ventas sin transacción.
func (s *Store) Sales() *SaleRepo { return &SaleRepo{session{store: s}} }

// Dues repositorio de saldos sin transacción.
func (s *Store) Dues() *DueRepo { return &DueRepo{session{store: s}} }

// Catalog repositorio de catálogo sin transacción.
func (s *Store) Catalog() *CatalogRepo { return &CatalogRepo{session{store: s}} }

// Aliases repositorio global de alias.
func (s *Store) Aliases() *AliasRepo { return &AliasRepo{session{store: s}} }

// Run ejecuta fn con repositorios atados a una transacción. Si fn devuelve error
// el diario se descarta (Rollback); si no, se aplica completo (Commit).
func (s *Store) Run(ctx context.Context, fn func(repos repository.TxRepos) error) error {
	tx := &memTx{store: s, held: make(map[string]chan struct{})}
	defer tx.release()

	se := session{store: s, tx: tx}
	repos := repository.TxRepos{
		Batches: &BatchRepo{se},
		Sales:   &SaleRepo{se},
		Dues:    &DueRepo{se},
		Catalog: &CatalogRepo{se},
	}
	if err := fn(repos); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, op := range tx.ops {
		op()
	}
	return nil
}

// memTx transacción en curso: bloqueos tomados y escrituras pendientes.
type memTx struct {
	store *Store
	held  map[string]chan struct{}
	keys  []string
	ops   []func()
}

func (t *memTx) lock(ctx context.Context, key string) error {
	if _, ok := t.held[key]; ok {
		return nil
	}
	ch := t.store.locks.get(key)
	select {
	case ch <- struct{}{}:
	case <-ctx.Done():
		return ctx.Err()
	}
	t.held[key] = ch
	t.keys = append(t.keys, key)
	return nil
}

func (t *memTx) release() {
	for i := len(t.keys) - 1; i >= 0; i-- {
		<-t.held[t.keys[i]]
	}
	t.held = nil
	t.keys = nil
}

// session acceso al store, dentro o fuera de una transacción.
type session struct {
	store *Store
	tx    *memTx
}

// write aplica op ya (sin transacción) o la agrega al diario.
func (se session) write(op func()) {
	if se.tx != nil {
		se.tx.ops = append(se.tx.ops, op)
		return
	}
	se.store.mu.Lock()
	defer se.store.mu.Unlock()
	op()
}

// lock toma el bloqueo de fila solo dentro de una transacción.
func (se session) lock(ctx context.Context, key string) error {
	if se.tx == nil {
		return nil
	}
	return se.tx.lock(ctx, key)
}

// keyedLocks un semáforo de capacidad 1 por clave; permite cancelar la espera con ctx.
type keyedLocks struct {
	mu sync.Mutex
	m  map[string]chan struct{}
}

func newKeyedLocks() *keyedLocks {
	return &keyedLocks{m: make(map[string]chan struct{})}
}

func (k *keyedLocks) get(key string) chan struct{} {
	k.mu.Lock()
	defer k.mu.Unlock()
	ch, ok := k.m[key]
	if !ok {
		ch = make(chan struct{}, 1)
		k.m[key] = ch
	}
	return ch
}

func key(parts ...string) string {
	for i, p := range parts {
		parts[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(parts, "|")
}
