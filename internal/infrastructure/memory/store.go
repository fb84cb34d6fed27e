package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/jhoicas/cafe-pos-api/internal/domain/entity"
	"github.com/jhoicas/cafe-pos-api/internal/domain/repository"
)

// row envuelve una entidad con su orden de inserción (desempate en listados por fecha).
type row[T any] struct {
	seq uint64
	val T
}

// state contiene todos los datos; las transacciones trabajan sobre una copia.
type state struct {
	nextSeq   uint64
	products  map[string]row[entity.Product]
	orders    map[string]row[entity.Order]
	movements []row[entity.StockMovement]
	suppliers map[string]row[entity.Supplier]
	invoices  map[string]row[entity.PurchaseInvoice]
	users     map[string]row[entity.User]
	counters  map[string]int64
}

func newState() *state {
	return &state{
		products:  map[string]row[entity.Product]{},
		orders:    map[string]row[entity.Order]{},
		suppliers: map[string]row[entity.Supplier]{},
		invoices:  map[string]row[entity.PurchaseInvoice]{},
		users:     map[string]row[entity.User]{},
		counters:  map[string]int64{},
	}
}

func (s *state) seq() uint64 {
	s.nextSeq++
	return s.nextSeq
}

// clone copia profunda; órdenes y facturas copian sus slices de líneas.
func (s *state) clone() *state {
	c := &state{
		nextSeq:   s.nextSeq,
		products:  make(map[string]row[entity.Product], len(s.products)),
		orders:    make(map[string]row[entity.Order], len(s.orders)),
		movements: append([]row[entity.StockMovement](nil), s.movements...),
		suppliers: make(map[string]row[entity.Supplier], len(s.suppliers)),
		invoices:  make(map[string]row[entity.PurchaseInvoice], len(s.invoices)),
		users:     make(map[string]row[entity.User], len(s.users)),
		counters:  make(map[string]int64, len(s.counters)),
	}
	for k, v := range s.products {
		c.products[k] = v
	}
	for k, v := range s.orders {
		v.val = copyOrder(v.val)
		c.orders[k] = v
	}
	for k, v := range s.suppliers {
		c.suppliers[k] = v
	}
	for k, v := range s.invoices {
		v.val = copyInvoice(v.val)
		c.invoices[k] = v
	}
	for k, v := range s.users {
		c.users[k] = v
	}
	for k, v := range s.counters {
		c.counters[k] = v
	}
	return c
}

// access abstrae cómo un repositorio llega al estado: con el mutex del Store o dentro de una transacción.
type access interface {
	read(fn func(st *state) error) error
	write(fn func(st *state) error) error
}

type lockedAccess struct{ s *Store }

func (a lockedAccess) read(fn func(st *state) error) error {
	a.s.mu.RLock()
	defer a.s.mu.RUnlock()
	return fn(a.s.st)
}

func (a lockedAccess) write(fn func(st *state) error) error {
	a.s.mu.Lock()
	defer a.s.mu.Unlock()
	return fn(a.s.st)
}

// txAccess opera sobre la copia privada de la transacción; el Store ya está bloqueado.
type txAccess struct{ st *state }

func (a txAccess) read(fn func(st *state) error) error  { return fn(a.st) }
func (a txAccess) write(fn func(st *state) error) error { return fn(a.st) }

// Store persistencia en memoria para desarrollo y tests, con la misma semántica transaccional que Postgres:
// Run serializa las transacciones y publica la copia solo si fn no falla.
type Store struct {
	mu sync.RWMutex
	st *state
}

// New crea un Store vacío.
func New() *Store {
	return &Store{st: newState()}
}

var _ repository.TxRunner = (*Store)(nil)

// Repos devuelve repositorios fuera de transacción (cada llamada es atómica por sí misma).
func (s *Store) Repos() repository.Repos {
	return reposFor(lockedAccess{s: s})
}

// Run ejecuta fn sobre una copia del estado; Commit = reemplazar el estado, Rollback = descartar la copia.
func (s *Store) Run(ctx context.Context, fn func(r repository.Repos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	work := s.st.clone()
	if err := fn(reposFor(txAccess{st: work})); err != nil {
		return err
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	s.st = work
	return nil
}

func reposFor(a access) repository.Repos {
	return repository.Repos{
		Products:  &ProductRepo{a: a},
		Orders:    &OrderRepo{a: a},
		Movements: &StockMovementRepo{a: a},
		Suppliers: &SupplierRepo{a: a},
		Invoices:  &PurchaseInvoiceRepo{a: a},
		Users:     &UserRepo{a: a},
		Sequences: &SequenceRepo{a: a},
	}
}

// newestFirst ordena por CreatedAt descendente y, a igual fecha, por inserción descendente.
func newestFirst[T any](rows []row[T], createdAt func(T) int64) {
	sort.SliceStable(rows, func(i, j int) bool {
		ti, tj := createdAt(rows[i].val), createdAt(rows[j].val)
		if ti != tj {
			return ti > tj
		}
		return rows[i].seq > rows[j].seq
	})
}

// page aplica offset/limit; limit <= 0 significa sin límite.
func page[T any](items []T, limit, offset int) []T {
	if offset < 0 {
		offset = 0
	}
	if offset >= len(items) {
		return []T{}
	}
	items = items[offset:]
	if limit > 0 && limit < len(items) {
		items = items[:limit]
	}
	return items
}

func copyOrder(o entity.Order) entity.Order {
	o.Items = append([]entity.OrderItem(nil), o.Items...)
	if o.VoidedAt != nil {
		t := *o.VoidedAt
		o.VoidedAt = &t
	}
	return o
}

func copyInvoice(inv entity.PurchaseInvoice) entity.PurchaseInvoice {
	inv.Lines = append([]entity.PurchaseInvoiceLine(nil), inv.Lines...)
	if inv.PostedAt != nil {
		t := *inv.PostedAt
		inv.PostedAt = &t
	}
	inv.Supplier = nil
	return inv
}
