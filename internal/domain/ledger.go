package domain

import (
	"sync"

	"github.com/google/uuid"
)

// Ledger is the append-only record of every order successfully constructed
// against it. Customers and coffees are bound to one ledger at construction
// and their derived queries are filters over it.
//
// The lock guards the order slice and every field of the entities bound to
// the ledger, so a scan never observes a half-built or half-reassigned order.
type Ledger struct {
	mu     sync.RWMutex
	orders []*Order
}

// unbound stands in for the ledger of an entity that was not built by its
// constructor. It never receives orders.
var unbound = &Ledger{}

func bound(l *Ledger) *Ledger {
	if l == nil {
		return unbound
	}
	return l
}

func NewLedger() *Ledger {
	return &Ledger{}
}

// Reset drops every recorded order. Entities created before Reset stay valid
// but no longer have any orders.
func (l *Ledger) Reset() {
	l.mu.Lock()
	l.orders = nil
	l.mu.Unlock()
}

func (l *Ledger) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.orders)
}

// All returns a snapshot of the ledger in insertion order.
func (l *Ledger) All() []*Order {
	return l.filter(func(*Order) bool { return true })
}

func (l *Ledger) Order(id uuid.UUID) (*Order, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, o := range l.orders {
		if o.id == id {
			return o, true
		}
	}
	return nil, false
}

func (l *Ledger) append(o *Order) {
	l.mu.Lock()
	l.orders = append(l.orders, o)
	l.mu.Unlock()
}

// filter runs keep under the read lock. keep must read fields directly and
// must not call locking accessors.
func (l *Ledger) filter(keep func(*Order) bool) []*Order {
	l.mu.RLock()
	defer l.mu.RUnlock()
	out := make([]*Order, 0)
	for _, o := range l.orders {
		if keep(o) {
			out = append(out, o)
		}
	}
	return out
}
