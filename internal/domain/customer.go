package domain

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

const (
	customerNameMin = 1
	customerNameMax = 15
)

// Customer is a named buyer. Its orders are derived from its ledger.
type Customer struct {
	id     uuid.UUID
	ledger *Ledger
	name   string
}

func NewCustomer(ledger *Ledger, name string) (*Customer, error) {
	if ledger == nil {
		return nil, typeError("ledger", "customer requires a ledger")
	}
	if err := validateCustomerName(name); err != nil {
		return nil, err
	}
	return &Customer{
		id:     uuid.New(),
		ledger: ledger,
		name:   name,
	}, nil
}

func validateCustomerName(name string) error {
	if n := utf8.RuneCountInString(name); n < customerNameMin || n > customerNameMax {
		return rangeError("name", "customer name must be between 1 and 15 characters long")
	}
	return nil
}

func (c *Customer) ID() uuid.UUID { return c.id }

func (c *Customer) Name() string {
	bound(c.ledger).mu.RLock()
	defer bound(c.ledger).mu.RUnlock()
	return c.name
}

func (c *Customer) SetName(name string) error {
	if c.ledger == nil {
		return typeError("customer", "customer must be created with NewCustomer")
	}
	if err := validateCustomerName(name); err != nil {
		return err
	}
	c.ledger.mu.Lock()
	c.name = name
	c.ledger.mu.Unlock()
	return nil
}

// Orders returns every order placed by this customer in ledger order.
func (c *Customer) Orders() []*Order {
	return bound(c.ledger).filter(func(o *Order) bool { return o.customer == c })
}

// Coffees returns the distinct coffees this customer ordered, in the order of
// their first such order.
func (c *Customer) Coffees() []*Coffee {
	l := bound(c.ledger)
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[*Coffee]struct{})
	out := make([]*Coffee, 0)
	for _, o := range l.orders {
		if o.customer != c {
			continue
		}
		if _, ok := seen[o.coffee]; ok {
			continue
		}
		seen[o.coffee] = struct{}{}
		out = append(out, o.coffee)
	}
	return out
}

// CreateOrder places an order for coffee on behalf of c. See NewOrder.
func (c *Customer) CreateOrder(coffee *Coffee, price float64) (*Order, error) {
	return NewOrder(c, coffee, price)
}

// MostAficionado returns the customer with the highest total spend on coffee.
// ok is false when the coffee has no orders. On a tie the customer whose first
// order for the coffee came earliest wins.
func MostAficionado(coffee *Coffee) (*Customer, bool) {
	if coffee == nil {
		return nil, false
	}
	l := bound(coffee.ledger)
	l.mu.RLock()
	defer l.mu.RUnlock()

	totals := make(map[*Customer]float64)
	var firstSeen []*Customer
	for _, o := range l.orders {
		if o.coffee != coffee {
			continue
		}
		if _, ok := totals[o.customer]; !ok {
			firstSeen = append(firstSeen, o.customer)
		}
		totals[o.customer] += o.price
	}
	if len(firstSeen) == 0 {
		return nil, false
	}

	best := firstSeen[0]
	for _, c := range firstSeen[1:] {
		if totals[c] > totals[best] {
			best = c
		}
	}
	return best, true
}
