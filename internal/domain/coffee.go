package domain

import (
	"unicode/utf8"

	"github.com/google/uuid"
)

const coffeeNameMin = 3

// Coffee is a named product. Its orders are derived from its ledger.
type Coffee struct {
	id     uuid.UUID
	ledger *Ledger
	name   string
}

func NewCoffee(ledger *Ledger, name string) (*Coffee, error) {
	if ledger == nil {
		return nil, typeError("ledger", "coffee requires a ledger")
	}
	if err := validateCoffeeName(name); err != nil {
		return nil, err
	}
	return &Coffee{
		id:     uuid.New(),
		ledger: ledger,
		name:   name,
	}, nil
}

func validateCoffeeName(name string) error {
	if utf8.RuneCountInString(name) < coffeeNameMin {
		return rangeError("name", "coffee name must be at least 3 characters long")
	}
	return nil
}

func (c *Coffee) ID() uuid.UUID { return c.id }

func (c *Coffee) Name() string {
	bound(c.ledger).mu.RLock()
	defer bound(c.ledger).mu.RUnlock()
	return c.name
}

func (c *Coffee) SetName(name string) error {
	if c.ledger == nil {
		return typeError("coffee", "coffee must be created with NewCoffee")
	}
	if err := validateCoffeeName(name); err != nil {
		return err
	}
	c.ledger.mu.Lock()
	c.name = name
	c.ledger.mu.Unlock()
	return nil
}

// Orders returns every order for this coffee in ledger order.
func (c *Coffee) Orders() []*Order {
	return bound(c.ledger).filter(func(o *Order) bool { return o.coffee == c })
}

// Customers returns the distinct customers who ordered this coffee, in the
// order of their first such order.
func (c *Coffee) Customers() []*Customer {
	l := bound(c.ledger)
	l.mu.RLock()
	defer l.mu.RUnlock()

	seen := make(map[*Customer]struct{})
	out := make([]*Customer, 0)
	for _, o := range l.orders {
		if o.coffee != c {
			continue
		}
		if _, ok := seen[o.customer]; ok {
			continue
		}
		seen[o.customer] = struct{}{}
		out = append(out, o.customer)
	}
	return out
}

func (c *Coffee) NumOrders() int {
	return len(c.Orders())
}

// AveragePrice is the mean order price, or 0 when the coffee was never ordered.
func (c *Coffee) AveragePrice() float64 {
	l := bound(c.ledger)
	l.mu.RLock()
	defer l.mu.RUnlock()

	var (
		sum float64
		n   int
	)
	for _, o := range l.orders {
		if o.coffee == c {
			sum += o.price
			n++
		}
	}
	if n == 0 {
		return 0
	}
	return sum / float64(n)
}
