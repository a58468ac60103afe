package domain

import (
	"math"

	"github.com/google/uuid"
)

const (
	PriceMin = 1.0
	PriceMax = 10.0
)

// Order links one customer and one coffee at a price. It holds non-owning
// references; the ledger it was appended to is the customer's.
type Order struct {
	id       uuid.UUID
	ledger   *Ledger
	customer *Customer
	coffee   *Coffee
	price    float64
}

// NewOrder validates its arguments and, only if all of them pass, appends the
// new order to the ledger shared by customer and coffee.
func NewOrder(customer *Customer, coffee *Coffee, price float64) (*Order, error) {
	if err := validateCustomer(customer); err != nil {
		return nil, err
	}
	if err := validateCoffee(coffee); err != nil {
		return nil, err
	}
	if err := validatePrice(price); err != nil {
		return nil, err
	}
	if coffee.ledger != customer.ledger {
		return nil, rangeError("coffee", "coffee belongs to a different ledger than the customer")
	}

	o := &Order{
		id:       uuid.New(),
		ledger:   customer.ledger,
		customer: customer,
		coffee:   coffee,
		price:    price,
	}
	o.ledger.append(o)
	return o, nil
}

func validateCustomer(c *Customer) error {
	if c == nil || c.ledger == nil {
		return typeError("customer", "customer must be a Customer created with NewCustomer")
	}
	return nil
}

func validateCoffee(c *Coffee) error {
	if c == nil || c.ledger == nil {
		return typeError("coffee", "coffee must be a Coffee created with NewCoffee")
	}
	return nil
}

func validatePrice(p float64) error {
	if math.IsNaN(p) {
		return typeError("price", "price must be a number")
	}
	if p < PriceMin || p > PriceMax {
		return rangeError("price", "price must be between 1.0 and 10.0")
	}
	return nil
}

func (o *Order) ID() uuid.UUID { return o.id }

func (o *Order) Customer() *Customer {
	bound(o.ledger).mu.RLock()
	defer bound(o.ledger).mu.RUnlock()
	return o.customer
}

func (o *Order) Coffee() *Coffee {
	bound(o.ledger).mu.RLock()
	defer bound(o.ledger).mu.RUnlock()
	return o.coffee
}

func (o *Order) Price() float64 {
	bound(o.ledger).mu.RLock()
	defer bound(o.ledger).mu.RUnlock()
	return o.price
}

// Fields reads customer, coffee and price in one consistent view.
func (o *Order) Fields() (*Customer, *Coffee, float64) {
	bound(o.ledger).mu.RLock()
	defer bound(o.ledger).mu.RUnlock()
	return o.customer, o.coffee, o.price
}

func (o *Order) SetCustomer(c *Customer) error {
	if err := o.checkCustomer(c); err != nil {
		return err
	}
	o.ledger.mu.Lock()
	o.customer = c
	o.ledger.mu.Unlock()
	return nil
}

func (o *Order) SetCoffee(c *Coffee) error {
	if err := o.checkCoffee(c); err != nil {
		return err
	}
	o.ledger.mu.Lock()
	o.coffee = c
	o.ledger.mu.Unlock()
	return nil
}

func (o *Order) SetPrice(p float64) error {
	if o.ledger == nil {
		return unboundOrder()
	}
	if err := validatePrice(p); err != nil {
		return err
	}
	o.ledger.mu.Lock()
	o.price = p
	o.ledger.mu.Unlock()
	return nil
}

// Update reassigns all three fields at once. Nothing is assigned unless every
// value passes the same checks the individual setters apply.
func (o *Order) Update(customer *Customer, coffee *Coffee, price float64) error {
	if err := validateCustomer(customer); err != nil {
		return err
	}
	if err := validateCoffee(coffee); err != nil {
		return err
	}
	return o.Apply(customer, coffee, &price)
}

// Apply patches any subset of the fields under one write lock, so concurrent
// patches touching different fields never overwrite each other. A nil argument
// keeps the current value. Nothing is assigned unless every resulting value
// passes the setter checks.
func (o *Order) Apply(customer *Customer, coffee *Coffee, price *float64) error {
	if o.ledger == nil {
		return unboundOrder()
	}
	o.ledger.mu.Lock()
	defer o.ledger.mu.Unlock()

	c, k, p := o.customer, o.coffee, o.price
	if customer != nil {
		c = customer
	}
	if coffee != nil {
		k = coffee
	}
	if price != nil {
		p = *price
	}
	if err := o.checkCustomer(c); err != nil {
		return err
	}
	if err := o.checkCoffee(k); err != nil {
		return err
	}
	if err := validatePrice(p); err != nil {
		return err
	}
	o.customer, o.coffee, o.price = c, k, p
	return nil
}

func unboundOrder() error {
	return typeError("order", "order must be created with NewOrder")
}

// checkCustomer and checkCoffee take no locks; they only read immutable
// ledger pointers.
func (o *Order) checkCustomer(c *Customer) error {
	if err := validateCustomer(c); err != nil {
		return err
	}
	if o.ledger == nil {
		return unboundOrder()
	}
	if c.ledger != o.ledger {
		return rangeError("customer", "customer belongs to a different ledger than the order")
	}
	return nil
}

func (o *Order) checkCoffee(c *Coffee) error {
	if err := validateCoffee(c); err != nil {
		return err
	}
	if o.ledger == nil {
		return unboundOrder()
	}
	if c.ledger != o.ledger {
		return rangeError("coffee", "coffee belongs to a different ledger than the order")
	}
	return nil
}
