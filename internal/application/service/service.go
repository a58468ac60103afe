package service

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TemirB/coffee-shop/internal/domain"
	"github.com/TemirB/coffee-shop/internal/observability"
)

//go:generate mockgen -destination=service_mock_test.go -package=service github.com/TemirB/coffee-shop/internal/observability Metrics

var ErrNotFound = errors.New("not found")

// OrderPatch carries the fields of an order update. Nil fields keep their
// current value.
type OrderPatch struct {
	CustomerID *uuid.UUID
	CoffeeID   *uuid.UUID
	Price      *float64
}

// Service owns a ledger and the customers and coffees registered against it.
type Service struct {
	ledger  *domain.Ledger
	logger  *zap.Logger
	metrics observability.Metrics

	mu          sync.RWMutex
	customers   map[uuid.UUID]*domain.Customer
	coffees     map[uuid.UUID]*domain.Coffee
	customerSeq []*domain.Customer
	coffeeSeq   []*domain.Coffee
}

func NewService(ledger *domain.Ledger, logger *zap.Logger, metrics observability.Metrics) *Service {
	return &Service{
		ledger:    ledger,
		logger:    logger,
		metrics:   metrics,
		customers: make(map[uuid.UUID]*domain.Customer),
		coffees:   make(map[uuid.UUID]*domain.Coffee),
	}
}

func (s *Service) Ledger() *domain.Ledger { return s.ledger }

func (s *Service) CreateCustomer(name string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := domain.NewCustomer(s.ledger, name)
	if err != nil {
		s.logger.Warn("customer rejected", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	s.addCustomer(c)
	s.logger.Info("customer created", zap.Stringer("customer_id", c.ID()), zap.String("name", name))
	return c, nil
}

func (s *Service) CreateCoffee(name string) (*domain.Coffee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := domain.NewCoffee(s.ledger, name)
	if err != nil {
		s.logger.Warn("coffee rejected", zap.String("name", name), zap.Error(err))
		return nil, err
	}
	s.addCoffee(c)
	s.logger.Info("coffee created", zap.Stringer("coffee_id", c.ID()), zap.String("name", name))
	return c, nil
}

// EnsureCustomer returns the first registered customer called name, creating
// one if there is none.
func (s *Service) EnsureCustomer(name string) (*domain.Customer, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, created, err := s.ensureCustomer(name)
	if err != nil {
		return nil, err
	}
	if created {
		s.addCustomer(c)
		s.logger.Info("customer created", zap.Stringer("customer_id", c.ID()), zap.String("name", name))
	}
	return c, nil
}

func (s *Service) EnsureCoffee(name string) (*domain.Coffee, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, created, err := s.ensureCoffee(name)
	if err != nil {
		return nil, err
	}
	if created {
		s.addCoffee(c)
		s.logger.Info("coffee created", zap.Stringer("coffee_id", c.ID()), zap.String("name", name))
	}
	return c, nil
}

func (s *Service) Customer(id uuid.UUID) (*domain.Customer, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.customer(id)
}

func (s *Service) Coffee(id uuid.UUID) (*domain.Coffee, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.coffee(id)
}

// Customers lists customers in registration order.
func (s *Service) Customers() []*domain.Customer {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Customer(nil), s.customerSeq...)
}

func (s *Service) Coffees() []*domain.Coffee {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return append([]*domain.Coffee(nil), s.coffeeSeq...)
}

func (s *Service) RenameCustomer(id uuid.UUID, name string) (*domain.Customer, error) {
	c, err := s.Customer(id)
	if err != nil {
		return nil, err
	}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	s.logger.Info("customer renamed", zap.Stringer("customer_id", id), zap.String("name", name))
	return c, nil
}

func (s *Service) RenameCoffee(id uuid.UUID, name string) (*domain.Coffee, error) {
	c, err := s.Coffee(id)
	if err != nil {
		return nil, err
	}
	if err := c.SetName(name); err != nil {
		return nil, err
	}
	s.logger.Info("coffee renamed", zap.Stringer("coffee_id", id), zap.String("name", name))
	return c, nil
}

// PlaceOrder records an order between two registered entities.
func (s *Service) PlaceOrder(customerID, coffeeID uuid.UUID, price float64) (*domain.Order, error) {
	s.mu.RLock()
	customer, err := s.customer(customerID)
	if err != nil {
		s.mu.RUnlock()
		return nil, err
	}
	coffee, err := s.coffee(coffeeID)
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	return s.place(SourceAPI, customer, coffee, price)
}

// PlaceOrderByName resolves both names with EnsureCustomer/EnsureCoffee
// semantics. Entities created here are registered only if the order is
// accepted.
func (s *Service) PlaceOrderByName(customerName, coffeeName string, price float64) (*domain.Order, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	customer, newCustomer, err := s.ensureCustomer(customerName)
	if err != nil {
		s.reject(SourceFeed, err)
		return nil, err
	}
	coffee, newCoffee, err := s.ensureCoffee(coffeeName)
	if err != nil {
		s.reject(SourceFeed, err)
		return nil, err
	}

	o, err := s.place(SourceFeed, customer, coffee, price)
	if err != nil {
		return nil, err
	}
	if newCustomer {
		s.addCustomer(customer)
		s.logger.Info("customer created", zap.Stringer("customer_id", customer.ID()), zap.String("name", customerName))
	}
	if newCoffee {
		s.addCoffee(coffee)
		s.logger.Info("coffee created", zap.Stringer("coffee_id", coffee.ID()), zap.String("name", coffeeName))
	}
	return o, nil
}

func (s *Service) Order(id uuid.UUID) (*domain.Order, error) {
	o, ok := s.ledger.Order(id)
	if !ok {
		return nil, fmt.Errorf("order %s: %w", id, ErrNotFound)
	}
	return o, nil
}

// Orders returns the whole ledger in insertion order.
func (s *Service) Orders() []*domain.Order {
	return s.ledger.All()
}

// UpdateOrder applies patch to the order. Every field is validated before
// any is assigned.
func (s *Service) UpdateOrder(id uuid.UUID, patch OrderPatch) (*domain.Order, error) {
	o, err := s.Order(id)
	if err != nil {
		return nil, err
	}

	var (
		customer *domain.Customer
		coffee   *domain.Coffee
	)
	s.mu.RLock()
	if patch.CustomerID != nil {
		customer, err = s.customer(*patch.CustomerID)
	}
	if err == nil && patch.CoffeeID != nil {
		coffee, err = s.coffee(*patch.CoffeeID)
	}
	s.mu.RUnlock()
	if err != nil {
		return nil, err
	}

	if err := o.Apply(customer, coffee, patch.Price); err != nil {
		s.logger.Warn("order update rejected", zap.Stringer("order_id", id), zap.Error(err))
		return nil, err
	}
	customer, coffee, price := o.Fields()
	s.logger.Info("order updated",
		zap.Stringer("order_id", id),
		zap.Stringer("customer_id", customer.ID()),
		zap.Stringer("coffee_id", coffee.ID()),
		zap.Float64("price", price),
	)
	return o, nil
}

func (s *Service) CustomerOrders(id uuid.UUID) ([]*domain.Order, error) {
	c, err := s.Customer(id)
	if err != nil {
		return nil, err
	}
	return c.Orders(), nil
}

func (s *Service) CustomerCoffees(id uuid.UUID) ([]*domain.Coffee, error) {
	c, err := s.Customer(id)
	if err != nil {
		return nil, err
	}
	return c.Coffees(), nil
}

func (s *Service) CoffeeOrders(id uuid.UUID) ([]*domain.Order, error) {
	c, err := s.Coffee(id)
	if err != nil {
		return nil, err
	}
	return c.Orders(), nil
}

func (s *Service) CoffeeCustomers(id uuid.UUID) ([]*domain.Customer, error) {
	c, err := s.Coffee(id)
	if err != nil {
		return nil, err
	}
	return c.Customers(), nil
}

func (s *Service) CoffeeStats(id uuid.UUID) (CoffeeStats, error) {
	c, err := s.Coffee(id)
	if err != nil {
		return CoffeeStats{}, err
	}
	return CoffeeStats{
		NumOrders:    c.NumOrders(),
		AveragePrice: c.AveragePrice(),
	}, nil
}

// Aficionado returns nil without error when the coffee has no orders.
func (s *Service) Aficionado(id uuid.UUID) (*domain.Customer, error) {
	c, err := s.Coffee(id)
	if err != nil {
		return nil, err
	}
	best, ok := domain.MostAficionado(c)
	if !ok {
		return nil, nil
	}
	return best, nil
}

func (s *Service) place(src Source, customer *domain.Customer, coffee *domain.Coffee, price float64) (*domain.Order, error) {
	t0 := time.Now()
	o, err := domain.NewOrder(customer, coffee, price)
	if err != nil {
		s.reject(src, err)
		return nil, err
	}

	s.metrics.ObserveOrder(string(src), price)
	s.logger.Info("order placed",
		zap.Stringer("order_id", o.ID()),
		zap.String("customer", customer.Name()),
		zap.String("coffee", coffee.Name()),
		zap.Float64("price", price),
		zap.String("source", string(src)),
		zap.Float64("append_ms", convertToMs(t0)),
	)
	return o, nil
}

func (s *Service) reject(src Source, err error) {
	kind := domain.KindOf(err).String()
	s.metrics.ObserveRejected(string(src), kind)
	s.logger.Warn("order rejected",
		zap.String("source", string(src)),
		zap.String("kind", kind),
		zap.Error(err),
	)
}

// The helpers below expect s.mu to be held.

func (s *Service) customer(id uuid.UUID) (*domain.Customer, error) {
	c, ok := s.customers[id]
	if !ok {
		return nil, fmt.Errorf("customer %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *Service) coffee(id uuid.UUID) (*domain.Coffee, error) {
	c, ok := s.coffees[id]
	if !ok {
		return nil, fmt.Errorf("coffee %s: %w", id, ErrNotFound)
	}
	return c, nil
}

func (s *Service) ensureCustomer(name string) (*domain.Customer, bool, error) {
	for _, c := range s.customerSeq {
		if c.Name() == name {
			return c, false, nil
		}
	}
	c, err := domain.NewCustomer(s.ledger, name)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func (s *Service) ensureCoffee(name string) (*domain.Coffee, bool, error) {
	for _, c := range s.coffeeSeq {
		if c.Name() == name {
			return c, false, nil
		}
	}
	c, err := domain.NewCoffee(s.ledger, name)
	if err != nil {
		return nil, false, err
	}
	return c, true, nil
}

func (s *Service) addCustomer(c *domain.Customer) {
	s.customers[c.ID()] = c
	s.customerSeq = append(s.customerSeq, c)
	s.logger.Debug("customer registered", zap.Stringer("customer_id", c.ID()))
}

func (s *Service) addCoffee(c *domain.Coffee) {
	s.coffees[c.ID()] = c
	s.coffeeSeq = append(s.coffeeSeq, c)
	s.logger.Debug("coffee registered", zap.Stringer("coffee_id", c.ID()))
}
