// Command coffeeshop walks through the coffee shop model: it registers a few
// customers and coffees, places orders, prints the derived queries and shows
// the validation failures.
package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/TemirB/coffee-shop/internal/domain"
)

func main() {
	if err := run(os.Stdout); err != nil {
		fmt.Fprintln(os.Stderr, "coffeeshop:", err)
		os.Exit(1)
	}
}

type placement struct {
	customer *domain.Customer
	coffee   *domain.Coffee
	price    float64
}

func run(w io.Writer) error {
	ledger := domain.NewLedger()
	rule := strings.Repeat("=", 50)
	section := func(title string) {
		fmt.Fprintf(w, "\n%s\n%s\n%s\n", rule, title, rule)
	}

	section("Creating Customers")
	customers := make([]*domain.Customer, 0, 3)
	for _, name := range []string{"Alice", "Bob", "Charlie"} {
		c, err := domain.NewCustomer(ledger, name)
		if err != nil {
			return err
		}
		customers = append(customers, c)
		fmt.Fprintf(w, "Customer %d: %s\n", len(customers), c.Name())
	}
	alice, bob, charlie := customers[0], customers[1], customers[2]

	section("Creating Coffees")
	coffees := make([]*domain.Coffee, 0, 3)
	for _, name := range []string{"Espresso", "Cappuccino", "Latte"} {
		c, err := domain.NewCoffee(ledger, name)
		if err != nil {
			return err
		}
		coffees = append(coffees, c)
		fmt.Fprintf(w, "Coffee %d: %s\n", len(coffees), c.Name())
	}
	espresso, cappuccino, latte := coffees[0], coffees[1], coffees[2]

	section("Creating Orders")
	for i, p := range []placement{
		{alice, espresso, 2.5},
		{alice, espresso, 3.0},
		{alice, cappuccino, 4.0},
		{bob, espresso, 2.5},
		{bob, cappuccino, 4.5},
		{charlie, espresso, 2.0},
	} {
		o, err := p.customer.CreateOrder(p.coffee, p.price)
		if err != nil {
			return err
		}
		fmt.Fprintf(w, "Order %d: %s ordered %s for $%.2f\n", i+1, o.Customer().Name(), o.Coffee().Name(), o.Price())
	}

	section("Customer Queries")
	fmt.Fprintf(w, "Alice's orders: %d\n", len(alice.Orders()))
	for _, o := range alice.Orders() {
		fmt.Fprintf(w, "  - %s: $%.2f\n", o.Coffee().Name(), o.Price())
	}
	fmt.Fprintf(w, "Alice's coffees: %d\n", len(alice.Coffees()))
	for _, c := range alice.Coffees() {
		fmt.Fprintf(w, "  - %s\n", c.Name())
	}

	section("Coffee Queries")
	fmt.Fprintf(w, "Espresso orders: %d\n", espresso.NumOrders())
	for _, o := range espresso.Orders() {
		fmt.Fprintf(w, "  - %s: $%.2f\n", o.Customer().Name(), o.Price())
	}
	fmt.Fprintf(w, "Espresso customers: %d\n", len(espresso.Customers()))
	for _, c := range espresso.Customers() {
		fmt.Fprintf(w, "  - %s\n", c.Name())
	}
	for _, c := range coffees {
		fmt.Fprintf(w, "%s average price: $%.2f\n", c.Name(), c.AveragePrice())
	}

	section("Most Aficionado")
	for _, c := range coffees {
		if best, ok := domain.MostAficionado(c); ok {
			fmt.Fprintf(w, "Customer who spent most on %s: %s\n", c.Name(), best.Name())
		} else {
			fmt.Fprintf(w, "Customer who spent most on %s: none\n", c.Name())
		}
	}

	section("Validation")
	_, err := domain.NewCustomer(ledger, strings.Repeat("a", 20))
	expectFailure(w, "long customer name", err)
	_, err = domain.NewCoffee(ledger, "Jo")
	expectFailure(w, "short coffee name", err)
	_, err = domain.NewOrder(alice, espresso, 15.0)
	expectFailure(w, "high price", err)
	_, err = domain.NewOrder(alice, espresso, 0.5)
	expectFailure(w, "low price", err)
	_, err = domain.NewOrder(nil, latte, 3.0)
	expectFailure(w, "missing customer", err)

	fmt.Fprintf(w, "\nLedger holds %d orders\n", ledger.Len())
	return nil
}

func expectFailure(w io.Writer, what string, err error) {
	if err == nil {
		fmt.Fprintf(w, "x %s was accepted\n", what)
		return
	}
	fmt.Fprintf(w, "ok caught %s error for %s: %v\n", domain.KindOf(err), what, err)
}
