package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"github.com/TemirB/coffee-shop/internal/domain"
)

type customerDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type coffeeDTO struct {
	ID   uuid.UUID `json:"id"`
	Name string    `json:"name"`
}

type orderDTO struct {
	ID       uuid.UUID   `json:"id"`
	Customer customerDTO `json:"customer"`
	Coffee   coffeeDTO   `json:"coffee"`
	Price    float64     `json:"price"`
}

type statsDTO struct {
	NumOrders    int     `json:"num_orders"`
	AveragePrice float64 `json:"average_price"`
}

type aficionadoDTO struct {
	Aficionado *customerDTO `json:"aficionado"`
}

func toCustomer(c *domain.Customer) customerDTO {
	return customerDTO{ID: c.ID(), Name: c.Name()}
}

func toCoffee(c *domain.Coffee) coffeeDTO {
	return coffeeDTO{ID: c.ID(), Name: c.Name()}
}

func toOrder(o *domain.Order) orderDTO {
	customer, coffee, price := o.Fields()
	return orderDTO{
		ID:       o.ID(),
		Customer: toCustomer(customer),
		Coffee:   toCoffee(coffee),
		Price:    price,
	}
}

func toCustomers(cs []*domain.Customer) []customerDTO {
	out := make([]customerDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCustomer(c))
	}
	return out
}

func toCoffees(cs []*domain.Coffee) []coffeeDTO {
	out := make([]coffeeDTO, 0, len(cs))
	for _, c := range cs {
		out = append(out, toCoffee(c))
	}
	return out
}

func toOrders(orders []*domain.Order) []orderDTO {
	out := make([]orderDTO, 0, len(orders))
	for _, o := range orders {
		out = append(out, toOrder(o))
	}
	return out
}

// decodeObject reads a JSON object keeping numbers as json.Number, so field
// types are checked by the domain coercers rather than by encoding/json.
func decodeObject(r *http.Request) (map[string]any, error) {
	dec := json.NewDecoder(r.Body)
	dec.UseNumber()

	var body map[string]any
	if err := dec.Decode(&body); err != nil {
		return nil, fmt.Errorf("%w: malformed JSON body: %v", errBadRequest, err)
	}
	if body == nil {
		return nil, fmt.Errorf("%w: JSON body must be an object", errBadRequest)
	}
	return body, nil
}

func pathID(r *http.Request) (uuid.UUID, error) {
	raw := chi.URLParam(r, "id")
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid id %q", errBadRequest, raw)
	}
	return id, nil
}

func bodyID(body map[string]any, field string) (uuid.UUID, error) {
	raw, err := domain.StringValue(field, body[field])
	if err != nil {
		return uuid.Nil, err
	}
	id, err := uuid.Parse(raw)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: invalid %s %q", errBadRequest, field, raw)
	}
	return id, nil
}
