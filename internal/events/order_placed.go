package events

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/TemirB/coffee-shop/internal/domain"
)

var ErrMissingEventID = errors.New("missing event_id")

// OrderPlaced asks the shop to record an order. Customers and coffees are
// referenced by name and created on first use.
type OrderPlaced struct {
	EventID    string    `json:"event_id"`
	Customer   string    `json:"customer"`
	Coffee     string    `json:"coffee"`
	Price      float64   `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewOrderPlaced(customer, coffee string, price float64) OrderPlaced {
	return OrderPlaced{
		EventID:    uuid.NewString(),
		Customer:   customer,
		Coffee:     coffee,
		Price:      price,
		OccurredAt: time.Now().UTC(),
	}
}

func Encode(e OrderPlaced) ([]byte, error) {
	return json.Marshal(e)
}

type wireOrderPlaced struct {
	EventID    string    `json:"event_id"`
	Customer   any       `json:"customer"`
	Coffee     any       `json:"coffee"`
	Price      any       `json:"price"`
	OccurredAt time.Time `json:"occurred_at"`
}

// Decode parses an OrderPlaced payload. A customer or coffee that is not a
// string, or a price that is not a number, yields a domain type error.
// Range checks are left to order placement.
func Decode(data []byte) (OrderPlaced, error) {
	var w wireOrderPlaced
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	if err := dec.Decode(&w); err != nil {
		return OrderPlaced{}, fmt.Errorf("decode order_placed: %w", err)
	}

	e := OrderPlaced{
		EventID:    strings.TrimSpace(w.EventID),
		OccurredAt: w.OccurredAt,
	}
	if e.EventID == "" {
		return OrderPlaced{}, ErrMissingEventID
	}

	var err error
	if e.Customer, err = domain.StringValue("customer", w.Customer); err != nil {
		return OrderPlaced{}, err
	}
	if e.Coffee, err = domain.StringValue("coffee", w.Coffee); err != nil {
		return OrderPlaced{}, err
	}
	if e.Price, err = domain.NumberValue("price", w.Price); err != nil {
		return OrderPlaced{}, err
	}
	return e, nil
}
