package httpapi

import (
	"net/http"

	"github.com/TemirB/coffee-shop/internal/application/service"
	"github.com/TemirB/coffee-shop/internal/domain"
)

func (s *Server) createCustomer(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name, err := domain.StringValue("name", body["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.service.CreateCustomer(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCustomer(c))
}

func (s *Server) listCustomers(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toCustomers(s.service.Customers()))
}

func (s *Server) getCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.service.Customer(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomer(c))
}

func (s *Server) renameCustomer(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := decodeObject(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name, err := domain.StringValue("name", body["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.service.RenameCustomer(id, name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomer(c))
}

func (s *Server) customerOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	orders, err := s.service.CustomerOrders(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrders(orders))
}

func (s *Server) customerCoffees(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	coffees, err := s.service.CustomerCoffees(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCoffees(coffees))
}

func (s *Server) createCustomerOrder(w http.ResponseWriter, r *http.Request) {
	customerID, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := decodeObject(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	coffeeID, err := bodyID(body, "coffee_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	price, err := domain.NumberValue("price", body["price"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := s.service.PlaceOrder(customerID, coffeeID, price)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrder(o))
}

func (s *Server) createCoffee(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name, err := domain.StringValue("name", body["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.service.CreateCoffee(name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toCoffee(c))
}

func (s *Server) listCoffees(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toCoffees(s.service.Coffees()))
}

func (s *Server) getCoffee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.service.Coffee(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCoffee(c))
}

func (s *Server) renameCoffee(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := decodeObject(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	name, err := domain.StringValue("name", body["name"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	c, err := s.service.RenameCoffee(id, name)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCoffee(c))
}

func (s *Server) coffeeOrders(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	orders, err := s.service.CoffeeOrders(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrders(orders))
}

func (s *Server) coffeeCustomers(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	customers, err := s.service.CoffeeCustomers(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toCustomers(customers))
}

func (s *Server) coffeeStats(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	st, err := s.service.CoffeeStats(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, statsDTO{NumOrders: st.NumOrders, AveragePrice: st.AveragePrice})
}

func (s *Server) coffeeAficionado(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	best, err := s.service.Aficionado(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	var out aficionadoDTO
	if best != nil {
		c := toCustomer(best)
		out.Aficionado = &c
	}
	writeJSON(w, http.StatusOK, out)
}

func (s *Server) createOrder(w http.ResponseWriter, r *http.Request) {
	body, err := decodeObject(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	customerID, err := bodyID(body, "customer_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	coffeeID, err := bodyID(body, "coffee_id")
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	price, err := domain.NumberValue("price", body["price"])
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := s.service.PlaceOrder(customerID, coffeeID, price)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, toOrder(o))
}

func (s *Server) listOrders(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, toOrders(s.service.Orders()))
}

func (s *Server) getOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	o, err := s.service.Order(id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrder(o))
}

// updateOrder applies whichever of customer_id, coffee_id and price the body
// carries. A present field with the wrong type rejects the whole update.
func (s *Server) updateOrder(w http.ResponseWriter, r *http.Request) {
	id, err := pathID(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	body, err := decodeObject(r)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	var patch service.OrderPatch
	if _, ok := body["customer_id"]; ok {
		cid, err := bodyID(body, "customer_id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		patch.CustomerID = &cid
	}
	if _, ok := body["coffee_id"]; ok {
		kid, err := bodyID(body, "coffee_id")
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		patch.CoffeeID = &kid
	}
	if _, ok := body["price"]; ok {
		price, err := domain.NumberValue("price", body["price"])
		if err != nil {
			s.writeError(w, r, err)
			return
		}
		patch.Price = &price
	}

	o, err := s.service.UpdateOrder(id, patch)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, toOrder(o))
}
