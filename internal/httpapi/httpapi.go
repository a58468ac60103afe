package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/TemirB/coffee-shop/internal/application/service"
	"github.com/TemirB/coffee-shop/internal/domain"
	"github.com/TemirB/coffee-shop/internal/observability"
)

var errBadRequest = errors.New("bad request")

// Service is the part of service.Service the API needs.
type Service interface {
	CreateCustomer(name string) (*domain.Customer, error)
	CreateCoffee(name string) (*domain.Coffee, error)
	Customer(id uuid.UUID) (*domain.Customer, error)
	Coffee(id uuid.UUID) (*domain.Coffee, error)
	Customers() []*domain.Customer
	Coffees() []*domain.Coffee
	RenameCustomer(id uuid.UUID, name string) (*domain.Customer, error)
	RenameCoffee(id uuid.UUID, name string) (*domain.Coffee, error)

	PlaceOrder(customerID, coffeeID uuid.UUID, price float64) (*domain.Order, error)
	Order(id uuid.UUID) (*domain.Order, error)
	Orders() []*domain.Order
	UpdateOrder(id uuid.UUID, patch service.OrderPatch) (*domain.Order, error)

	CustomerOrders(id uuid.UUID) ([]*domain.Order, error)
	CustomerCoffees(id uuid.UUID) ([]*domain.Coffee, error)
	CoffeeOrders(id uuid.UUID) ([]*domain.Order, error)
	CoffeeCustomers(id uuid.UUID) ([]*domain.Customer, error)
	CoffeeStats(id uuid.UUID) (service.CoffeeStats, error)
	Aficionado(id uuid.UUID) (*domain.Customer, error)
}

type snapshotter interface {
	Snapshot() observability.Snapshot
}

type Server struct {
	service Service
	router  chi.Router
	logger  *zap.Logger
	metrics observability.Metrics
}

func New(service Service, logger *zap.Logger, metrics observability.Metrics) *Server {
	s := &Server{
		service: service,
		router:  chi.NewRouter(),
		logger:  logger,
		metrics: metrics,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	r := s.router
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		RequestLogger(s.logger),
		middleware.Recoverer,
		ServerTimingApp(s.metrics),
	)

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})

	r.Route("/customers", func(r chi.Router) {
		r.With(requireJSON).Post("/", s.createCustomer)
		r.Get("/", s.listCustomers)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getCustomer)
			r.With(requireJSON).Patch("/", s.renameCustomer)
			r.Get("/orders", s.customerOrders)
			r.With(requireJSON).Post("/orders", s.createCustomerOrder)
			r.Get("/coffees", s.customerCoffees)
		})
	})

	r.Route("/coffees", func(r chi.Router) {
		r.With(requireJSON).Post("/", s.createCoffee)
		r.Get("/", s.listCoffees)
		r.Route("/{id}", func(r chi.Router) {
			r.Get("/", s.getCoffee)
			r.With(requireJSON).Patch("/", s.renameCoffee)
			r.Get("/orders", s.coffeeOrders)
			r.Get("/customers", s.coffeeCustomers)
			r.Get("/stats", s.coffeeStats)
			r.Get("/aficionado", s.coffeeAficionado)
		})
	})

	r.Route("/orders", func(r chi.Router) {
		r.With(requireJSON).Post("/", s.createOrder)
		r.Get("/", s.listOrders)
		r.Get("/{id}", s.getOrder)
		r.With(requireJSON).Patch("/{id}", s.updateOrder)
	})

	if snap, ok := s.metrics.(snapshotter); ok {
		r.Get("/debug/observations", func(w http.ResponseWriter, _ *http.Request) {
			writeJSON(w, http.StatusOK, snap.Snapshot())
		})
	}
}

type apiError struct {
	Code    string `json:"code"`
	Field   string `json:"field,omitempty"`
	Message string `json:"message"`
}

type errorBody struct {
	Error apiError `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	var (
		status = http.StatusInternalServerError
		body   = apiError{Code: "internal", Message: "internal error"}
		ve     *domain.ValidationError
	)
	switch {
	case errors.As(err, &ve):
		body = apiError{Field: ve.Field, Message: ve.Message}
		if ve.Kind == domain.KindType {
			status, body.Code = http.StatusBadRequest, "invalid_type"
		} else {
			status, body.Code = http.StatusUnprocessableEntity, "out_of_range"
		}
	case errors.Is(err, service.ErrNotFound):
		status, body = http.StatusNotFound, apiError{Code: "not_found", Message: err.Error()}
	case errors.Is(err, errBadRequest):
		status, body = http.StatusBadRequest, apiError{Code: "bad_request", Message: err.Error()}
	default:
		s.logger.Error("unhandled error",
			zap.Error(err),
			zap.String("request_id", middleware.GetReqID(r.Context())),
		)
	}
	writeJSON(w, status, errorBody{Error: body})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	_ = enc.Encode(v)
}

func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	srv := &http.Server{
		Addr:              addr,
		Handler:           s.router,
		ReadHeaderTimeout: 5 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		_ = srv.Shutdown(shutdownCtx)
	}()

	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Handler() http.Handler { return s.router }
