package handler

import (
	"context"
	"errors"
	"fmt"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/coffee-shop/internal/domain"
	"github.com/TemirB/coffee-shop/internal/events"
	"github.com/TemirB/coffee-shop/internal/kafka"
	"github.com/TemirB/coffee-shop/internal/observability"
)

//go:generate mockgen -source handler.go -destination=handler_mock_test.go -package=handler

var (
	ErrBadEvent    = errors.New("bad event")
	ErrCircuitOpen = errors.New("circuit breaker open")
)

type Service interface {
	PlaceOrderByName(customer, coffee string, price float64) (*domain.Order, error)
}

type brk interface {
	Allow() error
	Success()
	Failure()
}

type dedup interface {
	Mark(id string) bool
	Forget(id string)
}

type Handler struct {
	service Service
	breaker brk
	seen    dedup
	metrics observability.Metrics
	logger  *zap.Logger
}

func NewHandler(service Service, breaker brk, seen dedup, metrics observability.Metrics, logger *zap.Logger) *Handler {
	return &Handler{
		service: service,
		breaker: breaker,
		seen:    seen,
		metrics: metrics,
		logger:  logger,
	}
}

// Handle is called by the consumer for one OrderPlaced message. Events that
// can never be applied are reported with kafka.ErrSkip so the consumer
// commits past them.
func (h *Handler) Handle(ctx context.Context, message kafkago.Message) error {
	if err := h.breaker.Allow(); err != nil {
		h.logger.Warn("circuit breaker is open",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return fmt.Errorf("%w: %v", ErrCircuitOpen, err)
	}

	evt, err := events.Decode(message.Value)
	if err != nil {
		h.logger.Error("undecodable order event",
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		h.breaker.Failure()
		return fmt.Errorf("%w: %w: %w", ErrBadEvent, kafka.ErrSkip, err)
	}

	if h.seen.Mark(evt.EventID) {
		h.metrics.IncDuplicate()
		h.breaker.Success()
		h.logger.Info("duplicate order event ignored",
			zap.String("event_id", evt.EventID),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		return nil
	}

	order, err := h.service.PlaceOrderByName(evt.Customer, evt.Coffee, evt.Price)
	if err != nil {
		h.seen.Forget(evt.EventID)
		h.breaker.Failure()
		h.logger.Error("order event rejected",
			zap.String("event_id", evt.EventID),
			zap.Error(err),
			zap.Int("partition", message.Partition),
			zap.Int64("offset", message.Offset),
		)
		if domain.KindOf(err) != 0 {
			return fmt.Errorf("%w: %w: %w", ErrBadEvent, kafka.ErrSkip, err)
		}
		return err
	}

	h.breaker.Success()
	h.logger.Info("order event applied",
		zap.String("event_id", evt.EventID),
		zap.Stringer("order_id", order.ID()),
		zap.Int("partition", message.Partition),
		zap.Int64("offset", message.Offset),
		zap.Int("value_bytes", len(message.Value)),
	)
	return nil
}
