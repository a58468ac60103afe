package kafka

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/coffee-shop/internal/config"
	"github.com/TemirB/coffee-shop/internal/observability"
	"github.com/TemirB/coffee-shop/internal/pkg/retry"
)

//go:generate mockgen -source consumer.go -destination=consumer_mock_test.go -package=kafka

// ErrSkip marks a message that can never be handled. The consumer commits it
// and moves on instead of redelivering.
var ErrSkip = errors.New("skip message")

type MessageHandler interface {
	Handle(ctx context.Context, msg kafkago.Message) error
}

type Reader interface {
	Config() kafkago.ReaderConfig
	FetchMessage(ctx context.Context) (kafkago.Message, error)
	CommitMessages(ctx context.Context, msgs ...kafkago.Message) error
}

func NewReader(cfg config.Kafka) *kafkago.Reader {
	return kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:     cfg.Brokers,
		Topic:       cfg.Topic,
		GroupID:     cfg.Group,
		StartOffset: kafkago.FirstOffset,
		MinBytes:    1,
		MaxBytes:    10e6,
	})
}

type Consumer struct {
	handler     MessageHandler
	reader      Reader
	commitRetry config.Retry
	metrics     observability.Metrics
	zlogger     *zap.Logger

	workerPoolSize int
	jobs           chan jobItem

	idleBackoff  time.Duration
	fetchBackoff time.Duration
	failBackoff  time.Duration
}

type jobItem struct {
	msg    kafkago.Message
	result chan error
}

func NewConsumer(handler MessageHandler, reader Reader, workers int, commitRetry config.Retry, metrics observability.Metrics, logger *zap.Logger) *Consumer {
	if workers < 1 {
		workers = 1
	}
	return &Consumer{
		handler:        handler,
		reader:         reader,
		commitRetry:    commitRetry,
		metrics:        metrics,
		zlogger:        logger,
		workerPoolSize: workers,
		jobs:           make(chan jobItem, workers*2),
		idleBackoff:    10 * time.Second,
		fetchBackoff:   500 * time.Millisecond,
		failBackoff:    200 * time.Millisecond,
	}
}

// Start blocks until ctx is done. Each fetched message is handed to a worker
// and its result awaited before the next fetch, so commits follow fetch order.
// A message whose handler fails without ErrSkip is handed out again.
func (c *Consumer) Start(ctx context.Context) {
	rc := c.reader.Config()
	c.zlogger.Info("Starting Kafka consumer",
		zap.Strings("brokers", rc.Brokers),
		zap.String("group", rc.GroupID),
		zap.String("topic", rc.Topic),
		zap.Int("workers", c.workerPoolSize),
	)

	var wg sync.WaitGroup
	wg.Add(c.workerPoolSize)
	for i := 0; i < c.workerPoolSize; i++ {
		go func(id int) {
			defer wg.Done()
			c.worker(ctx, id)
		}(i)
	}
	defer wg.Wait()

	for {
		select {
		case <-ctx.Done():
			return
		default:
		}

		msg, err := c.reader.FetchMessage(ctx)
		if err != nil {
			if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
				return
			}
			if isBenignFetchTimeout(err) {
				c.zlogger.Debug("fetch timeout (idle), backing off", zap.Error(err))
				sleepWithContext(ctx, c.idleBackoff)
				continue
			}
			c.zlogger.Warn("FetchMessage error, backing off", zap.Error(err))
			sleepWithContext(ctx, c.fetchBackoff)
			continue
		}

		if !c.process(ctx, msg) {
			return
		}
	}
}

// process returns false once ctx is done.
func (c *Consumer) process(ctx context.Context, msg kafkago.Message) bool {
	for {
		done := make(chan error, 1)
		select {
		case c.jobs <- jobItem{msg: msg, result: done}:
		case <-ctx.Done():
			return false
		}

		var procErr error
		select {
		case procErr = <-done:
		case <-ctx.Done():
			return false
		}

		if procErr == nil || errors.Is(procErr, ErrSkip) {
			if procErr != nil {
				c.zlogger.Warn("dropping unprocessable message", zap.Error(procErr),
					zap.String("topic", msg.Topic), zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))
			}
			c.commit(ctx, msg)
			return ctx.Err() == nil
		}

		c.zlogger.Error("handler failed; message will be redelivered", zap.Error(procErr),
			zap.String("topic", msg.Topic), zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))
		sleepWithContext(ctx, c.failBackoff)
		if ctx.Err() != nil {
			return false
		}
	}
}

func (c *Consumer) commit(ctx context.Context, msg kafkago.Message) {
	err := retry.Do(ctx, c.commitRetry, func() error {
		return c.reader.CommitMessages(ctx, msg)
	})
	if err != nil {
		c.zlogger.Warn("commit failed",
			zap.Error(err),
			zap.String("topic", msg.Topic),
			zap.Int("partition", msg.Partition),
			zap.Int64("offset", msg.Offset),
		)
		return
	}
	c.zlogger.Debug("message committed",
		zap.String("topic", msg.Topic), zap.Int("partition", msg.Partition), zap.Int64("offset", msg.Offset))
}

func (c *Consumer) worker(ctx context.Context, id int) {
	wlog := c.zlogger.With(zap.String("worker", fmt.Sprintf("worker-%d", id)))

	for {
		select {
		case <-ctx.Done():
			return
		case it := <-c.jobs:
			msg := it.msg
			start := time.Now()

			err := c.handler.Handle(ctx, msg)

			elapsed := time.Since(start)
			c.metrics.ObserveKafka(observability.SinceMs(start), err == nil)
			if err != nil {
				wlog.Debug("message handling failed",
					zap.Error(err),
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Duration("elapsed", elapsed),
				)
			} else {
				wlog.Debug("message handled",
					zap.Int("partition", msg.Partition),
					zap.Int64("offset", msg.Offset),
					zap.Int("value_bytes", len(msg.Value)),
					zap.Duration("elapsed", elapsed),
				)
			}
			it.result <- err
		}
	}
}

func sleepWithContext(ctx context.Context, d time.Duration) {
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
	case <-t.C:
	}
}

func isBenignFetchTimeout(err error) bool {
	s := err.Error()
	return strings.Contains(s, "Request Timed Out") ||
		strings.Contains(s, "no messages received from kafka within the allocated time")
}
