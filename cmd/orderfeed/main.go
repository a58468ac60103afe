package main

import (
	"context"
	"math/rand"
	"os"
	"os/signal"
	"syscall"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/coffee-shop/internal/config"
	"github.com/TemirB/coffee-shop/internal/events"
	"github.com/TemirB/coffee-shop/internal/kafka"
	"github.com/TemirB/coffee-shop/internal/observability"
)

var (
	customers = []string{"Alice", "Bob", "Charlie", "Dana", "Eve"}
	coffees   = []string{"Espresso", "Cappuccino", "Latte", "Mocha", "Flat White"}
)

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	if !cfg.Kafka.Enabled() {
		logger.Fatal("KAFKA_BROKERS is required")
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := kafka.EnsureTopic(ctx, cfg.Kafka, cfg.Kafka.Workers, logger); err != nil {
		logger.Warn("could not ensure kafka topic, continuing", zap.Error(err))
	}

	producerCtx, cancelProducer := context.WithCancel(context.Background())
	producer := kafka.NewProducer(cfg.Kafka.Brokers, cfg.Kafka.Topic, cfg.Feed.Rate*2, logger)
	producer.Start(producerCtx)

	logger.Info("starting order feed",
		zap.String("topic", cfg.Kafka.Topic),
		zap.Int("rate", cfg.Feed.Rate),
		zap.Duration("duration", cfg.Feed.Duration),
	)
	published := feed(ctx, producer, cfg.Feed, rand.New(rand.NewSource(time.Now().UnixNano())), logger)

	cancelProducer()
	producer.Wait()
	logger.Info("order feed finished",
		zap.Int("published", published),
		zap.Int64("sent", producer.Sent()),
		zap.Int64("failed", producer.Failed()),
	)
}

type publisher interface {
	Publish(ctx context.Context, key, value []byte, headers ...kafkago.Header) error
}

// feed publishes one random event per tick until the duration elapses or ctx
// ends. Roughly one event in twenty carries an out-of-range price.
func feed(ctx context.Context, p publisher, cfg config.Feed, r *rand.Rand, logger *zap.Logger) int {
	ticker := time.NewTicker(time.Second / time.Duration(cfg.Rate))
	defer ticker.Stop()
	timer := time.NewTimer(cfg.Duration)
	defer timer.Stop()

	published := 0
	for {
		select {
		case <-ticker.C:
			evt := randomEvent(r)
			value, err := events.Encode(evt)
			if err != nil {
				logger.Error("encode event", zap.Error(err))
				continue
			}
			if err := p.Publish(ctx, []byte(evt.Customer), value); err != nil {
				logger.Warn("publish failed", zap.Error(err))
				continue
			}
			published++
		case <-timer.C:
			return published
		case <-ctx.Done():
			return published
		}
	}
}

func randomEvent(r *rand.Rand) events.OrderPlaced {
	price := 1 + float64(r.Intn(91))/10
	if r.Intn(20) == 0 {
		price = 12.5
	}
	return events.NewOrderPlaced(
		customers[r.Intn(len(customers))],
		coffees[r.Intn(len(coffees))],
		price,
	)
}
