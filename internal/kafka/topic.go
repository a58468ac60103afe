package kafka

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strconv"
	"strings"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"

	"github.com/TemirB/coffee-shop/internal/config"
)

var (
	ErrNoBrokers  = errors.New("no kafka brokers configured")
	ErrEmptyTopic = errors.New("empty topic")
)

// EnsureTopic creates the orders topic when it is missing and waits until
// its partitions show up in the metadata. Calling it for an existing topic
// is a no-op.
func EnsureTopic(ctx context.Context, cfg config.Kafka, partitions int, log *zap.Logger) error {
	if len(cfg.Brokers) == 0 {
		return ErrNoBrokers
	}
	if strings.TrimSpace(cfg.Topic) == "" {
		return ErrEmptyTopic
	}
	if partitions < 1 {
		partitions = 1
	}

	dialer := &kafkago.Dialer{Timeout: 10 * time.Second}
	conn, err := dialer.DialContext(ctx, "tcp", cfg.Brokers[0])
	if err != nil {
		return fmt.Errorf("dial broker: %w", err)
	}
	defer conn.Close()

	if parts, err := conn.ReadPartitions(cfg.Topic); err == nil && len(parts) > 0 {
		log.Info("kafka topic exists", zap.String("topic", cfg.Topic), zap.Int("partitions", len(parts)))
		return nil
	}

	controller, err := conn.Controller()
	if err != nil {
		return fmt.Errorf("get controller: %w", err)
	}
	addr := net.JoinHostPort(controller.Host, strconv.Itoa(controller.Port))
	ctrlConn, err := dialer.DialContext(ctx, "tcp", addr)
	if err != nil {
		return fmt.Errorf("dial controller %s: %w", addr, err)
	}
	defer ctrlConn.Close()

	log.Info("creating kafka topic", zap.String("topic", cfg.Topic), zap.Int("partitions", partitions))
	err = ctrlConn.CreateTopics(kafkago.TopicConfig{
		Topic:             cfg.Topic,
		NumPartitions:     partitions,
		ReplicationFactor: 1,
	})
	if err != nil && !errors.Is(err, kafkago.TopicAlreadyExists) {
		return fmt.Errorf("create topic: %w", err)
	}

	ctx, cancel := context.WithTimeout(ctx, 10*time.Second)
	defer cancel()
	for {
		parts, err := conn.ReadPartitions(cfg.Topic)
		if err == nil && len(parts) >= partitions {
			log.Info("kafka topic is ready", zap.String("topic", cfg.Topic), zap.Int("partitions", len(parts)))
			return nil
		}
		sleepWithContext(ctx, 500*time.Millisecond)
		if ctx.Err() != nil {
			return fmt.Errorf("topic %s not visible after creation: %w", cfg.Topic, ctx.Err())
		}
	}
}
