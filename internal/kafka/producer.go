package kafka

import (
	"context"
	"errors"
	"sync/atomic"
	"time"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

var ErrProducerClosed = errors.New("producer closed")

type writer interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// Producer buffers messages in an inbox and writes them from a single
// goroutine. Messages still buffered when Start's context ends are flushed.
type Producer struct {
	w       writer
	inbox   chan kafkago.Message
	done    chan struct{}
	zlogger *zap.Logger

	sent   atomic.Int64
	failed atomic.Int64
}

func NewProducer(brokers []string, topic string, buf int, logger *zap.Logger) *Producer {
	return newProducer(&kafkago.Writer{
		Addr:         kafkago.TCP(brokers...),
		Topic:        topic,
		Balancer:     &kafkago.Hash{},
		RequiredAcks: kafkago.RequireAll,
		BatchTimeout: 10 * time.Millisecond,
		BatchSize:    100,
	}, buf, logger)
}

func newProducer(w writer, buf int, logger *zap.Logger) *Producer {
	return &Producer{
		w:       w,
		inbox:   make(chan kafkago.Message, buf),
		done:    make(chan struct{}),
		zlogger: logger,
	}
}

func (p *Producer) Start(ctx context.Context) {
	go p.loop(ctx)
}

func (p *Producer) loop(ctx context.Context) {
	defer close(p.done)
	for {
		select {
		case <-ctx.Done():
			p.flush()
			if err := p.w.Close(); err != nil {
				p.zlogger.Warn("kafka writer close failed", zap.Error(err))
			}
			return
		case m := <-p.inbox:
			p.write(context.Background(), m)
		}
	}
}

func (p *Producer) flush() {
	for {
		select {
		case m := <-p.inbox:
			p.write(context.Background(), m)
		default:
			return
		}
	}
}

func (p *Producer) write(ctx context.Context, m kafkago.Message) {
	if err := p.w.WriteMessages(ctx, m); err != nil {
		p.failed.Add(1)
		p.zlogger.Error("kafka write failed", zap.Error(err), zap.ByteString("key", m.Key))
		return
	}
	p.sent.Add(1)
}

// Publish enqueues a message. It blocks while the inbox is full.
func (p *Producer) Publish(ctx context.Context, key, value []byte, headers ...kafkago.Header) error {
	msg := kafkago.Message{
		Key:     key,
		Value:   value,
		Time:    time.Now(),
		Headers: headers,
	}
	select {
	case <-p.done:
		return ErrProducerClosed
	default:
	}
	select {
	case p.inbox <- msg:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	case <-p.done:
		return ErrProducerClosed
	}
}

// Wait blocks until the loop has flushed and closed the writer.
func (p *Producer) Wait() { <-p.done }

func (p *Producer) Sent() int64   { return p.sent.Load() }
func (p *Producer) Failed() int64 { return p.failed.Load() }
