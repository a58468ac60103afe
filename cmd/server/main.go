package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"sync"
	"syscall"

	"go.uber.org/zap"

	"github.com/TemirB/coffee-shop/internal/application/handler"
	"github.com/TemirB/coffee-shop/internal/application/service"
	"github.com/TemirB/coffee-shop/internal/cache"
	"github.com/TemirB/coffee-shop/internal/config"
	"github.com/TemirB/coffee-shop/internal/domain"
	"github.com/TemirB/coffee-shop/internal/httpapi"
	"github.com/TemirB/coffee-shop/internal/kafka"
	"github.com/TemirB/coffee-shop/internal/observability"
	"github.com/TemirB/coffee-shop/internal/pkg/breaker"
)

func main() {
	cfg := config.Load()

	logger, err := observability.NewLogger(cfg.LogMode)
	if err != nil {
		panic(err)
	}
	defer func() { _ = logger.Sync() }()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	metrics := observability.NewInmem(cfg.ObserveKeep)
	svc := service.NewService(domain.NewLedger(), logger, metrics)

	var wg sync.WaitGroup
	if cfg.Kafka.Enabled() {
		if err := startConsumer(ctx, &wg, cfg, svc, metrics, logger); err != nil {
			logger.Fatal("kafka consumer setup failed", zap.Error(err))
		}
	} else {
		logger.Info("KAFKA_BROKERS not set, order feed disabled")
	}

	srv := httpapi.New(svc, logger, metrics)
	logger.Info("http server listening", zap.String("addr", cfg.HTTPAddr))
	if err := srv.ListenAndServe(ctx, cfg.HTTPAddr); err != nil {
		logger.Error("http server stopped", zap.Error(err))
		stop()
	}

	wg.Wait()
	logger.Info("shutdown complete", zap.Int("orders", svc.Ledger().Len()))
}

func startConsumer(ctx context.Context, wg *sync.WaitGroup, cfg config.Config, svc *service.Service, metrics observability.Metrics, logger *zap.Logger) error {
	if err := kafka.EnsureTopic(ctx, cfg.Kafka, cfg.Kafka.Workers, logger); err != nil {
		if errors.Is(err, context.Canceled) {
			return err
		}
		logger.Warn("could not ensure kafka topic, continuing", zap.Error(err))
	}

	seen, err := cache.New(cfg.DedupCap)
	if err != nil {
		return err
	}
	h := handler.NewHandler(svc, breaker.New(cfg.Breaker), seen, metrics, logger)

	reader := kafka.NewReader(cfg.Kafka)
	consumer := kafka.NewConsumer(h, reader, cfg.Kafka.Workers, cfg.Retry, metrics, logger)

	wg.Add(1)
	go func() {
		defer wg.Done()
		consumer.Start(ctx)
		if err := reader.Close(); err != nil {
			logger.Warn("kafka reader close failed", zap.Error(err))
		}
	}()
	return nil
}
