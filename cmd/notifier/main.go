package main

import (
	"context"
	"errors"
	"os/signal"
	"syscall"
	"time"

	"sportsclub/internal/notifier"
	"sportsclub/pkg/config"
	"sportsclub/pkg/kafka"
	kafka_config "sportsclub/pkg/kafka/config"
	middleware "sportsclub/pkg/kafka/middleware"
	"sportsclub/pkg/tracing"
)

const ServiceName = "notifier"

func main() {
	cfg := config.Load(ServiceName)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	shutdownTracing, err := tracing.Setup(ctx, tracing.Config{
		Enabled:      cfg.OtelEnabled,
		ServiceName:  ServiceName,
		OTLPEndpoint: cfg.OtelEndpoint,
		SampleRatio:  cfg.OtelSampleRatio,
	})
	if err != nil {
		cfg.Log.Fatal("Failed to set up tracing", "error", err)
	}

	kcfg, err := kafka_config.Load()
	if err != nil {
		cfg.Log.Fatal("Invalid Kafka configuration", "error", err)
	}
	kcfg.LogConfiguration(cfg.Log)

	n := notifier.New(cfg.VenueName, nil, cfg.Log)
	consumer, err := kafka.NewConsumer(kcfg, cfg.KafkaBookingsTopic, cfg.KafkaGroupID, cfg.KafkaDLQTopic, n.Handle, cfg.Log)
	if err != nil {
		cfg.Log.Fatal("Failed to create Kafka consumer", "error", err)
	}
	consumer.Use(middleware.TracingConsumerMiddleware())
	consumer.Use(middleware.LoggingConsumerMiddleware(cfg.Log))

	cfg.Log.Info("Starting notifier", "topic", cfg.KafkaBookingsTopic, "group_id", cfg.KafkaGroupID)
	if err := consumer.Start(ctx); err != nil && !errors.Is(err, context.Canceled) {
		cfg.Log.Error("Consumer stopped", "error", err)
	}

	cfg.Log.Info("Shutting down notifier")
	if err := consumer.Close(); err != nil {
		cfg.Log.Error("Failed to close Kafka consumer", "error", err)
	}

	flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := shutdownTracing(flushCtx); err != nil {
		cfg.Log.Error("Failed to flush traces", "error", err)
	}
}
