// Package events publishes domain events after successful writes. Publishing
// is best effort: a failure is logged and never undoes the write.
package events

import (
	"context"
	"errors"

	"sportsclub/pkg/kafka"
	kafka_config "sportsclub/pkg/kafka/config"
	kafka_middleware "sportsclub/pkg/kafka/middleware"
	"sportsclub/pkg/logger"
	"sportsclub/pkg/middleware"
	"sportsclub/pkg/model"
)

const (
	SchemaVersion = "1"
	Source        = "sportsclub-bookings"
)

type Publisher interface {
	PublishBooking(ctx context.Context, event *model.BookingEvent) error
	PublishSport(ctx context.Context, event *model.SportEvent) error
	Close() error
}

// publisher is the subset of *kafka.Producer used here.
type publisher interface {
	Publish(ctx context.Context, msg kafka.Message) error
	Close() error
}

type KafkaPublisher struct {
	bookings publisher
	sports   publisher
}

func NewKafkaPublisher(cfg *kafka_config.Config, bookingsTopic, sportsTopic, dlqTopic string, log *logger.Logger) (*KafkaPublisher, error) {
	bookings, err := kafka.NewProducer(cfg, bookingsTopic, dlqTopic, log)
	if err != nil {
		return nil, err
	}
	sports, err := kafka.NewProducer(cfg, sportsTopic, dlqTopic, log)
	if err != nil {
		_ = bookings.Close()
		return nil, err
	}

	for _, p := range []*kafka.Producer{bookings, sports} {
		p.Use(kafka_middleware.TracingProducerMiddleware())
		p.Use(kafka_middleware.LoggingProducerMiddleware(log))
	}

	return &KafkaPublisher{bookings: bookings, sports: sports}, nil
}

func (p *KafkaPublisher) PublishBooking(ctx context.Context, event *model.BookingEvent) error {
	return publish(ctx, p.bookings, event.BookingID, event.Type, event)
}

func (p *KafkaPublisher) PublishSport(ctx context.Context, event *model.SportEvent) error {
	return publish(ctx, p.sports, event.SportID, event.Type, event)
}

func publish(ctx context.Context, to publisher, key, eventType string, value any) error {
	msg, err := kafka.NewMessage().
		WithKey(key).
		WithValue(value).
		WithEventType(eventType).
		WithSchemaVersion(SchemaVersion).
		WithSource(Source).
		WithCorrelationID(middleware.RequestID(ctx)).
		Build()
	if err != nil {
		return err
	}
	return to.Publish(ctx, msg)
}

func (p *KafkaPublisher) Close() error {
	return errors.Join(p.bookings.Close(), p.sports.Close())
}

// NopPublisher drops every event. Used when Kafka is disabled.
type NopPublisher struct{}

func (NopPublisher) PublishBooking(context.Context, *model.BookingEvent) error { return nil }
func (NopPublisher) PublishSport(context.Context, *model.SportEvent) error     { return nil }
func (NopPublisher) Close() error                                              { return nil }
