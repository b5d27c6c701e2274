package kafka_middleware

import (
	"context"
	"maps"

	"sportsclub/pkg/kafka"
	"sportsclub/pkg/tracing"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
)

const tracerName = "sportsclub/kafka"

// TracingProducerMiddleware records a producer span and forwards its context
// in the message headers.
func TracingProducerMiddleware() kafka.ProducerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		ctx, span := otel.Tracer(tracerName).Start(ctx, "publish "+msg.Topic,
			trace.WithSpanKind(trace.SpanKindProducer),
			trace.WithAttributes(
				attribute.String("messaging.system", "kafka"),
				attribute.String("messaging.destination.name", msg.Topic),
				attribute.String("messaging.event_type", msg.GetEventType()),
			),
		)
		defer span.End()

		headers := maps.Clone(msg.Headers)
		if headers == nil {
			headers = map[string]string{}
		}
		tracing.Inject(ctx, headers)
		msg.Headers = headers

		err := next(ctx, msg)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}

// TracingConsumerMiddleware continues the producer's trace for each message.
func TracingConsumerMiddleware() kafka.ConsumerMiddleware {
	return func(ctx context.Context, msg kafka.Message, next kafka.MessageHandler) error {
		ctx = tracing.Extract(ctx, msg.Headers)
		ctx, span := otel.Tracer(tracerName).Start(ctx, "process "+msg.Topic,
			trace.WithSpanKind(trace.SpanKindConsumer),
			trace.WithAttributes(
				attribute.String("messaging.system", "kafka"),
				attribute.String("messaging.source.name", msg.Topic),
				attribute.Int64("messaging.kafka.offset", msg.Offset),
				attribute.Int("messaging.kafka.retry_count", msg.GetRetryCount()),
			),
		)
		defer span.End()

		err := next(ctx, msg)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		return err
	}
}
