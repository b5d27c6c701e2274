package events

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"sportsclub/pkg/kafka"
	"sportsclub/pkg/middleware"
	"sportsclub/pkg/model"
)

type recordingPublisher struct {
	msgs []kafka.Message
}

func (r *recordingPublisher) Publish(_ context.Context, msg kafka.Message) error {
	r.msgs = append(r.msgs, msg)
	return nil
}

func (r *recordingPublisher) Close() error { return nil }

func TestKafkaPublisher_PublishBooking(t *testing.T) {
	bookings := &recordingPublisher{}
	p := &KafkaPublisher{bookings: bookings, sports: &recordingPublisher{}}

	b := &model.Booking{
		ID:        "65a1b2c3d4e5f60718293a4b",
		Sport:     "Table Tennis",
		Date:      "2025-01-07",
		StartTime: "06:00",
		EndTime:   "08:00",
		Customer:  model.Customer{Name: "Ravi", Phone: "+919876543210", Count: 2},
	}
	ctx := context.WithValue(context.Background(), middleware.RequestIDKey, "req-7")

	if err := p.PublishBooking(ctx, model.NewBookingEvent(model.EventBookingConfirmed, b, time.Now())); err != nil {
		t.Fatalf("PublishBooking: %v", err)
	}

	if len(bookings.msgs) != 1 {
		t.Fatalf("expected one message, got %d", len(bookings.msgs))
	}
	msg := bookings.msgs[0]
	if msg.Key != b.ID {
		t.Errorf("key must be the booking id, got %s", msg.Key)
	}
	if msg.GetEventType() != model.EventBookingConfirmed {
		t.Errorf("unexpected event type %s", msg.GetEventType())
	}
	if msg.GetCorrelationID() != "req-7" {
		t.Errorf("expected request id as correlation id, got %q", msg.GetCorrelationID())
	}

	var decoded model.BookingEvent
	if err := json.Unmarshal(msg.Value, &decoded); err != nil {
		t.Fatalf("payload: %v", err)
	}
	if decoded.Players != 2 || decoded.Sport != "Table Tennis" {
		t.Errorf("unexpected payload %+v", decoded)
	}
}

func TestKafkaPublisher_PublishSport(t *testing.T) {
	sports := &recordingPublisher{}
	p := &KafkaPublisher{bookings: &recordingPublisher{}, sports: sports}

	s := &model.Sport{ID: "s1", Name: "Football", Price: 300, IsActive: true}
	if err := p.PublishSport(context.Background(), model.NewSportEvent(model.EventSportCreated, s, time.Now())); err != nil {
		t.Fatalf("PublishSport: %v", err)
	}
	if len(sports.msgs) != 1 || sports.msgs[0].Key != "s1" {
		t.Fatalf("unexpected messages %v", sports.msgs)
	}
}
