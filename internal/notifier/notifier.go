// Package notifier turns booking events into WhatsApp deep links for the
// club desk. Links are logged for the desk to open; nothing is sent.
package notifier

import (
	"context"
	"fmt"

	"sportsclub/pkg/kafka"
	"sportsclub/pkg/logger"
	"sportsclub/pkg/model"
	"sportsclub/pkg/whatsapp"
)

type Notification struct {
	EventType string
	BookingID string
	Phone     string
	Link      string
}

// Deliver hands a notification on. The default logs it.
type Deliver func(ctx context.Context, n Notification) error

type Notifier struct {
	venue   string
	deliver Deliver
	log     *logger.Logger
}

func New(venue string, deliver Deliver, log *logger.Logger) *Notifier {
	n := &Notifier{venue: venue, deliver: deliver, log: log}
	if n.deliver == nil {
		n.deliver = n.logDelivery
	}
	return n
}

// Handle is a kafka.MessageHandler for the bookings topic.
func (n *Notifier) Handle(ctx context.Context, msg kafka.Message) error {
	var event model.BookingEvent
	if err := msg.DecodeValue(&event); err != nil {
		return err
	}

	var text string
	switch event.Type {
	case model.EventBookingConfirmed:
		text = fmt.Sprintf("Hi %s, your %s booking at %s on %s from %s to %s is confirmed. Total: %d, payable at the venue.",
			event.CustomerName, event.Sport, n.venue, event.Date, event.StartTime, event.EndTime, event.TotalAmount)
	case model.EventBookingDeleted:
		text = fmt.Sprintf("Hi %s, your %s booking at %s on %s from %s to %s has been cancelled.",
			event.CustomerName, event.Sport, n.venue, event.Date, event.StartTime, event.EndTime)
	default:
		n.log.Debug("Ignoring event", "event_type", event.Type, "booking_id", event.BookingID)
		return nil
	}

	if event.CustomerPhone == "" {
		return kafka.NewPermanentError("booking event has no customer phone", kafka.ErrInvalidMessage)
	}

	return n.deliver(ctx, Notification{
		EventType: event.Type,
		BookingID: event.BookingID,
		Phone:     event.CustomerPhone,
		Link:      whatsapp.Link(event.CustomerPhone, text),
	})
}

func (n *Notifier) logDelivery(_ context.Context, note Notification) error {
	n.log.Info("Customer notification ready",
		"event_type", note.EventType,
		"booking_id", note.BookingID,
		"phone", note.Phone,
		"whatsapp_url", note.Link,
	)
	return nil
}
