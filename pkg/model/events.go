package model

import "time"

const (
	EventBookingConfirmed = "booking.confirmed"
	EventBookingDeleted   = "booking.deleted"
	EventSportCreated     = "sport.created"
	EventSportUpdated     = "sport.updated"
	EventSportDeleted     = "sport.deleted"
)

type BookingEvent struct {
	Type          string    `json:"type"`
	BookingID     string    `json:"booking_id"`
	SportID       string    `json:"sport_id,omitempty"`
	Sport         string    `json:"sport"`
	Date          string    `json:"date"`
	StartTime     string    `json:"start_time"`
	EndTime       string    `json:"end_time"`
	TotalAmount   int       `json:"total_amount"`
	CustomerName  string    `json:"customer_name"`
	CustomerPhone string    `json:"customer_phone"`
	Players       int       `json:"players"`
	OccurredAt    time.Time `json:"occurred_at"`
}

func NewBookingEvent(eventType string, b *Booking, at time.Time) *BookingEvent {
	return &BookingEvent{
		Type:          eventType,
		BookingID:     b.ID,
		SportID:       b.SportID,
		Sport:         b.Sport,
		Date:          b.Date,
		StartTime:     b.StartTime,
		EndTime:       b.EndTime,
		TotalAmount:   b.TotalAmount,
		CustomerName:  b.Customer.Name,
		CustomerPhone: b.Customer.Phone,
		Players:       int(b.Customer.Count),
		OccurredAt:    at.UTC(),
	}
}

type SportEvent struct {
	Type       string    `json:"type"`
	SportID    string    `json:"sport_id"`
	Name       string    `json:"name"`
	Price      int       `json:"price"`
	IsActive   bool      `json:"is_active"`
	OccurredAt time.Time `json:"occurred_at"`
}

func NewSportEvent(eventType string, s *Sport, at time.Time) *SportEvent {
	return &SportEvent{
		Type:       eventType,
		SportID:    s.ID,
		Name:       s.Name,
		Price:      s.Price,
		IsActive:   s.IsActive,
		OccurredAt: at.UTC(),
	}
}
