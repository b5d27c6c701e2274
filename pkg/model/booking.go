package model

import "time"

// PaymentAtVenue is the only payment mode: money changes hands at the club.
const PaymentAtVenue = "PAY AT VENUE"

type Customer struct {
	Name  string      `json:"name" bson:"name" validate:"required,min=2,max=100"`
	Phone string      `json:"phone" bson:"phone" validate:"required,e164"`
	Count PlayerCount `json:"count" bson:"count" validate:"gt=0,max=50"`
}

// Booking is a confirmed reservation of one sport for [StartTime, EndTime) on Date.
// Sport holds the sport name at booking time and is the conflict key; SportID
// is the stable reference.
type Booking struct {
	ID          string    `json:"id,omitempty" bson:"_id,omitempty"`
	SportID     string    `json:"sport_id,omitempty" bson:"sportId,omitempty"`
	Sport       string    `json:"sport" bson:"sport"`
	Date        string    `json:"date" bson:"date"`
	StartTime   string    `json:"start_time" bson:"startTime"`
	EndTime     string    `json:"end_time" bson:"endTime"`
	TotalAmount int       `json:"total_amount" bson:"totalAmount"`
	PaymentMode string    `json:"payment_mode" bson:"paymentMode"`
	Customer    Customer  `json:"customer" bson:"customer"`
	CreatedAt   time.Time `json:"created_at" bson:"createdAt"`
}

// BookingRequest is what a customer submits. The sport is chosen by id, or
// by its display name for older clients. Any client-computed amount is ignored.
type BookingRequest struct {
	SportID   string   `json:"sport_id" validate:"required_without=Sport,omitempty,mongodb"`
	Sport     string   `json:"sport" validate:"required_without=SportID,omitempty,min=2,max=50"`
	Date      string   `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime string   `json:"start_time" validate:"required,hour_slot"`
	EndTime   string   `json:"end_time" validate:"required,hour_slot"`
	Customer  Customer `json:"customer"`
}

type AttemptState string

const (
	AttemptDraft     AttemptState = "draft"
	AttemptValidated AttemptState = "validated"
	AttemptSubmitted AttemptState = "submitted"
	AttemptConfirmed AttemptState = "confirmed"
	AttemptRejected  AttemptState = "rejected"
)

type Confirmation struct {
	Booking     *Booking     `json:"booking"`
	State       AttemptState `json:"state"`
	WhatsAppURL string       `json:"whatsapp_url"`
}

// DaySheet is the admin view of one day: a page of bookings ordered by start
// time plus totals computed over the whole day.
type DaySheet struct {
	Date          string     `json:"date"`
	Bookings      []*Booking `json:"bookings"`
	TotalBookings int64      `json:"total_bookings"`
	Revenue       int64      `json:"revenue"`
	Visitors      int64      `json:"visitors"`
	Limit         int        `json:"limit"`
	Offset        int64      `json:"offset"`
}
