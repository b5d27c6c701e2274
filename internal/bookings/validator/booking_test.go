package validator

import (
	"errors"
	"testing"

	"sportsclub/pkg/logger"
	"sportsclub/pkg/model"
)

func validRequest() *model.BookingRequest {
	return &model.BookingRequest{
		Sport:     "Table Tennis",
		Date:      "2025-01-07",
		StartTime: "06:00",
		EndTime:   "08:00",
		Customer: model.Customer{
			Name:  "Ravi Kumar",
			Phone: "+919876543210",
			Count: 2,
		},
	}
}

func fields(t *testing.T, err error) map[string]string {
	t.Helper()
	var verrs ValidationErrors
	if !errors.As(err, &verrs) {
		t.Fatalf("expected ValidationErrors, got %T: %v", err, err)
	}
	out := make(map[string]string, len(verrs))
	for _, v := range verrs {
		out[v.Field] = v.Message
	}
	return out
}

func TestValidate_Valid(t *testing.T) {
	v := NewBookingValidator(logger.Nop())

	if err := v.Validate(validRequest()); err != nil {
		t.Fatalf("expected valid request, got %v", err)
	}

	byID := validRequest()
	byID.Sport = ""
	byID.SportID = "65a1b2c3d4e5f60718293a4b"
	if err := v.Validate(byID); err != nil {
		t.Fatalf("expected request by sport_id to be valid, got %v", err)
	}
}

func TestValidate_FieldErrors(t *testing.T) {
	v := NewBookingValidator(logger.Nop())

	tests := []struct {
		name   string
		mutate func(*model.BookingRequest)
		field  string
	}{
		{"no sport", func(r *model.BookingRequest) { r.Sport = "" }, "sport"},
		{"bad sport id", func(r *model.BookingRequest) { r.Sport = ""; r.SportID = "nope" }, "sport_id"},
		{"bad date", func(r *model.BookingRequest) { r.Date = "07/01/2025" }, "date"},
		{"half hour", func(r *model.BookingRequest) { r.StartTime = "06:30" }, "start_time"},
		{"missing end", func(r *model.BookingRequest) { r.EndTime = "" }, "end_time"},
		{"short name", func(r *model.BookingRequest) { r.Customer.Name = "R" }, "customer.name"},
		{"bad phone", func(r *model.BookingRequest) { r.Customer.Phone = "98765" }, "customer.phone"},
		{"no players", func(r *model.BookingRequest) { r.Customer.Count = 0 }, "customer.count"},
		{"too many players", func(r *model.BookingRequest) { r.Customer.Count = 51 }, "customer.count"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := validRequest()
			tt.mutate(req)

			got := fields(t, v.Validate(req))
			if _, ok := got[tt.field]; !ok {
				t.Errorf("expected an error on %s, got %v", tt.field, got)
			}
		})
	}
}

func TestValidate_EndAfterStart(t *testing.T) {
	v := NewBookingValidator(logger.Nop())

	req := validRequest()
	req.StartTime, req.EndTime = "08:00", "08:00"

	got := fields(t, v.Validate(req))
	if got["end_time"] != "end_time must be after start_time" {
		t.Errorf("unexpected errors %v", got)
	}
}
