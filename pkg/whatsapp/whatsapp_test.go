package whatsapp

import (
	"net/url"
	"strings"
	"testing"

	"sportsclub/pkg/model"
)

func sampleBooking() *model.Booking {
	return &model.Booking{
		Sport:     "Box Cricket",
		Date:      "2025-01-07",
		StartTime: "07:00",
		EndTime:   "09:00",
		Customer:  model.Customer{Name: "Asha Rao", Phone: "+919876543210", Count: 6},
	}
}

func TestConfirmationText(t *testing.T) {
	got := ConfirmationText("Darwin School Sports Club", sampleBooking())
	want := "Hello, I confirmed a booking at Darwin School Sports Club!\n\n" +
		"*Sport:* Box Cricket\n" +
		"*Date:* 2025-01-07\n" +
		"*Time:* 07:00 - 09:00\n" +
		"*Name:* Asha Rao\n" +
		"*Players:* 6\n\n" +
		"See you there!"

	if got != want {
		t.Errorf("unexpected message:\n%s\nwant:\n%s", got, want)
	}
}

func TestConfirmationLink(t *testing.T) {
	link := ConfirmationLink("+919000000001", "Darwin School Sports Club", sampleBooking())

	if !strings.HasPrefix(link, "https://wa.me/919000000001?text=") {
		t.Fatalf("unexpected link prefix: %s", link)
	}
	if strings.Contains(link, "+") {
		t.Errorf("spaces must be percent-encoded, got %s", link)
	}

	u, err := url.Parse(link)
	if err != nil {
		t.Fatalf("link does not parse: %v", err)
	}
	if text := u.Query().Get("text"); !strings.Contains(text, "*Time:* 07:00 - 09:00") {
		t.Errorf("decoded text lost the time line: %q", text)
	}
}

func TestLink_NoPhone(t *testing.T) {
	if got := Link("", "hi there"); got != "https://wa.me/?text=hi%20there" {
		t.Errorf("unexpected link %s", got)
	}
}
