// Package whatsapp composes wa.me deep links. It never sends anything: the
// link is handed to the customer, whose own client opens the chat.
package whatsapp

import (
	"fmt"
	"net/url"
	"strings"

	"sportsclub/pkg/model"
	"sportsclub/pkg/sanitizer"
)

const BaseURL = "https://wa.me/"

// ConfirmationText is the message a customer sends to the club after booking.
func ConfirmationText(venue string, b *model.Booking) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "Hello, I confirmed a booking at %s!\n\n", venue)
	fmt.Fprintf(&sb, "*Sport:* %s\n", b.Sport)
	fmt.Fprintf(&sb, "*Date:* %s\n", b.Date)
	fmt.Fprintf(&sb, "*Time:* %s - %s\n", b.StartTime, b.EndTime)
	fmt.Fprintf(&sb, "*Name:* %s\n", b.Customer.Name)
	fmt.Fprintf(&sb, "*Players:* %d\n\n", int(b.Customer.Count))
	sb.WriteString("See you there!")
	return sb.String()
}

// Link opens a chat with phone (E.164) prefilled with text. An empty phone
// yields a link that lets the sender pick the recipient.
func Link(phone, text string) string {
	// wa.me does not decode '+' as a space.
	escaped := strings.ReplaceAll(url.QueryEscape(text), "+", "%20")
	return BaseURL + sanitizer.WhatsAppDigits(phone) + "?text=" + escaped
}

func ConfirmationLink(adminPhone, venue string, b *model.Booking) string {
	return Link(adminPhone, ConfirmationText(venue, b))
}
