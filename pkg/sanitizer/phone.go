package sanitizer

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

// NormalizePhone returns phone in E.164 form. Numbers without a country code
// are read in defaultRegion. Anything that is not a valid number for its
// region yields "".
func NormalizePhone(phone, defaultRegion string) string {
	phone = strings.TrimSpace(phone)

	if phone == "" {
		return ""
	}

	parsed, err := phonenumbers.Parse(phone, strings.ToUpper(defaultRegion))
	if err != nil || !phonenumbers.IsValidNumber(parsed) {
		return ""
	}
	return phonenumbers.Format(parsed, phonenumbers.E164)
}

// WhatsAppDigits strips an E.164 number down to the digits wa.me expects.
func WhatsAppDigits(e164 string) string {
	return strings.TrimPrefix(e164, "+")
}
