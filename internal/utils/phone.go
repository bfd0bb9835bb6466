package utils

import (
	"strings"

	"github.com/nyaruka/phonenumbers"
)

const whatsappPrefix = "whatsapp:"

// NormalizeUserID turns a Twilio address ("whatsapp:+52 1 55 ...") into an
// E.164 number. Input that does not parse as a valid number is returned
// trimmed so every sender still maps to a stable key.
func NormalizeUserID(from, defaultRegion string) string {
	trimmed := strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(from), whatsappPrefix))
	if trimmed == "" {
		return trimmed
	}

	number, err := phonenumbers.Parse(trimmed, defaultRegion)
	if err != nil {
		return trimmed
	}
	if !phonenumbers.IsValidNumber(number) {
		return trimmed
	}
	return phonenumbers.Format(number, phonenumbers.E164)
}

// WhatsAppAddress formats an E.164 number as a Twilio WhatsApp address.
func WhatsAppAddress(number string) string {
	if strings.HasPrefix(number, whatsappPrefix) {
		return number
	}
	return whatsappPrefix + number
}
