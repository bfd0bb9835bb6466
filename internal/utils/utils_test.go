package utils

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestQuoteNumber(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	a := QuoteNumber(now)
	b := QuoteNumber(now)

	assert.Regexp(t, regexp.MustCompile(`^COT-20250301-[0-9A-F]{8}$`), a)
	assert.NotEqual(t, a, b)
}

func TestMediaKey(t *testing.T) {
	now := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)
	key := MediaKey(now, "../../etc/COT-1.pdf")

	assert.True(t, strings.HasPrefix(key, "2025/03/01/"))
	assert.True(t, strings.HasSuffix(key, "-COT-1.pdf"))
	assert.NotContains(t, key, "..")
}

func TestNormalizeUserID(t *testing.T) {
	cases := map[string]string{
		"whatsapp:+16502530000": "+16502530000",
		" +1 650-253-0000 ":     "+16502530000",
		"(650) 253-0000":        "+16502530000",
		"not-a-number":          "not-a-number",
		"":                      "",
	}
	for in, want := range cases {
		assert.Equal(t, want, NormalizeUserID(in, "US"), in)
	}
}

func TestWhatsAppAddress(t *testing.T) {
	assert.Equal(t, "whatsapp:+14155238886", WhatsAppAddress("+14155238886"))
	assert.Equal(t, "whatsapp:+14155238886", WhatsAppAddress("whatsapp:+14155238886"))
}
