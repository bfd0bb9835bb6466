package utils

import (
	"path"
	"strings"
	"time"

	"github.com/google/uuid"
)

// QuoteNumber generates a human readable quote number, e.g. COT-20250301-1A2B3C4D.
func QuoteNumber(now time.Time) string {
	id := strings.ToUpper(strings.ReplaceAll(uuid.NewString(), "-", ""))
	return "COT-" + now.Format("20060102") + "-" + id[:8]
}

// MediaKey returns a unique object key for a published document.
func MediaKey(now time.Time, filename string) string {
	return path.Join(now.Format("2006/01/02"), uuid.NewString()+"-"+path.Base(filename))
}
