package pricing

import (
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"
)

// Size is a width/height pair in the catalog's units. The zero Size means
// the token could not be parsed.
type Size struct {
	Width  float64
	Height float64
}

// Area returns width × height.
func (s Size) Area() float64 {
	return s.Width * s.Height
}

// Valid reports whether both sides are strictly positive.
func (s Size) Valid() bool {
	return s.Width > 0 && s.Height > 0
}

// String formats the size as "WxH" with no trailing zeros.
func (s Size) String() string {
	return formatNumber(s.Width) + "x" + formatNumber(s.Height)
}

var sizePattern = regexp.MustCompile(`(-?\d+(?:\.\d+)?)\s*[xX]\s*(-?\d+(?:\.\d+)?)`)

// Named paper sizes, matched against the whole lowercased token.
var paperAliases = map[string]Size{
	"carta":       {8.5, 11},
	"letter":      {8.5, 11},
	"oficio":      {8.5, 14},
	"legal":       {8.5, 14},
	"tabloide":    {11, 17},
	"doble carta": {11, 17},
	"media carta": {5.5, 8.5},
}

// ParseDimension maps a free-text size token to a Size. Numeric "WxH"
// extraction wins over the alias table; non-positive components and unknown
// tokens yield the zero Size.
func ParseDimension(token string) Size {
	if m := sizePattern.FindStringSubmatch(token); m != nil {
		w, errW := strconv.ParseFloat(m[1], 64)
		h, errH := strconv.ParseFloat(m[2], 64)
		if errW == nil && errH == nil && w > 0 && h > 0 {
			return Size{Width: w, Height: h}
		}
		slog.Warn("dimension has non-positive components", slog.String("token", token))
		return Size{}
	}

	key := strings.Join(strings.Fields(strings.ToLower(token)), " ")
	if size, ok := paperAliases[key]; ok {
		return size
	}

	slog.Warn("unparseable dimension", slog.String("token", token))
	return Size{}
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// FormatMoney renders an amount for display with two decimals.
func FormatMoney(v float64) string {
	return fmt.Sprintf("$%.2f", v)
}
