package dialog

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/serigraph/quotebot/internal/pricing"
)

const (
	greetingKeyword = "hola"
	backToken       = "r"
)

// InputError means the text was rejected and the user must answer again.
// The session is left exactly as it was before the message.
type InputError struct {
	Reason string
}

func (e *InputError) Error() string {
	return e.Reason
}

func invalid(reason string) error {
	return &InputError{Reason: reason}
}

var (
	quantityPattern  = regexp.MustCompile(`^[1-9][0-9]*$`)
	integerPattern   = regexp.MustCompile(`^-?[0-9]+$`)
	amountPattern    = regexp.MustCompile(`^(?:\d{1,3}(?:,\d{3})+|\d+)(?:\.\d+)?$`)
	newDimensionExpr = regexp.MustCompile(`^(\d+(?:\.\d+)?)\s*[xX]\s*(\d+(?:\.\d+)?)$`)
)

func isGreeting(text string) bool {
	return strings.Contains(strings.ToLower(text), greetingKeyword)
}

func isBack(text string) bool {
	return strings.EqualFold(strings.TrimSpace(text), backToken)
}

// parseYesNo checks the affirmative tokens before the negative one.
func parseYesNo(text string) (bool, error) {
	lower := strings.ToLower(strings.TrimSpace(text))
	switch {
	case strings.Contains(lower, "sí"), strings.Contains(lower, "si"):
		return true, nil
	case strings.Contains(lower, "no"):
		return false, nil
	default:
		return false, invalid(errYesNo)
	}
}

// parseQuantity accepts only canonical positive integers, with no
// surrounding whitespace.
func parseQuantity(t string) (int, error) {
	if quantityPattern.MatchString(t) {
		n, err := strconv.Atoi(t)
		if err != nil {
			return 0, invalid(errQuantityNumber)
		}
		return n, nil
	}
	if integerPattern.MatchString(t) {
		if n, err := strconv.Atoi(t); err == nil && n <= 0 {
			return 0, invalid(errQuantityPositive)
		}
	}
	return 0, invalid(errQuantityNumber)
}

// parseChoice parses a 1-based menu pick in [lo, hi].
func parseChoice(text string, lo, hi int, reason string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n < lo || n > hi {
		return 0, invalid(reason)
	}
	return n, nil
}

// parseAmount accepts non-negative decimals with an optional leading "$" and
// comma thousands separators.
func parseAmount(text string) (float64, error) {
	t := strings.TrimSpace(text)
	t = strings.TrimSpace(strings.TrimPrefix(t, "$"))
	if !amountPattern.MatchString(t) {
		return 0, invalid(errAmount)
	}
	v, err := strconv.ParseFloat(strings.ReplaceAll(t, ",", ""), 64)
	if err != nil || v < 0 {
		return 0, invalid(errAmount)
	}
	return v, nil
}

func parsePercent(text string) (float64, error) {
	t := strings.TrimSpace(strings.TrimSuffix(strings.TrimSpace(text), "%"))
	v, err := parseAmount(t)
	if err != nil {
		return 0, invalid(errPercent)
	}
	return v, nil
}

func parseDays(text string) (int, error) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil || n <= 0 {
		return 0, invalid(errDays)
	}
	return n, nil
}

// parseNewDimension validates a strict "WxH" entry with both sides positive.
func parseNewDimension(text string) (pricing.Size, error) {
	m := newDimensionExpr.FindStringSubmatch(strings.TrimSpace(text))
	if m == nil {
		return pricing.Size{}, invalid(errDimensionFormat)
	}
	w, errW := strconv.ParseFloat(m[1], 64)
	h, errH := strconv.ParseFloat(m[2], 64)
	if errW != nil || errH != nil || w <= 0 || h <= 0 {
		return pricing.Size{}, invalid(errDimensionFormat)
	}
	return pricing.Size{Width: w, Height: h}, nil
}

func requireText(text string) (string, error) {
	t := strings.TrimSpace(text)
	if t == "" {
		return "", invalid(errEmptyText)
	}
	return t, nil
}
