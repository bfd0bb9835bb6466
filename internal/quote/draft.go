// Package quote turns a confirmed session into a priced, dispatched quote.
package quote

import (
	"errors"
	"fmt"
	"strings"

	"github.com/serigraph/quotebot/internal/pricing"
	"github.com/serigraph/quotebot/internal/session"
)

// ErrIncompleteDraft is returned when a session lacks fields required for pricing.
var ErrIncompleteDraft = errors.New("quote draft is incomplete")

// BuildDraft projects a session onto a pricing draft. Either every required
// field is present or ErrIncompleteDraft is returned naming the missing ones.
func BuildDraft(s *session.QuoteSession) (pricing.Draft, error) {
	var missing []string
	if s == nil {
		return pricing.Draft{}, fmt.Errorf("%w: no session", ErrIncompleteDraft)
	}
	if strings.TrimSpace(s.ClientName) == "" {
		missing = append(missing, "client name")
	}
	if s.Product == nil {
		missing = append(missing, "product")
	}
	if s.Dimension == nil {
		missing = append(missing, "dimension")
	}
	if s.Material == nil {
		missing = append(missing, "material")
	}
	if s.Quantity <= 0 {
		missing = append(missing, "quantity")
	}
	if s.TurnaroundDays <= 0 {
		missing = append(missing, "turnaround days")
	}
	if s.MarginPercent < 0 || s.TiroRetiroCost < 0 {
		missing = append(missing, "non-negative margin and tiro-retiro")
	}
	if len(missing) > 0 {
		return pricing.Draft{}, fmt.Errorf("%w: missing %s", ErrIncompleteDraft, strings.Join(missing, ", "))
	}

	return pricing.Draft{
		ClientName:       s.ClientName,
		Product:          s.Product.Name,
		ProductBasePrice: s.Product.BasePrice,
		Dimension:        s.Dimension.Label,
		Material:         s.Material.Name,
		MaterialPrice:    s.Material.Price,
		SheetSize:        s.Material.SheetSize,
		Quantity:         s.Quantity,
		IsDigitalPrint:   s.IsDigitalPrint,
		TurnaroundDays:   s.TurnaroundDays,
		Charges:          append([]pricing.Charge(nil), s.AdditionalCharges...),
		ExtraCosts:       append([]pricing.ExtraCost(nil), s.ExtraCosts...),
		TiroRetiroCost:   s.TiroRetiroCost,
		MarginPercent:    s.MarginPercent,
	}, nil
}
