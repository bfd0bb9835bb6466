// Package pricing computes sheet yield and the final cost of a print quote.
package pricing

import "math"

// Fixed business rules.
const (
	ReamSize       = 500.0
	TaxMultiplier  = 1.17
	SpoilageSheets = 2
	CuttingMargin  = 1

	DefaultMarginPercent  = 50.0
	DefaultTurnaroundDays = 1
)

// Charge is an admin-defined surcharge with the amount the user entered.
type Charge struct {
	Name        string
	Description string
	Amount      float64
}

// ExtraCost is a free-form cost added during the dialog.
type ExtraCost struct {
	Description string
	Amount      float64
}

// Draft is the complete set of inputs needed to price a quote.
type Draft struct {
	ClientName       string
	Product          string
	ProductBasePrice float64
	Dimension        string
	Material         string
	MaterialPrice    float64
	SheetSize        string
	Quantity         int
	IsDigitalPrint   bool
	TurnaroundDays   int
	Charges          []Charge
	ExtraCosts       []ExtraCost
	TiroRetiroCost   float64
	MarginPercent    float64
}

// Breakdown holds the final cost and every intermediate figure shown on the
// quote document.
type Breakdown struct {
	FlyerSize      Size
	SheetSize      Size
	FlyersPerSheet int
	RequiredSheets int
	CostPerSheet   float64
	PaperCost      float64
	ChargesTotal   float64
	ExtrasTotal    float64
	TiroRetiro     float64
	Additional     float64
	Subtotal       float64
	MarginPercent  float64
	WithMargin     float64
	FinalCost      float64
	UnitPrice      float64
}

// FlyersPerSheet returns how many finished pieces fit on one sheet, keeping
// one piece as cutting waste. Unknown sizes fall back to one per sheet.
func FlyersPerSheet(flyer, sheet Size) int {
	flyerArea := flyer.Area()
	sheetArea := sheet.Area()
	if flyerArea <= 0 || sheetArea <= 0 {
		return 1
	}
	n := int(math.Floor(sheetArea/flyerArea)) - CuttingMargin
	if n < 1 {
		return 1
	}
	return n
}

// RequiredSheets returns the sheets needed for quantity pieces including spoilage.
func RequiredSheets(quantity, flyersPerSheet int) int {
	if flyersPerSheet < 1 {
		flyersPerSheet = 1
	}
	if quantity < 0 {
		quantity = 0
	}
	return int(math.Ceil(float64(quantity)/float64(flyersPerSheet))) + SpoilageSheets
}

// Calculate prices a draft. The tiro-retiro cost is counted both in the
// additional costs and again before tax.
func Calculate(d Draft) Breakdown {
	b := Breakdown{
		FlyerSize:     ParseDimension(d.Dimension),
		SheetSize:     ParseDimension(d.SheetSize),
		TiroRetiro:    d.TiroRetiroCost,
		MarginPercent: d.MarginPercent,
	}

	b.FlyersPerSheet = FlyersPerSheet(b.FlyerSize, b.SheetSize)
	b.RequiredSheets = RequiredSheets(d.Quantity, b.FlyersPerSheet)
	b.CostPerSheet = d.MaterialPrice / ReamSize
	b.PaperCost = float64(b.RequiredSheets) * b.CostPerSheet

	for _, c := range d.Charges {
		b.ChargesTotal += c.Amount
	}
	for _, e := range d.ExtraCosts {
		b.ExtrasTotal += e.Amount
	}
	b.Additional = b.ChargesTotal + b.ExtrasTotal + d.TiroRetiroCost
	b.Subtotal = b.PaperCost + b.Additional

	b.WithMargin = b.Subtotal * (1 + d.MarginPercent/100)
	b.FinalCost = (b.WithMargin + d.TiroRetiroCost) * TaxMultiplier

	if d.Quantity > 0 {
		b.UnitPrice = b.FinalCost / float64(d.Quantity)
	}
	return b
}
