// Package session holds the per-user quoting conversations.
package session

import (
	"time"

	"github.com/serigraph/quotebot/internal/pricing"
)

// State is a step of the quoting dialog.
type State int

const (
	AskName State = iota
	Menu
	Products
	NewProduct
	NewProductPrice
	Dimensions
	NewDimension
	Material
	Quantity
	DigitalYN
	AdditionalChargeLoop
	ExtraCostLoop
	ExtraCostAmount
	ExtraCostDescription
	TurnaroundDays
	TiroRetiroYN
	TiroRetiroCost
	MarginYN
	MarginValue
	Confirm
	AdminCharges
	AddCharge
	AddChargeDescription
	DeleteCharge
)

var stateNames = [...]string{
	AskName:              "ASK_NAME",
	Menu:                 "MENU",
	Products:             "PRODUCTS",
	NewProduct:           "NEW_PRODUCT",
	NewProductPrice:      "NEW_PRODUCT_PRICE",
	Dimensions:           "DIMENSIONS",
	NewDimension:         "NEW_DIMENSION",
	Material:             "MATERIAL",
	Quantity:             "QUANTITY",
	DigitalYN:            "DIGITAL_YN",
	AdditionalChargeLoop: "ADDITIONAL_CHARGE_LOOP",
	ExtraCostLoop:        "EXTRA_COST_LOOP",
	ExtraCostAmount:      "EXTRA_COST_AMOUNT",
	ExtraCostDescription: "EXTRA_COST_DESCRIPTION",
	TurnaroundDays:       "TURNAROUND_DAYS",
	TiroRetiroYN:         "TIRO_RETIRO_YN",
	TiroRetiroCost:       "TIRO_RETIRO_COST",
	MarginYN:             "MARGIN_YN",
	MarginValue:          "MARGIN_VALUE",
	Confirm:              "CONFIRM",
	AdminCharges:         "ADMIN_CHARGES",
	AddCharge:            "ADD_CHARGE",
	AddChargeDescription: "ADD_CHARGE_DESCRIPTION",
	DeleteCharge:         "DELETE_CHARGE",
}

func (s State) String() string {
	if s < 0 || int(s) >= len(stateNames) {
		return "UNKNOWN"
	}
	return stateNames[s]
}

// Valid reports whether s is one of the enumerated states.
func (s State) Valid() bool {
	return s >= 0 && int(s) < len(stateNames)
}

// AllStates lists every state in declaration order.
func AllStates() []State {
	states := make([]State, len(stateNames))
	for i := range stateNames {
		states[i] = State(i)
	}
	return states
}

// SelectedProduct is the product chosen or created during the dialog.
type SelectedProduct struct {
	Name      string
	BasePrice float64
}

// SelectedDimension is the finished piece size.
type SelectedDimension struct {
	Label  string
	Width  float64
	Height float64
	Price  float64
}

// SelectedMaterial is the printing stock and its sheet size.
type SelectedMaterial struct {
	Name        string
	Price       float64
	SheetSize   string
	SheetWidth  float64
	SheetHeight float64
}

// ChargeRef identifies a charge definition captured from the catalog.
type ChargeRef struct {
	ID          uint
	Name        string
	Description string
}

// QuoteSession is one user's in-progress conversation. Fields are filled in
// as the dialog reaches them.
type QuoteSession struct {
	UserID  string
	State   State
	History []State

	ClientName        string
	Product           *SelectedProduct
	Dimension         *SelectedDimension
	Material          *SelectedMaterial
	Quantity          int
	IsDigitalPrint    bool
	AdditionalCharges []pricing.Charge
	ExtraCosts        []pricing.ExtraCost
	MarginPercent     float64
	TurnaroundDays    int
	TiroRetiroCost    float64

	// Scratch state for multi-message steps.
	PendingCharges []ChargeRef
	ChargeCursor   int
	PendingAmount  float64
	PendingName    string

	CreatedAt  time.Time
	LastActive time.Time
}

// New starts a fresh session at ASK_NAME with the default margin and turnaround.
func New(userID string, now time.Time) *QuoteSession {
	return &QuoteSession{
		UserID:         userID,
		State:          AskName,
		MarginPercent:  pricing.DefaultMarginPercent,
		TurnaroundDays: pricing.DefaultTurnaroundDays,
		CreatedAt:      now,
		LastActive:     now,
	}
}

// Advance records the current state in the history and moves to next.
func (s *QuoteSession) Advance(next State) {
	s.History = append(s.History, s.State)
	s.State = next
}

// Back pops the most recent state from the history. It reports false when
// the history is empty.
func (s *QuoteSession) Back() (State, bool) {
	if len(s.History) == 0 {
		return s.State, false
	}
	prev := s.History[len(s.History)-1]
	s.History = s.History[:len(s.History)-1]
	s.State = prev
	return prev, true
}

// Clone returns a deep copy sharing no mutable data with s.
func (s *QuoteSession) Clone() *QuoteSession {
	if s == nil {
		return nil
	}
	c := *s
	c.History = append([]State(nil), s.History...)
	c.AdditionalCharges = append([]pricing.Charge(nil), s.AdditionalCharges...)
	c.ExtraCosts = append([]pricing.ExtraCost(nil), s.ExtraCosts...)
	c.PendingCharges = append([]ChargeRef(nil), s.PendingCharges...)
	if s.Product != nil {
		p := *s.Product
		c.Product = &p
	}
	if s.Dimension != nil {
		d := *s.Dimension
		c.Dimension = &d
	}
	if s.Material != nil {
		m := *s.Material
		c.Material = &m
	}
	return &c
}
