package dialog

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/serigraph/quotebot/internal/models"
	"github.com/serigraph/quotebot/internal/pricing"
	"github.com/serigraph/quotebot/internal/quote"
	"github.com/serigraph/quotebot/internal/session"
	"github.com/serigraph/quotebot/internal/storage"
)

// stepFunc consumes the message for one state. It mutates t.sess (a private
// copy) and returns an optional acknowledgement shown before the next prompt.
type stepFunc func(e *Engine, ctx context.Context, t *turn) (string, error)

var steps = map[session.State]stepFunc{
	session.AskName:              (*Engine).askName,
	session.Menu:                 (*Engine).menu,
	session.Products:             (*Engine).products,
	session.NewProduct:           (*Engine).newProduct,
	session.NewProductPrice:      (*Engine).newProductPrice,
	session.Dimensions:           (*Engine).dimensions,
	session.NewDimension:         (*Engine).newDimension,
	session.Material:             (*Engine).material,
	session.Quantity:             (*Engine).quantity,
	session.DigitalYN:            (*Engine).digital,
	session.AdditionalChargeLoop: (*Engine).additionalCharge,
	session.ExtraCostLoop:        (*Engine).extraCostGate,
	session.ExtraCostAmount:      (*Engine).extraCostAmount,
	session.ExtraCostDescription: (*Engine).extraCostDescription,
	session.TurnaroundDays:       (*Engine).turnaround,
	session.TiroRetiroYN:         (*Engine).tiroRetiroGate,
	session.TiroRetiroCost:       (*Engine).tiroRetiroCost,
	session.MarginYN:             (*Engine).marginGate,
	session.MarginValue:          (*Engine).marginValue,
	session.Confirm:              (*Engine).confirm,
	session.AdminCharges:         (*Engine).adminCharges,
	session.AddCharge:            (*Engine).addCharge,
	session.AddChargeDescription: (*Engine).addChargeDescription,
	session.DeleteCharge:         (*Engine).deleteCharge,
}

func (e *Engine) askName(_ context.Context, t *turn) (string, error) {
	name, err := requireText(t.text)
	if err != nil {
		return "", err
	}
	t.sess.ClientName = name
	t.sess.Advance(session.Menu)
	return "", nil
}

func (e *Engine) menu(_ context.Context, t *turn) (string, error) {
	n, err := parseChoice(t.text, 1, 2, errMenuOption)
	if err != nil {
		return "", err
	}
	if n == 1 {
		t.sess.Advance(session.Products)
	} else {
		t.sess.Advance(session.AdminCharges)
	}
	return "", nil
}

func (e *Engine) products(ctx context.Context, t *turn) (string, error) {
	products, err := e.catalog.ListProducts(ctx)
	if err != nil {
		return "", fmt.Errorf("list products: %w", err)
	}
	n, err := parseChoice(t.text, 0, len(products), errListOption)
	if err != nil {
		return "", err
	}
	if n == 0 {
		t.sess.Advance(session.NewProduct)
		return "", nil
	}

	p := products[n-1]
	t.sess.Product = &session.SelectedProduct{Name: p.Name, BasePrice: p.BasePrice}
	t.sess.Advance(session.Dimensions)
	return "", nil
}

func (e *Engine) newProduct(_ context.Context, t *turn) (string, error) {
	name, err := requireText(t.text)
	if err != nil {
		return "", err
	}
	t.sess.PendingName = name
	t.sess.Advance(session.NewProductPrice)
	return "", nil
}

func (e *Engine) newProductPrice(ctx context.Context, t *turn) (string, error) {
	if t.sess.PendingName == "" {
		// The name is asked again; the step that captured it is undone.
		if _, ok := t.sess.Back(); !ok || t.sess.State != session.NewProduct {
			t.sess.State = session.NewProduct
		}
		return msgProductNameMissing, nil
	}

	price, err := parseAmount(t.text)
	if err != nil {
		return "", err
	}
	p, err := e.catalog.CreateProduct(ctx, t.sess.PendingName, price)
	if err != nil {
		return "", fmt.Errorf("create product: %w", err)
	}

	// PendingName is kept for a back step into this state.
	t.sess.Product = &session.SelectedProduct{Name: p.Name, BasePrice: p.BasePrice}
	t.sess.Advance(session.Dimensions)
	return fmt.Sprintf("✅ Producto %s agregado.", p.Name), nil
}

func (e *Engine) dimensions(ctx context.Context, t *turn) (string, error) {
	dims, err := e.catalog.ListDimensions(ctx)
	if err != nil {
		return "", fmt.Errorf("list dimensions: %w", err)
	}
	n, err := parseChoice(t.text, 0, len(dims), errListOption)
	if err != nil {
		return "", err
	}
	if n == 0 {
		t.sess.Advance(session.NewDimension)
		return "", nil
	}

	t.sess.Dimension = selectedDimension(dims[n-1])
	t.sess.Advance(session.Material)
	return "", nil
}

func (e *Engine) newDimension(ctx context.Context, t *turn) (string, error) {
	size, err := parseNewDimension(t.text)
	if err != nil {
		return "", err
	}
	d, err := e.catalog.CreateDimension(ctx, size.String(), 0)
	if err != nil {
		return "", fmt.Errorf("create dimension: %w", err)
	}

	t.sess.Dimension = selectedDimension(d)
	t.sess.Advance(session.Material)
	return fmt.Sprintf("✅ Tamaño %s agregado.", d.Label), nil
}

func selectedDimension(d *models.Dimension) *session.SelectedDimension {
	size := pricing.ParseDimension(d.Label)
	return &session.SelectedDimension{
		Label:  d.Label,
		Width:  size.Width,
		Height: size.Height,
		Price:  d.Price,
	}
}

func (e *Engine) material(ctx context.Context, t *turn) (string, error) {
	materials, err := e.catalog.ListMaterials(ctx)
	if err != nil {
		return "", fmt.Errorf("list materials: %w", err)
	}
	if len(materials) == 0 {
		return "", invalid(msgNoMaterials)
	}
	n, err := parseChoice(t.text, 1, len(materials), errMaterialOption)
	if err != nil {
		return "", err
	}

	m := materials[n-1]
	sheet := pricing.ParseDimension(m.SheetSize)
	t.sess.Material = &session.SelectedMaterial{
		Name:        m.Name,
		Price:       m.Price,
		SheetSize:   m.SheetSize,
		SheetWidth:  sheet.Width,
		SheetHeight: sheet.Height,
	}
	t.sess.Advance(session.Quantity)
	return "", nil
}

func (e *Engine) quantity(_ context.Context, t *turn) (string, error) {
	q, err := parseQuantity(t.text)
	if err != nil {
		return "", err
	}
	t.sess.Quantity = q
	t.sess.Advance(session.DigitalYN)
	return "", nil
}

// digital records the print type and snapshots the charge definitions the
// loop will ask for.
func (e *Engine) digital(ctx context.Context, t *turn) (string, error) {
	yes, err := parseYesNo(t.text)
	if err != nil {
		return "", err
	}
	defs, err := e.catalog.ListChargeDefinitions(ctx)
	if err != nil {
		return "", fmt.Errorf("list charges: %w", err)
	}

	var pending []session.ChargeRef
	for _, d := range defs {
		if !chargeApplies(d, yes) {
			continue
		}
		pending = append(pending, session.ChargeRef{ID: d.ID, Name: d.Name, Description: d.Description})
	}

	s := t.sess
	s.IsDigitalPrint = yes
	s.PendingCharges = pending
	s.ChargeCursor = 0
	s.AdditionalCharges = nil

	if len(pending) == 0 {
		s.Advance(session.ExtraCostLoop)
	} else {
		s.Advance(session.AdditionalChargeLoop)
	}
	return "", nil
}

// chargeApplies excludes the "clicks" charge from non-digital jobs.
func chargeApplies(d *models.ChargeDefinition, digital bool) bool {
	if digital {
		return true
	}
	return !isClicks(d.Name) && !isClicks(d.Description)
}

func isClicks(s string) bool {
	return strings.EqualFold(strings.TrimSpace(s), "clicks")
}

// additionalCharge stores one amount and moves the cursor. Only leaving the
// loop is recorded in the history.
func (e *Engine) additionalCharge(_ context.Context, t *turn) (string, error) {
	s := t.sess
	if s.ChargeCursor >= len(s.PendingCharges) {
		s.Advance(session.ExtraCostLoop)
		return "", nil
	}

	amount, err := parseAmount(t.text)
	if err != nil {
		return "", err
	}

	ref := s.PendingCharges[s.ChargeCursor]
	charge := pricing.Charge{Name: ref.Name, Description: ref.Description, Amount: amount}
	if s.ChargeCursor < len(s.AdditionalCharges) {
		s.AdditionalCharges[s.ChargeCursor] = charge
	} else {
		s.AdditionalCharges = append(s.AdditionalCharges, charge)
	}
	s.ChargeCursor++

	if s.ChargeCursor >= len(s.PendingCharges) {
		s.Advance(session.ExtraCostLoop)
	}
	return "", nil
}

func (e *Engine) extraCostGate(_ context.Context, t *turn) (string, error) {
	yes, err := parseYesNo(t.text)
	if err != nil {
		return "", err
	}
	if yes {
		t.sess.Advance(session.ExtraCostAmount)
	} else {
		t.sess.Advance(session.TurnaroundDays)
	}
	return "", nil
}

func (e *Engine) extraCostAmount(_ context.Context, t *turn) (string, error) {
	amount, err := parseAmount(t.text)
	if err != nil {
		return "", err
	}
	t.sess.PendingAmount = amount
	t.sess.Advance(session.ExtraCostDescription)
	return "", nil
}

func (e *Engine) extraCostDescription(_ context.Context, t *turn) (string, error) {
	desc, err := requireText(t.text)
	if err != nil {
		return "", err
	}
	s := t.sess
	s.ExtraCosts = append(s.ExtraCosts, pricing.ExtraCost{Description: desc, Amount: s.PendingAmount})
	s.Advance(session.ExtraCostLoop)
	return fmt.Sprintf("✅ Costo extra agregado: %s %s.", desc, pricing.FormatMoney(s.ExtraCosts[len(s.ExtraCosts)-1].Amount)), nil
}

func (e *Engine) turnaround(_ context.Context, t *turn) (string, error) {
	days, err := parseDays(t.text)
	if err != nil {
		return "", err
	}
	t.sess.TurnaroundDays = days
	t.sess.Advance(session.TiroRetiroYN)
	return "", nil
}

func (e *Engine) tiroRetiroGate(_ context.Context, t *turn) (string, error) {
	yes, err := parseYesNo(t.text)
	if err != nil {
		return "", err
	}
	if yes {
		t.sess.Advance(session.TiroRetiroCost)
		return "", nil
	}
	t.sess.TiroRetiroCost = 0
	t.sess.Advance(session.MarginYN)
	return "", nil
}

func (e *Engine) tiroRetiroCost(_ context.Context, t *turn) (string, error) {
	cost, err := parseAmount(t.text)
	if err != nil {
		return "", err
	}
	t.sess.TiroRetiroCost = cost
	t.sess.Advance(session.MarginYN)
	return "", nil
}

func (e *Engine) marginGate(_ context.Context, t *turn) (string, error) {
	yes, err := parseYesNo(t.text)
	if err != nil {
		return "", err
	}
	if yes {
		t.sess.Advance(session.MarginValue)
		return "", nil
	}
	t.sess.MarginPercent = pricing.DefaultMarginPercent
	t.sess.Advance(session.Confirm)
	return "", nil
}

func (e *Engine) marginValue(_ context.Context, t *turn) (string, error) {
	pct, err := parsePercent(t.text)
	if err != nil {
		return "", err
	}
	t.sess.MarginPercent = pct
	t.sess.Advance(session.Confirm)
	return "", nil
}

func (e *Engine) confirm(ctx context.Context, t *turn) (string, error) {
	yes, err := parseYesNo(t.text)
	if err != nil {
		return "", err
	}
	if !yes {
		t.ended = true
		return msgCancelled, nil
	}

	reply, err := e.finalizer.Finalize(ctx, t.sess)
	if errors.Is(err, quote.ErrIncompleteDraft) {
		e.log.WithUserID(t.sess.UserID).Warn("finalization refused", "error", err.Error())
		return "", invalid(msgIncomplete)
	}
	t.ended = true
	t.err = err
	return reply, nil
}

func (e *Engine) adminCharges(ctx context.Context, t *turn) (string, error) {
	n, err := parseChoice(t.text, 1, 3, errAdminOption)
	if err != nil {
		return "", err
	}
	if n == 2 {
		t.sess.Advance(session.AddCharge)
		return "", nil
	}

	defs, err := e.catalog.ListChargeDefinitions(ctx)
	if err != nil {
		return "", fmt.Errorf("list charges: %w", err)
	}
	refs := make([]session.ChargeRef, len(defs))
	for i, d := range defs {
		refs[i] = session.ChargeRef{ID: d.ID, Name: d.Name, Description: d.Description}
	}

	if len(refs) == 0 {
		t.sess.Advance(session.Menu)
		return msgNoCharges, nil
	}
	if n == 1 {
		t.sess.Advance(session.Menu)
		return fmt.Sprintf(msgChargeList, chargeLines(refs)), nil
	}

	t.sess.PendingCharges = refs
	t.sess.Advance(session.DeleteCharge)
	return "", nil
}

func (e *Engine) addCharge(_ context.Context, t *turn) (string, error) {
	name, err := requireText(t.text)
	if err != nil {
		return "", err
	}
	t.sess.PendingName = name
	t.sess.Advance(session.AddChargeDescription)
	return "", nil
}

func (e *Engine) addChargeDescription(ctx context.Context, t *turn) (string, error) {
	desc, err := requireText(t.text)
	if err != nil {
		return "", err
	}
	c, err := e.catalog.CreateChargeDefinition(ctx, t.sess.PendingName, desc)
	if err != nil {
		return "", fmt.Errorf("create charge: %w", err)
	}
	t.sess.PendingName = ""
	t.sess.Advance(session.Menu)
	return fmt.Sprintf(msgChargeAdded, c.Name), nil
}

func (e *Engine) deleteCharge(ctx context.Context, t *turn) (string, error) {
	s := t.sess
	n, err := parseChoice(t.text, 1, len(s.PendingCharges), errChargeOption)
	if err != nil {
		return "", err
	}

	ref := s.PendingCharges[n-1]
	if err := e.catalog.DeleteChargeDefinition(ctx, ref.ID); err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", invalid(errChargeGone)
		}
		return "", fmt.Errorf("delete charge: %w", err)
	}

	s.PendingCharges = nil
	s.Advance(session.Menu)
	return fmt.Sprintf(msgChargeDeleted, ref.Name), nil
}
