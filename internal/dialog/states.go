package dialog

import (
	"context"
	"fmt"
	"strings"

	"github.com/serigraph/quotebot/internal/pricing"
	"github.com/serigraph/quotebot/internal/session"
)

// transitions lists the forward moves out of every state. CONFIRM is terminal.
var transitions = map[session.State][]session.State{
	session.AskName:              {session.Menu},
	session.Menu:                 {session.Products, session.AdminCharges},
	session.Products:             {session.NewProduct, session.Dimensions},
	session.NewProduct:           {session.NewProductPrice},
	session.NewProductPrice:      {session.Dimensions},
	session.Dimensions:           {session.NewDimension, session.Material},
	session.NewDimension:         {session.Material},
	session.Material:             {session.Quantity},
	session.Quantity:             {session.DigitalYN},
	session.DigitalYN:            {session.AdditionalChargeLoop, session.ExtraCostLoop},
	session.AdditionalChargeLoop: {session.ExtraCostLoop},
	session.ExtraCostLoop:        {session.ExtraCostAmount, session.TurnaroundDays},
	session.ExtraCostAmount:      {session.ExtraCostDescription},
	session.ExtraCostDescription: {session.ExtraCostLoop},
	session.TurnaroundDays:       {session.TiroRetiroYN},
	session.TiroRetiroYN:         {session.TiroRetiroCost, session.MarginYN},
	session.TiroRetiroCost:       {session.MarginYN},
	session.MarginYN:             {session.MarginValue, session.Confirm},
	session.MarginValue:          {session.Confirm},
	session.Confirm:              nil,
	session.AdminCharges:         {session.Menu, session.AddCharge, session.DeleteCharge},
	session.AddCharge:            {session.AddChargeDescription},
	session.AddChargeDescription: {session.Menu},
	session.DeleteCharge:         {session.Menu},
}

// leadsTo reports whether to is a forward successor of from.
func leadsTo(from, to session.State) bool {
	for _, s := range transitions[from] {
		if s == to {
			return true
		}
	}
	return false
}

// canGoBack reports whether the back token is honoured in state s.
func canGoBack(s session.State) bool {
	return s != session.AskName && s != session.Menu
}

// prompt renders the question for the session's current state.
func (e *Engine) prompt(ctx context.Context, s *session.QuoteSession) (string, error) {
	switch s.State {
	case session.AskName:
		return msgAskName, nil
	case session.Menu:
		return fmt.Sprintf(msgMenu, s.ClientName), nil
	case session.Products:
		products, err := e.catalog.ListProducts(ctx)
		if err != nil {
			return "", fmt.Errorf("list products: %w", err)
		}
		lines := make([]string, len(products))
		for i, p := range products {
			lines[i] = fmt.Sprintf("%d. %s", i+1, p.Name)
		}
		return fmt.Sprintf(msgProducts, strings.Join(lines, "\n")), nil
	case session.NewProduct:
		return msgNewProduct, nil
	case session.NewProductPrice:
		return fmt.Sprintf(msgNewProductPrice, s.PendingName), nil
	case session.Dimensions:
		dims, err := e.catalog.ListDimensions(ctx)
		if err != nil {
			return "", fmt.Errorf("list dimensions: %w", err)
		}
		lines := make([]string, len(dims))
		for i, d := range dims {
			lines[i] = fmt.Sprintf("%d. %s", i+1, d.Label)
		}
		return fmt.Sprintf(msgDimensions, strings.Join(lines, "\n")), nil
	case session.NewDimension:
		return msgNewDimension, nil
	case session.Material:
		materials, err := e.catalog.ListMaterials(ctx)
		if err != nil {
			return "", fmt.Errorf("list materials: %w", err)
		}
		if len(materials) == 0 {
			return msgNoMaterials, nil
		}
		lines := make([]string, len(materials))
		for i, m := range materials {
			lines[i] = fmt.Sprintf("%d. %s (pliego %s)", i+1, m.Name, m.SheetSize)
		}
		return fmt.Sprintf(msgMaterials, strings.Join(lines, "\n")), nil
	case session.Quantity:
		return msgQuantity, nil
	case session.DigitalYN:
		return msgDigital, nil
	case session.AdditionalChargeLoop:
		if s.ChargeCursor >= len(s.PendingCharges) {
			return msgExtraCost, nil
		}
		c := s.PendingCharges[s.ChargeCursor]
		detail := ""
		if c.Description != "" && c.Description != c.Name {
			detail = " (" + c.Description + ")"
		}
		return fmt.Sprintf(msgChargeAmount, s.ChargeCursor+1, len(s.PendingCharges), c.Name, detail), nil
	case session.ExtraCostLoop:
		if len(s.ExtraCosts) > 0 {
			return msgExtraCostMore, nil
		}
		return msgExtraCost, nil
	case session.ExtraCostAmount:
		return msgExtraAmount, nil
	case session.ExtraCostDescription:
		return msgExtraDesc, nil
	case session.TurnaroundDays:
		return msgTurnaround, nil
	case session.TiroRetiroYN:
		return msgTiroRetiro, nil
	case session.TiroRetiroCost:
		return msgTiroRetiroCost, nil
	case session.MarginYN:
		return msgMargin, nil
	case session.MarginValue:
		return msgMarginValue, nil
	case session.Confirm:
		return fmt.Sprintf(msgConfirm, summary(s)), nil
	case session.AdminCharges:
		return msgAdminCharges, nil
	case session.AddCharge:
		return msgAddCharge, nil
	case session.AddChargeDescription:
		return fmt.Sprintf(msgAddChargeDesc, s.PendingName), nil
	case session.DeleteCharge:
		return fmt.Sprintf(msgDeleteCharge, chargeLines(s.PendingCharges)), nil
	}
	return "", fmt.Errorf("no prompt for state %s", s.State)
}

func chargeLines(charges []session.ChargeRef) string {
	lines := make([]string, len(charges))
	for i, c := range charges {
		lines[i] = fmt.Sprintf("%d. %s", i+1, c.Name)
		if c.Description != "" && c.Description != c.Name {
			lines[i] += " - " + c.Description
		}
	}
	return strings.Join(lines, "\n")
}

func summary(s *session.QuoteSession) string {
	product, dimension, material := "-", "-", "-"
	if s.Product != nil {
		product = s.Product.Name
	}
	if s.Dimension != nil {
		dimension = s.Dimension.Label
	}
	if s.Material != nil {
		material = s.Material.Name
	}
	printType := "Offset"
	if s.IsDigitalPrint {
		printType = "Digital"
	}

	lines := []string{
		"👤 Cliente: " + s.ClientName,
		"📦 Producto: " + product,
		"📐 Tamaño: " + dimension,
		"📄 Material: " + material,
		fmt.Sprintf("🔢 Cantidad: %d", s.Quantity),
		"🖨️ Impresión: " + printType,
	}
	for _, c := range s.AdditionalCharges {
		lines = append(lines, fmt.Sprintf("➕ %s: %s", c.Name, pricing.FormatMoney(c.Amount)))
	}
	for _, x := range s.ExtraCosts {
		lines = append(lines, fmt.Sprintf("➕ %s: %s", x.Description, pricing.FormatMoney(x.Amount)))
	}
	lines = append(lines,
		fmt.Sprintf("⏱️ Entrega: %d día(s) hábil(es)", s.TurnaroundDays),
		"🔁 Tiro y retiro: "+pricing.FormatMoney(s.TiroRetiroCost),
		fmt.Sprintf("📈 Margen: %g%%", s.MarginPercent),
	)
	return strings.Join(lines, "\n")
}
