// Package document renders quote PDFs.
package document

import (
	"fmt"
	"time"

	"github.com/johnfercher/maroto/v2"
	"github.com/johnfercher/maroto/v2/pkg/components/col"
	"github.com/johnfercher/maroto/v2/pkg/components/row"
	"github.com/johnfercher/maroto/v2/pkg/components/text"
	"github.com/johnfercher/maroto/v2/pkg/config"
	"github.com/johnfercher/maroto/v2/pkg/consts/align"
	"github.com/johnfercher/maroto/v2/pkg/consts/border"
	"github.com/johnfercher/maroto/v2/pkg/consts/fontstyle"
	"github.com/johnfercher/maroto/v2/pkg/core"
	"github.com/johnfercher/maroto/v2/pkg/props"

	"github.com/serigraph/quotebot/internal/pricing"
)

var (
	colorPrimary   = &props.Color{Red: 17, Green: 24, Blue: 39}
	colorSecondary = &props.Color{Red: 107, Green: 114, Blue: 128}
	colorAccent    = &props.Color{Red: 190, Green: 18, Blue: 60}
	colorTableHead = &props.Color{Red: 241, Green: 245, Blue: 249}
	colorBorder    = &props.Color{Red: 226, Green: 232, Blue: 240}
)

// DefaultValidityDays is how long a quote price is honoured.
const DefaultValidityDays = 15

// Quote is everything printed on a quote document.
type Quote struct {
	CompanyName    string
	Number         string
	IssuedAt       time.Time
	ValidityDays   int
	ClientName     string
	Product        string
	Dimension      string
	Material       string
	Quantity       int
	IsDigitalPrint bool
	TurnaroundDays int
	Charges        []pricing.Charge
	ExtraCosts     []pricing.ExtraCost
	Breakdown      pricing.Breakdown
}

// Renderer turns a Quote into PDF bytes.
type Renderer struct{}

// NewRenderer creates a PDF renderer.
func NewRenderer() *Renderer {
	return &Renderer{}
}

// Render generates the PDF document for q.
func (r *Renderer) Render(q Quote) ([]byte, error) {
	cfg := config.NewBuilder().
		WithLeftMargin(15).
		WithTopMargin(12).
		WithRightMargin(15).
		Build()

	m := maroto.New(cfg)

	if err := m.RegisterFooter(footer(q)); err != nil {
		return nil, fmt.Errorf("register footer: %w", err)
	}

	m.AddRows(header(q)...)
	m.AddRows(row.New(1).WithStyle(&props.Cell{
		BorderType:  border.Bottom,
		BorderColor: colorBorder,
	}))
	m.AddRows(row.New(6))
	m.AddRows(jobDetails(q)...)
	m.AddRows(row.New(6))
	m.AddRows(costTable(q)...)
	m.AddRows(row.New(4))
	m.AddRows(totals(q)...)

	doc, err := m.Generate()
	if err != nil {
		return nil, fmt.Errorf("generate PDF: %w", err)
	}
	return doc.GetBytes(), nil
}

func header(q Quote) []core.Row {
	return []core.Row{
		row.New(20).Add(
			col.New(6).Add(text.New(q.CompanyName, props.Text{
				Size:  14,
				Style: fontstyle.Bold,
				Color: colorPrimary,
				Top:   4,
			})),
			col.New(6).Add(
				text.New("COTIZACIÓN", props.Text{
					Size:  22,
					Style: fontstyle.Bold,
					Align: align.Right,
					Color: colorAccent,
				}),
				text.New(q.Number, props.Text{
					Size:  10,
					Align: align.Right,
					Color: colorSecondary,
					Top:   12,
				}),
			),
		),
	}
}

func jobDetails(q Quote) []core.Row {
	printType := "Offset"
	if q.IsDigitalPrint {
		printType = "Digital"
	}
	days := "día hábil"
	if q.TurnaroundDays != 1 {
		days = "días hábiles"
	}

	lines := [][2]string{
		{"Cliente", q.ClientName},
		{"Fecha", q.IssuedAt.Format("02/01/2006")},
		{"Producto", q.Product},
		{"Tamaño", q.Dimension},
		{"Material", q.Material},
		{"Cantidad", fmt.Sprintf("%d", q.Quantity)},
		{"Impresión", printType},
		{"Tiempo de entrega", fmt.Sprintf("%d %s", q.TurnaroundDays, days)},
		{"Piezas por pliego", fmt.Sprintf("%d", q.Breakdown.FlyersPerSheet)},
		{"Pliegos requeridos", fmt.Sprintf("%d", q.Breakdown.RequiredSheets)},
	}

	labelStyle := props.Text{Size: 8, Style: fontstyle.Bold, Color: colorSecondary}
	valueStyle := props.Text{Size: 9, Color: colorPrimary}

	rows := []core.Row{
		row.New(7).Add(col.New(12).Add(text.New("DETALLE DEL TRABAJO", props.Text{
			Size:  8,
			Style: fontstyle.Bold,
			Color: colorAccent,
		}))),
	}
	for _, l := range lines {
		rows = append(rows, row.New(5).Add(
			col.New(4).Add(text.New(l[0], labelStyle)),
			col.New(8).Add(text.New(l[1], valueStyle)),
		))
	}
	return rows
}

func costTable(q Quote) []core.Row {
	b := q.Breakdown
	headStyle := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5}
	headRight := props.Text{Size: 7.5, Style: fontstyle.Bold, Color: colorPrimary, Top: 1.5, Align: align.Right}

	rows := []core.Row{
		row.New(7).Add(
			col.New(8).Add(text.New("Concepto", headStyle)),
			col.New(4).Add(text.New("Importe", headRight)),
		).WithStyle(&props.Cell{BackgroundColor: colorTableHead}),
		costRow(fmt.Sprintf("Papel (%d pliegos × %s)", b.RequiredSheets, pricing.FormatMoney(b.CostPerSheet)), b.PaperCost),
	}
	for _, c := range q.Charges {
		label := c.Name
		if c.Description != "" && c.Description != c.Name {
			label += " - " + c.Description
		}
		rows = append(rows, costRow(label, c.Amount))
	}
	for _, e := range q.ExtraCosts {
		rows = append(rows, costRow(e.Description, e.Amount))
	}
	if b.TiroRetiro > 0 {
		rows = append(rows, costRow("Tiro y retiro", b.TiroRetiro))
	}
	rows = append(rows, costRow("Subtotal", b.Subtotal))
	rows = append(rows, costRow(fmt.Sprintf("Subtotal con margen (%g%%)", b.MarginPercent), b.WithMargin))
	return rows
}

func costRow(label string, amount float64) core.Row {
	return row.New(6).Add(
		col.New(8).Add(text.New(label, props.Text{Size: 8.5, Color: colorPrimary, Top: 1})),
		col.New(4).Add(text.New(pricing.FormatMoney(amount), props.Text{Size: 8.5, Color: colorPrimary, Top: 1, Align: align.Right})),
	).WithStyle(&props.Cell{BorderType: border.Bottom, BorderColor: colorBorder})
}

func totals(q Quote) []core.Row {
	b := q.Breakdown
	return []core.Row{
		row.New(8).Add(
			col.New(8).Add(text.New("TOTAL (IVA incluido)", props.Text{Size: 10, Style: fontstyle.Bold, Color: colorPrimary, Top: 2})),
			col.New(4).Add(text.New(pricing.FormatMoney(b.FinalCost), props.Text{Size: 12, Style: fontstyle.Bold, Color: colorAccent, Top: 1.5, Align: align.Right})),
		),
		row.New(6).Add(
			col.New(8).Add(text.New("Precio unitario", props.Text{Size: 8.5, Color: colorSecondary, Top: 1})),
			col.New(4).Add(text.New(fmt.Sprintf("$%.4f", b.UnitPrice), props.Text{Size: 8.5, Color: colorSecondary, Top: 1, Align: align.Right})),
		),
	}
}

func footer(q Quote) core.Row {
	validity := q.ValidityDays
	if validity <= 0 {
		validity = DefaultValidityDays
	}
	note := fmt.Sprintf("Cotización válida por %d días. Precios sujetos a cambio sin previo aviso.", validity)
	return row.New(10).Add(
		col.New(12).Add(text.New(note, props.Text{Size: 7, Color: colorSecondary, Align: align.Center})),
	)
}
