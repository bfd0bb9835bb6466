package document

import (
	"bytes"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serigraph/quotebot/internal/pricing"
)

func TestRenderer_Render(t *testing.T) {
	draft := pricing.Draft{
		Dimension:      "8.5x11",
		SheetSize:      "20x30",
		Quantity:       1000,
		MaterialPrice:  40,
		MarginPercent:  50,
		TiroRetiroCost: 15,
		Charges:        []pricing.Charge{{Name: "Corte", Description: "Guillotina", Amount: 30}},
		ExtraCosts:     []pricing.ExtraCost{{Description: "Envío", Amount: 80}},
	}

	pdf, err := NewRenderer().Render(Quote{
		CompanyName:    "Serigraph",
		Number:         "COT-20250101-ABCDEF12",
		IssuedAt:       time.Date(2025, 1, 1, 9, 0, 0, 0, time.UTC),
		ClientName:     "Ana",
		Product:        "Volantes",
		Dimension:      "Carta 8.5x11",
		Material:       "Couché 130g",
		Quantity:       1000,
		IsDigitalPrint: true,
		TurnaroundDays: 3,
		Charges:        draft.Charges,
		ExtraCosts:     draft.ExtraCosts,
		Breakdown:      pricing.Calculate(draft),
	})

	require.NoError(t, err)
	assert.True(t, bytes.HasPrefix(pdf, []byte("%PDF")))
}

func TestRenderer_RenderMinimal(t *testing.T) {
	pdf, err := NewRenderer().Render(Quote{Number: "COT-1", Quantity: 1, TurnaroundDays: 1})
	require.NoError(t, err)
	assert.NotEmpty(t, pdf)
}
