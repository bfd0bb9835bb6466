package quote

import (
	"bytes"
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serigraph/quotebot/internal/document"
	"github.com/serigraph/quotebot/internal/models"
	"github.com/serigraph/quotebot/internal/pricing"
	"github.com/serigraph/quotebot/internal/session"
	"github.com/serigraph/quotebot/internal/storage"
)

type fakeRenderer struct {
	err  error
	last document.Quote
}

func (r *fakeRenderer) Render(q document.Quote) ([]byte, error) {
	r.last = q
	if r.err != nil {
		return nil, r.err
	}
	return []byte("%PDF-fake " + q.Number), nil
}

type recordingSink struct {
	mu   sync.Mutex
	err  error
	docs []Document
}

func (s *recordingSink) Send(_ context.Context, doc Document) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.docs = append(s.docs, doc)
	return s.err
}

func completeSession() *session.QuoteSession {
	s := session.New("+5215512345678", time.Now())
	s.ClientName = "Ana"
	s.Product = &session.SelectedProduct{Name: "Volantes"}
	s.Dimension = &session.SelectedDimension{Label: "8.5x11", Width: 8.5, Height: 11}
	s.Material = &session.SelectedMaterial{Name: "Couché", Price: 40, SheetSize: "20x30", SheetWidth: 20, SheetHeight: 30}
	s.Quantity = 1000
	s.State = session.Confirm
	return s
}

func TestBuildDraft_Complete(t *testing.T) {
	s := completeSession()
	s.AdditionalCharges = []pricing.Charge{{Name: "Corte", Amount: 10}}

	d, err := BuildDraft(s)
	require.NoError(t, err)
	assert.Equal(t, "8.5x11", d.Dimension)
	assert.Equal(t, "20x30", d.SheetSize)
	assert.Equal(t, 1000, d.Quantity)
	assert.Equal(t, 50.0, d.MarginPercent)

	// The draft must not alias session slices.
	d.Charges[0].Amount = 99
	assert.Equal(t, 10.0, s.AdditionalCharges[0].Amount)
}

func TestBuildDraft_Incomplete(t *testing.T) {
	s := session.New("u", time.Now())
	s.ClientName = "Ana"

	_, err := BuildDraft(s)
	require.ErrorIs(t, err, ErrIncompleteDraft)
	assert.Contains(t, err.Error(), "product")
	assert.Contains(t, err.Error(), "quantity")
	assert.NotContains(t, err.Error(), "client name")

	_, err = BuildDraft(nil)
	assert.ErrorIs(t, err, ErrIncompleteDraft)
}

func TestFinalize_Success(t *testing.T) {
	renderer := &fakeRenderer{}
	primary := &recordingSink{}
	archive := &recordingSink{}
	ledger := storage.NewMemoryStore()
	fixed := time.Date(2025, 3, 1, 10, 0, 0, 0, time.UTC)

	f := NewFinalizer(renderer, primary, ledger,
		WithArchive(archive),
		WithCompanyName("Serigraph"),
		WithClock(func() time.Time { return fixed }),
	)

	reply, err := f.Finalize(context.Background(), completeSession())
	require.NoError(t, err)
	assert.Contains(t, reply, "COT-20250301-")

	require.Len(t, primary.docs, 1)
	doc := primary.docs[0]
	assert.Equal(t, "+5215512345678", doc.UserID)
	assert.True(t, bytes.HasPrefix(doc.Content, []byte("%PDF")))
	assert.Equal(t, renderer.last.Number+".pdf", doc.Filename)
	assert.Len(t, archive.docs, 1)

	assert.Equal(t, "Serigraph", renderer.last.CompanyName)
	assert.InDelta(t, 28.3608, renderer.last.Breakdown.FinalCost, 1e-9)

	quotes, err := ledger.ListQuotes(context.Background(), 0)
	require.NoError(t, err)
	require.Len(t, quotes, 1)
	assert.Equal(t, models.QuoteStatusSent, quotes[0].Status)
	assert.Equal(t, 202, quotes[0].RequiredSheets)
	assert.Equal(t, fixed, quotes[0].IssuedAt)
}

func TestFinalize_ArchiveFailureIsIgnored(t *testing.T) {
	primary := &recordingSink{}
	archive := &recordingSink{err: errors.New("smtp down")}

	f := NewFinalizer(&fakeRenderer{}, primary, nil, WithArchive(archive))

	reply, err := f.Finalize(context.Background(), completeSession())
	require.NoError(t, err)
	assert.Contains(t, reply, "✅")
}

func TestFinalize_DispatchFailure(t *testing.T) {
	primary := &recordingSink{err: errors.New("twilio unavailable")}
	ledger := storage.NewMemoryStore()

	f := NewFinalizer(&fakeRenderer{}, primary, ledger)

	reply, err := f.Finalize(context.Background(), completeSession())
	require.Error(t, err)
	assert.Equal(t, MsgFailed, reply)

	quotes, _ := ledger.ListQuotes(context.Background(), 0)
	require.Len(t, quotes, 1)
	assert.Equal(t, models.QuoteStatusFailed, quotes[0].Status)
	assert.Contains(t, quotes[0].FailureReason, "twilio unavailable")
}

func TestFinalize_RenderFailure(t *testing.T) {
	primary := &recordingSink{}
	f := NewFinalizer(&fakeRenderer{err: errors.New("font missing")}, primary, nil)

	reply, err := f.Finalize(context.Background(), completeSession())
	require.Error(t, err)
	assert.Equal(t, MsgFailed, reply)
	assert.Empty(t, primary.docs)
}

func TestFinalize_IncompleteDraftHasNoSideEffects(t *testing.T) {
	primary := &recordingSink{}
	ledger := storage.NewMemoryStore()
	f := NewFinalizer(&fakeRenderer{}, primary, ledger)

	s := completeSession()
	s.Material = nil

	reply, err := f.Finalize(context.Background(), s)
	assert.ErrorIs(t, err, ErrIncompleteDraft)
	assert.Empty(t, reply)
	assert.Empty(t, primary.docs)
	quotes, _ := ledger.ListQuotes(context.Background(), 0)
	assert.Empty(t, quotes)
}
