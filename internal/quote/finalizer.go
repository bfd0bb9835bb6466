package quote

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/serigraph/quotebot/internal/document"
	"github.com/serigraph/quotebot/internal/logger"
	"github.com/serigraph/quotebot/internal/metrics"
	"github.com/serigraph/quotebot/internal/models"
	"github.com/serigraph/quotebot/internal/pricing"
	"github.com/serigraph/quotebot/internal/session"
	"github.com/serigraph/quotebot/internal/utils"
)

// User-facing results of a finalization.
const (
	MsgSent    = "✅ ¡Tu cotización %s ha sido generada y enviada como PDF a tu WhatsApp! Gracias por cotizar con nosotros."
	MsgFailed  = "⚠️ Tu cotización no pudo enviarse. Escribe 'hola' para intentarlo de nuevo."
	docCaption = "Aquí tienes tu cotización %s en PDF. ¡Gracias por cotizar con nosotros!"
)

// Document is a rendered quote addressed to a user.
type Document struct {
	UserID   string
	Filename string
	Content  []byte
	Caption  string
}

// DocumentSink delivers a rendered document.
type DocumentSink interface {
	Send(ctx context.Context, doc Document) error
}

// Renderer produces the PDF bytes for a quote.
type Renderer interface {
	Render(q document.Quote) ([]byte, error)
}

// Ledger records issued quotes.
type Ledger interface {
	SaveQuote(ctx context.Context, quote *models.QuoteRecord) error
}

// Finalizer prices a confirmed session, renders it and dispatches the document.
type Finalizer struct {
	renderer Renderer
	primary  DocumentSink
	archives []DocumentSink
	ledger   Ledger

	companyName string
	metrics     *metrics.Metrics
	log         *logger.Logger
	now         func() time.Time
}

// Option configures the Finalizer.
type Option func(*Finalizer)

// WithArchive adds sinks that receive a copy of every document. Their
// failures are logged and never affect the user-facing result.
func WithArchive(sinks ...DocumentSink) Option {
	return func(f *Finalizer) {
		f.archives = append(f.archives, sinks...)
	}
}

func WithCompanyName(name string) Option {
	return func(f *Finalizer) {
		f.companyName = name
	}
}

func WithMetrics(m *metrics.Metrics) Option {
	return func(f *Finalizer) {
		f.metrics = m
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(f *Finalizer) {
		f.log = l
	}
}

func WithClock(now func() time.Time) Option {
	return func(f *Finalizer) {
		f.now = now
	}
}

// NewFinalizer creates a Finalizer dispatching through primary.
func NewFinalizer(renderer Renderer, primary DocumentSink, ledger Ledger, opts ...Option) *Finalizer {
	f := &Finalizer{
		renderer: renderer,
		primary:  primary,
		ledger:   ledger,
		log:      logger.NewNop(),
		now:      time.Now,
	}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// Finalize issues the quote for s. It returns ErrIncompleteDraft without side
// effects when s cannot be priced. Otherwise it always returns the reply for
// the user; a non-nil error then only reports a failed render or dispatch.
func (f *Finalizer) Finalize(ctx context.Context, s *session.QuoteSession) (string, error) {
	draft, err := BuildDraft(s)
	if err != nil {
		return "", err
	}

	issuedAt := f.now()
	breakdown := pricing.Calculate(draft)
	number := utils.QuoteNumber(issuedAt)
	log := f.log.WithQuote(number).WithUserID(s.UserID)

	record := newRecord(number, s.UserID, draft, breakdown, issuedAt)

	pdf, err := f.renderer.Render(document.Quote{
		CompanyName:    f.companyName,
		Number:         number,
		IssuedAt:       issuedAt,
		ClientName:     draft.ClientName,
		Product:        draft.Product,
		Dimension:      draft.Dimension,
		Material:       draft.Material,
		Quantity:       draft.Quantity,
		IsDigitalPrint: draft.IsDigitalPrint,
		TurnaroundDays: draft.TurnaroundDays,
		Charges:        draft.Charges,
		ExtraCosts:     draft.ExtraCosts,
		Breakdown:      breakdown,
	})
	if err != nil {
		return f.fail(ctx, log, record, fmt.Errorf("render quote: %w", err))
	}

	doc := Document{
		UserID:   s.UserID,
		Filename: number + ".pdf",
		Content:  pdf,
		Caption:  fmt.Sprintf(docCaption, number),
	}

	var archives errgroup.Group
	for _, sink := range f.archives {
		sink := sink
		archives.Go(func() error {
			return sink.Send(ctx, doc)
		})
	}

	sendErr := f.primary.Send(ctx, doc)

	if err := archives.Wait(); err != nil {
		log.Warn("archive copy failed", slog.String("error", err.Error()))
	}
	if sendErr != nil {
		return f.fail(ctx, log, record, fmt.Errorf("dispatch quote: %w", sendErr))
	}

	record.Status = models.QuoteStatusSent
	f.save(ctx, log, record)
	f.metrics.Quote(models.QuoteStatusSent, breakdown.FinalCost)
	log.Info("quote sent",
		slog.Float64("final_cost", breakdown.FinalCost),
		slog.Int("required_sheets", breakdown.RequiredSheets),
	)
	return fmt.Sprintf(MsgSent, number), nil
}

func (f *Finalizer) fail(ctx context.Context, log *logger.Logger, record *models.QuoteRecord, err error) (string, error) {
	record.Status = models.QuoteStatusFailed
	record.FailureReason = err.Error()
	f.save(ctx, log, record)
	f.metrics.Quote(models.QuoteStatusFailed, 0)
	log.Error("quote failed", slog.String("error", err.Error()))
	return MsgFailed, err
}

func (f *Finalizer) save(ctx context.Context, log *logger.Logger, record *models.QuoteRecord) {
	if f.ledger == nil {
		return
	}
	if err := f.ledger.SaveQuote(ctx, record); err != nil {
		log.Error("save quote record", slog.String("error", err.Error()))
	}
}

func newRecord(number, userID string, d pricing.Draft, b pricing.Breakdown, issuedAt time.Time) *models.QuoteRecord {
	return &models.QuoteRecord{
		Number:         number,
		UserID:         userID,
		ClientName:     d.ClientName,
		Product:        d.Product,
		Dimension:      d.Dimension,
		Material:       d.Material,
		Quantity:       d.Quantity,
		IsDigitalPrint: d.IsDigitalPrint,
		TurnaroundDays: d.TurnaroundDays,
		MarginPercent:  d.MarginPercent,
		RequiredSheets: b.RequiredSheets,
		PaperCost:      b.PaperCost,
		FinalCost:      b.FinalCost,
		UnitPrice:      b.UnitPrice,
		IssuedAt:       issuedAt,
	}
}
