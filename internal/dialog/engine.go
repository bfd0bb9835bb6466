// Package dialog implements the quoting conversation as a state machine.
package dialog

import (
	"context"
	"errors"
	"strings"

	"github.com/serigraph/quotebot/internal/logger"
	"github.com/serigraph/quotebot/internal/metrics"
	"github.com/serigraph/quotebot/internal/models"
	"github.com/serigraph/quotebot/internal/session"
)

// Catalog is the part of the catalog store the dialog reads and writes.
type Catalog interface {
	ListProducts(ctx context.Context) ([]*models.Product, error)
	CreateProduct(ctx context.Context, name string, basePrice float64) (*models.Product, error)
	ListDimensions(ctx context.Context) ([]*models.Dimension, error)
	CreateDimension(ctx context.Context, label string, price float64) (*models.Dimension, error)
	ListMaterials(ctx context.Context) ([]*models.Material, error)
	ListChargeDefinitions(ctx context.Context) ([]*models.ChargeDefinition, error)
	CreateChargeDefinition(ctx context.Context, name, description string) (*models.ChargeDefinition, error)
	DeleteChargeDefinition(ctx context.Context, id uint) error
}

// Finalizer issues the quote for a confirmed session.
type Finalizer interface {
	Finalize(ctx context.Context, s *session.QuoteSession) (string, error)
}

// Engine advances each user's conversation one inbound message at a time.
type Engine struct {
	sessions  *session.Store
	catalog   Catalog
	finalizer Finalizer

	metrics *metrics.Metrics
	log     *logger.Logger
}

// Option configures the Engine.
type Option func(*Engine)

func WithMetrics(m *metrics.Metrics) Option {
	return func(e *Engine) {
		e.metrics = m
	}
}

func WithLogger(l *logger.Logger) Option {
	return func(e *Engine) {
		e.log = l
	}
}

// NewEngine creates a dialog engine.
func NewEngine(sessions *session.Store, catalog Catalog, finalizer Finalizer, opts ...Option) *Engine {
	e := &Engine{
		sessions:  sessions,
		catalog:   catalog,
		finalizer: finalizer,
		log:       logger.NewNop(),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// turn is the working state of one inbound message.
type turn struct {
	sess  *session.QuoteSession
	text  string
	ended bool
	err   error
}

// HandleMessage processes one inbound message and returns exactly one reply.
// The reply must always be delivered; a non-nil error is for logging only.
func (e *Engine) HandleMessage(ctx context.Context, userID, text string) (string, error) {
	e.metrics.Inbound()

	var reply string
	err := e.sessions.WithLock(ctx, userID, func(ctx context.Context) error {
		var err error
		reply, err = e.handle(ctx, userID, text)
		return err
	})
	if reply == "" {
		reply = msgRetryLater
	}
	return reply, err
}

func (e *Engine) handle(ctx context.Context, userID, text string) (string, error) {
	if isGreeting(text) {
		e.sessions.Put(userID, session.New(userID, e.sessions.Now()))
		e.metrics.Transition(session.AskName.String())
		e.metrics.Reply(metrics.OutcomeOK)
		return msgAskName, nil
	}

	sess, ok := e.sessions.Get(userID)
	if !ok {
		e.metrics.Reply(metrics.OutcomeNoSession)
		return msgNoSession, nil
	}

	if isBack(text) {
		return e.back(ctx, sess)
	}

	from := sess.State
	step, ok := steps[from]
	if !ok {
		// Unknown states cannot be resumed; start over.
		e.sessions.Delete(userID)
		e.metrics.Reply(metrics.OutcomeNoSession)
		return msgNoSession, nil
	}

	t := &turn{sess: sess, text: text}
	ack, err := step(e, ctx, t)
	if err != nil {
		return e.rejected(userID, from, err)
	}

	if t.ended {
		e.sessions.Delete(userID)
		e.metrics.Reply(metrics.OutcomeOK)
		return ack, t.err
	}

	next, err := e.prompt(ctx, sess)
	if err != nil {
		return e.rejected(userID, from, err)
	}

	e.sessions.Put(userID, sess)
	if sess.State != from {
		e.metrics.Transition(sess.State.String())
	}
	e.metrics.Reply(metrics.OutcomeOK)
	return joinReply(ack, next), nil
}

// back restores the previous state. Fields captured by the undone step are kept.
func (e *Engine) back(ctx context.Context, sess *session.QuoteSession) (string, error) {
	from := sess.State
	if !canGoBack(from) || len(sess.History) == 0 || !leadsTo(sess.History[len(sess.History)-1], from) {
		e.metrics.Reply(metrics.OutcomeBack)
		return msgNoBack, nil
	}

	prev, _ := sess.Back()
	if prev == session.AdditionalChargeLoop {
		sess.ChargeCursor = 0
	}

	p, err := e.prompt(ctx, sess)
	if err != nil {
		return e.rejected(sess.UserID, from, err)
	}

	e.sessions.Put(sess.UserID, sess)
	e.metrics.Transition(prev.String())
	e.metrics.Reply(metrics.OutcomeBack)
	return msgBackPrefix + p, nil
}

// rejected turns a failed step into a reply. Nothing from the turn is stored.
func (e *Engine) rejected(userID string, state session.State, err error) (string, error) {
	var inputErr *InputError
	if errors.As(err, &inputErr) {
		e.metrics.Reply(metrics.OutcomeInvalidInput)
		return inputErr.Reason, nil
	}

	e.metrics.Reply(metrics.OutcomeCatalogError)
	e.log.WithUserID(userID).CatalogError(state.String(), err)
	return msgRetryLater, err
}

func joinReply(parts ...string) string {
	var out []string
	for _, p := range parts {
		if p != "" {
			out = append(out, p)
		}
	}
	return strings.Join(out, "\n\n")
}
