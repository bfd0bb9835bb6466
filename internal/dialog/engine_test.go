package dialog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/serigraph/quotebot/internal/models"
	"github.com/serigraph/quotebot/internal/pricing"
	"github.com/serigraph/quotebot/internal/quote"
	"github.com/serigraph/quotebot/internal/session"
	"github.com/serigraph/quotebot/internal/storage"
)

const testUser = "+5215512345678"

var errCatalogDown = errors.New("catalog unavailable")

// flakyCatalog fails every read while fail is set.
type flakyCatalog struct {
	*storage.MemoryStore
	mu   sync.Mutex
	fail bool
}

func (c *flakyCatalog) setFail(v bool) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.fail = v
}

func (c *flakyCatalog) failing() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.fail
}

func (c *flakyCatalog) ListProducts(ctx context.Context) ([]*models.Product, error) {
	if c.failing() {
		return nil, errCatalogDown
	}
	return c.MemoryStore.ListProducts(ctx)
}

func (c *flakyCatalog) ListDimensions(ctx context.Context) ([]*models.Dimension, error) {
	if c.failing() {
		return nil, errCatalogDown
	}
	return c.MemoryStore.ListDimensions(ctx)
}

func (c *flakyCatalog) ListMaterials(ctx context.Context) ([]*models.Material, error) {
	if c.failing() {
		return nil, errCatalogDown
	}
	return c.MemoryStore.ListMaterials(ctx)
}

func (c *flakyCatalog) ListChargeDefinitions(ctx context.Context) ([]*models.ChargeDefinition, error) {
	if c.failing() {
		return nil, errCatalogDown
	}
	return c.MemoryStore.ListChargeDefinitions(ctx)
}

// fakeFinalizer prices the draft like the real finalizer but skips rendering.
type fakeFinalizer struct {
	mu     sync.Mutex
	calls  []*session.QuoteSession
	totals []float64
	err    error
}

func (f *fakeFinalizer) Finalize(_ context.Context, s *session.QuoteSession) (string, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	draft, err := quote.BuildDraft(s)
	if err != nil {
		return "", err
	}
	f.calls = append(f.calls, s.Clone())
	f.totals = append(f.totals, pricing.Calculate(draft).FinalCost)
	if f.err != nil {
		return quote.MsgFailed, f.err
	}
	return "QUOTE SENT", nil
}

func (f *fakeFinalizer) count() int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return len(f.calls)
}

type harness struct {
	t        *testing.T
	engine   *Engine
	sessions *session.Store
	catalog  *flakyCatalog
	final    *fakeFinalizer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	ctx := context.Background()

	catalog := &flakyCatalog{MemoryStore: storage.NewMemoryStore()}
	_, err := catalog.CreateProduct(ctx, "Volantes", 0)
	require.NoError(t, err)
	_, err = catalog.CreateDimension(ctx, "8.5x11", 0)
	require.NoError(t, err)
	_, err = catalog.CreateMaterial(ctx, &models.Material{Name: "Couché 130g", Price: 40, SheetSize: "20x30"})
	require.NoError(t, err)
	_, err = catalog.CreateChargeDefinition(ctx, "Corte", "Corte de guillotina")
	require.NoError(t, err)
	_, err = catalog.CreateChargeDefinition(ctx, "Clicks", "clicks")
	require.NoError(t, err)

	sessions := session.NewStore()
	final := &fakeFinalizer{}
	return &harness{
		t:        t,
		engine:   NewEngine(sessions, catalog, final),
		sessions: sessions,
		catalog:  catalog,
		final:    final,
	}
}

func (h *harness) send(text string) string {
	h.t.Helper()
	reply, err := h.engine.HandleMessage(context.Background(), testUser, text)
	require.NoError(h.t, err, "message %q", text)
	require.NotEmpty(h.t, reply)
	return reply
}

func (h *harness) session() *session.QuoteSession {
	h.t.Helper()
	s, ok := h.sessions.Get(testUser)
	require.True(h.t, ok, "expected an active session")
	return s
}

func (h *harness) state() session.State {
	h.t.Helper()
	return h.session().State
}

// toQuantity drives a fresh conversation up to the quantity question.
func (h *harness) toQuantity() {
	h.send("hola")
	h.send("Ana")
	h.send("1") // quote
	h.send("1") // Volantes
	h.send("1") // 8.5x11
	h.send("1") // Couché
	require.Equal(h.t, session.Quantity, h.state())
}

func TestEngine_NoSession(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, msgNoSession, h.send("1000"))
	assert.Zero(t, h.sessions.Len())
}

func TestEngine_GreetingStartsFreshSession(t *testing.T) {
	h := newHarness(t)

	assert.Equal(t, msgAskName, h.send("Hola, buenas tardes"))
	assert.Equal(t, session.AskName, h.state())

	reply := h.send("Ana")
	assert.Contains(t, reply, "Ana, elige una opción")
	h.send("1")
	assert.Equal(t, session.Products, h.state())

	// A greeting mid-dialog discards everything.
	h.send("hola")
	s := h.session()
	assert.Equal(t, session.AskName, s.State)
	assert.Empty(t, s.ClientName)
	assert.Empty(t, s.History)
}

func TestEngine_FullQuoteFlow(t *testing.T) {
	h := newHarness(t)
	h.toQuantity()

	assert.Contains(t, h.send("1000"), "digital")

	// Non-digital: the clicks charge is skipped, only Corte is asked.
	reply := h.send("no")
	assert.Contains(t, reply, "Cargo adicional 1 de 1: Corte")
	assert.Equal(t, session.AdditionalChargeLoop, h.state())

	assert.Contains(t, h.send("0"), "costo extra")
	assert.Equal(t, session.ExtraCostLoop, h.state())

	assert.Contains(t, h.send("no"), "días hábiles")
	assert.Contains(t, h.send("3"), "tiro y retiro")
	assert.Contains(t, h.send("no"), "margen")

	reply = h.send("no")
	assert.Equal(t, session.Confirm, h.state())
	assert.Contains(t, reply, "👤 Cliente: Ana")
	assert.Contains(t, reply, "🔢 Cantidad: 1000")
	assert.Contains(t, reply, "📈 Margen: 50%")

	assert.Equal(t, "QUOTE SENT", h.send("sí"))
	_, ok := h.sessions.Get(testUser)
	assert.False(t, ok, "session must be deleted after finalizing")

	require.Equal(t, 1, h.final.count())
	s := h.final.calls[0]
	assert.Equal(t, 1000, s.Quantity)
	assert.False(t, s.IsDigitalPrint)
	assert.Equal(t, 3, s.TurnaroundDays)
	require.Len(t, s.AdditionalCharges, 1)
	assert.Equal(t, "Corte", s.AdditionalCharges[0].Name)
	assert.InDelta(t, 28.3608, h.final.totals[0], 1e-9)
}

func TestEngine_DigitalJobIncludesClicks(t *testing.T) {
	h := newHarness(t)
	h.toQuantity()
	h.send("500")

	assert.Contains(t, h.send("sí"), "Cargo adicional 1 de 2: Corte")
	assert.Contains(t, h.send("$10"), "Cargo adicional 2 de 2: Clicks")

	// Self-advances inside the loop do not grow the history.
	s := h.session()
	assert.Equal(t, session.DigitalYN, s.History[len(s.History)-1])

	h.send("25.50")
	s = h.session()
	assert.Equal(t, session.ExtraCostLoop, s.State)
	assert.True(t, s.IsDigitalPrint)
	require.Len(t, s.AdditionalCharges, 2)
	assert.Equal(t, 25.5, s.AdditionalCharges[1].Amount)
}

func TestEngine_NoChargesSkipsLoop(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	charges, _ := h.catalog.ListChargeDefinitions(ctx)
	for _, c := range charges {
		require.NoError(t, h.catalog.DeleteChargeDefinition(ctx, c.ID))
	}

	h.toQuantity()
	h.send("100")
	assert.Contains(t, h.send("sí"), "costo extra")
	assert.Equal(t, session.ExtraCostLoop, h.state())
}

func TestEngine_BackIntoChargeLoopRewindsAndReplaces(t *testing.T) {
	h := newHarness(t)
	h.toQuantity()
	h.send("500")
	h.send("sí")
	h.send("10")
	h.send("20")
	require.Equal(t, session.ExtraCostLoop, h.state())

	reply := h.send("r")
	assert.Contains(t, reply, msgBackPrefix)
	assert.Contains(t, reply, "Cargo adicional 1 de 2")
	s := h.session()
	assert.Equal(t, session.AdditionalChargeLoop, s.State)
	assert.Zero(t, s.ChargeCursor)

	h.send("5")
	h.send("6")
	s = h.session()
	assert.Equal(t, session.ExtraCostLoop, s.State)
	require.Len(t, s.AdditionalCharges, 2)
	assert.Equal(t, 5.0, s.AdditionalCharges[0].Amount)
	assert.Equal(t, 6.0, s.AdditionalCharges[1].Amount)
}

func TestEngine_ExtraCostsAndMargin(t *testing.T) {
	h := newHarness(t)
	h.toQuantity()
	h.send("1000")
	h.send("no")
	h.send("0")

	assert.Contains(t, h.send("sí"), "importe del costo extra")
	assert.Contains(t, h.send("$1,200"), "Describe")
	reply := h.send("Envío a domicilio")
	assert.Contains(t, reply, "Envío a domicilio $1200.00")
	assert.Contains(t, reply, "otro costo extra")
	h.send("no")

	h.send("2")
	assert.Contains(t, h.send("sí"), "costo del tiro y retiro")
	h.send("150")
	assert.Contains(t, h.send("sí"), "porcentaje")
	assert.Contains(t, h.send("35%"), "📈 Margen: 35%")

	s := h.session()
	assert.Equal(t, session.Confirm, s.State)
	assert.Equal(t, 35.0, s.MarginPercent)
	assert.Equal(t, 150.0, s.TiroRetiroCost)
	require.Len(t, s.ExtraCosts, 1)
	assert.Equal(t, 1200.0, s.ExtraCosts[0].Amount)
}

func TestEngine_BackIntoExtraCostDescriptionKeepsAmount(t *testing.T) {
	h := newHarness(t)
	h.toQuantity()
	h.send("1000")
	h.send("no")
	h.send("0")

	h.send("sí")
	h.send("300")
	h.send("Barniz")
	require.Equal(t, session.ExtraCostLoop, h.state())

	assert.Contains(t, h.send("r"), msgExtraDesc)
	assert.Equal(t, session.ExtraCostDescription, h.state())

	h.send("Barniz UV")
	s := h.session()
	require.Len(t, s.ExtraCosts, 2)
	assert.Equal(t, pricing.ExtraCost{Description: "Barniz", Amount: 300}, s.ExtraCosts[0])
	assert.Equal(t, pricing.ExtraCost{Description: "Barniz UV", Amount: 300}, s.ExtraCosts[1])
}

func TestEngine_MalformedDimension(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	h.send("Ana")
	h.send("1")
	h.send("1")
	h.send("0")
	require.Equal(t, session.NewDimension, h.state())

	before, _ := h.catalog.ListDimensions(context.Background())
	assert.Equal(t, errDimensionFormat, h.send("abc"))
	assert.Equal(t, session.NewDimension, h.state())
	after, _ := h.catalog.ListDimensions(context.Background())
	assert.Len(t, after, len(before))
}

func TestEngine_NewDimensionInsertsAndAdvances(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	h.send("Ana")
	h.send("1")
	h.send("1")
	h.send("0")

	reply := h.send("10 x 15")
	assert.Contains(t, reply, "Tamaño 10x15 agregado")
	assert.Contains(t, reply, "Elige el material")

	s := h.session()
	assert.Equal(t, session.Material, s.State)
	assert.Equal(t, "10x15", s.Dimension.Label)
	assert.Equal(t, 10.0, s.Dimension.Width)

	dims, _ := h.catalog.ListDimensions(context.Background())
	require.Len(t, dims, 2)
	assert.Equal(t, "10x15", dims[1].Label)
	assert.Zero(t, dims[1].Price)
}

func TestEngine_NewProductFlow(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	h.send("Ana")
	h.send("1")

	assert.Equal(t, msgNewProduct, h.send("0"))
	assert.Contains(t, h.send("Tarjetas"), "precio base de Tarjetas")
	reply := h.send("150")
	assert.Contains(t, reply, "Producto Tarjetas agregado")
	assert.Contains(t, reply, "Elige el tamaño")

	s := h.session()
	assert.Equal(t, session.Dimensions, s.State)
	assert.Equal(t, "Tarjetas", s.Product.Name)
	assert.Equal(t, 150.0, s.Product.BasePrice)

	products, _ := h.catalog.ListProducts(context.Background())
	assert.Len(t, products, 2)
}

func TestEngine_BackIntoNewProductPriceKeepsName(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	h.send("Ana")
	h.send("1")
	h.send("0")
	h.send("Tarjetas")
	h.send("150")
	require.Equal(t, session.Dimensions, h.state())

	assert.Contains(t, h.send("r"), "precio base de Tarjetas")
	assert.Equal(t, session.NewProductPrice, h.state())

	assert.Contains(t, h.send("200"), "Producto Tarjetas agregado")
	s := h.session()
	assert.Equal(t, session.Dimensions, s.State)
	assert.Equal(t, "Tarjetas", s.Product.Name)
	assert.Equal(t, 200.0, s.Product.BasePrice)

	// The first insert is not rolled back.
	products, _ := h.catalog.ListProducts(context.Background())
	require.Len(t, products, 3)
	assert.Equal(t, "Tarjetas", products[2].Name)
	assert.Equal(t, 200.0, products[2].BasePrice)
}

func TestEngine_MissingProductNameAsksAgain(t *testing.T) {
	h := newHarness(t)
	s := session.New(testUser, time.Now())
	s.ClientName = "Ana"
	s.Advance(session.Menu)
	s.Advance(session.Products)
	s.Advance(session.NewProduct)
	s.Advance(session.NewProductPrice)
	h.sessions.Put(testUser, s)

	reply := h.send("150")
	assert.Contains(t, reply, msgProductNameMissing)
	assert.Contains(t, reply, msgNewProduct)
	assert.Equal(t, session.NewProduct, h.state())

	products, _ := h.catalog.ListProducts(context.Background())
	assert.Len(t, products, 1)

	assert.Contains(t, h.send("Tarjetas"), "precio base de Tarjetas")
}

func TestEngine_BackAtMenuIsRefused(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	h.send("Ana")
	require.Equal(t, session.Menu, h.state())
	before := h.session()

	assert.Equal(t, msgNoBack, h.send("r"))
	assert.Equal(t, before, h.session())
}

func TestEngine_BackAtAskNameIsRefused(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	assert.Equal(t, msgNoBack, h.send("R"))
	assert.Equal(t, session.AskName, h.state())
}

func TestEngine_BackRestoresPreviousPrompt(t *testing.T) {
	h := newHarness(t)
	h.toQuantity()

	reply := h.send("r")
	assert.Contains(t, reply, "Elige el material")
	s := h.session()
	assert.Equal(t, session.Material, s.State)
	// The undone step keeps its captured field.
	assert.NotNil(t, s.Material)

	h.send("r")
	assert.Equal(t, session.Dimensions, h.state())
	h.send("r")
	assert.Equal(t, session.Products, h.state())
	h.send("r")
	assert.Equal(t, session.Menu, h.state())
	assert.Equal(t, msgNoBack, h.send("r"))
}

func TestEngine_InvalidInputKeepsState(t *testing.T) {
	h := newHarness(t)
	h.toQuantity()
	before := h.session()

	assert.Equal(t, errQuantityNumber, h.send("mil"))
	assert.Equal(t, errQuantityPositive, h.send("0"))
	assert.Equal(t, errQuantityPositive, h.send("-5"))
	assert.Equal(t, before, h.session())
}

func TestEngine_OutOfRangeSelections(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	h.send("Ana")

	assert.Equal(t, errMenuOption, h.send("9"))
	h.send("1")
	assert.Equal(t, errListOption, h.send("7"))
	assert.Equal(t, errListOption, h.send("uno"))
	assert.Equal(t, session.Products, h.state())
	h.send("1")
	h.send("1")
	assert.Equal(t, errMaterialOption, h.send("0"))
	assert.Equal(t, session.Material, h.state())
}

func TestEngine_ConfirmNoDeletesSession(t *testing.T) {
	h := newHarness(t)
	driveToConfirm(h)

	assert.Equal(t, errYesNo, h.send("quizá"))
	assert.Equal(t, session.Confirm, h.state())

	assert.Equal(t, msgCancelled, h.send("No"))
	_, ok := h.sessions.Get(testUser)
	assert.False(t, ok)
	assert.Equal(t, msgNoSession, h.send("hello?"))
	assert.Zero(t, h.final.count())
}

func TestEngine_ReplayedConfirmIsNoSession(t *testing.T) {
	h := newHarness(t)
	driveToConfirm(h)

	assert.Equal(t, "QUOTE SENT", h.send("si"))
	assert.Equal(t, msgNoSession, h.send("si"))
	assert.Equal(t, 1, h.final.count())
}

func TestEngine_DispatchFailureStillDeletesSession(t *testing.T) {
	h := newHarness(t)
	driveToConfirm(h)
	h.final.err = errors.New("twilio down")

	reply, err := h.engine.HandleMessage(context.Background(), testUser, "sí")
	assert.Error(t, err)
	assert.Equal(t, quote.MsgFailed, reply)
	_, ok := h.sessions.Get(testUser)
	assert.False(t, ok)
}

func TestEngine_IncompleteDraftKeepsSession(t *testing.T) {
	h := newHarness(t)
	driveToConfirm(h)

	// Corrupt the stored session so the draft cannot be built.
	s := h.session()
	s.Material = nil
	h.sessions.Put(testUser, s)

	assert.Equal(t, msgIncomplete, h.send("sí"))
	assert.Equal(t, session.Confirm, h.state())
	assert.Zero(t, h.final.count())
}

func TestEngine_CatalogFailurePreservesSession(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	h.send("Ana")
	before := h.session()

	h.catalog.setFail(true)
	reply, err := h.engine.HandleMessage(context.Background(), testUser, "1")
	assert.ErrorIs(t, err, errCatalogDown)
	assert.Equal(t, msgRetryLater, reply)
	assert.Equal(t, before, h.session())

	h.catalog.setFail(false)
	assert.Contains(t, h.send("1"), "Volantes")
	assert.Equal(t, session.Products, h.state())
}

func TestEngine_AdminCharges(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	h.send("Ana")

	assert.Equal(t, msgAdminCharges, h.send("2"))

	reply := h.send("1")
	assert.Contains(t, reply, "1. Corte - Corte de guillotina")
	assert.Contains(t, reply, "2. Clicks")
	assert.Equal(t, session.Menu, h.state())

	h.send("2")
	assert.Equal(t, msgAddCharge, h.send("2"))
	assert.Contains(t, h.send("Barniz"), "descripción para Barniz")
	reply = h.send("Barniz UV a registro")
	assert.Contains(t, reply, "Cargo Barniz agregado")
	assert.Equal(t, session.Menu, h.state())

	h.send("2")
	reply = h.send("3")
	assert.Contains(t, reply, "3. Barniz - Barniz UV a registro")
	assert.Equal(t, session.DeleteCharge, h.state())
	assert.Equal(t, errMaterialOption, h.send("4"))

	assert.Contains(t, h.send("1"), "Cargo Corte eliminado")
	assert.Equal(t, session.Menu, h.state())

	charges, _ := h.catalog.ListChargeDefinitions(context.Background())
	require.Len(t, charges, 2)
	assert.Equal(t, "Clicks", charges[0].Name)
	assert.Equal(t, "Barniz", charges[1].Name)
}

func TestEngine_AdminDeleteWithNoCharges(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()
	charges, _ := h.catalog.ListChargeDefinitions(ctx)
	for _, c := range charges {
		require.NoError(t, h.catalog.DeleteChargeDefinition(ctx, c.ID))
	}

	h.send("hola")
	h.send("Ana")
	h.send("2")
	assert.Contains(t, h.send("3"), msgNoCharges)
	assert.Equal(t, session.Menu, h.state())
}

func TestEngine_DeleteChargeAlreadyGone(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	h.send("Ana")
	h.send("2")
	h.send("3")

	charges, _ := h.catalog.ListChargeDefinitions(context.Background())
	require.NoError(t, h.catalog.DeleteChargeDefinition(context.Background(), charges[0].ID))

	assert.Equal(t, errChargeGone, h.send("1"))
	assert.Equal(t, session.DeleteCharge, h.state())
}

func TestEngine_DeleteChargeOutOfRange(t *testing.T) {
	h := newHarness(t)
	h.send("hola")
	h.send("Ana")
	h.send("2")
	h.send("3")

	assert.Equal(t, errChargeOption, h.send("9"))
	assert.Equal(t, session.DeleteCharge, h.state())

	charges, _ := h.catalog.ListChargeDefinitions(context.Background())
	assert.Len(t, charges, 2)
}

func TestEngine_UsersAreIndependent(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := 0; i < 20; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			user := fmt.Sprintf("user-%d", i)
			for _, msg := range []string{"hola", fmt.Sprintf("Cliente %d", i), "1", "1", "1", "1", fmt.Sprintf("%d", 100+i)} {
				_, err := h.engine.HandleMessage(ctx, user, msg)
				assert.NoError(t, err)
			}
		}(i)
	}
	wg.Wait()

	for i := 0; i < 20; i++ {
		s, ok := h.sessions.Get(fmt.Sprintf("user-%d", i))
		require.True(t, ok)
		assert.Equal(t, fmt.Sprintf("Cliente %d", i), s.ClientName)
		assert.Equal(t, 100+i, s.Quantity)
		assert.Equal(t, session.DigitalYN, s.State)
	}
}

func TestEngine_SameUserMessagesAreSerialized(t *testing.T) {
	h := newHarness(t)
	h.toQuantity()
	h.send("100")
	h.send("sí")
	require.Equal(t, session.AdditionalChargeLoop, h.state())

	// Two concurrent answers for the two charges; each must land on its own index.
	var wg sync.WaitGroup
	for i := 0; i < 2; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = h.engine.HandleMessage(context.Background(), testUser, "7")
		}()
	}
	wg.Wait()

	s := h.session()
	assert.Equal(t, session.ExtraCostLoop, s.State)
	assert.Len(t, s.AdditionalCharges, 2)
}

func TestEngine_LockTimeout(t *testing.T) {
	h := newHarness(t)
	h.send("hola")

	hold := make(chan struct{})
	held := make(chan struct{})
	go func() {
		_ = h.sessions.WithLock(context.Background(), testUser, func(context.Context) error {
			close(held)
			<-hold
			return nil
		})
	}()
	<-held
	defer close(hold)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()
	reply, err := h.engine.HandleMessage(ctx, testUser, "Ana")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Equal(t, msgRetryLater, reply)
}

func driveToConfirm(h *harness) {
	h.t.Helper()
	h.toQuantity()
	h.send("1000")
	h.send("no")
	h.send("0")
	h.send("no")
	h.send("1")
	h.send("no")
	h.send("no")
	require.Equal(h.t, session.Confirm, h.state())
}

func TestStateTablesCoverEveryState(t *testing.T) {
	h := newHarness(t)
	ctx := context.Background()

	for _, s := range session.AllStates() {
		_, ok := steps[s]
		assert.True(t, ok, "no step for %s", s)
		_, ok = transitions[s]
		assert.True(t, ok, "no transitions for %s", s)

		sess := session.New(testUser, time.Now())
		sess.State = s
		p, err := h.engine.prompt(ctx, sess)
		assert.NoError(t, err, s.String())
		assert.NotEmpty(t, p, s.String())

		assert.Equal(t, s != session.AskName && s != session.Menu, canGoBack(s), s.String())
	}

	seen := map[session.State]bool{session.AskName: true}
	queue := []session.State{session.AskName}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		for _, next := range transitions[s] {
			if !seen[next] {
				seen[next] = true
				queue = append(queue, next)
			}
		}
	}
	for _, s := range session.AllStates() {
		assert.True(t, seen[s], "%s is unreachable", s)
	}
}
