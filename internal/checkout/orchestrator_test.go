package checkout

import (
	"context"
	"errors"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"vroomvisions_backend/internal/cart"
	"vroomvisions_backend/internal/models"
	"vroomvisions_backend/internal/storeerr"
)

type fakeGateway struct {
	calls   int
	lastReq OrderRequest
	err     error
}

func (f *fakeGateway) CreateOrder(_ context.Context, req OrderRequest) (*GatewayOrder, error) {
	f.calls++
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return &GatewayOrder{ID: "order_test_1", Amount: req.Amount, Currency: req.Currency}, nil
}

func panierRempli() *cart.Cart {
	c := cart.New()
	c.Add(models.Product{ID: 1, Price: 5900})
	c.Add(models.Product{ID: 1, Price: 5900})
	c.Add(models.Product{ID: 3, Price: 3900})
	return c
}

func TestBeginSansEmail(t *testing.T) {
	o := New(&fakeGateway{}, "INR")

	err := o.Begin("", panierRempli())
	require.ErrorIs(t, err, storeerr.ErrValidation)
	assert.Equal(t, StateIdle, o.State())
}

func TestBeginEmailMalForme(t *testing.T) {
	o := New(&fakeGateway{}, "INR")

	err := o.Begin("pas-un-email", panierRempli())
	require.ErrorIs(t, err, storeerr.ErrValidation)
	assert.Equal(t, StateIdle, o.State())
}

func TestBeginPanierVide(t *testing.T) {
	o := New(&fakeGateway{}, "INR")

	err := o.Begin("client@example.com", cart.New())
	require.ErrorIs(t, err, storeerr.ErrValidation)
	assert.Equal(t, StateIdle, o.State())
}

func TestSubmitCreeLaCommandeAuMontantDuPanier(t *testing.T) {
	gw := &fakeGateway{}
	o := New(gw, "INR")
	require.NoError(t, o.Begin("client@example.com", panierRempli()))

	order, err := o.Submit(context.Background(), "card")
	require.NoError(t, err)

	assert.Equal(t, StateProcessing, o.State())
	assert.Equal(t, int64(15700), gw.lastReq.Amount)
	assert.Equal(t, "INR", order.Currency)
	assert.Equal(t, order.ID, o.Token())
}

func TestSubmitSansBegin(t *testing.T) {
	o := New(&fakeGateway{}, "INR")

	_, err := o.Submit(context.Background(), "card")
	require.ErrorIs(t, err, storeerr.ErrValidation)
}

func TestSubmitReentrantBloque(t *testing.T) {
	gw := &fakeGateway{}
	o := New(gw, "INR")
	require.NoError(t, o.Begin("client@example.com", panierRempli()))

	_, err := o.Submit(context.Background(), "card")
	require.NoError(t, err)

	_, err = o.Submit(context.Background(), "card")
	require.ErrorIs(t, err, ErrPaymentInFlight)
	assert.Equal(t, 1, gw.calls, "une seule transaction en vol par panier")
}

// passerelle qui se gare dans CreateOrder jusqu'à release, pour exercer la
// fenêtre où la transaction est en vol mais pas encore confirmée
type blockingGateway struct {
	mu      sync.Mutex
	calls   int
	entered chan struct{}
	release chan struct{}
}

func (g *blockingGateway) CreateOrder(_ context.Context, req OrderRequest) (*GatewayOrder, error) {
	g.mu.Lock()
	g.calls++
	first := g.calls == 1
	g.mu.Unlock()
	if first {
		close(g.entered)
		<-g.release
	}
	return &GatewayOrder{ID: "order_test_1", Amount: req.Amount, Currency: req.Currency}, nil
}

func TestSubmitConcurrentPendantLAppelPasserelle(t *testing.T) {
	gw := &blockingGateway{entered: make(chan struct{}), release: make(chan struct{})}
	o := New(gw, "INR")
	require.NoError(t, o.Begin("client@example.com", panierRempli()))

	done := make(chan error, 1)
	go func() {
		_, err := o.Submit(context.Background(), "card")
		done <- err
	}()
	<-gw.entered

	// la transaction est en vol : Submit comme Begin concurrents sont refusés
	_, err := o.Submit(context.Background(), "card")
	require.ErrorIs(t, err, ErrPaymentInFlight)
	require.ErrorIs(t, o.Begin("client@example.com", panierRempli()), ErrPaymentInFlight)

	close(gw.release)
	require.NoError(t, <-done)

	assert.Equal(t, StateProcessing, o.State())
	assert.Equal(t, "order_test_1", o.Token())
	gw.mu.Lock()
	defer gw.mu.Unlock()
	assert.Equal(t, 1, gw.calls, "une seule commande passerelle par panier")
}

func TestSuccesVideLePanierEtEstIdempotent(t *testing.T) {
	o := New(&fakeGateway{}, "INR")
	c := panierRempli()
	require.NoError(t, o.Begin("client@example.com", c))

	fired := 0
	o.OnSuccess(func() { fired++ })

	order, err := o.Submit(context.Background(), "card")
	require.NoError(t, err)

	require.True(t, o.HandleSuccess(order.ID))
	assert.Equal(t, StateSucceeded, o.State())
	assert.True(t, c.IsEmpty())
	assert.Equal(t, 1, fired)

	// callback dupliqué tardif : no-op
	assert.False(t, o.HandleSuccess(order.ID))
	assert.Equal(t, 1, fired)
}

func TestCallbackJetonPerimeIgnore(t *testing.T) {
	o := New(&fakeGateway{}, "INR")
	c := panierRempli()
	require.NoError(t, o.Begin("client@example.com", c))
	_, err := o.Submit(context.Background(), "card")
	require.NoError(t, err)

	assert.False(t, o.HandleSuccess("order_autre"))
	assert.Equal(t, StateProcessing, o.State())
	assert.False(t, c.IsEmpty())
}

func TestEchecPasserelleMessageVerbatimEtRetry(t *testing.T) {
	gw := &fakeGateway{}
	o := New(gw, "INR")
	c := panierRempli()
	require.NoError(t, o.Begin("client@example.com", c))

	order, err := o.Submit(context.Background(), "card")
	require.NoError(t, err)

	require.True(t, o.HandleFailure(order.ID, "Card declined by issuer"))
	assert.Equal(t, StateFailed, o.State())
	assert.Equal(t, "Card declined by issuer", o.LastError())
	assert.False(t, c.IsEmpty(), "le panier reste intact après un échec")

	// retry autorisé depuis Failed
	_, err = o.Submit(context.Background(), "card")
	require.NoError(t, err)
	assert.Equal(t, StateProcessing, o.State())
}

func TestEchecSansMessageFallbackGenerique(t *testing.T) {
	o := New(&fakeGateway{}, "INR")
	require.NoError(t, o.Begin("client@example.com", panierRempli()))
	order, err := o.Submit(context.Background(), "card")
	require.NoError(t, err)

	require.True(t, o.HandleFailure(order.ID, ""))
	assert.Equal(t, fallbackGatewayMessage, o.LastError())
}

func TestErreurCreationCommandePasserelle(t *testing.T) {
	gw := &fakeGateway{err: errors.New("gateway timeout")}
	o := New(gw, "INR")
	require.NoError(t, o.Begin("client@example.com", panierRempli()))

	_, err := o.Submit(context.Background(), "card")
	var gerr *storeerr.GatewayError
	require.ErrorAs(t, err, &gerr)
	assert.Equal(t, "gateway timeout", gerr.Message)
	assert.Equal(t, StateFailed, o.State())
}

func TestCancelLaisseLePanierIntact(t *testing.T) {
	o := New(&fakeGateway{}, "INR")
	c := panierRempli()
	require.NoError(t, o.Begin("client@example.com", c))
	order, err := o.Submit(context.Background(), "card")
	require.NoError(t, err)

	o.Cancel()
	assert.Equal(t, StateIdle, o.State())
	assert.False(t, c.IsEmpty())

	// le callback arrivé après navigation est ignoré
	assert.False(t, o.HandleSuccess(order.ID))
	assert.False(t, c.IsEmpty())
}

func TestManagerRetrouveParJeton(t *testing.T) {
	m := NewManager(&fakeGateway{}, "INR")
	o := m.ForSession("sess-1")
	require.Same(t, o, m.ForSession("sess-1"))

	require.NoError(t, o.Begin("client@example.com", panierRempli()))
	order, err := o.Submit(context.Background(), "card")
	require.NoError(t, err)

	found, ok := m.ByToken(order.ID)
	require.True(t, ok)
	assert.Same(t, o, found)

	_, ok = m.ByToken("order_inconnu")
	assert.False(t, ok)

	m.Drop("sess-1")
	_, ok = m.Lookup("sess-1")
	assert.False(t, ok)
}
