// Package checkout orchestre le tunnel de paiement : collecte du contact,
// création de la commande passerelle (Razorpay), puis confirmation via un
// callback externe porteur d'un jeton de transaction. Un callback dont le
// jeton ne correspond plus à la transaction active est ignoré.
package checkout

import (
	"context"
	"fmt"
	"net/mail"
	"sync"

	"github.com/google/uuid"

	"vroomvisions_backend/internal/cart"
	"vroomvisions_backend/internal/storeerr"
)

type State int

const (
	StateIdle State = iota
	StateAwaitingPayment
	StateProcessing
	StateSucceeded
	StateFailed
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateAwaitingPayment:
		return "awaiting_payment"
	case StateProcessing:
		return "processing"
	case StateSucceeded:
		return "succeeded"
	case StateFailed:
		return "failed"
	}
	return "unknown"
}

// ErrPaymentInFlight bloque un Submit ré-entrant tant qu'un paiement est en
// cours : jamais deux transactions Processing pour le même panier.
var ErrPaymentInFlight = fmt.Errorf("%w: un paiement est déjà en cours", storeerr.ErrConflict)

const fallbackGatewayMessage = "Le paiement n'a pas pu être traité"

// OrderRequest décrit la commande à créer chez la passerelle.
// Le montant est en unités mineures, égal au TotalPrice() du panier.
type OrderRequest struct {
	Amount   int64
	Currency string
	Receipt  string
	Email    string
	Method   string
}

// GatewayOrder est le descripteur consommé par le widget de paiement hébergé.
type GatewayOrder struct {
	ID       string `json:"id"`
	Amount   int64  `json:"amount"`
	Currency string `json:"currency"`
}

// Gateway est la frontière vers le prestataire de paiement externe.
type Gateway interface {
	CreateOrder(ctx context.Context, req OrderRequest) (*GatewayOrder, error)
}

// Orchestrator pilote le cycle Idle → AwaitingPayment → Processing →
// Succeeded | Failed pour un panier donné. Le mutex protège la frontière
// asynchrone : le callback passerelle peut arriver depuis un autre handler,
// y compris après que l'utilisateur a quitté la page.
type Orchestrator struct {
	mu      sync.Mutex
	gateway Gateway

	state     State
	cart      *cart.Cart
	email     string
	currency  string
	token     string
	receipt   string
	order     *GatewayOrder
	lastError string
	onSuccess func()
}

func New(gateway Gateway, currency string) *Orchestrator {
	if currency == "" {
		currency = "INR"
	}
	return &Orchestrator{gateway: gateway, currency: currency, state: StateIdle}
}

// OnSuccess enregistre la notification de succès, tirée une seule fois.
func (o *Orchestrator) OnSuccess(fn func()) {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.onSuccess = fn
}

// Begin garde l'entrée du tunnel : email bien formé ET panier non vide,
// sinon erreur de validation sans changement d'état.
func (o *Orchestrator) Begin(email string, c *cart.Cart) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state == StateProcessing {
		return ErrPaymentInFlight
	}
	if email == "" {
		return storeerr.Validationf("adresse email requise")
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return storeerr.Validationf("adresse email invalide")
	}
	if c == nil || c.IsEmpty() {
		return storeerr.Validationf("panier vide")
	}

	o.email = email
	o.cart = c
	o.lastError = ""
	o.state = StateAwaitingPayment
	return nil
}

// Submit crée la commande passerelle pour le montant TotalPrice() et passe en
// Processing. Ré-entrant bloqué tant qu'une transaction est en vol ; un nouvel
// essai est permis depuis Failed (le panier n'a pas bougé).
func (o *Orchestrator) Submit(ctx context.Context, method string) (*GatewayOrder, error) {
	o.mu.Lock()
	if o.state == StateProcessing {
		o.mu.Unlock()
		return nil, ErrPaymentInFlight
	}
	if o.state != StateAwaitingPayment && o.state != StateFailed {
		o.mu.Unlock()
		return nil, storeerr.Validationf("checkout non initialisé")
	}

	req := OrderRequest{
		Amount:   o.cart.TotalPrice(),
		Currency: o.currency,
		Receipt:  "receipt_" + uuid.NewString(),
		Email:    o.email,
		Method:   method,
	}
	gateway := o.gateway
	// Processing AVANT de lâcher le verrou : un Submit ou Begin concurrent
	// pendant l'appel passerelle doit tomber sur ErrPaymentInFlight, sinon
	// deux commandes passerelle naissent pour le même panier.
	o.state = StateProcessing
	o.mu.Unlock()

	// Appel externe hors verrou : la passerelle peut être lente.
	order, err := gateway.CreateOrder(ctx, req)

	o.mu.Lock()
	defer o.mu.Unlock()
	if err != nil {
		gerr := storeerr.NewGatewayError(err)
		o.state = StateFailed
		o.lastError = gerr.Error()
		return nil, gerr
	}

	o.token = order.ID
	o.receipt = req.Receipt
	o.order = order
	o.lastError = ""
	o.state = StateProcessing
	return order, nil
}

// HandleSuccess confirme la transaction désignée par le jeton. Premier appel
// avec le bon jeton : vide le panier, tire la notification one-shot, état
// terminal Succeeded. Jeton périmé ou appel dupliqué : no-op (idempotent).
func (o *Orchestrator) HandleSuccess(token string) bool {
	o.mu.Lock()

	if o.state != StateProcessing || token == "" || token != o.token {
		o.mu.Unlock()
		return false
	}

	o.state = StateSucceeded
	o.token = ""
	if o.cart != nil {
		o.cart.Clear()
	}
	fire := o.onSuccess
	o.onSuccess = nil
	o.mu.Unlock()

	if fire != nil {
		fire()
	}
	return true
}

// HandleFailure enregistre l'échec passerelle (message verbatim, fallback
// générique si vide) et revient en AwaitingPayment via Failed : le panier est
// laissé intact pour permettre un nouvel essai.
func (o *Orchestrator) HandleFailure(token, message string) bool {
	o.mu.Lock()
	defer o.mu.Unlock()

	if o.state != StateProcessing || token == "" || token != o.token {
		return false
	}

	if message == "" {
		message = fallbackGatewayMessage
	}
	o.lastError = message
	o.token = ""
	o.state = StateFailed
	return true
}

// Cancel abandonne le tunnel à tout moment. Le panier n'est pas touché ;
// aucun état partiel ne survit. Un callback tardif sera ignoré.
func (o *Orchestrator) Cancel() {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.state = StateIdle
	o.token = ""
	o.order = nil
	o.lastError = ""
}

func (o *Orchestrator) State() State {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.state
}

func (o *Orchestrator) LastError() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.lastError
}

// Token expose le jeton de la transaction active ("" hors Processing).
func (o *Orchestrator) Token() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.token
}

// Receipt expose la référence de reçu de la dernière commande passerelle.
func (o *Orchestrator) Receipt() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.receipt
}

func (o *Orchestrator) Email() string {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.email
}

func (o *Orchestrator) Cart() *cart.Cart {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.cart
}
