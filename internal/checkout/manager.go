package checkout

import "sync"

// Manager tient un orchestrateur par session boutique. Les handlers paiement
// le consultent pour rattacher le callback Razorpay à la bonne transaction.
type Manager struct {
	mu       sync.Mutex
	gateway  Gateway
	currency string
	sessions map[string]*Orchestrator
}

func NewManager(gateway Gateway, currency string) *Manager {
	return &Manager{
		gateway:  gateway,
		currency: currency,
		sessions: make(map[string]*Orchestrator),
	}
}

// ForSession retourne l'orchestrateur de la session, créé au besoin.
func (m *Manager) ForSession(sessionID string) *Orchestrator {
	m.mu.Lock()
	defer m.mu.Unlock()
	if o, ok := m.sessions[sessionID]; ok {
		return o
	}
	o := New(m.gateway, m.currency)
	m.sessions[sessionID] = o
	return o
}

// Lookup retourne l'orchestrateur sans en créer.
func (m *Manager) Lookup(sessionID string) (*Orchestrator, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	o, ok := m.sessions[sessionID]
	return o, ok
}

// ByToken retrouve l'orchestrateur dont la transaction active porte ce jeton.
// Un jeton inconnu signifie un callback périmé : l'appelant doit l'ignorer.
func (m *Manager) ByToken(token string) (*Orchestrator, bool) {
	if token == "" {
		return nil, false
	}
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, o := range m.sessions {
		if o.Token() == token {
			return o, true
		}
	}
	return nil, false
}

// Drop oublie la session (fin de cycle ou expiration cookie).
func (m *Manager) Drop(sessionID string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	delete(m.sessions, sessionID)
}
