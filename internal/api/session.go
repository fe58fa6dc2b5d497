package api

import (
	"context"
	"net/http"
	"sync"

	"github.com/google/uuid"

	"github.com/example/shopfront-gateway/internal/checkout"
	"github.com/example/shopfront-gateway/internal/domain/cart"
	"github.com/example/shopfront-gateway/internal/infrastructure/cartstore"
)

const sessionCookie = "shopfront_session"

type contextKey string

const sessionIDKey contextKey = "session_id"

// session is the explicit per-browsing-session state: one cart and at most
// one active checkout flow. The mutex serializes the session's operations;
// the domain assumes a single logical writer per session.
type session struct {
	mu   sync.Mutex
	id   string
	cart *cart.Cart
	flow *checkout.Flow
}

// sessionManager hands out sessions, hydrating carts from the durable store
// on first touch after a restart.
type sessionManager struct {
	mu       sync.Mutex
	sessions map[string]*session

	store     cartstore.Store
	api       UpstreamAPI
	publisher checkout.Publisher
}

func newSessionManager(store cartstore.Store, api UpstreamAPI, publisher checkout.Publisher) *sessionManager {
	return &sessionManager{
		sessions:  make(map[string]*session),
		store:     store,
		api:       api,
		publisher: publisher,
	}
}

func (m *sessionManager) get(ctx context.Context, sessionID string) (*session, error) {
	m.mu.Lock()
	if s, ok := m.sessions[sessionID]; ok {
		m.mu.Unlock()
		return s, nil
	}
	m.mu.Unlock()

	// Hydrate outside the manager lock; the store call may hit the network.
	items, err := m.store.Load(ctx, sessionID)
	if err != nil {
		return nil, err
	}

	m.mu.Lock()
	defer m.mu.Unlock()
	if s, ok := m.sessions[sessionID]; ok {
		return s, nil
	}
	s := &session{id: sessionID, cart: cart.FromItems(items)}
	m.sessions[sessionID] = s
	return s, nil
}

// checkoutFlow returns the session's active flow, creating a fresh one when
// the previous checkout already got its order accepted. A failed or idle flow
// is kept so a retry reuses its draft.
func (m *sessionManager) checkoutFlow(s *session) *checkout.Flow {
	if s.flow == nil {
		s.flow = checkout.NewFlow(s.id, s.cart, m.store, m.api, m.publisher)
		return s.flow
	}
	switch s.flow.Phase() {
	case checkout.PhaseAwaitingPayment, checkout.PhasePaymentDeclared:
		// Payment for the earlier order stays possible by order ID.
		s.flow = checkout.NewFlow(s.id, s.cart, m.store, m.api, m.publisher)
	}
	return s.flow
}

// withSession assigns a session cookie when the request has none and puts the
// session ID on the request context.
func withSession(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		var sessionID string
		if c, err := r.Cookie(sessionCookie); err == nil && c.Value != "" {
			sessionID = c.Value
		} else {
			sessionID = uuid.New().String()
			http.SetCookie(w, &http.Cookie{
				Name:     sessionCookie,
				Value:    sessionID,
				Path:     "/",
				HttpOnly: true,
				SameSite: http.SameSiteLaxMode,
			})
		}
		ctx := context.WithValue(r.Context(), sessionIDKey, sessionID)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func sessionIDFrom(r *http.Request) string {
	id, _ := r.Context().Value(sessionIDKey).(string)
	return id
}
