package app

import (
	cartservice "github.com/ruansmarques/MedFerpa-Store-2/pkg/cart/domain/service"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/identity"
	"github.com/ruansmarques/MedFerpa-Store-2/pkg/routing"
)

// Session is the application root: the cart, the router, and the current
// principal, threaded to every view by reference instead of living as
// ambient globals. The cart is the only state shared across unrelated
// views, and it is mutated only through its own operations.
type Session struct {
	Cart   cartservice.CartService
	Router *routing.Router

	auth       identity.Provider
	authorizer *identity.Authorizer
	principal  *identity.Principal
	cancelAuth func()
}

func NewSession(cart cartservice.CartService, router *routing.Router, auth identity.Provider, authorizer *identity.Authorizer) *Session {
	s := &Session{
		Cart:       cart,
		Router:     router,
		auth:       auth,
		authorizer: authorizer,
	}
	s.cancelAuth = auth.Subscribe(func(principal *identity.Principal) {
		s.principal = principal
	})
	return s
}

// Close releases the auth-state subscription. The session must not be used
// afterwards.
func (s *Session) Close() {
	if s.cancelAuth != nil {
		s.cancelAuth()
		s.cancelAuth = nil
	}
}

func (s *Session) Principal() *identity.Principal { return s.principal }

func (s *Session) SignedIn() bool { return s.principal != nil }

// UserID is what orders are attributed to: the account ID, or the guest
// sentinel handled by checkout when nobody is signed in.
func (s *Session) UserID() string {
	if s.principal == nil {
		return ""
	}
	return s.principal.ID
}

func (s *Session) CanAccessAdmin() bool {
	return s.authorizer.IsAdmin(s.principal)
}
