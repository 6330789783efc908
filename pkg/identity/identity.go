package identity

import (
	"errors"
	"strings"
)

var (
	ErrInvalidCredentials = errors.New("invalid email or password")
	ErrEmailTaken         = errors.New("email is already taken")
)

// Principal is the authenticated account as exposed by the identity
// provider. Everything beyond the ID is optional.
type Principal struct {
	ID          string
	DisplayName string
	Email       string
	AvatarURL   string
}

// Provider is the external identity service. Subscribe delivers the current
// principal (or nil when signed out) on every auth-state change, starting
// with the state at subscription time; the returned cancel func releases the
// subscription.
type Provider interface {
	SignInWithEmail(email, password string) (*Principal, error)
	RegisterWithEmail(email, password string) (*Principal, error)
	SignInWithFederated(providerName string) (*Principal, error)
	SignOut() error
	Subscribe(onChange func(principal *Principal)) (cancel func())
}

// Authorizer decides admin access. With a non-empty allowlist only the
// listed emails qualify; an empty allowlist keeps the historical behavior
// where any signed-in account may enter the admin console.
type Authorizer struct {
	adminEmails map[string]struct{}
}

func NewAuthorizer(adminEmails []string) *Authorizer {
	emails := make(map[string]struct{}, len(adminEmails))
	for _, email := range adminEmails {
		email = strings.ToLower(strings.TrimSpace(email))
		if email != "" {
			emails[email] = struct{}{}
		}
	}
	return &Authorizer{adminEmails: emails}
}

func (a *Authorizer) IsAdmin(principal *Principal) bool {
	if principal == nil {
		return false
	}
	if len(a.adminEmails) == 0 {
		return true
	}
	_, ok := a.adminEmails[strings.ToLower(principal.Email)]
	return ok
}
